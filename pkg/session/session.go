// Package session tracks whether, and as whom, the visitor is signed in.
package session

import (
	"sync"

	"nostalgiajars/pkg/observe"
)

// State is a point-in-time copy of the session.
// LoggedIn is false exactly when Name is empty.
type State struct {
	Name               string `json:"name"`
	LoggedIn           bool   `json:"loggedIn"`
	LoginPromptVisible bool   `json:"loginPromptVisible"`
}

// Store holds one visitor's session.
type Store struct {
	mu      sync.RWMutex
	state   State
	changes observe.Subject[State]
}

// New returns a logged-out session with the login prompt hidden.
func New() *Store {
	return &Store{}
}

// Begin signs the visitor in as name and closes the login prompt.
// Callers must pass a non-empty name; Begin panics otherwise.
func (s *Store) Begin(name string) {
	if name == "" {
		panic("session: Begin called with empty name")
	}
	s.update(func(st *State) {
		st.Name = name
		st.LoggedIn = true
		st.LoginPromptVisible = false
	})
}

// End signs the visitor out. Ending a logged-out session does nothing.
func (s *Store) End() {
	s.update(func(st *State) {
		st.Name = ""
		st.LoggedIn = false
	})
}

// ShowLoginPrompt makes the login prompt visible.
func (s *Store) ShowLoginPrompt() {
	s.update(func(st *State) { st.LoginPromptVisible = true })
}

// HideLoginPrompt hides the login prompt.
func (s *Store) HideLoginPrompt() {
	s.update(func(st *State) { st.LoginPromptVisible = false })
}

// State returns the current session.
func (s *Store) State() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// Subscribe registers fn to receive the new state after every change.
func (s *Store) Subscribe(fn func(State)) (cancel func()) {
	return s.changes.Subscribe(fn)
}

func (s *Store) update(fn func(*State)) {
	s.mu.Lock()
	before := s.state
	fn(&s.state)
	after := s.state
	s.mu.Unlock()

	if after != before {
		s.changes.Notify(after)
	}
}
