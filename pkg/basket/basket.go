// Package basket implements the visitor's in-progress product selection.
package basket

import (
	"errors"
	"slices"
	"sync"

	"nostalgiajars/pkg/catalog"
	"nostalgiajars/pkg/observe"
)

// MaxQuantity is the largest quantity a single line may hold.
const MaxQuantity = 999

// ErrInvalidQuantity is returned when a quantity, or a line's resulting
// quantity, falls outside 1..MaxQuantity.
var ErrInvalidQuantity = errors.New("quantity must be between 1 and 999")

// Line is one product and how many of it were selected. Quantity is always
// within 1..MaxQuantity.
type Line struct {
	Product  catalog.Product `json:"product"`
	Quantity int             `json:"quantity"`
}

// Subtotal is the line's quantity times the unit price.
func (l Line) Subtotal() int {
	return l.Quantity * l.Product.Price
}

// State is a point-in-time copy of the basket.
type State struct {
	Lines   []Line `json:"lines"`
	Visible bool   `json:"visible"`
}

// Store holds lines in first-added order, one per product.
type Store struct {
	mu      sync.RWMutex
	lines   []Line
	visible bool
	changes observe.Subject[State]
}

// New returns an empty, hidden basket.
func New() *Store {
	return &Store{}
}

// Add merges quantity of p into the basket and reveals it. A merge that
// would take the line past MaxQuantity is rejected and changes nothing.
func (s *Store) Add(p catalog.Product, quantity int) error {
	if quantity <= 0 || quantity > MaxQuantity {
		return ErrInvalidQuantity
	}
	return s.update(func() error {
		if i := s.find(p.ID); i >= 0 {
			if s.lines[i].Quantity > MaxQuantity-quantity {
				return ErrInvalidQuantity
			}
			s.lines[i].Quantity += quantity
		} else {
			s.lines = append(s.lines, Line{Product: p, Quantity: quantity})
		}
		s.visible = true
		return nil
	})
}

// Remove deletes the line for productID if present.
func (s *Store) Remove(productID int) {
	_ = s.update(func() error {
		if i := s.find(productID); i >= 0 {
			s.lines = slices.Delete(s.lines, i, i+1)
		}
		return nil
	})
}

// SetQuantity replaces the quantity of an existing line.
// A non-positive quantity removes the line; a missing line is left missing.
// Quantities above MaxQuantity return ErrInvalidQuantity.
func (s *Store) SetQuantity(productID, quantity int) error {
	if quantity <= 0 {
		s.Remove(productID)
		return nil
	}
	if quantity > MaxQuantity {
		return ErrInvalidQuantity
	}
	return s.update(func() error {
		if i := s.find(productID); i >= 0 {
			s.lines[i].Quantity = quantity
		}
		return nil
	})
}

// Clear empties the basket without changing its visibility.
func (s *Store) Clear() {
	_ = s.update(func() error {
		s.lines = nil
		return nil
	})
}

// Show reveals the basket.
func (s *Store) Show() {
	_ = s.update(func() error {
		s.visible = true
		return nil
	})
}

// Hide conceals the basket.
func (s *Store) Hide() {
	_ = s.update(func() error {
		s.visible = false
		return nil
	})
}

// Lines returns a copy of the current lines.
func (s *Store) Lines() []Line {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.lines)
}

// Visible reports whether the basket drawer is open.
func (s *Store) Visible() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.visible
}

// TotalItems is the sum of all line quantities.
func (s *Store) TotalItems() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	n := 0
	for _, l := range s.lines {
		n += l.Quantity
	}
	return n
}

// TotalPrice is the sum of all line subtotals.
func (s *Store) TotalPrice() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	total := 0
	for _, l := range s.lines {
		total += l.Subtotal()
	}
	return total
}

// State returns a copy of lines and visibility.
func (s *Store) State() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshot()
}

// Subscribe registers fn to receive the new state after every change.
func (s *Store) Subscribe(fn func(State)) (cancel func()) {
	return s.changes.Subscribe(fn)
}

func (s *Store) find(productID int) int {
	return slices.IndexFunc(s.lines, func(l Line) bool { return l.Product.ID == productID })
}

func (s *Store) snapshot() State {
	return State{Lines: slices.Clone(s.lines), Visible: s.visible}
}

func (s *Store) update(fn func() error) error {
	s.mu.Lock()
	before := s.snapshot()
	if err := fn(); err != nil {
		s.mu.Unlock()
		return err
	}
	after := s.snapshot()
	s.mu.Unlock()

	if !equal(before, after) {
		s.changes.Notify(after)
	}
	return nil
}

func equal(a, b State) bool {
	return a.Visible == b.Visible && slices.Equal(a.Lines, b.Lines)
}
