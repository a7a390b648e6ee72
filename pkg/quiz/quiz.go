// Package quiz recommends a pickle from two answers: heat tolerance and flavour mood.
package quiz

import (
	"errors"
	"fmt"
	"sync"

	"nostalgiajars/pkg/catalog"
	"nostalgiajars/pkg/observe"
)

// Heat is the answer to "how much heat can you handle?".
type Heat string

const (
	Spicy Heat = "spicy"
	Mild  Heat = "mild"
)

// Mood is the answer to "what's your flavour mood?".
type Mood string

const (
	Bold  Mood = "bold"
	Tangy Mood = "tangy"
)

var (
	// ErrInvalidAnswer is returned for answers outside the fixed choices.
	ErrInvalidAnswer = errors.New("invalid answer")
	// ErrOutOfOrder is returned when a question is answered at the wrong stage.
	ErrOutOfOrder = errors.New("question answered out of order")
)

// ParseHeat converts s into a Heat answer.
func ParseHeat(s string) (Heat, error) {
	switch h := Heat(s); h {
	case Spicy, Mild:
		return h, nil
	}
	return "", fmt.Errorf("%w: heat %q", ErrInvalidAnswer, s)
}

// ParseMood converts s into a Mood answer.
func ParseMood(s string) (Mood, error) {
	switch m := Mood(s); m {
	case Bold, Tangy:
		return m, nil
	}
	return "", fmt.Errorf("%w: mood %q", ErrInvalidAnswer, s)
}

// recommendations maps each answer pair to a catalog product ID.
var recommendations = map[Heat]map[Mood]int{
	Spicy: {Bold: 3, Tangy: 2},
	Mild:  {Bold: 4, Tangy: 5},
}

// Recommend looks up the product for an answer pair, falling back to the
// catalog's first product when the mapped ID is missing.
func Recommend(c *catalog.Catalog, heat Heat, mood Mood) catalog.Product {
	if p, err := c.Get(recommendations[heat][mood]); err == nil {
		return p
	}
	return c.First()
}

// Stage is the quiz's position in its question sequence.
type Stage int

const (
	AwaitingHeat Stage = iota
	AwaitingMood
	ResultReady
)

func (s Stage) String() string {
	switch s {
	case AwaitingHeat:
		return "awaiting_heat"
	case AwaitingMood:
		return "awaiting_mood"
	case ResultReady:
		return "result_ready"
	}
	return fmt.Sprintf("Stage(%d)", int(s))
}

// MarshalText encodes the stage by name.
func (s Stage) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// State is a point-in-time copy of the quiz.
type State struct {
	Stage  Stage            `json:"stage"`
	Heat   Heat             `json:"heat,omitempty"`
	Mood   Mood             `json:"mood,omitempty"`
	Result *catalog.Product `json:"result,omitempty"`
}

// Quiz walks one visitor through the two questions.
type Quiz struct {
	catalog *catalog.Catalog

	mu      sync.RWMutex
	heat    Heat
	mood    Mood
	result  *catalog.Product
	changes observe.Subject[State]
}

// New returns a quiz awaiting its first answer.
func New(c *catalog.Catalog) *Quiz {
	return &Quiz{catalog: c}
}

// AnswerHeat records the heat answer. While the mood question is pending the
// heat answer may be replaced, so a visitor can step back a question without
// a Reset. Once the result is ready it returns ErrOutOfOrder.
func (q *Quiz) AnswerHeat(h Heat) error {
	if _, err := ParseHeat(string(h)); err != nil {
		return err
	}
	return q.update(func() error {
		if q.result != nil {
			return ErrOutOfOrder
		}
		q.heat = h
		return nil
	})
}

// AnswerMood records the mood answer and computes the recommendation.
func (q *Quiz) AnswerMood(m Mood) (catalog.Product, error) {
	if _, err := ParseMood(string(m)); err != nil {
		return catalog.Product{}, err
	}
	var p catalog.Product
	err := q.update(func() error {
		if q.heat == "" || q.result != nil {
			return ErrOutOfOrder
		}
		q.mood = m
		p = Recommend(q.catalog, q.heat, m)
		q.result = &p
		return nil
	})
	return p, err
}

// Reset discards both answers and the result.
func (q *Quiz) Reset() {
	_ = q.update(func() error {
		q.heat, q.mood, q.result = "", "", nil
		return nil
	})
}

// Result returns the recommendation once both questions are answered.
func (q *Quiz) Result() (catalog.Product, bool) {
	q.mu.RLock()
	defer q.mu.RUnlock()
	if q.result == nil {
		return catalog.Product{}, false
	}
	return *q.result, true
}

// Stage reports which question is pending.
func (q *Quiz) Stage() Stage {
	q.mu.RLock()
	defer q.mu.RUnlock()
	return q.stage()
}

// State returns the current answers, stage and result.
func (q *Quiz) State() State {
	q.mu.RLock()
	defer q.mu.RUnlock()
	return q.snapshot()
}

// Subscribe registers fn to receive the new state after every change.
func (q *Quiz) Subscribe(fn func(State)) (cancel func()) {
	return q.changes.Subscribe(fn)
}

func (q *Quiz) stage() Stage {
	switch {
	case q.result != nil:
		return ResultReady
	case q.heat != "":
		return AwaitingMood
	}
	return AwaitingHeat
}

func (q *Quiz) snapshot() State {
	st := State{Stage: q.stage(), Heat: q.heat, Mood: q.mood}
	if q.result != nil {
		p := *q.result
		st.Result = &p
	}
	return st
}

func (q *Quiz) update(fn func() error) error {
	q.mu.Lock()
	before := q.snapshot()
	if err := fn(); err != nil {
		q.mu.Unlock()
		return err
	}
	after := q.snapshot()
	q.mu.Unlock()

	if !sameState(before, after) {
		q.changes.Notify(after)
	}
	return nil
}

func sameState(a, b State) bool {
	if a.Stage != b.Stage || a.Heat != b.Heat || a.Mood != b.Mood {
		return false
	}
	if a.Result == nil || b.Result == nil {
		return a.Result == b.Result
	}
	return *a.Result == *b.Result
}
