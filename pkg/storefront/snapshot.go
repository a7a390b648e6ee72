package storefront

import (
	"github.com/pkg/errors"

	"nostalgiajars/pkg/catalog"
	"nostalgiajars/pkg/quiz"
	"nostalgiajars/pkg/session"
)

// Snapshot is the serializable form of a Storefront. Basket lines are kept
// as product ID and quantity and resolved against the catalog on restore.
type Snapshot struct {
	Session session.State  `json:"session"`
	Basket  BasketSnapshot `json:"basket"`
	Quiz    QuizSnapshot   `json:"quiz"`
}

// BasketSnapshot holds basket lines in order.
type BasketSnapshot struct {
	Lines   []LineSnapshot `json:"lines"`
	Visible bool           `json:"visible"`
}

// LineSnapshot is one basket line.
type LineSnapshot struct {
	ProductID int `json:"productId"`
	Quantity  int `json:"quantity"`
}

// QuizSnapshot holds the recorded answers; the result is recomputed.
type QuizSnapshot struct {
	Heat quiz.Heat `json:"heat,omitempty"`
	Mood quiz.Mood `json:"mood,omitempty"`
}

// Snapshot captures the current state of all stores.
func (s *Storefront) Snapshot() Snapshot {
	b := s.basket.State()
	lines := make([]LineSnapshot, 0, len(b.Lines))
	for _, l := range b.Lines {
		lines = append(lines, LineSnapshot{ProductID: l.Product.ID, Quantity: l.Quantity})
	}
	q := s.quiz.State()
	return Snapshot{
		Session: s.session.State(),
		Basket:  BasketSnapshot{Lines: lines, Visible: b.Visible},
		Quiz:    QuizSnapshot{Heat: q.Heat, Mood: q.Mood},
	}
}

// Restore rebuilds a Storefront over c from snap.
func Restore(c *catalog.Catalog, snap Snapshot) (*Storefront, error) {
	sf := New(c)

	if snap.Session.LoggedIn && snap.Session.Name != "" {
		sf.session.Begin(snap.Session.Name)
	}
	if snap.Session.LoginPromptVisible {
		sf.session.ShowLoginPrompt()
	}

	for _, l := range snap.Basket.Lines {
		p, err := c.Get(l.ProductID)
		if err != nil {
			return nil, errors.Wrapf(err, "restore basket line %d", l.ProductID)
		}
		if err := sf.basket.Add(p, l.Quantity); err != nil {
			return nil, errors.Wrapf(err, "restore basket line %d", l.ProductID)
		}
	}
	if snap.Basket.Visible {
		sf.basket.Show()
	} else {
		sf.basket.Hide()
	}

	if snap.Quiz.Heat != "" {
		if err := sf.quiz.AnswerHeat(snap.Quiz.Heat); err != nil {
			return nil, errors.Wrap(err, "restore quiz heat")
		}
		if snap.Quiz.Mood != "" {
			if _, err := sf.quiz.AnswerMood(snap.Quiz.Mood); err != nil {
				return nil, errors.Wrap(err, "restore quiz mood")
			}
		}
	}
	return sf, nil
}
