// Package storefront binds one visitor's session, basket and quiz to the catalog.
package storefront

import (
	"nostalgiajars/pkg/basket"
	"nostalgiajars/pkg/catalog"
	"nostalgiajars/pkg/quiz"
	"nostalgiajars/pkg/session"
)

// Part names the store that changed.
type Part string

const (
	PartSession Part = "session"
	PartBasket  Part = "basket"
	PartQuiz    Part = "quiz"
)

// Change is delivered to subscribers after any store mutates.
type Change struct {
	Part Part
}

// Storefront is the per-visitor application instance. Every store it hands
// out is valid for its whole lifetime.
type Storefront struct {
	catalog *catalog.Catalog
	session *session.Store
	basket  *basket.Store
	quiz    *quiz.Quiz
}

// New creates empty stores over c. It panics if c is nil.
func New(c *catalog.Catalog) *Storefront {
	if c == nil {
		panic("storefront: nil catalog")
	}
	return &Storefront{
		catalog: c,
		session: session.New(),
		basket:  basket.New(),
		quiz:    quiz.New(c),
	}
}

func (s *Storefront) Catalog() *catalog.Catalog { return s.catalog }
func (s *Storefront) Session() *session.Store   { return s.session }
func (s *Storefront) Basket() *basket.Store     { return s.basket }
func (s *Storefront) Quiz() *quiz.Quiz          { return s.quiz }

// Subscribe registers fn for changes to any of the three stores.
func (s *Storefront) Subscribe(fn func(Change)) (cancel func()) {
	cancels := []func(){
		s.session.Subscribe(func(session.State) { fn(Change{Part: PartSession}) }),
		s.basket.Subscribe(func(basket.State) { fn(Change{Part: PartBasket}) }),
		s.quiz.Subscribe(func(quiz.State) { fn(Change{Part: PartQuiz}) }),
	}
	return func() {
		for _, c := range cancels {
			c()
		}
	}
}
