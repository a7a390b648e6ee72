package api

import (
	"nostalgiajars/pkg/basket"
	"nostalgiajars/pkg/catalog"
	"nostalgiajars/pkg/quiz"
	"nostalgiajars/pkg/session"
	"nostalgiajars/pkg/storefront"
)

type lineView struct {
	Product  catalog.Product `json:"product"`
	Quantity int             `json:"quantity"`
	Subtotal int             `json:"subtotal"`
}

type basketView struct {
	Lines      []lineView `json:"lines"`
	TotalItems int        `json:"totalItems"`
	TotalPrice int        `json:"totalPrice"`
	Visible    bool       `json:"visible"`
}

func newBasketView(b *basket.Store) basketView {
	lines := b.Lines()
	out := basketView{
		Lines:      make([]lineView, 0, len(lines)),
		TotalItems: b.TotalItems(),
		TotalPrice: b.TotalPrice(),
		Visible:    b.Visible(),
	}
	for _, l := range lines {
		out.Lines = append(out.Lines, lineView{Product: l.Product, Quantity: l.Quantity, Subtotal: l.Subtotal()})
	}
	return out
}

// stateView is everything a browser renders; it is also the live-update payload.
type stateView struct {
	Session session.State `json:"session"`
	Basket  basketView    `json:"basket"`
	Quiz    quiz.State    `json:"quiz"`
}

func newStateView(sf *storefront.Storefront) stateView {
	return stateView{
		Session: sf.Session().State(),
		Basket:  newBasketView(sf.Basket()),
		Quiz:    sf.Quiz().State(),
	}
}

type profileView struct {
	Name string `json:"name"`
}
