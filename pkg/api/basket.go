package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"go.opentelemetry.io/otel/attribute"

	"nostalgiajars/pkg/basket"
	"nostalgiajars/pkg/otel"
)

type addItemRequest struct {
	ProductID int  `json:"productId"`
	Quantity  *int `json:"quantity,omitempty" minimum:"1" maximum:"999"`
}

type setQuantityRequest struct {
	Quantity int `json:"quantity" maximum:"999"`
}

// getBasketHandler returns the visitor's basket with totals.
// @Summary Get basket
// @Tags basket
// @Produce json
// @Success 200 {object} basketView
// @Router /basket [get]
func (a *API) getBasketHandler(w http.ResponseWriter, r *http.Request) {
	_, span := otel.AddSpan(r.Context(), "api.getBasket")
	defer span.End()

	writeJSON(w, http.StatusOK, newBasketView(visitFrom(r.Context()).sf.Basket()))
}

// addItemHandler adds a product to the basket, merging with an existing line.
// @Summary Add item
// @Tags basket
// @Description Quantity defaults to 1. The line may hold at most 999. Opens the basket.
// @Accept json
// @Produce json
// @Param item body addItemRequest true "Item"
// @Success 200 {object} basketView
// @Failure 400 {string} string
// @Failure 404 {string} string
// @Router /basket/items [post]
func (a *API) addItemHandler(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.AddSpan(r.Context(), "api.addItem")
	defer span.End()

	var req addItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	qty := 1
	if req.Quantity != nil {
		qty = *req.Quantity
	}
	span.SetAttributes(attribute.Int("product.id", req.ProductID), attribute.Int("quantity", qty))

	p, err := a.catalog.Get(req.ProductID)
	if err != nil {
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	}
	v := visitFrom(ctx)
	if err := v.sf.Basket().Add(p, qty); err != nil {
		if errors.Is(err, basket.ErrInvalidQuantity) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		a.log.Error(ctx, "add item", "error", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	a.metrics.BasketAdd(qty)
	a.log.Info(ctx, "basket item added", "visitor", v.id, "product", p.ID, "quantity", qty)
	writeJSON(w, http.StatusOK, newBasketView(v.sf.Basket()))
}

// setQuantityHandler replaces a line's quantity; zero or less removes it, above 999 is rejected.
// @Summary Set quantity
// @Tags basket
// @Accept json
// @Produce json
// @Param id path int true "Product ID"
// @Param quantity body setQuantityRequest true "Quantity"
// @Success 200 {object} basketView
// @Failure 400 {string} string
// @Router /basket/items/{id} [put]
func (a *API) setQuantityHandler(w http.ResponseWriter, r *http.Request) {
	_, span := otel.AddSpan(r.Context(), "api.setQuantity")
	defer span.End()

	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	var req setQuantityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	b := visitFrom(r.Context()).sf.Basket()
	if err := b.SetQuantity(id, req.Quantity); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	writeJSON(w, http.StatusOK, newBasketView(b))
}

// removeItemHandler deletes a line. Removing a missing line succeeds.
// @Summary Remove item
// @Tags basket
// @Produce json
// @Param id path int true "Product ID"
// @Success 200 {object} basketView
// @Router /basket/items/{id} [delete]
func (a *API) removeItemHandler(w http.ResponseWriter, r *http.Request) {
	_, span := otel.AddSpan(r.Context(), "api.removeItem")
	defer span.End()

	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	b := visitFrom(r.Context()).sf.Basket()
	b.Remove(id)
	writeJSON(w, http.StatusOK, newBasketView(b))
}

// clearBasketHandler empties the basket.
// @Summary Clear basket
// @Tags basket
// @Produce json
// @Success 200 {object} basketView
// @Router /basket [delete]
func (a *API) clearBasketHandler(w http.ResponseWriter, r *http.Request) {
	_, span := otel.AddSpan(r.Context(), "api.clearBasket")
	defer span.End()

	b := visitFrom(r.Context()).sf.Basket()
	b.Clear()
	writeJSON(w, http.StatusOK, newBasketView(b))
}

// showBasketHandler opens the basket drawer.
// @Summary Show basket
// @Tags basket
// @Produce json
// @Success 200 {object} basketView
// @Router /basket/show [post]
func (a *API) showBasketHandler(w http.ResponseWriter, r *http.Request) {
	b := visitFrom(r.Context()).sf.Basket()
	b.Show()
	writeJSON(w, http.StatusOK, newBasketView(b))
}

// hideBasketHandler closes the basket drawer.
// @Summary Hide basket
// @Tags basket
// @Produce json
// @Success 200 {object} basketView
// @Router /basket/hide [post]
func (a *API) hideBasketHandler(w http.ResponseWriter, r *http.Request) {
	b := visitFrom(r.Context()).sf.Basket()
	b.Hide()
	writeJSON(w, http.StatusOK, newBasketView(b))
}
