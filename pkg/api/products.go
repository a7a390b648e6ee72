package api

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"nostalgiajars/pkg/catalog"
	"nostalgiajars/pkg/otel"
)

const defaultFeatured = 3

// listProductsHandler lists the catalog.
// @Summary List products
// @Tags products
// @Description Returns products in catalog order, optionally filtered by category
// @Produce json
// @Param category query string false "spicy or mild"
// @Success 200 {array} catalog.Product
// @Failure 400 {string} string
// @Router /products [get]
func (a *API) listProductsHandler(w http.ResponseWriter, r *http.Request) {
	_, span := otel.AddSpan(r.Context(), "api.listProducts")
	defer span.End()

	q := r.URL.Query().Get("category")
	if q == "" {
		writeJSON(w, http.StatusOK, a.catalog.Products())
		return
	}
	cat, err := catalog.ParseCategory(q)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	writeJSON(w, http.StatusOK, nonNil(a.catalog.ByCategory(cat)))
}

// featuredProductsHandler returns the home page strip for one category.
// @Summary Featured products
// @Tags products
// @Produce json
// @Param category query string false "spicy (default) or mild"
// @Param limit query int false "maximum number of products (default 3)"
// @Success 200 {array} catalog.Product
// @Failure 400 {string} string
// @Router /products/featured [get]
func (a *API) featuredProductsHandler(w http.ResponseWriter, r *http.Request) {
	_, span := otel.AddSpan(r.Context(), "api.featuredProducts")
	defer span.End()

	cat := catalog.Spicy
	if q := r.URL.Query().Get("category"); q != "" {
		var err error
		if cat, err = catalog.ParseCategory(q); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
	}
	limit := defaultFeatured
	if q := r.URL.Query().Get("limit"); q != "" {
		n, err := strconv.Atoi(q)
		if err != nil || n < 0 {
			http.Error(w, "limit must be a non-negative integer", http.StatusBadRequest)
			return
		}
		limit = n
	}
	writeJSON(w, http.StatusOK, nonNil(a.catalog.Featured(cat, limit)))
}

// getProductHandler retrieves a product by ID.
// @Summary Get product
// @Tags products
// @Produce json
// @Param id path int true "Product ID"
// @Success 200 {object} catalog.Product
// @Failure 404 {string} string
// @Router /products/{id} [get]
func (a *API) getProductHandler(w http.ResponseWriter, r *http.Request) {
	_, span := otel.AddSpan(r.Context(), "api.getProduct")
	defer span.End()

	p, err := a.productFromPath(r)
	if err != nil {
		if errors.Is(err, catalog.ErrNotFound) {
			http.NotFound(w, r)
			return
		}
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

func (a *API) productFromPath(r *http.Request) (catalog.Product, error) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		return catalog.Product{}, err
	}
	return a.catalog.Get(id)
}

func nonNil(ps []catalog.Product) []catalog.Product {
	if ps == nil {
		return []catalog.Product{}
	}
	return ps
}
