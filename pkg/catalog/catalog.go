// Package catalog holds the immutable list of purchasable products.
package catalog

import (
	"errors"
	"fmt"
)

// Category groups products by heat.
type Category string

const (
	Spicy Category = "spicy"
	Mild  Category = "mild"
)

// ParseCategory converts s into a Category.
func ParseCategory(s string) (Category, error) {
	switch c := Category(s); c {
	case Spicy, Mild:
		return c, nil
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidCategory, s)
}

// Product is a single catalog entry. Price is in the smallest currency unit.
type Product struct {
	ID          int      `json:"id" yaml:"id"`
	Name        string   `json:"name" yaml:"name"`
	Description string   `json:"description" yaml:"description"`
	Tagline     string   `json:"tagline" yaml:"tagline"`
	Price       int      `json:"price" yaml:"price"`
	ImageURL    string   `json:"imageUrl" yaml:"imageUrl"`
	SpiceLevel  int      `json:"spiceLevel" yaml:"spiceLevel"`
	Category    Category `json:"category" yaml:"category"`
}

var (
	// ErrNotFound indicates the requested product does not exist.
	ErrNotFound = errors.New("product not found")
	// ErrEmpty is returned when a catalog is built without products.
	ErrEmpty = errors.New("catalog is empty")
	// ErrInvalidCategory is returned for unknown categories.
	ErrInvalidCategory = errors.New("invalid category")
	// ErrInvalidProduct wraps every product validation failure.
	ErrInvalidProduct = errors.New("invalid product")
)

// Validate reports whether p is a well-formed product.
func (p Product) Validate() error {
	switch {
	case p.ID <= 0:
		return fmt.Errorf("%w: id %d must be positive", ErrInvalidProduct, p.ID)
	case p.Name == "":
		return fmt.Errorf("%w %d: empty name", ErrInvalidProduct, p.ID)
	case p.Price <= 0:
		return fmt.Errorf("%w %d: price %d must be positive", ErrInvalidProduct, p.ID, p.Price)
	case p.SpiceLevel < 1 || p.SpiceLevel > 5:
		return fmt.Errorf("%w %d: spice level %d out of range 1-5", ErrInvalidProduct, p.ID, p.SpiceLevel)
	}
	if _, err := ParseCategory(string(p.Category)); err != nil {
		return fmt.Errorf("%w %d: %v", ErrInvalidProduct, p.ID, err)
	}
	return nil
}

// Catalog is an ordered, read-only product list.
type Catalog struct {
	products []Product
	index    map[int]int
}

// New validates products and returns a catalog preserving their order.
func New(products []Product) (*Catalog, error) {
	if len(products) == 0 {
		return nil, ErrEmpty
	}
	c := &Catalog{
		products: make([]Product, len(products)),
		index:    make(map[int]int, len(products)),
	}
	for i, p := range products {
		if err := p.Validate(); err != nil {
			return nil, err
		}
		if _, dup := c.index[p.ID]; dup {
			return nil, fmt.Errorf("%w: duplicate id %d", ErrInvalidProduct, p.ID)
		}
		c.products[i] = p
		c.index[p.ID] = i
	}
	return c, nil
}

// Len returns the number of products.
func (c *Catalog) Len() int { return len(c.products) }

// Products returns every product in declared order.
func (c *Catalog) Products() []Product {
	out := make([]Product, len(c.products))
	copy(out, c.products)
	return out
}

// Get retrieves a product by ID.
func (c *Catalog) Get(id int) (Product, error) {
	i, ok := c.index[id]
	if !ok {
		return Product{}, ErrNotFound
	}
	return c.products[i], nil
}

// First returns the first product by declared order.
func (c *Catalog) First() Product { return c.products[0] }

// ByCategory returns the products of one category in declared order.
func (c *Catalog) ByCategory(cat Category) []Product {
	var out []Product
	for _, p := range c.products {
		if p.Category == cat {
			out = append(out, p)
		}
	}
	return out
}

// Featured returns at most n products of a category.
func (c *Catalog) Featured(cat Category, n int) []Product {
	out := c.ByCategory(cat)
	if n >= 0 && len(out) > n {
		out = out[:n]
	}
	return out
}
