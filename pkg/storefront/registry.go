package storefront

import (
	"context"
	"errors"
)

// Registry keeps one Storefront per visitor ID for the life of the visit.
type Registry interface {
	Load(ctx context.Context, id string) (*Storefront, error)
	Save(ctx context.Context, id string, sf *Storefront) error
	Delete(ctx context.Context, id string) error

	// Touch extends the stored storefront's lifetime without rewriting it.
	Touch(ctx context.Context, id string) error
}

// ErrNotFound indicates the visitor has no live storefront.
var ErrNotFound = errors.New("storefront not found")
