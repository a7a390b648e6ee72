// Package memory implements an in-process storefront registry.
package memory

import (
	"context"
	"sync"
	"time"

	"nostalgiajars/pkg/storefront"
)

type entry struct {
	sf      *storefront.Storefront
	expires time.Time
}

// Registry provides an in-memory implementation of storefront.Registry.
// Entries expire ttl after their last Save or Touch.
type Registry struct {
	mu      sync.RWMutex
	ttl     time.Duration
	now     func() time.Time
	entries map[string]entry
}

// New creates a new in-memory registry.
func New(ttl time.Duration) *Registry {
	return &Registry{ttl: ttl, now: time.Now, entries: make(map[string]entry)}
}

// Load retrieves a live storefront by visitor ID.
func (r *Registry) Load(ctx context.Context, id string) (*storefront.Storefront, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	e, ok := r.entries[id]
	if !ok || !r.now().Before(e.expires) {
		return nil, storefront.ErrNotFound
	}
	return e.sf, nil
}

// Save stores the storefront and extends its lifetime.
func (r *Registry) Save(ctx context.Context, id string, sf *storefront.Storefront) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries[id] = entry{sf: sf, expires: r.now().Add(r.ttl)}
	return nil
}

// Touch extends the lifetime of a live storefront.
func (r *Registry) Touch(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.entries[id]
	if !ok || !r.now().Before(e.expires) {
		return storefront.ErrNotFound
	}
	e.expires = r.now().Add(r.ttl)
	r.entries[id] = e
	return nil
}

// Delete removes a storefront by visitor ID.
func (r *Registry) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.entries[id]; !ok {
		return storefront.ErrNotFound
	}
	delete(r.entries, id)
	return nil
}

// Sweep drops expired entries and returns how many were removed.
func (r *Registry) Sweep() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	now := r.now()
	n := 0
	for id, e := range r.entries {
		if !now.Before(e.expires) {
			delete(r.entries, id)
			n++
		}
	}
	return n
}

// Run sweeps every interval until ctx is done.
func (r *Registry) Run(ctx context.Context, interval time.Duration) {
	t := time.NewTicker(interval)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			r.Sweep()
		}
	}
}

// Len returns the number of stored entries, expired or not.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.entries)
}
