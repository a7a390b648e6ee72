package api

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"nostalgiajars/pkg/storefront"
)

const visitorCookie = "visitor_id"

type visitKey struct{}

type visit struct {
	id      string
	sf      *storefront.Storefront
	fresh   bool
	changed atomic.Bool
}

func visitFrom(ctx context.Context) *visit {
	return ctx.Value(visitKey{}).(*visit)
}

// visitorMiddleware binds the request to the visitor's storefront, creating
// one on first contact. Requests of one visitor run one at a time on this
// replica. A changed storefront is saved and pushed to live clients; an
// unchanged one only has its expiry extended.
func (a *API) visitorMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		id := visitorID(r)
		if id != "" {
			defer a.locks.lock(id)()
		}

		v := a.loadVisit(ctx, id)
		a.setVisitorCookie(w, v.id)

		cancel := v.sf.Subscribe(func(storefront.Change) { v.changed.Store(true) })
		next.ServeHTTP(w, r.WithContext(context.WithValue(ctx, visitKey{}, v)))
		cancel()

		if v.fresh || v.changed.Load() {
			a.save(ctx, v)
		} else {
			a.touch(ctx, v)
		}
		if v.changed.Load() {
			a.hub.Publish(v.id, newStateView(v.sf))
		}
	})
}

// liveMiddleware resolves the visitor for a long-lived socket. The
// storefront it loads goes stale while the socket is open, so it is never
// written back.
func (a *API) liveMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		v := a.loadVisit(ctx, visitorID(r))
		a.setVisitorCookie(w, v.id)
		if v.fresh {
			a.save(ctx, v)
		} else {
			a.touch(ctx, v)
		}
		next.ServeHTTP(w, r.WithContext(context.WithValue(ctx, visitKey{}, v)))
	})
}

func visitorID(r *http.Request) string {
	if c, err := r.Cookie(visitorCookie); err == nil {
		return c.Value
	}
	return ""
}

func (a *API) setVisitorCookie(w http.ResponseWriter, id string) {
	http.SetCookie(w, &http.Cookie{
		Name:     visitorCookie,
		Value:    id,
		Path:     "/",
		Expires:  time.Now().Add(a.visitorTTL),
		HttpOnly: true,
		Secure:   a.secureCookie,
		SameSite: http.SameSiteLaxMode,
	})
}

func (a *API) loadVisit(ctx context.Context, id string) *visit {
	if id != "" {
		sf, err := a.registry.Load(ctx, id)
		if err == nil {
			return &visit{id: id, sf: sf}
		}
		if !errors.Is(err, storefront.ErrNotFound) {
			a.log.Warn(ctx, "discarding unreadable storefront", "visitor", id, "error", err)
			if err := a.registry.Delete(ctx, id); err != nil && !errors.Is(err, storefront.ErrNotFound) {
				a.log.Error(ctx, "delete storefront", "visitor", id, "error", err)
			}
		}
	}
	id = uuid.NewString()
	a.log.Debug(ctx, "new visitor", "visitor", id)
	return &visit{id: id, sf: storefront.New(a.catalog), fresh: true}
}

func (a *API) save(ctx context.Context, v *visit) {
	if err := a.registry.Save(ctx, v.id, v.sf); err != nil {
		a.log.Error(ctx, "save storefront", "visitor", v.id, "error", err)
	}
}

// touch keeps the expiry sliding. An entry that expired mid-request is
// written again.
func (a *API) touch(ctx context.Context, v *visit) {
	err := a.registry.Touch(ctx, v.id)
	switch {
	case errors.Is(err, storefront.ErrNotFound):
		a.save(ctx, v)
	case err != nil:
		a.log.Error(ctx, "touch storefront", "visitor", v.id, "error", err)
	}
}

// keyedMutex serializes work per key. Keys nobody holds are forgotten.
type keyedMutex struct {
	mu    sync.Mutex
	locks map[string]*refMutex
}

type refMutex struct {
	sync.Mutex
	refs int
}

func (k *keyedMutex) lock(key string) (unlock func()) {
	k.mu.Lock()
	if k.locks == nil {
		k.locks = make(map[string]*refMutex)
	}
	m, ok := k.locks[key]
	if !ok {
		m = &refMutex{}
		k.locks[key] = m
	}
	m.refs++
	k.mu.Unlock()

	m.Lock()
	return func() {
		m.Unlock()
		k.mu.Lock()
		m.refs--
		if m.refs == 0 {
			delete(k.locks, key)
		}
		k.mu.Unlock()
	}
}
