// Package redis keeps storefront snapshots in Redis, outside the process.
// Keys expire with the visitor session. Live updates stay per process, so a
// change reaches only sockets held by the replica that handled it.
package redis

import (
	"context"
	"encoding/json"
	"time"

	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"

	"nostalgiajars/pkg/catalog"
	"nostalgiajars/pkg/storefront"
)

const keyPrefix = "storefront:"

// Registry implements storefront.Registry on top of Redis.
type Registry struct {
	client  redis.Cmdable
	catalog *catalog.Catalog
	ttl     time.Duration
}

// New creates a Redis-backed registry. Snapshots are restored against c.
func New(client redis.Cmdable, c *catalog.Catalog, ttl time.Duration) *Registry {
	return &Registry{client: client, catalog: c, ttl: ttl}
}

func key(id string) string { return keyPrefix + id }

// Load fetches and restores the visitor's snapshot.
func (r *Registry) Load(ctx context.Context, id string) (*storefront.Storefront, error) {
	data, err := r.client.Get(ctx, key(id)).Bytes()
	if err == redis.Nil {
		return nil, storefront.ErrNotFound
	}
	if err != nil {
		return nil, errors.Wrap(err, "redis get")
	}
	return decode(r.catalog, data)
}

// Save writes the snapshot and resets its expiry.
func (r *Registry) Save(ctx context.Context, id string, sf *storefront.Storefront) error {
	data, err := json.Marshal(sf.Snapshot())
	if err != nil {
		return errors.Wrap(err, "encode snapshot")
	}
	if err := r.client.Set(ctx, key(id), data, r.ttl).Err(); err != nil {
		return errors.Wrap(err, "redis set")
	}
	return nil
}

// Touch resets the snapshot's expiry.
func (r *Registry) Touch(ctx context.Context, id string) error {
	ok, err := r.client.Expire(ctx, key(id), r.ttl).Result()
	if err != nil {
		return errors.Wrap(err, "redis expire")
	}
	if !ok {
		return storefront.ErrNotFound
	}
	return nil
}

// Delete removes the visitor's snapshot.
func (r *Registry) Delete(ctx context.Context, id string) error {
	n, err := r.client.Del(ctx, key(id)).Result()
	if err != nil {
		return errors.Wrap(err, "redis del")
	}
	if n == 0 {
		return storefront.ErrNotFound
	}
	return nil
}

func decode(c *catalog.Catalog, data []byte) (*storefront.Storefront, error) {
	var snap storefront.Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, errors.Wrap(err, "decode snapshot")
	}
	return storefront.Restore(c, snap)
}
