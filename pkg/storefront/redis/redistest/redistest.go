// Package redistest provides an in-memory redis.Cmdable covering the
// commands the storefront registry issues.
package redistest

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// Client answers GET, SET, DEL and EXPIRE from a map. Other commands panic.
type Client struct {
	redis.Cmdable

	mu   sync.Mutex
	data map[string]string
	ttls map[string]time.Duration
}

// New returns an empty client.
func New() *Client {
	return &Client{data: make(map[string]string), ttls: make(map[string]time.Duration)}
}

func (c *Client) Get(ctx context.Context, key string) *redis.StringCmd {
	c.mu.Lock()
	defer c.mu.Unlock()
	v, ok := c.data[key]
	if !ok {
		return redis.NewStringResult("", redis.Nil)
	}
	return redis.NewStringResult(v, nil)
}

func (c *Client) Set(ctx context.Context, key string, value any, expiration time.Duration) *redis.StatusCmd {
	c.mu.Lock()
	defer c.mu.Unlock()
	switch v := value.(type) {
	case []byte:
		c.data[key] = string(v)
	case string:
		c.data[key] = v
	default:
		c.data[key] = fmt.Sprint(v)
	}
	c.ttls[key] = expiration
	return redis.NewStatusResult("OK", nil)
}

func (c *Client) Del(ctx context.Context, keys ...string) *redis.IntCmd {
	c.mu.Lock()
	defer c.mu.Unlock()
	var n int64
	for _, k := range keys {
		if _, ok := c.data[k]; ok {
			delete(c.data, k)
			delete(c.ttls, k)
			n++
		}
	}
	return redis.NewIntResult(n, nil)
}

func (c *Client) Expire(ctx context.Context, key string, expiration time.Duration) *redis.BoolCmd {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.data[key]; !ok {
		return redis.NewBoolResult(false, nil)
	}
	c.ttls[key] = expiration
	return redis.NewBoolResult(true, nil)
}

// Expiry returns the expiration last set on key.
func (c *Client) Expiry(key string) (time.Duration, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	d, ok := c.ttls[key]
	return d, ok
}

// Put stores a raw value without expiry.
func (c *Client) Put(key, value string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data[key] = value
	c.ttls[key] = 0
}
