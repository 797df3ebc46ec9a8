package cache

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

// Client wraps redis.Client but fails safe: connectivity errors surface as
// cache misses, never as failures. Both the refresh-token store and the
// geocode cache tolerate a cold or absent redis this way.
type Client struct {
	client *redis.Client
}

// New creates a redis-backed cache client. The connection is lazy; a redis
// that is down at startup only costs cache hits.
func New(addr, password string, db int) *Client {
	return &Client{client: redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})}
}

func (c *Client) ready() bool {
	return c != nil && c.client != nil
}

// Get returns the value for key, or nil when the key is missing or redis is
// unreachable.
func (c *Client) Get(ctx context.Context, key string) ([]byte, error) {
	if !c.ready() {
		return nil, nil
	}
	res, err := c.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		// treat as a miss
		return nil, nil
	}
	return res, nil
}

// Set stores value under key with the given TTL, ignoring redis errors.
func (c *Client) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if !c.ready() {
		return nil
	}
	_ = c.client.Set(ctx, key, value, ttl).Err()
	return nil
}

// Delete removes key, ignoring redis errors.
func (c *Client) Delete(ctx context.Context, key string) error {
	if !c.ready() {
		return nil
	}
	_ = c.client.Del(ctx, key).Err()
	return nil
}
