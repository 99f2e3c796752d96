package cache

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

// Client wraps redis.Client but fails safe by swallowing connectivity
// errors: reads behave like a miss and writes are dropped.
type Client struct {
	client *redis.Client
	log    zerolog.Logger
}

// New creates a new Redis client.
func New(addr, password string, db int, log zerolog.Logger) *Client {
	opts := &redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	}
	return NewWithClient(redis.NewClient(opts), log)
}

// NewWithClient wraps an existing redis client.
func NewWithClient(client *redis.Client, log zerolog.Logger) *Client {
	return &Client{client: client, log: log.With().Str("component", "cache").Logger()}
}

// Get returns value or nil if missing or redis unavailable.
func (c *Client) Get(ctx context.Context, key string) ([]byte, error) {
	if c == nil || c.client == nil {
		return nil, nil
	}
	res, err := c.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		c.log.Warn().Err(err).Str("key", key).Msg("cache get failed")
		return nil, nil
	}
	return res, nil
}

// Set stores value with TTL, ignoring redis errors.
func (c *Client) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if c == nil || c.client == nil {
		return nil
	}
	if err := c.client.Set(ctx, key, value, ttl).Err(); err != nil {
		c.log.Warn().Err(err).Str("key", key).Msg("cache set failed")
	}
	return nil
}

// Delete removes a key, ignoring redis errors.
func (c *Client) Delete(ctx context.Context, key string) error {
	if c == nil || c.client == nil {
		return nil
	}
	if err := c.client.Del(ctx, key).Err(); err != nil {
		c.log.Warn().Err(err).Str("key", key).Msg("cache delete failed")
	}
	return nil
}

// Ping reports whether redis is reachable. Unlike the other methods it
// returns the error, for health checks.
func (c *Client) Ping(ctx context.Context) error {
	if c == nil || c.client == nil {
		return errors.New("cache not configured")
	}
	return c.client.Ping(ctx).Err()
}

// Close releases the underlying connection pool.
func (c *Client) Close() error {
	if c == nil || c.client == nil {
		return nil
	}
	return c.client.Close()
}
