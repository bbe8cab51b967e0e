package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
)

// Client wraps redis.Client but fails safe by swallowing connectivity errors.
// A Client without an address is disabled: every read misses and every write is a no-op.
type Client struct {
	client *redis.Client
}

// New creates a new Redis client. An empty addr yields a disabled client.
func New(addr, password string, db int) *Client {
	if addr == "" {
		return &Client{}
	}
	return &Client{client: redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})}
}

// Enabled reports whether the client talks to a Redis server.
func (c *Client) Enabled() bool {
	return c != nil && c.client != nil
}

// Ping checks connectivity. Disabled clients always succeed.
func (c *Client) Ping(ctx context.Context) error {
	if !c.Enabled() {
		return nil
	}
	return c.client.Ping(ctx).Err()
}

// GetJSON decodes the value stored at key into dst.
// It reports false on a miss, on redis errors and on undecodable payloads.
func (c *Client) GetJSON(ctx context.Context, key string, dst interface{}) bool {
	if !c.Enabled() {
		return false
	}
	data, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		// redis.Nil or connectivity: both behave like a miss
		return false
	}
	return json.Unmarshal(data, dst) == nil
}

// SetJSON stores the JSON encoding of value with TTL, ignoring redis errors.
func (c *Client) SetJSON(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	if !c.Enabled() {
		return nil
	}
	payload, err := json.Marshal(value)
	if err != nil {
		return err
	}
	_ = c.client.Set(ctx, key, payload, ttl).Err()
	return nil
}

// GetString returns the string stored at key.
// Misses and redis errors both report false.
func (c *Client) GetString(ctx context.Context, key string) (string, bool) {
	if !c.Enabled() {
		return "", false
	}
	value, err := c.client.Get(ctx, key).Result()
	if err != nil {
		return "", false
	}
	return value, true
}

// SetString stores value with TTL. Unlike SetJSON it reports redis errors,
// for keys whose loss would let stale data be served.
func (c *Client) SetString(ctx context.Context, key, value string, ttl time.Duration) error {
	if !c.Enabled() {
		return nil
	}
	return c.client.Set(ctx, key, value, ttl).Err()
}

// SetStringNX stores value only when key is absent and reports whether it did.
func (c *Client) SetStringNX(ctx context.Context, key, value string, ttl time.Duration) (bool, error) {
	if !c.Enabled() {
		return false, nil
	}
	return c.client.SetNX(ctx, key, value, ttl).Result()
}

// Delete removes keys, ignoring redis errors.
func (c *Client) Delete(ctx context.Context, keys ...string) {
	if !c.Enabled() || len(keys) == 0 {
		return
	}
	_ = c.client.Del(ctx, keys...).Err()
}

// Close releases the underlying connection pool.
func (c *Client) Close() error {
	if !c.Enabled() {
		return nil
	}
	return c.client.Close()
}
