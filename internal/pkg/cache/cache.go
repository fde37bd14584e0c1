package cache

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/redis/go-redis/v9"
)

// Client wraps a Redis connection used for caching public listing
// responses. A nil *Client is valid and behaves as a cache that never
// hits, so the service runs without Redis configured.
type Client struct {
	rdb *redis.Client
}

// New connects to Redis at addr. Returns nil (cache disabled) when addr
// is empty or the server is unreachable.
func New(addr, passwd string) *Client {
	if addr == "" {
		log.Println("ℹ️ Redis not configured, response caching disabled")
		return nil
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: passwd,
		DB:       0,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		log.Printf("⚠️ Redis unreachable (%v), response caching disabled", err)
		return nil
	}

	log.Printf("✅ Redis connected [%s]", addr)
	return &Client{rdb: rdb}
}

// Get returns the cached payload for key, or false on miss.
func (c *Client) Get(ctx context.Context, key string) ([]byte, bool) {
	if c == nil {
		return nil, false
	}

	data, err := c.rdb.Get(ctx, key).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			log.Printf("⚠️ Redis GET error for %s: %v", key, err)
		}
		return nil, false
	}
	return data, true
}

// Set stores payload under key with the given TTL. Failures are logged
// and swallowed; the cache is best-effort.
func (c *Client) Set(ctx context.Context, key string, payload []byte, ttl time.Duration) {
	if c == nil {
		return
	}

	if err := c.rdb.Set(ctx, key, payload, ttl).Err(); err != nil {
		log.Printf("⚠️ Redis SET error for %s: %v", key, err)
	}
}

// DeletePattern removes all keys matching pattern (SCAN + DEL), used to
// invalidate listing caches after a property mutation.
func (c *Client) DeletePattern(ctx context.Context, pattern string) {
	if c == nil {
		return
	}

	var cursor uint64
	for {
		keys, next, err := c.rdb.Scan(ctx, cursor, pattern, 100).Result()
		if err != nil {
			log.Printf("⚠️ Redis SCAN error for %s: %v", pattern, err)
			return
		}
		if len(keys) > 0 {
			if err := c.rdb.Del(ctx, keys...).Err(); err != nil {
				log.Printf("⚠️ Redis DEL error: %v", err)
			}
		}
		cursor = next
		if cursor == 0 {
			return
		}
	}
}

// Close releases the underlying connection.
func (c *Client) Close() error {
	if c == nil {
		return nil
	}
	return c.rdb.Close()
}
