// Package statuscache implements the Status Cache: a small key/value store
// keyed by order_id with a hash-field "status" holding the canonical
// DeliveryStatus. It is authoritative for status; the Store is authoritative
// for everything else (spec.md §2, §4.6). Adapted from stock/cache.go's
// cache-aside pattern, simplified to the one hash-field this cache actually
// holds — the Rust original does the analogous hset(order_id, "status", ...)
// in event_impl.rs.
package statuscache

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/timour/delivery-service/api"
	"github.com/timour/delivery-service/internal/apperr"
)

const statusField = "status"

// Cache wraps a Redis client scoped to delivery status.
type Cache struct {
	client *redis.Client
}

// New dials Redis and verifies the connection with a PING.
func New(addr string) (*Cache, error) {
	client := redis.NewClient(&redis.Options{
		Addr: addr,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	return &Cache{client: client}, nil
}

// Wrap adapts an already-constructed Redis client into a Cache, used by
// tests to point at a miniredis instance instead of dialing a real server.
func Wrap(client *redis.Client) *Cache {
	return &Cache{client: client}
}

// Close closes the underlying Redis connection.
func (c *Cache) Close() error {
	return c.client.Close()
}

// Set writes the status for orderID unconditionally. Idempotent: setting the
// same field to the same value twice has no observable difference.
func (c *Cache) Set(ctx context.Context, orderID string, status api.DeliveryStatus) error {
	if err := c.client.HSet(ctx, orderID, statusField, string(status)).Err(); err != nil {
		return apperr.Wrap(apperr.KindTransport, "status cache set failed", err)
	}
	return nil
}

// Get retrieves the current status for orderID. A missing key means the
// order has not yet been observed (spec.md §3, Invariant 1); an unrecognized
// stored value is a CachedStateInvalid error.
func (c *Cache) Get(ctx context.Context, orderID string) (api.DeliveryStatus, error) {
	raw, err := c.client.HGet(ctx, orderID, statusField).Result()
	if err == redis.Nil {
		// spec.md §4.4.2: a missing status on the read path is surfaced as
		// Internal, not NotFound — the order was never observed at all,
		// which is a precondition failure of the caller's own state machine
		// rather than a missing resource lookup.
		return "", apperr.New(apperr.KindTransport, "no status recorded for order "+orderID)
	}
	if err != nil {
		return "", apperr.Wrap(apperr.KindTransport, "status cache get failed", err)
	}

	status := api.DeliveryStatus(raw)
	switch status {
	case api.StatusRiderUnaccept, api.StatusRiderAccepted, api.StatusRiderPickedUp, api.StatusRiderDelivered:
		return status, nil
	default:
		return "", apperr.New(apperr.KindCachedStateInvalid, "invalid status value")
	}
}
