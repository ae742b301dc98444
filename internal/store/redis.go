package store

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// Redis holds the connection backing the mirror queue. BRPOP on the consumer
// side blocks up to 5s, so the read timeout must sit above that.
type Redis struct {
	Client *redis.Client
}

// NewRedis connects to the redis instance at addr.
func NewRedis(addr string) *Redis {
	client := redis.NewClient(&redis.Options{
		Addr:         addr,
		DialTimeout:  2 * time.Second,
		ReadTimeout:  6 * time.Second,
		WriteTimeout: 1 * time.Second,
	})
	return &Redis{Client: client}
}

// Healthy verifies redis connectivity for the health endpoint.
func (r *Redis) Healthy(ctx context.Context) bool {
	if r == nil || r.Client == nil {
		return false
	}
	return r.Client.Ping(ctx).Err() == nil
}

// QueueDepth reports how many mirror messages are waiting under key. Returns
// -1 when redis is unreachable so callers can tell "empty" from "unknown".
func (r *Redis) QueueDepth(ctx context.Context, key string) int64 {
	if r == nil || r.Client == nil {
		return -1
	}
	n, err := r.Client.LLen(ctx, key).Result()
	if err != nil {
		return -1
	}
	return n
}
