// Package queue feeds the docstore mirror: every committed record save is
// published here and a worker drains it into the document backend.
package queue

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
)

// TypeRecordSaved marks a mirror message carrying a saved student record.
const TypeRecordSaved = "record-saved"

// DefaultKey is the redis list the api publishes to and the worker drains.
const DefaultKey = "portal:mirror"

// Message is one unit of mirror work.
type Message struct {
	Type string `json:"type"`
	Body []byte `json:"body"`
}

// Queue is the abstraction over the in-memory and redis backends.
type Queue interface {
	Publish(ctx context.Context, msg Message) error
	Consume(ctx context.Context) (<-chan Message, error)
}

// InMemory is a channel-backed queue for development and tests. Messages do
// not cross process boundaries.
type InMemory struct {
	ch chan Message
}

// NewInMemory creates a bounded in-memory queue.
func NewInMemory(size int) *InMemory {
	return &InMemory{ch: make(chan Message, size)}
}

// Publish enqueues a message, blocking when the buffer is full.
func (q *InMemory) Publish(ctx context.Context, msg Message) error {
	select {
	case q.ch <- msg:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Consume returns a channel that yields messages until ctx is cancelled.
func (q *InMemory) Consume(ctx context.Context) (<-chan Message, error) {
	out := make(chan Message)
	go func() {
		defer close(out)
		for {
			select {
			case msg := <-q.ch:
				select {
				case out <- msg:
				case <-ctx.Done():
					return
				}
			case <-ctx.Done():
				return
			}
		}
	}()
	return out, nil
}

// RedisList is a redis list-backed queue: LPUSH to publish, BRPOP to consume,
// messages framed as JSON envelopes.
type RedisList struct {
	client *redis.Client
	key    string
}

// NewRedisList builds a queue over the given list key.
func NewRedisList(client *redis.Client, key string) *RedisList {
	if key == "" {
		key = DefaultKey
	}
	return &RedisList{client: client, key: key}
}

// Publish enqueues a message.
func (q *RedisList) Publish(ctx context.Context, msg Message) error {
	raw, err := json.Marshal(msg)
	if err != nil {
		return err
	}
	return q.client.LPush(ctx, q.key, raw).Err()
}

// Consume streams messages using BRPOP. Malformed entries are dropped rather
// than wedging the list.
func (q *RedisList) Consume(ctx context.Context) (<-chan Message, error) {
	out := make(chan Message)
	go func() {
		defer close(out)
		for {
			res, err := q.client.BRPop(ctx, 5*time.Second, q.key).Result()
			switch {
			case err == redis.Nil:
				continue
			case ctx.Err() != nil:
				return
			case err != nil:
				continue
			}
			if len(res) != 2 {
				continue
			}
			var msg Message
			if json.Unmarshal([]byte(res[1]), &msg) != nil {
				continue
			}
			select {
			case out <- msg:
			case <-ctx.Done():
				return
			}
		}
	}()
	return out, nil
}
