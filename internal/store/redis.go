package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	backend "github.com/redis/go-redis/v9"

	"github.com/robalobadob/wordle/apps/go-engine/internal/game"
)

// Redis implements Store on a Redis server. Each session is one JSON string
// key; TTL is handled by Redis expiry and refreshed on every Save.
type Redis struct {
	client *backend.Client
	prefix string
	ttl    time.Duration
}

type RedisOption func(*Redis)

// WithTTL sets the expiration for sessions.
func WithTTL(ttl time.Duration) RedisOption {
	return func(r *Redis) {
		r.ttl = ttl
	}
}

// WithPrefix sets the key prefix for sessions.
func WithPrefix(prefix string) RedisOption {
	return func(r *Redis) {
		r.prefix = prefix
	}
}

// NewRedis creates a Redis store with its own client.
func NewRedis(address, password string, db int, opts ...RedisOption) *Redis {
	rdb := backend.NewClient(&backend.Options{
		Addr:     address,
		Password: password,
		DB:       db,
	})
	return NewRedisFromClient(rdb, opts...)
}

// NewRedisFromClient creates a Redis store from an existing client.
func NewRedisFromClient(client *backend.Client, opts ...RedisOption) *Redis {
	r := &Redis{
		client: client,
		prefix: "wordle:session:",
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

func (r *Redis) key(id string) string {
	return r.prefix + id
}

// Ping checks the server is reachable.
func (r *Redis) Ping(ctx context.Context) error {
	if err := r.client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("redis ping: %w", err)
	}
	return nil
}

// Save stores the snapshot as JSON. A zero TTL means no expiration.
func (r *Redis) Save(ctx context.Context, s game.Snapshot) error {
	if err := requireID(s); err != nil {
		return err
	}
	data, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("failed to marshal session: %w", err)
	}
	if err := r.client.Set(ctx, r.key(s.ID), data, r.ttl).Err(); err != nil {
		return fmt.Errorf("failed to save to redis: %w", err)
	}
	return nil
}

// Get loads a snapshot.
func (r *Redis) Get(ctx context.Context, id string) (game.Snapshot, error) {
	val, err := r.client.Get(ctx, r.key(id)).Bytes()
	if err != nil {
		if errors.Is(err, backend.Nil) {
			return game.Snapshot{}, ErrNotFound
		}
		return game.Snapshot{}, fmt.Errorf("failed to load from redis: %w", err)
	}
	var s game.Snapshot
	if err := json.Unmarshal(val, &s); err != nil {
		return game.Snapshot{}, fmt.Errorf("failed to unmarshal session: %w", err)
	}
	return s, nil
}

// Delete removes a session.
func (r *Redis) Delete(ctx context.Context, id string) error {
	if err := r.client.Del(ctx, r.key(id)).Err(); err != nil {
		return fmt.Errorf("failed to delete from redis: %w", err)
	}
	return nil
}

// Close closes the underlying client.
func (r *Redis) Close() error { return r.client.Close() }
