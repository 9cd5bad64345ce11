// Package store keeps live game sessions between requests.
//
// Sessions are engine snapshots keyed by game ID. Backends: memory (this
// process only), Redis and SQLite. Finished games may be kept until they
// expire so their board can still be shown; nothing is kept as history.
package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/robalobadob/wordle/apps/go-engine/internal/game"
)

// ErrNotFound is returned by Get for unknown or expired sessions.
var ErrNotFound = errors.New("session not found")

// Store defines the persistence interface for game sessions.
type Store interface {
	// Save persists or updates a session. s.ID must be set.
	Save(ctx context.Context, s game.Snapshot) error

	// Get retrieves a session by ID, or ErrNotFound.
	Get(ctx context.Context, id string) (game.Snapshot, error)

	// Delete removes a session. Deleting an unknown ID is not an error.
	Delete(ctx context.Context, id string) error

	// Close releases backend resources.
	Close() error
}

// Backend names accepted by Open.
const (
	BackendMemory = "memory"
	BackendRedis  = "redis"
	BackendSQLite = "sqlite"
)

func requireID(s game.Snapshot) error {
	if s.ID == "" {
		return errors.New("session id is empty")
	}
	return nil
}

// Config selects and configures a backend for Open.
type Config struct {
	Backend       string
	RedisAddr     string
	RedisPassword string
	RedisDB       int
	SQLitePath    string
	TTL           time.Duration
}

// Open constructs the backend named in cfg.
func Open(ctx context.Context, cfg Config) (Store, error) {
	switch cfg.Backend {
	case "", BackendMemory:
		return NewMemoryStore(cfg.TTL), nil
	case BackendRedis:
		r := NewRedis(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB, WithTTL(cfg.TTL))
		if err := r.Ping(ctx); err != nil {
			_ = r.Close()
			return nil, err
		}
		return r, nil
	case BackendSQLite:
		return OpenSQLite(ctx, cfg.SQLitePath, cfg.TTL)
	}
	return nil, fmt.Errorf("unknown store backend %q", cfg.Backend)
}
