// Package session keeps the last extraction result of each browser session.
package session

import (
	"context"
	"errors"
	"fmt"

	"universal-scraper/internal/config"
	"universal-scraper/pkg/models"
)

// ErrNotFound is returned when a session has no stored result
var ErrNotFound = errors.New("session result not found")

// Store holds at most one result per session id
type Store interface {
	// Get returns the stored result or ErrNotFound
	Get(ctx context.Context, sessionID string) (*models.ExtractionResult, error)

	// Put replaces whatever the session held before
	Put(ctx context.Context, sessionID string, result *models.ExtractionResult) error

	// Delete forgets the session's result
	Delete(ctx context.Context, sessionID string) error

	// Health reports whether the backend is usable
	Health(ctx context.Context) error

	// Name returns the backend name
	Name() string

	Close() error
}

// NewStore creates the backend selected by cfg.Session.Store
func NewStore(cfg *config.Config) (Store, error) {
	switch cfg.Session.Store {
	case "memory", "":
		return NewMemoryStore(cfg.Session.TTL), nil
	case "redis":
		return NewRedisStore(cfg)
	default:
		return nil, fmt.Errorf("unsupported session store: %s", cfg.Session.Store)
	}
}
