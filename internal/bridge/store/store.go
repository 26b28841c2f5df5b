// Package store defines the persistence interfaces for the bridge. Drivers
// live under drivers/; the rest of the codebase depends only on these
// interfaces and the sentinel errors.
package store

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/aussiebroadwan/rpcbridge/internal/bridge/domain"
)

// Sentinel errors returned by all drivers.
var (
	// ErrNotFound is returned when a record does not exist.
	ErrNotFound = errors.New("store: not found")

	// ErrAlreadyExists is returned when a uniqueness constraint is violated.
	ErrAlreadyExists = errors.New("store: already exists")
)

// Store is the composite persistence interface.
type Store interface {
	Users() Users
	Sessions() Sessions

	// ApplyMigrations brings the schema up to date. Safe to run on every
	// startup.
	ApplyMigrations() error

	// ReconcileIndexes creates declared indexes that are missing and drops
	// managed indexes that are no longer declared.
	ReconcileIndexes(ctx context.Context, log *slog.Logger) error

	Ping(ctx context.Context) error
	Close() error
}

// Users is the user repository.
type Users interface {
	// CreateUser inserts a new user. Returns ErrAlreadyExists when the name
	// is taken, even under concurrent signup.
	CreateUser(ctx context.Context, user domain.User) error

	GetUserByID(ctx context.Context, id string) (domain.User, error)
	GetUserByName(ctx context.Context, name string) (domain.User, error)

	// TouchUser advances the user's last activity stamp.
	TouchUser(ctx context.Context, id string, at time.Time) error
}

// Sessions is the session repository.
type Sessions interface {
	CreateSession(ctx context.Context, session domain.Session) error

	// DeleteSession removes one session by its owner and secret hash. It is
	// idempotent; deleting an absent session is not an error.
	DeleteSession(ctx context.Context, userID string, secretHash []byte) error

	// ResolveSession finds the session for the given pair and returns its
	// owner. An expired session is deleted on the spot and reported as
	// ErrNotFound, as is an unknown pair.
	ResolveSession(ctx context.Context, userID string, secretHash []byte) (domain.User, error)

	// DeleteExpiredSessions removes sessions older than the sweep TTL and
	// returns the number deleted.
	DeleteExpiredSessions(ctx context.Context) (int64, error)
}
