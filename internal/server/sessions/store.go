// Package sessions implements the server-side credential cache for
// browser sessions: at most one access token per opaque session ID.
//
// The store never interprets tokens; verification belongs to the
// authorization gate. Entries expire on their own after the TTL given at
// Set, so an abandoned session cannot outlive the token it carries.
package sessions

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Store is the session credential cache.
//
// Get returns common.ErrNotFound for an unknown or expired session ID.
// Set overwrites any previous token for the session. Delete is idempotent.
type Store interface {
	Get(ctx context.Context, sessionID string) (string, error)
	Set(ctx context.Context, sessionID, token string, ttl time.Duration) error
	Delete(ctx context.Context, sessionID string) error
}

// NewSessionID returns a fresh opaque session identifier.
func NewSessionID() string {
	return uuid.NewString()
}
