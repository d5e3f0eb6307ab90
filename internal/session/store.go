package session

import (
	"context"
	"time"
)

// Session represents an authenticated user session. It stores only
// identity pointers, never auth state.
type Session struct {
	SessionID string    // unique opaque identifier
	UserID    string    // references users.id
	CreatedAt time.Time // when the session was issued
	ExpiresAt time.Time // absolute expiry time
}

// Store defines how sessions are stored and retrieved.
type Store interface {
	Create(ctx context.Context, s Session) error
	Get(ctx context.Context, sessionID string) (*Session, error)
	Delete(ctx context.Context, sessionID string) error
}
