package interfaces

import (
	"context"
	"time"
)

// SessionStore is the server-side allowlist behind the session cookie. The
// cookie itself carries a signed token; a session only counts as live while
// its id is present in the store, which is what makes logout work.
type SessionStore interface {
	SetSession(ctx context.Context, sessionID string, userID uint, ttl time.Duration) error
	GetSession(ctx context.Context, sessionID string) (uint, error)
	DeleteSession(ctx context.Context, sessionID string) error
}
