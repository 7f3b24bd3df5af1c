package ports

import (
	"context"
	"time"
)

// SessionStore tracks the current session per issued token so logout and
// blocked-account revocation take effect before the JWT expires.
type SessionStore interface {
	Save(ctx context.Context, tokenID, userID string, ttl time.Duration) error
	// UserID resolves the session owner, or an empty string when the
	// session no longer exists.
	UserID(ctx context.Context, tokenID string) (string, error)
	Delete(ctx context.Context, tokenID string) error
	// DeleteByUser revokes every live session of the user at once. Used
	// when an account is blocked or deleted.
	DeleteByUser(ctx context.Context, userID string) error
}
