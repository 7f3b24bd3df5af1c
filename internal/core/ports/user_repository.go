package ports

import (
	"context"

	"github.com/websurfer/discovery/internal/core/domain"
)

// UserRepository defines persistence operations for accounts.
type UserRepository interface {
	Create(ctx context.Context, u *domain.User) error
	FindByID(ctx context.Context, id string) (*domain.User, error)
	FindByUsername(ctx context.Context, username string) (*domain.User, error)
	// FindByReferralCode resolves a user by exact case-insensitive code
	// match. Returns domain.ErrUserNotFound when no user owns the code.
	FindByReferralCode(ctx context.Context, code string) (*domain.User, error)
	Update(ctx context.Context, u *domain.User) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context) ([]*domain.User, error)
	// ApplyClickEarnings atomically credits amount to the user's balance
	// and lifetime total.
	ApplyClickEarnings(ctx context.Context, id string, amount float64) error
	// ApplyReferralBonus atomically records one referred signup: increments
	// referred_count, sets extra_slots and adds bonusCredits (zero when no
	// decile was crossed).
	ApplyReferralBonus(ctx context.Context, id string, extraSlots int, bonusCredits int64) error
}
