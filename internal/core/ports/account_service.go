package ports

import (
	"context"

	"github.com/websurfer/discovery/internal/core/domain"
)

// ShuffleResult reports the outcome of a successful quota charge.
type ShuffleResult struct {
	ShufflesToday int
	DailyLimit    int
	Unlimited     bool // true for administrators
}

// PayoutResult reports an accepted payout request.
type PayoutResult struct {
	Amount float64
}

// ProfilePatch carries optional profile updates; nil fields are left
// untouched.
type ProfilePatch struct {
	DisplayName    *string
	ProfileImage   *string
	PaymentDetails *string
	Email          *string
}

// ClickInput is one click event flowing through the accrual pipeline.
type ClickInput struct {
	SiteID   string
	ViewerID string // empty for anonymous visitors
}

// AccountService implements the per-user economy: shuffle quota, click
// earnings accrual, payout gating, plan purchases and profile updates.
type AccountService interface {
	// RegisterShuffle charges one shuffle against the user's daily quota.
	// The counter resets on the first action of a new calendar date.
	// Administrators bypass the limit. A failed attempt mutates nothing
	// and returns domain.ErrShuffleQuotaExceeded.
	RegisterShuffle(ctx context.Context, userID string) (*ShuffleResult, error)
	// RegisterClick increments the site's click counter and, when the site
	// has an owner on a paid tier, accrues the per-click reward to the
	// owner's balance and lifetime total.
	RegisterClick(ctx context.Context, input ClickInput) error
	// RequestPayout accepts a payout request when the balance has reached
	// the user's threshold and payment details are configured.
	RequestPayout(ctx context.Context, userID string) (*PayoutResult, error)
	PurchasePlan(ctx context.Context, userID, planID string) (*domain.User, error)
	UpdateProfile(ctx context.Context, userID string, patch ProfilePatch) (*domain.User, error)
	GetUser(ctx context.Context, userID string) (*domain.User, error)
}
