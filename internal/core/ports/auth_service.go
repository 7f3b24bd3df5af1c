package ports

import (
	"context"

	"github.com/websurfer/discovery/internal/core/domain"
)

// SignupInput carries a self-service registration.
type SignupInput struct {
	Username     string
	Email        string
	Password     string
	ReferralCode string // optional; unknown codes are ignored
}

// AuthService implements registration, login and logout.
type AuthService interface {
	// Signup creates a FREE-tier account and applies the referral ladder
	// when ReferralCode resolves to an existing user.
	Signup(ctx context.Context, input SignupInput) (*domain.User, error)
	// Login returns a signed bearer token alongside the account.
	Login(ctx context.Context, username, password string) (string, *domain.User, error)
	// Logout invalidates the session identified by the token ID.
	Logout(ctx context.Context, tokenID string) error
}
