package ports

import (
	"context"

	"github.com/websurfer/discovery/internal/core/domain"
)

// ConfigPatch is a merge-patch over the platform configuration; nil fields
// are left untouched. Plans are matched and replaced by id.
type ConfigPatch struct {
	MaxLinksPerPage    *int
	RandomizationLogic *string
	IsSignUpEnabled    *bool
	Plans              []domain.CreditPlan
}

// AdInput carries a new or edited sponsored entry.
type AdInput struct {
	ClientName  string
	Title       string
	Description string
	URL         string
	Image       string
	CPC         float64
	Enabled     bool
}

// CreateUserInput carries an admin-created account.
type CreateUserInput struct {
	Username         string
	Email            string
	Role             string
	Credits          int64
	SubscriptionTier domain.SubscriptionTier
}

// AdminService exposes the admin-only configuration and CRUD surface.
// Role enforcement happens at the transport layer (RBAC middleware); the
// ActorID parameters exist for audit logging.
type AdminService interface {
	GetConfig(ctx context.Context) (domain.PlatformConfig, error)
	PatchConfig(ctx context.Context, actorID string, patch ConfigPatch) (domain.PlatformConfig, error)

	CreateAd(ctx context.Context, actorID string, input AdInput) (*domain.Ad, error)
	UpdateAd(ctx context.Context, actorID, adID string, input AdInput) (*domain.Ad, error)
	DeleteAd(ctx context.Context, actorID, adID string) error
	ListAds(ctx context.Context) ([]*domain.Ad, error)

	CreateUser(ctx context.Context, actorID string, input CreateUserInput) (*domain.User, error)
	// DeleteUser removes the account and cascades deletion of its sites.
	DeleteUser(ctx context.Context, actorID, userID string) error
	// BlockUser flips the reversible blocked flag and returns the new state.
	BlockUser(ctx context.Context, actorID, userID string) (bool, error)
	ListUsers(ctx context.Context) ([]*domain.User, error)

	ListLogs(ctx context.Context, limit int) ([]*domain.ActivityLog, error)
	// TrendInsight returns a short analytical blurb about the most clicked
	// sites. External failures fall back to a fixed string.
	TrendInsight(ctx context.Context) (string, error)
}
