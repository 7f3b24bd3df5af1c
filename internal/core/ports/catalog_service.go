package ports

import (
	"context"

	"github.com/websurfer/discovery/internal/core/domain"
)

// AddSiteInput carries a new listing submitted by a user.
type AddSiteInput struct {
	OwnerID     string
	Name        string
	URL         string
	Description string
	Category    domain.Category
	Logo        string
	IsPaid      bool
}

// UpdateSiteInput carries an edit to an existing listing. ActorID and
// ActorRole drive the ownership check.
type UpdateSiteInput struct {
	SiteID      string
	ActorID     string
	ActorRole   string
	Name        string
	URL         string
	Description string
	Category    domain.Category
	Logo        string
	Enabled     bool
	IsPaid      bool
}

// CatalogService manages listings and votes.
type CatalogService interface {
	AddSite(ctx context.Context, input AddSiteInput) (*domain.SiteLink, error)
	GetSite(ctx context.Context, id string) (*domain.SiteLink, error)
	UpdateSite(ctx context.Context, input UpdateSiteInput) (*domain.SiteLink, error)
	DeleteSite(ctx context.Context, siteID, actorID, actorRole string) error
	ListSites(ctx context.Context, filter ListSitesFilter) ([]*domain.SiteLink, int64, error)
	// Vote records or switches the user's vote on a site, adjusting the
	// site's counters to match the net effect. Voting on a removed site
	// is a no-op.
	Vote(ctx context.Context, userID, siteID string, voteType domain.VoteType) error
}
