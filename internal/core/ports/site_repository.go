package ports

import (
	"context"

	"github.com/websurfer/discovery/internal/core/domain"
)

// ListSitesFilter carries query parameters for listing catalog entries.
type ListSitesFilter struct {
	Category domain.Category // empty = all categories
	OwnerID  string          // empty = any owner
	Enabled  *bool           // nil = both enabled and disabled
	Page     int             // 1-based
	Limit    int             // rows per page; capped by the service
}

// SiteRepository defines persistence operations for catalog entries.
type SiteRepository interface {
	Create(ctx context.Context, s *domain.SiteLink) error
	FindByID(ctx context.Context, id string) (*domain.SiteLink, error)
	Update(ctx context.Context, s *domain.SiteLink) error
	Delete(ctx context.Context, id string) error
	// DeleteByOwner removes every site owned by ownerID and returns the
	// number removed. Used for cascading user deletion.
	DeleteByOwner(ctx context.Context, ownerID string) (int64, error)
	// List returns a page of sites matching filter and the total count.
	List(ctx context.Context, filter ListSitesFilter) ([]*domain.SiteLink, int64, error)
	// ListEnabled returns all enabled sites, optionally category-filtered.
	// This is the feed assembler's input and is never paginated.
	ListEnabled(ctx context.Context, category domain.Category) ([]*domain.SiteLink, error)
	CountByOwner(ctx context.Context, ownerID string) (int64, error)
	// IncrementClicks atomically bumps the site's click counter.
	IncrementClicks(ctx context.Context, id string) error
	// AdjustVotes atomically applies signed deltas to the like/dislike
	// counters.
	AdjustVotes(ctx context.Context, id string, likes, dislikes int64) error
	// TopByClicks returns up to limit enabled sites ordered by clicks.
	TopByClicks(ctx context.Context, limit int) ([]*domain.SiteLink, error)
}
