package ports

import (
	"context"

	"github.com/websurfer/discovery/internal/core/domain"
)

// AdRepository defines persistence operations for sponsored entries.
type AdRepository interface {
	Create(ctx context.Context, ad *domain.Ad) error
	FindByID(ctx context.Context, id string) (*domain.Ad, error)
	Update(ctx context.Context, ad *domain.Ad) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context) ([]*domain.Ad, error)
	// ListEnabled returns the pool the feed assembler splices from.
	ListEnabled(ctx context.Context) ([]*domain.Ad, error)
	IncrementClicks(ctx context.Context, id string) error
	// IncrementImpressions bumps the impression counter by n.
	IncrementImpressions(ctx context.Context, id string, n int64) error
}
