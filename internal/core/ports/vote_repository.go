package ports

import (
	"context"

	"github.com/websurfer/discovery/internal/core/domain"
)

// VoteRepository stores at most one vote per (user, site) pair.
type VoteRepository interface {
	// Find returns the user's current vote on the site, or
	// domain.ErrVoteNotFound when none exists.
	Find(ctx context.Context, userID, siteID string) (*domain.VoteRecord, error)
	// Set inserts the record or updates the type of an existing one.
	Set(ctx context.Context, v *domain.VoteRecord) error
}
