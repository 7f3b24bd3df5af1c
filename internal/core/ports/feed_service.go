package ports

import (
	"context"

	"github.com/websurfer/discovery/internal/core/domain"
)

// FeedEntryKind tags a feed entry as a catalog site or a spliced ad.
type FeedEntryKind string

const (
	FeedEntrySite FeedEntryKind = "site"
	FeedEntryAd   FeedEntryKind = "ad"
)

// FeedEntry is one element of the assembled feed. Exactly one of Site and
// Ad is set, matching Kind.
type FeedEntry struct {
	Kind FeedEntryKind    `json:"kind"`
	Site *domain.SiteLink `json:"site,omitempty"`
	Ad   *domain.Ad       `json:"ad,omitempty"`
}

// AssembleInput carries the feed assembler's parameters.
type AssembleInput struct {
	Category   domain.Category // empty = no category filter
	MaxEntries int             // 0 = config maxLinksPerPage
}

// FeedService builds the randomized home feed. Every call re-shuffles;
// there is no caching of a prior order.
type FeedService interface {
	Assemble(ctx context.Context, input AssembleInput) ([]FeedEntry, error)
	// RegisterAdClick bumps the click counter of a spliced ad.
	RegisterAdClick(ctx context.Context, adID string) error
}
