package ports

import (
	"context"

	"github.com/websurfer/discovery/internal/core/domain"
)

// ActivityRepository is the append-only audit trail, ring-bounded at
// domain.ActivityLogCap entries (oldest dropped).
type ActivityRepository interface {
	Append(ctx context.Context, entry *domain.ActivityLog) error
	// ListRecent returns up to limit entries, newest first.
	ListRecent(ctx context.Context, limit int) ([]*domain.ActivityLog, error)
	// Trim drops everything beyond the newest cap entries.
	Trim(ctx context.Context, cap int) (int64, error)
}
