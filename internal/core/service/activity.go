package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/websurfer/discovery/internal/core/domain"
	"github.com/websurfer/discovery/internal/core/ports"
)

// recordActivity appends a human-readable audit entry. Audit failures are
// logged and swallowed so they never fail the triggering action.
func recordActivity(ctx context.Context, repo ports.ActivityRepository, log zerolog.Logger, userID, action string) {
	entry := &domain.ActivityLog{
		ID:        uuid.NewString(),
		UserID:    userID,
		Action:    action,
		Timestamp: time.Now().UTC(),
	}
	if err := repo.Append(ctx, entry); err != nil {
		log.Warn().Err(err).Str("user_id", userID).Str("action", action).Msg("failed to append activity log")
	}
}
