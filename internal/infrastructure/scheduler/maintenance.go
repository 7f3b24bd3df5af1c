package scheduler

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/websurfer/discovery/internal/api/metrics"
	"github.com/websurfer/discovery/internal/core/domain"
	"github.com/websurfer/discovery/internal/core/ports"
)

const defaultInterval = 5 * time.Minute

// Maintenance is a cancellable interval task: it trims the activity log
// to its ring bound and refreshes the catalog gauges. It stops when the
// context handed to Start is cancelled.
type Maintenance struct {
	sites    ports.SiteRepository
	ads      ports.AdRepository
	users    ports.UserRepository
	activity ports.ActivityRepository
	interval time.Duration
	log      zerolog.Logger
}

func NewMaintenance(
	sites ports.SiteRepository,
	ads ports.AdRepository,
	users ports.UserRepository,
	activity ports.ActivityRepository,
	interval time.Duration,
	log zerolog.Logger,
) *Maintenance {
	if interval <= 0 {
		interval = defaultInterval
	}
	return &Maintenance{
		sites: sites, ads: ads, users: users, activity: activity,
		interval: interval, log: log,
	}
}

// Start launches the maintenance loop in its own goroutine. One sweep runs
// immediately so the gauges are populated at startup.
func (m *Maintenance) Start(ctx context.Context) {
	go func() {
		m.sweep(ctx)
		ticker := time.NewTicker(m.interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				m.sweep(ctx)
			}
		}
	}()
}

func (m *Maintenance) sweep(ctx context.Context) {
	removed, err := m.activity.Trim(ctx, domain.ActivityLogCap)
	if err != nil {
		m.log.Warn().Err(err).Msg("activity log trim failed")
	} else if removed > 0 {
		m.log.Debug().Int64("removed", removed).Msg("trimmed activity log")
	}

	enabled := true
	if _, total, err := m.sites.List(ctx, ports.ListSitesFilter{Enabled: &enabled, Limit: 1, Page: 1}); err != nil {
		m.log.Warn().Err(err).Msg("site gauge refresh failed")
	} else {
		metrics.CatalogSitesEnabled.Set(float64(total))
	}

	if ads, err := m.ads.ListEnabled(ctx); err != nil {
		m.log.Warn().Err(err).Msg("ad gauge refresh failed")
	} else {
		metrics.CatalogAdsEnabled.Set(float64(len(ads)))
	}

	if users, err := m.users.List(ctx); err != nil {
		m.log.Warn().Err(err).Msg("user gauge refresh failed")
	} else {
		metrics.RegisteredUsers.Set(float64(len(users)))
	}
}
