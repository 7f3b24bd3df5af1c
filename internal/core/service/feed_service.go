package service

import (
	"context"
	"math/rand"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/websurfer/discovery/internal/core/domain"
	"github.com/websurfer/discovery/internal/core/ports"
)

// adSpliceInterval controls ad placement: one ad after every 8th site.
const adSpliceInterval = 8

// FeedService assembles the randomized home feed.
type FeedService struct {
	sites  ports.SiteRepository
	ads    ports.AdRepository
	config ports.ConfigRepository
	logger zerolog.Logger

	mu  sync.Mutex
	rng *rand.Rand
}

// NewFeedService returns a FeedService. rng may be nil, in which case a
// time-seeded source is used; tests pass a fixed seed.
func NewFeedService(
	sites ports.SiteRepository,
	ads ports.AdRepository,
	config ports.ConfigRepository,
	rng *rand.Rand,
	logger zerolog.Logger,
) *FeedService {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &FeedService{sites: sites, ads: ads, config: config, rng: rng, logger: logger}
}

// Assemble builds a fresh randomized, ad-interleaved feed. Paid sites are
// shuffled and placed ahead of the shuffled non-paid ones, the whole list
// is truncated to the page limit, and one random enabled ad is spliced
// after every 8th site entry.
func (s *FeedService) Assemble(ctx context.Context, input ports.AssembleInput) ([]ports.FeedEntry, error) {
	cfg, err := s.config.Load(ctx)
	if err != nil {
		return nil, err
	}

	max := input.MaxEntries
	if max <= 0 {
		max = cfg.MaxLinksPerPage
	}

	sites, err := s.sites.ListEnabled(ctx, input.Category)
	if err != nil {
		return nil, err
	}
	if len(sites) == 0 {
		return []ports.FeedEntry{}, nil
	}

	var paid, normal []*domain.SiteLink
	for _, site := range sites {
		if site.IsPaid {
			paid = append(paid, site)
		} else {
			normal = append(normal, site)
		}
	}

	s.mu.Lock()
	s.rng.Shuffle(len(paid), func(i, j int) { paid[i], paid[j] = paid[j], paid[i] })
	s.rng.Shuffle(len(normal), func(i, j int) { normal[i], normal[j] = normal[j], normal[i] })
	s.mu.Unlock()

	combined := append(paid, normal...)
	if len(combined) > max {
		combined = combined[:max]
	}

	// Ad pool failures degrade to an ad-free feed rather than killing it.
	adPool, err := s.ads.ListEnabled(ctx)
	if err != nil {
		s.logger.Warn().Err(err).Msg("ad pool unavailable, serving feed without ads")
		adPool = nil
	}

	entries := make([]ports.FeedEntry, 0, len(combined)+len(combined)/adSpliceInterval)
	impressions := make(map[string]int64)
	for i, site := range combined {
		entries = append(entries, ports.FeedEntry{Kind: ports.FeedEntrySite, Site: site})
		if (i+1)%adSpliceInterval == 0 && len(adPool) > 0 {
			ad := adPool[s.intn(len(adPool))]
			entries = append(entries, ports.FeedEntry{Kind: ports.FeedEntryAd, Ad: ad})
			impressions[ad.ID]++
		}
	}

	for adID, n := range impressions {
		if err := s.ads.IncrementImpressions(ctx, adID, n); err != nil {
			s.logger.Warn().Err(err).Str("ad_id", adID).Msg("failed to record ad impressions")
		}
	}

	return entries, nil
}

// RegisterAdClick bumps the click counter of a spliced ad.
func (s *FeedService) RegisterAdClick(ctx context.Context, adID string) error {
	if _, err := s.ads.FindByID(ctx, adID); err != nil {
		return err
	}
	return s.ads.IncrementClicks(ctx, adID)
}

func (s *FeedService) intn(n int) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rng.Intn(n)
}
