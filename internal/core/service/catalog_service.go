package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/websurfer/discovery/internal/core/domain"
	"github.com/websurfer/discovery/internal/core/ports"
)

// CatalogService manages listings and votes.
type CatalogService struct {
	sites    ports.SiteRepository
	votes    ports.VoteRepository
	users    ports.UserRepository
	config   ports.ConfigRepository
	activity ports.ActivityRepository
	insights ports.InsightsGenerator
	logger   zerolog.Logger
}

func NewCatalogService(
	sites ports.SiteRepository,
	votes ports.VoteRepository,
	users ports.UserRepository,
	config ports.ConfigRepository,
	activity ports.ActivityRepository,
	insights ports.InsightsGenerator,
	logger zerolog.Logger,
) *CatalogService {
	return &CatalogService{
		sites: sites, votes: votes, users: users, config: config,
		activity: activity, insights: insights, logger: logger,
	}
}

// AddSite creates a listing owned by the caller. Every owned listing
// consumes a slot: the owner must stay below plan.maxSites + extraSlots.
// Administrators are exempt. An empty description is filled in by the
// text-generation collaborator.
func (s *CatalogService) AddSite(ctx context.Context, input ports.AddSiteInput) (*domain.SiteLink, error) {
	if input.Name == "" || input.URL == "" || !input.Category.Valid() {
		return nil, fmt.Errorf("%w: name, url and category are required", domain.ErrInvalidListing)
	}

	owner, err := s.users.FindByID(ctx, input.OwnerID)
	if err != nil {
		return nil, err
	}

	if !owner.IsAdmin() {
		cfg, err := s.config.Load(ctx)
		if err != nil {
			return nil, err
		}
		plan := domain.PlanForTier(cfg.Plans, owner.SubscriptionTier)
		owned, err := s.sites.CountByOwner(ctx, owner.ID)
		if err != nil {
			return nil, err
		}
		if owned >= int64(plan.MaxSites+owner.ExtraSlots) {
			return nil, domain.ErrSlotLimitReached
		}
	}

	description := input.Description
	if description == "" && s.insights != nil {
		description = s.insights.SiteDescription(ctx, input.Name, string(input.Category))
	}

	site := &domain.SiteLink{
		ID:          uuid.NewString(),
		URL:         input.URL,
		Name:        input.Name,
		Description: description,
		Category:    input.Category,
		Logo:        input.Logo,
		CreatedAt:   time.Now().UTC(),
		Enabled:     true,
		IsPaid:      input.IsPaid,
		OwnerID:     owner.ID,
	}
	if err := s.sites.Create(ctx, site); err != nil {
		return nil, fmt.Errorf("add site: %w", err)
	}

	recordActivity(ctx, s.activity, s.logger, owner.ID, fmt.Sprintf("Added new site: %s", site.Name))
	return site, nil
}

func (s *CatalogService) GetSite(ctx context.Context, id string) (*domain.SiteLink, error) {
	return s.sites.FindByID(ctx, id)
}

// UpdateSite edits a listing. Only the owner or an administrator may edit.
func (s *CatalogService) UpdateSite(ctx context.Context, input ports.UpdateSiteInput) (*domain.SiteLink, error) {
	site, err := s.sites.FindByID(ctx, input.SiteID)
	if err != nil {
		return nil, err
	}
	if input.ActorRole != domain.RoleAdmin && site.OwnerID != input.ActorID {
		return nil, domain.ErrForbidden
	}
	if !input.Category.Valid() {
		return nil, fmt.Errorf("%w: unknown category %q", domain.ErrInvalidListing, input.Category)
	}

	site.Name = input.Name
	site.URL = input.URL
	site.Description = input.Description
	site.Category = input.Category
	site.Logo = input.Logo
	site.Enabled = input.Enabled
	site.IsPaid = input.IsPaid
	if err := s.sites.Update(ctx, site); err != nil {
		return nil, fmt.Errorf("update site: %w", err)
	}

	recordActivity(ctx, s.activity, s.logger, input.ActorID, fmt.Sprintf("Updated site: %s", site.Name))
	return site, nil
}

// DeleteSite removes a listing. Only the owner or an administrator may
// delete.
func (s *CatalogService) DeleteSite(ctx context.Context, siteID, actorID, actorRole string) error {
	site, err := s.sites.FindByID(ctx, siteID)
	if err != nil {
		return err
	}
	if actorRole != domain.RoleAdmin && site.OwnerID != actorID {
		return domain.ErrForbidden
	}
	if err := s.sites.Delete(ctx, siteID); err != nil {
		return fmt.Errorf("delete site: %w", err)
	}
	recordActivity(ctx, s.activity, s.logger, actorID, fmt.Sprintf("Deleted site: %s", site.Name))
	return nil
}

func (s *CatalogService) ListSites(ctx context.Context, filter ports.ListSitesFilter) ([]*domain.SiteLink, int64, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit <= 0 || filter.Limit > 100 {
		filter.Limit = 100
	}
	return s.sites.List(ctx, filter)
}

// Vote records or switches the user's vote on a site. A repeat vote of the
// same type is a no-op, and switching decrements the old counter while
// incrementing the new one. Voting on a removed site is a no-op.
func (s *CatalogService) Vote(ctx context.Context, userID, siteID string, voteType domain.VoteType) error {
	if !voteType.Valid() {
		return fmt.Errorf("%w: unknown vote type %q", domain.ErrInvalidListing, voteType)
	}

	if _, err := s.sites.FindByID(ctx, siteID); err != nil {
		if errors.Is(err, domain.ErrSiteNotFound) {
			return nil
		}
		return err
	}

	existing, err := s.votes.Find(ctx, userID, siteID)
	switch {
	case errors.Is(err, domain.ErrVoteNotFound):
		if err := s.votes.Set(ctx, &domain.VoteRecord{UserID: userID, SiteID: siteID, Type: voteType}); err != nil {
			return fmt.Errorf("vote: %w", err)
		}
		var likes, dislikes int64
		if voteType == domain.VoteLike {
			likes = 1
		} else {
			dislikes = 1
		}
		if err := s.sites.AdjustVotes(ctx, siteID, likes, dislikes); err != nil {
			return fmt.Errorf("vote: %w", err)
		}
	case err != nil:
		return err
	case existing.Type == voteType:
		return nil
	default:
		if err := s.votes.Set(ctx, &domain.VoteRecord{UserID: userID, SiteID: siteID, Type: voteType}); err != nil {
			return fmt.Errorf("vote: %w", err)
		}
		var likes, dislikes int64 = -1, 1
		if voteType == domain.VoteLike {
			likes, dislikes = 1, -1
		}
		if err := s.sites.AdjustVotes(ctx, siteID, likes, dislikes); err != nil {
			return fmt.Errorf("vote: %w", err)
		}
	}

	recordActivity(ctx, s.activity, s.logger, userID, fmt.Sprintf("%sd site %s", voteType, siteID))
	return nil
}
