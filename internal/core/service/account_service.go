package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/websurfer/discovery/internal/core/domain"
	"github.com/websurfer/discovery/internal/core/ports"
)

// AccountService implements the per-user economy.
type AccountService struct {
	users    ports.UserRepository
	sites    ports.SiteRepository
	config   ports.ConfigRepository
	activity ports.ActivityRepository
	logger   zerolog.Logger
}

func NewAccountService(
	users ports.UserRepository,
	sites ports.SiteRepository,
	config ports.ConfigRepository,
	activity ports.ActivityRepository,
	logger zerolog.Logger,
) *AccountService {
	return &AccountService{users: users, sites: sites, config: config, activity: activity, logger: logger}
}

// RegisterShuffle charges one shuffle against the daily quota. The counter
// resets on the first attempt of a new calendar date; administrators bypass
// the limit; a rejected attempt mutates nothing.
func (s *AccountService) RegisterShuffle(ctx context.Context, userID string) (*ports.ShuffleResult, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	today := time.Now().Format(domain.ShuffleDateLayout)
	count := user.ShufflesToday
	if user.LastShuffleDate != today {
		count = 0
	}

	cfg, err := s.config.Load(ctx)
	if err != nil {
		return nil, err
	}
	plan := domain.PlanForTier(cfg.Plans, user.SubscriptionTier)

	if count >= plan.DailyShuffles && !user.IsAdmin() {
		return nil, domain.ErrShuffleQuotaExceeded
	}

	user.ShufflesToday = count + 1
	user.LastShuffleDate = today
	if err := s.users.Update(ctx, user); err != nil {
		return nil, fmt.Errorf("register shuffle: %w", err)
	}

	recordActivity(ctx, s.activity, s.logger, user.ID, fmt.Sprintf("Shuffled sites (count: %d)", user.ShufflesToday))

	return &ports.ShuffleResult{
		ShufflesToday: user.ShufflesToday,
		DailyLimit:    plan.DailyShuffles,
		Unlimited:     user.IsAdmin(),
	}, nil
}

// RegisterClick bumps the site's click counter and accrues the per-click
// reward to an owner on a paid tier. Clicks on removed sites are a no-op.
func (s *AccountService) RegisterClick(ctx context.Context, input ports.ClickInput) error {
	site, err := s.sites.FindByID(ctx, input.SiteID)
	if err != nil {
		if errors.Is(err, domain.ErrSiteNotFound) {
			return nil
		}
		return err
	}

	if err := s.sites.IncrementClicks(ctx, site.ID); err != nil {
		return fmt.Errorf("register click: %w", err)
	}

	if site.OwnerID != "" {
		owner, err := s.users.FindByID(ctx, site.OwnerID)
		switch {
		case err != nil:
			s.logger.Warn().Err(err).Str("owner_id", site.OwnerID).Str("site_id", site.ID).Msg("click owner lookup failed")
		case owner.EarnsFromClicks():
			if err := s.users.ApplyClickEarnings(ctx, owner.ID, domain.ClickRewardRate); err != nil {
				s.logger.Error().Err(err).Str("owner_id", owner.ID).Msg("failed to accrue click earnings")
			}
		}
	}

	if input.ViewerID != "" {
		recordActivity(ctx, s.activity, s.logger, input.ViewerID, fmt.Sprintf("Visited site %s", site.ID))
	}
	return nil
}

// RequestPayout accepts a payout request once the balance has reached the
// user's threshold and a payment destination is configured. The balance is
// left untouched; reconciliation happens outside this system.
func (s *AccountService) RequestPayout(ctx context.Context, userID string) (*ports.PayoutResult, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user.PaymentDetails == "" {
		return nil, domain.ErrNoPaymentDetails
	}

	threshold := user.PayoutThreshold
	if threshold <= 0 {
		threshold = domain.PayoutThreshold
	}
	if user.Balance < threshold {
		return nil, domain.ErrPayoutBelowThreshold
	}

	recordActivity(ctx, s.activity, s.logger, user.ID, fmt.Sprintf("Requested payout of $%.2f", user.Balance))
	s.logger.Info().Str("user_id", user.ID).Float64("amount", user.Balance).Msg("payout request accepted")

	return &ports.PayoutResult{Amount: user.Balance}, nil
}

// PurchasePlan applies a plan purchase: credits are granted, the tier is
// switched and the shuffle counter restarts.
func (s *AccountService) PurchasePlan(ctx context.Context, userID, planID string) (*domain.User, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	cfg, err := s.config.Load(ctx)
	if err != nil {
		return nil, err
	}

	var plan *domain.CreditPlan
	for i := range cfg.Plans {
		if cfg.Plans[i].ID == planID {
			plan = &cfg.Plans[i]
			break
		}
	}
	if plan == nil {
		return nil, domain.ErrPlanNotFound
	}

	user.Credits += plan.Credits
	user.SubscriptionTier = plan.Tier
	user.ShufflesToday = 0
	user.LastShuffleDate = time.Now().Format(domain.ShuffleDateLayout)
	if err := s.users.Update(ctx, user); err != nil {
		return nil, fmt.Errorf("purchase plan: %w", err)
	}

	recordActivity(ctx, s.activity, s.logger, user.ID, fmt.Sprintf("Purchased plan: %s", plan.Name))
	return user, nil
}

// UpdateProfile merges the non-nil patch fields into the account.
func (s *AccountService) UpdateProfile(ctx context.Context, userID string, patch ports.ProfilePatch) (*domain.User, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if patch.DisplayName != nil {
		user.DisplayName = *patch.DisplayName
	}
	if patch.ProfileImage != nil {
		user.ProfileImage = *patch.ProfileImage
	}
	if patch.PaymentDetails != nil {
		user.PaymentDetails = *patch.PaymentDetails
	}
	if patch.Email != nil {
		user.Email = *patch.Email
	}

	if err := s.users.Update(ctx, user); err != nil {
		return nil, fmt.Errorf("update profile: %w", err)
	}

	recordActivity(ctx, s.activity, s.logger, user.ID, "Updated profile details")
	return user, nil
}

func (s *AccountService) GetUser(ctx context.Context, userID string) (*domain.User, error) {
	return s.users.FindByID(ctx, userID)
}
