package service

import (
	"context"
	"crypto/rand"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/websurfer/discovery/internal/core/domain"
	"github.com/websurfer/discovery/internal/core/ports"
)

const trendInsightCacheKey = "insight:trend"

// AdminService exposes the admin-only configuration and CRUD surface.
type AdminService struct {
	config   ports.ConfigRepository
	ads      ports.AdRepository
	users    ports.UserRepository
	sites    ports.SiteRepository
	activity ports.ActivityRepository
	sessions ports.SessionStore
	insights ports.InsightsGenerator
	cache    ports.InsightsCache
	logger   zerolog.Logger
}

func NewAdminService(
	config ports.ConfigRepository,
	ads ports.AdRepository,
	users ports.UserRepository,
	sites ports.SiteRepository,
	activity ports.ActivityRepository,
	sessions ports.SessionStore,
	insights ports.InsightsGenerator,
	cache ports.InsightsCache,
	logger zerolog.Logger,
) *AdminService {
	return &AdminService{
		config: config, ads: ads, users: users, sites: sites,
		activity: activity, sessions: sessions, insights: insights,
		cache: cache, logger: logger,
	}
}

func (s *AdminService) GetConfig(ctx context.Context) (domain.PlatformConfig, error) {
	return s.config.Load(ctx)
}

// PatchConfig applies a merge-patch: nil fields are untouched, plans are
// matched and replaced by id (unknown ids are ignored).
func (s *AdminService) PatchConfig(ctx context.Context, actorID string, patch ports.ConfigPatch) (domain.PlatformConfig, error) {
	cfg, err := s.config.Load(ctx)
	if err != nil {
		return domain.PlatformConfig{}, err
	}

	if patch.MaxLinksPerPage != nil {
		cfg.MaxLinksPerPage = *patch.MaxLinksPerPage
	}
	if patch.RandomizationLogic != nil {
		cfg.RandomizationLogic = *patch.RandomizationLogic
	}
	if patch.IsSignUpEnabled != nil {
		cfg.IsSignUpEnabled = *patch.IsSignUpEnabled
	}
	for _, p := range patch.Plans {
		for i := range cfg.Plans {
			if cfg.Plans[i].ID == p.ID {
				cfg.Plans[i] = p
				break
			}
		}
	}

	if err := s.config.Save(ctx, cfg); err != nil {
		return domain.PlatformConfig{}, fmt.Errorf("patch config: %w", err)
	}
	recordActivity(ctx, s.activity, s.logger, actorID, "Updated platform configuration")
	return cfg, nil
}

func (s *AdminService) CreateAd(ctx context.Context, actorID string, input ports.AdInput) (*domain.Ad, error) {
	ad := &domain.Ad{
		ID:          "ad-" + uuid.NewString(),
		ClientName:  input.ClientName,
		Title:       input.Title,
		Description: input.Description,
		URL:         input.URL,
		Image:       input.Image,
		CPC:         input.CPC,
		Enabled:     input.Enabled,
	}
	if err := s.ads.Create(ctx, ad); err != nil {
		return nil, fmt.Errorf("create ad: %w", err)
	}
	recordActivity(ctx, s.activity, s.logger, actorID, fmt.Sprintf("Admin added ad: %s", ad.Title))
	return ad, nil
}

func (s *AdminService) UpdateAd(ctx context.Context, actorID, adID string, input ports.AdInput) (*domain.Ad, error) {
	ad, err := s.ads.FindByID(ctx, adID)
	if err != nil {
		return nil, err
	}
	ad.ClientName = input.ClientName
	ad.Title = input.Title
	ad.Description = input.Description
	ad.URL = input.URL
	ad.Image = input.Image
	ad.CPC = input.CPC
	ad.Enabled = input.Enabled
	if err := s.ads.Update(ctx, ad); err != nil {
		return nil, fmt.Errorf("update ad: %w", err)
	}
	recordActivity(ctx, s.activity, s.logger, actorID, fmt.Sprintf("Admin updated ad: %s", ad.Title))
	return ad, nil
}

func (s *AdminService) DeleteAd(ctx context.Context, actorID, adID string) error {
	if err := s.ads.Delete(ctx, adID); err != nil {
		return err
	}
	recordActivity(ctx, s.activity, s.logger, actorID, fmt.Sprintf("Admin deleted ad ID: %s", adID))
	return nil
}

func (s *AdminService) ListAds(ctx context.Context) ([]*domain.Ad, error) {
	return s.ads.List(ctx)
}

// CreateUser adds an account on a user's behalf. Passwordless accounts can
// only be used after an admin sets credentials out of band.
func (s *AdminService) CreateUser(ctx context.Context, actorID string, input ports.CreateUserInput) (*domain.User, error) {
	if input.Username == "" {
		return nil, domain.ErrInvalidCredentials
	}
	role := input.Role
	if role == "" {
		role = domain.RoleUser
	}
	tier := input.SubscriptionTier
	if tier == "" {
		tier = domain.TierFree
	}

	now := time.Now().UTC()
	user := &domain.User{
		ID:               uuid.NewString(),
		Username:         input.Username,
		Email:            input.Email,
		Role:             role,
		CreatedAt:        now,
		Credits:          input.Credits,
		SubscriptionTier: tier,
		LastShuffleDate:  now.Format(domain.ShuffleDateLayout),
		ReferralCode:     randomReferralCode(),
		PayoutThreshold:  domain.PayoutThreshold,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}
	recordActivity(ctx, s.activity, s.logger, actorID, fmt.Sprintf("Admin added user: %s", user.Username))
	return user, nil
}

// DeleteUser removes the account and cascades deletion of its sites.
func (s *AdminService) DeleteUser(ctx context.Context, actorID, userID string) error {
	if err := s.users.Delete(ctx, userID); err != nil {
		return err
	}
	removed, err := s.sites.DeleteByOwner(ctx, userID)
	if err != nil {
		return fmt.Errorf("delete user: cascade sites: %w", err)
	}
	s.revokeSessions(ctx, userID)
	s.logger.Info().Str("user_id", userID).Int64("sites_removed", removed).Msg("user deleted")
	recordActivity(ctx, s.activity, s.logger, actorID, fmt.Sprintf("Admin deleted user ID: %s", userID))
	return nil
}

// BlockUser flips the reversible blocked flag and returns the new state.
// Blocking also revokes the user's live sessions so the lockout is not
// deferred to JWT expiry.
func (s *AdminService) BlockUser(ctx context.Context, actorID, userID string) (bool, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return false, err
	}
	user.IsBlocked = !user.IsBlocked
	if err := s.users.Update(ctx, user); err != nil {
		return false, fmt.Errorf("block user: %w", err)
	}
	action := "unblocked"
	if user.IsBlocked {
		action = "blocked"
		s.revokeSessions(ctx, userID)
	}
	recordActivity(ctx, s.activity, s.logger, actorID, fmt.Sprintf("Admin %s user: %s", action, user.Username))
	return user.IsBlocked, nil
}

// revokeSessions drops every live session of the user. A store failure is
// logged, not surfaced: the blocked flag is already persisted and the
// sessions die at JWT expiry regardless.
func (s *AdminService) revokeSessions(ctx context.Context, userID string) {
	if s.sessions == nil {
		return
	}
	if err := s.sessions.DeleteByUser(ctx, userID); err != nil {
		s.logger.Error().Err(err).Str("user_id", userID).Msg("session revocation failed")
	}
}

func (s *AdminService) ListUsers(ctx context.Context) ([]*domain.User, error) {
	return s.users.List(ctx)
}

func (s *AdminService) ListLogs(ctx context.Context, limit int) ([]*domain.ActivityLog, error) {
	if limit <= 0 || limit > domain.ActivityLogCap {
		limit = domain.ActivityLogCap
	}
	return s.activity.ListRecent(ctx, limit)
}

// TrendInsight returns a short analytical blurb about the most clicked
// sites, cached to spare the text-generation service.
func (s *AdminService) TrendInsight(ctx context.Context) (string, error) {
	if s.cache != nil {
		if cached, err := s.cache.Get(ctx, trendInsightCacheKey); err != nil {
			s.logger.Warn().Err(err).Msg("insight cache read failed")
		} else if cached != "" {
			return cached, nil
		}
	}

	top, err := s.sites.TopByClicks(ctx, 5)
	if err != nil {
		return "", err
	}
	names := make([]string, 0, len(top))
	for _, site := range top {
		names = append(names, site.Name)
	}

	insight := s.insights.TrendInsight(ctx, names)
	if s.cache != nil {
		if err := s.cache.Set(ctx, trendInsightCacheKey, insight); err != nil {
			s.logger.Warn().Err(err).Msg("insight cache write failed")
		}
	}
	return insight, nil
}

// randomReferralCode mirrors the signup code generator without the
// uniqueness retry loop; admin-created accounts are rare enough.
func randomReferralCode() string {
	const alphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	b := make([]byte, referralCodeLength)
	if _, err := rand.Read(b); err != nil {
		return strings.ToUpper(uuid.NewString()[:referralCodeLength])
	}
	for i := range b {
		b[i] = alphabet[int(b[i])%len(alphabet)]
	}
	return string(b)
}
