package handler

import (
	"context"

	"github.com/labstack/echo/v4"

	"github.com/websurfer/discovery/internal/core/domain"
	"github.com/websurfer/discovery/internal/core/ports"
)

// newTestEcho returns an echo instance configured the way the router
// configures the real one, minus middleware.
func newTestEcho() *echo.Echo {
	e := echo.New()
	e.Validator = NewValidator()
	return e
}

// ---------------------------------------------------------------------------
// Function-field service stubs
// ---------------------------------------------------------------------------

type stubAuthService struct {
	signupFn func(ctx context.Context, input ports.SignupInput) (*domain.User, error)
	loginFn  func(ctx context.Context, username, password string) (string, *domain.User, error)
	logoutFn func(ctx context.Context, tokenID string) error
}

func (s *stubAuthService) Signup(ctx context.Context, input ports.SignupInput) (*domain.User, error) {
	return s.signupFn(ctx, input)
}

func (s *stubAuthService) Login(ctx context.Context, username, password string) (string, *domain.User, error) {
	return s.loginFn(ctx, username, password)
}

func (s *stubAuthService) Logout(ctx context.Context, tokenID string) error {
	return s.logoutFn(ctx, tokenID)
}

type stubFeedService struct {
	assembleFn func(ctx context.Context, input ports.AssembleInput) ([]ports.FeedEntry, error)
	adClickFn  func(ctx context.Context, adID string) error
}

func (s *stubFeedService) Assemble(ctx context.Context, input ports.AssembleInput) ([]ports.FeedEntry, error) {
	return s.assembleFn(ctx, input)
}

func (s *stubFeedService) RegisterAdClick(ctx context.Context, adID string) error {
	return s.adClickFn(ctx, adID)
}

type stubAccountService struct {
	shuffleFn  func(ctx context.Context, userID string) (*ports.ShuffleResult, error)
	clickFn    func(ctx context.Context, input ports.ClickInput) error
	payoutFn   func(ctx context.Context, userID string) (*ports.PayoutResult, error)
	purchaseFn func(ctx context.Context, userID, planID string) (*domain.User, error)
	profileFn  func(ctx context.Context, userID string, patch ports.ProfilePatch) (*domain.User, error)
	getUserFn  func(ctx context.Context, userID string) (*domain.User, error)
}

func (s *stubAccountService) RegisterShuffle(ctx context.Context, userID string) (*ports.ShuffleResult, error) {
	return s.shuffleFn(ctx, userID)
}

func (s *stubAccountService) RegisterClick(ctx context.Context, input ports.ClickInput) error {
	return s.clickFn(ctx, input)
}

func (s *stubAccountService) RequestPayout(ctx context.Context, userID string) (*ports.PayoutResult, error) {
	return s.payoutFn(ctx, userID)
}

func (s *stubAccountService) PurchasePlan(ctx context.Context, userID, planID string) (*domain.User, error) {
	return s.purchaseFn(ctx, userID, planID)
}

func (s *stubAccountService) UpdateProfile(ctx context.Context, userID string, patch ports.ProfilePatch) (*domain.User, error) {
	return s.profileFn(ctx, userID, patch)
}

func (s *stubAccountService) GetUser(ctx context.Context, userID string) (*domain.User, error) {
	return s.getUserFn(ctx, userID)
}

type stubCatalogService struct {
	addFn    func(ctx context.Context, input ports.AddSiteInput) (*domain.SiteLink, error)
	getFn    func(ctx context.Context, id string) (*domain.SiteLink, error)
	updateFn func(ctx context.Context, input ports.UpdateSiteInput) (*domain.SiteLink, error)
	deleteFn func(ctx context.Context, siteID, actorID, actorRole string) error
	listFn   func(ctx context.Context, filter ports.ListSitesFilter) ([]*domain.SiteLink, int64, error)
	voteFn   func(ctx context.Context, userID, siteID string, voteType domain.VoteType) error
}

func (s *stubCatalogService) AddSite(ctx context.Context, input ports.AddSiteInput) (*domain.SiteLink, error) {
	return s.addFn(ctx, input)
}

func (s *stubCatalogService) GetSite(ctx context.Context, id string) (*domain.SiteLink, error) {
	return s.getFn(ctx, id)
}

func (s *stubCatalogService) UpdateSite(ctx context.Context, input ports.UpdateSiteInput) (*domain.SiteLink, error) {
	return s.updateFn(ctx, input)
}

func (s *stubCatalogService) DeleteSite(ctx context.Context, siteID, actorID, actorRole string) error {
	return s.deleteFn(ctx, siteID, actorID, actorRole)
}

func (s *stubCatalogService) ListSites(ctx context.Context, filter ports.ListSitesFilter) ([]*domain.SiteLink, int64, error) {
	return s.listFn(ctx, filter)
}

func (s *stubCatalogService) Vote(ctx context.Context, userID, siteID string, voteType domain.VoteType) error {
	return s.voteFn(ctx, userID, siteID, voteType)
}

type stubAdminService struct {
	getConfigFn   func(ctx context.Context) (domain.PlatformConfig, error)
	patchConfigFn func(ctx context.Context, actorID string, patch ports.ConfigPatch) (domain.PlatformConfig, error)
	blockFn       func(ctx context.Context, actorID, userID string) (bool, error)
	insightFn     func(ctx context.Context) (string, error)
}

func (s *stubAdminService) GetConfig(ctx context.Context) (domain.PlatformConfig, error) {
	return s.getConfigFn(ctx)
}

func (s *stubAdminService) PatchConfig(ctx context.Context, actorID string, patch ports.ConfigPatch) (domain.PlatformConfig, error) {
	return s.patchConfigFn(ctx, actorID, patch)
}

func (s *stubAdminService) CreateAd(context.Context, string, ports.AdInput) (*domain.Ad, error) {
	return nil, nil
}

func (s *stubAdminService) UpdateAd(context.Context, string, string, ports.AdInput) (*domain.Ad, error) {
	return nil, nil
}

func (s *stubAdminService) DeleteAd(context.Context, string, string) error { return nil }

func (s *stubAdminService) ListAds(context.Context) ([]*domain.Ad, error) { return nil, nil }

func (s *stubAdminService) CreateUser(context.Context, string, ports.CreateUserInput) (*domain.User, error) {
	return nil, nil
}

func (s *stubAdminService) DeleteUser(context.Context, string, string) error { return nil }

func (s *stubAdminService) BlockUser(ctx context.Context, actorID, userID string) (bool, error) {
	return s.blockFn(ctx, actorID, userID)
}

func (s *stubAdminService) ListUsers(context.Context) ([]*domain.User, error) { return nil, nil }

func (s *stubAdminService) ListLogs(context.Context, int) ([]*domain.ActivityLog, error) {
	return nil, nil
}

func (s *stubAdminService) TrendInsight(ctx context.Context) (string, error) {
	return s.insightFn(ctx)
}

type stubEnqueuer struct {
	clicks []ports.ClickInput
}

func (s *stubEnqueuer) Enqueue(click ports.ClickInput) {
	s.clicks = append(s.clicks, click)
}
