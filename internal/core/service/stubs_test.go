package service

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/websurfer/discovery/internal/core/domain"
	"github.com/websurfer/discovery/internal/core/ports"
)

// ---------------------------------------------------------------------------
// In-memory stub repositories shared by the service tests
// ---------------------------------------------------------------------------

type stubSiteRepo struct {
	sites     []*domain.SiteLink
	listErr   error // if set, every read returns this error
	updateErr error
}

func newStubSiteRepo(sites ...*domain.SiteLink) *stubSiteRepo {
	r := &stubSiteRepo{}
	for _, s := range sites {
		clone := *s
		r.sites = append(r.sites, &clone)
	}
	return r
}

func (r *stubSiteRepo) Create(_ context.Context, s *domain.SiteLink) error {
	clone := *s
	r.sites = append(r.sites, &clone)
	return nil
}

func (r *stubSiteRepo) FindByID(_ context.Context, id string) (*domain.SiteLink, error) {
	if r.listErr != nil {
		return nil, r.listErr
	}
	for _, s := range r.sites {
		if s.ID == id {
			clone := *s
			return &clone, nil
		}
	}
	return nil, domain.ErrSiteNotFound
}

func (r *stubSiteRepo) Update(_ context.Context, s *domain.SiteLink) error {
	if r.updateErr != nil {
		return r.updateErr
	}
	for i, existing := range r.sites {
		if existing.ID == s.ID {
			clone := *s
			r.sites[i] = &clone
			return nil
		}
	}
	return domain.ErrSiteNotFound
}

func (r *stubSiteRepo) Delete(_ context.Context, id string) error {
	for i, s := range r.sites {
		if s.ID == id {
			r.sites = append(r.sites[:i], r.sites[i+1:]...)
			return nil
		}
	}
	return domain.ErrSiteNotFound
}

func (r *stubSiteRepo) DeleteByOwner(_ context.Context, ownerID string) (int64, error) {
	var kept []*domain.SiteLink
	var removed int64
	for _, s := range r.sites {
		if s.OwnerID == ownerID {
			removed++
			continue
		}
		kept = append(kept, s)
	}
	r.sites = kept
	return removed, nil
}

func (r *stubSiteRepo) List(_ context.Context, f ports.ListSitesFilter) ([]*domain.SiteLink, int64, error) {
	if r.listErr != nil {
		return nil, 0, r.listErr
	}
	var matched []*domain.SiteLink
	for _, s := range r.sites {
		if f.Category != "" && s.Category != f.Category {
			continue
		}
		if f.OwnerID != "" && s.OwnerID != f.OwnerID {
			continue
		}
		if f.Enabled != nil && s.Enabled != *f.Enabled {
			continue
		}
		clone := *s
		matched = append(matched, &clone)
	}
	total := int64(len(matched))

	limit := f.Limit
	if limit <= 0 {
		limit = len(matched)
	}
	skip := (f.Page - 1) * limit
	if skip < 0 {
		skip = 0
	}
	if skip > len(matched) {
		return []*domain.SiteLink{}, total, nil
	}
	end := skip + limit
	if end > len(matched) {
		end = len(matched)
	}
	return matched[skip:end], total, nil
}

func (r *stubSiteRepo) ListEnabled(_ context.Context, category domain.Category) ([]*domain.SiteLink, error) {
	if r.listErr != nil {
		return nil, r.listErr
	}
	var out []*domain.SiteLink
	for _, s := range r.sites {
		if !s.Enabled {
			continue
		}
		if category != "" && s.Category != category {
			continue
		}
		clone := *s
		out = append(out, &clone)
	}
	return out, nil
}

func (r *stubSiteRepo) CountByOwner(_ context.Context, ownerID string) (int64, error) {
	var n int64
	for _, s := range r.sites {
		if s.OwnerID == ownerID {
			n++
		}
	}
	return n, nil
}

func (r *stubSiteRepo) IncrementClicks(_ context.Context, id string) error {
	for _, s := range r.sites {
		if s.ID == id {
			s.Clicks++
			return nil
		}
	}
	return domain.ErrSiteNotFound
}

func (r *stubSiteRepo) AdjustVotes(_ context.Context, id string, likes, dislikes int64) error {
	for _, s := range r.sites {
		if s.ID == id {
			s.Likes += likes
			s.Dislikes += dislikes
			return nil
		}
	}
	return domain.ErrSiteNotFound
}

func (r *stubSiteRepo) TopByClicks(_ context.Context, limit int) ([]*domain.SiteLink, error) {
	var enabled []*domain.SiteLink
	for _, s := range r.sites {
		if s.Enabled {
			clone := *s
			enabled = append(enabled, &clone)
		}
	}
	sort.Slice(enabled, func(i, j int) bool { return enabled[i].Clicks > enabled[j].Clicks })
	if len(enabled) > limit {
		enabled = enabled[:limit]
	}
	return enabled, nil
}

func (r *stubSiteRepo) byID(id string) *domain.SiteLink {
	for _, s := range r.sites {
		if s.ID == id {
			return s
		}
	}
	return nil
}

// ---------------------------------------------------------------------------

type stubAdRepo struct {
	ads     []*domain.Ad
	listErr error
}

func newStubAdRepo(ads ...*domain.Ad) *stubAdRepo {
	r := &stubAdRepo{}
	for _, a := range ads {
		clone := *a
		r.ads = append(r.ads, &clone)
	}
	return r
}

func (r *stubAdRepo) Create(_ context.Context, ad *domain.Ad) error {
	clone := *ad
	r.ads = append(r.ads, &clone)
	return nil
}

func (r *stubAdRepo) FindByID(_ context.Context, id string) (*domain.Ad, error) {
	for _, a := range r.ads {
		if a.ID == id {
			clone := *a
			return &clone, nil
		}
	}
	return nil, domain.ErrAdNotFound
}

func (r *stubAdRepo) Update(_ context.Context, ad *domain.Ad) error {
	for i, a := range r.ads {
		if a.ID == ad.ID {
			clone := *ad
			r.ads[i] = &clone
			return nil
		}
	}
	return domain.ErrAdNotFound
}

func (r *stubAdRepo) Delete(_ context.Context, id string) error {
	for i, a := range r.ads {
		if a.ID == id {
			r.ads = append(r.ads[:i], r.ads[i+1:]...)
			return nil
		}
	}
	return domain.ErrAdNotFound
}

func (r *stubAdRepo) List(_ context.Context) ([]*domain.Ad, error) {
	out := make([]*domain.Ad, 0, len(r.ads))
	for _, a := range r.ads {
		clone := *a
		out = append(out, &clone)
	}
	return out, nil
}

func (r *stubAdRepo) ListEnabled(_ context.Context) ([]*domain.Ad, error) {
	if r.listErr != nil {
		return nil, r.listErr
	}
	var out []*domain.Ad
	for _, a := range r.ads {
		if a.Enabled {
			clone := *a
			out = append(out, &clone)
		}
	}
	return out, nil
}

func (r *stubAdRepo) IncrementClicks(_ context.Context, id string) error {
	for _, a := range r.ads {
		if a.ID == id {
			a.Clicks++
			return nil
		}
	}
	return domain.ErrAdNotFound
}

func (r *stubAdRepo) IncrementImpressions(_ context.Context, id string, n int64) error {
	for _, a := range r.ads {
		if a.ID == id {
			a.Impressions += n
			return nil
		}
	}
	return domain.ErrAdNotFound
}

// ---------------------------------------------------------------------------

type stubUserRepo struct {
	users           map[string]*domain.User
	createErr       error
	updateErr       error
	referralCodeErr error
}

func newStubUserRepo(users ...*domain.User) *stubUserRepo {
	r := &stubUserRepo{users: make(map[string]*domain.User)}
	for _, u := range users {
		clone := *u
		r.users[u.ID] = &clone
	}
	return r
}

func (r *stubUserRepo) Create(_ context.Context, u *domain.User) error {
	if r.createErr != nil {
		return r.createErr
	}
	for _, existing := range r.users {
		if existing.Username == u.Username {
			return domain.ErrUserExists
		}
	}
	clone := *u
	r.users[u.ID] = &clone
	return nil
}

func (r *stubUserRepo) FindByID(_ context.Context, id string) (*domain.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	clone := *u
	return &clone, nil
}

func (r *stubUserRepo) FindByUsername(_ context.Context, username string) (*domain.User, error) {
	for _, u := range r.users {
		if u.Username == username {
			clone := *u
			return &clone, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) FindByReferralCode(_ context.Context, code string) (*domain.User, error) {
	if r.referralCodeErr != nil {
		return nil, r.referralCodeErr
	}
	for _, u := range r.users {
		if strings.EqualFold(u.ReferralCode, code) {
			clone := *u
			return &clone, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) Update(_ context.Context, u *domain.User) error {
	if r.updateErr != nil {
		return r.updateErr
	}
	if _, ok := r.users[u.ID]; !ok {
		return domain.ErrUserNotFound
	}
	clone := *u
	r.users[u.ID] = &clone
	return nil
}

func (r *stubUserRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.users[id]; !ok {
		return domain.ErrUserNotFound
	}
	delete(r.users, id)
	return nil
}

func (r *stubUserRepo) List(_ context.Context) ([]*domain.User, error) {
	out := make([]*domain.User, 0, len(r.users))
	for _, u := range r.users {
		clone := *u
		out = append(out, &clone)
	}
	return out, nil
}

func (r *stubUserRepo) ApplyClickEarnings(_ context.Context, id string, amount float64) error {
	u, ok := r.users[id]
	if !ok {
		return domain.ErrUserNotFound
	}
	u.Balance += amount
	u.TotalEarnings += amount
	return nil
}

func (r *stubUserRepo) ApplyReferralBonus(_ context.Context, id string, extraSlots int, bonusCredits int64) error {
	u, ok := r.users[id]
	if !ok {
		return domain.ErrUserNotFound
	}
	u.ReferredCount++
	u.ExtraSlots = extraSlots
	u.Credits += bonusCredits
	return nil
}

// ---------------------------------------------------------------------------

type stubVoteRepo struct {
	votes map[string]*domain.VoteRecord
}

func newStubVoteRepo() *stubVoteRepo {
	return &stubVoteRepo{votes: make(map[string]*domain.VoteRecord)}
}

func voteKey(userID, siteID string) string { return userID + "|" + siteID }

func (r *stubVoteRepo) Find(_ context.Context, userID, siteID string) (*domain.VoteRecord, error) {
	v, ok := r.votes[voteKey(userID, siteID)]
	if !ok {
		return nil, domain.ErrVoteNotFound
	}
	clone := *v
	return &clone, nil
}

func (r *stubVoteRepo) Set(_ context.Context, v *domain.VoteRecord) error {
	clone := *v
	r.votes[voteKey(v.UserID, v.SiteID)] = &clone
	return nil
}

// ---------------------------------------------------------------------------

type stubActivityRepo struct {
	entries []*domain.ActivityLog
}

func (r *stubActivityRepo) Append(_ context.Context, entry *domain.ActivityLog) error {
	clone := *entry
	r.entries = append(r.entries, &clone)
	return nil
}

func (r *stubActivityRepo) ListRecent(_ context.Context, limit int) ([]*domain.ActivityLog, error) {
	out := make([]*domain.ActivityLog, 0, len(r.entries))
	for i := len(r.entries) - 1; i >= 0 && len(out) < limit; i-- {
		clone := *r.entries[i]
		out = append(out, &clone)
	}
	return out, nil
}

func (r *stubActivityRepo) Trim(_ context.Context, cap int) (int64, error) {
	if len(r.entries) <= cap {
		return 0, nil
	}
	removed := int64(len(r.entries) - cap)
	r.entries = r.entries[len(r.entries)-cap:]
	return removed, nil
}

func (r *stubActivityRepo) hasAction(substr string) bool {
	for _, e := range r.entries {
		if strings.Contains(e.Action, substr) {
			return true
		}
	}
	return false
}

// ---------------------------------------------------------------------------

type stubConfigRepo struct {
	cfg     domain.PlatformConfig
	loadErr error
	saves   int
}

func newStubConfigRepo() *stubConfigRepo {
	return &stubConfigRepo{cfg: domain.DefaultConfig()}
}

func (r *stubConfigRepo) Load(_ context.Context) (domain.PlatformConfig, error) {
	if r.loadErr != nil {
		return domain.PlatformConfig{}, r.loadErr
	}
	return r.cfg, nil
}

func (r *stubConfigRepo) Save(_ context.Context, cfg domain.PlatformConfig) error {
	r.cfg = cfg
	r.saves++
	return nil
}

// ---------------------------------------------------------------------------

type stubSessionStore struct {
	sessions map[string]string
	saveErr  error
}

func newStubSessionStore() *stubSessionStore {
	return &stubSessionStore{sessions: make(map[string]string)}
}

func (s *stubSessionStore) Save(_ context.Context, tokenID, userID string, _ time.Duration) error {
	if s.saveErr != nil {
		return s.saveErr
	}
	s.sessions[tokenID] = userID
	return nil
}

func (s *stubSessionStore) UserID(_ context.Context, tokenID string) (string, error) {
	return s.sessions[tokenID], nil
}

func (s *stubSessionStore) Delete(_ context.Context, tokenID string) error {
	delete(s.sessions, tokenID)
	return nil
}

func (s *stubSessionStore) DeleteByUser(_ context.Context, userID string) error {
	for tokenID, owner := range s.sessions {
		if owner == userID {
			delete(s.sessions, tokenID)
		}
	}
	return nil
}

// ---------------------------------------------------------------------------

type stubInsights struct {
	descriptions int
	trends       int
	lastTopSites []string
}

func (s *stubInsights) SiteDescription(_ context.Context, name, _ string) string {
	s.descriptions++
	return "Generated blurb for " + name
}

func (s *stubInsights) TrendInsight(_ context.Context, topSites []string) string {
	s.trends++
	s.lastTopSites = topSites
	return "Tech sites are trending."
}

type stubInsightsCache struct {
	values map[string]string
}

func newStubInsightsCache() *stubInsightsCache {
	return &stubInsightsCache{values: make(map[string]string)}
}

func (c *stubInsightsCache) Get(_ context.Context, key string) (string, error) {
	return c.values[key], nil
}

func (c *stubInsightsCache) Set(_ context.Context, key, value string) error {
	c.values[key] = value
	return nil
}
