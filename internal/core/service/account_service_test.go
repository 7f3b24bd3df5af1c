package service

import (
	"context"
	"errors"
	"math"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/websurfer/discovery/internal/core/domain"
	"github.com/websurfer/discovery/internal/core/ports"
)

func newTestAccountService(users *stubUserRepo, sites *stubSiteRepo) (*AccountService, *stubActivityRepo) {
	activity := &stubActivityRepo{}
	svc := NewAccountService(users, sites, newStubConfigRepo(), activity, zerolog.Nop())
	return svc, activity
}

func freeUser(id string) *domain.User {
	return &domain.User{
		ID:               id,
		Username:         "user-" + id,
		Role:             domain.RoleUser,
		SubscriptionTier: domain.TierFree,
		PayoutThreshold:  domain.PayoutThreshold,
	}
}

func TestRegisterShuffle_ChargesQuota(t *testing.T) {
	users := newStubUserRepo(freeUser("u1"))
	svc, _ := newTestAccountService(users, newStubSiteRepo())

	// FREE plan allows 7 shuffles per day.
	for i := 1; i <= 7; i++ {
		result, err := svc.RegisterShuffle(context.Background(), "u1")
		if err != nil {
			t.Fatalf("shuffle %d: %v", i, err)
		}
		if result.ShufflesToday != i {
			t.Fatalf("shuffle %d: count=%d", i, result.ShufflesToday)
		}
		if result.DailyLimit != 7 {
			t.Fatalf("expected daily limit 7, got %d", result.DailyLimit)
		}
	}

	if _, err := svc.RegisterShuffle(context.Background(), "u1"); !errors.Is(err, domain.ErrShuffleQuotaExceeded) {
		t.Fatalf("expected quota error, got %v", err)
	}
	// The rejected attempt must not mutate the stored counter.
	stored, _ := users.FindByID(context.Background(), "u1")
	if stored.ShufflesToday != 7 {
		t.Fatalf("rejected shuffle mutated counter: %d", stored.ShufflesToday)
	}
}

func TestRegisterShuffle_ResetsOnNewDate(t *testing.T) {
	u := freeUser("u1")
	u.ShufflesToday = 7
	u.LastShuffleDate = time.Now().AddDate(0, 0, -1).Format(domain.ShuffleDateLayout)
	users := newStubUserRepo(u)
	svc, _ := newTestAccountService(users, newStubSiteRepo())

	result, err := svc.RegisterShuffle(context.Background(), "u1")
	if err != nil {
		t.Fatalf("shuffle after date change: %v", err)
	}
	if result.ShufflesToday != 1 {
		t.Fatalf("expected counter reset to 1, got %d", result.ShufflesToday)
	}
	stored, _ := users.FindByID(context.Background(), "u1")
	if stored.LastShuffleDate != time.Now().Format(domain.ShuffleDateLayout) {
		t.Fatalf("expected last shuffle date updated, got %s", stored.LastShuffleDate)
	}
}

func TestRegisterShuffle_AdminBypassesQuota(t *testing.T) {
	admin := freeUser("a1")
	admin.Role = domain.RoleAdmin
	admin.ShufflesToday = 500
	admin.LastShuffleDate = time.Now().Format(domain.ShuffleDateLayout)
	users := newStubUserRepo(admin)
	svc, _ := newTestAccountService(users, newStubSiteRepo())

	result, err := svc.RegisterShuffle(context.Background(), "a1")
	if err != nil {
		t.Fatalf("admin shuffle: %v", err)
	}
	if !result.Unlimited {
		t.Fatalf("expected unlimited flag for admin")
	}
	if result.ShufflesToday != 501 {
		t.Fatalf("expected count 501, got %d", result.ShufflesToday)
	}
}

func TestRegisterShuffle_UnknownUser(t *testing.T) {
	svc, _ := newTestAccountService(newStubUserRepo(), newStubSiteRepo())
	if _, err := svc.RegisterShuffle(context.Background(), "ghost"); !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

func TestRegisterClick_AccruesToPaidOwner(t *testing.T) {
	owner := freeUser("owner")
	owner.SubscriptionTier = domain.TierGold
	users := newStubUserRepo(owner)
	sites := newStubSiteRepo(&domain.SiteLink{ID: "s1", Name: "Site", Enabled: true, OwnerID: "owner"})
	svc, activity := newTestAccountService(users, sites)

	if err := svc.RegisterClick(context.Background(), ports.ClickInput{SiteID: "s1", ViewerID: "viewer"}); err != nil {
		t.Fatalf("register click: %v", err)
	}

	if got := sites.byID("s1").Clicks; got != 1 {
		t.Fatalf("expected 1 click, got %d", got)
	}
	stored, _ := users.FindByID(context.Background(), "owner")
	if math.Abs(stored.Balance-domain.ClickRewardRate) > 1e-12 {
		t.Fatalf("expected balance %v, got %v", domain.ClickRewardRate, stored.Balance)
	}
	if math.Abs(stored.TotalEarnings-domain.ClickRewardRate) > 1e-12 {
		t.Fatalf("expected total earnings %v, got %v", domain.ClickRewardRate, stored.TotalEarnings)
	}
	if !activity.hasAction("Visited site s1") {
		t.Fatalf("expected viewer activity entry")
	}
}

func TestRegisterClick_FreeOwnerEarnsNothing(t *testing.T) {
	owner := freeUser("owner")
	users := newStubUserRepo(owner)
	sites := newStubSiteRepo(&domain.SiteLink{ID: "s1", Enabled: true, OwnerID: "owner"})
	svc, _ := newTestAccountService(users, sites)

	if err := svc.RegisterClick(context.Background(), ports.ClickInput{SiteID: "s1"}); err != nil {
		t.Fatalf("register click: %v", err)
	}
	if got := sites.byID("s1").Clicks; got != 1 {
		t.Fatalf("expected click counted, got %d", got)
	}
	stored, _ := users.FindByID(context.Background(), "owner")
	if stored.Balance != 0 {
		t.Fatalf("free-tier owner must not earn, balance=%v", stored.Balance)
	}
}

func TestRegisterClick_RemovedSiteIsNoOp(t *testing.T) {
	svc, _ := newTestAccountService(newStubUserRepo(), newStubSiteRepo())
	if err := svc.RegisterClick(context.Background(), ports.ClickInput{SiteID: "gone"}); err != nil {
		t.Fatalf("expected no-op on removed site, got %v", err)
	}
}

func TestRegisterClick_OwnerlessSite(t *testing.T) {
	sites := newStubSiteRepo(&domain.SiteLink{ID: "s1", Enabled: true})
	svc, _ := newTestAccountService(newStubUserRepo(), sites)

	if err := svc.RegisterClick(context.Background(), ports.ClickInput{SiteID: "s1"}); err != nil {
		t.Fatalf("register click: %v", err)
	}
	if got := sites.byID("s1").Clicks; got != 1 {
		t.Fatalf("expected click counted, got %d", got)
	}
}

func TestRequestPayout_RequiresPaymentDetails(t *testing.T) {
	u := freeUser("u1")
	u.Balance = 10.00
	svc, _ := newTestAccountService(newStubUserRepo(u), newStubSiteRepo())

	if _, err := svc.RequestPayout(context.Background(), "u1"); !errors.Is(err, domain.ErrNoPaymentDetails) {
		t.Fatalf("expected ErrNoPaymentDetails, got %v", err)
	}
}

func TestRequestPayout_BelowThreshold(t *testing.T) {
	u := freeUser("u1")
	u.Balance = 4.99
	u.PaymentDetails = "paypal:u1@example.com"
	svc, _ := newTestAccountService(newStubUserRepo(u), newStubSiteRepo())

	if _, err := svc.RequestPayout(context.Background(), "u1"); !errors.Is(err, domain.ErrPayoutBelowThreshold) {
		t.Fatalf("expected ErrPayoutBelowThreshold, got %v", err)
	}
}

func TestRequestPayout_AcceptedLeavesBalanceUntouched(t *testing.T) {
	u := freeUser("u1")
	u.Balance = 7.25
	u.PaymentDetails = "paypal:u1@example.com"
	users := newStubUserRepo(u)
	svc, activity := newTestAccountService(users, newStubSiteRepo())

	result, err := svc.RequestPayout(context.Background(), "u1")
	if err != nil {
		t.Fatalf("request payout: %v", err)
	}
	if result.Amount != 7.25 {
		t.Fatalf("expected amount 7.25, got %v", result.Amount)
	}
	stored, _ := users.FindByID(context.Background(), "u1")
	if stored.Balance != 7.25 {
		t.Fatalf("balance must stay untouched, got %v", stored.Balance)
	}
	if !activity.hasAction("Requested payout") {
		t.Fatalf("expected payout activity entry")
	}
}

func TestPurchasePlan(t *testing.T) {
	u := freeUser("u1")
	u.ShufflesToday = 5
	users := newStubUserRepo(u)
	svc, activity := newTestAccountService(users, newStubSiteRepo())

	updated, err := svc.PurchasePlan(context.Background(), "u1", "plan-gold")
	if err != nil {
		t.Fatalf("purchase plan: %v", err)
	}
	if updated.SubscriptionTier != domain.TierGold {
		t.Fatalf("expected GOLD tier, got %s", updated.SubscriptionTier)
	}
	if updated.Credits != 200 {
		t.Fatalf("expected 200 credits, got %d", updated.Credits)
	}
	if updated.ShufflesToday != 0 {
		t.Fatalf("expected shuffle counter reset, got %d", updated.ShufflesToday)
	}
	if !activity.hasAction("Purchased plan: Gold Surfer") {
		t.Fatalf("expected purchase activity entry")
	}

	if _, err := svc.PurchasePlan(context.Background(), "u1", "plan-unknown"); !errors.Is(err, domain.ErrPlanNotFound) {
		t.Fatalf("expected ErrPlanNotFound, got %v", err)
	}
}

func TestUpdateProfile_MergesOnlySetFields(t *testing.T) {
	u := freeUser("u1")
	u.DisplayName = "Old Name"
	u.Email = "old@example.com"
	users := newStubUserRepo(u)
	svc, _ := newTestAccountService(users, newStubSiteRepo())

	details := "iban:XX00"
	updated, err := svc.UpdateProfile(context.Background(), "u1", ports.ProfilePatch{
		PaymentDetails: &details,
	})
	if err != nil {
		t.Fatalf("update profile: %v", err)
	}
	if updated.PaymentDetails != details {
		t.Fatalf("payment details not applied")
	}
	if updated.DisplayName != "Old Name" || updated.Email != "old@example.com" {
		t.Fatalf("unset fields must stay untouched")
	}
}
