package domain

import (
	"fmt"
	"math/rand"
	"time"
)

// SeedCatalogSize is the total number of sites seeded into an empty store.
const SeedCatalogSize = 1000

// AdminReferralCode is the fixed referral code of the seeded administrator.
const AdminReferralCode = "ADMINX"

// FlagshipSites returns the hand-curated catalog entries seeded ahead of
// the generated filler.
func FlagshipSites(now time.Time) []SiteLink {
	return []SiteLink{
		{
			ID:          "site-facebook",
			Name:        "Facebook",
			URL:         "https://facebook.com",
			Description: "Connect with friends and the world around you.",
			Category:    CategorySocial,
			Logo:        "https://cdn-icons-png.flaticon.com/512/124/124010.png",
			Likes:       120, Dislikes: 15, Clicks: 450,
			CreatedAt: now, Enabled: true, IsPaid: true,
		},
		{
			ID:          "site-harvard",
			Name:        "Harvard University",
			URL:         "https://harvard.edu",
			Description: "The oldest institution of higher learning in the US.",
			Category:    CategoryEducation,
			Logo:        "https://cdn-icons-png.flaticon.com/512/3671/3671804.png",
			Likes:       240, Dislikes: 5, Clicks: 890,
			CreatedAt: now, Enabled: true,
		},
		{
			ID:          "site-github",
			Name:        "GitHub",
			URL:         "https://github.com",
			Description: "Where the world builds software.",
			Category:    CategoryTech,
			Logo:        "https://cdn-icons-png.flaticon.com/512/25/25231.png",
			Likes:       500, Dislikes: 2, Clicks: 1200,
			CreatedAt: now, Enabled: true, IsPaid: true,
		},
	}
}

// GenerateFillerSites produces count synthetic catalog entries. Roughly 5%
// come out paid so the assembler's paid-first bias is visible on seed data.
func GenerateFillerSites(count int, rng *rand.Rand, now time.Time) []SiteLink {
	cats := Categories()
	sites := make([]SiteLink, 0, count)
	for i := 0; i < count; i++ {
		n := i + 1
		cat := cats[rng.Intn(len(cats))]
		sites = append(sites, SiteLink{
			ID:          fmt.Sprintf("site-%04d", n),
			Name:        fmt.Sprintf("Resource %d", n),
			URL:         fmt.Sprintf("https://example.com/site-%d", n),
			Description: fmt.Sprintf("Exploring the intersection of %s and modern digital life.", cat),
			Category:    cat,
			Logo:        fmt.Sprintf("https://picsum.photos/seed/%d/100/100", n),
			Likes:       rng.Int63n(100),
			Dislikes:    rng.Int63n(20),
			Clicks:      rng.Int63n(500),
			CreatedAt:   now,
			Enabled:     true,
			IsPaid:      rng.Float64() > 0.95,
		})
	}
	return sites
}

// DefaultAdmin returns the administrator account seeded into an empty
// user collection.
func DefaultAdmin(now time.Time) User {
	return User{
		ID:               "admin-1",
		Username:         "admin",
		Email:            "admin@websurfer.com",
		Role:             RoleAdmin,
		CreatedAt:        now,
		Credits:          10000,
		SubscriptionTier: TierGold,
		LastShuffleDate:  now.Format(ShuffleDateLayout),
		ReferralCode:     AdminReferralCode,
		PayoutThreshold:  PayoutThreshold,
	}
}
