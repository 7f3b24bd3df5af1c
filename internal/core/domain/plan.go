package domain

import "errors"

// Economy constants. ClickRewardRate pays $0.01 per 1000 clicks.
const (
	ClickRewardRate      = 0.00001
	PayoutThreshold      = 5.00
	ReferralBonusCredits = 50
	ReferralSlotStep     = 10
	ActivityLogCap       = 500
)

var ErrPlanNotFound = errors.New("plan not found")

// CreditPlan is a purchasable subscription catalog entry.
type CreditPlan struct {
	ID            string           `json:"id" bson:"id"`
	Name          string           `json:"name" bson:"name"`
	Price         float64          `json:"price" bson:"price"`
	Credits       int64            `json:"credits" bson:"credits"`
	MaxSites      int              `json:"max_sites" bson:"max_sites"`
	DailyShuffles int              `json:"daily_shuffles" bson:"daily_shuffles"`
	Tier          SubscriptionTier `json:"tier" bson:"tier"`
}

// DefaultPlans returns the built-in plan catalog. The GOLD quota of 1000
// shuffles per day is effectively unlimited.
func DefaultPlans() []CreditPlan {
	return []CreditPlan{
		{ID: "plan-free", Name: "Free Starter", Price: 0, Credits: 0, MaxSites: 0, DailyShuffles: 7, Tier: TierFree},
		{ID: "plan-bronze", Name: "Bronze Explorer", Price: 9.99, Credits: 50, MaxSites: 1, DailyShuffles: 20, Tier: TierBronze},
		{ID: "plan-gold", Name: "Gold Surfer", Price: 29.99, Credits: 200, MaxSites: 5, DailyShuffles: 1000, Tier: TierGold},
	}
}

// PlanForTier resolves the plan matching tier from the given catalog,
// falling back to the FREE plan when the tier has no catalog entry.
func PlanForTier(plans []CreditPlan, tier SubscriptionTier) CreditPlan {
	for _, p := range plans {
		if p.Tier == tier {
			return p
		}
	}
	for _, p := range plans {
		if p.Tier == TierFree {
			return p
		}
	}
	return DefaultPlans()[0]
}
