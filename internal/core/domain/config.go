package domain

// Randomization strategies for the feed assembler.
const (
	RandomizationFullyRandom      = "fully-random"
	RandomizationCategoryBalanced = "category-balanced"
)

// PlatformConfig is the process-wide admin-mutable configuration. It is
// loaded once at startup and persisted on every admin change.
type PlatformConfig struct {
	MaxLinksPerPage    int          `json:"max_links_per_page" bson:"max_links_per_page"`
	RandomizationLogic string       `json:"randomization_logic" bson:"randomization_logic"`
	IsSignUpEnabled    bool         `json:"is_sign_up_enabled" bson:"is_sign_up_enabled"`
	Plans              []CreditPlan `json:"plans" bson:"plans"`
}

// DefaultConfig returns the configuration used when no stored document
// exists or the stored one fails to decode.
func DefaultConfig() PlatformConfig {
	return PlatformConfig{
		MaxLinksPerPage:    100,
		RandomizationLogic: RandomizationFullyRandom,
		IsSignUpEnabled:    true,
		Plans:              DefaultPlans(),
	}
}
