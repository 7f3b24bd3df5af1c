package ports

import "context"

// InsightsGenerator produces short marketing copy via an external
// text-generation service. Implementations never return an error to the
// caller: any failure yields a fixed fallback string.
type InsightsGenerator interface {
	// SiteDescription returns a one-sentence promotional description for a
	// site in the given category.
	SiteDescription(ctx context.Context, name, category string) string
	// TrendInsight returns a short analytical blurb about the given
	// popular site names.
	TrendInsight(ctx context.Context, topSites []string) string
}

// InsightsCache shields the text-generation service from repeat calls.
// A miss returns ("", nil).
type InsightsCache interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
}
