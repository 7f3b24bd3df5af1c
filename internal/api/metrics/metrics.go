// Package metrics defines and registers all custom Prometheus metrics for
// the discovery API. It is the single source of truth for metric names,
// labels, and help strings.
//
// All metrics register themselves with the default registry at package
// init via promauto; the /metrics endpoint exposes them.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "discovery"

// ── Feed metrics ──────────────────────────────────────────────────────────────

// FeedShufflesTotal counts feed assemblies, labelled by the kind of viewer
// that requested them.
// Label:
//   - viewer: "anonymous", "user", or "admin"
var FeedShufflesTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "feed_shuffles_total",
		Help:      "Total number of feed shuffles served, by viewer kind.",
	},
	[]string{"viewer"},
)

// FeedQuotaRejectionsTotal counts shuffle requests refused because the
// viewer exhausted their daily quota.
var FeedQuotaRejectionsTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "feed_quota_rejections_total",
		Help:      "Total number of shuffle requests rejected by the daily quota.",
	},
)

// FeedAssemblyDuration measures how long a single feed assembly takes,
// from repository reads through shuffling and ad splicing.
var FeedAssemblyDuration = promauto.NewHistogram(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "feed_assembly_duration_seconds",
		Help:      "Duration of feed assembly, including shuffling and ad placement.",
		Buckets:   prometheus.DefBuckets,
	},
)

// FeedAdsSplicedTotal counts ad entries placed into served feeds.
var FeedAdsSplicedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "feed_ads_spliced_total",
		Help:      "Total number of advertisements spliced into served feeds.",
	},
)

// ── Click metrics ─────────────────────────────────────────────────────────────

// ClicksEnqueuedTotal counts click events accepted onto the dispatcher.
// Label:
//   - target: "site" or "ad"
var ClicksEnqueuedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "clicks_enqueued_total",
		Help:      "Total number of click events enqueued for processing.",
	},
	[]string{"target"},
)

// ClickQueueDepth tracks the current number of clicks waiting in each
// dispatcher worker channel.
// Label:
//   - worker_id: numeric worker index (e.g. "0", "1", …)
var ClickQueueDepth = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "click_queue_depth",
		Help:      "Current number of clicks pending in each dispatcher worker channel.",
	},
	[]string{"worker_id"},
)

// ── Account metrics ───────────────────────────────────────────────────────────

// SignupsTotal counts successful account registrations.
// Label:
//   - referred: "yes" when a referral code was applied, "no" otherwise
var SignupsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "signups_total",
		Help:      "Total number of successful signups, by referral usage.",
	},
	[]string{"referred"},
)

// PayoutRequestsTotal counts payout requests, labelled by outcome.
// Label:
//   - result: "accepted", "below_threshold", or "no_payment_details"
var PayoutRequestsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "payout_requests_total",
		Help:      "Total number of payout requests, by outcome.",
	},
	[]string{"result"},
)

// VotesTotal counts vote submissions that changed state.
// Label:
//   - type: "like" or "dislike"
var VotesTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "votes_total",
		Help:      "Total number of recorded votes, by type.",
	},
	[]string{"type"},
)

// ── Catalog gauges ────────────────────────────────────────────────────────────
//
// The maintenance sweeper refreshes these periodically; they reflect the
// state of the catalog as of the last sweep, not real time.

// CatalogSitesEnabled is the number of enabled site listings.
var CatalogSitesEnabled = promauto.NewGauge(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "catalog_sites_enabled",
		Help:      "Number of enabled site listings as of the last maintenance sweep.",
	},
)

// CatalogAdsEnabled is the number of enabled advertisements.
var CatalogAdsEnabled = promauto.NewGauge(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "catalog_ads_enabled",
		Help:      "Number of enabled advertisements as of the last maintenance sweep.",
	},
)

// RegisteredUsers is the total number of registered accounts.
var RegisteredUsers = promauto.NewGauge(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "registered_users",
		Help:      "Number of registered user accounts as of the last maintenance sweep.",
	},
)
