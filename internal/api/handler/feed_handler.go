package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/websurfer/discovery/internal/api/metrics"
	"github.com/websurfer/discovery/internal/core/domain"
	"github.com/websurfer/discovery/internal/core/ports"
)

// FeedHandler serves the randomized home feed and ad click-throughs.
type FeedHandler struct {
	feed     ports.FeedService
	accounts ports.AccountService
}

func NewFeedHandler(feed ports.FeedService, accounts ports.AccountService) *FeedHandler {
	return &FeedHandler{feed: feed, accounts: accounts}
}

type feedResponse struct {
	Entries []ports.FeedEntry `json:"entries"`
	Shuffle *shuffleStatus    `json:"shuffle,omitempty"`
}

type shuffleStatus struct {
	ShufflesToday int  `json:"shuffles_today"`
	DailyLimit    int  `json:"daily_limit"`
	Unlimited     bool `json:"unlimited"`
}

// Get assembles and returns a freshly shuffled feed.
//
// Anonymous visitors get an uncharged shuffle. Authenticated users are
// charged one shuffle against their daily quota first; 429 means the
// quota is spent and no feed is returned.
//
// @Summary      Get the shuffled discovery feed
// @Tags         feed
// @Produce      json
// @Param        category  query     string  false  "Restrict to one category"
// @Success      200       {object}  feedResponse
// @Failure      429       {object}  map[string]string
// @Router       /v1/feed [get]
func (h *FeedHandler) Get(c echo.Context) error {
	userID, role := optionalClaims(c)

	resp := feedResponse{}
	viewer := "anonymous"
	if userID != "" {
		result, err := h.accounts.RegisterShuffle(c.Request().Context(), userID)
		if err != nil {
			if err == domain.ErrShuffleQuotaExceeded {
				metrics.FeedQuotaRejectionsTotal.Inc()
			}
			return err
		}
		resp.Shuffle = &shuffleStatus{
			ShufflesToday: result.ShufflesToday,
			DailyLimit:    result.DailyLimit,
			Unlimited:     result.Unlimited,
		}
		viewer = "user"
		if role == domain.RoleAdmin {
			viewer = "admin"
		}
	}

	start := time.Now()
	entries, err := h.feed.Assemble(c.Request().Context(), ports.AssembleInput{
		Category: domain.Category(c.QueryParam("category")),
	})
	if err != nil {
		return err
	}
	metrics.FeedAssemblyDuration.Observe(time.Since(start).Seconds())
	metrics.FeedShufflesTotal.WithLabelValues(viewer).Inc()
	for _, entry := range entries {
		if entry.Kind == ports.FeedEntryAd {
			metrics.FeedAdsSplicedTotal.Inc()
		}
	}

	resp.Entries = entries
	return c.JSON(http.StatusOK, resp)
}

// AdClick records a click-through on a sponsored entry.
//
// @Summary      Record an ad click
// @Tags         feed
// @Param        id  path  string  true  "Ad ID"
// @Success      204  "click recorded"
// @Failure      404  {object}  map[string]string
// @Router       /v1/ads/{id}/click [post]
func (h *FeedHandler) AdClick(c echo.Context) error {
	if err := h.feed.RegisterAdClick(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	metrics.ClicksEnqueuedTotal.WithLabelValues("ad").Inc()
	return c.NoContent(http.StatusNoContent)
}
