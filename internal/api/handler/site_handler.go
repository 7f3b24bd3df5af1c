package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/websurfer/discovery/internal/api/metrics"
	"github.com/websurfer/discovery/internal/core/domain"
	"github.com/websurfer/discovery/internal/core/ports"
)

// ClickEnqueuer hands click events to the background accrual pipeline.
type ClickEnqueuer interface {
	Enqueue(click ports.ClickInput)
}

// SiteHandler handles listing CRUD, votes and click-throughs.
type SiteHandler struct {
	catalog ports.CatalogService
	clicks  ClickEnqueuer
}

func NewSiteHandler(catalog ports.CatalogService, clicks ClickEnqueuer) *SiteHandler {
	return &SiteHandler{catalog: catalog, clicks: clicks}
}

type addSiteRequest struct {
	Name        string `json:"name" validate:"required"`
	URL         string `json:"url" validate:"required,url"`
	Description string `json:"description"`
	Category    string `json:"category" validate:"required"`
	Logo        string `json:"logo"`
	IsPaid      bool   `json:"is_paid"`
}

type updateSiteRequest struct {
	Name        string `json:"name" validate:"required"`
	URL         string `json:"url" validate:"required,url"`
	Description string `json:"description"`
	Category    string `json:"category" validate:"required"`
	Logo        string `json:"logo"`
	Enabled     bool   `json:"enabled"`
	IsPaid      bool   `json:"is_paid"`
}

type voteRequest struct {
	Type string `json:"type" validate:"required,oneof=like dislike"`
}

type listSitesResponse struct {
	Sites []*domain.SiteLink `json:"sites"`
	Total int64              `json:"total"`
	Page  int                `json:"page"`
	Limit int                `json:"limit"`
}

// Create adds a new listing owned by the caller.
//
// @Summary      Add a site listing
// @Tags         sites
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      addSiteRequest  true  "Listing details"
// @Success      201   {object}  domain.SiteLink
// @Failure      400   {object}  map[string]string
// @Failure      422   {object}  map[string]string
// @Router       /v1/sites [post]
func (h *SiteHandler) Create(c echo.Context) error {
	userID, _, err := ctxClaims(c)
	if err != nil {
		return err
	}

	var req addSiteRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	site, err := h.catalog.AddSite(c.Request().Context(), ports.AddSiteInput{
		OwnerID:     userID,
		Name:        req.Name,
		URL:         req.URL,
		Description: req.Description,
		Category:    domain.Category(req.Category),
		Logo:        req.Logo,
		IsPaid:      req.IsPaid,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, site)
}

// Get returns a single listing.
//
// @Summary      Get a site listing
// @Tags         sites
// @Produce      json
// @Param        id  path      string  true  "Site ID"
// @Success      200  {object}  domain.SiteLink
// @Failure      404  {object}  map[string]string
// @Router       /v1/sites/{id} [get]
func (h *SiteHandler) Get(c echo.Context) error {
	site, err := h.catalog.GetSite(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, site)
}

// List returns listings page by page, optionally filtered.
//
// @Summary      List site listings
// @Tags         sites
// @Produce      json
// @Param        category  query     string  false  "Filter by category"
// @Param        owner_id  query     string  false  "Filter by owner"
// @Param        page      query     int     false  "Page number (1-based)"
// @Param        limit     query     int     false  "Page size (max 100)"
// @Success      200       {object}  listSitesResponse
// @Router       /v1/sites [get]
func (h *SiteHandler) List(c echo.Context) error {
	page, _ := strconv.Atoi(c.QueryParam("page"))
	limit, _ := strconv.Atoi(c.QueryParam("limit"))

	filter := ports.ListSitesFilter{
		Category: domain.Category(c.QueryParam("category")),
		OwnerID:  c.QueryParam("owner_id"),
		Page:     page,
		Limit:    limit,
	}

	sites, total, err := h.catalog.ListSites(c.Request().Context(), filter)
	if err != nil {
		return err
	}
	if sites == nil {
		sites = []*domain.SiteLink{}
	}
	return c.JSON(http.StatusOK, listSitesResponse{
		Sites: sites,
		Total: total,
		Page:  filter.Page,
		Limit: filter.Limit,
	})
}

// Update edits a listing. Only the owner or an admin may edit.
//
// @Summary      Update a site listing
// @Tags         sites
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string             true  "Site ID"
// @Param        body  body      updateSiteRequest  true  "Updated listing"
// @Success      200   {object}  domain.SiteLink
// @Failure      403   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Router       /v1/sites/{id} [put]
func (h *SiteHandler) Update(c echo.Context) error {
	userID, role, err := ctxClaims(c)
	if err != nil {
		return err
	}

	var req updateSiteRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	site, err := h.catalog.UpdateSite(c.Request().Context(), ports.UpdateSiteInput{
		SiteID:      c.Param("id"),
		ActorID:     userID,
		ActorRole:   role,
		Name:        req.Name,
		URL:         req.URL,
		Description: req.Description,
		Category:    domain.Category(req.Category),
		Logo:        req.Logo,
		Enabled:     req.Enabled,
		IsPaid:      req.IsPaid,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, site)
}

// Delete removes a listing. Only the owner or an admin may delete.
//
// @Summary      Delete a site listing
// @Tags         sites
// @Security     BearerAuth
// @Param        id  path  string  true  "Site ID"
// @Success      204  "listing removed"
// @Failure      403  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /v1/sites/{id} [delete]
func (h *SiteHandler) Delete(c echo.Context) error {
	userID, role, err := ctxClaims(c)
	if err != nil {
		return err
	}
	if err := h.catalog.DeleteSite(c.Request().Context(), c.Param("id"), userID, role); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// Vote records a like or dislike on a listing.
//
// @Summary      Vote on a site listing
// @Tags         sites
// @Accept       json
// @Security     BearerAuth
// @Param        id    path  string       true  "Site ID"
// @Param        body  body  voteRequest  true  "Vote type"
// @Success      204   "vote recorded"
// @Failure      400   {object}  map[string]string
// @Router       /v1/sites/{id}/vote [post]
func (h *SiteHandler) Vote(c echo.Context) error {
	userID, _, err := ctxClaims(c)
	if err != nil {
		return err
	}

	var req voteRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if err := h.catalog.Vote(c.Request().Context(), userID, c.Param("id"), domain.VoteType(req.Type)); err != nil {
		return err
	}
	metrics.VotesTotal.WithLabelValues(req.Type).Inc()
	return c.NoContent(http.StatusNoContent)
}

// Click accepts a click-through for asynchronous processing. The click is
// queued and the counters and owner earnings are updated by a background
// worker, so the endpoint replies 202.
//
// @Summary      Record a site click
// @Tags         sites
// @Param        id  path  string  true  "Site ID"
// @Success      202  "click accepted"
// @Router       /v1/sites/{id}/click [post]
func (h *SiteHandler) Click(c echo.Context) error {
	viewerID, _ := c.Get("user_id").(string)
	h.clicks.Enqueue(ports.ClickInput{
		SiteID:   c.Param("id"),
		ViewerID: viewerID,
	})
	return c.NoContent(http.StatusAccepted)
}
