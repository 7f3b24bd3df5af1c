package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/websurfer/discovery/internal/core/domain"
	"github.com/websurfer/discovery/internal/core/ports"
)

// AdminHandler serves the admin-only configuration and CRUD surface.
// Role enforcement happens in the RBAC middleware.
type AdminHandler struct {
	admin ports.AdminService
}

func NewAdminHandler(admin ports.AdminService) *AdminHandler {
	return &AdminHandler{admin: admin}
}

type configPatchRequest struct {
	MaxLinksPerPage    *int                `json:"max_links_per_page"`
	RandomizationLogic *string             `json:"randomization_logic"`
	IsSignUpEnabled    *bool               `json:"is_sign_up_enabled"`
	Plans              []domain.CreditPlan `json:"plans"`
}

type adRequest struct {
	ClientName  string  `json:"client_name" validate:"required"`
	Title       string  `json:"title" validate:"required"`
	Description string  `json:"description"`
	URL         string  `json:"url" validate:"required,url"`
	Image       string  `json:"image"`
	CPC         float64 `json:"cpc" validate:"gte=0"`
	Enabled     bool    `json:"enabled"`
}

type createUserRequest struct {
	Username         string `json:"username" validate:"required,min=3"`
	Email            string `json:"email" validate:"omitempty,email"`
	Role             string `json:"role" validate:"omitempty,oneof=admin user"`
	Credits          int64  `json:"credits" validate:"gte=0"`
	SubscriptionTier string `json:"subscription_tier"`
}

type blockUserResponse struct {
	UserID  string `json:"user_id"`
	Blocked bool   `json:"blocked"`
}

type logsResponse struct {
	Logs []*domain.ActivityLog `json:"logs"`
}

type insightResponse struct {
	Insight string `json:"insight"`
}

// GetConfig returns the platform configuration.
//
// @Summary      Get platform configuration
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  domain.PlatformConfig
// @Router       /v1/admin/config [get]
func (h *AdminHandler) GetConfig(c echo.Context) error {
	cfg, err := h.admin.GetConfig(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, cfg)
}

// PatchConfig merges the supplied fields into the platform configuration.
// Plans are matched and replaced one at a time by id; absent fields keep
// their current values.
//
// @Summary      Update platform configuration
// @Tags         admin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      configPatchRequest  true  "Fields to update"
// @Success      200   {object}  domain.PlatformConfig
// @Router       /v1/admin/config [patch]
func (h *AdminHandler) PatchConfig(c echo.Context) error {
	userID, _, err := ctxClaims(c)
	if err != nil {
		return err
	}

	var req configPatchRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	cfg, err := h.admin.PatchConfig(c.Request().Context(), userID, ports.ConfigPatch{
		MaxLinksPerPage:    req.MaxLinksPerPage,
		RandomizationLogic: req.RandomizationLogic,
		IsSignUpEnabled:    req.IsSignUpEnabled,
		Plans:              req.Plans,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, cfg)
}

// ListAds returns every advertisement, enabled or not.
//
// @Summary      List advertisements
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}  domain.Ad
// @Router       /v1/admin/ads [get]
func (h *AdminHandler) ListAds(c echo.Context) error {
	ads, err := h.admin.ListAds(c.Request().Context())
	if err != nil {
		return err
	}
	if ads == nil {
		ads = []*domain.Ad{}
	}
	return c.JSON(http.StatusOK, ads)
}

// CreateAd registers a new advertisement.
//
// @Summary      Create an advertisement
// @Tags         admin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      adRequest  true  "Advertisement details"
// @Success      201   {object}  domain.Ad
// @Failure      400   {object}  map[string]string
// @Router       /v1/admin/ads [post]
func (h *AdminHandler) CreateAd(c echo.Context) error {
	userID, _, err := ctxClaims(c)
	if err != nil {
		return err
	}

	var req adRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	ad, err := h.admin.CreateAd(c.Request().Context(), userID, adInput(req))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, ad)
}

// UpdateAd replaces an advertisement's editable fields.
//
// @Summary      Update an advertisement
// @Tags         admin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string     true  "Ad ID"
// @Param        body  body      adRequest  true  "Updated advertisement"
// @Success      200   {object}  domain.Ad
// @Failure      404   {object}  map[string]string
// @Router       /v1/admin/ads/{id} [put]
func (h *AdminHandler) UpdateAd(c echo.Context) error {
	userID, _, err := ctxClaims(c)
	if err != nil {
		return err
	}

	var req adRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	ad, err := h.admin.UpdateAd(c.Request().Context(), userID, c.Param("id"), adInput(req))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, ad)
}

// DeleteAd removes an advertisement.
//
// @Summary      Delete an advertisement
// @Tags         admin
// @Security     BearerAuth
// @Param        id  path  string  true  "Ad ID"
// @Success      204  "advertisement removed"
// @Failure      404  {object}  map[string]string
// @Router       /v1/admin/ads/{id} [delete]
func (h *AdminHandler) DeleteAd(c echo.Context) error {
	userID, _, err := ctxClaims(c)
	if err != nil {
		return err
	}
	if err := h.admin.DeleteAd(c.Request().Context(), userID, c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// ListUsers returns every registered account.
//
// @Summary      List users
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}  domain.User
// @Router       /v1/admin/users [get]
func (h *AdminHandler) ListUsers(c echo.Context) error {
	users, err := h.admin.ListUsers(c.Request().Context())
	if err != nil {
		return err
	}
	if users == nil {
		users = []*domain.User{}
	}
	return c.JSON(http.StatusOK, users)
}

// CreateUser registers an account on behalf of a user.
//
// @Summary      Create a user
// @Tags         admin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createUserRequest  true  "Account details"
// @Success      201   {object}  domain.User
// @Failure      409   {object}  map[string]string
// @Router       /v1/admin/users [post]
func (h *AdminHandler) CreateUser(c echo.Context) error {
	userID, _, err := ctxClaims(c)
	if err != nil {
		return err
	}

	var req createUserRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	user, err := h.admin.CreateUser(c.Request().Context(), userID, ports.CreateUserInput{
		Username:         req.Username,
		Email:            req.Email,
		Role:             req.Role,
		Credits:          req.Credits,
		SubscriptionTier: domain.SubscriptionTier(req.SubscriptionTier),
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, user)
}

// DeleteUser removes an account and all listings it owns.
//
// @Summary      Delete a user
// @Tags         admin
// @Security     BearerAuth
// @Param        id  path  string  true  "User ID"
// @Success      204  "user removed"
// @Failure      404  {object}  map[string]string
// @Router       /v1/admin/users/{id} [delete]
func (h *AdminHandler) DeleteUser(c echo.Context) error {
	userID, _, err := ctxClaims(c)
	if err != nil {
		return err
	}
	if err := h.admin.DeleteUser(c.Request().Context(), userID, c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// BlockUser toggles the reversible blocked flag on an account.
//
// @Summary      Block or unblock a user
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Param        id  path      string  true  "User ID"
// @Success      200  {object}  blockUserResponse
// @Failure      404  {object}  map[string]string
// @Router       /v1/admin/users/{id}/block [post]
func (h *AdminHandler) BlockUser(c echo.Context) error {
	userID, _, err := ctxClaims(c)
	if err != nil {
		return err
	}
	blocked, err := h.admin.BlockUser(c.Request().Context(), userID, c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, blockUserResponse{UserID: c.Param("id"), Blocked: blocked})
}

// ListLogs returns the most recent activity log entries.
//
// @Summary      List activity logs
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Param        limit  query     int  false  "Maximum entries (default 100, cap 500)"
// @Success      200    {object}  logsResponse
// @Router       /v1/admin/logs [get]
func (h *AdminHandler) ListLogs(c echo.Context) error {
	limit, _ := strconv.Atoi(c.QueryParam("limit"))
	logs, err := h.admin.ListLogs(c.Request().Context(), limit)
	if err != nil {
		return err
	}
	if logs == nil {
		logs = []*domain.ActivityLog{}
	}
	return c.JSON(http.StatusOK, logsResponse{Logs: logs})
}

// TrendInsight returns a short analytical blurb about the most clicked
// sites. Responses are cached for a few minutes.
//
// @Summary      Get a trend insight
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  insightResponse
// @Router       /v1/admin/insights [get]
func (h *AdminHandler) TrendInsight(c echo.Context) error {
	insight, err := h.admin.TrendInsight(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, insightResponse{Insight: insight})
}

func adInput(req adRequest) ports.AdInput {
	return ports.AdInput{
		ClientName:  req.ClientName,
		Title:       req.Title,
		Description: req.Description,
		URL:         req.URL,
		Image:       req.Image,
		CPC:         req.CPC,
		Enabled:     req.Enabled,
	}
}
