package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/websurfer/discovery/internal/api/metrics"
	"github.com/websurfer/discovery/internal/core/domain"
	"github.com/websurfer/discovery/internal/core/ports"
)

// AccountHandler serves the authenticated user's own account surface.
type AccountHandler struct {
	accounts ports.AccountService
	admin    ports.AdminService
}

func NewAccountHandler(accounts ports.AccountService, admin ports.AdminService) *AccountHandler {
	return &AccountHandler{accounts: accounts, admin: admin}
}

type profilePatchRequest struct {
	DisplayName    *string `json:"display_name"`
	ProfileImage   *string `json:"profile_image"`
	PaymentDetails *string `json:"payment_details"`
	Email          *string `json:"email"`
}

type payoutResponse struct {
	Amount  float64 `json:"amount"`
	Message string  `json:"message"`
}

type plansResponse struct {
	Plans []domain.CreditPlan `json:"plans"`
}

// Me returns the caller's account.
//
// @Summary      Get own account
// @Tags         account
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  domain.User
// @Failure      401  {object}  map[string]string
// @Router       /v1/me [get]
func (h *AccountHandler) Me(c echo.Context) error {
	userID, _, err := ctxClaims(c)
	if err != nil {
		return err
	}
	user, err := h.accounts.GetUser(c.Request().Context(), userID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, user)
}

// UpdateProfile merges the supplied fields into the caller's profile.
// Absent fields are left untouched.
//
// @Summary      Update own profile
// @Tags         account
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      profilePatchRequest  true  "Fields to update"
// @Success      200   {object}  domain.User
// @Failure      401   {object}  map[string]string
// @Router       /v1/me [patch]
func (h *AccountHandler) UpdateProfile(c echo.Context) error {
	userID, _, err := ctxClaims(c)
	if err != nil {
		return err
	}

	var req profilePatchRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	user, err := h.accounts.UpdateProfile(c.Request().Context(), userID, ports.ProfilePatch{
		DisplayName:    req.DisplayName,
		ProfileImage:   req.ProfileImage,
		PaymentDetails: req.PaymentDetails,
		Email:          req.Email,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, user)
}

// RequestPayout asks for the accrued balance to be paid out.
//
// @Summary      Request a payout
// @Tags         account
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  payoutResponse
// @Failure      401  {object}  map[string]string
// @Failure      422  {object}  map[string]string
// @Router       /v1/me/payout [post]
func (h *AccountHandler) RequestPayout(c echo.Context) error {
	userID, _, err := ctxClaims(c)
	if err != nil {
		return err
	}

	result, err := h.accounts.RequestPayout(c.Request().Context(), userID)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrPayoutBelowThreshold):
			metrics.PayoutRequestsTotal.WithLabelValues("below_threshold").Inc()
		case errors.Is(err, domain.ErrNoPaymentDetails):
			metrics.PayoutRequestsTotal.WithLabelValues("no_payment_details").Inc()
		}
		return err
	}
	metrics.PayoutRequestsTotal.WithLabelValues("accepted").Inc()

	return c.JSON(http.StatusOK, payoutResponse{
		Amount:  result.Amount,
		Message: "payout request accepted",
	})
}

// ListPlans returns the purchasable credit plans.
//
// @Summary      List credit plans
// @Tags         account
// @Produce      json
// @Success      200  {object}  plansResponse
// @Router       /v1/plans [get]
func (h *AccountHandler) ListPlans(c echo.Context) error {
	cfg, err := h.admin.GetConfig(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, plansResponse{Plans: cfg.Plans})
}

// PurchasePlan buys a credit plan for the caller.
//
// @Summary      Purchase a credit plan
// @Tags         account
// @Produce      json
// @Security     BearerAuth
// @Param        id  path      string  true  "Plan ID"
// @Success      200  {object}  domain.User
// @Failure      404  {object}  map[string]string
// @Router       /v1/plans/{id}/purchase [post]
func (h *AccountHandler) PurchasePlan(c echo.Context) error {
	userID, _, err := ctxClaims(c)
	if err != nil {
		return err
	}
	user, err := h.accounts.PurchasePlan(c.Request().Context(), userID, c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, user)
}
