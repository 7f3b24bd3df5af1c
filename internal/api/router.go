// Package api wires the HTTP transport: routing, middleware, error
// mapping and Prometheus exposition.
package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoswagger "github.com/swaggo/echo-swagger"
	mongodriver "go.mongodb.org/mongo-driver/mongo"

	_ "github.com/websurfer/discovery/docs"
	"github.com/websurfer/discovery/internal/api/handler"
	"github.com/websurfer/discovery/internal/api/middleware"
	"github.com/websurfer/discovery/internal/core/domain"
	"github.com/websurfer/discovery/internal/core/ports"
)

// RouterConfig carries everything NewRouter needs to assemble the
// transport layer. Services are constructed by the caller so tests can
// substitute stubs.
type RouterConfig struct {
	JWTSecret string

	Feed     ports.FeedService
	Accounts ports.AccountService
	Catalog  ports.CatalogService
	Admin    ports.AdminService
	Auth     ports.AuthService
	Sessions ports.SessionStore
	Clicks   handler.ClickEnqueuer

	Mongo *mongodriver.Database
	Redis *redis.Client

	Logger zerolog.Logger
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(cfg RouterConfig) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(cfg.Logger)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("discovery"))

	// --- Handlers ---
	authHandler := handler.NewAuthHandler(cfg.Auth)
	feedHandler := handler.NewFeedHandler(cfg.Feed, cfg.Accounts)
	siteHandler := handler.NewSiteHandler(cfg.Catalog, cfg.Clicks)
	accountHandler := handler.NewAccountHandler(cfg.Accounts, cfg.Admin)
	adminHandler := handler.NewAdminHandler(cfg.Admin)

	requireAuth := middleware.Auth(cfg.JWTSecret, cfg.Sessions)
	optionalAuth := middleware.OptionalAuth(cfg.JWTSecret, cfg.Sessions)
	adminOnly := middleware.RBAC(domain.RoleAdmin)

	// --- Auth routes ---
	e.POST("/auth/signup", authHandler.Signup)
	e.POST("/auth/login", authHandler.Login)
	e.POST("/auth/logout", authHandler.Logout, requireAuth)

	// --- Public / optionally authenticated routes ---
	v1 := e.Group("/v1")
	v1.GET("/feed", feedHandler.Get, optionalAuth)
	v1.GET("/sites", siteHandler.List)
	v1.GET("/sites/:id", siteHandler.Get)
	v1.POST("/sites/:id/click", siteHandler.Click, optionalAuth)
	v1.POST("/ads/:id/click", feedHandler.AdClick)
	v1.GET("/plans", accountHandler.ListPlans)

	// --- Authenticated routes ---
	v1.POST("/sites", siteHandler.Create, requireAuth)
	v1.PUT("/sites/:id", siteHandler.Update, requireAuth)
	v1.DELETE("/sites/:id", siteHandler.Delete, requireAuth)
	v1.POST("/sites/:id/vote", siteHandler.Vote, requireAuth)
	v1.GET("/me", accountHandler.Me, requireAuth)
	v1.PATCH("/me", accountHandler.UpdateProfile, requireAuth)
	v1.POST("/me/payout", accountHandler.RequestPayout, requireAuth)
	v1.POST("/plans/:id/purchase", accountHandler.PurchasePlan, requireAuth)

	// --- Admin routes ---
	admin := v1.Group("/admin", requireAuth, adminOnly)
	admin.GET("/config", adminHandler.GetConfig)
	admin.PATCH("/config", adminHandler.PatchConfig)
	admin.GET("/ads", adminHandler.ListAds)
	admin.POST("/ads", adminHandler.CreateAd)
	admin.PUT("/ads/:id", adminHandler.UpdateAd)
	admin.DELETE("/ads/:id", adminHandler.DeleteAd)
	admin.GET("/users", adminHandler.ListUsers)
	admin.POST("/users", adminHandler.CreateUser)
	admin.DELETE("/users/:id", adminHandler.DeleteUser)
	admin.POST("/users/:id/block", adminHandler.BlockUser)
	admin.GET("/logs", adminHandler.ListLogs)
	admin.GET("/insights", adminHandler.TrendInsight)

	// --- Operational endpoints ---
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoswagger.WrapHandler)

	healthHandler := handler.NewHealthHandler()
	e.GET("/health", healthHandler.Liveness)
	if cfg.Mongo != nil && cfg.Redis != nil {
		healthDepsHandler := handler.NewHealthDependenciesHandler(cfg.Mongo, cfg.Redis)
		e.GET("/health/ready", healthDepsHandler.Readiness)
	}

	return e
}
