package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/websurfer/discovery/internal/api"
	"github.com/websurfer/discovery/internal/core/service"
	"github.com/websurfer/discovery/internal/infrastructure/config"
	mongodb "github.com/websurfer/discovery/internal/infrastructure/db/mongo"
	redisdb "github.com/websurfer/discovery/internal/infrastructure/db/redis"
	"github.com/websurfer/discovery/internal/infrastructure/insights"
	"github.com/websurfer/discovery/internal/infrastructure/queue"
	"github.com/websurfer/discovery/internal/infrastructure/scheduler"
	"github.com/websurfer/discovery/pkg/logger"
)

const shutdownTimeout = 5 * time.Second

// @title           Discovery API
// @version         1.0
// @description     Randomized discovery feed with listings, votes, ads and creator earnings.
// @BasePath        /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	cfg := config.Load()

	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})

	if cfg.JWTSecret == "" {
		log.Fatal().Msg("JWT_SECRET is required")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// --- MongoDB ---
	mongoClient, db, err := mongodb.Connect(ctx, mongodb.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("mongodb connection failed")
	}
	defer func() {
		if err := mongoClient.Disconnect(context.Background()); err != nil {
			log.Error().Err(err).Msg("mongodb disconnect failed")
		}
	}()
	log.Info().Str("database", cfg.Mongo.Database).Msg("connected to mongodb")

	// --- Redis ---
	rdb, err := redisdb.Connect(ctx, redisdb.Config{
		Addr: cfg.Redis.Addr,
		DB:   cfg.Redis.DB,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("redis connection failed")
	}
	defer rdb.Close()
	log.Info().Str("addr", cfg.Redis.Addr).Msg("connected to redis")

	// --- Repositories ---
	siteRepo := mongodb.NewSiteRepository(db)
	adRepo := mongodb.NewAdRepository(db)
	userRepo := mongodb.NewUserRepository(db)
	voteRepo := mongodb.NewVoteRepository(db)
	activityRepo := mongodb.NewActivityRepository(db)
	configRepo := mongodb.NewConfigRepository(db, log)
	sessionStore := redisdb.NewSessionStore(rdb)
	insightsCache := redisdb.NewInsightsCache(rdb)

	if err := siteRepo.EnsureIndexes(ctx); err != nil {
		log.Fatal().Err(err).Msg("site indexes failed")
	}
	if err := userRepo.EnsureIndexes(ctx); err != nil {
		log.Fatal().Err(err).Msg("user indexes failed")
	}

	// --- Seed data ---
	adminHash, err := bcrypt.GenerateFromPassword([]byte(cfg.AdminPassword), bcrypt.DefaultCost)
	if err != nil {
		log.Fatal().Err(err).Msg("admin password hash failed")
	}
	if err := mongodb.Seed(ctx, db, string(adminHash), log); err != nil {
		log.Fatal().Err(err).Msg("seeding failed")
	}

	// --- Services ---
	insightsClient := insights.NewClient(cfg.Insights.APIKey, cfg.Insights.Model, log)

	feedService := service.NewFeedService(siteRepo, adRepo, configRepo, nil, log)
	accountService := service.NewAccountService(userRepo, siteRepo, configRepo, activityRepo, log)
	catalogService := service.NewCatalogService(siteRepo, voteRepo, userRepo, configRepo, activityRepo, insightsClient, log)
	authService := service.NewAuthService(userRepo, configRepo, sessionStore, activityRepo, cfg.JWTSecret, 24*time.Hour, log)
	adminService := service.NewAdminService(configRepo, adRepo, userRepo, siteRepo, activityRepo, sessionStore, insightsClient, insightsCache, log)

	// --- Background workers ---
	dispatcher := queue.NewClickDispatcher(cfg.Workers.ClickWorkers, accountService, log)
	dispatcher.Start(ctx)

	interval, err := time.ParseDuration(cfg.Workers.MaintenanceInterval)
	if err != nil {
		log.Warn().Err(err).Str("value", cfg.Workers.MaintenanceInterval).Msg("invalid maintenance interval, using default")
		interval = 0
	}
	maintenance := scheduler.NewMaintenance(siteRepo, adRepo, userRepo, activityRepo, interval, log)
	maintenance.Start(ctx)

	// --- HTTP server ---
	e := api.NewRouter(api.RouterConfig{
		JWTSecret: cfg.JWTSecret,
		Feed:      feedService,
		Accounts:  accountService,
		Catalog:   catalogService,
		Admin:     adminService,
		Auth:      authService,
		Sessions:  sessionStore,
		Clicks:    dispatcher,
		Mongo:     db,
		Redis:     rdb,
		Logger:    log,
	})

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      e,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
	}

	go func() {
		log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("starting server")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
		os.Exit(1)
	}
	log.Info().Msg("stopped")
}
