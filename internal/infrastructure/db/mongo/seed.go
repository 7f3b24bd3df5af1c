package mongo

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"github.com/rs/zerolog"

	"github.com/websurfer/discovery/internal/core/domain"
)

// Seed populates an empty database: the fixed flagship catalog plus
// generated filler to domain.SeedCatalogSize sites, and the default
// administrator with the given password hash. Non-empty collections are
// left alone.
func Seed(ctx context.Context, db *mongo.Database, adminPasswordHash string, logger zerolog.Logger) error {
	now := time.Now().UTC()

	sites := db.Collection(collectionSites)
	count, err := sites.CountDocuments(ctx, bson.M{})
	if err != nil {
		return fmt.Errorf("seed: count sites: %w", err)
	}
	if count == 0 {
		flagship := domain.FlagshipSites(now)
		rng := rand.New(rand.NewSource(now.UnixNano()))
		filler := domain.GenerateFillerSites(domain.SeedCatalogSize-len(flagship), rng, now)

		docs := make([]any, 0, domain.SeedCatalogSize)
		for i := range flagship {
			docs = append(docs, flagship[i])
		}
		for i := range filler {
			docs = append(docs, filler[i])
		}
		if _, err := sites.InsertMany(ctx, docs); err != nil {
			return fmt.Errorf("seed: insert sites: %w", err)
		}
		logger.Info().Int("count", len(docs)).Msg("seeded site catalog")
	}

	users := db.Collection(collectionUsers)
	count, err = users.CountDocuments(ctx, bson.M{})
	if err != nil {
		return fmt.Errorf("seed: count users: %w", err)
	}
	if count == 0 {
		admin := domain.DefaultAdmin(now)
		admin.PasswordHash = adminPasswordHash
		if _, err := users.InsertOne(ctx, admin); err != nil {
			return fmt.Errorf("seed: insert admin: %w", err)
		}
		logger.Info().Str("username", admin.Username).Msg("seeded administrator account")
	}

	return nil
}
