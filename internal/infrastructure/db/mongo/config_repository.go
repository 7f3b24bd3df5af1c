package mongo

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"github.com/rs/zerolog"

	"github.com/websurfer/discovery/internal/core/domain"
)

const (
	collectionConfig = "platform_config"
	configDocID      = "platform"
)

// ConfigRepository persists the single platform configuration document.
type ConfigRepository struct {
	col    *mongo.Collection
	logger zerolog.Logger
}

func NewConfigRepository(db *mongo.Database, logger zerolog.Logger) *ConfigRepository {
	return &ConfigRepository{col: db.Collection(collectionConfig), logger: logger}
}

type configDoc struct {
	ID     string                `bson:"_id"`
	Config domain.PlatformConfig `bson:"config"`
}

// Load returns the stored configuration. A missing or undecodable document
// falls back to the defaults; decode failure is treated as absence.
func (r *ConfigRepository) Load(ctx context.Context) (domain.PlatformConfig, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc configDoc
	err := r.col.FindOne(ctx, bson.M{"_id": configDocID}).Decode(&doc)
	switch {
	case errors.Is(err, mongo.ErrNoDocuments):
		return domain.DefaultConfig(), nil
	case err != nil:
		if isDecodeError(err) {
			r.logger.Warn().Err(err).Msg("stored config undecodable, using defaults")
			return domain.DefaultConfig(), nil
		}
		return domain.PlatformConfig{}, err
	}
	if doc.Config.MaxLinksPerPage <= 0 || len(doc.Config.Plans) == 0 {
		return domain.DefaultConfig(), nil
	}
	return doc.Config, nil
}

func (r *ConfigRepository) Save(ctx context.Context, cfg domain.PlatformConfig) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := configDoc{ID: configDocID, Config: cfg}
	_, err := r.col.ReplaceOne(ctx, bson.M{"_id": configDocID}, doc, options.Replace().SetUpsert(true))
	return err
}

func isDecodeError(err error) bool {
	var de *mongo.MarshalError
	if errors.As(err, &de) {
		return true
	}
	// bson decode failures surface as plain errors; treat anything that is
	// not a driver/network error type as a decode problem.
	return !mongo.IsNetworkError(err) && !mongo.IsTimeout(err)
}
