package mongo

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/websurfer/discovery/internal/core/domain"
	"github.com/websurfer/discovery/internal/core/ports"
)

const collectionSites = "sites"

type SiteRepository struct {
	col *mongo.Collection
}

func NewSiteRepository(db *mongo.Database) *SiteRepository {
	return &SiteRepository{col: db.Collection(collectionSites)}
}

func (r *SiteRepository) Create(ctx context.Context, s *domain.SiteLink) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	_, err := r.col.InsertOne(ctx, s)
	return err
}

func (r *SiteRepository) FindByID(ctx context.Context, id string) (*domain.SiteLink, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var s domain.SiteLink
	if err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&s); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrSiteNotFound
		}
		return nil, err
	}
	return &s, nil
}

func (r *SiteRepository) Update(ctx context.Context, s *domain.SiteLink) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.ReplaceOne(ctx, bson.M{"_id": s.ID}, s)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return domain.ErrSiteNotFound
	}
	return nil
}

func (r *SiteRepository) Delete(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return domain.ErrSiteNotFound
	}
	return nil
}

func (r *SiteRepository) DeleteByOwner(ctx context.Context, ownerID string) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.DeleteMany(ctx, bson.M{"owner_id": ownerID})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

func (r *SiteRepository) List(ctx context.Context, filter ports.ListSitesFilter) ([]*domain.SiteLink, int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	query := bson.M{}
	if filter.Category != "" {
		query["category"] = filter.Category
	}
	if filter.OwnerID != "" {
		query["owner_id"] = filter.OwnerID
	}
	if filter.Enabled != nil {
		query["enabled"] = *filter.Enabled
	}

	total, err := r.col.CountDocuments(ctx, query)
	if err != nil {
		return nil, 0, err
	}

	page := filter.Page
	if page < 1 {
		page = 1
	}
	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetSkip(int64(page-1) * int64(filter.Limit))
	if filter.Limit > 0 {
		opts.SetLimit(int64(filter.Limit))
	}

	cur, err := r.col.Find(ctx, query, opts)
	if err != nil {
		return nil, 0, err
	}
	defer cur.Close(ctx)

	var sites []*domain.SiteLink
	if err := cur.All(ctx, &sites); err != nil {
		return nil, 0, err
	}
	return sites, total, nil
}

func (r *SiteRepository) ListEnabled(ctx context.Context, category domain.Category) ([]*domain.SiteLink, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	query := bson.M{"enabled": true}
	if category != "" {
		query["category"] = category
	}

	cur, err := r.col.Find(ctx, query)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var sites []*domain.SiteLink
	if err := cur.All(ctx, &sites); err != nil {
		return nil, err
	}
	return sites, nil
}

func (r *SiteRepository) CountByOwner(ctx context.Context, ownerID string) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	return r.col.CountDocuments(ctx, bson.M{"owner_id": ownerID})
}

func (r *SiteRepository) IncrementClicks(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$inc": bson.M{"clicks": 1}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return domain.ErrSiteNotFound
	}
	return nil
}

func (r *SiteRepository) AdjustVotes(ctx context.Context, id string, likes, dislikes int64) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.UpdateOne(ctx, bson.M{"_id": id},
		bson.M{"$inc": bson.M{"likes": likes, "dislikes": dislikes}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return domain.ErrSiteNotFound
	}
	return nil
}

func (r *SiteRepository) TopByClicks(ctx context.Context, limit int) ([]*domain.SiteLink, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	opts := options.Find().
		SetSort(bson.D{{Key: "clicks", Value: -1}}).
		SetLimit(int64(limit))
	cur, err := r.col.Find(ctx, bson.M{"enabled": true}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var sites []*domain.SiteLink
	if err := cur.All(ctx, &sites); err != nil {
		return nil, err
	}
	return sites, nil
}

// EnsureIndexes creates the indexes the query paths rely on.
func (r *SiteRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "enabled", Value: 1}, {Key: "category", Value: 1}}},
		{Keys: bson.D{{Key: "owner_id", Value: 1}}},
		{Keys: bson.D{{Key: "clicks", Value: -1}}},
	}
	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}
