package mongo

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/websurfer/discovery/internal/core/domain"
)

const collectionAds = "ads"

type AdRepository struct {
	col *mongo.Collection
}

func NewAdRepository(db *mongo.Database) *AdRepository {
	return &AdRepository{col: db.Collection(collectionAds)}
}

func (r *AdRepository) Create(ctx context.Context, ad *domain.Ad) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	_, err := r.col.InsertOne(ctx, ad)
	return err
}

func (r *AdRepository) FindByID(ctx context.Context, id string) (*domain.Ad, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var ad domain.Ad
	if err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&ad); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrAdNotFound
		}
		return nil, err
	}
	return &ad, nil
}

func (r *AdRepository) Update(ctx context.Context, ad *domain.Ad) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.ReplaceOne(ctx, bson.M{"_id": ad.ID}, ad)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return domain.ErrAdNotFound
	}
	return nil
}

func (r *AdRepository) Delete(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return domain.ErrAdNotFound
	}
	return nil
}

func (r *AdRepository) List(ctx context.Context) ([]*domain.Ad, error) {
	return r.find(ctx, bson.M{})
}

func (r *AdRepository) ListEnabled(ctx context.Context) ([]*domain.Ad, error) {
	return r.find(ctx, bson.M{"enabled": true})
}

func (r *AdRepository) IncrementClicks(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$inc": bson.M{"clicks": 1}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return domain.ErrAdNotFound
	}
	return nil
}

func (r *AdRepository) IncrementImpressions(ctx context.Context, id string, n int64) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$inc": bson.M{"impressions": n}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return domain.ErrAdNotFound
	}
	return nil
}

func (r *AdRepository) find(ctx context.Context, query bson.M) ([]*domain.Ad, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.col.Find(ctx, query)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var ads []*domain.Ad
	if err := cur.All(ctx, &ads); err != nil {
		return nil, err
	}
	return ads, nil
}
