package mongo

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/websurfer/discovery/internal/core/domain"
)

const collectionVotes = "votes"

type VoteRepository struct {
	col *mongo.Collection
}

func NewVoteRepository(db *mongo.Database) *VoteRepository {
	return &VoteRepository{col: db.Collection(collectionVotes)}
}

func (r *VoteRepository) Find(ctx context.Context, userID, siteID string) (*domain.VoteRecord, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var v domain.VoteRecord
	err := r.col.FindOne(ctx, bson.M{"user_id": userID, "site_id": siteID}).Decode(&v)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrVoteNotFound
		}
		return nil, err
	}
	return &v, nil
}

// Set upserts the record, preserving the at-most-one-per-pair invariant.
func (r *VoteRepository) Set(ctx context.Context, v *domain.VoteRecord) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	filter := bson.M{"user_id": v.UserID, "site_id": v.SiteID}
	update := bson.M{"$set": bson.M{"type": v.Type}}
	_, err := r.col.UpdateOne(ctx, filter, update, options.Update().SetUpsert(true))
	return err
}
