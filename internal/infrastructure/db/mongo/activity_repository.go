package mongo

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/websurfer/discovery/internal/core/domain"
)

const collectionActivity = "activity_logs"

type ActivityRepository struct {
	col *mongo.Collection
}

func NewActivityRepository(db *mongo.Database) *ActivityRepository {
	return &ActivityRepository{col: db.Collection(collectionActivity)}
}

// Append inserts the entry and drops anything beyond the newest cap. The
// trim runs inline so the ring bound holds without waiting for the
// maintenance sweep.
func (r *ActivityRepository) Append(ctx context.Context, entry *domain.ActivityLog) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	if _, err := r.col.InsertOne(ctx, entry); err != nil {
		return err
	}
	_, err := r.Trim(ctx, domain.ActivityLogCap)
	return err
}

func (r *ActivityRepository) ListRecent(ctx context.Context, limit int) ([]*domain.ActivityLog, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	opts := options.Find().
		SetSort(bson.D{{Key: "timestamp", Value: -1}}).
		SetLimit(int64(limit))
	cur, err := r.col.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var logs []*domain.ActivityLog
	if err := cur.All(ctx, &logs); err != nil {
		return nil, err
	}
	return logs, nil
}

// Trim removes everything beyond the newest cap entries and returns the
// number removed. Overflow documents are collected and deleted by _id;
// deleting by a timestamp boundary would spare entries that share the
// boundary timestamp.
func (r *ActivityRepository) Trim(ctx context.Context, cap int) (int64, error) {
	total, err := r.col.CountDocuments(ctx, bson.M{})
	if err != nil {
		return 0, err
	}
	if total-int64(cap) <= 0 {
		return 0, nil
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "timestamp", Value: -1}, {Key: "_id", Value: -1}}).
		SetSkip(int64(cap)).
		SetProjection(bson.M{"_id": 1})
	cur, err := r.col.Find(ctx, bson.M{}, opts)
	if err != nil {
		return 0, err
	}
	defer cur.Close(ctx)

	var overflow []struct {
		ID string `bson:"_id"`
	}
	if err := cur.All(ctx, &overflow); err != nil {
		return 0, err
	}
	if len(overflow) == 0 {
		return 0, nil
	}

	ids := make([]string, len(overflow))
	for i, doc := range overflow {
		ids[i] = doc.ID
	}
	res, err := r.col.DeleteMany(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}
