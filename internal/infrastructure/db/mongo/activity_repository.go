package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/taskflow/taskflow-api/internal/core/domain"
)

const activitiesCollection = "activities"

// ActivityRepository persists the per-board activity feed.
type ActivityRepository struct {
	coll *mongo.Collection
}

func NewActivityRepository(db *mongo.Database) *ActivityRepository {
	return &ActivityRepository{coll: db.Collection(activitiesCollection)}
}

func (r *ActivityRepository) Insert(ctx context.Context, a *domain.Activity) error {
	doc := bson.M{
		"board_id":  a.BoardID,
		"actor_id":  a.ActorID,
		"action":    string(a.Action),
		"timestamp": a.Timestamp.UTC(),
	}
	if a.Detail != "" {
		doc["detail"] = a.Detail
	}

	_, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		return fmt.Errorf("insert activity: %w", err)
	}
	return nil
}

// FindByBoard returns the board's most recent entries, newest first.
func (r *ActivityRepository) FindByBoard(ctx context.Context, boardID string, limit int) ([]domain.Activity, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "timestamp", Value: -1}}).
		SetLimit(int64(limit))

	cur, err := r.coll.Find(ctx, bson.M{"board_id": boardID}, opts)
	if err != nil {
		return nil, fmt.Errorf("find activities: %w", err)
	}
	defer cur.Close(ctx)

	entries := make([]domain.Activity, 0)
	for cur.Next(ctx) {
		var a domain.Activity
		if err := cur.Decode(&a); err != nil {
			return nil, fmt.Errorf("decode activity: %w", err)
		}
		entries = append(entries, a)
	}
	return entries, cur.Err()
}

// EnsureIndexes creates the feed lookup index.
func (r *ActivityRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	_, err := r.coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "board_id", Value: 1}, {Key: "timestamp", Value: -1}},
	})
	return err
}
