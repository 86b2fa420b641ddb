package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/taskflow/taskflow-api/internal/core/domain"
)

const listsCollection = "lists"

type ListRepository struct {
	db   *mongo.Database
	coll *mongo.Collection
}

func NewListRepository(db *mongo.Database) *ListRepository {
	return &ListRepository{db: db, coll: db.Collection(listsCollection)}
}

type mongoList struct {
	ID       primitive.ObjectID `bson:"_id,omitempty"`
	BoardID  string             `bson:"board_id"`
	Title    string             `bson:"title"`
	Position int                `bson:"position"`
}

func (ml *mongoList) toDomain() *domain.List {
	return &domain.List{
		ID:       ml.ID.Hex(),
		BoardID:  ml.BoardID,
		Title:    ml.Title,
		Position: ml.Position,
	}
}

func (r *ListRepository) Create(ctx context.Context, l *domain.List) (*domain.List, error) {
	doc := mongoList{
		BoardID:  l.BoardID,
		Title:    l.Title,
		Position: l.Position,
	}

	res, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("insert list: %w", err)
	}

	created := *l
	created.ID = res.InsertedID.(primitive.ObjectID).Hex()
	return &created, nil
}

func (r *ListRepository) FindByID(ctx context.Context, id string) (*domain.List, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrListNotFound
	}

	var ml mongoList
	if err := r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&ml); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrListNotFound
		}
		return nil, fmt.Errorf("find list: %w", err)
	}
	return ml.toDomain(), nil
}

// FindByBoard returns the board's lists ordered by position.
func (r *ListRepository) FindByBoard(ctx context.Context, boardID string) ([]*domain.List, error) {
	opts := options.Find().SetSort(bson.D{{Key: "position", Value: 1}})
	cur, err := r.coll.Find(ctx, bson.M{"board_id": boardID}, opts)
	if err != nil {
		return nil, fmt.Errorf("find lists: %w", err)
	}
	defer cur.Close(ctx)

	lists := make([]*domain.List, 0)
	for cur.Next(ctx) {
		var ml mongoList
		if err := cur.Decode(&ml); err != nil {
			return nil, fmt.Errorf("decode list: %w", err)
		}
		lists = append(lists, ml.toDomain())
	}
	return lists, cur.Err()
}

func (r *ListRepository) Update(ctx context.Context, l *domain.List) error {
	oid, err := primitive.ObjectIDFromHex(l.ID)
	if err != nil {
		return domain.ErrListNotFound
	}

	update := bson.M{"$set": bson.M{
		"title":    l.Title,
		"position": l.Position,
	}}

	res, err := r.coll.UpdateByID(ctx, oid, update)
	if err != nil {
		return fmt.Errorf("update list: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrListNotFound
	}
	return nil
}

// Delete removes the list and its cards in one transaction. Sibling list
// positions are not compacted.
func (r *ListRepository) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrListNotFound
	}

	return withTransaction(ctx, r.db, func(sc mongo.SessionContext) error {
		if _, err := r.db.Collection(cardsCollection).DeleteMany(sc, bson.M{"list_id": id}); err != nil {
			return fmt.Errorf("cascade delete cards: %w", err)
		}

		res, err := r.coll.DeleteOne(sc, bson.M{"_id": oid})
		if err != nil {
			return fmt.Errorf("delete list: %w", err)
		}
		if res.DeletedCount == 0 {
			return domain.ErrListNotFound
		}
		return nil
	})
}

// EnsureIndexes creates the board lookup index.
func (r *ListRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	_, err := r.coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "board_id", Value: 1}, {Key: "position", Value: 1}},
	})
	return err
}
