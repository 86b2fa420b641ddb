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

const cardsCollection = "cards"

type CardRepository struct {
	db   *mongo.Database
	coll *mongo.Collection
}

func NewCardRepository(db *mongo.Database) *CardRepository {
	return &CardRepository{db: db, coll: db.Collection(cardsCollection)}
}

type mongoCard struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"`
	ListID      string             `bson:"list_id"`
	Title       string             `bson:"title"`
	Description string             `bson:"description,omitempty"`
	Position    int                `bson:"position"`
	CreatedAt   time.Time          `bson:"created_at"`
	UpdatedAt   time.Time          `bson:"updated_at"`
}

func (mc *mongoCard) toDomain() *domain.Card {
	return &domain.Card{
		ID:          mc.ID.Hex(),
		ListID:      mc.ListID,
		Title:       mc.Title,
		Description: mc.Description,
		Position:    mc.Position,
		CreatedAt:   mc.CreatedAt.UTC(),
		UpdatedAt:   mc.UpdatedAt.UTC(),
	}
}

func (r *CardRepository) Create(ctx context.Context, c *domain.Card) (*domain.Card, error) {
	doc := mongoCard{
		ListID:      c.ListID,
		Title:       c.Title,
		Description: c.Description,
		Position:    c.Position,
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   c.UpdatedAt,
	}

	res, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("insert card: %w", err)
	}

	created := *c
	created.ID = res.InsertedID.(primitive.ObjectID).Hex()
	return &created, nil
}

func (r *CardRepository) FindByID(ctx context.Context, id string) (*domain.Card, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrCardNotFound
	}

	var mc mongoCard
	if err := r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&mc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrCardNotFound
		}
		return nil, fmt.Errorf("find card: %w", err)
	}
	return mc.toDomain(), nil
}

// FindByList returns the list's cards ordered by position.
func (r *CardRepository) FindByList(ctx context.Context, listID string) ([]*domain.Card, error) {
	opts := options.Find().SetSort(bson.D{{Key: "position", Value: 1}})
	cur, err := r.coll.Find(ctx, bson.M{"list_id": listID}, opts)
	if err != nil {
		return nil, fmt.Errorf("find cards: %w", err)
	}
	defer cur.Close(ctx)

	cards := make([]*domain.Card, 0)
	for cur.Next(ctx) {
		var mc mongoCard
		if err := cur.Decode(&mc); err != nil {
			return nil, fmt.Errorf("decode card: %w", err)
		}
		cards = append(cards, mc.toDomain())
	}
	return cards, cur.Err()
}

func (r *CardRepository) Update(ctx context.Context, c *domain.Card) error {
	oid, err := primitive.ObjectIDFromHex(c.ID)
	if err != nil {
		return domain.ErrCardNotFound
	}

	update := bson.M{"$set": bson.M{
		"title":       c.Title,
		"description": c.Description,
		"position":    c.Position,
		"updated_at":  c.UpdatedAt,
	}}

	res, err := r.coll.UpdateByID(ctx, oid, update)
	if err != nil {
		return fmt.Errorf("update card: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrCardNotFound
	}
	return nil
}

func (r *CardRepository) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrCardNotFound
	}

	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("delete card: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrCardNotFound
	}
	return nil
}

// ApplyMove writes the whole position batch of a move inside a single
// transaction. The moved card additionally gets its list_id and updated_at
// refreshed; any failure aborts the transaction and no shift is applied.
func (r *CardRepository) ApplyMove(ctx context.Context, movedCardID string, updates []domain.CardPositionUpdate) error {
	now := time.Now().UTC()

	return withTransaction(ctx, r.db, func(sc mongo.SessionContext) error {
		for _, u := range updates {
			oid, err := primitive.ObjectIDFromHex(u.CardID)
			if err != nil {
				return domain.ErrCardNotFound
			}

			set := bson.M{
				"list_id":  u.ListID,
				"position": u.Position,
			}
			if u.CardID == movedCardID {
				set["updated_at"] = now
			}

			res, err := r.coll.UpdateByID(sc, oid, bson.M{"$set": set})
			if err != nil {
				return fmt.Errorf("apply move update: %w", err)
			}
			if res.MatchedCount == 0 {
				return domain.ErrCardNotFound
			}
		}
		return nil
	})
}

// EnsureIndexes creates the list lookup index.
func (r *CardRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	_, err := r.coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "list_id", Value: 1}, {Key: "position", Value: 1}},
	})
	return err
}
