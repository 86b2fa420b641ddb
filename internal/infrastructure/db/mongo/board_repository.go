package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/taskflow/taskflow-api/internal/core/domain"
)

const boardsCollection = "boards"

type BoardRepository struct {
	db   *mongo.Database
	coll *mongo.Collection
}

func NewBoardRepository(db *mongo.Database) *BoardRepository {
	return &BoardRepository{db: db, coll: db.Collection(boardsCollection)}
}

type mongoBoard struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	Title     string             `bson:"title"`
	MemberIDs []string           `bson:"member_ids"`
	CreatedAt time.Time          `bson:"created_at"`
}

func (mb *mongoBoard) toDomain() *domain.Board {
	return &domain.Board{
		ID:        mb.ID.Hex(),
		Title:     mb.Title,
		MemberIDs: mb.MemberIDs,
		CreatedAt: mb.CreatedAt.UTC(),
	}
}

func (r *BoardRepository) Create(ctx context.Context, b *domain.Board) (*domain.Board, error) {
	doc := mongoBoard{
		Title:     b.Title,
		MemberIDs: b.MemberIDs,
		CreatedAt: b.CreatedAt,
	}

	res, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("insert board: %w", err)
	}

	created := *b
	created.ID = res.InsertedID.(primitive.ObjectID).Hex()
	return &created, nil
}

func (r *BoardRepository) FindByID(ctx context.Context, id string) (*domain.Board, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrBoardNotFound
	}

	var mb mongoBoard
	if err := r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&mb); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrBoardNotFound
		}
		return nil, fmt.Errorf("find board: %w", err)
	}
	return mb.toDomain(), nil
}

func (r *BoardRepository) FindByMember(ctx context.Context, userID string) ([]*domain.Board, error) {
	cur, err := r.coll.Find(ctx, bson.M{"member_ids": userID})
	if err != nil {
		return nil, fmt.Errorf("find boards by member: %w", err)
	}
	defer cur.Close(ctx)

	boards := make([]*domain.Board, 0)
	for cur.Next(ctx) {
		var mb mongoBoard
		if err := cur.Decode(&mb); err != nil {
			return nil, fmt.Errorf("decode board: %w", err)
		}
		boards = append(boards, mb.toDomain())
	}
	return boards, cur.Err()
}

func (r *BoardRepository) UpdateTitle(ctx context.Context, id, title string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrBoardNotFound
	}

	res, err := r.coll.UpdateByID(ctx, oid, bson.M{"$set": bson.M{"title": title}})
	if err != nil {
		return fmt.Errorf("update board title: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrBoardNotFound
	}
	return nil
}

// Delete removes the board, its lists, and their cards in one transaction.
func (r *BoardRepository) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrBoardNotFound
	}

	return withTransaction(ctx, r.db, func(sc mongo.SessionContext) error {
		lists := r.db.Collection(listsCollection)
		cards := r.db.Collection(cardsCollection)

		cur, err := lists.Find(sc, bson.M{"board_id": id})
		if err != nil {
			return fmt.Errorf("find lists for cascade: %w", err)
		}
		var listIDs []string
		for cur.Next(sc) {
			var ml mongoList
			if err := cur.Decode(&ml); err != nil {
				cur.Close(sc)
				return fmt.Errorf("decode list for cascade: %w", err)
			}
			listIDs = append(listIDs, ml.ID.Hex())
		}
		if err := cur.Err(); err != nil {
			cur.Close(sc)
			return err
		}
		cur.Close(sc)

		if len(listIDs) > 0 {
			if _, err := cards.DeleteMany(sc, bson.M{"list_id": bson.M{"$in": listIDs}}); err != nil {
				return fmt.Errorf("cascade delete cards: %w", err)
			}
		}
		if _, err := lists.DeleteMany(sc, bson.M{"board_id": id}); err != nil {
			return fmt.Errorf("cascade delete lists: %w", err)
		}

		res, err := r.coll.DeleteOne(sc, bson.M{"_id": oid})
		if err != nil {
			return fmt.Errorf("delete board: %w", err)
		}
		if res.DeletedCount == 0 {
			return domain.ErrBoardNotFound
		}
		return nil
	})
}

func (r *BoardRepository) AddMember(ctx context.Context, boardID, userID string) error {
	oid, err := primitive.ObjectIDFromHex(boardID)
	if err != nil {
		return domain.ErrBoardNotFound
	}

	res, err := r.coll.UpdateByID(ctx, oid, bson.M{"$addToSet": bson.M{"member_ids": userID}})
	if err != nil {
		return fmt.Errorf("add member: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrBoardNotFound
	}
	return nil
}

func (r *BoardRepository) RemoveMember(ctx context.Context, boardID, userID string) error {
	oid, err := primitive.ObjectIDFromHex(boardID)
	if err != nil {
		return domain.ErrBoardNotFound
	}

	res, err := r.coll.UpdateByID(ctx, oid, bson.M{"$pull": bson.M{"member_ids": userID}})
	if err != nil {
		return fmt.Errorf("remove member: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrBoardNotFound
	}
	return nil
}

// EnsureIndexes creates the membership lookup index.
func (r *BoardRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	_, err := r.coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "member_ids", Value: 1}},
	})
	return err
}
