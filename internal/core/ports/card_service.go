package ports

import (
	"context"

	"github.com/taskflow/taskflow-api/internal/core/domain"
)

// CreateCardInput carries the data for a new card. Position defaults to 0
// when the caller omits it; creation never shifts sibling cards.
type CreateCardInput struct {
	ListID      string
	Title       string
	Description string
	Position    int
}

// UpdateCardInput carries the optional fields of a card update. Nil fields
// are left untouched. Position is written as-is, without shifting siblings.
type UpdateCardInput struct {
	Title       *string
	Description *string
	Position    *int
}

// MoveCardInput carries the target of a card move. The target list may
// belong to a different board as long as the actor is a member of both.
type MoveCardInput struct {
	CardID     string
	TargetList string
	Position   int
}

// CardService defines use-case operations for cards, including the
// position-reordering move.
type CardService interface {
	CreateCard(ctx context.Context, userID string, input CreateCardInput) (*domain.Card, error)
	GetCard(ctx context.Context, userID, cardID string) (*domain.Card, error)
	UpdateCard(ctx context.Context, userID, cardID string, input UpdateCardInput) (*domain.Card, error)
	DeleteCard(ctx context.Context, userID, cardID string) error
	MoveCard(ctx context.Context, userID string, input MoveCardInput) error
}

// ActivityRecorder accepts activity entries for asynchronous persistence.
// Recording is fire-and-forget: a failure never fails the operation that
// produced the entry.
type ActivityRecorder interface {
	Record(a domain.Activity)
}
