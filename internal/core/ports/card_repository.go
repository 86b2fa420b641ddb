package ports

import (
	"context"

	"github.com/taskflow/taskflow-api/internal/core/domain"
)

// CardRepository defines persistence operations for cards, including the
// atomic multi-row position batch used by card moves.
type CardRepository interface {
	Create(ctx context.Context, c *domain.Card) (*domain.Card, error)
	FindByID(ctx context.Context, id string) (*domain.Card, error)
	// FindByList returns the list's cards ordered by position.
	FindByList(ctx context.Context, listID string) ([]*domain.Card, error)
	Update(ctx context.Context, c *domain.Card) error
	Delete(ctx context.Context, id string) error

	// ApplyMove applies the whole position batch produced by a move in one
	// transaction, and refreshes updated_at on the moved card. A failure at
	// any step rolls back every write.
	ApplyMove(ctx context.Context, movedCardID string, updates []domain.CardPositionUpdate) error
}

// ActivityRepository persists board activity entries.
type ActivityRepository interface {
	Insert(ctx context.Context, a *domain.Activity) error
	// FindByBoard returns the most recent entries for a board, newest first.
	FindByBoard(ctx context.Context, boardID string, limit int) ([]domain.Activity, error)
}
