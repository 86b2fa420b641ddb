package ports

import (
	"context"

	"github.com/taskflow/taskflow-api/internal/core/domain"
)

// BoardRepository defines persistence operations for boards and their
// membership set.
type BoardRepository interface {
	Create(ctx context.Context, b *domain.Board) (*domain.Board, error)
	FindByID(ctx context.Context, id string) (*domain.Board, error)
	// FindByMember returns every board whose membership set contains userID.
	FindByMember(ctx context.Context, userID string) ([]*domain.Board, error)
	UpdateTitle(ctx context.Context, id, title string) error
	// Delete removes the board together with all of its lists and their
	// cards in a single transaction.
	Delete(ctx context.Context, id string) error

	AddMember(ctx context.Context, boardID, userID string) error
	RemoveMember(ctx context.Context, boardID, userID string) error
}

// ListRepository defines persistence operations for lists.
type ListRepository interface {
	Create(ctx context.Context, l *domain.List) (*domain.List, error)
	FindByID(ctx context.Context, id string) (*domain.List, error)
	// FindByBoard returns the board's lists ordered by position.
	FindByBoard(ctx context.Context, boardID string) ([]*domain.List, error)
	Update(ctx context.Context, l *domain.List) error
	// Delete removes the list and all of its cards in a single transaction.
	Delete(ctx context.Context, id string) error
}
