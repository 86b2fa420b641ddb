package ports

import (
	"context"

	"github.com/taskflow/taskflow-api/internal/core/domain"
)

// MemberView is the member representation exposed on board reads. It never
// carries the password hash.
type MemberView struct {
	ID       string
	Username string
	Email    string
}

// ListWithCards is a list together with its cards ordered by position.
type ListWithCards struct {
	List  *domain.List
	Cards []*domain.Card
}

// BoardDetail is the full board view returned by board reads: the board,
// its members, and its lists with nested cards, both ordered by position.
type BoardDetail struct {
	Board   *domain.Board
	Members []MemberView
	Lists   []ListWithCards
}

// BoardService defines use-case operations for boards and their membership.
// Every operation takes the acting user's id and passes the membership gate
// before touching data.
type BoardService interface {
	ListBoards(ctx context.Context, userID string) ([]*BoardDetail, error)
	CreateBoard(ctx context.Context, userID, title string) (*BoardDetail, error)
	GetBoard(ctx context.Context, userID, boardID string) (*BoardDetail, error)
	UpdateBoard(ctx context.Context, userID, boardID, title string) (*BoardDetail, error)
	DeleteBoard(ctx context.Context, userID, boardID string) error

	// Invite adds a membership by email or username.
	Invite(ctx context.Context, userID, boardID, emailOrUsername string) (*domain.User, error)
	// AddMember adds a membership by email only.
	AddMember(ctx context.Context, userID, boardID, email string) (*domain.User, error)
	RemoveMember(ctx context.Context, userID, boardID, memberID string) error

	// Activity returns the board's most recent activity entries.
	Activity(ctx context.Context, userID, boardID string, limit int) ([]domain.Activity, error)
}

// UpdateListInput carries the optional fields of a list update. Nil fields
// are left untouched. Position is written as-is: plain position updates do
// not shift siblings.
type UpdateListInput struct {
	Title    *string
	Position *int
}

// ListService defines use-case operations for lists.
type ListService interface {
	CreateList(ctx context.Context, userID, boardID, title string, position int) (*domain.List, error)
	GetList(ctx context.Context, userID, listID string) (*domain.List, error)
	UpdateList(ctx context.Context, userID, listID string, input UpdateListInput) (*domain.List, error)
	DeleteList(ctx context.Context, userID, listID string) error
}
