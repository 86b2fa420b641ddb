package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/taskflow/taskflow-api/internal/core/domain"
	"github.com/taskflow/taskflow-api/internal/core/ports"
)

const defaultActivityLimit = 50

// BoardService implements board CRUD and membership management. Membership
// is self-service: any member may invite, add, or remove members.
type BoardService struct {
	boards     ports.BoardRepository
	lists      ports.ListRepository
	cards      ports.CardRepository
	users      ports.AuthRepository
	activities ports.ActivityRepository
	gate       *Authorizer
	recorder   ports.ActivityRecorder
	logger     zerolog.Logger
}

func NewBoardService(
	boards ports.BoardRepository,
	lists ports.ListRepository,
	cards ports.CardRepository,
	users ports.AuthRepository,
	activities ports.ActivityRepository,
	gate *Authorizer,
	recorder ports.ActivityRecorder,
	logger zerolog.Logger,
) *BoardService {
	return &BoardService{
		boards:     boards,
		lists:      lists,
		cards:      cards,
		users:      users,
		activities: activities,
		gate:       gate,
		recorder:   recorder,
		logger:     logger,
	}
}

// ListBoards returns every board the user is a member of, fully expanded.
func (s *BoardService) ListBoards(ctx context.Context, userID string) ([]*ports.BoardDetail, error) {
	boards, err := s.boards.FindByMember(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list boards: %w", err)
	}

	details := make([]*ports.BoardDetail, 0, len(boards))
	for _, b := range boards {
		detail, err := s.expand(ctx, b)
		if err != nil {
			return nil, err
		}
		details = append(details, detail)
	}
	return details, nil
}

// CreateBoard creates a board with the acting user as its first member.
func (s *BoardService) CreateBoard(ctx context.Context, userID, title string) (*ports.BoardDetail, error) {
	if title == "" {
		return nil, domain.ErrTitleRequired
	}

	board := &domain.Board{
		Title:     title,
		MemberIDs: []string{userID},
		CreatedAt: time.Now().UTC(),
	}

	created, err := s.boards.Create(ctx, board)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to create board")
		return nil, err
	}

	s.logger.Info().Str("board_id", created.ID).Str("user_id", userID).Msg("board created")
	s.record(created.ID, userID, domain.ActionBoardCreated, created.Title)

	return s.expand(ctx, created)
}

// GetBoard returns the full board view after the membership gate.
func (s *BoardService) GetBoard(ctx context.Context, userID, boardID string) (*ports.BoardDetail, error) {
	if err := s.gate.Authorize(ctx, userID, boardID); err != nil {
		return nil, err
	}
	board, err := s.boards.FindByID(ctx, boardID)
	if err != nil {
		return nil, err
	}
	return s.expand(ctx, board)
}

// UpdateBoard renames the board.
func (s *BoardService) UpdateBoard(ctx context.Context, userID, boardID, title string) (*ports.BoardDetail, error) {
	if err := s.gate.Authorize(ctx, userID, boardID); err != nil {
		return nil, err
	}
	if title != "" {
		if err := s.boards.UpdateTitle(ctx, boardID, title); err != nil {
			return nil, err
		}
	}
	board, err := s.boards.FindByID(ctx, boardID)
	if err != nil {
		return nil, err
	}
	return s.expand(ctx, board)
}

// DeleteBoard removes the board and cascades to its lists and cards.
func (s *BoardService) DeleteBoard(ctx context.Context, userID, boardID string) error {
	if err := s.gate.Authorize(ctx, userID, boardID); err != nil {
		return err
	}
	if err := s.boards.Delete(ctx, boardID); err != nil {
		return fmt.Errorf("delete board: %w", err)
	}
	s.gate.InvalidateMembers(ctx, boardID)
	s.logger.Info().Str("board_id", boardID).Str("user_id", userID).Msg("board deleted")
	return nil
}

// Invite adds a membership resolved by email or username.
func (s *BoardService) Invite(ctx context.Context, userID, boardID, emailOrUsername string) (*domain.User, error) {
	return s.addMembership(ctx, userID, boardID, func(ctx context.Context) (*domain.User, error) {
		return s.users.FindByEmailOrUsername(ctx, emailOrUsername)
	})
}

// AddMember adds a membership resolved by email only.
func (s *BoardService) AddMember(ctx context.Context, userID, boardID, email string) (*domain.User, error) {
	return s.addMembership(ctx, userID, boardID, func(ctx context.Context) (*domain.User, error) {
		return s.users.FindByEmail(ctx, email)
	})
}

func (s *BoardService) addMembership(ctx context.Context, userID, boardID string, resolve func(context.Context) (*domain.User, error)) (*domain.User, error) {
	if err := s.gate.Authorize(ctx, userID, boardID); err != nil {
		return nil, err
	}

	target, err := resolve(ctx)
	if err != nil {
		return nil, err
	}

	board, err := s.boards.FindByID(ctx, boardID)
	if err != nil {
		return nil, err
	}
	if board.HasMember(target.ID) {
		return nil, domain.ErrAlreadyMember
	}

	if err := s.boards.AddMember(ctx, boardID, target.ID); err != nil {
		return nil, err
	}
	s.gate.InvalidateMembers(ctx, boardID)

	s.logger.Info().Str("board_id", boardID).Str("member_id", target.ID).Msg("member added")
	s.record(boardID, userID, domain.ActionMemberAdded, target.Username)

	return target, nil
}

// RemoveMember deletes a membership row. Any member may remove any other
// member, including themselves.
func (s *BoardService) RemoveMember(ctx context.Context, userID, boardID, memberID string) error {
	if err := s.gate.Authorize(ctx, userID, boardID); err != nil {
		return err
	}

	board, err := s.boards.FindByID(ctx, boardID)
	if err != nil {
		return err
	}
	if !board.HasMember(memberID) {
		return domain.ErrNotMember
	}

	if err := s.boards.RemoveMember(ctx, boardID, memberID); err != nil {
		return err
	}
	s.gate.InvalidateMembers(ctx, boardID)

	s.logger.Info().Str("board_id", boardID).Str("member_id", memberID).Msg("member removed")
	s.record(boardID, userID, domain.ActionMemberRemoved, memberID)

	return nil
}

// Activity returns the board's most recent activity entries, newest first.
func (s *BoardService) Activity(ctx context.Context, userID, boardID string, limit int) ([]domain.Activity, error) {
	if err := s.gate.Authorize(ctx, userID, boardID); err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = defaultActivityLimit
	}
	return s.activities.FindByBoard(ctx, boardID, limit)
}

// expand loads the board's members and its lists with nested cards, both
// ordered by position.
func (s *BoardService) expand(ctx context.Context, board *domain.Board) (*ports.BoardDetail, error) {
	members := make([]ports.MemberView, 0, len(board.MemberIDs))
	for _, id := range board.MemberIDs {
		user, err := s.users.FindByID(ctx, id)
		if err != nil {
			// A membership pointing at a removed account is skipped, not fatal.
			s.logger.Warn().Str("user_id", id).Str("board_id", board.ID).Msg("member lookup failed")
			continue
		}
		members = append(members, ports.MemberView{ID: user.ID, Username: user.Username, Email: user.Email})
	}

	lists, err := s.lists.FindByBoard(ctx, board.ID)
	if err != nil {
		return nil, fmt.Errorf("expand board %s: %w", board.ID, err)
	}

	withCards := make([]ports.ListWithCards, 0, len(lists))
	for _, l := range lists {
		cards, err := s.cards.FindByList(ctx, l.ID)
		if err != nil {
			return nil, fmt.Errorf("expand list %s: %w", l.ID, err)
		}
		withCards = append(withCards, ports.ListWithCards{List: l, Cards: cards})
	}

	return &ports.BoardDetail{Board: board, Members: members, Lists: withCards}, nil
}

func (s *BoardService) record(boardID, actorID string, action domain.ActivityAction, detail string) {
	if s.recorder == nil {
		return
	}
	s.recorder.Record(domain.Activity{
		BoardID:   boardID,
		ActorID:   actorID,
		Action:    action,
		Detail:    detail,
		Timestamp: time.Now().UTC(),
	})
}
