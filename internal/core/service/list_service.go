package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/taskflow/taskflow-api/internal/core/domain"
	"github.com/taskflow/taskflow-api/internal/core/ports"
)

// ListService implements list CRUD. List operations resolve the owning
// board and pass the membership gate before touching data.
type ListService struct {
	lists    ports.ListRepository
	gate     *Authorizer
	recorder ports.ActivityRecorder
	logger   zerolog.Logger
}

func NewListService(lists ports.ListRepository, gate *Authorizer, recorder ports.ActivityRecorder, logger zerolog.Logger) *ListService {
	return &ListService{lists: lists, gate: gate, recorder: recorder, logger: logger}
}

// CreateList inserts a list at the given position. Siblings are not
// shifted: callers supply positions consistent with the intended order.
func (s *ListService) CreateList(ctx context.Context, userID, boardID, title string, position int) (*domain.List, error) {
	if err := s.gate.Authorize(ctx, userID, boardID); err != nil {
		return nil, err
	}
	if title == "" {
		return nil, domain.ErrTitleRequired
	}

	list := &domain.List{
		BoardID:  boardID,
		Title:    title,
		Position: position,
	}

	created, err := s.lists.Create(ctx, list)
	if err != nil {
		s.logger.Error().Err(err).Str("board_id", boardID).Msg("failed to create list")
		return nil, err
	}

	s.record(boardID, userID, domain.ActionListCreated, created.Title)
	return created, nil
}

func (s *ListService) GetList(ctx context.Context, userID, listID string) (*domain.List, error) {
	list, err := s.lists.FindByID(ctx, listID)
	if err != nil {
		return nil, err
	}
	if err := s.gate.Authorize(ctx, userID, list.BoardID); err != nil {
		return nil, err
	}
	return list, nil
}

// UpdateList sets the title and/or a raw position. Position writes here do
// not re-sequence siblings.
func (s *ListService) UpdateList(ctx context.Context, userID, listID string, input ports.UpdateListInput) (*domain.List, error) {
	list, err := s.lists.FindByID(ctx, listID)
	if err != nil {
		return nil, err
	}
	if err := s.gate.Authorize(ctx, userID, list.BoardID); err != nil {
		return nil, err
	}

	if input.Title != nil && *input.Title != "" {
		list.Title = *input.Title
	}
	if input.Position != nil {
		list.Position = *input.Position
	}

	if err := s.lists.Update(ctx, list); err != nil {
		return nil, err
	}
	return list, nil
}

// DeleteList removes the list and its cards. Sibling list positions are
// left untouched, so a gap remains in the sequence.
func (s *ListService) DeleteList(ctx context.Context, userID, listID string) error {
	list, err := s.lists.FindByID(ctx, listID)
	if err != nil {
		return err
	}
	if err := s.gate.Authorize(ctx, userID, list.BoardID); err != nil {
		return err
	}

	if err := s.lists.Delete(ctx, listID); err != nil {
		return err
	}

	s.logger.Info().Str("list_id", listID).Str("board_id", list.BoardID).Msg("list deleted")
	s.record(list.BoardID, userID, domain.ActionListDeleted, list.Title)
	return nil
}

func (s *ListService) record(boardID, actorID string, action domain.ActivityAction, detail string) {
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
