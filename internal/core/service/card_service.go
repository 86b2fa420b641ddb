package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/taskflow/taskflow-api/internal/core/domain"
	"github.com/taskflow/taskflow-api/internal/core/ports"
)

// CardService implements card CRUD and the position-reordering move. Card
// operations resolve the card, then its owning list and board, and pass
// the membership gate before touching data.
type CardService struct {
	cards    ports.CardRepository
	lists    ports.ListRepository
	gate     *Authorizer
	recorder ports.ActivityRecorder
	logger   zerolog.Logger
}

func NewCardService(cards ports.CardRepository, lists ports.ListRepository, gate *Authorizer, recorder ports.ActivityRecorder, logger zerolog.Logger) *CardService {
	return &CardService{cards: cards, lists: lists, gate: gate, recorder: recorder, logger: logger}
}

// CreateCard inserts a card at the given position. Siblings are not
// shifted: callers supply positions consistent with the intended order.
func (s *CardService) CreateCard(ctx context.Context, userID string, input ports.CreateCardInput) (*domain.Card, error) {
	list, err := s.lists.FindByID(ctx, input.ListID)
	if err != nil {
		return nil, err
	}
	if err := s.gate.Authorize(ctx, userID, list.BoardID); err != nil {
		return nil, err
	}
	if input.Title == "" {
		return nil, domain.ErrTitleRequired
	}

	now := time.Now().UTC()
	card := &domain.Card{
		ListID:      input.ListID,
		Title:       input.Title,
		Description: input.Description,
		Position:    input.Position,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	created, err := s.cards.Create(ctx, card)
	if err != nil {
		s.logger.Error().Err(err).Str("list_id", input.ListID).Msg("failed to create card")
		return nil, err
	}

	s.record(list.BoardID, userID, domain.ActionCardCreated, created.Title)
	return created, nil
}

func (s *CardService) GetCard(ctx context.Context, userID, cardID string) (*domain.Card, error) {
	card, _, err := s.resolve(ctx, userID, cardID)
	return card, err
}

// UpdateCard sets title, description, and/or a raw position. Position
// writes here do not re-sequence siblings. UpdatedAt is refreshed.
func (s *CardService) UpdateCard(ctx context.Context, userID, cardID string, input ports.UpdateCardInput) (*domain.Card, error) {
	card, _, err := s.resolve(ctx, userID, cardID)
	if err != nil {
		return nil, err
	}

	if input.Title != nil && *input.Title != "" {
		card.Title = *input.Title
	}
	if input.Description != nil {
		card.Description = *input.Description
	}
	if input.Position != nil {
		card.Position = *input.Position
	}
	card.UpdatedAt = time.Now().UTC()

	if err := s.cards.Update(ctx, card); err != nil {
		return nil, err
	}
	return card, nil
}

// DeleteCard removes the card. Sibling positions are left untouched, so a
// gap remains in the list's sequence.
func (s *CardService) DeleteCard(ctx context.Context, userID, cardID string) error {
	card, list, err := s.resolve(ctx, userID, cardID)
	if err != nil {
		return err
	}

	if err := s.cards.Delete(ctx, cardID); err != nil {
		return err
	}

	s.logger.Info().Str("card_id", cardID).Str("list_id", card.ListID).Msg("card deleted")
	s.record(list.BoardID, userID, domain.ActionCardDeleted, card.Title)
	return nil
}

// MoveCard moves a card within its list or across lists, repairing the
// position sequences on both sides. The actor must pass the gate on the
// source board and, for cross-board moves, on the target board as well.
// The whole batch is applied in one transaction; re-issuing an identical
// move is a data no-op.
func (s *CardService) MoveCard(ctx context.Context, userID string, input ports.MoveCardInput) error {
	card, sourceList, err := s.resolve(ctx, userID, input.CardID)
	if err != nil {
		return err
	}

	targetList := sourceList
	if input.TargetList != card.ListID {
		targetList, err = s.lists.FindByID(ctx, input.TargetList)
		if err != nil {
			return err
		}
		if targetList.BoardID != sourceList.BoardID {
			if err := s.gate.Authorize(ctx, userID, targetList.BoardID); err != nil {
				return err
			}
		}
	}

	targetCards, err := s.cards.FindByList(ctx, targetList.ID)
	if err != nil {
		return fmt.Errorf("move card: load target list: %w", err)
	}

	var sourceCards []*domain.Card
	if targetList.ID != card.ListID {
		sourceCards, err = s.cards.FindByList(ctx, card.ListID)
		if err != nil {
			return fmt.Errorf("move card: load source list: %w", err)
		}
	}

	updates := planMove(card, targetCards, sourceCards, targetList.ID, input.Position)
	if len(updates) == 0 {
		s.logger.Debug().Str("card_id", card.ID).Msg("move is a no-op")
		return nil
	}

	if err := s.cards.ApplyMove(ctx, card.ID, updates); err != nil {
		return fmt.Errorf("move card: %w", err)
	}

	s.logger.Info().
		Str("card_id", card.ID).
		Str("from_list", card.ListID).
		Str("to_list", targetList.ID).
		Int("position", input.Position).
		Msg("card moved")
	s.record(targetList.BoardID, userID, domain.ActionCardMoved, card.Title)

	return nil
}

// planMove computes the full position batch for a move. target holds the
// current cards of the destination list and source those of the origin
// list (nil for a within-list move); both ordered by position.
//
// Cross-list: destination cards at pos >= targetPos shift up to make room,
// origin cards past the vacated slot shift down to close the gap.
//
// Within-list: the card is lifted out and reinserted, so only the cards
// between the old and new slots shift; positions stay dense and an
// identical repeat produces an empty batch.
func planMove(card *domain.Card, target, source []*domain.Card, targetListID string, targetPos int) []domain.CardPositionUpdate {
	var updates []domain.CardPositionUpdate

	if targetListID == card.ListID {
		if targetPos == card.Position {
			return nil
		}
		for _, c := range target {
			if c.ID == card.ID {
				continue
			}
			switch {
			case targetPos < card.Position && c.Position >= targetPos && c.Position < card.Position:
				updates = append(updates, domain.CardPositionUpdate{CardID: c.ID, ListID: c.ListID, Position: c.Position + 1})
			case targetPos > card.Position && c.Position > card.Position && c.Position <= targetPos:
				updates = append(updates, domain.CardPositionUpdate{CardID: c.ID, ListID: c.ListID, Position: c.Position - 1})
			}
		}
	} else {
		for _, c := range target {
			if c.Position >= targetPos {
				updates = append(updates, domain.CardPositionUpdate{CardID: c.ID, ListID: c.ListID, Position: c.Position + 1})
			}
		}
		for _, c := range source {
			if c.ID != card.ID && c.Position > card.Position {
				updates = append(updates, domain.CardPositionUpdate{CardID: c.ID, ListID: c.ListID, Position: c.Position - 1})
			}
		}
	}

	return append(updates, domain.CardPositionUpdate{CardID: card.ID, ListID: targetListID, Position: targetPos})
}

// resolve loads the card, its owning list, and gates the actor on the
// owning board.
func (s *CardService) resolve(ctx context.Context, userID, cardID string) (*domain.Card, *domain.List, error) {
	card, err := s.cards.FindByID(ctx, cardID)
	if err != nil {
		return nil, nil, err
	}
	list, err := s.lists.FindByID(ctx, card.ListID)
	if err != nil {
		return nil, nil, err
	}
	if err := s.gate.Authorize(ctx, userID, list.BoardID); err != nil {
		return nil, nil, err
	}
	return card, list, nil
}

func (s *CardService) record(boardID, actorID string, action domain.ActivityAction, detail string) {
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
