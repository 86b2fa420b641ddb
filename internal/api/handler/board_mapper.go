package handler

import (
	"github.com/taskflow/taskflow-api/internal/core/domain"
	"github.com/taskflow/taskflow-api/internal/core/ports"
)

// --- Service result to HTTP response ---

func toBoardResponse(d *ports.BoardDetail) boardResponse {
	members := make([]memberResponse, len(d.Members))
	for i, m := range d.Members {
		members[i] = memberResponse{ID: m.ID, Username: m.Username, Email: m.Email}
	}

	lists := make([]listResponse, len(d.Lists))
	for i, l := range d.Lists {
		lists[i] = toListResponse(l.List, l.Cards)
	}

	return boardResponse{
		ID:        d.Board.ID,
		Title:     d.Board.Title,
		CreatedAt: d.Board.CreatedAt.UTC(),
		Lists:     lists,
		Members:   members,
	}
}

func toListResponse(l *domain.List, cards []*domain.Card) listResponse {
	out := make([]cardResponse, len(cards))
	for i, c := range cards {
		out[i] = toCardResponse(c)
	}
	return listResponse{
		ID:       l.ID,
		BoardID:  l.BoardID,
		Title:    l.Title,
		Position: l.Position,
		Cards:    out,
	}
}

func toCardResponse(c *domain.Card) cardResponse {
	return cardResponse{
		ID:          c.ID,
		ListID:      c.ListID,
		Title:       c.Title,
		Description: c.Description,
		Position:    c.Position,
		CreatedAt:   c.CreatedAt.UTC(),
		UpdatedAt:   c.UpdatedAt.UTC(),
	}
}

func toActivityResponse(boardID string, entries []domain.Activity) boardActivityResponse {
	out := make([]activityResponse, len(entries))
	for i, a := range entries {
		out[i] = activityResponse{
			ActorID:   a.ActorID,
			Action:    string(a.Action),
			Detail:    a.Detail,
			Timestamp: a.Timestamp.UTC(),
		}
	}
	return boardActivityResponse{BoardID: boardID, Entries: out}
}
