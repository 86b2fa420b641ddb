package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/taskflow/taskflow-api/internal/core/domain"
	"github.com/taskflow/taskflow-api/internal/core/ports"
)

// MemberCache abstracts the board-membership cache (Redis). A nil cache or
// any cache error degrades to repository lookups; the cache is never
// authoritative for a deny.
type MemberCache interface {
	// Get returns the cached member set and whether the key was present.
	Get(ctx context.Context, boardID string) ([]string, bool, error)
	Set(ctx context.Context, boardID string, memberIDs []string) error
	Invalidate(ctx context.Context, boardID string) error
}

// Authorizer is the membership gate. Every board, list, and card operation
// resolves its owning board and passes through Authorize before touching
// data: allow iff the user is in the board's membership set.
type Authorizer struct {
	boards ports.BoardRepository
	cache  MemberCache
	log    zerolog.Logger
}

func NewAuthorizer(boards ports.BoardRepository, cache MemberCache, log zerolog.Logger) *Authorizer {
	return &Authorizer{boards: boards, cache: cache, log: log}
}

// Authorize returns nil when userID is a member of the board, ErrForbidden
// when not, and ErrBoardNotFound when the board does not exist.
func (a *Authorizer) Authorize(ctx context.Context, userID, boardID string) error {
	if a.cache != nil {
		members, ok, err := a.cache.Get(ctx, boardID)
		if err != nil {
			a.log.Warn().Err(err).Str("board_id", boardID).Msg("member cache read failed, falling back to repository")
		} else if ok {
			if contains(members, userID) {
				return nil
			}
			return domain.ErrForbidden
		}
	}

	board, err := a.boards.FindByID(ctx, boardID)
	if err != nil {
		return err
	}

	if a.cache != nil {
		if err := a.cache.Set(ctx, boardID, board.MemberIDs); err != nil {
			a.log.Warn().Err(err).Str("board_id", boardID).Msg("member cache write failed")
		}
	}

	if !board.HasMember(userID) {
		return domain.ErrForbidden
	}
	return nil
}

// InvalidateMembers drops the cached member set after a membership change
// or a board delete. Failures are logged, never surfaced.
func (a *Authorizer) InvalidateMembers(ctx context.Context, boardID string) {
	if a.cache == nil {
		return
	}
	if err := a.cache.Invalidate(ctx, boardID); err != nil {
		a.log.Warn().Err(err).Str("board_id", boardID).Msg("member cache invalidation failed")
	}
}

func contains(ids []string, id string) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}
