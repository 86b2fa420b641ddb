package service

import (
	"context"
	"fmt"
	"sort"

	"github.com/taskflow/taskflow-api/internal/core/domain"
)

// In-memory stubs shared by the service tests. They mirror the filtering
// and ordering behavior of the Mongo repositories.

// ---------------------------------------------------------------------------
// Users
// ---------------------------------------------------------------------------

type stubUserRepo struct {
	byID      map[string]*domain.User
	createErr error
}

func newStubUserRepo(users ...*domain.User) *stubUserRepo {
	r := &stubUserRepo{byID: make(map[string]*domain.User)}
	for _, u := range users {
		clone := *u
		r.byID[u.ID] = &clone
	}
	return r
}

func (r *stubUserRepo) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	if r.createErr != nil {
		return nil, r.createErr
	}
	clone := *user
	if clone.ID == "" {
		clone.ID = "user-" + clone.Username
	}
	stored := clone
	r.byID[stored.ID] = &stored
	return &clone, nil
}

func (r *stubUserRepo) FindByID(_ context.Context, id string) (*domain.User, error) {
	if u, ok := r.byID[id]; ok {
		clone := *u
		return &clone, nil
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) FindByUsername(_ context.Context, username string) (*domain.User, error) {
	for _, u := range r.byID {
		if u.Username == username {
			clone := *u
			return &clone, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	for _, u := range r.byID {
		if u.Email == email {
			clone := *u
			return &clone, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) FindByEmailOrUsername(_ context.Context, identifier string) (*domain.User, error) {
	for _, u := range r.byID {
		if u.Email == identifier || u.Username == identifier {
			clone := *u
			return &clone, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

// ---------------------------------------------------------------------------
// Boards
// ---------------------------------------------------------------------------

type stubBoardRepo struct {
	byID      map[string]*domain.Board
	seq       int
	findCalls int // FindByID invocations, used by the cache tests
}

func newStubBoardRepo(boards ...*domain.Board) *stubBoardRepo {
	r := &stubBoardRepo{byID: make(map[string]*domain.Board)}
	for _, b := range boards {
		clone := *b
		clone.MemberIDs = append([]string(nil), b.MemberIDs...)
		r.byID[b.ID] = &clone
	}
	return r
}

func cloneBoard(b *domain.Board) *domain.Board {
	clone := *b
	clone.MemberIDs = append([]string(nil), b.MemberIDs...)
	return &clone
}

func (r *stubBoardRepo) Create(_ context.Context, b *domain.Board) (*domain.Board, error) {
	r.seq++
	stored := cloneBoard(b)
	if stored.ID == "" {
		stored.ID = fmt.Sprintf("board-%d", r.seq)
	}
	r.byID[stored.ID] = stored
	return cloneBoard(stored), nil
}

func (r *stubBoardRepo) FindByID(_ context.Context, id string) (*domain.Board, error) {
	r.findCalls++
	b, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrBoardNotFound
	}
	return cloneBoard(b), nil
}

func (r *stubBoardRepo) FindByMember(_ context.Context, userID string) ([]*domain.Board, error) {
	var out []*domain.Board
	for _, b := range r.byID {
		if b.HasMember(userID) {
			out = append(out, cloneBoard(b))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *stubBoardRepo) UpdateTitle(_ context.Context, id, title string) error {
	b, ok := r.byID[id]
	if !ok {
		return domain.ErrBoardNotFound
	}
	b.Title = title
	return nil
}

func (r *stubBoardRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.byID[id]; !ok {
		return domain.ErrBoardNotFound
	}
	delete(r.byID, id)
	return nil
}

func (r *stubBoardRepo) AddMember(_ context.Context, boardID, userID string) error {
	b, ok := r.byID[boardID]
	if !ok {
		return domain.ErrBoardNotFound
	}
	if !b.HasMember(userID) {
		b.MemberIDs = append(b.MemberIDs, userID)
	}
	return nil
}

func (r *stubBoardRepo) RemoveMember(_ context.Context, boardID, userID string) error {
	b, ok := r.byID[boardID]
	if !ok {
		return domain.ErrBoardNotFound
	}
	kept := b.MemberIDs[:0]
	for _, id := range b.MemberIDs {
		if id != userID {
			kept = append(kept, id)
		}
	}
	b.MemberIDs = kept
	return nil
}

// ---------------------------------------------------------------------------
// Lists
// ---------------------------------------------------------------------------

type stubListRepo struct {
	byID  map[string]*domain.List
	seq   int
	cards *stubCardRepo // when set, Delete cascades like the Mongo repo
}

func newStubListRepo(lists ...*domain.List) *stubListRepo {
	r := &stubListRepo{byID: make(map[string]*domain.List)}
	for _, l := range lists {
		clone := *l
		r.byID[l.ID] = &clone
	}
	return r
}

func (r *stubListRepo) Create(_ context.Context, l *domain.List) (*domain.List, error) {
	r.seq++
	clone := *l
	if clone.ID == "" {
		clone.ID = fmt.Sprintf("list-%d", r.seq)
	}
	stored := clone
	r.byID[stored.ID] = &stored
	return &clone, nil
}

func (r *stubListRepo) FindByID(_ context.Context, id string) (*domain.List, error) {
	l, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrListNotFound
	}
	clone := *l
	return &clone, nil
}

func (r *stubListRepo) FindByBoard(_ context.Context, boardID string) ([]*domain.List, error) {
	var out []*domain.List
	for _, l := range r.byID {
		if l.BoardID == boardID {
			clone := *l
			out = append(out, &clone)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Position < out[j].Position })
	return out, nil
}

func (r *stubListRepo) Update(_ context.Context, l *domain.List) error {
	if _, ok := r.byID[l.ID]; !ok {
		return domain.ErrListNotFound
	}
	clone := *l
	r.byID[l.ID] = &clone
	return nil
}

func (r *stubListRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.byID[id]; !ok {
		return domain.ErrListNotFound
	}
	delete(r.byID, id)
	if r.cards != nil {
		for cid, c := range r.cards.byID {
			if c.ListID == id {
				delete(r.cards.byID, cid)
			}
		}
	}
	return nil
}

// ---------------------------------------------------------------------------
// Cards
// ---------------------------------------------------------------------------

type stubCardRepo struct {
	byID       map[string]*domain.Card
	seq        int
	applyCalls int
	lastMoved  string
	applyErr   error
}

func newStubCardRepo(cards ...*domain.Card) *stubCardRepo {
	r := &stubCardRepo{byID: make(map[string]*domain.Card)}
	for _, c := range cards {
		clone := *c
		r.byID[c.ID] = &clone
	}
	return r
}

func (r *stubCardRepo) Create(_ context.Context, c *domain.Card) (*domain.Card, error) {
	r.seq++
	clone := *c
	if clone.ID == "" {
		clone.ID = fmt.Sprintf("card-%d", r.seq)
	}
	stored := clone
	r.byID[stored.ID] = &stored
	return &clone, nil
}

func (r *stubCardRepo) FindByID(_ context.Context, id string) (*domain.Card, error) {
	c, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrCardNotFound
	}
	clone := *c
	return &clone, nil
}

func (r *stubCardRepo) FindByList(_ context.Context, listID string) ([]*domain.Card, error) {
	var out []*domain.Card
	for _, c := range r.byID {
		if c.ListID == listID {
			clone := *c
			out = append(out, &clone)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Position < out[j].Position })
	return out, nil
}

func (r *stubCardRepo) Update(_ context.Context, c *domain.Card) error {
	if _, ok := r.byID[c.ID]; !ok {
		return domain.ErrCardNotFound
	}
	clone := *c
	r.byID[c.ID] = &clone
	return nil
}

func (r *stubCardRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.byID[id]; !ok {
		return domain.ErrCardNotFound
	}
	delete(r.byID, id)
	return nil
}

func (r *stubCardRepo) ApplyMove(_ context.Context, movedCardID string, updates []domain.CardPositionUpdate) error {
	if r.applyErr != nil {
		return r.applyErr
	}
	r.applyCalls++
	r.lastMoved = movedCardID
	for _, u := range updates {
		c, ok := r.byID[u.CardID]
		if !ok {
			return domain.ErrCardNotFound
		}
		c.ListID = u.ListID
		c.Position = u.Position
	}
	return nil
}

// positions returns "id@pos" for the list's cards in position order.
func (r *stubCardRepo) positions(listID string) []string {
	cards, _ := r.FindByList(context.Background(), listID)
	out := make([]string, 0, len(cards))
	for _, c := range cards {
		out = append(out, fmt.Sprintf("%s@%d", c.ID, c.Position))
	}
	return out
}

// ---------------------------------------------------------------------------
// Activity
// ---------------------------------------------------------------------------

type stubActivityRepo struct {
	entries []domain.Activity
}

func (r *stubActivityRepo) Insert(_ context.Context, a *domain.Activity) error {
	r.entries = append(r.entries, *a)
	return nil
}

func (r *stubActivityRepo) FindByBoard(_ context.Context, boardID string, limit int) ([]domain.Activity, error) {
	var out []domain.Activity
	for i := len(r.entries) - 1; i >= 0 && len(out) < limit; i-- {
		if r.entries[i].BoardID == boardID {
			out = append(out, r.entries[i])
		}
	}
	return out, nil
}

type stubRecorder struct {
	recorded []domain.Activity
}

func (r *stubRecorder) Record(a domain.Activity) {
	r.recorded = append(r.recorded, a)
}

func (r *stubRecorder) actions() []domain.ActivityAction {
	out := make([]domain.ActivityAction, 0, len(r.recorded))
	for _, a := range r.recorded {
		out = append(out, a.Action)
	}
	return out
}

// ---------------------------------------------------------------------------
// Member cache
// ---------------------------------------------------------------------------

type stubMemberCache struct {
	entries       map[string][]string
	getErr        error
	setErr        error
	invalidations int
}

func newStubMemberCache() *stubMemberCache {
	return &stubMemberCache{entries: make(map[string][]string)}
}

func (c *stubMemberCache) Get(_ context.Context, boardID string) ([]string, bool, error) {
	if c.getErr != nil {
		return nil, false, c.getErr
	}
	members, ok := c.entries[boardID]
	return members, ok, nil
}

func (c *stubMemberCache) Set(_ context.Context, boardID string, memberIDs []string) error {
	if c.setErr != nil {
		return c.setErr
	}
	c.entries[boardID] = append([]string(nil), memberIDs...)
	return nil
}

func (c *stubMemberCache) Invalidate(_ context.Context, boardID string) error {
	c.invalidations++
	delete(c.entries, boardID)
	return nil
}
