package service

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"github.com/rs/zerolog"

	"github.com/taskflow/taskflow-api/internal/core/domain"
	"github.com/taskflow/taskflow-api/internal/core/ports"
)

// cardFixture wires a CardService over one board ("b1", member u1) with two
// lists and a second board ("b2", member u2) with one list.
type cardFixture struct {
	boards *stubBoardRepo
	lists  *stubListRepo
	cards  *stubCardRepo
	rec    *stubRecorder
	svc    *CardService
}

func newCardFixture() *cardFixture {
	f := &cardFixture{
		boards: newStubBoardRepo(
			&domain.Board{ID: "b1", Title: "Roadmap", MemberIDs: []string{"u1"}},
			&domain.Board{ID: "b2", Title: "Ops", MemberIDs: []string{"u2"}},
		),
		lists: newStubListRepo(
			&domain.List{ID: "l1", BoardID: "b1", Title: "Todo", Position: 0},
			&domain.List{ID: "l2", BoardID: "b1", Title: "Doing", Position: 1},
			&domain.List{ID: "l3", BoardID: "b2", Title: "Inbox", Position: 0},
		),
		cards: newStubCardRepo(),
		rec:   &stubRecorder{},
	}
	gate := NewAuthorizer(f.boards, newStubMemberCache(), zerolog.Nop())
	f.svc = NewCardService(f.cards, f.lists, gate, f.rec, zerolog.Nop())
	return f
}

func (f *cardFixture) seed(cards ...*domain.Card) {
	for _, c := range cards {
		clone := *c
		f.cards.byID[c.ID] = &clone
	}
}

func TestCreateCardDoesNotShiftSiblings(t *testing.T) {
	f := newCardFixture()
	f.seed(&domain.Card{ID: "a", ListID: "l1", Title: "A", Position: 0})

	created, err := f.svc.CreateCard(context.Background(), "u1", ports.CreateCardInput{
		ListID: "l1", Title: "B", Position: 0,
	})
	if err != nil {
		t.Fatalf("CreateCard returned error: %v", err)
	}
	if created.Position != 0 {
		t.Errorf("created position = %d, want 0", created.Position)
	}
	if f.cards.byID["a"].Position != 0 {
		t.Errorf("sibling shifted on create: pos = %d", f.cards.byID["a"].Position)
	}
}

func TestCreateCardDeniedForNonMember(t *testing.T) {
	f := newCardFixture()

	_, err := f.svc.CreateCard(context.Background(), "u2", ports.CreateCardInput{ListID: "l1", Title: "X"})
	if !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
}

func TestUpdateCardPartial(t *testing.T) {
	f := newCardFixture()
	f.seed(&domain.Card{ID: "a", ListID: "l1", Title: "A", Description: "old", Position: 0})

	desc := "new"
	updated, err := f.svc.UpdateCard(context.Background(), "u1", "a", ports.UpdateCardInput{Description: &desc})
	if err != nil {
		t.Fatalf("UpdateCard returned error: %v", err)
	}
	if updated.Title != "A" {
		t.Errorf("title changed by a partial update: %q", updated.Title)
	}
	if updated.Description != "new" {
		t.Errorf("description = %q, want %q", updated.Description, "new")
	}
	if updated.UpdatedAt.IsZero() {
		t.Error("UpdatedAt not refreshed")
	}
}

func TestDeleteCardLeavesGap(t *testing.T) {
	f := newCardFixture()
	f.seed(
		&domain.Card{ID: "a", ListID: "l1", Position: 0},
		&domain.Card{ID: "b", ListID: "l1", Position: 1},
		&domain.Card{ID: "c", ListID: "l1", Position: 2},
	)

	if err := f.svc.DeleteCard(context.Background(), "u1", "b"); err != nil {
		t.Fatalf("DeleteCard returned error: %v", err)
	}

	got := f.cards.positions("l1")
	want := []string{"a@0", "c@2"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("positions after delete = %v, want %v", got, want)
	}
}

// ---------------------------------------------------------------------------
// Moves
// ---------------------------------------------------------------------------

func TestMoveCardCrossList(t *testing.T) {
	f := newCardFixture()
	f.seed(
		&domain.Card{ID: "a", ListID: "l1", Position: 0},
		&domain.Card{ID: "b", ListID: "l1", Position: 1},
		&domain.Card{ID: "c", ListID: "l1", Position: 2},
		&domain.Card{ID: "d", ListID: "l2", Position: 0},
	)

	err := f.svc.MoveCard(context.Background(), "u1", ports.MoveCardInput{CardID: "a", TargetList: "l2", Position: 0})
	if err != nil {
		t.Fatalf("MoveCard returned error: %v", err)
	}

	if got, want := f.cards.positions("l2"), []string{"a@0", "d@1"}; !reflect.DeepEqual(got, want) {
		t.Errorf("target list = %v, want %v", got, want)
	}
	if got, want := f.cards.positions("l1"), []string{"b@0", "c@1"}; !reflect.DeepEqual(got, want) {
		t.Errorf("source list = %v, want %v", got, want)
	}
	if f.cards.lastMoved != "a" {
		t.Errorf("moved card id = %q, want %q", f.cards.lastMoved, "a")
	}
}

func TestMoveCardWithinListBackward(t *testing.T) {
	f := newCardFixture()
	f.seed(
		&domain.Card{ID: "a", ListID: "l1", Position: 0},
		&domain.Card{ID: "b", ListID: "l1", Position: 1},
		&domain.Card{ID: "c", ListID: "l1", Position: 2},
		&domain.Card{ID: "d", ListID: "l1", Position: 3},
	)

	err := f.svc.MoveCard(context.Background(), "u1", ports.MoveCardInput{CardID: "c", TargetList: "l1", Position: 0})
	if err != nil {
		t.Fatalf("MoveCard returned error: %v", err)
	}

	got := f.cards.positions("l1")
	want := []string{"c@0", "a@1", "b@2", "d@3"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("list = %v, want %v", got, want)
	}
}

func TestMoveCardWithinListForward(t *testing.T) {
	f := newCardFixture()
	f.seed(
		&domain.Card{ID: "a", ListID: "l1", Position: 0},
		&domain.Card{ID: "b", ListID: "l1", Position: 1},
		&domain.Card{ID: "c", ListID: "l1", Position: 2},
		&domain.Card{ID: "d", ListID: "l1", Position: 3},
	)

	err := f.svc.MoveCard(context.Background(), "u1", ports.MoveCardInput{CardID: "a", TargetList: "l1", Position: 2})
	if err != nil {
		t.Fatalf("MoveCard returned error: %v", err)
	}

	got := f.cards.positions("l1")
	want := []string{"b@0", "c@1", "a@2", "d@3"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("list = %v, want %v", got, want)
	}
}

func TestMoveCardIdenticalIsNoOp(t *testing.T) {
	f := newCardFixture()
	f.seed(
		&domain.Card{ID: "a", ListID: "l1", Position: 0},
		&domain.Card{ID: "b", ListID: "l1", Position: 1},
	)

	err := f.svc.MoveCard(context.Background(), "u1", ports.MoveCardInput{CardID: "b", TargetList: "l1", Position: 1})
	if err != nil {
		t.Fatalf("MoveCard returned error: %v", err)
	}
	if f.cards.applyCalls != 0 {
		t.Errorf("ApplyMove called %d times for an identical move", f.cards.applyCalls)
	}
}

func TestMoveCardRepeatConverges(t *testing.T) {
	f := newCardFixture()
	f.seed(
		&domain.Card{ID: "a", ListID: "l1", Position: 0},
		&domain.Card{ID: "b", ListID: "l1", Position: 1},
		&domain.Card{ID: "c", ListID: "l1", Position: 2},
	)

	for i := 0; i < 2; i++ {
		if err := f.svc.MoveCard(context.Background(), "u1", ports.MoveCardInput{CardID: "c", TargetList: "l1", Position: 0}); err != nil {
			t.Fatalf("MoveCard #%d returned error: %v", i+1, err)
		}
	}

	got := f.cards.positions("l1")
	want := []string{"c@0", "a@1", "b@2"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("list after repeated move = %v, want %v", got, want)
	}
	if f.cards.applyCalls != 1 {
		t.Errorf("ApplyMove called %d times, want 1", f.cards.applyCalls)
	}
}

func TestMoveCardToEmptyList(t *testing.T) {
	f := newCardFixture()
	f.seed(&domain.Card{ID: "a", ListID: "l1", Position: 0})

	err := f.svc.MoveCard(context.Background(), "u1", ports.MoveCardInput{CardID: "a", TargetList: "l2", Position: 0})
	if err != nil {
		t.Fatalf("MoveCard returned error: %v", err)
	}
	if got, want := f.cards.positions("l2"), []string{"a@0"}; !reflect.DeepEqual(got, want) {
		t.Errorf("target list = %v, want %v", got, want)
	}
}

func TestMoveCardCrossBoardRequiresTargetMembership(t *testing.T) {
	f := newCardFixture()
	f.seed(&domain.Card{ID: "a", ListID: "l1", Position: 0})

	// u1 is a member of b1 but not of b2, which owns l3.
	err := f.svc.MoveCard(context.Background(), "u1", ports.MoveCardInput{CardID: "a", TargetList: "l3", Position: 0})
	if !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
	if f.cards.byID["a"].ListID != "l1" {
		t.Error("card moved despite the denied gate")
	}
}

func TestMoveCardUnknownTargetList(t *testing.T) {
	f := newCardFixture()
	f.seed(&domain.Card{ID: "a", ListID: "l1", Position: 0})

	err := f.svc.MoveCard(context.Background(), "u1", ports.MoveCardInput{CardID: "a", TargetList: "missing", Position: 0})
	if !errors.Is(err, domain.ErrListNotFound) {
		t.Fatalf("expected ErrListNotFound, got %v", err)
	}
}

func TestPlanMoveBatchShape(t *testing.T) {
	card := &domain.Card{ID: "a", ListID: "l1", Position: 0}
	target := []*domain.Card{{ID: "d", ListID: "l2", Position: 0}}
	source := []*domain.Card{card, {ID: "b", ListID: "l1", Position: 1}}

	updates := planMove(card, target, source, "l2", 0)
	if len(updates) != 3 {
		t.Fatalf("got %d updates, want 3", len(updates))
	}
	// The moved card's own update is always last in the batch.
	last := updates[len(updates)-1]
	if last.CardID != "a" || last.ListID != "l2" || last.Position != 0 {
		t.Errorf("final update = %+v, want the moved card at l2/0", last)
	}
}
