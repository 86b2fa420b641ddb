package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"github.com/taskflow/taskflow-api/internal/core/domain"
	"github.com/taskflow/taskflow-api/internal/core/ports"
)

type stubBoardService struct {
	detail    *ports.BoardDetail
	err       error
	lastLimit int
}

func (s *stubBoardService) ListBoards(context.Context, string) ([]*ports.BoardDetail, error) {
	if s.err != nil {
		return nil, s.err
	}
	return []*ports.BoardDetail{s.detail}, nil
}

func (s *stubBoardService) CreateBoard(context.Context, string, string) (*ports.BoardDetail, error) {
	return s.detail, s.err
}

func (s *stubBoardService) GetBoard(context.Context, string, string) (*ports.BoardDetail, error) {
	return s.detail, s.err
}

func (s *stubBoardService) UpdateBoard(context.Context, string, string, string) (*ports.BoardDetail, error) {
	return s.detail, s.err
}

func (s *stubBoardService) DeleteBoard(context.Context, string, string) error {
	return s.err
}

func (s *stubBoardService) Invite(context.Context, string, string, string) (*domain.User, error) {
	if s.err != nil {
		return nil, s.err
	}
	return &domain.User{ID: "u-bob", Username: "bob"}, nil
}

func (s *stubBoardService) AddMember(context.Context, string, string, string) (*domain.User, error) {
	if s.err != nil {
		return nil, s.err
	}
	return &domain.User{ID: "u-bob", Username: "bob"}, nil
}

func (s *stubBoardService) RemoveMember(context.Context, string, string, string) error {
	return s.err
}

func (s *stubBoardService) Activity(_ context.Context, _, _ string, limit int) ([]domain.Activity, error) {
	s.lastLimit = limit
	return nil, s.err
}

func testDetail() *ports.BoardDetail {
	return &ports.BoardDetail{
		Board:   &domain.Board{ID: "b1", Title: "Roadmap", MemberIDs: []string{"u1"}},
		Members: []ports.MemberView{{ID: "u1", Username: "alice", Email: "alice@example.com"}},
		Lists: []ports.ListWithCards{{
			List:  &domain.List{ID: "l1", BoardID: "b1", Title: "Todo", Position: 0},
			Cards: []*domain.Card{{ID: "c1", ListID: "l1", Title: "ship it", Position: 0}},
		}},
	}
}

func TestCreateBoardCreated(t *testing.T) {
	h := NewBoardHandler(&stubBoardService{detail: testDetail()})
	c, rec := newTestContext(http.MethodPost, "/api/boards", `{"title":"Roadmap"}`, "u1")

	if err := h.Create(c); err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusCreated)
	}

	var resp struct {
		ID    string `json:"id"`
		Lists []struct {
			Cards []struct {
				Title string `json:"title"`
			} `json:"cards"`
		} `json:"lists"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if resp.ID != "b1" {
		t.Errorf("id = %q, want %q", resp.ID, "b1")
	}
	if len(resp.Lists) != 1 || len(resp.Lists[0].Cards) != 1 {
		t.Errorf("nested lists/cards missing from response: %s", rec.Body.String())
	}
}

func TestCreateBoardMissingTitle(t *testing.T) {
	h := NewBoardHandler(&stubBoardService{detail: testDetail()})
	c, _ := newTestContext(http.MethodPost, "/api/boards", `{}`, "u1")

	assertStatusError(t, h.Create(c), http.StatusBadRequest)
}

func TestCreateBoardUnauthenticated(t *testing.T) {
	h := NewBoardHandler(&stubBoardService{detail: testDetail()})
	c, _ := newTestContext(http.MethodPost, "/api/boards", `{"title":"Roadmap"}`, "")

	assertStatusError(t, h.Create(c), http.StatusUnauthorized)
}

func TestGetBoardForbiddenPassedThrough(t *testing.T) {
	h := NewBoardHandler(&stubBoardService{err: domain.ErrForbidden})
	c, _ := newTestContext(http.MethodGet, "/api/boards/b1", "", "u2")
	c.SetParamNames("id")
	c.SetParamValues("b1")

	if err := h.Get(c); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
}

func TestInviteMissingIdentifier(t *testing.T) {
	h := NewBoardHandler(&stubBoardService{})
	c, _ := newTestContext(http.MethodPost, "/api/boards/b1/invite", `{}`, "u1")
	c.SetParamNames("id")
	c.SetParamValues("b1")

	assertStatusError(t, h.Invite(c), http.StatusBadRequest)
}

func TestAddMemberRejectsNonEmail(t *testing.T) {
	h := NewBoardHandler(&stubBoardService{})
	c, _ := newTestContext(http.MethodPost, "/api/boards/b1/members", `{"email":"bob"}`, "u1")
	c.SetParamNames("id")
	c.SetParamValues("b1")

	assertStatusError(t, h.AddMember(c), http.StatusBadRequest)
}

func TestActivityParsesLimit(t *testing.T) {
	svc := &stubBoardService{}
	h := NewBoardHandler(svc)
	c, rec := newTestContext(http.MethodGet, "/api/boards/b1/activity?limit=10", "", "u1")
	c.SetParamNames("id")
	c.SetParamValues("b1")

	if err := h.Activity(c); err != nil {
		t.Fatalf("Activity returned error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusOK)
	}
	if svc.lastLimit != 10 {
		t.Errorf("limit passed to service = %d, want 10", svc.lastLimit)
	}
}

func TestActivityRejectsBadLimit(t *testing.T) {
	h := NewBoardHandler(&stubBoardService{})
	c, _ := newTestContext(http.MethodGet, "/api/boards/b1/activity?limit=-1", "", "u1")
	c.SetParamNames("id")
	c.SetParamValues("b1")

	assertStatusError(t, h.Activity(c), http.StatusBadRequest)
}
