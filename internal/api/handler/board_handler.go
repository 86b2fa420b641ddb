package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/taskflow/taskflow-api/internal/api/metrics"
	"github.com/taskflow/taskflow-api/internal/core/ports"
)

// BoardHandler handles HTTP requests for board and membership operations.
type BoardHandler struct {
	service ports.BoardService
}

func NewBoardHandler(service ports.BoardService) *BoardHandler {
	return &BoardHandler{service: service}
}

// List handles GET /api/boards: every board the actor is a member of.
//
// @Summary      List the actor's boards
// @Tags         boards
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   boardResponse
// @Failure      401  {object}  errorResponse
// @Router       /api/boards [get]
func (h *BoardHandler) List(c echo.Context) error {
	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}

	details, err := h.service.ListBoards(c.Request().Context(), userID)
	if err != nil {
		return err
	}

	out := make([]boardResponse, len(details))
	for i, d := range details {
		out[i] = toBoardResponse(d)
	}
	return c.JSON(http.StatusOK, out)
}

// Create handles POST /api/boards. The creator becomes the first member.
//
// @Summary      Create a board
// @Tags         boards
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createBoardRequest  true  "Board details"
// @Success      201   {object}  boardResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Router       /api/boards [post]
func (h *BoardHandler) Create(c echo.Context) error {
	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}

	var req createBoardRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	detail, err := h.service.CreateBoard(c.Request().Context(), userID, req.Title)
	if err != nil {
		return err
	}

	metrics.BoardsCreatedTotal.Inc()
	return c.JSON(http.StatusCreated, toBoardResponse(detail))
}

// Get handles GET /api/boards/:id.
//
// @Summary      Get a board with its lists and cards
// @Tags         boards
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Board id"
// @Success      200  {object}  boardResponse
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /api/boards/{id} [get]
func (h *BoardHandler) Get(c echo.Context) error {
	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}

	detail, err := h.service.GetBoard(c.Request().Context(), userID, c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toBoardResponse(detail))
}

// Update handles PUT /api/boards/:id.
func (h *BoardHandler) Update(c echo.Context) error {
	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}

	var req updateBoardRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	detail, err := h.service.UpdateBoard(c.Request().Context(), userID, c.Param("id"), req.Title)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toBoardResponse(detail))
}

// Delete handles DELETE /api/boards/:id, cascading to lists and cards.
func (h *BoardHandler) Delete(c echo.Context) error {
	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}

	if err := h.service.DeleteBoard(c.Request().Context(), userID, c.Param("id")); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messageResponse{Message: "board deleted"})
}

// Invite handles POST /api/boards/:id/invite: membership by email or username.
//
// @Summary      Invite a user to a board
// @Tags         boards
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string         true  "Board id"
// @Param        body  body      inviteRequest  true  "Email or username"
// @Success      200   {object}  messageResponse
// @Failure      404   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Router       /api/boards/{id}/invite [post]
func (h *BoardHandler) Invite(c echo.Context) error {
	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}

	var req inviteRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	user, err := h.service.Invite(c.Request().Context(), userID, c.Param("id"), req.EmailOrUsername)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messageResponse{Message: "user " + user.Username + " invited to board"})
}

// AddMember handles POST /api/boards/:id/members: membership by email.
func (h *BoardHandler) AddMember(c echo.Context) error {
	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}

	var req addMemberRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	user, err := h.service.AddMember(c.Request().Context(), userID, c.Param("id"), req.Email)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messageResponse{Message: "user " + user.Username + " added to board"})
}

// RemoveMember handles DELETE /api/boards/:id/members/:user_id.
func (h *BoardHandler) RemoveMember(c echo.Context) error {
	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}

	if err := h.service.RemoveMember(c.Request().Context(), userID, c.Param("id"), c.Param("user_id")); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messageResponse{Message: "user removed from board"})
}

// Activity handles GET /api/boards/:id/activity, the board's recent
// activity feed, newest first. Accepts an optional ?limit= query.
func (h *BoardHandler) Activity(c echo.Context) error {
	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}

	limit := 0
	if raw := c.QueryParam("limit"); raw != "" {
		limit, err = strconv.Atoi(raw)
		if err != nil || limit < 0 {
			return echo.NewHTTPError(http.StatusBadRequest, "limit must be a non-negative integer")
		}
	}

	boardID := c.Param("id")
	entries, err := h.service.Activity(c.Request().Context(), userID, boardID, limit)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toActivityResponse(boardID, entries))
}
