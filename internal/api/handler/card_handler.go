package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/taskflow/taskflow-api/internal/api/metrics"
	"github.com/taskflow/taskflow-api/internal/core/ports"
)

// CardHandler handles HTTP requests for card operations, including moves.
type CardHandler struct {
	service ports.CardService
}

func NewCardHandler(service ports.CardService) *CardHandler {
	return &CardHandler{service: service}
}

// Create handles POST /api/cards/list/:list_id/cards.
//
// @Summary      Create a card on a list
// @Tags         cards
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        list_id  path      string             true  "List id"
// @Param        body     body      createCardRequest  true  "Card details"
// @Success      201      {object}  cardResponse
// @Failure      400      {object}  errorResponse
// @Failure      403      {object}  errorResponse
// @Failure      404      {object}  errorResponse
// @Router       /api/cards/list/{list_id}/cards [post]
func (h *CardHandler) Create(c echo.Context) error {
	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}

	var req createCardRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	position := 0
	if req.Position != nil {
		position = *req.Position
	}

	card, err := h.service.CreateCard(c.Request().Context(), userID, ports.CreateCardInput{
		ListID:      c.Param("list_id"),
		Title:       req.Title,
		Description: req.Description,
		Position:    position,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, toCardResponse(card))
}

// Get handles GET /api/cards/:id.
func (h *CardHandler) Get(c echo.Context) error {
	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}

	card, err := h.service.GetCard(c.Request().Context(), userID, c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toCardResponse(card))
}

// Update handles PUT /api/cards/:id. Position writes here are raw: no
// sibling re-sequencing happens.
func (h *CardHandler) Update(c echo.Context) error {
	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}

	var req updateCardRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	card, err := h.service.UpdateCard(c.Request().Context(), userID, c.Param("id"), ports.UpdateCardInput{
		Title:       req.Title,
		Description: req.Description,
		Position:    req.Position,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toCardResponse(card))
}

// Delete handles DELETE /api/cards/:id.
func (h *CardHandler) Delete(c echo.Context) error {
	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}

	if err := h.service.DeleteCard(c.Request().Context(), userID, c.Param("id")); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messageResponse{Message: "card deleted"})
}

// Move handles PATCH /api/cards/:id/move. It moves the card within or
// across lists, shifting neighbors so both sequences stay consistent.
//
// @Summary      Move a card
// @Tags         cards
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string           true  "Card id"
// @Param        body  body      moveCardRequest  true  "Target list and position"
// @Success      200   {object}  messageResponse
// @Failure      400   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /api/cards/{id}/move [patch]
func (h *CardHandler) Move(c echo.Context) error {
	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}

	var req moveCardRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	err = h.service.MoveCard(c.Request().Context(), userID, ports.MoveCardInput{
		CardID:     c.Param("id"),
		TargetList: req.ListID,
		Position:   *req.Position,
	})
	if err != nil {
		return err
	}

	metrics.CardsMovedTotal.Inc()
	return c.JSON(http.StatusOK, messageResponse{Message: "card moved successfully"})
}
