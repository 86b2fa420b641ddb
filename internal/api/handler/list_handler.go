package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/taskflow/taskflow-api/internal/core/ports"
)

// ListHandler handles HTTP requests for list operations.
type ListHandler struct {
	service ports.ListService
}

func NewListHandler(service ports.ListService) *ListHandler {
	return &ListHandler{service: service}
}

// Create handles POST /api/lists/board/:board_id/lists.
//
// @Summary      Create a list on a board
// @Tags         lists
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        board_id  path      string             true  "Board id"
// @Param        body      body      createListRequest  true  "List details"
// @Success      201       {object}  listResponse
// @Failure      400       {object}  errorResponse
// @Failure      403       {object}  errorResponse
// @Failure      404       {object}  errorResponse
// @Router       /api/lists/board/{board_id}/lists [post]
func (h *ListHandler) Create(c echo.Context) error {
	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}

	var req createListRequest
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

	list, err := h.service.CreateList(c.Request().Context(), userID, c.Param("board_id"), req.Title, position)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, toListResponse(list, nil))
}

// Get handles GET /api/lists/:id.
func (h *ListHandler) Get(c echo.Context) error {
	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}

	list, err := h.service.GetList(c.Request().Context(), userID, c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toListResponse(list, nil))
}

// Update handles PUT /api/lists/:id. Position writes here are raw: no
// sibling re-sequencing happens.
func (h *ListHandler) Update(c echo.Context) error {
	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}

	var req updateListRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	list, err := h.service.UpdateList(c.Request().Context(), userID, c.Param("id"), ports.UpdateListInput{
		Title:    req.Title,
		Position: req.Position,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toListResponse(list, nil))
}

// Delete handles DELETE /api/lists/:id, cascading to the list's cards.
func (h *ListHandler) Delete(c echo.Context) error {
	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}

	if err := h.service.DeleteList(c.Request().Context(), userID, c.Param("id")); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messageResponse{Message: "list deleted"})
}
