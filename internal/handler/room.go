package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
)

// CreateRoom handles POST /v1/rooms. Only a non-empty name is required;
// room names are not unique.
func (h *API) CreateRoom(c echo.Context) error {
	var body struct {
		Name string `json:"name"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	m, err := h.Rooms.Create(c.Request().Context(), body.Name)
	if err != nil {
		return writeError(c, err)
	}
	board, err := h.Board.Board(c.Request().Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, echo.Map{"room": m, "board": board})
}

// ListRooms handles GET /v1/rooms and returns all rooms in id order.
func (h *API) ListRooms(c echo.Context) error {
	items, err := h.Rooms.List(c.Request().Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"items": items})
}

// UpdateRoom handles PATCH /v1/rooms/:id. A blank name keeps the stored value.
func (h *API) UpdateRoom(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	var body struct {
		Name string `json:"name"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	m, err := h.Rooms.Update(c.Request().Context(), id, body.Name)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, m)
}

// DeleteRoom handles DELETE /v1/rooms/:id. Assignments into the room are
// removed with it, so its occupants reappear under "unassigned" in the
// returned board.
func (h *API) DeleteRoom(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	if err := h.Rooms.Delete(c.Request().Context(), id); err != nil {
		return writeError(c, err)
	}
	board, err := h.Board.Board(c.Request().Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"board": board})
}
