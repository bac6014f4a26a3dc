package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// GetBoard handles GET /v1/board and returns the full board projection:
// palette, unassigned users and rooms with their occupants.
func (h *API) GetBoard(c echo.Context) error {
	board, err := h.Board.Board(c.Request().Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, board)
}
