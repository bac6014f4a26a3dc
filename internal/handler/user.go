package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
)

// CreateUser handles POST /v1/users. Name and email are required; a
// duplicate email yields 409. The response carries the created user and
// the refreshed board so the client can rerender without a second call.
func (h *API) CreateUser(c echo.Context) error {
	var body struct {
		Name  string `json:"name"`
		Email string `json:"email"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	u, err := h.Users.Create(c.Request().Context(), body.Name, body.Email)
	if err != nil {
		return writeError(c, err)
	}
	board, err := h.Board.Board(c.Request().Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, echo.Map{"user": u, "board": board})
}

// ListUsers handles GET /v1/users and returns all users in id order.
func (h *API) ListUsers(c echo.Context) error {
	items, err := h.Users.List(c.Request().Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"items": items})
}

// UpdateUser handles PATCH /v1/users/:id. Fields left blank in the body
// keep their stored values.
func (h *API) UpdateUser(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	var body struct {
		Name  string `json:"name"`
		Email string `json:"email"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	u, err := h.Users.Update(c.Request().Context(), id, body.Name, body.Email)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, u)
}

// DeleteUser handles DELETE /v1/users/:id. The user's assignments are
// removed with it; the refreshed board is returned.
func (h *API) DeleteUser(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	if err := h.Users.Delete(c.Request().Context(), id); err != nil {
		return writeError(c, err)
	}
	board, err := h.Board.Board(c.Request().Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"board": board})
}
