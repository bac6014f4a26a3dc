package handler // handler defines http handlers

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/room-assignment/internal/repository"
	"github.com/iliyamo/room-assignment/internal/service"
)

// API bundles the services the HTTP layer exposes. Handlers stay thin:
// they bind and validate input shape, delegate to a service, and map
// errors onto status codes.
type API struct {
	Users       *service.UserService
	Rooms       *service.RoomService
	Assignments *service.AssignmentService
	Board       *service.BoardService
}

// NewAPI constructs the API handler set and panics if any dependency is nil.
func NewAPI(users *service.UserService, rooms *service.RoomService, assignments *service.AssignmentService, board *service.BoardService) *API {
	if users == nil || rooms == nil || assignments == nil || board == nil {
		panic("nil service passed to NewAPI")
	}
	return &API{Users: users, Rooms: rooms, Assignments: assignments, Board: board}
}

// writeError maps service and repository errors onto HTTP responses.
// Unrecognized errors become opaque 500s; the details stay on the server.
func writeError(c echo.Context, err error) error {
	var ve *service.ValidationError
	switch {
	case errors.As(err, &ve):
		return c.JSON(http.StatusBadRequest, echo.Map{"error": ve.Error()})
	case errors.Is(err, repository.ErrUserNotFound):
		return c.JSON(http.StatusNotFound, echo.Map{"error": "user not found"})
	case errors.Is(err, repository.ErrRoomNotFound):
		return c.JSON(http.StatusNotFound, echo.Map{"error": "room not found"})
	case errors.Is(err, repository.ErrAssignmentNotFound):
		return c.JSON(http.StatusNotFound, echo.Map{"error": "assignment not found"})
	case errors.Is(err, repository.ErrEmailExists):
		return c.JSON(http.StatusConflict, echo.Map{"error": "email already registered"})
	default:
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
}
