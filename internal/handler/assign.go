package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/room-assignment/internal/queue"
	"github.com/iliyamo/room-assignment/internal/service"
)

// ReconcileAssignment handles POST /v1/assign, the endpoint behind every
// drag-and-drop move. The body names the user, optionally the target
// room and optionally the assignment row being dragged:
//
//	{"user_id": 3, "room_id": 2}                        place from the palette
//	{"user_id": 3, "room_id": 2, "assignment_id": 7}    move between rooms
//	{"user_id": 3, "assignment_id": 7}                  drop into "unassigned"
//
// The response is the refreshed board. A move that changed a row is also
// announced on the message queue; publish failures do not fail the request.
func (h *API) ReconcileAssignment(c echo.Context) error {
	var body struct {
		UserID       *uint64 `json:"user_id"`
		RoomID       *uint64 `json:"room_id"`
		AssignmentID *uint64 `json:"assignment_id"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if body.UserID == nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "user_id is required"})
	}

	res, err := h.Assignments.Reconcile(c.Request().Context(), *body.UserID, body.RoomID, body.AssignmentID)
	if err != nil {
		return writeError(c, err)
	}

	if res.Action != service.MoveNoop {
		_ = queue.PublishAssignmentChanged(c.Request().Context(), moveEvent(res))
	}
	return c.JSON(http.StatusOK, res.Board)
}

// ListAssignments handles GET /v1/assignments and returns the raw
// relation rows in id order.
func (h *API) ListAssignments(c echo.Context) error {
	items, err := h.Assignments.List(c.Request().Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"items": items})
}

// moveEvent builds the queue payload for a committed move, resolving
// user and room names from the board that came back with the result.
func moveEvent(res *service.MoveResult) queue.AssignmentChangedEvent {
	ev := queue.AssignmentChangedEvent{
		Action:       string(res.Action),
		AssignmentID: res.AssignmentID,
		UserID:       res.UserID,
		RoomID:       res.RoomID,
		OccurredAt:   time.Now().UTC().Format(time.RFC3339),
	}
	for _, card := range res.Board.Palette {
		if card.ID == res.UserID {
			ev.UserName = card.Name
			break
		}
	}
	if res.RoomID != nil {
		for _, room := range res.Board.Rooms {
			if room.ID == *res.RoomID {
				name := room.Name
				ev.RoomName = &name
				break
			}
		}
	}
	return ev
}
