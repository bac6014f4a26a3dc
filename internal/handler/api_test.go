package handler

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/room-assignment/internal/repository"
	"github.com/iliyamo/room-assignment/internal/service"
	"github.com/iliyamo/room-assignment/internal/testutil"
)

func newTestAPI(t *testing.T, name string) *API {
	t.Helper()
	db := testutil.OpenTestDB(t, name)
	users := repository.NewUserRepo(db)
	rooms := repository.NewRoomRepo(db)
	assignments := repository.NewAssignmentRepo(db)
	board := service.NewBoardService(db, users, rooms, assignments)
	return NewAPI(
		service.NewUserService(db, users, assignments),
		service.NewRoomService(db, rooms, assignments),
		service.NewAssignmentService(db, users, rooms, assignments, board),
		board,
	)
}

func doJSON(t *testing.T, h echo.HandlerFunc, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if err := h(c); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	return rec
}

func TestCreateUserHandler(t *testing.T) {
	api := newTestAPI(t, "handler_create_user")

	rec := doJSON(t, api.CreateUser, http.MethodPost, "/v1/users", `{"name":"Ana","email":"ana@x.com"}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("status: %d body: %s", rec.Code, rec.Body.String())
	}
	var created struct {
		User struct {
			ID    uint64 `json:"id"`
			Email string `json:"email"`
		} `json:"user"`
		Board service.Board `json:"board"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &created); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if created.User.ID == 0 || created.User.Email != "ana@x.com" || len(created.Board.Palette) != 1 {
		t.Fatalf("payload: %+v", created)
	}

	// Missing fields are rejected before any write.
	rec = doJSON(t, api.CreateUser, http.MethodPost, "/v1/users", `{"name":"","email":"x@y.com"}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("empty name status: %d", rec.Code)
	}

	// Duplicate email yields a conflict.
	rec = doJSON(t, api.CreateUser, http.MethodPost, "/v1/users", `{"name":"Other","email":"ana@x.com"}`)
	if rec.Code != http.StatusConflict {
		t.Fatalf("duplicate email status: %d", rec.Code)
	}
}

func TestReconcileAssignmentHandler(t *testing.T) {
	api := newTestAPI(t, "handler_assign")
	ctx := context.Background()

	u, err := api.Users.Create(ctx, "Ana", "ana@x.com")
	if err != nil {
		t.Fatalf("seed user: %v", err)
	}
	r, err := api.Rooms.Create(ctx, "Lab")
	if err != nil {
		t.Fatalf("seed room: %v", err)
	}

	body := fmt.Sprintf(`{"user_id":%d,"room_id":%d}`, u.ID, r.ID)
	rec := doJSON(t, api.ReconcileAssignment, http.MethodPost, "/v1/assign", body)
	if rec.Code != http.StatusOK {
		t.Fatalf("status: %d body: %s", rec.Code, rec.Body.String())
	}
	var board service.Board
	if err := json.Unmarshal(rec.Body.Bytes(), &board); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(board.Rooms) != 1 || len(board.Rooms[0].Users) != 1 || board.Rooms[0].Users[0].UserID != u.ID {
		t.Fatalf("board: %+v", board)
	}

	// user_id is mandatory.
	rec = doJSON(t, api.ReconcileAssignment, http.MethodPost, "/v1/assign", fmt.Sprintf(`{"room_id":%d}`, r.ID))
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("missing user_id status: %d", rec.Code)
	}

	// Unknown user maps to 404.
	rec = doJSON(t, api.ReconcileAssignment, http.MethodPost, "/v1/assign", fmt.Sprintf(`{"user_id":999,"room_id":%d}`, r.ID))
	if rec.Code != http.StatusNotFound {
		t.Fatalf("unknown user status: %d", rec.Code)
	}
}

func TestGetBoardHandler(t *testing.T) {
	api := newTestAPI(t, "handler_board")
	ctx := context.Background()
	if _, err := api.Users.Create(ctx, "Ana", "ana@x.com"); err != nil {
		t.Fatalf("seed user: %v", err)
	}

	rec := doJSON(t, api.GetBoard, http.MethodGet, "/v1/board", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status: %d", rec.Code)
	}
	var board service.Board
	if err := json.Unmarshal(rec.Body.Bytes(), &board); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(board.Palette) != 1 || len(board.Unassigned) != 1 || len(board.Rooms) != 0 {
		t.Fatalf("board: %+v", board)
	}
}

func TestDeleteRoomHandlerReturnsBoard(t *testing.T) {
	api := newTestAPI(t, "handler_delete_room")
	ctx := context.Background()
	u, _ := api.Users.Create(ctx, "Ana", "ana@x.com")
	r, _ := api.Rooms.Create(ctx, "Lab")
	if _, err := api.Assignments.Reconcile(ctx, u.ID, &r.ID, nil); err != nil {
		t.Fatalf("seed assignment: %v", err)
	}

	e := echo.New()
	req := httptest.NewRequest(http.MethodDelete, "/v1/rooms/"+fmt.Sprint(r.ID), nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues(fmt.Sprint(r.ID))
	if err := api.DeleteRoom(c); err != nil {
		t.Fatalf("handler: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("status: %d body: %s", rec.Code, rec.Body.String())
	}
	var resp struct {
		Board service.Board `json:"board"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(resp.Board.Rooms) != 0 || len(resp.Board.Unassigned) != 1 {
		t.Fatalf("board after room delete: %+v", resp.Board)
	}
}
