package service

import (
	"context"
	"testing"

	"github.com/iliyamo/room-assignment/internal/model"
	"github.com/iliyamo/room-assignment/internal/repository"
	"github.com/iliyamo/room-assignment/internal/testutil"
)

// fixture bundles the full service stack over one in-memory database.
type fixture struct {
	Users       *UserService
	Rooms       *RoomService
	Assignments *AssignmentService
	Board       *BoardService
}

func newFixture(t *testing.T, name string) *fixture {
	t.Helper()
	db := testutil.OpenTestDB(t, name)
	users := repository.NewUserRepo(db)
	rooms := repository.NewRoomRepo(db)
	assignments := repository.NewAssignmentRepo(db)
	board := NewBoardService(db, users, rooms, assignments)
	return &fixture{
		Users:       NewUserService(db, users, assignments),
		Rooms:       NewRoomService(db, rooms, assignments),
		Assignments: NewAssignmentService(db, users, rooms, assignments, board),
		Board:       board,
	}
}

func (f *fixture) user(t *testing.T, name, email string) *model.User {
	t.Helper()
	u, err := f.Users.Create(context.Background(), name, email)
	if err != nil {
		t.Fatalf("create user %s: %v", name, err)
	}
	return u
}

func (f *fixture) room(t *testing.T, name string) *model.Room {
	t.Helper()
	m, err := f.Rooms.Create(context.Background(), name)
	if err != nil {
		t.Fatalf("create room %s: %v", name, err)
	}
	return m
}

func (f *fixture) place(t *testing.T, userID, roomID uint64) *MoveResult {
	t.Helper()
	res, err := f.Assignments.Reconcile(context.Background(), userID, &roomID, nil)
	if err != nil {
		t.Fatalf("place user %d in room %d: %v", userID, roomID, err)
	}
	return res
}
