package service

import (
	"context"
	"errors"
	"testing"

	"github.com/iliyamo/room-assignment/internal/repository"
)

func TestReconcile_CreateAndIdempotence(t *testing.T) {
	f := newFixture(t, "reconcile_create")
	ctx := context.Background()
	u := f.user(t, "Ana", "ana@x.com")
	r := f.room(t, "Lab")

	res := f.place(t, u.ID, r.ID)
	if res.Action != MoveCreated || res.AssignmentID == 0 {
		t.Fatalf("first placement: %+v", res)
	}
	if len(res.Board.Rooms[0].Users) != 1 || res.Board.Rooms[0].Users[0].UserID != u.ID {
		t.Fatalf("board after placement: %+v", res.Board.Rooms)
	}
	if len(res.Board.Unassigned) != 0 {
		t.Fatalf("placed user still unassigned: %+v", res.Board.Unassigned)
	}

	// Dropping the same user on the same room again must not create a
	// second row.
	again := f.place(t, u.ID, r.ID)
	if again.Action != MoveNoop || again.AssignmentID != res.AssignmentID {
		t.Fatalf("duplicate placement: %+v", again)
	}
	rows, err := f.Assignments.List(ctx)
	if err != nil || len(rows) != 1 {
		t.Fatalf("expected exactly one row, got %v %+v", err, rows)
	}
}

func TestReconcile_RetargetKeepsIdentity(t *testing.T) {
	f := newFixture(t, "reconcile_retarget")
	ctx := context.Background()
	u := f.user(t, "Ana", "ana@x.com")
	r1 := f.room(t, "Lab")
	r2 := f.room(t, "Studio")

	placed := f.place(t, u.ID, r1.ID)
	aID := placed.AssignmentID

	res, err := f.Assignments.Reconcile(ctx, u.ID, &r2.ID, &aID)
	if err != nil {
		t.Fatalf("retarget: %v", err)
	}
	if res.Action != MoveRetargeted {
		t.Fatalf("action: %+v", res)
	}
	rows, _ := f.Assignments.List(ctx)
	if len(rows) != 1 || rows[0].ID != aID || rows[0].RoomID != r2.ID {
		t.Fatalf("retarget must keep the row id: %+v", rows)
	}
	if len(res.Board.Rooms[0].Users) != 0 || len(res.Board.Rooms[1].Users) != 1 {
		t.Fatalf("board after retarget: %+v", res.Board.Rooms)
	}

	// Retargeting onto the room it is already in is a no-op.
	noop, err := f.Assignments.Reconcile(ctx, u.ID, &r2.ID, &aID)
	if err != nil || noop.Action != MoveNoop {
		t.Fatalf("same-room retarget: %v %+v", err, noop)
	}
}

func TestReconcile_Removal(t *testing.T) {
	f := newFixture(t, "reconcile_remove")
	ctx := context.Background()
	u := f.user(t, "Ana", "ana@x.com")
	r := f.room(t, "Lab")
	placed := f.place(t, u.ID, r.ID)

	res, err := f.Assignments.Reconcile(ctx, u.ID, nil, &placed.AssignmentID)
	if err != nil {
		t.Fatalf("remove: %v", err)
	}
	if res.Action != MoveRemoved {
		t.Fatalf("action: %+v", res)
	}
	if len(res.Board.Unassigned) != 1 || res.Board.Unassigned[0].ID != u.ID {
		t.Fatalf("user must reappear in unassigned: %+v", res.Board.Unassigned)
	}
	rows, _ := f.Assignments.List(ctx)
	if len(rows) != 0 {
		t.Fatalf("row must be gone: %+v", rows)
	}
}

func TestReconcile_NoopWithoutReferences(t *testing.T) {
	f := newFixture(t, "reconcile_noop")
	u := f.user(t, "Ana", "ana@x.com")

	res, err := f.Assignments.Reconcile(context.Background(), u.ID, nil, nil)
	if err != nil || res.Action != MoveNoop {
		t.Fatalf("unassigned to unassigned: %v %+v", err, res)
	}
}

func TestReconcile_NotFoundErrors(t *testing.T) {
	f := newFixture(t, "reconcile_notfound")
	ctx := context.Background()
	u := f.user(t, "Ana", "ana@x.com")
	r := f.room(t, "Lab")

	if _, err := f.Assignments.Reconcile(ctx, 999, &r.ID, nil); !errors.Is(err, repository.ErrUserNotFound) {
		t.Fatalf("missing user: %v", err)
	}
	missingRoom := uint64(999)
	if _, err := f.Assignments.Reconcile(ctx, u.ID, &missingRoom, nil); !errors.Is(err, repository.ErrRoomNotFound) {
		t.Fatalf("missing room: %v", err)
	}
	missingAssignment := uint64(999)
	if _, err := f.Assignments.Reconcile(ctx, u.ID, &r.ID, &missingAssignment); !errors.Is(err, repository.ErrAssignmentNotFound) {
		t.Fatalf("missing assignment: %v", err)
	}

	// A failed reconcile must not leave partial writes behind.
	rows, err := f.Assignments.List(ctx)
	if err != nil || len(rows) != 0 {
		t.Fatalf("expected no rows, got %v %+v", err, rows)
	}
}

func TestReconcile_ForeignAssignmentRejected(t *testing.T) {
	f := newFixture(t, "reconcile_foreign")
	ctx := context.Background()
	ana := f.user(t, "Ana", "ana@x.com")
	bo := f.user(t, "Bo", "bo@x.com")
	r := f.room(t, "Lab")
	placed := f.place(t, ana.ID, r.ID)

	// Bo's move must not be able to reference Ana's relation row.
	if _, err := f.Assignments.Reconcile(ctx, bo.ID, nil, &placed.AssignmentID); !errors.Is(err, repository.ErrAssignmentNotFound) {
		t.Fatalf("foreign assignment: %v", err)
	}
	rows, _ := f.Assignments.List(ctx)
	if len(rows) != 1 {
		t.Fatalf("Ana's row must survive: %+v", rows)
	}
}
