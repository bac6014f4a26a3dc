package repository

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/iliyamo/room-assignment/internal/model"
	"github.com/iliyamo/room-assignment/internal/testutil"
)

// seedPair inserts one user and one room and returns their ids.
func seedPair(t *testing.T, db *sql.DB) (userID, roomID uint64) {
	t.Helper()
	ctx := context.Background()
	u := &model.User{Name: "Ana", Email: "ana@x.com"}
	if err := NewUserRepo(db).Create(ctx, u); err != nil {
		t.Fatalf("seed user: %v", err)
	}
	r := &model.Room{Name: "Lab"}
	if err := NewRoomRepo(db).Create(ctx, r); err != nil {
		t.Fatalf("seed room: %v", err)
	}
	return u.ID, r.ID
}

func inTx(t *testing.T, db *sql.DB, fn func(tx *sql.Tx) error) {
	t.Helper()
	tx, err := db.Begin()
	if err != nil {
		t.Fatalf("begin: %v", err)
	}
	if err := fn(tx); err != nil {
		_ = tx.Rollback()
		t.Fatalf("tx func: %v", err)
	}
	if err := tx.Commit(); err != nil {
		t.Fatalf("commit: %v", err)
	}
}

func TestAssignmentRepo_CreateAndLookups(t *testing.T) {
	db := testutil.OpenTestDB(t, "assignrepo")
	repo := NewAssignmentRepo(db)
	ctx := context.Background()
	userID, roomID := seedPair(t, db)

	a := &model.Assignment{UserID: userID, RoomID: roomID}
	inTx(t, db, func(tx *sql.Tx) error { return repo.CreateTx(ctx, tx, a) })
	if a.ID == 0 {
		t.Fatalf("id not populated: %+v", a)
	}

	inTx(t, db, func(tx *sql.Tx) error {
		got, err := repo.GetByIDTx(ctx, tx, a.ID)
		if err != nil || got.UserID != userID || got.RoomID != roomID {
			t.Fatalf("get by id: %v %+v", err, got)
		}
		if _, err := repo.GetByIDTx(ctx, tx, a.ID+99); !errors.Is(err, ErrAssignmentNotFound) {
			t.Fatalf("expected ErrAssignmentNotFound, got %v", err)
		}
		pair, err := repo.GetByUserAndRoomTx(ctx, tx, userID, roomID)
		if err != nil || pair.ID != a.ID {
			t.Fatalf("get by pair: %v %+v", err, pair)
		}
		return nil
	})

	list, err := repo.List(ctx)
	if err != nil || len(list) != 1 || list[0].ID != a.ID {
		t.Fatalf("list: %v %+v", err, list)
	}
}

func TestAssignmentRepo_RetargetKeepsID(t *testing.T) {
	db := testutil.OpenTestDB(t, "assignrepo_retarget")
	repo := NewAssignmentRepo(db)
	ctx := context.Background()
	userID, roomID := seedPair(t, db)

	other := &model.Room{Name: "Studio"}
	if err := NewRoomRepo(db).Create(ctx, other); err != nil {
		t.Fatalf("seed second room: %v", err)
	}

	a := &model.Assignment{UserID: userID, RoomID: roomID}
	inTx(t, db, func(tx *sql.Tx) error { return repo.CreateTx(ctx, tx, a) })

	inTx(t, db, func(tx *sql.Tx) error {
		return repo.UpdateRoomTx(ctx, tx, a.ID, other.ID)
	})

	list, err := repo.List(ctx)
	if err != nil || len(list) != 1 {
		t.Fatalf("list: %v %+v", err, list)
	}
	if list[0].ID != a.ID || list[0].RoomID != other.ID {
		t.Fatalf("expected row %d retargeted to room %d, got %+v", a.ID, other.ID, list[0])
	}
}

func TestAssignmentRepo_BulkDeletes(t *testing.T) {
	db := testutil.OpenTestDB(t, "assignrepo_bulk")
	repo := NewAssignmentRepo(db)
	ctx := context.Background()
	userID, roomID := seedPair(t, db)

	other := &model.User{Name: "Bo", Email: "bo@x.com"}
	if err := NewUserRepo(db).Create(ctx, other); err != nil {
		t.Fatalf("seed second user: %v", err)
	}

	inTx(t, db, func(tx *sql.Tx) error {
		if err := repo.CreateTx(ctx, tx, &model.Assignment{UserID: userID, RoomID: roomID}); err != nil {
			return err
		}
		return repo.CreateTx(ctx, tx, &model.Assignment{UserID: other.ID, RoomID: roomID})
	})

	// Deleting by room removes both rows; deleting by an untouched user
	// afterwards removes nothing.
	inTx(t, db, func(tx *sql.Tx) error {
		n, err := repo.DeleteByRoomTx(ctx, tx, roomID)
		if err != nil {
			return err
		}
		if n != 2 {
			t.Fatalf("expected 2 rows deleted by room, got %d", n)
		}
		m, err := repo.DeleteByUserTx(ctx, tx, userID)
		if err != nil {
			return err
		}
		if m != 0 {
			t.Fatalf("expected 0 rows deleted by user, got %d", m)
		}
		return nil
	})

	list, err := repo.List(ctx)
	if err != nil || len(list) != 0 {
		t.Fatalf("expected empty table, got %v %+v", err, list)
	}
}
