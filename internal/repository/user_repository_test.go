package repository

import (
	"context"
	"errors"
	"testing"

	"github.com/iliyamo/room-assignment/internal/model"
	"github.com/iliyamo/room-assignment/internal/testutil"
)

func TestUserRepo_CRUDAndQueries(t *testing.T) {
	db := testutil.OpenTestDB(t, "userrepo")
	repo := NewUserRepo(db)
	ctx := context.Background()

	// Create
	u := &model.User{Name: "Ana", Email: "ana@x.com"}
	if err := repo.Create(ctx, u); err != nil {
		t.Fatalf("create: %v", err)
	}
	if u.ID == 0 || u.CreatedAt.IsZero() {
		t.Fatalf("unexpected created user: %+v", u)
	}

	// GetByID
	g, err := repo.GetByID(ctx, u.ID)
	if err != nil || g.Name != "Ana" || g.Email != "ana@x.com" {
		t.Fatalf("get by id: %v %+v", err, g)
	}

	// GetByEmail
	g2, err := repo.GetByEmail(ctx, "ana@x.com")
	if err != nil || g2.ID != u.ID {
		t.Fatalf("get by email: %v %+v", err, g2)
	}
	if _, err := repo.GetByEmail(ctx, "nobody@x.com"); !errors.Is(err, ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}

	// List preserves ascending id order
	if err := repo.Create(ctx, &model.User{Name: "Bo", Email: "bo@x.com"}); err != nil {
		t.Fatalf("create second: %v", err)
	}
	list, err := repo.List(ctx)
	if err != nil || len(list) != 2 || list[0].ID >= list[1].ID {
		t.Fatalf("list: %v %+v", err, list)
	}

	// Update
	u.Name = "Ana Maria"
	if err := repo.Update(ctx, u); err != nil {
		t.Fatalf("update: %v", err)
	}
	g3, _ := repo.GetByID(ctx, u.ID)
	if g3.Name != "Ana Maria" {
		t.Fatalf("name not updated: %+v", g3)
	}

	// Delete
	tx, err := db.Begin()
	if err != nil {
		t.Fatalf("begin: %v", err)
	}
	if err := repo.DeleteTx(ctx, tx, u.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if err := tx.Commit(); err != nil {
		t.Fatalf("commit: %v", err)
	}
	if _, err := repo.GetByID(ctx, u.ID); !errors.Is(err, ErrUserNotFound) {
		t.Fatalf("expected user deleted, got %v", err)
	}
}

func TestUserRepo_DeleteMissing(t *testing.T) {
	db := testutil.OpenTestDB(t, "userrepo_missing")
	repo := NewUserRepo(db)
	ctx := context.Background()

	tx, err := db.Begin()
	if err != nil {
		t.Fatalf("begin: %v", err)
	}
	defer func() { _ = tx.Rollback() }()
	if err := repo.DeleteTx(ctx, tx, 42); !errors.Is(err, ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}
