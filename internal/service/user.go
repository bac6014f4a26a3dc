package service

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/iliyamo/room-assignment/internal/model"
	"github.com/iliyamo/room-assignment/internal/repository"
)

// UserService implements user CRUD. Deleting a user also removes every
// assignment that references it, in the same transaction.
type UserService struct {
	db          *sql.DB
	users       *repository.UserRepo
	assignments *repository.AssignmentRepo
}

// NewUserService constructs a UserService. All dependencies must be non-nil.
func NewUserService(db *sql.DB, users *repository.UserRepo, assignments *repository.AssignmentRepo) *UserService {
	if db == nil || users == nil || assignments == nil {
		panic("nil dependency passed to NewUserService")
	}
	return &UserService{db: db, users: users, assignments: assignments}
}

// Create validates and stores a new user. Name and email are required;
// an email already present on another user is rejected with
// repository.ErrEmailExists. The duplicate check is case-sensitive and
// happens only here, at creation time.
func (s *UserService) Create(ctx context.Context, name, email string) (*model.User, error) {
	name = strings.TrimSpace(name)
	email = strings.TrimSpace(email)
	if name == "" {
		return nil, &ValidationError{Field: "name", Reason: "required"}
	}
	if email == "" {
		return nil, &ValidationError{Field: "email", Reason: "required"}
	}
	_, err := s.users.GetByEmail(ctx, email)
	switch {
	case err == nil:
		return nil, repository.ErrEmailExists
	case !errors.Is(err, repository.ErrUserNotFound):
		return nil, err
	}
	u := &model.User{Name: name, Email: email}
	if err := s.users.Create(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

// Get returns a single user by id.
func (s *UserService) Get(ctx context.Context, id uint64) (*model.User, error) {
	return s.users.GetByID(ctx, id)
}

// List returns all users in ascending id order.
func (s *UserService) List(ctx context.Context) ([]model.User, error) {
	return s.users.List(ctx)
}

// Update applies a partial update: blank name or email leaves the stored
// value unchanged. Returns the user as stored afterwards.
func (s *UserService) Update(ctx context.Context, id uint64, name, email string) (*model.User, error) {
	u, err := s.users.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if v := strings.TrimSpace(name); v != "" {
		u.Name = v
	}
	if v := strings.TrimSpace(email); v != "" {
		u.Email = v
	}
	if err := s.users.Update(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

// Delete removes the user and all assignments referencing it as one
// unit of work; an orphaned assignment row is never left behind.
func (s *UserService) Delete(ctx context.Context, id uint64) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	if _, err := s.assignments.DeleteByUserTx(ctx, tx, id); err != nil {
		return err
	}
	if err := s.users.DeleteTx(ctx, tx, id); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return err
	}
	committed = true
	return nil
}
