package service

import (
	"context"
	"database/sql"
	"strings"

	"github.com/iliyamo/room-assignment/internal/model"
	"github.com/iliyamo/room-assignment/internal/repository"
)

// RoomService implements room CRUD. Deleting a room also removes every
// assignment that references it, in the same transaction.
type RoomService struct {
	db          *sql.DB
	rooms       *repository.RoomRepo
	assignments *repository.AssignmentRepo
}

// NewRoomService constructs a RoomService. All dependencies must be non-nil.
func NewRoomService(db *sql.DB, rooms *repository.RoomRepo, assignments *repository.AssignmentRepo) *RoomService {
	if db == nil || rooms == nil || assignments == nil {
		panic("nil dependency passed to NewRoomService")
	}
	return &RoomService{db: db, rooms: rooms, assignments: assignments}
}

// Create validates and stores a new room. Only the name is required;
// room names carry no uniqueness rule.
func (s *RoomService) Create(ctx context.Context, name string) (*model.Room, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, &ValidationError{Field: "name", Reason: "required"}
	}
	m := &model.Room{Name: name}
	if err := s.rooms.Create(ctx, m); err != nil {
		return nil, err
	}
	return m, nil
}

// Get returns a single room by id.
func (s *RoomService) Get(ctx context.Context, id uint64) (*model.Room, error) {
	return s.rooms.GetByID(ctx, id)
}

// List returns all rooms in ascending id order.
func (s *RoomService) List(ctx context.Context) ([]model.Room, error) {
	return s.rooms.List(ctx)
}

// Update applies a partial update: a blank name leaves the stored value
// unchanged. Returns the room as stored afterwards.
func (s *RoomService) Update(ctx context.Context, id uint64, name string) (*model.Room, error) {
	m, err := s.rooms.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if v := strings.TrimSpace(name); v != "" {
		m.Name = v
	}
	if err := s.rooms.Update(ctx, m); err != nil {
		return nil, err
	}
	return m, nil
}

// Delete removes the room and all assignments referencing it as one
// unit of work. Users that occupied the room become unassigned.
func (s *RoomService) Delete(ctx context.Context, id uint64) error {
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

	if _, err := s.assignments.DeleteByRoomTx(ctx, tx, id); err != nil {
		return err
	}
	if err := s.rooms.DeleteTx(ctx, tx, id); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return err
	}
	committed = true
	return nil
}
