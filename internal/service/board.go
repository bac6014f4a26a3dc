// Package service implements the core operations of the room assignment
// board: the board projection, the assignment reconciler and CRUD for
// users and rooms. Both the HTTP handlers and the CLI call into this
// package; it never writes to the response or the terminal itself and
// reports failures as typed errors.
package service

import (
	"context"
	"database/sql"

	"github.com/iliyamo/room-assignment/internal/model"
	"github.com/iliyamo/room-assignment/internal/repository"
)

// UserCard is a palette or unassigned entry. RoomID and RoomName are
// nil when the user has no current assignment.
type UserCard struct {
	ID       uint64  `json:"id"`
	Name     string  `json:"name"`
	Email    string  `json:"email"`
	RoomID   *uint64 `json:"room_id"`
	RoomName *string `json:"room_name"`
}

// RoomUser is a user listed inside a room column. It carries the
// assignment id so a client can reference the relation row when the
// card is dragged somewhere else.
type RoomUser struct {
	AssignmentID uint64 `json:"assignment_id"`
	UserID       uint64 `json:"user_id"`
	Name         string `json:"name"`
	Email        string `json:"email"`
}

// RoomColumn is one room with the users currently assigned to it.
type RoomColumn struct {
	ID    uint64     `json:"id"`
	Name  string     `json:"name"`
	Users []RoomUser `json:"users"`
}

// Board is the aggregated read model behind the drag-and-drop view:
// every user (palette), users with no assignment (unassigned) and each
// room with its occupants. All three groups are ordered by ascending id.
type Board struct {
	Palette    []UserCard   `json:"palette"`
	Unassigned []UserCard   `json:"unassigned"`
	Rooms      []RoomColumn `json:"rooms"`
}

// BoardService computes the Board from a consistent snapshot of users,
// rooms and assignments.
type BoardService struct {
	db          *sql.DB
	users       *repository.UserRepo
	rooms       *repository.RoomRepo
	assignments *repository.AssignmentRepo
}

// NewBoardService constructs a BoardService. All dependencies must be non-nil.
func NewBoardService(db *sql.DB, users *repository.UserRepo, rooms *repository.RoomRepo, assignments *repository.AssignmentRepo) *BoardService {
	if db == nil || users == nil || rooms == nil || assignments == nil {
		panic("nil dependency passed to NewBoardService")
	}
	return &BoardService{db: db, users: users, rooms: rooms, assignments: assignments}
}

// Board reads one snapshot of the three tables inside a transaction and
// projects it. Reading inside a transaction matters: a concurrent room
// delete must not be half-visible to the projection.
func (s *BoardService) Board(ctx context.Context) (*Board, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	board, err := s.BoardTx(ctx, tx)
	if err != nil {
		_ = tx.Rollback()
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return board, nil
}

// BoardTx projects the board from the state visible to an open
// transaction. Mutating operations use it to return the post-commit view
// from the same unit of work that performed the writes.
func (s *BoardService) BoardTx(ctx context.Context, tx *sql.Tx) (*Board, error) {
	users, err := s.users.ListTx(ctx, tx)
	if err != nil {
		return nil, err
	}
	rooms, err := s.rooms.ListTx(ctx, tx)
	if err != nil {
		return nil, err
	}
	assignments, err := s.assignments.ListTx(ctx, tx)
	if err != nil {
		return nil, err
	}
	return Project(users, rooms, assignments), nil
}

// Project is the pure board projection. The inputs are assumed to come
// from one consistent read; the lists arrive in ascending id order from
// the repositories and that order is preserved. An assignment row whose
// room or user no longer resolves is skipped rather than failing the
// whole projection, since a delete racing a read can leave such a row
// briefly visible.
func Project(users []model.User, rooms []model.Room, assignments []model.Assignment) *Board {
	board := &Board{
		Palette:    make([]UserCard, 0, len(users)),
		Unassigned: make([]UserCard, 0),
		Rooms:      make([]RoomColumn, 0, len(rooms)),
	}

	roomIdx := make(map[uint64]int, len(rooms))
	for i, r := range rooms {
		board.Rooms = append(board.Rooms, RoomColumn{ID: r.ID, Name: r.Name, Users: make([]RoomUser, 0)})
		roomIdx[r.ID] = i
	}

	userByID := make(map[uint64]model.User, len(users))
	for _, u := range users {
		userByID[u.ID] = u
	}

	// placement remembers the first resolvable assignment per user for
	// the palette card. With the one-assignment-per-user rule there is
	// at most one, but legacy rows may still carry several.
	type slot struct {
		roomID   uint64
		roomName string
	}
	placement := make(map[uint64]slot, len(assignments))

	for _, a := range assignments {
		i, ok := roomIdx[a.RoomID]
		if !ok {
			continue
		}
		u, ok := userByID[a.UserID]
		if !ok {
			continue
		}
		board.Rooms[i].Users = append(board.Rooms[i].Users, RoomUser{
			AssignmentID: a.ID,
			UserID:       u.ID,
			Name:         u.Name,
			Email:        u.Email,
		})
		if _, seen := placement[u.ID]; !seen {
			placement[u.ID] = slot{roomID: a.RoomID, roomName: board.Rooms[i].Name}
		}
	}

	for _, u := range users {
		card := UserCard{ID: u.ID, Name: u.Name, Email: u.Email}
		if p, ok := placement[u.ID]; ok {
			roomID, roomName := p.roomID, p.roomName
			card.RoomID = &roomID
			card.RoomName = &roomName
		}
		board.Palette = append(board.Palette, card)
		if card.RoomID == nil {
			board.Unassigned = append(board.Unassigned, card)
		}
	}
	return board
}
