package service

import (
	"context"
	"database/sql"

	"github.com/iliyamo/room-assignment/internal/model"
	"github.com/iliyamo/room-assignment/internal/repository"
)

// MoveAction describes what a reconcile actually did to the relation table.
type MoveAction string

const (
	MoveCreated    MoveAction = "created"    // new assignment row inserted
	MoveRetargeted MoveAction = "retargeted" // existing row repointed at another room
	MoveRemoved    MoveAction = "removed"    // existing row deleted
	MoveNoop       MoveAction = "noop"       // request changed nothing
)

// MoveResult is the outcome of a reconcile: the action taken, the
// affected row (AssignmentID is zero for a no-op that touched no row)
// and the board re-projected inside the same transaction.
type MoveResult struct {
	Action       MoveAction
	AssignmentID uint64
	UserID       uint64
	RoomID       *uint64
	Board        *Board
}

// AssignmentService interprets a requested move and applies the minimal
// correct mutation to the assignment table.
type AssignmentService struct {
	db          *sql.DB
	users       *repository.UserRepo
	rooms       *repository.RoomRepo
	assignments *repository.AssignmentRepo
	board       *BoardService
}

// NewAssignmentService constructs an AssignmentService. All dependencies
// must be non-nil.
func NewAssignmentService(db *sql.DB, users *repository.UserRepo, rooms *repository.RoomRepo, assignments *repository.AssignmentRepo, board *BoardService) *AssignmentService {
	if db == nil || users == nil || rooms == nil || assignments == nil || board == nil {
		panic("nil dependency passed to NewAssignmentService")
	}
	return &AssignmentService{db: db, users: users, rooms: rooms, assignments: assignments, board: board}
}

// List returns all assignment rows in ascending id order.
func (s *AssignmentService) List(ctx context.Context) ([]model.Assignment, error) {
	return s.assignments.List(ctx)
}

// Reconcile applies a requested move for userID. The two optional
// references select the branch:
//
//	assignmentID set, roomID set  -> retarget the row in place, keeping its id
//	assignmentID set, roomID nil  -> delete the row (user leaves all rooms)
//	assignmentID nil, roomID set  -> insert a row unless the (user, room)
//	                                 pair is already assigned (idempotent)
//	assignmentID nil, roomID nil  -> no-op
//
// Existence checks, the mutation and the returned board projection all
// run inside one transaction; either every effect commits or none do.
// Two reconciles racing on the same user can still lose an update to
// each other; the store's isolation level is the only ordering
// guarantee across calls.
func (s *AssignmentService) Reconcile(ctx context.Context, userID uint64, roomID, assignmentID *uint64) (*MoveResult, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	if _, err := s.users.GetByIDTx(ctx, tx, userID); err != nil {
		return nil, err
	}

	result := &MoveResult{Action: MoveNoop, UserID: userID, RoomID: roomID}

	switch {
	case assignmentID != nil:
		a, err := s.assignments.GetByIDTx(ctx, tx, *assignmentID)
		if err != nil {
			return nil, err
		}
		if a.UserID != userID {
			// The referenced row belongs to someone else; treat it the
			// same as a stale reference.
			return nil, repository.ErrAssignmentNotFound
		}
		result.AssignmentID = a.ID
		if roomID == nil {
			if err := s.assignments.DeleteTx(ctx, tx, a.ID); err != nil {
				return nil, err
			}
			result.Action = MoveRemoved
		} else {
			if _, err := s.rooms.GetByIDTx(ctx, tx, *roomID); err != nil {
				return nil, err
			}
			if a.RoomID == *roomID {
				result.Action = MoveNoop
			} else {
				if err := s.assignments.UpdateRoomTx(ctx, tx, a.ID, *roomID); err != nil {
					return nil, err
				}
				result.Action = MoveRetargeted
			}
		}

	case roomID != nil:
		if _, err := s.rooms.GetByIDTx(ctx, tx, *roomID); err != nil {
			return nil, err
		}
		existing, err := s.assignments.GetByUserAndRoomTx(ctx, tx, userID, *roomID)
		switch err {
		case nil:
			// Duplicate placement is not an error and creates no second row.
			result.Action = MoveNoop
			result.AssignmentID = existing.ID
		case repository.ErrAssignmentNotFound:
			a := &model.Assignment{UserID: userID, RoomID: *roomID}
			if err := s.assignments.CreateTx(ctx, tx, a); err != nil {
				return nil, err
			}
			result.Action = MoveCreated
			result.AssignmentID = a.ID
		default:
			return nil, err
		}

	default:
		// Dropping an unassigned user back into "unassigned".
	}

	board, err := s.board.BoardTx(ctx, tx)
	if err != nil {
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, err
	}
	committed = true
	result.Board = board
	return result, nil
}
