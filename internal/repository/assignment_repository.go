package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/iliyamo/room-assignment/internal/model"
)

// AssignmentRepo provides persistence for user-to-room assignment rows.
// All mutating methods run inside a caller-supplied transaction because
// assignment writes always happen as part of a larger unit of work: a
// reconcile that re-reads the board afterwards, or a cascade that also
// removes the referenced user or room.
type AssignmentRepo struct {
	db *sql.DB
}

// NewAssignmentRepo constructs an AssignmentRepo with the given DB handle.
func NewAssignmentRepo(db *sql.DB) *AssignmentRepo { return &AssignmentRepo{db: db} }

const assignmentColumns = `id, user_id, room_id, created_at, updated_at`

// CreateTx inserts a new assignment row and populates the ID and
// timestamp fields of the provided struct.
func (r *AssignmentRepo) CreateTx(ctx context.Context, tx *sql.Tx, a *model.Assignment) error {
	res, err := tx.ExecContext(ctx,
		`INSERT INTO assignments (user_id, room_id) VALUES (?, ?)`, a.UserID, a.RoomID)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	a.ID = uint64(id)
	return tx.QueryRowContext(ctx,
		`SELECT `+assignmentColumns+` FROM assignments WHERE id = ?`, a.ID).
		Scan(&a.ID, &a.UserID, &a.RoomID, &a.CreatedAt, &a.UpdatedAt)
}

// GetByIDTx fetches an assignment by id inside an open transaction.
// Returns ErrAssignmentNotFound when no row exists.
func (r *AssignmentRepo) GetByIDTx(ctx context.Context, tx *sql.Tx, id uint64) (*model.Assignment, error) {
	return getAssignment(ctx, tx,
		`SELECT `+assignmentColumns+` FROM assignments WHERE id = ?`, id)
}

// GetByUserAndRoomTx fetches the assignment for a (user, room) pair, if
// any. Returns ErrAssignmentNotFound when the pair is not assigned.
func (r *AssignmentRepo) GetByUserAndRoomTx(ctx context.Context, tx *sql.Tx, userID, roomID uint64) (*model.Assignment, error) {
	return getAssignment(ctx, tx,
		`SELECT `+assignmentColumns+` FROM assignments WHERE user_id = ? AND room_id = ? LIMIT 1`,
		userID, roomID)
}

func getAssignment(ctx context.Context, q querier, query string, args ...any) (*model.Assignment, error) {
	var a model.Assignment
	err := q.QueryRowContext(ctx, query, args...).
		Scan(&a.ID, &a.UserID, &a.RoomID, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrAssignmentNotFound
		}
		return nil, err
	}
	return &a, nil
}

// List returns all assignment rows in ascending id order.
func (r *AssignmentRepo) List(ctx context.Context) ([]model.Assignment, error) {
	return listAssignments(ctx, r.db)
}

// ListTx is List inside an open transaction.
func (r *AssignmentRepo) ListTx(ctx context.Context, tx *sql.Tx) ([]model.Assignment, error) {
	return listAssignments(ctx, tx)
}

func listAssignments(ctx context.Context, q querier) ([]model.Assignment, error) {
	rows, err := q.QueryContext(ctx,
		`SELECT `+assignmentColumns+` FROM assignments ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Assignment
	for rows.Next() {
		var a model.Assignment
		if err := rows.Scan(&a.ID, &a.UserID, &a.RoomID, &a.CreatedAt, &a.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

// UpdateRoomTx retargets an existing assignment to a different room,
// keeping its id. Returns ErrAssignmentNotFound when the id matches no
// row.
func (r *AssignmentRepo) UpdateRoomTx(ctx context.Context, tx *sql.Tx, id, roomID uint64) error {
	res, err := tx.ExecContext(ctx,
		`UPDATE assignments SET room_id = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?`,
		roomID, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		// A retarget to the same room also affects zero rows on some
		// drivers; confirm the row is really gone before reporting it.
		if _, err := r.GetByIDTx(ctx, tx, id); err != nil {
			return err
		}
	}
	return nil
}

// DeleteTx removes a single assignment row. Returns
// ErrAssignmentNotFound when the id matches no row.
func (r *AssignmentRepo) DeleteTx(ctx context.Context, tx *sql.Tx, id uint64) error {
	res, err := tx.ExecContext(ctx, `DELETE FROM assignments WHERE id = ?`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrAssignmentNotFound
	}
	return nil
}

// DeleteByUserTx removes every assignment referencing the user and
// reports how many rows were deleted. Used by the user delete cascade.
func (r *AssignmentRepo) DeleteByUserTx(ctx context.Context, tx *sql.Tx, userID uint64) (int64, error) {
	res, err := tx.ExecContext(ctx, `DELETE FROM assignments WHERE user_id = ?`, userID)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

// DeleteByRoomTx removes every assignment referencing the room and
// reports how many rows were deleted. Used by the room delete cascade.
func (r *AssignmentRepo) DeleteByRoomTx(ctx context.Context, tx *sql.Tx, roomID uint64) (int64, error) {
	res, err := tx.ExecContext(ctx, `DELETE FROM assignments WHERE room_id = ?`, roomID)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
