package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/iliyamo/room-assignment/internal/model"
)

// RoomRepo provides persistence for rooms.
type RoomRepo struct {
	db *sql.DB
}

// NewRoomRepo constructs a RoomRepo with the given DB handle.
func NewRoomRepo(db *sql.DB) *RoomRepo { return &RoomRepo{db: db} }

const roomColumns = `id, name, created_at, updated_at`

// Create inserts a new room and populates the ID and timestamp fields.
func (r *RoomRepo) Create(ctx context.Context, m *model.Room) error {
	res, err := r.db.ExecContext(ctx, `INSERT INTO rooms (name) VALUES (?)`, m.Name)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	m.ID = uint64(id)
	return r.db.QueryRowContext(ctx,
		`SELECT `+roomColumns+` FROM rooms WHERE id = ?`, m.ID).
		Scan(&m.ID, &m.Name, &m.CreatedAt, &m.UpdatedAt)
}

// GetByID fetches a room by id. Returns ErrRoomNotFound when no row exists.
func (r *RoomRepo) GetByID(ctx context.Context, id uint64) (*model.Room, error) {
	return getRoom(ctx, r.db, id)
}

// GetByIDTx is GetByID inside an open transaction.
func (r *RoomRepo) GetByIDTx(ctx context.Context, tx *sql.Tx, id uint64) (*model.Room, error) {
	return getRoom(ctx, tx, id)
}

func getRoom(ctx context.Context, q querier, id uint64) (*model.Room, error) {
	var m model.Room
	err := q.QueryRowContext(ctx,
		`SELECT `+roomColumns+` FROM rooms WHERE id = ?`, id).
		Scan(&m.ID, &m.Name, &m.CreatedAt, &m.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrRoomNotFound
		}
		return nil, err
	}
	return &m, nil
}

// List returns all rooms in ascending id order.
func (r *RoomRepo) List(ctx context.Context) ([]model.Room, error) {
	return listRooms(ctx, r.db)
}

// ListTx is List inside an open transaction.
func (r *RoomRepo) ListTx(ctx context.Context, tx *sql.Tx) ([]model.Room, error) {
	return listRooms(ctx, tx)
}

func listRooms(ctx context.Context, q querier) ([]model.Room, error) {
	rows, err := q.QueryContext(ctx,
		`SELECT `+roomColumns+` FROM rooms ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Room
	for rows.Next() {
		var m model.Room
		if err := rows.Scan(&m.ID, &m.Name, &m.CreatedAt, &m.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

// Update overwrites the name of an existing room. Returns ErrRoomNotFound
// when the id matches no row.
func (r *RoomRepo) Update(ctx context.Context, m *model.Room) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE rooms SET name = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?`,
		m.Name, m.ID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		if _, err := getRoom(ctx, r.db, m.ID); err != nil {
			return err
		}
	}
	return nil
}

// DeleteTx removes a room inside an open transaction. Assignments
// referencing the room must be removed first by the caller.
func (r *RoomRepo) DeleteTx(ctx context.Context, tx *sql.Tx, id uint64) error {
	res, err := tx.ExecContext(ctx, `DELETE FROM rooms WHERE id = ?`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrRoomNotFound
	}
	return nil
}
