package model

import "time"

// User represents a person that can be placed into a room.  Each field
// corresponds to a column in the `users` table.  Email is intended to be
// unique but uniqueness is only checked at creation time by the service
// layer; no database constraint enforces it.
//
// Fields:
//  ID        – primary key identifier of the user.
//  Name      – display name shown on the board.
//  Email     – contact address, checked for duplicates on create.
//  CreatedAt – timestamp of creation.
//  UpdatedAt – timestamp of last update.
type User struct {
	ID        uint64    `json:"id"`         // users.id
	Name      string    `json:"name"`       // users.name
	Email     string    `json:"email"`      // users.email
	CreatedAt time.Time `json:"created_at"` // users.created_at
	UpdatedAt time.Time `json:"updated_at"` // users.updated_at
}
