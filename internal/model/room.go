package model

import "time"

// Room is a place users can be assigned to.  Room names carry no
// uniqueness requirement; two rooms may share a name.
//
// Fields:
//  ID        – primary key identifier of the room.
//  Name      – human readable label shown as the board column title.
//  CreatedAt – timestamp of creation.
//  UpdatedAt – timestamp of last update.
type Room struct {
	ID        uint64    `json:"id"`         // rooms.id
	Name      string    `json:"name"`       // rooms.name
	CreatedAt time.Time `json:"created_at"` // rooms.created_at
	UpdatedAt time.Time `json:"updated_at"` // rooms.updated_at
}
