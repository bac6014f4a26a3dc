package model

import "time"

// Assignment links one user to one room and represents current
// occupancy.  Rows are created, retargeted and deleted exclusively by
// the assignment service; deleting a user or a room removes all
// assignments that reference it in the same transaction.
//
// At most one live assignment exists per user.  That rule is applied
// procedurally by the assignment service rather than by a unique
// index, matching the behaviour of the system this one replaced.
//
// Fields:
//  ID        – primary key identifier of the relation row.  The ID is
//              stable across moves: dragging a user between rooms
//              updates RoomID in place instead of recreating the row.
//  UserID    – user occupying the room.
//  RoomID    – room being occupied.
//  CreatedAt – timestamp of creation.
//  UpdatedAt – timestamp of last update (changes on retarget).
type Assignment struct {
	ID        uint64    `json:"id"`         // assignments.id
	UserID    uint64    `json:"user_id"`    // assignments.user_id
	RoomID    uint64    `json:"room_id"`    // assignments.room_id
	CreatedAt time.Time `json:"created_at"` // assignments.created_at
	UpdatedAt time.Time `json:"updated_at"` // assignments.updated_at
}
