// Package queue defines message payloads exchanged over the message
// broker and the background consumer that records them.
package queue

// AssignmentChangedEvent is published after a reconcile commits a real
// change to the relation table (no-ops are not announced). It contains
// enough information for downstream consumers to log or notify without
// querying the primary database. RoomID and RoomName are nil when the
// user was removed from all rooms.
type AssignmentChangedEvent struct {
	Action       string  `json:"action"` // created | retargeted | removed
	AssignmentID uint64  `json:"assignment_id"`
	UserID       uint64  `json:"user_id"`
	UserName     string  `json:"user_name"`
	RoomID       *uint64 `json:"room_id"`
	RoomName     *string `json:"room_name"`
	OccurredAt   string  `json:"occurred_at"`
}
