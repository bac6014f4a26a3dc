// Package repository defines error types that are reused across multiple
// repositories. These sentinel values allow higher layers such as
// services and handlers to distinguish between different failure
// scenarios, for example translating ErrRoomNotFound into an HTTP 404
// response or ErrEmailExists into a 409.
package repository

import "errors"

// ErrUserNotFound is returned when a user lookup or delete matches no row.
var ErrUserNotFound = errors.New("user not found")

// ErrRoomNotFound is returned when a room lookup or delete matches no row.
var ErrRoomNotFound = errors.New("room not found")

// ErrAssignmentNotFound is returned when an assignment lookup matches no row.
var ErrAssignmentNotFound = errors.New("assignment not found")

// ErrEmailExists is returned when creating a user whose email is already
// present on another user. The check is performed by the service layer
// at creation time only; there is no unique index backing it.
var ErrEmailExists = errors.New("email already exists")
