package model

import (
	"errors"
	"fmt"
)

// UserError is an error that is safe to return in a response
type UserError string

func (u UserError) Error() string {
	return string(u)
}

// ErrRoomNotFound is returned when no room has the requested ID
var ErrRoomNotFound = errors.New("room not found")

// ErrConflict is returned by SaveRoom when another writer saved the room first
// The caller must reload the room before trying again
var ErrConflict = errors.New("room was modified by another request")

// ErrDuplicateKey happens if a room is created with an ID that is already taken
var ErrDuplicateKey = errors.New("duplicate key constraint violation")

// RoomUnavailableError happens when a stored room cannot be turned back into a table
type RoomUnavailableError struct {
	ID  string
	Err error
}

func (r *RoomUnavailableError) Error() string {
	return fmt.Sprintf("room %s is unavailable: %v", r.ID, r.Err)
}

// Unwrap returns the underlying error
func (r *RoomUnavailableError) Unwrap() error {
	return r.Err
}
