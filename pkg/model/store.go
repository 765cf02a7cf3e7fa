package model

import (
	"context"
	"errors"

	"github.com/sirupsen/logrus"
)

// Store persists rooms
// Every implementation stores the whole serialized table and rejects stale saves with ErrConflict
type Store interface {
	// CreateRoom inserts a new room and sets its version and timestamps
	CreateRoom(ctx context.Context, r *Room) error
	// GetRoom returns ErrRoomNotFound or a *RoomUnavailableError if the room cannot be loaded
	GetRoom(ctx context.Context, id string) (*Room, error)
	// GetRoomCreatorID reads who created the room without decoding its table
	GetRoomCreatorID(ctx context.Context, id string) (string, error)
	// SaveRoom writes the room if nobody saved it since it was loaded, then bumps its version
	SaveRoom(ctx context.Context, r *Room) error
	// GetRoomsByPlayerID returns the rooms where the player holds a seat, most recently updated first
	GetRoomsByPlayerID(ctx context.Context, playerID string) ([]*Room, error)
	DeleteRoom(ctx context.Context, id string) error
}

// Update loads the room, applies fn and saves it
// When another writer saved first, the whole cycle runs again from a fresh load, at most retries more times
// An error returned by fn aborts the update without saving
func Update(ctx context.Context, store Store, id string, retries int, fn func(r *Room) error) (*Room, error) {
	for attempt := 0; ; attempt++ {
		r, err := store.GetRoom(ctx, id)
		if err != nil {
			return nil, err
		}

		if err := fn(r); err != nil {
			return nil, err
		}

		err = store.SaveRoom(ctx, r)
		if err == nil {
			return r, nil
		}

		if !errors.Is(err, ErrConflict) || attempt >= retries {
			return nil, err
		}

		logrus.WithFields(logrus.Fields{
			"roomID":  id,
			"attempt": attempt + 1,
		}).Warn("room was modified concurrently, retrying")

		if err := ctx.Err(); err != nil {
			return nil, err
		}
	}
}
