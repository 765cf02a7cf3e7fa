package model

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"pokertable-server/pkg/db"
)

const roomColumns = `
rooms.id,
rooms.name,
rooms.creator_id,
rooms.serialized_table,
rooms.version,
rooms.created,
rooms.updated`

const pqDuplicateKeyErrorCode pq.ErrorCode = "23505"

// PostgresStore keeps rooms in the `rooms` table
type PostgresStore struct {
	db *sql.DB
}

// NewPostgresStore returns a store backed by the database
func NewPostgresStore(conn *sql.DB) *PostgresStore {
	return &PostgresStore{db: conn}
}

// DB returns the underlying database handle
func (p *PostgresStore) DB() *sql.DB {
	return p.db
}

func getRoomByRow(row db.Scanner) (*Room, error) {
	var r Room
	var serializedTable []byte
	if err := row.Scan(&r.ID, &r.Name, &r.CreatorID, &serializedTable, &r.Version, &r.Created, &r.Updated); err != nil {
		return nil, err
	}

	if err := r.afterLoad(serializedTable); err != nil {
		return nil, err
	}

	return &r, nil
}

// CreateRoom inserts the room
func (p *PostgresStore) CreateRoom(ctx context.Context, r *Room) error {
	serializedTable, err := r.beforeSave()
	if err != nil {
		return err
	}

	const query = `
INSERT INTO rooms (id, name, creator_id, player_ids, serialized_table)
VALUES ($1, $2, $3, $4, $5)
RETURNING version, created, updated`

	row := p.db.QueryRowContext(ctx, query, r.ID, r.Name, r.CreatorID, pq.Array(r.PlayerIDs), serializedTable)
	if err := row.Scan(&r.Version, &r.Created, &r.Updated); err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == pqDuplicateKeyErrorCode {
			return ErrDuplicateKey
		}

		return err
	}

	return nil
}

// GetRoom returns the room by ID
func (p *PostgresStore) GetRoom(ctx context.Context, id string) (*Room, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, ErrRoomNotFound
	}

	const query = `
SELECT ` + roomColumns + `
FROM rooms
WHERE id = $1`

	r, err := getRoomByRow(p.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrRoomNotFound
		}

		return nil, err
	}

	return r, nil
}

// GetRoomCreatorID returns the creator of the room
func (p *PostgresStore) GetRoomCreatorID(ctx context.Context, id string) (string, error) {
	if _, err := uuid.Parse(id); err != nil {
		return "", ErrRoomNotFound
	}

	var creatorID string
	if err := p.db.QueryRowContext(ctx, `SELECT creator_id FROM rooms WHERE id = $1`, id).Scan(&creatorID); err != nil {
		if err == sql.ErrNoRows {
			return "", ErrRoomNotFound
		}

		return "", err
	}

	return creatorID, nil
}

// SaveRoom writes the room only if the stored version matches
func (p *PostgresStore) SaveRoom(ctx context.Context, r *Room) error {
	serializedTable, err := r.beforeSave()
	if err != nil {
		return err
	}

	const query = `
UPDATE rooms
SET name = $1,
    player_ids = $2,
    serialized_table = $3,
    version = version + 1,
    updated = (NOW() AT TIME ZONE 'utc')
WHERE id = $4
  AND version = $5
RETURNING version, updated`

	row := p.db.QueryRowContext(ctx, query, r.Name, pq.Array(r.PlayerIDs), serializedTable, r.ID, r.Version)
	if err := row.Scan(&r.Version, &r.Updated); err != nil {
		if err != sql.ErrNoRows {
			return err
		}

		exists, err := p.roomExists(ctx, r.ID)
		if err != nil {
			return err
		}

		if !exists {
			return ErrRoomNotFound
		}

		return ErrConflict
	}

	return nil
}

func (p *PostgresStore) roomExists(ctx context.Context, id string) (bool, error) {
	const query = `SELECT EXISTS(SELECT 1 FROM rooms WHERE id = $1)`

	var exists bool
	if err := p.db.QueryRowContext(ctx, query, id).Scan(&exists); err != nil {
		return false, err
	}

	return exists, nil
}

// GetRoomsByPlayerID returns the rooms the player is seated in
func (p *PostgresStore) GetRoomsByPlayerID(ctx context.Context, playerID string) ([]*Room, error) {
	const query = `
SELECT ` + roomColumns + `
FROM rooms
WHERE $1 = ANY(player_ids)
ORDER BY updated DESC`

	rows, err := p.db.QueryContext(ctx, query, playerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	rooms := make([]*Room, 0)
	for rows.Next() {
		r, err := getRoomByRow(rows)
		if err != nil {
			return nil, err
		}

		rooms = append(rooms, r)
	}

	return rooms, rows.Err()
}

// DeleteRoom deletes the room
func (p *PostgresStore) DeleteRoom(ctx context.Context, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return ErrRoomNotFound
	}

	res, err := p.db.ExecContext(ctx, `DELETE FROM rooms WHERE id = $1`, id)
	if err != nil {
		return err
	}

	n, err := res.RowsAffected()
	if err != nil {
		return err
	}

	if n == 0 {
		return ErrRoomNotFound
	}

	return nil
}
