package model

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisStore keeps each room as a JSON record, plus a set of room IDs per seated player
//
//	{prefix}:room:{id}        -> redisRoom JSON
//	{prefix}:player:{id}:rooms -> Set(roomID, ...)
type RedisStore struct {
	rdb    *redis.Client
	prefix string
}

type redisRoom struct {
	ID              string          `json:"id"`
	Name            string          `json:"name"`
	CreatorID       string          `json:"creatorId"`
	PlayerIDs       []string        `json:"playerIds"`
	SerializedTable json.RawMessage `json:"serializedTable"`
	Version         int             `json:"version"`
	Created         time.Time       `json:"created"`
	Updated         time.Time       `json:"updated"`
}

// NewRedisStore returns a store backed by the client
func NewRedisStore(rdb *redis.Client, prefix string) *RedisStore {
	return &RedisStore{rdb: rdb, prefix: prefix}
}

// NewRedisClient connects to Redis and verifies the connection
func NewRedisClient(ctx context.Context, addr, password string, db int) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, err
	}

	return rdb, nil
}

func (s *RedisStore) roomKey(id string) string {
	return fmt.Sprintf("%s:room:%s", s.prefix, id)
}

func (s *RedisStore) playerRoomsKey(playerID string) string {
	return fmt.Sprintf("%s:player:%s:rooms", s.prefix, playerID)
}

func (s *RedisStore) toRecord(r *Room) ([]byte, error) {
	serializedTable, err := r.beforeSave()
	if err != nil {
		return nil, err
	}

	return json.Marshal(redisRoom{
		ID:              r.ID,
		Name:            r.Name,
		CreatorID:       r.CreatorID,
		PlayerIDs:       r.PlayerIDs,
		SerializedTable: serializedTable,
		Version:         r.Version,
		Created:         r.Created,
		Updated:         r.Updated,
	})
}

func fromRecord(id string, data []byte) (*Room, error) {
	var rec redisRoom
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, &RoomUnavailableError{ID: id, Err: err}
	}

	r := &Room{
		ID:        rec.ID,
		Name:      rec.Name,
		CreatorID: rec.CreatorID,
		Version:   rec.Version,
		Created:   rec.Created,
		Updated:   rec.Updated,
	}

	if err := r.afterLoad(rec.SerializedTable); err != nil {
		return nil, err
	}

	return r, nil
}

// CreateRoom stores the room unless the ID is taken
func (s *RedisStore) CreateRoom(ctx context.Context, r *Room) error {
	now := time.Now().UTC()
	created, updated, version := r.Created, r.Updated, r.Version
	r.Created, r.Updated, r.Version = now, now, 1

	data, err := s.toRecord(r)
	if err != nil {
		r.Created, r.Updated, r.Version = created, updated, version
		return err
	}

	ok, err := s.rdb.SetNX(ctx, s.roomKey(r.ID), data, 0).Result()
	if err != nil || !ok {
		r.Created, r.Updated, r.Version = created, updated, version
		if err != nil {
			return err
		}

		return ErrDuplicateKey
	}

	if len(r.PlayerIDs) == 0 {
		return nil
	}

	pipe := s.rdb.Pipeline()
	for _, playerID := range r.PlayerIDs {
		pipe.SAdd(ctx, s.playerRoomsKey(playerID), r.ID)
	}

	_, err = pipe.Exec(ctx)
	return err
}

// GetRoom returns the room by ID
func (s *RedisStore) GetRoom(ctx context.Context, id string) (*Room, error) {
	data, err := s.rdb.Get(ctx, s.roomKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrRoomNotFound
		}

		return nil, err
	}

	return fromRecord(id, data)
}

// GetRoomCreatorID returns the creator of the room
// Only the record is decoded, so this works for a room whose table is corrupted
func (s *RedisStore) GetRoomCreatorID(ctx context.Context, id string) (string, error) {
	data, err := s.rdb.Get(ctx, s.roomKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", ErrRoomNotFound
		}

		return "", err
	}

	var rec struct {
		CreatorID string `json:"creatorId"`
	}

	if err := json.Unmarshal(data, &rec); err != nil {
		return "", &RoomUnavailableError{ID: id, Err: err}
	}

	return rec.CreatorID, nil
}

// SaveRoom writes the room inside a WATCH transaction so concurrent saves cannot both succeed
func (s *RedisStore) SaveRoom(ctx context.Context, r *Room) error {
	key := s.roomKey(r.ID)

	err := s.rdb.Watch(ctx, func(tx *redis.Tx) error {
		current, err := tx.Get(ctx, key).Bytes()
		if err != nil {
			if errors.Is(err, redis.Nil) {
				return ErrRoomNotFound
			}

			return err
		}

		var stored redisRoom
		if err := json.Unmarshal(current, &stored); err != nil {
			return &RoomUnavailableError{ID: r.ID, Err: err}
		}

		if stored.Version != r.Version {
			return ErrConflict
		}

		next := *r
		next.Version++
		next.Updated = time.Now().UTC()
		data, err := s.toRecord(&next)
		if err != nil {
			return err
		}

		if _, err := tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, key, data, 0)
			for _, playerID := range difference(stored.PlayerIDs, next.PlayerIDs) {
				pipe.SRem(ctx, s.playerRoomsKey(playerID), r.ID)
			}

			for _, playerID := range difference(next.PlayerIDs, stored.PlayerIDs) {
				pipe.SAdd(ctx, s.playerRoomsKey(playerID), r.ID)
			}

			return nil
		}); err != nil {
			return err
		}

		*r = next
		return nil
	}, key)

	if errors.Is(err, redis.TxFailedErr) {
		return ErrConflict
	}

	return err
}

// GetRoomsByPlayerID returns the rooms the player is seated in
func (s *RedisStore) GetRoomsByPlayerID(ctx context.Context, playerID string) ([]*Room, error) {
	ids, err := s.rdb.SMembers(ctx, s.playerRoomsKey(playerID)).Result()
	if err != nil {
		return nil, err
	}

	rooms := make([]*Room, 0, len(ids))
	if len(ids) == 0 {
		return rooms, nil
	}

	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = s.roomKey(id)
	}

	values, err := s.rdb.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, err
	}

	for i, val := range values {
		data, ok := val.(string)
		if !ok {
			// deleted since the set was read
			continue
		}

		r, err := fromRecord(ids[i], []byte(data))
		if err != nil {
			return nil, err
		}

		rooms = append(rooms, r)
	}

	sort.SliceStable(rooms, func(i, j int) bool {
		return rooms[i].Updated.After(rooms[j].Updated)
	})

	return rooms, nil
}

// DeleteRoom deletes the room and removes it from every player's set
func (s *RedisStore) DeleteRoom(ctx context.Context, id string) error {
	key := s.roomKey(id)
	data, err := s.rdb.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return ErrRoomNotFound
		}

		return err
	}

	var stored redisRoom
	if err := json.Unmarshal(data, &stored); err != nil {
		return &RoomUnavailableError{ID: id, Err: err}
	}

	pipe := s.rdb.TxPipeline()
	pipe.Del(ctx, key)
	for _, playerID := range stored.PlayerIDs {
		pipe.SRem(ctx, s.playerRoomsKey(playerID), id)
	}

	_, err = pipe.Exec(ctx)
	return err
}

// difference returns the IDs in a that are not in b
func difference(a, b []string) []string {
	in := make(map[string]bool, len(b))
	for _, id := range b {
		in[id] = true
	}

	out := make([]string, 0)
	for _, id := range a {
		if !in[id] {
			out = append(out, id)
		}
	}

	return out
}
