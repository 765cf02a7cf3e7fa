package model

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"pokertable-server/internal/rng"
	"pokertable-server/internal/util"
)

var cbg = context.Background()

var defaultStakes = Stakes{BuyIn: 200, SmallBlind: 1, BigBlind: 2}

func seeded() *rng.Seeded {
	return rng.NewSeeded(1)
}

func newRoom(t *testing.T) *Room {
	t.Helper()
	r, err := NewRoom("my room", util.RandomPlayerID(), defaultStakes, seeded())
	if err != nil {
		t.Fatal(err)
	}

	return r
}

func newRedisStore(t *testing.T) (*RedisStore, *miniredis.Miniredis) {
	t.Helper()
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatal(err)
	}

	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() {
		_ = rdb.Close()
		mr.Close()
	})

	return NewRedisStore(rdb, "test"), mr
}

// racingStore lets another writer save the room right before each of the first n saves
type racingStore struct {
	Store
	n     int
	saves int
}

func (r *racingStore) SaveRoom(ctx context.Context, room *Room) error {
	r.saves++
	if r.saves <= r.n {
		other, err := r.Store.GetRoom(ctx, room.ID)
		if err != nil {
			return err
		}

		other.Name = "changed by someone else"
		if err := r.Store.SaveRoom(ctx, other); err != nil {
			return err
		}
	}

	return r.Store.SaveRoom(ctx, room)
}
