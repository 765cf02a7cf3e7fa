package main

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"pokertable-server/internal/rng"
	"pokertable-server/pkg/model"
)

func Test_run(t *testing.T) {
	a := assert.New(t)
	ctx := context.Background()

	mr, err := miniredis.Run()
	if err != nil {
		t.Fatal(err)
	}
	defer mr.Close()

	store := model.NewRedisStore(redis.NewClient(&redis.Options{Addr: mr.Addr()}), "test")
	r, _ := model.NewRoom("admin", "alice", model.Stakes{BuyIn: 100, SmallBlind: 1, BigBlind: 2}, rng.NewSeeded(1))
	a.NoError(store.CreateRoom(ctx, r))

	*roomID = r.ID
	*playerID = "alice"

	var out bytes.Buffer
	a.NoError(run(ctx, store, &out, "view"))
	var view map[string]interface{}
	a.NoError(json.Unmarshal(out.Bytes(), &view))
	a.Equal(r.ID, view["id"])
	a.NotContains(view["table"], "deck")

	out.Reset()
	a.NoError(run(ctx, store, &out, "dump"))
	var dump map[string]interface{}
	a.NoError(json.Unmarshal(out.Bytes(), &dump))
	a.Len(dump["deck"], 52)

	out.Reset()
	a.NoError(run(ctx, store, &out, "rooms"))
	var rooms []map[string]interface{}
	a.NoError(json.Unmarshal(out.Bytes(), &rooms))
	a.Len(rooms, 1)

	*playerID = ""
	a.EqualError(run(ctx, store, &out, "rooms"), "-player is required")
	a.EqualError(run(ctx, store, &out, "user"), "unknown command: user")

	*roomID = "missing"
	a.Equal(model.ErrRoomNotFound, run(ctx, store, &out, "view"))
}
