package room

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"pokertable-server/internal/rng"
	"pokertable-server/pkg/holdem"
	"pokertable-server/pkg/model"
)

func newPitBoss(t *testing.T) (*PitBoss, *model.Room) {
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

	store := model.NewRedisStore(rdb, "test")
	r, err := model.NewRoom("test room", "alice", model.Stakes{BuyIn: 100, SmallBlind: 1, BigBlind: 2}, rng.NewSeeded(1))
	if err != nil {
		t.Fatal(err)
	}

	if err := store.CreateRoom(context.Background(), r); err != nil {
		t.Fatal(err)
	}

	p := NewPitBoss(store, 3)
	p.StartShift()

	return p, r
}

func receive(t *testing.T, c *Client) *Response {
	t.Helper()
	select {
	case msg := <-c.SendChan():
		res, ok := msg.(*Response)
		if !ok {
			t.Fatalf("unexpected message %T", msg)
		}

		return res
	case <-time.After(time.Second * 2):
		t.Fatal("timed out waiting for a message")
	}

	return nil
}

func receiveView(t *testing.T, c *Client) *model.RoomView {
	t.Helper()
	res := receive(t, c)
	if !assert.Equal(t, "roomState", res.Key) {
		t.FailNow()
	}

	return res.Data.(*model.RoomView)
}

func TestDealer_AddClient(t *testing.T) {
	d := NewDealer(&PitBoss{}, "room")
	c := NewClient(nil, "alice", "room")
	c2 := NewClient(nil, "", "room")

	d.AddClient(c)
	d.AddClient(c2)
	assert.Len(t, d.Clients(), 2)
	assert.Same(t, d, c.dealer)

	assert.False(t, d.RemoveClient(c))
	assert.True(t, d.RemoveClient(c2))
}

func TestPitBoss_viewsPerClient(t *testing.T) {
	a := assert.New(t)
	p, r := newPitBoss(t)

	alice := NewClient(nil, "alice", r.ID)
	spectator := NewClient(nil, "", r.ID)
	p.ClientConnected(alice)
	p.ClientConnected(spectator)

	v := receiveView(t, alice)
	a.Equal(r.ID, v.ID)
	a.False(v.CanSit)
	a.NotNil(v.Table.Seats[0].LegalActions)

	v = receiveView(t, spectator)
	a.False(v.CanSit)
	a.Nil(v.Table.Seats[0].LegalActions)

	bob := NewClient(nil, "bob", r.ID)
	p.ClientConnected(bob)
	v = receiveView(t, bob)
	a.True(v.CanSit)

	bob.ReceivedMessage(&PayloadIn{Action: "sit", Context: "c1"})
	a.Equal(OK("c1"), receive(t, bob))

	// every client gets their own projection of the new state
	v = receiveView(t, bob)
	a.False(v.CanSit)
	a.Equal("bob", v.Table.Seats[1].ID)
	a.NotNil(v.Table.Seats[1].LegalActions)
	a.Nil(v.Table.Seats[0].LegalActions)

	v = receiveView(t, alice)
	a.NotNil(v.Table.Seats[0].LegalActions)
	a.Nil(v.Table.Seats[1].LegalActions)

	v = receiveView(t, spectator)
	a.Equal("bob", v.Table.Seats[1].ID)

	bob.ReceivedMessage(&PayloadIn{Action: "sit", Context: "c2"})
	a.Equal(&Response{Key: "error", Value: string(holdem.ErrAlreadySeated), Context: "c2"}, receive(t, bob))

	spectator.ReceivedMessage(&PayloadIn{Action: "sit", Context: "c3"})
	a.Equal(&Response{Key: "error", Value: "a player ID is required", Context: "c3"}, receive(t, spectator))

	bob.ReceivedMessage(&PayloadIn{Action: "fold", Context: "c4"})
	a.Equal(&Response{Key: "error", Value: "unknown action: fold", Context: "c4"}, receive(t, bob))

	bob.ReceivedMessage(&PayloadIn{Action: "refresh", Context: "c5"})
	res := receive(t, bob)
	a.Equal("roomState", res.Key)
	a.Equal("c5", res.Context)

	bob.ReceivedMessage(&PayloadIn{Action: "leave", Context: "c6"})
	a.Equal(OK("c6"), receive(t, bob))
	v = receiveView(t, bob)
	a.True(v.CanSit)
	a.Nil(v.Table.Seats[1])
}

func TestPitBoss_RoomChanged(t *testing.T) {
	a := assert.New(t)
	p, r := newPitBoss(t)

	alice := NewClient(nil, "alice", r.ID)
	p.ClientConnected(alice)
	receiveView(t, alice)

	_, _ = r.Table.Sit("carol")
	p.RoomChanged(r)
	v := receiveView(t, alice)
	a.Equal("carol", v.Table.Seats[1].ID)

	// rooms nobody watches are ignored
	p.RoomChanged(&model.Room{ID: "other"})

	p.ClientDisconnected(alice)
	time.Sleep(time.Millisecond * 50)
	p.RoomChanged(r)
	select {
	case msg := <-alice.SendChan():
		t.Errorf("unexpected message after disconnect: %v", msg)
	case <-time.After(time.Millisecond * 100):
	}
}

func TestClient_String(t *testing.T) {
	assert.Equal(t, "alice:room", NewClient(nil, "alice", "room").String())
	assert.Equal(t, "spectator:room", NewClient(nil, "", "room").String())
}
