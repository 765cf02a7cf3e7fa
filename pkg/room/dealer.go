package room

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
	"pokertable-server/pkg/holdem"
	"pokertable-server/pkg/model"
)

// updateTimeout bounds a single load-mutate-save cycle started by a client
const updateTimeout = time.Second * 10

// Dealer serves every client watching one room
type Dealer struct {
	pitBoss *PitBoss
	roomID  string
	clients map[*Client]bool
	lock    sync.RWMutex

	execInRunLoop chan func()
	close         chan bool
}

// NewDealer creates a new dealer object
// This is called from a blocking state, so it needs to return quickly
func NewDealer(pitBoss *PitBoss, roomID string) *Dealer {
	return &Dealer{
		pitBoss:       pitBoss,
		roomID:        roomID,
		clients:       make(map[*Client]bool),
		execInRunLoop: make(chan func(), 256),
		close:         make(chan bool),
	}
}

// Clients will return a slice of connected (at the time) clients
func (d *Dealer) Clients() []*Client {
	d.lock.RLock()
	defer d.lock.RUnlock()

	clients := make([]*Client, 0, len(d.clients))
	for client := range d.clients {
		clients = append(clients, client)
	}

	return clients
}

// StartShift starts the run loop
func (d *Dealer) StartShift() {
	go d.runLoop()
}

func (d *Dealer) runLoop() {
	log := logrus.WithField("roomID", d.roomID)

	log.Debug("creating dealer run loop")
	for {
		select {
		case fn := <-d.execInRunLoop:
			fn()
		case <-d.close:
			log.Debug("terminating dealer run loop")
			return
		}
	}
}

// EndShift is called when the dealer is no longer needed
func (d *Dealer) EndShift() {
	close(d.close)
}

// AddClient adds a client and sends it the current state of the room
// This method must return quickly
func (d *Dealer) AddClient(client *Client) {
	d.lock.Lock()
	client.dealer = d
	d.clients[client] = true
	d.lock.Unlock()

	d.execInRunLoop <- func() {
		d.refresh(client, "")
	}
}

// RemoveClient removes a client
// This method must return quickly
func (d *Dealer) RemoveClient(client *Client) (lastClient bool) {
	d.lock.Lock()
	defer d.lock.Unlock()

	delete(d.clients, client)
	return len(d.clients) == 0
}

// SendRoomState sends each connected client its own view of the room
// This method must return quickly
func (d *Dealer) SendRoomState(r *model.Room) {
	d.execInRunLoop <- func() {
		d.sendRoomState(r)
	}
}

// NOTE: must only be called from the run loop
func (d *Dealer) sendRoomState(r *model.Room) {
	for _, client := range d.Clients() {
		client.Send(newRoomStateResponse(r, client))
	}
}

func newRoomStateResponse(r *model.Room, client *Client) *Response {
	return &Response{
		Key:  "roomState",
		Data: r.View(client.playerID),
	}
}

// NOTE: must only be called from the run loop
func (d *Dealer) refresh(client *Client, msgCtx string) {
	ctx, cancel := context.WithTimeout(context.Background(), updateTimeout)
	defer cancel()

	r, err := d.pitBoss.store.GetRoom(ctx, d.roomID)
	if err != nil {
		client.Send(d.errorResponse(msgCtx, err))
		return
	}

	res := newRoomStateResponse(r, client)
	res.Context = msgCtx
	client.Send(res)
}

// NOTE: must only be called from the run loop
func (d *Dealer) update(client *Client, msgCtx string, fn func(r *model.Room) error) {
	if client.playerID == "" {
		client.Send(newErrorResponse(msgCtx, model.ErrPlayerIDRequired))
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), updateTimeout)
	defer cancel()

	r, err := model.Update(ctx, d.pitBoss.store, d.roomID, d.pitBoss.retries, fn)
	if err != nil {
		client.Send(d.errorResponse(msgCtx, err))
		return
	}

	client.Send(OK(msgCtx))
	d.sendRoomState(r)
}

// errorResponse hides internal errors from the client
func (d *Dealer) errorResponse(msgCtx string, err error) *Response {
	var holdemErr holdem.UserError
	var modelErr model.UserError
	switch {
	case errors.As(err, &holdemErr), errors.As(err, &modelErr), errors.Is(err, model.ErrRoomNotFound):
		return newErrorResponse(msgCtx, err)
	}

	logrus.WithError(err).WithField("roomID", d.roomID).Error("could not handle client message")
	return newErrorResponse(msgCtx, errors.New("the room is unavailable, try again later"))
}

// ReceivedMessage is called when a client sends a message to the server
func (d *Dealer) ReceivedMessage(c *Client, msg *PayloadIn) {
	switch msg.Action {
	case "refresh":
		d.execInRunLoop <- func() {
			d.refresh(c, msg.Context)
		}
	case "sit":
		d.execInRunLoop <- func() {
			d.update(c, msg.Context, func(r *model.Room) error {
				_, err := r.Table.Sit(c.playerID)
				return err
			})
		}
	case "leave":
		d.execInRunLoop <- func() {
			d.update(c, msg.Context, func(r *model.Room) error {
				return r.Table.Leave(c.playerID)
			})
		}
	default:
		c.Send(newErrorResponse(msg.Context, fmt.Errorf("unknown action: %s", msg.Action)))
	}
}
