package room

import (
	"github.com/sirupsen/logrus"
	"pokertable-server/pkg/model"
)

// PitBoss is responsible for dispatching clients to the dealer of their room
type PitBoss struct {
	store   model.Store
	retries int

	dealers    map[string]*Dealer
	connect    chan *Client
	disconnect chan *Client
	broadcast  chan *model.Room
}

// NewPitBoss returns a new dispatch object
// retries bounds how often a conflicting room update is retried
func NewPitBoss(store model.Store, retries int) *PitBoss {
	return &PitBoss{
		store:      store,
		retries:    retries,
		dealers:    make(map[string]*Dealer),
		connect:    make(chan *Client, 256),
		disconnect: make(chan *Client, 256),
		broadcast:  make(chan *model.Room, 256),
	}
}

// StartShift starts the PitBoss run loop
func (p *PitBoss) StartShift() {
	go p.runLoop()
}

func (p *PitBoss) runLoop() {
	for {
		select {
		case client := <-p.connect:
			logrus.WithField("client", client.String()).Debug("client connected")
			dealer, found := p.dealers[client.roomID]
			if !found {
				dealer = NewDealer(p, client.roomID)
				dealer.StartShift()
				p.dealers[client.roomID] = dealer
			}

			dealer.AddClient(client)
		case client := <-p.disconnect:
			logrus.WithField("client", client.String()).Debug("client disconnected")
			dealer, found := p.dealers[client.roomID]
			if !found {
				logrus.WithField("roomID", client.roomID).WithField("type", "exception").Error("room not found")
				continue
			}

			if dealer.RemoveClient(client) {
				dealer.EndShift()
				delete(p.dealers, client.roomID)
			}
		case r := <-p.broadcast:
			if dealer, found := p.dealers[r.ID]; found {
				dealer.SendRoomState(r)
			}
		}
	}
}

// ClientConnected is called when a client connects to the server
func (p *PitBoss) ClientConnected(client *Client) {
	p.connect <- client
}

// ClientDisconnected is called when a client disconnects from the server
func (p *PitBoss) ClientDisconnected(client *Client) {
	p.disconnect <- client
}

// RoomChanged sends every client watching the room their own view of it
func (p *PitBoss) RoomChanged(r *model.Room) {
	p.broadcast <- r
}
