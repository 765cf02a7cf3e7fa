package room

import (
	"fmt"

	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"
)

// Client is a client connected to the server via websockets
type Client struct {
	// Conn is the underlying websocket connection
	Conn *websocket.Conn

	// send is a channel for sending messages to the client
	send chan interface{}

	// Close is a channel for closing the client
	Close chan string

	// CloseError contains the reason why the connection was closed
	CloseError error

	dealer *Dealer

	// playerID is who is viewing the room, empty for spectators
	playerID string
	roomID   string
}

// NewClient returns a new client object
func NewClient(conn *websocket.Conn, playerID, roomID string) *Client {
	return &Client{
		send:     make(chan interface{}, 256),
		Close:    make(chan string),
		Conn:     conn,
		playerID: playerID,
		roomID:   roomID,
	}
}

// Send sends a message to the web client
// If the client is not keeping up, the message is dropped and false is returned
func (c *Client) Send(msg interface{}) bool {
	select {
	case c.send <- msg:
		return true
	default:
		logrus.WithField("client", c.String()).Warn("send buffer is full, dropping message")
		return false
	}
}

// SendChan returns a read-only channel
func (c *Client) SendChan() <-chan interface{} {
	return c.send
}

// PlayerID returns the viewer's player ID
func (c *Client) PlayerID() string {
	return c.playerID
}

// RoomID returns the ID of the room the client is watching
func (c *Client) RoomID() string {
	return c.roomID
}

// String returns a traceable identifier for the player and room
func (c *Client) String() string {
	playerID := c.playerID
	if playerID == "" {
		playerID = "spectator"
	}

	return fmt.Sprintf("%s:%s", playerID, c.roomID)
}

// ReceivedMessage is called when the server receives a message from a connected client
func (c *Client) ReceivedMessage(msg *PayloadIn) {
	if c.dealer == nil {
		logrus.WithField("msg", msg).Warn("received message, but dealer not found")
		return
	}

	c.dealer.ReceivedMessage(c, msg)
}
