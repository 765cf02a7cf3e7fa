package holdem

import "pokertable-server/pkg/deck"

// Player is a seated player
// A player is identified by its ID within a table, and the same *Player is shared by the seat,
// any pot the player is eligible for, and the winners lists
type Player struct {
	ID        string        `json:"id"`
	StackSize int           `json:"stackSize"`
	Bet       int           `json:"bet"`
	Raise     *int          `json:"raise,omitempty"`
	Folded    bool          `json:"folded"`
	ShowCards bool          `json:"showCards"`
	Left      bool          `json:"left"`
	HoleCards *[2]deck.Card `json:"holeCards,omitempty"`

	table *Table
}

// NewPlayer returns a new player seated at table
func NewPlayer(id string, stackSize int, table *Table) *Player {
	return &Player{
		ID:        id,
		StackSize: stackSize,
		table:     table,
	}
}

// Table returns the table the player belongs to
func (p *Player) Table() *Table {
	return p.table
}

// IsActive returns true if the player can take part in the next hand
func (p *Player) IsActive() bool {
	return !p.Left && p.StackSize > 0
}
