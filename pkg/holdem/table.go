package holdem

import (
	"pokertable-server/pkg/deck"
)

// MaxSeats is the most seats a table can have
const MaxSeats = 10

// MaxCommunityCards is the number of community cards dealt by the river
const MaxCommunityCards = 5

// Table is the live state of a room
// The rules engine mutates the table; this package persists and projects it
type Table struct {
	BuyIn      int `json:"buyIn"`
	SmallBlind int `json:"smallBlind"`
	BigBlind   int `json:"bigBlind"`

	// Seats has a fixed length, a nil entry is an empty seat
	Seats          []*Player   `json:"seats"`
	CommunityCards []deck.Card `json:"communityCards"`
	Deck           deck.Deck   `json:"deck"`

	// Pots[0] is the main pot, everything else is a side pot
	Pots []*Pot `json:"pots"`

	DealerPosition     *int `json:"dealerPosition,omitempty"`
	SmallBlindPosition *int `json:"smallBlindPosition,omitempty"`
	BigBlindPosition   *int `json:"bigBlindPosition,omitempty"`
	CurrentPosition    *int `json:"currentPosition,omitempty"`

	CurrentRound *Round `json:"currentRound,omitempty"`
	CurrentBet   *int   `json:"currentBet,omitempty"`
	LastRaise    *int   `json:"lastRaise,omitempty"`
	HandNumber   int    `json:"handNumber"`

	Winners []*Player `json:"winners,omitempty"`
}

// NewTable returns an empty table with MaxSeats seats
func NewTable(buyIn, smallBlind, bigBlind int) *Table {
	return &Table{
		BuyIn:          buyIn,
		SmallBlind:     smallBlind,
		BigBlind:       bigBlind,
		Seats:          make([]*Player, MaxSeats),
		CommunityCards: []deck.Card{},
		Deck:           deck.Deck{},
		Pots:           []*Pot{},
	}
}

// PlayerByID returns the seat index and player with the ID
// If the player is not seated, -1 and nil are returned
func (t *Table) PlayerByID(id string) (int, *Player) {
	for i, p := range t.Seats {
		if p != nil && p.ID == id {
			return i, p
		}
	}

	return -1, nil
}

// PlayerIDs returns the IDs of the seated players in seat order
func (t *Table) PlayerIDs() []string {
	ids := make([]string, 0, len(t.Seats))
	for _, p := range t.Seats {
		if p != nil {
			ids = append(ids, p.ID)
		}
	}

	return ids
}

// ActivePlayers returns how many seated players can take part in a hand
func (t *Table) ActivePlayers() int {
	n := 0
	for _, p := range t.Seats {
		if p != nil && p.IsActive() {
			n++
		}
	}

	return n
}

// HasEmptySeat returns true if a player can sit down
func (t *Table) HasEmptySeat() bool {
	for _, p := range t.Seats {
		if p == nil {
			return true
		}
	}

	return false
}

// IsRoundOpen returns true while a hand is being played
func (t *Table) IsRoundOpen() bool {
	return t.CurrentRound != nil
}

// Sit seats the player in the first empty seat with a stack of the table's buy-in
// A player who left but still holds their seat takes it back with the same stack
func (t *Table) Sit(id string) (*Player, error) {
	if _, p := t.PlayerByID(id); p != nil {
		if !p.Left {
			return nil, ErrAlreadySeated
		}

		p.Left = false
		return p, nil
	}

	for i, p := range t.Seats {
		if p == nil {
			player := NewPlayer(id, t.BuyIn, t)
			t.Seats[i] = player
			return player, nil
		}
	}

	return nil, ErrNoAvailableSeats
}

// Leave removes the player from the table
// During a hand, or while a pot still refers to the player, the seat is kept and marked as left
func (t *Table) Leave(id string) error {
	seat, p := t.PlayerByID(id)
	if p == nil {
		return ErrNotSeated
	}

	if t.IsRoundOpen() || t.isReferenced(p) {
		p.Left = true
		if t.IsRoundOpen() {
			p.Folded = true
		}
		return nil
	}

	t.Seats[seat] = nil
	return nil
}

func (t *Table) isReferenced(p *Player) bool {
	for _, pot := range t.Pots {
		if pot.references(p) {
			return true
		}
	}

	for _, winner := range t.Winners {
		if winner == p {
			return true
		}
	}

	return false
}

// LegalActions returns what the player at the current position can do
// The result is nil outside of a betting round
func (t *Table) LegalActions() []Action {
	if !t.IsRoundOpen() || t.CurrentPosition == nil {
		return nil
	}

	pos := *t.CurrentPosition
	if pos < 0 || pos >= len(t.Seats) {
		return nil
	}

	turn := t.Seats[pos]
	if turn == nil || turn.Folded || turn.Left {
		return nil
	}

	currentBet := 0
	if t.CurrentBet != nil {
		currentBet = *t.CurrentBet
	}

	actions := make([]Action, 0, 3)
	if currentBet == turn.Bet {
		actions = append(actions, ActionCheck)
	} else if turn.Bet < currentBet {
		actions = append(actions, ActionCall)
	}

	if currentBet == 0 {
		actions = append(actions, ActionBet)
	} else if turn.StackSize+turn.Bet > currentBet {
		actions = append(actions, ActionRaise)
	}

	return append(actions, ActionFold)
}

// ActionsForPlayer returns every action the player can take right now
// This is the table's legal actions when it's the player's turn, plus the option to deal when the
// player is the dealer, at least two active players are seated, and no round is open
func (t *Table) ActionsForPlayer(id string) []Action {
	seat, p := t.PlayerByID(id)
	if p == nil {
		return nil
	}

	actions := make([]Action, 0)
	if t.CurrentPosition != nil && *t.CurrentPosition == seat {
		actions = append(actions, t.LegalActions()...)
	}

	if t.canDeal(seat) {
		actions = append(actions, ActionDeal)
	}

	return actions
}

func (t *Table) canDeal(seat int) bool {
	return t.DealerPosition != nil &&
		*t.DealerPosition == seat &&
		!t.IsRoundOpen() &&
		t.ActivePlayers() >= 2
}

// CheckAction returns an error if the player cannot perform the action
func (t *Table) CheckAction(id string, action Action) error {
	seat, p := t.PlayerByID(id)
	if p == nil {
		return ErrNotSeated
	}

	for _, legal := range t.ActionsForPlayer(id) {
		if legal == action {
			return nil
		}
	}

	if action != ActionDeal && (t.CurrentPosition == nil || *t.CurrentPosition != seat) {
		return ErrOutOfTurn
	}

	return ErrIllegalAction
}
