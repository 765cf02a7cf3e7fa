package holdem

import (
	"encoding/json"
	"pokertable-server/pkg/deck"
)

func intPtr(i int) *int {
	return &i
}

func roundPtr(r Round) *Round {
	return &r
}

func holeCards(s string) *[2]deck.Card {
	cards := deck.CardsFromString(s)
	return &[2]deck.Card{cards[0], cards[1]}
}

// flopTable returns a heads-up table on the flop
// A is the dealer holding 4s,5s; B holds 13h,13d; one pot of 40 both can win
func flopTable() *Table {
	t := NewTable(200, 5, 10)
	a, _ := t.Sit("A")
	b, _ := t.Sit("B")

	a.StackSize = 180
	a.HoleCards = holeCards("4s,5s")
	b.StackSize = 180
	b.HoleCards = holeCards("13h,13d")

	t.CommunityCards = deck.CardsFromString("2c,9d,14h")
	t.Deck = deck.Deck(deck.CardsFromString("3c,3d,7s"))
	t.Pots = []*Pot{{Amount: 40, EligiblePlayers: []*Player{a, b}}}
	t.DealerPosition = intPtr(0)
	t.SmallBlindPosition = intPtr(0)
	t.BigBlindPosition = intPtr(1)
	t.CurrentPosition = intPtr(1)
	t.CurrentRound = roundPtr(RoundFlop)
	t.CurrentBet = intPtr(0)
	t.HandNumber = 3

	return t
}

// showdownTable returns a finished three-way hand with a side pot
// C is all-in and won the main pot; A won the side pot; B folded; D left mid-hand
func showdownTable() *Table {
	t := NewTable(100, 1, 2)
	a, _ := t.Sit("A")
	b, _ := t.Sit("B")
	c, _ := t.Sit("C")
	d, _ := t.Sit("D")
	t.Seats[1], t.Seats[4] = nil, t.Seats[1]

	a.HoleCards = holeCards("14s,14h")
	a.ShowCards = true
	a.StackSize = 150
	b.HoleCards = holeCards("2c,7d")
	b.Folded = true
	b.StackSize = 90
	c.HoleCards = holeCards("10s,10h")
	c.ShowCards = true
	c.StackSize = 0
	c.Raise = intPtr(20)
	d.Left = true
	d.Folded = true
	d.StackSize = 40

	t.CommunityCards = deck.CardsFromString("10c,14d,2s,5h,9c")
	t.Pots = []*Pot{
		{Amount: 60, EligiblePlayers: []*Player{a, c}, Winners: []*Player{c}},
		{Amount: 30, EligiblePlayers: []*Player{a}, Winners: []*Player{a}},
	}
	t.Winners = []*Player{c, a}
	t.DealerPosition = intPtr(2)
	t.LastRaise = intPtr(20)
	t.HandNumber = 12

	return t
}

func roundTrip(t *Table) (*Table, error) {
	obj, err := t.Serialize()
	if err != nil {
		return nil, err
	}

	b, err := json.Marshal(obj)
	if err != nil {
		return nil, err
	}

	var v interface{}
	if err := json.Unmarshal(b, &v); err != nil {
		return nil, err
	}

	return DeserializeTable(v)
}

func decode(s string) interface{} {
	var v interface{}
	if err := json.Unmarshal([]byte(s), &v); err != nil {
		panic(err)
	}

	return v
}
