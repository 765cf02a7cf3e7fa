package holdem

import (
	"fmt"

	"pokertable-server/pkg/codec"
	"pokertable-server/pkg/deck"
)

// explicitFields are written by Serialize itself rather than by the generic encoder
// Players are written once in seats, and card lists are never null
var explicitFields = []string{"seats", "pots", "winners", "communityCards", "deck"}

// Serialize converts the table into a JSON tree suitable for storage
// Seats hold the full players; pots and winners only hold reference stubs, which must point at a
// seated player
func (t *Table) Serialize() (codec.Object, error) {
	obj, err := codec.SerializeObject(t, explicitFields...)
	if err != nil {
		return nil, err
	}

	seated := make(map[*Player]bool, len(t.Seats))
	ids := make(map[string]bool, len(t.Seats))
	seats := make([]interface{}, len(t.Seats))
	for i, p := range t.Seats {
		if p == nil {
			continue
		}

		if ids[p.ID] {
			return nil, &codec.SerializationError{Err: fmt.Errorf("seats[%d]: duplicate player %q", i, p.ID)}
		}

		ids[p.ID] = true
		seated[p] = true

		if seats[i], err = p.Serialize(); err != nil {
			return nil, err
		}
	}
	obj["seats"] = seats

	if obj["communityCards"], err = deck.SerializeCards(t.CommunityCards); err != nil {
		return nil, err
	}

	if obj["deck"], err = deck.SerializeCards(t.Deck); err != nil {
		return nil, err
	}

	pots := make([]interface{}, len(t.Pots))
	for i, pot := range t.Pots {
		if pot == nil {
			return nil, &codec.SerializationError{Err: fmt.Errorf("pots[%d]: pot is nil", i)}
		}

		if err := checkSeated(fmt.Sprintf("pots[%d].eligiblePlayers", i), pot.EligiblePlayers, seated); err != nil {
			return nil, err
		}

		if err := checkSeated(fmt.Sprintf("pots[%d].winners", i), pot.Winners, seated); err != nil {
			return nil, err
		}

		if pots[i], err = pot.Serialize(); err != nil {
			return nil, err
		}
	}
	obj["pots"] = pots

	if t.Winners != nil {
		if err := checkSeated("winners", t.Winners, seated); err != nil {
			return nil, err
		}

		if obj["winners"], err = serializeReferences(t.Winners); err != nil {
			return nil, err
		}
	}

	return obj, nil
}

// checkSeated fails if a referenced player is not the *Player in one of the seats
// Such a reference could not be resolved when the table is loaded
func checkSeated(field string, players []*Player, seated map[*Player]bool) error {
	for i, p := range players {
		if p == nil {
			return &codec.SerializationError{Err: fmt.Errorf("%s[%d]: player is nil", field, i)}
		}

		if !seated[p] {
			return &codec.SerializationError{Err: fmt.Errorf("%s[%d]: player %q is not seated", field, i, p.ID)}
		}
	}

	return nil
}

// DeserializeTable rebuilds a table from the output of Serialize
// Seats are built first so that pots and winners resolve to the seated *Player
func DeserializeTable(v interface{}) (*Table, error) {
	obj, err := codec.AsObject(v)
	if err != nil {
		return nil, err
	}

	buyIn, err := codec.Field(obj, "buyIn", codec.PositiveInt)
	if err != nil {
		return nil, err
	}

	smallBlind, err := codec.Field(obj, "smallBlind", codec.PositiveInt)
	if err != nil {
		return nil, err
	}

	bigBlind, err := codec.Field(obj, "bigBlind", codec.PositiveInt)
	if err != nil {
		return nil, err
	}

	t := NewTable(buyIn, smallBlind, bigBlind)

	roster := make(Roster)
	seat := func(v interface{}) (*Player, error) {
		if v == nil {
			return nil, nil
		}

		p, err := DeserializePlayer(v, t)
		if err != nil {
			return nil, err
		}

		return p, roster.Add(p)
	}

	if t.Seats, err = codec.Field(obj, "seats", codec.MaxLength(MaxSeats, seat)); err != nil {
		return nil, err
	}

	if t.CommunityCards, err = codec.Field(obj, "communityCards", codec.MaxLength(MaxCommunityCards, deck.DeserializeCard)); err != nil {
		return nil, err
	}

	cards, err := codec.Field(obj, "deck", codec.Array(deck.DeserializeCard))
	if err != nil {
		return nil, err
	}
	t.Deck = cards

	pot := func(v interface{}) (*Pot, error) {
		return DeserializePot(v, roster)
	}

	if t.Pots, err = codec.Field(obj, "pots", codec.Array(pot)); err != nil {
		return nil, err
	}

	winners, err := codec.Field(obj, "winners", codec.Optional(codec.Array(roster.Resolve)))
	if err != nil {
		return nil, err
	}

	if winners != nil {
		t.Winners = *winners
	}

	position := codec.Optional(t.seatIndex)
	if t.DealerPosition, err = codec.Field(obj, "dealerPosition", position); err != nil {
		return nil, err
	}

	if t.SmallBlindPosition, err = codec.Field(obj, "smallBlindPosition", position); err != nil {
		return nil, err
	}

	if t.BigBlindPosition, err = codec.Field(obj, "bigBlindPosition", position); err != nil {
		return nil, err
	}

	if t.CurrentPosition, err = codec.Field(obj, "currentPosition", position); err != nil {
		return nil, err
	}

	if t.CurrentBet, err = codec.Field(obj, "currentBet", codec.Optional(codec.NonNegativeInt)); err != nil {
		return nil, err
	}

	if t.LastRaise, err = codec.Field(obj, "lastRaise", codec.Optional(codec.NonNegativeInt)); err != nil {
		return nil, err
	}

	if t.CurrentRound, err = codec.Field(obj, "currentRound", codec.Optional(deserializeRound)); err != nil {
		return nil, err
	}

	handNumber, err := codec.Field(obj, "handNumber", codec.Optional(codec.NonNegativeInt))
	if err != nil {
		return nil, err
	}

	if handNumber != nil {
		t.HandNumber = *handNumber
	}

	return t, nil
}

func (t *Table) seatIndex(v interface{}) (int, error) {
	i, err := codec.NonNegativeInt(v)
	if err != nil {
		return 0, err
	}

	if i >= len(t.Seats) {
		return 0, codec.Errorf("expected seat index < %d, got %d", len(t.Seats), i)
	}

	return i, nil
}

// deserializeRound matches every known round; an unknown value always fails
func deserializeRound(v interface{}) (Round, error) {
	s, err := codec.String(v)
	if err != nil {
		return "", err
	}

	switch r := Round(s); r {
	case RoundPreflop, RoundFlop, RoundTurn, RoundRiver:
		return r, nil
	default:
		return "", codec.Errorf("expected one of preflop, flop, turn, river, got %q", s)
	}
}
