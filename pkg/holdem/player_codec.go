package holdem

import (
	"pokertable-server/pkg/codec"
	"pokertable-server/pkg/deck"
)

// Serialize converts the player into a JSON tree
// The table back-reference is never included
func (p *Player) Serialize() (codec.Object, error) {
	return codec.SerializeObject(p)
}

// DeserializePlayer builds a new player owned by table
func DeserializePlayer(v interface{}, table *Table) (*Player, error) {
	obj, err := codec.AsObject(v)
	if err != nil {
		return nil, err
	}

	id, err := codec.Field(obj, "id", codec.NonEmptyString)
	if err != nil {
		return nil, err
	}

	stackSize, err := codec.Field(obj, "stackSize", codec.NonNegativeInt)
	if err != nil {
		return nil, err
	}

	p := NewPlayer(id, stackSize, table)

	if p.Bet, err = codec.Field(obj, "bet", codec.NonNegativeInt); err != nil {
		return nil, err
	}

	if p.Raise, err = codec.Field(obj, "raise", codec.Optional(codec.NonNegativeInt)); err != nil {
		return nil, err
	}

	if p.Folded, err = codec.Field(obj, "folded", codec.Bool); err != nil {
		return nil, err
	}

	if p.ShowCards, err = codec.Field(obj, "showCards", codec.Bool); err != nil {
		return nil, err
	}

	if p.Left, err = codec.Field(obj, "left", codec.Bool); err != nil {
		return nil, err
	}

	if p.HoleCards, err = codec.Field(obj, "holeCards", codec.Optional(deserializeHoleCards)); err != nil {
		return nil, err
	}

	return p, nil
}

func deserializeHoleCards(v interface{}) ([2]deck.Card, error) {
	cards, err := codec.Tuple(2, deck.DeserializeCard)(v)
	if err != nil {
		return [2]deck.Card{}, err
	}

	return [2]deck.Card{cards[0], cards[1]}, nil
}
