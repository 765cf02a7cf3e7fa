package deck

import (
	"pokertable-server/pkg/codec"
	"strings"
)

var expectedRanks = func() string {
	names := make([]string, len(Ranks))
	for i, r := range Ranks {
		names[i] = r.String()
	}

	return strings.Join(names, ", ")
}()

// SerializeCard converts the card into {rank, suit}
func SerializeCard(c Card) (codec.Object, error) {
	return codec.SerializeObject(c)
}

// SerializeCards serializes each card in order
func SerializeCards(cards []Card) ([]interface{}, error) {
	out := make([]interface{}, len(cards))
	for i, c := range cards {
		obj, err := SerializeCard(c)
		if err != nil {
			return nil, err
		}

		out[i] = obj
	}

	return out, nil
}

// DeserializeCard validates and converts a {rank, suit} object
func DeserializeCard(v interface{}) (Card, error) {
	obj, err := codec.AsObject(v)
	if err != nil {
		return Card{}, err
	}

	rank, err := codec.Field(obj, "rank", deserializeRank)
	if err != nil {
		return Card{}, err
	}

	suit, err := codec.Field(obj, "suit", codec.Enum(Suits...))
	if err != nil {
		return Card{}, err
	}

	return Card{Rank: rank, Suit: suit}, nil
}

func deserializeRank(v interface{}) (Rank, error) {
	i, err := codec.Int(v)
	if err != nil {
		return 0, err
	}

	r := Rank(i)
	if !r.IsValid() {
		return 0, codec.Errorf("expected one of %s, got %d", expectedRanks, i)
	}

	return r, nil
}

// CardView is what a client sees for a card
// Visibility is decided by the owner of the card, so this is identical to the serialized form
type CardView = Card

// NewCardViews returns the views for the cards
// A nil slice becomes an empty one so that clients always receive an array
func NewCardViews(cards []Card) []CardView {
	views := make([]CardView, len(cards))
	copy(views, cards)
	return views
}
