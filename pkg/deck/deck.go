package deck

import (
	"crypto/sha1" // nolint:gosec
	"encoding/hex"
	"errors"
	"pokertable-server/internal/rng"
)

// ErrEndOfDeck is an error when Draw() is attempted and there are no more cards
var ErrEndOfDeck = errors.New("end of deck reached")

// Deck is the ordered list of undealt cards
// The next card to be drawn is at index 0
type Deck []Card

// New returns a new deck of cards.
// Important! this deck is unshuffled. You must call the Shuffle() method to shuffle the cards
func New() Deck {
	cards := make(Deck, 0, 52)
	for _, suit := range Suits {
		for _, rank := range Ranks {
			cards = append(cards, Card{
				Rank: rank,
				Suit: suit,
			})
		}
	}

	return cards
}

// Shuffle will shuffle the deck in place using the generator
func (d Deck) Shuffle(gen rng.Generator) {
	for j := len(d) - 1; j > 0; j-- {
		i := gen.Intn(j + 1)

		d[i], d[j] = d[j], d[i]
	}
}

// HashCode returns a SHA1 hash code of the deck.
func (d Deck) HashCode() string {
	hash := sha1.New() // nolint:gosec
	for _, card := range d {
		_, _ = hash.Write([]byte(card.String()))
	}

	return hex.EncodeToString(hash.Sum(nil))
}

// Draw will draw the next card
// If there are no more cards, an ErrEndOfDeck is returned along with a zero card.
func (d *Deck) Draw() (Card, error) {
	if len(*d) == 0 {
		return Card{}, ErrEndOfDeck
	}

	card := (*d)[0]
	*d = (*d)[1:]

	return card, nil
}

// CanDraw returns true if there are {want} cards left in the deck
func (d Deck) CanDraw(want int) bool {
	return len(d) >= want
}
