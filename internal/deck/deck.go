package deck

import (
	"errors"
	"fmt"

	"github.com/lox/holdem-engine/internal/randutil"
)

// ErrEmpty is returned when drawing from a deck without enough cards.
var ErrEmpty = errors.New("deck is empty")

// Deck represents an ordered deck of playing cards. Cards are drawn from the top.
type Deck struct {
	cards []Card
}

// New creates a standard 52-card deck in a fixed, unshuffled order
func New() *Deck {
	return &Deck{cards: Standard52()}
}

// NewFromCards creates a deck with the given top-to-bottom order. Useful for
// stacking a deck in tests.
func NewFromCards(cards []Card) *Deck {
	d := &Deck{cards: make([]Card, len(cards))}
	copy(d.cards, cards)
	return d
}

// Standard52 returns the 52 cards of a standard deck, clubs first.
func Standard52() []Card {
	cards := make([]Card, 0, 52)
	for suit := Clubs; suit <= Spades; suit++ {
		for rank := Two; rank <= Ace; rank++ {
			cards = append(cards, NewCard(rank, suit))
		}
	}
	return cards
}

// Shuffle randomizes the order of cards in the deck (Fisher-Yates)
func (d *Deck) Shuffle(rng randutil.Source) {
	randutil.Shuffle(rng, len(d.cards), func(i, j int) {
		d.cards[i], d.cards[j] = d.cards[j], d.cards[i]
	})
}

// DrawOne removes and returns the top card from the deck
func (d *Deck) DrawOne() (Card, error) {
	if len(d.cards) == 0 {
		return Card{}, ErrEmpty
	}
	card := d.cards[0]
	d.cards = d.cards[1:]
	return card, nil
}

// Draw removes and returns the top n cards. Nothing is drawn if fewer than n remain.
func (d *Deck) Draw(n int) ([]Card, error) {
	if n <= 0 {
		return nil, nil
	}
	if n > len(d.cards) {
		return nil, fmt.Errorf("%w: %d remaining, cannot draw %d", ErrEmpty, len(d.cards), n)
	}
	cards := make([]Card, n)
	copy(cards, d.cards[:n])
	d.cards = d.cards[n:]
	return cards, nil
}

// Count returns the number of cards left in the deck
func (d *Deck) Count() int {
	return len(d.cards)
}

// Cards returns a copy of the remaining cards, top first.
func (d *Deck) Cards() []Card {
	out := make([]Card, len(d.cards))
	copy(out, d.cards)
	return out
}
