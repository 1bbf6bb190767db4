package phh

import (
	"strings"

	"github.com/lox/holdem-engine/internal/deck"
)

// Cards concatenates cards the way PHH writes them, e.g. "AhKh".
func Cards(cards []deck.Card) string {
	var b strings.Builder
	for _, c := range cards {
		b.WriteString(c.String())
	}
	return b.String()
}

// DealHole formats the hole cards dealt to the player at position i.
func DealHole(i int, cards []deck.Card) string {
	return "d dh " + Player(i) + " " + Cards(cards)
}

// DealBoard formats community cards.
func DealBoard(cards []deck.Card) string {
	return "d db " + Cards(cards)
}

// ShowCards formats a player revealing their hand at showdown.
func ShowCards(i int, cards []deck.Card) string {
	return Player(i) + " sm " + Cards(cards)
}
