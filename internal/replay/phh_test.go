package replay

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/holdem-engine/internal/deck"
	"github.com/lox/holdem-engine/internal/game"
	"github.com/lox/holdem-engine/internal/phh"
)

func mustCards(t *testing.T, s string) []deck.Card {
	t.Helper()
	cards, err := deck.ParseCards(s)
	require.NoError(t, err)
	return cards
}

func TestHandPHH(t *testing.T) {
	t.Parallel()

	// Button 0, small blind 1, big blind 2. Seat 0 raises, seat 1 shoves,
	// seat 2 calls, seat 0 folds and the board runs out.
	l := Log{
		Version: Version,
		ID:      "01jnaqh6c0e008000000000000",
		Rules:   Rules{StartingStack: 100, SmallBlind: 5, BigBlind: 10},
		Seats: []Seat{
			{Seat: 0, Name: "You", Human: true, Stack: 100},
			{Seat: 1, Name: "Bot-1", Stack: 100},
			{Seat: 2, Name: "Bot-2", Stack: 100},
		},
		Hands: []Hand{{
			Number:         4,
			Button:         0,
			SmallBlind:     1,
			BigBlind:       2,
			Blinds:         map[int]int{1: 5, 2: 10},
			StartingStacks: map[int]int{0: 100, 1: 100, 2: 100},
			Draws: []Draw{
				{Tag: holeTag(1, 1), Cards: mustCards(t, "Ah")},
				{Tag: holeTag(2, 1), Cards: mustCards(t, "7c")},
				{Tag: holeTag(0, 1), Cards: mustCards(t, "Qs")},
				{Tag: holeTag(1, 2), Cards: mustCards(t, "Kh")},
				{Tag: holeTag(2, 2), Cards: mustCards(t, "7d")},
				{Tag: holeTag(0, 2), Cards: mustCards(t, "Js")},
				{Tag: "burn:flop", Cards: mustCards(t, "2c")},
				{Tag: "flop", Cards: mustCards(t, "Ts 9s 3h")},
				{Tag: "burn:turn", Cards: mustCards(t, "4c")},
				{Tag: "turn", Cards: mustCards(t, "5d")},
				{Tag: "burn:river", Cards: mustCards(t, "6c")},
				{Tag: "river", Cards: mustCards(t, "8h")},
			},
			Actions: []Action{
				{Street: game.Preflop, Action: game.Action{Seat: 0, Type: game.Raise, Amount: 30}},
				{Street: game.Preflop, Action: game.Action{Seat: 1, Type: game.AllIn, Amount: 95}},
				{Street: game.Preflop, Action: game.Action{Seat: 2, Type: game.AllIn, Amount: 90}},
				{Street: game.Preflop, Action: game.Action{Seat: 0, Type: game.Fold}},
			},
			FinalStacks: map[int]int{0: 70, 1: 230, 2: 0},
			Awards:      map[int]int{1: 230},
			Started:     time.Date(2025, time.March, 1, 12, 0, 30, 0, time.UTC),
		}},
	}

	hands := l.PHH()
	require.Len(t, hands, 1)
	hh := hands[0]

	assert.Equal(t, phh.Variant, hh.Variant)
	assert.Equal(t, l.ID+"-4", hh.HandID)
	assert.Equal(t, []string{"Bot-1", "Bot-2", "You"}, hh.Players)
	assert.Equal(t, []int{2, 3, 1}, hh.Seats)
	assert.Equal(t, []int{5, 10, 0}, hh.BlindsOrStraddles)
	assert.Equal(t, []int{0, 0, 0}, hh.Antes)
	assert.Equal(t, []int{100, 100, 100}, hh.StartingStacks)
	assert.Equal(t, []int{230, 0, 70}, hh.FinishingStacks)
	assert.Equal(t, []int{230, 0, 0}, hh.Winnings)
	assert.Equal(t, 10, hh.MinBet)
	assert.Equal(t, "12:00:30", hh.Time)
	assert.Equal(t, 2025, hh.Year)

	assert.Equal(t, []string{
		"d dh p1 AhKh",
		"d dh p2 7c7d",
		"d dh p3 QsJs",
		"p3 cbr 30",
		"p1 cbr 100",
		"p2 cc",
		"p3 f",
		"d db Ts9s3h",
		"d db 5d",
		"d db 8h",
		"p1 sm AhKh",
		"p2 sm 7c7d",
	}, hh.Actions)
}

func TestHandPHHUncontested(t *testing.T) {
	t.Parallel()

	l := Log{
		ID:    "x",
		Rules: Rules{BigBlind: 2},
		Hands: []Hand{{
			Number:         1,
			SmallBlind:     3,
			BigBlind:       5,
			Blinds:         map[int]int{3: 1, 5: 2},
			StartingStacks: map[int]int{3: 50, 5: 50},
			Actions: []Action{
				{Street: game.Preflop, Action: game.Action{Seat: 3, Type: game.Fold}},
			},
		}},
	}

	hh := l.PHH()[0]
	assert.Equal(t, []string{"seat-3", "seat-5"}, hh.Players)
	assert.Nil(t, hh.FinishingStacks)
	assert.Empty(t, hh.Time)
	assert.Equal(t, []string{"p1 f"}, hh.Actions)
}
