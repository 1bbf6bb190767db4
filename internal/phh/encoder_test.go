package phh_test

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/holdem-engine/internal/deck"
	"github.com/lox/holdem-engine/internal/phh"
)

func cards(t *testing.T, ss ...string) []deck.Card {
	t.Helper()
	out := make([]deck.Card, 0, len(ss))
	for _, s := range ss {
		c, err := deck.ParseCard(s)
		require.NoError(t, err)
		out = append(out, c)
	}
	return out
}

func TestFormatters(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "p1", phh.Player(0))
	assert.Equal(t, "p3 f", phh.Fold(2))
	assert.Equal(t, "p2 cc", phh.CheckOrCall(1))
	assert.Equal(t, "p4 cbr 120", phh.CompleteBetOrRaiseTo(3, 120))
	assert.Equal(t, "d dh p1 AhKh", phh.DealHole(0, cards(t, "Ah", "Kh")))
	assert.Equal(t, "d db Ts9s2c", phh.DealBoard(cards(t, "Ts", "9s", "2c")))
	assert.Equal(t, "p2 sm QdQc", phh.ShowCards(1, cards(t, "Qd", "Qc")))
}

func TestEncodeHandHistory(t *testing.T) {
	t.Parallel()

	hand := &phh.HandHistory{
		Variant:           phh.Variant,
		Table:             "default",
		SeatCount:         3,
		Seats:             []int{1, 2, 3},
		Antes:             []int{0, 0, 0},
		BlindsOrStraddles: []int{1, 2, 0},
		MinBet:            2,
		StartingStacks:    []int{200, 200, 200},
		FinishingStacks:   []int{200, 200, 200},
		Winnings:          []int{0, 0, 0},
		Actions: []string{
			"d dh p1 AhKh",
			"d dh p2 7c2d",
			"d dh p3 QsJs",
			"p1 cbr 6",
			"p2 f",
			"p3 cc",
		},
		Players: []string{"alice-bot", "bob-bot", "charlie-bot"},
		HandID:  "hand-00042",
	}
	hand.SetTimestamp(time.Date(2025, time.November, 14, 15, 22, 0, 0, time.UTC))

	var buf bytes.Buffer
	require.NoError(t, phh.Encode(&buf, hand))

	want := "" +
		"variant = \"NT\"\n" +
		"table = \"default\"\n" +
		"seat_count = 3\n" +
		"seats = [1, 2, 3]\n" +
		"antes = [0, 0, 0]\n" +
		"blinds_or_straddles = [1, 2, 0]\n" +
		"min_bet = 2\n" +
		"starting_stacks = [200, 200, 200]\n" +
		"finishing_stacks = [200, 200, 200]\n" +
		"winnings = [0, 0, 0]\n" +
		"actions = [\"d dh p1 AhKh\", \"d dh p2 7c2d\", \"d dh p3 QsJs\", \"p1 cbr 6\", \"p2 f\", \"p3 cc\"]\n" +
		"players = [\"alice-bot\", \"bob-bot\", \"charlie-bot\"]\n" +
		"hand = \"hand-00042\"\n" +
		"time = \"15:22:00\"\n" +
		"time_zone = \"UTC\"\n" +
		"day = 14\n" +
		"month = 11\n" +
		"year = 2025\n"
	assert.Equal(t, want, buf.String())
}

func TestEncodeNil(t *testing.T) {
	t.Parallel()

	_, err := phh.EncodeToBytes(nil)
	require.Error(t, err)
}

func TestEncodeAll(t *testing.T) {
	t.Parallel()

	hands := []*phh.HandHistory{
		{Variant: phh.Variant, Antes: []int{0, 0}, BlindsOrStraddles: []int{5, 10}, MinBet: 10, StartingStacks: []int{100, 100}, Actions: []string{"p1 f"}, HandID: "a"},
		{Variant: phh.Variant, Antes: []int{0, 0}, BlindsOrStraddles: []int{5, 10}, MinBet: 10, StartingStacks: []int{95, 105}, Actions: []string{"p1 cc"}, HandID: "b"},
	}

	var buf bytes.Buffer
	require.NoError(t, phh.EncodeAll(&buf, hands))

	out := buf.String()
	assert.Contains(t, out, "[1]\nvariant = \"NT\"\n")
	assert.Contains(t, out, "\n[2]\nvariant = \"NT\"\n")
	assert.Contains(t, out, "hand = \"b\"\n")
}
