package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func positions(tbl *Table, button, sb, bb int) *Table {
	tbl.Button, tbl.SmallBlind, tbl.BigBlind = button, sb, bb
	return tbl
}

func firstToAct(t *testing.T, tbl *Table, street Street) int {
	t.Helper()
	seat, err := FirstToAct(tbl, street)
	require.NoError(t, err)
	return seat
}

func TestFirstToActFourHanded(t *testing.T) {
	t.Parallel()
	tbl := positions(newTestTable(t, uniformStacks(100, 0, 2, 4, 6)), 0, 2, 4)

	assert.Equal(t, 6, firstToAct(t, tbl, Preflop), "under the gun is the first seat after the big blind")
	assert.Equal(t, 2, firstToAct(t, tbl, Flop))
	assert.Equal(t, 2, firstToAct(t, tbl, Turn))
	assert.Equal(t, 2, firstToAct(t, tbl, River))

	tbl.Player(6).Status = StatusFolded
	assert.Equal(t, 0, firstToAct(t, tbl, Preflop), "folded UTG is skipped")
}

func TestFirstToActThreeHanded(t *testing.T) {
	t.Parallel()
	tbl := positions(newTestTable(t, uniformStacks(100, 0, 2, 4)), 0, 2, 4)

	assert.Equal(t, 0, firstToAct(t, tbl, Preflop))
	assert.Equal(t, 2, firstToAct(t, tbl, Flop))
}

func TestFirstToActHeadsUp(t *testing.T) {
	t.Parallel()
	tbl := positions(newTestTable(t, uniformStacks(100, 1, 7)), 1, 1, 7)

	assert.Equal(t, 1, firstToAct(t, tbl, Preflop), "button is also small blind and acts first preflop")
	assert.Equal(t, 7, firstToAct(t, tbl, Flop), "big blind acts first postflop")
	assert.Equal(t, 7, firstToAct(t, tbl, River))
}

func TestFirstToActHeadsUpWithOutPlayer(t *testing.T) {
	t.Parallel()
	tbl := positions(newTestTable(t, uniformStacks(100, 1, 4, 7)), 1, 1, 7)
	tbl.Player(4).Status = StatusOut

	assert.Equal(t, 1, firstToAct(t, tbl, Preflop))
	assert.Equal(t, 7, firstToAct(t, tbl, Flop))
}

func TestFirstToActSkipsAllInAndFolded(t *testing.T) {
	t.Parallel()
	tbl := positions(newTestTable(t, uniformStacks(100, 0, 2, 4, 6)), 0, 2, 4)
	tbl.Player(2).Status = StatusAllIn
	tbl.Player(4).Status = StatusFolded

	assert.Equal(t, 6, firstToAct(t, tbl, Flop))
}

func TestFirstToActNeverReturnsInactiveSeat(t *testing.T) {
	t.Parallel()
	statuses := []Status{StatusActive, StatusFolded, StatusAllIn, StatusOut}
	streets := []Street{Preflop, Flop, Turn, River}
	seats := []int{0, 2, 3, 5, 8}

	// Exhaust every status combination over five occupied seats.
	combos := 1
	for range seats {
		combos *= len(statuses)
	}
	for c := range combos {
		tbl := positions(newTestTable(t, uniformStacks(100, seats...)), 0, 2, 3)
		n := c
		for _, seat := range seats {
			tbl.Player(seat).Status = statuses[n%len(statuses)]
			n /= len(statuses)
		}
		for _, street := range streets {
			seat, err := FirstToAct(tbl, street)
			if err != nil {
				require.ErrorIs(t, err, ErrNoActor)
				assert.Zero(t, tbl.Count(IsActive))
				continue
			}
			p := tbl.Player(seat)
			require.NotNil(t, p, "combo %d street %s returned empty seat %d", c, street, seat)
			assert.Equal(t, StatusActive, p.Status)
		}
	}
}

func TestFirstToActErrors(t *testing.T) {
	t.Parallel()
	tbl := newTestTable(t, uniformStacks(100, 0, 1, 2))

	_, err := FirstToAct(tbl, Preflop)
	require.ErrorIs(t, err, ErrButtonUnset)

	tbl.Button = 0
	_, err = FirstToAct(tbl, Preflop)
	require.ErrorIs(t, err, ErrBigBlindUnset)

	tbl.BigBlind = 2
	_, err = FirstToAct(tbl, Showdown)
	require.Error(t, err)

	for _, seat := range []int{0, 1, 2} {
		tbl.Player(seat).Status = StatusAllIn
	}
	_, err = FirstToAct(tbl, Flop)
	require.ErrorIs(t, err, ErrNoActor)
}
