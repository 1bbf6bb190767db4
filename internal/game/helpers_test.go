package game

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

// newTestTable seats one player per entry of stacks on a 9-seat table.
func newTestTable(t *testing.T, stacks map[int]int) *Table {
	t.Helper()
	tbl := NewTable(9)
	for seat, stack := range stacks {
		p := NewPlayer(fmt.Sprintf("P%d", seat), fmt.Sprintf("Player %d", seat), false, stack)
		require.NoError(t, tbl.Sit(seat, p))
	}
	return tbl
}

func uniformStacks(stack int, seats ...int) map[int]int {
	out := make(map[int]int, len(seats))
	for _, s := range seats {
		out[s] = stack
	}
	return out
}

// fixedSource replays a scripted sequence of integers; each value is reduced
// modulo n. Float64 always returns 0.
type fixedSource struct {
	ints []int
	pos  int
}

func (f *fixedSource) IntN(n int) int {
	if len(f.ints) == 0 {
		return 0
	}
	v := f.ints[f.pos%len(f.ints)]
	f.pos++
	return v % n
}

func (f *fixedSource) Float64() float64 { return 0 }

func act(t *testing.T, br *BettingRound, seat int, typ ActionType, amount int) {
	t.Helper()
	require.NoError(t, br.Apply(Action{Seat: seat, Type: typ, Amount: amount}), "seat %d %s %d", seat, typ, amount)
}

func totalStacks(tbl *Table) int {
	total := 0
	for _, seat := range tbl.Seats(func(*Player) bool { return true }) {
		total += tbl.Player(seat).Stack
	}
	return total
}
