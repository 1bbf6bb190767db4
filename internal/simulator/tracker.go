package simulator

import (
	"maps"
	"slices"

	"github.com/lox/holdem-engine/internal/game"
	"github.com/lox/holdem-engine/internal/handflow"
	"github.com/lox/holdem-engine/internal/statistics"
)

// tracker turns the event stream of one session into hand results for the
// hero seat.
type tracker struct {
	seed     int64
	heroSeat int
	bigBlind int
	stats    *statistics.Statistics

	current *statistics.HandResult // nil when the hero sits out the hand
}

func newTracker(seed int64, heroSeat, bigBlind int) *tracker {
	return &tracker{
		seed:     seed,
		heroSeat: heroSeat,
		bigBlind: max(bigBlind, 1),
		stats:    &statistics.Statistics{},
	}
}

func (t *tracker) visit(out handflow.Outcome) {
	for _, e := range out.StepEvents() {
		switch p := e.Payload.(type) {
		case game.HandStart:
			t.start(p)
		case handflow.BoardPayload:
			if t.current != nil {
				t.current.StreetReached = max(t.current.StreetReached, p.Street)
			}
		case handflow.ShowdownPayload:
			if _, shown := p.Hands[t.heroSeat]; t.current != nil && shown {
				t.current.WentToShowdown = true
				t.current.StreetReached = game.Showdown
			}
		case handflow.SummaryPayload:
			t.finish(p)
		}
	}
}

func (t *tracker) start(hs game.HandStart) {
	t.current = nil
	if _, dealt := hs.StartingStacks[t.heroSeat]; !dealt {
		return
	}
	t.current = &statistics.HandResult{
		Seed:          t.seed,
		HandNumber:    hs.HandNumber,
		Position:      position(hs, t.heroSeat),
		StreetReached: game.Preflop,
	}
}

func (t *tracker) finish(summary handflow.SummaryPayload) {
	if t.current == nil {
		return
	}
	pot := 0
	for _, chips := range summary.Awards {
		pot += chips
	}
	t.current.NetBB = float64(summary.Net[t.heroSeat]) / float64(t.bigBlind)
	t.current.PotChips = pot
	t.current.PotBB = float64(pot) / float64(t.bigBlind)
	t.stats.Add(*t.current)
	t.current = nil
}

// position counts the dealt-in seats from the button clockwise to seat.
func position(hs game.HandStart, seat int) int {
	seats := slices.Sorted(maps.Keys(hs.StartingStacks))
	button := slices.Index(seats, hs.Button)
	target := slices.Index(seats, seat)
	if button < 0 || target < 0 {
		return -1
	}
	return (target - button + len(seats)) % len(seats)
}
