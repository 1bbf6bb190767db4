package simulator

import (
	"maps"
	"slices"

	"github.com/lox/holdem-engine/internal/game"
	"github.com/lox/holdem-engine/internal/handflow"
	"github.com/lox/holdem-engine/internal/randutil"
)

// RandomWinner resolves showdowns without evaluating hands: the pot is cut
// into layers at each contesting player's contribution and every layer goes
// to a random contesting player who paid into all of it. Chips above the top
// layer go to the top layer's winner.
func RandomWinner(rng randutil.Source) handflow.Resolver {
	return handflow.ResolverFunc(func(t *game.Table) (map[int]int, error) {
		contesting := t.Seats(game.Contesting)
		paid := t.Seats(func(p *game.Player) bool { return p.Contribution > 0 })

		levels := make(map[int]bool)
		for _, seat := range contesting {
			levels[t.Player(seat).Contribution] = true
		}

		awards := make(map[int]int)
		prev, winner, distributed := 0, game.NoSeat, 0
		for _, level := range slices.Sorted(maps.Keys(levels)) {
			layer := 0
			for _, seat := range paid {
				c := t.Player(seat).Contribution
				layer += min(c, level) - min(c, prev)
			}

			var eligible []int
			for _, seat := range contesting {
				if t.Player(seat).Contribution >= level {
					eligible = append(eligible, seat)
				}
			}
			winner = eligible[rng.IntN(len(eligible))]
			awards[winner] += layer
			distributed += layer
			prev = level
		}

		if rest := t.Pot() - distributed; rest > 0 && winner != game.NoSeat {
			awards[winner] += rest
		}
		return awards, nil
	})
}
