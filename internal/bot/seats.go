package bot

import (
	"fmt"

	"github.com/charmbracelet/log"

	"github.com/lox/holdem-engine/internal/game"
	"github.com/lox/holdem-engine/internal/randutil"
)

// Mixed gives every bot seat a random strategy from Kinds.
const Mixed = "mixed"

// Seats routes each request to the source registered for the acting seat.
type Seats map[int]game.ActionSource

// NextAction implements game.ActionSource.
func (s Seats) NextAction(req game.ActionRequest) (game.Action, error) {
	src, ok := s[req.Seat]
	if !ok {
		return game.Action{}, fmt.Errorf("no bot at seat %d", req.Seat)
	}
	return src.NextAction(req)
}

// ForPlayers creates a bot of the given kind (or Mixed) for every seated
// player that is not human.
func ForPlayers(players []*game.Player, kind string, rng randutil.Source, logger *log.Logger) (Seats, error) {
	seats := make(Seats)
	for _, p := range players {
		if p.Human || p.Seat == game.NoSeat {
			continue
		}
		k := kind
		if k == Mixed {
			k = Kinds[rng.IntN(len(Kinds))]
		}
		src, err := New(k, rng, logger)
		if err != nil {
			return nil, err
		}
		seats[p.Seat] = src
	}
	return seats, nil
}
