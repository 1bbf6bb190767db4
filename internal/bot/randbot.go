package bot

import (
	"io"

	"github.com/charmbracelet/log"

	"github.com/lox/holdem-engine/internal/game"
	"github.com/lox/holdem-engine/internal/randutil"
)

// RandBot is a simple bot that makes uniform random legal actions
type RandBot struct {
	rng    randutil.Source
	logger *log.Logger
}

// NewRandBot creates a new RandBot instance
func NewRandBot(rng randutil.Source, logger *log.Logger) *RandBot {
	if rng == nil {
		panic("rng is required for RandBot")
	}
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &RandBot{rng: rng, logger: logger.WithPrefix("randbot")}
}

// NextAction picks one of the offered actions uniformly. Bet and raise sizes
// are drawn uniformly between the minimum and the whole stack.
func (r *RandBot) NextAction(req game.ActionRequest) (game.Action, error) {
	opts := req.Options
	if len(opts.Actions) == 0 {
		return game.Action{}, ErrNoLegalAction
	}

	var a game.Action
	switch choice := opts.Actions[r.rng.IntN(len(opts.Actions))]; choice {
	case game.Fold:
		a = fold(req)
	case game.Check:
		a = check(req)
	case game.Call:
		a = call(req)
	case game.AllIn:
		a = allIn(req)
	case game.Bet:
		a, _ = wager(req, r.between(opts.MinBet, opts.MaxCommit))
	case game.Raise:
		a, _ = wager(req, r.between(opts.MinRaiseAmount, opts.MaxCommit))
	default:
		a = checkOrCall(req)
	}

	r.logger.Debug("Decision", "hand", req.HandNumber, "seat", req.Seat, "action", a.Type, "amount", a.Amount)
	return a, nil
}

// between returns a uniform value in [lo, hi], or lo when the range is empty.
func (r *RandBot) between(lo, hi int) int {
	if hi <= lo {
		return lo
	}
	return lo + r.rng.IntN(hi-lo+1)
}
