package bot

import (
	"io"

	"github.com/charmbracelet/log"

	"github.com/lox/holdem-engine/internal/game"
	"github.com/lox/holdem-engine/internal/randutil"
)

// ManiacBot is an extremely aggressive bot that shoves frequently
type ManiacBot struct {
	rng    randutil.Source
	logger *log.Logger
}

// NewManiacBot creates a new ManiacBot instance
func NewManiacBot(rng randutil.Source, logger *log.Logger) *ManiacBot {
	if rng == nil {
		panic("rng is required for ManiacBot")
	}
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &ManiacBot{rng: rng, logger: logger.WithPrefix("maniac")}
}

// NextAction bets or shoves most of the time, calls often when facing a bet
// and folds the rest.
func (m *ManiacBot) NextAction(req game.ActionRequest) (game.Action, error) {
	opts := req.Options
	if len(opts.Actions) == 0 {
		return game.Action{}, ErrNoLegalAction
	}

	a, reason := m.decide(req)
	m.logger.Debug("Decision", "hand", req.HandNumber, "seat", req.Seat, "action", a.Type, "amount", a.Amount, "reason", reason)
	return a, nil
}

func (m *ManiacBot) decide(req game.ActionRequest) (game.Action, string) {
	opts := req.Options
	short := opts.MaxCommit <= 20*opts.MinBet

	if opts.Can(game.Check) {
		if m.rng.Float64() < 0.85 {
			if short || m.rng.Float64() < 0.3 {
				if opts.Can(game.AllIn) {
					return allIn(req), "shove"
				}
			}
			// Three quarters of the stack.
			if a, ok := wager(req, opts.MaxCommit*3/4); ok {
				return a, "big bet"
			}
		}
		return check(req), "check"
	}

	roll := m.rng.Float64()
	if roll < 0.4 && opts.Can(game.AllIn) {
		return allIn(req), "shove over bet"
	}
	if roll < 0.8 && opts.Can(game.Call) {
		return call(req), "call"
	}
	return fold(req), "fold"
}
