// Package bot provides action sources for seats the host does not control.
// Every bot only chooses among the options the betting round offers; legality
// is always decided by the engine.
package bot

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/log"

	"github.com/lox/holdem-engine/internal/game"
	"github.com/lox/holdem-engine/internal/randutil"
)

// ErrNoLegalAction is returned when a request offers nothing a bot can pick.
var ErrNoLegalAction = errors.New("no legal action offered")

// Kinds lists the strategy names accepted by New.
var Kinds = []string{"call", "fold", "random", "maniac"}

// New creates a bot by strategy name.
func New(kind string, rng randutil.Source, logger *log.Logger) (game.ActionSource, error) {
	switch kind {
	case "call":
		return NewCallBot(logger), nil
	case "fold":
		return NewFoldBot(logger), nil
	case "random":
		return NewRandBot(rng, logger), nil
	case "maniac":
		return NewManiacBot(rng, logger), nil
	default:
		return nil, fmt.Errorf("unknown bot %q (want one of %v)", kind, Kinds)
	}
}

func fold(req game.ActionRequest) game.Action {
	return game.Action{Seat: req.Seat, Type: game.Fold}
}

func check(req game.ActionRequest) game.Action {
	return game.Action{Seat: req.Seat, Type: game.Check}
}

func call(req game.ActionRequest) game.Action {
	return game.Action{Seat: req.Seat, Type: game.Call, Amount: req.Options.CallAmount}
}

func allIn(req game.ActionRequest) game.Action {
	return game.Action{Seat: req.Seat, Type: game.AllIn, Amount: req.Options.AllInAmount}
}

// checkOrCall is the passive fallback shared by every bot.
func checkOrCall(req game.ActionRequest) game.Action {
	if req.Options.Can(game.Check) {
		return check(req)
	}
	if req.Options.Can(game.Call) {
		return call(req)
	}
	return fold(req)
}

// wager commits amount chips as a bet or raise, clamped to the legal range.
// Amounts that reach the whole stack become all-ins. The second result is
// false when no aggressive action is available.
func wager(req game.ActionRequest, amount int) (game.Action, bool) {
	opts := req.Options
	switch {
	case opts.Can(game.Bet) && opts.MaxCommit > opts.MinBet:
		amount = max(amount, opts.MinBet)
		if amount < opts.MaxCommit {
			return game.Action{Seat: req.Seat, Type: game.Bet, Amount: amount}, true
		}
	case opts.Can(game.Raise):
		amount = max(amount, opts.MinRaiseAmount)
		if amount < opts.MaxCommit {
			return game.Action{Seat: req.Seat, Type: game.Raise, Amount: amount}, true
		}
	}
	if opts.Can(game.AllIn) {
		return allIn(req), true
	}
	return game.Action{}, false
}

// Router sends the human seat to one source and every bot seat to another.
type Router struct {
	Human game.ActionSource
	Bots  game.ActionSource
}

// NextAction implements game.ActionSource.
func (r Router) NextAction(req game.ActionRequest) (game.Action, error) {
	src := r.Bots
	if req.Player.Human {
		src = r.Human
	}
	if src == nil {
		return game.Action{}, fmt.Errorf("no action source for seat %d (human=%t)", req.Seat, req.Player.Human)
	}
	return src.NextAction(req)
}
