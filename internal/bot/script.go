package bot

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/lox/holdem-engine/internal/game"
)

// ErrScriptExhausted is returned once every scripted step has been used and no
// fallback is configured.
var ErrScriptExhausted = errors.New("script exhausted")

// Step is one scripted decision. Amount is only read for bets and raises;
// calls and all-ins always use the amount the options require.
type Step struct {
	Type   game.ActionType
	Amount int
}

func (s Step) String() string {
	if s.Type == game.Bet || s.Type == game.Raise {
		return fmt.Sprintf("%s:%d", s.Type, s.Amount)
	}
	return s.Type.String()
}

// Script replays a fixed sequence of decisions in order, whichever seat asks.
type Script struct {
	steps []Step
	next  int
	then  game.ActionSource
}

// NewScript creates a script over steps.
func NewScript(steps ...Step) *Script {
	return &Script{steps: steps}
}

// Then sets the source used after the last step.
func (s *Script) Then(src game.ActionSource) *Script {
	s.then = src
	return s
}

// Remaining returns the number of unused steps.
func (s *Script) Remaining() int { return len(s.steps) - s.next }

// NextAction implements game.ActionSource.
func (s *Script) NextAction(req game.ActionRequest) (game.Action, error) {
	if s.next >= len(s.steps) {
		if s.then != nil {
			return s.then.NextAction(req)
		}
		return game.Action{}, fmt.Errorf("%w after %d steps", ErrScriptExhausted, len(s.steps))
	}
	step := s.steps[s.next]
	s.next++

	a := game.Action{Seat: req.Seat, Type: step.Type}
	switch step.Type {
	case game.Call:
		a.Amount = req.Options.CallAmount
	case game.AllIn:
		a.Amount = req.Options.AllInAmount
	case game.Bet, game.Raise:
		a.Amount = step.Amount
	}
	return a, nil
}

// ParseSteps parses a comma separated script such as "call,raise:40,fold".
func ParseSteps(s string) ([]Step, error) {
	var steps []Step
	for field := range strings.SplitSeq(s, ",") {
		field = strings.TrimSpace(field)
		if field == "" {
			continue
		}
		name, amount, hasAmount := strings.Cut(field, ":")
		t, err := game.ParseActionType(name)
		if err != nil {
			return nil, err
		}
		step := Step{Type: t}
		if t == game.Bet || t == game.Raise {
			if !hasAmount {
				return nil, fmt.Errorf("%s needs an amount, e.g. %s:20", t, t)
			}
			step.Amount, err = strconv.Atoi(amount)
			if err != nil {
				return nil, fmt.Errorf("invalid amount in %q: %w", field, err)
			}
		} else if hasAmount {
			return nil, fmt.Errorf("%s takes no amount: %q", t, field)
		}
		steps = append(steps, step)
	}
	return steps, nil
}
