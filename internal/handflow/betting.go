package handflow

import (
	"errors"
	"fmt"

	"github.com/lox/holdem-engine/internal/game"
)

var errNoActionSource = errors.New("no action source configured")

// onBetting runs a whole betting round for street. Legality and termination
// belong to game.BettingRound; this only feeds it actions.
func (m *Machine) onBetting(b *eventBatch, street game.Street, next State) Outcome {
	if out := m.requireHand(b); out != nil {
		return out
	}

	t := m.session.Table()
	t.Street = street

	active := t.Seats(game.IsActive)
	if len(active) == 0 {
		b.add(Info, fmt.Sprintf("Betting %s skipped: nobody can act", street), nil)
		return m.transition(b, next)
	}

	first, err := game.FirstToAct(t, street)
	if err != nil {
		return m.fail(b, err)
	}
	cfg := game.RoundConfig{
		FirstToAct:         first,
		BigBlind:           m.session.Rules().BigBlind,
		ReopenOnShortAllIn: m.session.Rules().ReopenOnShortAllIn,
	}
	if street == game.Preflop {
		cfg.StartingBets = m.hand.PostedBlinds
	}
	br := game.NewBettingRound(t, cfg)

	if len(active) == 1 && br.ToCall(active[0]) == 0 && !br.Finished() {
		b.add(Info, fmt.Sprintf("Betting %s skipped: nobody can act", street), nil)
		return m.transition(b, next)
	}

	for actions := 0; !br.Finished(); actions++ {
		if actions >= m.limits.MaxActionsPerRound {
			return m.abort(b, fmt.Sprintf("Exceeded maxActionsPerRound=%d at state=%s (possible deadlock)",
				m.limits.MaxActionsPerRound, m.state))
		}
		if m.source == nil {
			return m.fail(b, errNoActionSource)
		}

		seat, _ := br.NextToAct()
		req, err := game.NewActionRequest(t, br, m.hand.HandNumber, seat)
		if err != nil {
			return m.fail(b, err)
		}
		a, err := m.source.NextAction(req)
		if err != nil {
			return m.fail(b, fmt.Errorf("action source for seat %d: %w", seat, err))
		}
		if err := br.Apply(a); err != nil {
			return m.fail(b, err)
		}

		p := t.Player(seat)
		b.add(PlayerAction, fmt.Sprintf("%s %s", p.Name, describe(a)), ActionPayload{
			HandNumber: m.hand.HandNumber,
			Street:     street,
			Action:     a,
			Player:     p.Name,
			StackAfter: p.Stack,
			Pot:        t.Pot(),
		})
		m.logger.Debug("Action applied", "hand", m.hand.HandNumber, "street", street, "seat", seat, "action", a.Type, "amount", a.Amount)
		if m.observer != nil {
			m.observer.ActionApplied(street, a)
		}
	}

	b.add(Info, fmt.Sprintf("Betting %s finished: %s", street, br.EndReason()), br.EndReason())
	if br.EndReason() == game.OnlyOneUnfolded {
		return m.transition(b, Showdown)
	}
	return m.transition(b, next)
}

func describe(a game.Action) string {
	switch a.Type {
	case game.Fold:
		return "folds"
	case game.Check:
		return "checks"
	case game.Call:
		return fmt.Sprintf("calls %d", a.Amount)
	case game.Bet:
		return fmt.Sprintf("bets %d", a.Amount)
	case game.Raise:
		return fmt.Sprintf("raises %d", a.Amount)
	case game.AllIn:
		return fmt.Sprintf("is all-in for %d", a.Amount)
	default:
		return a.String()
	}
}
