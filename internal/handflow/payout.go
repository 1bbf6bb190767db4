package handflow

import (
	"fmt"
	"maps"
	"slices"

	"github.com/lox/holdem-engine/internal/deck"
	"github.com/lox/holdem-engine/internal/game"
)

func (m *Machine) onShowdown(b *eventBatch) Outcome {
	if out := m.requireHand(b); out != nil {
		return out
	}

	t := m.session.Table()
	t.Street = game.Showdown
	board := slices.Clone(t.Board)

	contesting := t.Seats(game.Contesting)
	if len(contesting) == 1 {
		p := t.Player(contesting[0])
		b.add(Info, fmt.Sprintf("Showdown: %s wins uncontested", p.Name), ShowdownPayload{
			Uncontested: true,
			Board:       board,
		})
		return m.transition(b, Payout)
	}

	hands := make(map[int][]deck.Card, len(contesting))
	for _, seat := range contesting {
		hands[seat] = slices.Clone(t.Player(seat).HoleCards)
	}
	b.add(Info, fmt.Sprintf("Showdown: %d players reveal", len(contesting)), ShowdownPayload{
		Board: board,
		Hands: hands,
	})
	return m.transition(b, Payout)
}

func (m *Machine) onPayout(b *eventBatch) Outcome {
	if out := m.requireHand(b); out != nil {
		return out
	}

	t := m.session.Table()
	awards, refunded, err := m.awards(t)
	if err != nil {
		return m.fail(b, err)
	}
	if refunded {
		b.add(Warning, "No showdown resolver: contributions refunded", nil)
	}
	if err := m.session.Settle(awards); err != nil {
		return m.fail(b, err)
	}
	m.awarded = awards

	for _, seat := range slices.Sorted(maps.Keys(awards)) {
		if awards[seat] == 0 {
			continue
		}
		b.add(Info, fmt.Sprintf("%s collects %d", t.Player(seat).Name, awards[seat]), nil)
	}
	b.add(Info, fmt.Sprintf("Payout: pot %d", t.Pot()), PayoutPayload{Awards: awards, Refunded: refunded})
	return m.transition(b, HandSummary)
}

// awards decides who receives the pot. Uncontested pots go to the last player
// standing; contested pots go to the resolver or are refunded without one.
func (m *Machine) awards(t *game.Table) (map[int]int, bool, error) {
	contesting := t.Seats(game.Contesting)
	if len(contesting) == 1 {
		return map[int]int{contesting[0]: t.Pot()}, false, nil
	}

	if m.resolver != nil {
		awards, err := m.resolver.Resolve(t)
		if err != nil {
			return nil, false, fmt.Errorf("resolve showdown: %w", err)
		}
		return awards, false, nil
	}

	refunds := make(map[int]int)
	for _, seat := range t.Seats(func(p *game.Player) bool { return p.Contribution > 0 }) {
		refunds[seat] = t.Player(seat).Contribution
	}
	return refunds, true, nil
}

func (m *Machine) onHandSummary(b *eventBatch) Outcome {
	if out := m.requireHand(b); out != nil {
		return out
	}

	t := m.session.Table()
	summary := SummaryPayload{
		HandNumber: m.hand.HandNumber,
		Stacks:     make(map[int]int, len(m.hand.StartingStacks)),
		Net:        make(map[int]int, len(m.hand.StartingStacks)),
		Awards:     maps.Clone(m.awarded),
	}
	for seat, start := range m.hand.StartingStacks {
		p := t.Player(seat)
		if p == nil {
			continue
		}
		summary.Stacks[seat] = p.Stack
		summary.Net[seat] = p.Stack - start
	}

	b.add(Info, fmt.Sprintf("HandSummary #%d", m.hand.HandNumber), summary)
	if m.observer != nil {
		m.observer.HandFinished(summary)
	}
	m.logger.Info("Hand complete", "hand", m.hand.HandNumber, "pot", t.Pot(), "players", len(summary.Stacks))
	return m.transition(b, NextHandOrExit)
}
