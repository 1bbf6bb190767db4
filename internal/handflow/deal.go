package handflow

import (
	"errors"
	"fmt"

	"github.com/lox/holdem-engine/internal/deck"
	"github.com/lox/holdem-engine/internal/game"
)

func (m *Machine) onDealHoleCards(b *eventBatch) Outcome {
	if out := m.requireHand(b); out != nil {
		return out
	}

	t := m.session.Table()
	if t.SmallBlind == game.NoSeat {
		return m.fail(b, errors.New("small blind seat is not set"))
	}

	// New deck every hand.
	d := deck.New()
	d.Shuffle(m.session.Rand())
	t.Deck = d
	t.Board = nil
	t.Burned = nil
	t.Street = game.Preflop

	b.add(DeckShuffled, "DeckShuffled", DeckPayload{Remaining: d.Count()})
	if m.observer != nil {
		m.observer.DeckShuffled(d.Cards())
	}

	order, err := dealOrder(t, t.SmallBlind)
	if err != nil {
		return m.fail(b, err)
	}
	for round := 1; round <= 2; round++ {
		for _, seat := range order {
			card, err := d.DrawOne()
			if err != nil {
				return m.fail(b, err)
			}
			p := t.Player(seat)
			p.HoleCards = append(p.HoleCards, card)
			b.add(CardsDealt, "HoleCardDealt", HoleCardPayload{
				Seat:      seat,
				Round:     round,
				Card:      card,
				Remaining: d.Count(),
			})
			if m.observer != nil {
				m.observer.CardsDrawn(fmt.Sprintf("hole:seat%d:card%d", seat, round), []deck.Card{card}, d.Count())
			}
		}
	}
	return m.transition(b, BettingPreflop)
}

// onDealBoard burns (when enabled) and deals n community cards for street.
func (m *Machine) onDealBoard(b *eventBatch, street game.Street, n int, next State) Outcome {
	if out := m.requireHand(b); out != nil {
		return out
	}

	t := m.session.Table()
	d := t.Deck
	if d == nil {
		return m.fail(b, errors.New("missing deck (expected DealHoleCards first)"))
	}

	if m.session.Rules().BurnCards {
		burn, err := d.DrawOne()
		if err != nil {
			return m.fail(b, err)
		}
		t.Burned = append(t.Burned, burn)
		b.add(CardsDealt, "BurnCard", BoardPayload{
			Street:    street,
			Cards:     []deck.Card{burn},
			Remaining: d.Count(),
		})
		if m.observer != nil {
			m.observer.CardsDrawn("burn:"+street.String(), []deck.Card{burn}, d.Count())
		}
	}

	cards, err := d.Draw(n)
	if err != nil {
		return m.fail(b, err)
	}
	t.Board = append(t.Board, cards...)
	t.Street = street

	b.add(CardsDealt, boardMessage(street), BoardPayload{
		Street:    street,
		Cards:     cards,
		Remaining: d.Count(),
	})
	if m.observer != nil {
		m.observer.CardsDrawn(street.String(), cards, d.Count())
	}
	return m.transition(b, next)
}

func boardMessage(street game.Street) string {
	switch street {
	case game.Flop:
		return "FlopDealt"
	case game.Turn:
		return "TurnDealt"
	case game.River:
		return "RiverDealt"
	default:
		return street.String() + " dealt"
	}
}

// dealOrder returns every seat still in the hand, starting at start and
// going clockwise.
func dealOrder(t *game.Table, start int) ([]int, error) {
	n := t.Count(game.InHand)
	if n < 2 {
		return nil, fmt.Errorf("expected at least 2 seats in hand, have %d", n)
	}
	if p := t.Player(start); p == nil || !p.Status.InHand() {
		return nil, fmt.Errorf("deal start seat %d is not in the hand", start)
	}

	order := []int{start}
	for cursor := start; len(order) < n; {
		cursor, _ = t.NextSeat(cursor, false, game.InHand)
		order = append(order, cursor)
	}
	return order, nil
}
