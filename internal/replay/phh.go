package replay

import (
	"bytes"
	"fmt"
	"maps"
	"slices"

	"github.com/lox/holdem-engine/internal/fileutil"
	"github.com/lox/holdem-engine/internal/game"
	"github.com/lox/holdem-engine/internal/phh"
)

// PHH converts every recorded hand to a PHH hand history.
func (l Log) PHH() []*phh.HandHistory {
	out := make([]*phh.HandHistory, 0, len(l.Hands))
	for _, h := range l.Hands {
		out = append(out, l.handPHH(h))
	}
	return out
}

// WritePHH writes every hand of the log as a PHHS document.
func (l Log) WritePHH(filename string) error {
	var buf bytes.Buffer
	if err := phh.EncodeAll(&buf, l.PHH()); err != nil {
		return err
	}
	return fileutil.WriteFileAtomic(filename, buf.Bytes(), 0o644)
}

// order returns the dealt-in seats clockwise from the small blind, which is
// the PHH player order.
func (h Hand) order() []int {
	seats := slices.Sorted(maps.Keys(h.StartingStacks))
	i := slices.Index(seats, h.SmallBlind)
	if i < 0 {
		return seats
	}
	return slices.Concat(seats[i:], seats[:i])
}

func (l Log) handPHH(h Hand) *phh.HandHistory {
	order := h.order()
	pos := make(map[int]int, len(order))
	for i, seat := range order {
		pos[seat] = i
	}

	hh := &phh.HandHistory{
		Variant: phh.Variant,
		Table:   l.ID,
		MinBet:  l.Rules.BigBlind,
		HandID:  fmt.Sprintf("%s-%d", l.ID, h.Number),
	}
	for _, seat := range order {
		name := fmt.Sprintf("seat-%d", seat)
		if s, ok := l.Seat(seat); ok {
			name = s.Name
		}
		hh.Seats = append(hh.Seats, seat+1)
		hh.Players = append(hh.Players, name)
		hh.Antes = append(hh.Antes, h.Antes[seat])
		hh.BlindsOrStraddles = append(hh.BlindsOrStraddles, h.Blinds[seat])
		hh.StartingStacks = append(hh.StartingStacks, h.StartingStacks[seat])
		if h.FinalStacks != nil {
			hh.FinishingStacks = append(hh.FinishingStacks, h.FinalStacks[seat])
			hh.Winnings = append(hh.Winnings, h.Awards[seat])
		}
	}
	if !h.Started.IsZero() {
		hh.SetTimestamp(h.Started.UTC())
	}

	for _, seat := range order {
		if cards := h.HoleCards(seat); len(cards) > 0 {
			hh.Actions = append(hh.Actions, phh.DealHole(pos[seat], cards))
		}
	}

	folded := make(map[int]bool)
	bets := maps.Clone(h.Blinds)
	if bets == nil {
		bets = make(map[int]int)
	}
	currentBet := 0
	for _, b := range bets {
		currentBet = max(currentBet, b)
	}

	for street := game.Preflop; street <= game.River; street++ {
		if street != game.Preflop {
			clear(bets)
			currentBet = 0
			for _, d := range h.Draws {
				if d.Tag == street.String() {
					hh.Actions = append(hh.Actions, phh.DealBoard(d.Cards))
				}
			}
		}
		for _, a := range h.Actions {
			if a.Street != street {
				continue
			}
			i := pos[a.Seat]
			switch a.Type {
			case game.Fold:
				folded[a.Seat] = true
				hh.Actions = append(hh.Actions, phh.Fold(i))
			case game.Check, game.Call:
				bets[a.Seat] += a.Amount
				hh.Actions = append(hh.Actions, phh.CheckOrCall(i))
			case game.Bet, game.Raise, game.AllIn:
				bets[a.Seat] += a.Amount
				if bets[a.Seat] <= currentBet {
					// An all-in that does not exceed the bet is a call.
					hh.Actions = append(hh.Actions, phh.CheckOrCall(i))
					continue
				}
				currentBet = bets[a.Seat]
				hh.Actions = append(hh.Actions, phh.CompleteBetOrRaiseTo(i, currentBet))
			}
		}
	}

	var showing []int
	for _, seat := range order {
		if !folded[seat] {
			showing = append(showing, seat)
		}
	}
	if len(showing) > 1 {
		for _, seat := range showing {
			hh.Actions = append(hh.Actions, phh.ShowCards(pos[seat], h.HoleCards(seat)))
		}
	}
	return hh
}
