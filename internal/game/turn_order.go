package game

import "fmt"

// FirstToAct returns the first seat obligated to act on a street.
//
// Heads-up the button (who is also the small blind) opens preflop and the big
// blind opens every later street. With three or more players preflop starts
// under the gun (first seat in the hand after the big blind) and postflop starts
// with the first seat in the hand after the button. From that start seat the
// first Active player, start included, is returned.
func FirstToAct(t *Table, street Street) (int, error) {
	if t.Button == NoSeat {
		return NoSeat, ErrButtonUnset
	}
	if t.BigBlind == NoSeat {
		return NoSeat, ErrBigBlindUnset
	}

	headsUp := t.HeadsUp()
	var start int
	switch street {
	case Preflop:
		if headsUp {
			start = t.Button
		} else {
			start = t.nextInHandAfter(t.BigBlind)
		}
	case Flop, Turn, River:
		if headsUp {
			start = t.BigBlind
		} else {
			start = t.nextInHandAfter(t.Button)
		}
	case Showdown:
		return NoSeat, fmt.Errorf("no betting on street %s", street)
	default:
		return NoSeat, fmt.Errorf("unknown street %d", int(street))
	}
	if start == NoSeat {
		return NoSeat, fmt.Errorf("%w: no seat in hand on %s", ErrNoActor, street)
	}

	seat, ok := t.NextSeat(start, true, IsActive)
	if !ok {
		return NoSeat, fmt.Errorf("%w on %s", ErrNoActor, street)
	}
	return seat, nil
}

func (t *Table) nextInHandAfter(seat int) int {
	next, _ := t.NextSeat(seat, false, InHand)
	return next
}
