package game

import (
	"fmt"

	"github.com/lox/holdem-engine/internal/deck"
)

// NoSeat marks an unset seat reference (button, blinds, next to act).
const NoSeat = -1

// Street represents the betting round
type Street int

const (
	Preflop Street = iota
	Flop
	Turn
	River
	Showdown
)

func (s Street) String() string {
	switch s {
	case Preflop:
		return "preflop"
	case Flop:
		return "flop"
	case Turn:
		return "turn"
	case River:
		return "river"
	case Showdown:
		return "showdown"
	default:
		return fmt.Sprintf("street(%d)", int(s))
	}
}

// MarshalText implements encoding.TextMarshaler.
func (s Street) MarshalText() ([]byte, error) {
	if s < Preflop || s > Showdown {
		return nil, fmt.Errorf("unknown street %d", int(s))
	}
	return []byte(s.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (s *Street) UnmarshalText(text []byte) error {
	for st := Preflop; st <= Showdown; st++ {
		if st.String() == string(text) {
			*s = st
			return nil
		}
	}
	return fmt.Errorf("unknown street %q", text)
}

// SeatPredicate decides whether an occupied seat matches. Empty seats never match.
type SeatPredicate func(p *Player) bool

// Common seat predicates.
var (
	// IsActive matches players who can still act.
	IsActive SeatPredicate = func(p *Player) bool { return p.Status == StatusActive }
	// InHand matches players dealt into the hand (anything but Out).
	InHand SeatPredicate = func(p *Player) bool { return p.Status.InHand() }
	// Contesting matches players who have not folded and are not Out.
	Contesting SeatPredicate = func(p *Player) bool { return p.Status.Contesting() }
	// Eligible matches players who can be dealt into the next hand.
	Eligible SeatPredicate = func(p *Player) bool { return p.Status != StatusOut && p.Stack > 0 }
)

// Table owns the seats and the per-hand table state.
type Table struct {
	maxSeats int
	seats    []*Player

	Button     int
	SmallBlind int
	BigBlind   int

	Street Street
	Board  []deck.Card
	Burned []deck.Card
	Deck   *deck.Deck
}

// NewTable creates an empty table. Tables have at least two seats.
func NewTable(maxSeats int) *Table {
	maxSeats = max(2, maxSeats)
	return &Table{
		maxSeats:   maxSeats,
		seats:      make([]*Player, maxSeats),
		Button:     NoSeat,
		SmallBlind: NoSeat,
		BigBlind:   NoSeat,
		Street:     Preflop,
	}
}

// MaxSeats returns the number of seats at the table
func (t *Table) MaxSeats() int {
	return t.maxSeats
}

// Player returns the player in a seat, or nil for empty or out-of-range seats.
func (t *Table) Player(seat int) *Player {
	if seat < 0 || seat >= t.maxSeats {
		return nil
	}
	return t.seats[seat]
}

// Sit places a player in an empty seat.
func (t *Table) Sit(seat int, p *Player) error {
	if seat < 0 || seat >= t.maxSeats {
		return fmt.Errorf("%w: %d (max seats %d)", ErrInvalidSeat, seat, t.maxSeats)
	}
	if t.seats[seat] != nil {
		return fmt.Errorf("%w: %d", ErrSeatTaken, seat)
	}
	t.seats[seat] = p
	p.Seat = seat
	return nil
}

// Vacate empties a seat. The player keeps existing but is no longer seated.
func (t *Table) Vacate(seat int) {
	p := t.Player(seat)
	if p == nil {
		return
	}
	t.seats[seat] = nil
	p.Seat = NoSeat
}

// Clear removes every player and resets positions and cards.
func (t *Table) Clear() {
	for i := range t.seats {
		t.Vacate(i)
	}
	t.ResetPositions()
	t.resetCards()
}

// ResetPositions unsets the button and blind seats.
func (t *Table) ResetPositions() {
	t.Button = NoSeat
	t.SmallBlind = NoSeat
	t.BigBlind = NoSeat
}

func (t *Table) resetCards() {
	t.Street = Preflop
	t.Board = nil
	t.Burned = nil
	t.Deck = nil
}

// NextSeat scans forward from start, wrapping at most once, for the first
// occupied seat whose player satisfies pred. When includeStart is false the scan
// begins strictly after start. It returns NoSeat, false if nothing matches.
//
// Every seat walk in the engine (first to act, next to act, button and blind
// assignment, deal order) goes through this function.
func (t *Table) NextSeat(start int, includeStart bool, pred SeatPredicate) (int, bool) {
	if t.maxSeats == 0 {
		return NoSeat, false
	}
	start = ((start % t.maxSeats) + t.maxSeats) % t.maxSeats
	for step := range t.maxSeats {
		offset := step
		if !includeStart {
			offset = step + 1
		}
		i := (start + offset) % t.maxSeats
		if p := t.seats[i]; p != nil && pred(p) {
			return i, true
		}
	}
	return NoSeat, false
}

// Seats returns the indices of occupied seats matching pred, in seat order.
func (t *Table) Seats(pred SeatPredicate) []int {
	var out []int
	for i, p := range t.seats {
		if p != nil && pred(p) {
			out = append(out, i)
		}
	}
	return out
}

// Count returns the number of occupied seats matching pred.
func (t *Table) Count(pred SeatPredicate) int {
	n := 0
	for _, p := range t.seats {
		if p != nil && pred(p) {
			n++
		}
	}
	return n
}

// HeadsUp reports whether exactly two seated players are in the hand.
func (t *Table) HeadsUp() bool {
	return t.Count(InHand) == 2
}

// Pot returns the total chips contributed this hand by seated players.
func (t *Table) Pot() int {
	total := 0
	for _, p := range t.seats {
		if p != nil {
			total += p.Contribution
		}
	}
	return total
}
