package game

import (
	"fmt"

	"github.com/lox/holdem-engine/internal/deck"
)

// Status is the per-hand state of a player. It is a closed set; every switch
// over Status must handle all four values.
type Status int

const (
	StatusActive Status = iota // can still act this hand
	StatusFolded
	StatusAllIn
	StatusOut // busted or sitting out; not part of the hand
)

func (s Status) String() string {
	switch s {
	case StatusActive:
		return "active"
	case StatusFolded:
		return "folded"
	case StatusAllIn:
		return "allin"
	case StatusOut:
		return "out"
	default:
		return fmt.Sprintf("status(%d)", int(s))
	}
}

// InHand reports whether a player with this status is dealt into the current hand.
func (s Status) InHand() bool {
	switch s {
	case StatusActive, StatusFolded, StatusAllIn:
		return true
	case StatusOut:
		return false
	default:
		return false
	}
}

// Contesting reports whether a player with this status can still win the pot.
func (s Status) Contesting() bool {
	switch s {
	case StatusActive, StatusAllIn:
		return true
	case StatusFolded, StatusOut:
		return false
	default:
		return false
	}
}

// Player represents a player seated at (or removed from) the table
type Player struct {
	ID           string
	Name         string
	Human        bool
	Seat         int // NoSeat when not seated
	Status       Status
	Stack        int
	Contribution int // chips committed across all streets of the current hand
	HoleCards    []deck.Card
}

// NewPlayer creates an unseated, active player. Negative stacks are clamped to zero.
func NewPlayer(id, name string, human bool, stack int) *Player {
	return &Player{
		ID:     id,
		Name:   name,
		Human:  human,
		Seat:   NoSeat,
		Status: StatusActive,
		Stack:  max(0, stack),
	}
}

// CanAct returns true if the player is obligated/able to make a betting decision
func (p *Player) CanAct() bool {
	return p.Status == StatusActive
}

func (p *Player) String() string {
	return fmt.Sprintf("%s(seat=%d stack=%d %s)", p.Name, p.Seat, p.Stack, p.Status)
}

// resetForHand clears per-hand state. Players without chips are Out.
func (p *Player) resetForHand() {
	if p.Stack > 0 {
		p.Status = StatusActive
	} else {
		p.Status = StatusOut
	}
	p.HoleCards = nil
	p.Contribution = 0
}

// commit is the only place chips leave a stack. It moves exactly amount chips
// into the player's contribution and marks the player all-in when the stack is
// exhausted.
func (p *Player) commit(amount int) error {
	if amount < 0 {
		return fmt.Errorf("%w: negative commit %d", ErrInvalidAmount, amount)
	}
	if amount > p.Stack {
		return fmt.Errorf("%w: %d > %d at seat %d", ErrInsufficientChips, amount, p.Stack, p.Seat)
	}
	if amount == 0 {
		return nil
	}
	p.Stack -= amount
	p.Contribution += amount
	if p.Stack == 0 {
		p.Status = StatusAllIn
	}
	return nil
}

// post commits a forced bet capped at the player's stack and returns what was paid.
func (p *Player) post(amount int) int {
	pay := min(max(0, amount), p.Stack)
	// pay never exceeds the stack, so commit cannot fail
	_ = p.commit(pay)
	return pay
}
