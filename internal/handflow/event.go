package handflow

import (
	"fmt"
	"time"

	"github.com/coder/quartz"

	"github.com/lox/holdem-engine/internal/deck"
	"github.com/lox/holdem-engine/internal/game"
)

// EventKind classifies an Event
type EventKind int

const (
	Info EventKind = iota
	Warning
	Error
	DeckShuffled
	CardsDealt
	PlayerSatDown
	PlayerAction
)

func (k EventKind) String() string {
	switch k {
	case Info:
		return "Info"
	case Warning:
		return "Warning"
	case Error:
		return "Error"
	case DeckShuffled:
		return "DeckShuffled"
	case CardsDealt:
		return "CardsDealt"
	case PlayerSatDown:
		return "PlayerSatDown"
	case PlayerAction:
		return "PlayerAction"
	default:
		return fmt.Sprintf("EventKind(%d)", int(k))
	}
}

// Event is one entry of the observation log emitted by Step. The machine never
// reads events back.
type Event struct {
	Kind    EventKind
	Message string
	Payload any
	Time    time.Time
}

func (e Event) String() string {
	return fmt.Sprintf("[%s] %s", e.Kind, e.Message)
}

// SeatPayload accompanies PlayerSatDown events and bust-out notices.
type SeatPayload struct {
	Seat  int
	ID    string
	Name  string
	Human bool
	Stack int
}

// DeckPayload accompanies DeckShuffled events.
type DeckPayload struct {
	Remaining int
}

// HoleCardPayload accompanies each hole card dealt.
type HoleCardPayload struct {
	Seat      int
	Round     int
	Card      deck.Card
	Remaining int
}

// BoardPayload accompanies community cards and burns.
type BoardPayload struct {
	Street    game.Street
	Cards     []deck.Card
	Remaining int
}

// ActionPayload accompanies PlayerAction events.
type ActionPayload struct {
	HandNumber int
	Street     game.Street
	Action     game.Action
	Player     string
	StackAfter int
	Pot        int
}

// ShowdownPayload lists the hole cards revealed at showdown. Hands is empty
// when the pot was uncontested.
type ShowdownPayload struct {
	Uncontested bool
	Board       []deck.Card
	Hands       map[int][]deck.Card
}

// PayoutPayload records the chips credited per seat.
type PayoutPayload struct {
	Awards   map[int]int
	Refunded bool
}

// SummaryPayload records every dealt-in seat's stack, net result and the
// chips it was awarded.
type SummaryPayload struct {
	HandNumber int
	Stacks     map[int]int
	Net        map[int]int
	Awards     map[int]int
}

// eventBatch collects the events of a single step.
type eventBatch struct {
	clock  quartz.Clock
	events []Event
}

func (b *eventBatch) add(kind EventKind, message string, payload any) {
	b.events = append(b.events, Event{
		Kind:    kind,
		Message: message,
		Payload: payload,
		Time:    b.clock.Now(),
	})
}
