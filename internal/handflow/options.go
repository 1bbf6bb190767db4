package handflow

import (
	"github.com/charmbracelet/log"
	"github.com/coder/quartz"

	"github.com/lox/holdem-engine/internal/deck"
	"github.com/lox/holdem-engine/internal/game"
)

// Limits bound how long a machine may run before it is considered stuck.
type Limits struct {
	MaxTotalSteps      int
	MaxVisitsPerState  int
	MaxActionsPerRound int
}

// DefaultLimits returns 200 steps, 20 visits per state and 500 actions per
// betting round.
func DefaultLimits() Limits {
	return Limits{
		MaxTotalSteps:      200,
		MaxVisitsPerState:  20,
		MaxActionsPerRound: 500,
	}
}

// withDefaults replaces non-positive limits with the defaults.
func (l Limits) withDefaults() Limits {
	d := DefaultLimits()
	if l.MaxTotalSteps <= 0 {
		l.MaxTotalSteps = d.MaxTotalSteps
	}
	if l.MaxVisitsPerState <= 0 {
		l.MaxVisitsPerState = d.MaxVisitsPerState
	}
	if l.MaxActionsPerRound <= 0 {
		l.MaxActionsPerRound = d.MaxActionsPerRound
	}
	return l
}

// Resolver decides who wins a contested pot. Awards map seats to chips and
// must add up to the table's pot.
type Resolver interface {
	Resolve(t *game.Table) (map[int]int, error)
}

// ResolverFunc adapts a function to the Resolver interface.
type ResolverFunc func(t *game.Table) (map[int]int, error)

// Resolve calls f(t).
func (f ResolverFunc) Resolve(t *game.Table) (map[int]int, error) { return f(t) }

// Observer receives the facts needed to replay a session. Calls happen
// synchronously from Step.
type Observer interface {
	SessionStarted(s *game.Session)
	HandStarted(hs game.HandStart)
	DeckShuffled(order []deck.Card)
	CardsDrawn(tag string, cards []deck.Card, remaining int)
	ActionApplied(street game.Street, a game.Action)
	HandFinished(summary SummaryPayload)
}

// Option configures a Machine during creation.
type Option func(*Machine)

// WithSession supplies the session to play. TableSetup aborts without one.
func WithSession(s *game.Session) Option {
	return func(m *Machine) { m.session = s }
}

// WithActionSource supplies the actions for every betting decision.
func WithActionSource(src game.ActionSource) Option {
	return func(m *Machine) { m.source = src }
}

// WithResolver supplies showdown winners. Without one, contested pots are
// refunded.
func WithResolver(r Resolver) Option {
	return func(m *Machine) { m.resolver = r }
}

// WithObserver registers a replay observer.
func WithObserver(o Observer) Option {
	return func(m *Machine) { m.observer = o }
}

// StopAfterOneHand makes NextHandOrExit finish after the first hand.
func StopAfterOneHand(stop bool) Option {
	return func(m *Machine) { m.stopAfterOneHand = stop }
}

// WithLimits overrides the safety limits. Zero fields keep their defaults.
func WithLimits(l Limits) Option {
	return func(m *Machine) { m.limits = l }
}

// WithClock sets the clock used to timestamp events.
func WithClock(c quartz.Clock) Option {
	return func(m *Machine) { m.clock = c }
}

// WithLogger sets the machine logger.
func WithLogger(l *log.Logger) Option {
	return func(m *Machine) { m.logger = l }
}

// WithInitialState starts the machine somewhere other than Boot.
func WithInitialState(s State) Option {
	return func(m *Machine) { m.state = s }
}
