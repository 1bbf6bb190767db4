// Package handflow drives a session through its hands one state at a time.
//
// A Machine walks Boot → MainMenu → TableSetup → PostingBlinds →
// DealHoleCards → BettingPreflop → DealFlop → … → HandSummary →
// NextHandOrExit and loops back to PostingBlinds until the session ends.
// Every call to Step runs exactly one state and returns a Transition,
// Finished or Aborted outcome together with the events it emitted.
//
//	m := handflow.New(
//	    handflow.WithSession(session),
//	    handflow.WithActionSource(source),
//	)
//	for {
//	    out := m.Step()
//	    // render out.StepEvents()
//	    if handflow.IsTerminal(out) {
//	        break
//	    }
//	}
package handflow

import (
	"context"
	"fmt"
	"io"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"

	"github.com/lox/holdem-engine/internal/game"
)

type runStatus int

const (
	running runStatus = iota
	finished
	aborted
)

// Machine is the hand-flow state machine. It is not safe for concurrent use;
// run one machine per goroutine.
type Machine struct {
	session          *game.Session
	source           game.ActionSource
	resolver         Resolver
	observer         Observer
	stopAfterOneHand bool
	limits           Limits
	clock            quartz.Clock
	logger           *log.Logger

	state  State
	status runStatus
	reason string

	handStarted bool
	hand        game.HandStart
	awarded     map[int]int

	totalSteps int
	visits     map[State]int
}

// New creates a machine in the Boot state.
func New(opts ...Option) *Machine {
	m := &Machine{
		limits: DefaultLimits(),
		state:  Boot,
		visits: make(map[State]int),
	}
	for _, opt := range opts {
		opt(m)
	}
	if m.clock == nil {
		m.clock = quartz.NewReal()
	}
	if m.logger == nil {
		m.logger = log.New(io.Discard)
	}
	m.logger = m.logger.WithPrefix("handflow")
	m.limits = m.limits.withDefaults()
	return m
}

// State returns the current state
func (m *Machine) State() State { return m.state }

// Session returns the session being played, or nil.
func (m *Machine) Session() *game.Session { return m.session }

// Limits returns the effective safety limits
func (m *Machine) Limits() Limits { return m.limits }

// Steps returns the number of steps counted against MaxTotalSteps.
func (m *Machine) Steps() int { return m.totalSteps }

// Step runs the current state and returns its outcome. Once the machine has
// finished or aborted, Step keeps returning that outcome without doing
// anything.
func (m *Machine) Step() Outcome {
	switch m.status {
	case finished:
		return Finished{State: m.state}
	case aborted:
		return Aborted{State: m.state, Reason: m.reason}
	}

	b := &eventBatch{clock: m.clock}
	if out := m.enforceLimits(b); out != nil {
		return out
	}
	return m.runState(b)
}

// Run steps the machine until it finishes or aborts and returns the terminal
// outcome. visit, if not nil, sees every outcome. The context is checked
// between steps.
func (m *Machine) Run(ctx context.Context, visit func(Outcome)) (Outcome, error) {
	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		out := m.Step()
		if visit != nil {
			visit(out)
		}
		if IsTerminal(out) {
			return out, nil
		}
	}
}

// Restart clears a terminal status and the step budgets and resumes from
// MainMenu. A hand left unsettled by an abort is abandoned and every chip
// committed to it is refunded; the rest of the session is kept as is.
func (m *Machine) Restart() {
	if m.session != nil {
		refunds, err := m.session.AbandonHand()
		if err != nil {
			m.logger.Error("Abandoning hand failed", "error", err)
		} else if refunds != nil {
			m.logger.Info("Refunded abandoned hand", "hand", m.session.HandNumber(), "refunds", refunds)
		}
	}
	m.status = running
	m.reason = ""
	m.state = MainMenu
	m.handStarted = false
	m.totalSteps = 0
	clear(m.visits)
	m.logger.Debug("Restarted")
}

func (m *Machine) enforceLimits(b *eventBatch) Outcome {
	m.totalSteps++
	if m.totalSteps > m.limits.MaxTotalSteps {
		return m.abort(b, fmt.Sprintf("Exceeded maxTotalSteps=%d (possible deadlock)", m.limits.MaxTotalSteps))
	}

	m.visits[m.state]++
	if m.visits[m.state] > m.limits.MaxVisitsPerState {
		return m.abort(b, fmt.Sprintf("Exceeded maxVisitsPerState=%d at state=%s (possible deadlock)",
			m.limits.MaxVisitsPerState, m.state))
	}
	return nil
}

func (m *Machine) runState(b *eventBatch) Outcome {
	switch m.state {
	case Boot:
		b.add(Info, "Boot", nil)
		return m.transition(b, MainMenu)
	case MainMenu:
		b.add(Info, "MainMenu", nil)
		return m.transition(b, TableSetup)
	case TableSetup:
		return m.onTableSetup(b)
	case PostingBlinds:
		return m.onPostingBlinds(b)
	case DealHoleCards:
		return m.onDealHoleCards(b)
	case BettingPreflop:
		return m.onBetting(b, game.Preflop, DealFlop)
	case DealFlop:
		return m.onDealBoard(b, game.Flop, 3, BettingFlop)
	case BettingFlop:
		return m.onBetting(b, game.Flop, DealTurn)
	case DealTurn:
		return m.onDealBoard(b, game.Turn, 1, BettingTurn)
	case BettingTurn:
		return m.onBetting(b, game.Turn, DealRiver)
	case DealRiver:
		return m.onDealBoard(b, game.River, 1, BettingRiver)
	case BettingRiver:
		return m.onBetting(b, game.River, Showdown)
	case Showdown:
		return m.onShowdown(b)
	case Payout:
		return m.onPayout(b)
	case HandSummary:
		return m.onHandSummary(b)
	case NextHandOrExit:
		return m.onNextHandOrExit(b)
	default:
		return m.abort(b, fmt.Sprintf("Unknown state=%s", m.state))
	}
}

func (m *Machine) onTableSetup(b *eventBatch) Outcome {
	b.add(Info, "TableSetup", nil)
	if m.session == nil {
		return m.abort(b, "Missing Session")
	}

	t := m.session.Table()
	for _, seat := range t.Seats(func(*game.Player) bool { return true }) {
		p := t.Player(seat)
		b.add(PlayerSatDown, fmt.Sprintf("%s sat down at seat %d", p.Name, seat), SeatPayload{
			Seat:  seat,
			ID:    p.ID,
			Name:  p.Name,
			Human: p.Human,
			Stack: p.Stack,
		})
	}
	if m.observer != nil {
		m.observer.SessionStarted(m.session)
	}
	return m.transition(b, PostingBlinds)
}

func (m *Machine) onPostingBlinds(b *eventBatch) Outcome {
	if m.session == nil {
		return m.abort(b, "Missing Session")
	}

	hs, err := m.session.StartHand()
	if err != nil {
		return m.fail(b, err)
	}
	m.handStarted = true
	m.hand = hs
	m.awarded = nil

	b.add(Info, fmt.Sprintf("HandStarted #%d", hs.HandNumber), hs)
	if m.observer != nil {
		m.observer.HandStarted(hs)
	}
	return m.transition(b, DealHoleCards)
}

func (m *Machine) onNextHandOrExit(b *eventBatch) Outcome {
	b.add(Info, "NextHandOrExit", nil)
	m.handStarted = false

	if m.stopAfterOneHand {
		return m.finish(b)
	}
	if m.session == nil {
		return m.abort(b, "Missing Session")
	}

	seats := make(map[*game.Player]int)
	for _, p := range m.session.Players() {
		seats[p] = p.Seat
	}
	removed, err := m.session.ApplyBrokeRules()
	if err != nil {
		return m.fail(b, err)
	}
	for _, p := range removed {
		b.add(Info, fmt.Sprintf("%s is out of chips and leaves the table", p.Name), SeatPayload{
			Seat:  seats[p],
			ID:    p.ID,
			Name:  p.Name,
			Human: p.Human,
		})
	}

	if result := m.session.Result(); result != game.InProgress {
		b.add(Info, fmt.Sprintf("Session over: %s", result), result)
		return m.finish(b)
	}
	return m.transition(b, PostingBlinds)
}

// requireHand aborts unless PostingBlinds has run for the current hand.
func (m *Machine) requireHand(b *eventBatch) Outcome {
	if !m.handStarted {
		return m.abort(b, "Guard failed: hand not started")
	}
	if m.session == nil {
		return m.abort(b, "Missing Session")
	}
	return nil
}

func (m *Machine) transition(b *eventBatch, to State) Outcome {
	from := m.state
	m.state = to
	m.logger.Debug("Transition", "from", from, "to", to, "events", len(b.events))
	return Transition{From: from, To: to, Events: b.events}
}

func (m *Machine) finish(b *eventBatch) Outcome {
	m.status = finished
	m.logger.Debug("Finished", "state", m.state, "steps", m.totalSteps)
	return Finished{State: m.state, Events: b.events}
}

// abort stops the machine and parks it in MainMenu.
func (m *Machine) abort(b *eventBatch, reason string) Outcome {
	m.status = aborted
	m.reason = reason
	b.add(Error, "Abort: "+reason, nil)
	m.logger.Error("Aborted", "state", m.state, "reason", reason)
	m.state = MainMenu
	return Aborted{State: m.state, Reason: reason, Events: b.events}
}

func (m *Machine) fail(b *eventBatch, err error) Outcome {
	return m.abort(b, fmt.Sprintf("%s failed: %v", m.state, err))
}
