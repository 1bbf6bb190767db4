package handflow

import (
	"testing"

	"github.com/coder/quartz"
	"github.com/stretchr/testify/require"

	"github.com/lox/holdem-engine/internal/deck"
	"github.com/lox/holdem-engine/internal/game"
	"github.com/lox/holdem-engine/internal/randutil"
)

// newSession seats a human in the first seat and bots in the others.
func newSession(t *testing.T, seed int64, rules game.Rules, seats ...int) *game.Session {
	t.Helper()
	s := game.NewSession(randutil.New(seed), game.WithRules(rules))
	for i, seat := range seats {
		id, name, human := "BOT", "Bot", false
		if i == 0 {
			id, name, human = "HUMAN", "You", true
		}
		_, err := s.AddPlayer(seat, id, name, human, 0)
		require.NoError(t, err)
	}
	return s
}

func newMachine(t *testing.T, s *game.Session, opts ...Option) (*Machine, *quartz.Mock) {
	t.Helper()
	clock := quartz.NewMock(t)
	base := []Option{WithSession(s), WithClock(clock)}
	return New(append(base, opts...)...), clock
}

// passive checks when it can and calls otherwise.
var passive = game.ActionSourceFunc(func(req game.ActionRequest) (game.Action, error) {
	if req.Options.Can(game.Check) {
		return game.Action{Seat: req.Seat, Type: game.Check}, nil
	}
	return game.Action{Seat: req.Seat, Type: game.Call, Amount: req.Options.CallAmount}, nil
})

// checkFold checks when it can and folds otherwise.
var checkFold = game.ActionSourceFunc(func(req game.ActionRequest) (game.Action, error) {
	if req.Options.Can(game.Check) {
		return game.Action{Seat: req.Seat, Type: game.Check}, nil
	}
	return game.Action{Seat: req.Seat, Type: game.Fold}, nil
})

// shover moves all-in whenever it is allowed.
var shover = game.ActionSourceFunc(func(req game.ActionRequest) (game.Action, error) {
	if req.Options.Can(game.AllIn) {
		return game.Action{Seat: req.Seat, Type: game.AllIn, Amount: req.Options.AllInAmount}, nil
	}
	if req.Options.Can(game.Check) {
		return game.Action{Seat: req.Seat, Type: game.Check}, nil
	}
	return game.Action{Seat: req.Seat, Type: game.Call, Amount: req.Options.CallAmount}, nil
})

// winner awards every pot to one seat.
func winner(seat int) Resolver {
	return ResolverFunc(func(t *game.Table) (map[int]int, error) {
		return map[int]int{seat: t.Pot()}, nil
	})
}

// runAll steps until a terminal outcome and returns every outcome.
func runAll(t *testing.T, m *Machine) []Outcome {
	t.Helper()
	var outs []Outcome
	for range 1000 {
		out := m.Step()
		outs = append(outs, out)
		if IsTerminal(out) {
			return outs
		}
	}
	t.Fatal("machine did not terminate")
	return nil
}

func allEvents(outs []Outcome) []Event {
	var events []Event
	for _, o := range outs {
		events = append(events, o.StepEvents()...)
	}
	return events
}

func eventsOfKind(events []Event, kind EventKind) []Event {
	var out []Event
	for _, e := range events {
		if e.Kind == kind {
			out = append(out, e)
		}
	}
	return out
}

func eventsWithMessage(events []Event, msg string) []Event {
	var out []Event
	for _, e := range events {
		if e.Message == msg {
			out = append(out, e)
		}
	}
	return out
}

func handStarts(events []Event) []game.HandStart {
	var out []game.HandStart
	for _, e := range events {
		if hs, ok := e.Payload.(game.HandStart); ok {
			out = append(out, hs)
		}
	}
	return out
}

func transitions(outs []Outcome) [][2]State {
	var out [][2]State
	for _, o := range outs {
		if tr, ok := o.(Transition); ok {
			out = append(out, [2]State{tr.From, tr.To})
		}
	}
	return out
}

func totalChips(s *game.Session) int {
	total := 0
	for _, p := range s.Players() {
		total += p.Stack
	}
	return total
}

// recordingObserver keeps everything it is told.
type recordingObserver struct {
	sessions int
	hands    []game.HandStart
	shuffles [][]deck.Card
	tags     []string
	actions  []game.Action
	finished []SummaryPayload
}

func (o *recordingObserver) SessionStarted(*game.Session) { o.sessions++ }

func (o *recordingObserver) HandStarted(hs game.HandStart) { o.hands = append(o.hands, hs) }

func (o *recordingObserver) DeckShuffled(order []deck.Card) {
	o.shuffles = append(o.shuffles, order)
}

func (o *recordingObserver) CardsDrawn(tag string, _ []deck.Card, _ int) {
	o.tags = append(o.tags, tag)
}

func (o *recordingObserver) ActionApplied(_ game.Street, a game.Action) {
	o.actions = append(o.actions, a)
}

func (o *recordingObserver) HandFinished(summary SummaryPayload) {
	o.finished = append(o.finished, summary)
}
