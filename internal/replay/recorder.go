package replay

import (
	"io"
	"maps"
	"slices"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"

	"github.com/lox/holdem-engine/internal/deck"
	"github.com/lox/holdem-engine/internal/fileutil"
	"github.com/lox/holdem-engine/internal/game"
	"github.com/lox/holdem-engine/internal/gameid"
	"github.com/lox/holdem-engine/internal/handflow"
	"github.com/lox/holdem-engine/internal/randutil"
)

var _ handflow.Observer = (*Recorder)(nil)

// Recorder builds a Log from the facts a hand flow machine reports.
type Recorder struct {
	clock    quartz.Clock
	idSource randutil.Source
	ids      *gameid.Generator
	logger   *log.Logger

	log  Log
	hand int // index into log.Hands, -1 before the first hand
}

// Option configures a Recorder during creation.
type Option func(*Recorder)

// WithClock sets the clock used for the creation and hand timestamps.
func WithClock(c quartz.Clock) Option {
	return func(r *Recorder) { r.clock = c }
}

// WithIDSource makes log ids reproducible.
func WithIDSource(src randutil.Source) Option {
	return func(r *Recorder) { r.idSource = src }
}

// WithSeed stores the session seed in the log.
func WithSeed(seed int64) Option {
	return func(r *Recorder) { r.log.Seed = seed }
}

// WithLogger sets the recorder logger.
func WithLogger(l *log.Logger) Option {
	return func(r *Recorder) { r.logger = l }
}

// NewRecorder creates an empty recorder.
func NewRecorder(opts ...Option) *Recorder {
	r := &Recorder{hand: -1}
	for _, opt := range opts {
		opt(r)
	}
	if r.clock == nil {
		r.clock = quartz.NewReal()
	}
	if r.logger == nil {
		r.logger = log.New(io.Discard)
	}
	r.logger = r.logger.WithPrefix("replay")
	r.ids = gameid.NewGenerator(r.clock, r.idSource)
	r.log.Version = Version
	return r
}

// Log returns the recording so far. The result shares memory with the
// recorder and must not be modified.
func (r *Recorder) Log() Log { return r.log }

// SessionStarted starts a new recording.
func (r *Recorder) SessionStarted(s *game.Session) {
	r.log.ID = r.ids.New()
	r.log.Created = r.clock.Now()
	r.log.Rules = Rules(s.Rules())
	r.log.Seats = nil
	r.log.Hands = nil
	r.hand = -1

	for _, p := range s.Players() {
		if p.Seat == game.NoSeat {
			continue
		}
		r.log.Seats = append(r.log.Seats, Seat{
			Seat:  p.Seat,
			ID:    p.ID,
			Name:  p.Name,
			Human: p.Human,
			Stack: p.Stack,
		})
	}
	slices.SortFunc(r.log.Seats, func(a, b Seat) int { return a.Seat - b.Seat })
	r.logger.Debug("Recording session", "id", r.log.ID, "seats", len(r.log.Seats))
}

// HandStarted opens a new hand.
func (r *Recorder) HandStarted(hs game.HandStart) {
	r.log.Hands = append(r.log.Hands, Hand{
		Number:         hs.HandNumber,
		Button:         hs.Button,
		SmallBlind:     hs.SmallBlind,
		BigBlind:       hs.BigBlind,
		Antes:          maps.Clone(hs.PostedAntes),
		Blinds:         maps.Clone(hs.PostedBlinds),
		StartingStacks: maps.Clone(hs.StartingStacks),
		Started:        r.clock.Now(),
	})
	r.hand = len(r.log.Hands) - 1
}

// current returns the open hand, or nil when facts arrive before any hand.
func (r *Recorder) current(what string) *Hand {
	if r.hand < 0 {
		r.logger.Warn("Ignoring fact outside a hand", "fact", what)
		return nil
	}
	return &r.log.Hands[r.hand]
}

// DeckShuffled records the deck order of the open hand.
func (r *Recorder) DeckShuffled(order []deck.Card) {
	if h := r.current("deck"); h != nil {
		h.Deck = slices.Clone(order)
	}
}

// CardsDrawn records cards taken from the deck.
func (r *Recorder) CardsDrawn(tag string, cards []deck.Card, remaining int) {
	if h := r.current(tag); h != nil {
		h.Draws = append(h.Draws, Draw{Tag: tag, Cards: slices.Clone(cards), Remaining: remaining})
	}
}

// ActionApplied records an accepted betting action.
func (r *Recorder) ActionApplied(street game.Street, a game.Action) {
	if h := r.current("action"); h != nil {
		h.Actions = append(h.Actions, Action{Street: street, Action: a})
	}
}

// HandFinished records the final stacks and awards of the open hand.
func (r *Recorder) HandFinished(summary handflow.SummaryPayload) {
	if h := r.current("summary"); h != nil {
		h.FinalStacks = maps.Clone(summary.Stacks)
		h.Awards = maps.Clone(summary.Awards)
	}
}

// WriteFile writes the log as indented JSON.
func (r *Recorder) WriteFile(filename string) error {
	return fileutil.WriteJSONAtomic(filename, r.log, 0o644)
}

// WritePHH writes every recorded hand as a PHHS document.
func (r *Recorder) WritePHH(filename string) error {
	return r.log.WritePHH(filename)
}
