// Package simulator plays many seeded sessions with bots in every seat and
// aggregates the results of the human seat.
package simulator

import (
	"context"
	"errors"
	"fmt"
	"io"
	"runtime"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"golang.org/x/sync/errgroup"

	"github.com/lox/holdem-engine/internal/bot"
	"github.com/lox/holdem-engine/internal/game"
	"github.com/lox/holdem-engine/internal/handflow"
	"github.com/lox/holdem-engine/internal/randutil"
	"github.com/lox/holdem-engine/internal/statistics"
)

// Config holds configuration for running simulations
type Config struct {
	Sessions    int
	Seed        int64  // Session i is played with Seed+i
	Hero        string // Bot kind playing the human seat
	Opponents   string // Bot kind for every other seat, or bot.Mixed
	Rules       game.Rules
	MaxSeats    int
	Limits      handflow.Limits
	Timeout     time.Duration // Per session, zero for none
	Concurrency int
	Clock       quartz.Clock
	Logger      *log.Logger
}

// SessionResult is the outcome of one simulated session.
type SessionResult struct {
	Seed     int64
	Players  int
	Hands    int
	Result   game.Result
	NetChips int    // Human's final stack minus the starting stack
	Aborted  string // Abort reason, empty when the session ended normally
	Stats    *statistics.Statistics
}

// Report aggregates every session of a run.
type Report struct {
	Config   Config
	Sessions []SessionResult
	Stats    statistics.Statistics
	Duration time.Duration
}

// Count returns the number of sessions that ended with result.
func (r *Report) Count(result game.Result) int {
	n := 0
	for _, s := range r.Sessions {
		if s.Aborted == "" && s.Result == result {
			n++
		}
	}
	return n
}

// Aborted returns the number of sessions the machine aborted.
func (r *Report) Aborted() int {
	n := 0
	for _, s := range r.Sessions {
		if s.Aborted != "" {
			n++
		}
	}
	return n
}

// Simulator runs poker session simulations
type Simulator struct {
	config Config
	clock  quartz.Clock
	logger *log.Logger
}

// New creates a new simulator with the given configuration
func New(config Config) *Simulator {
	if config.Sessions <= 0 {
		config.Sessions = 1
	}
	if config.Concurrency <= 0 {
		config.Concurrency = runtime.GOMAXPROCS(0)
	}
	if config.MaxSeats <= 0 {
		config.MaxSeats = game.DefaultMaxSeats
	}
	if config.Rules == (game.Rules{}) {
		config.Rules = game.DefaultRules()
	}
	if config.Hero == "" {
		config.Hero = "call"
	}
	if config.Opponents == "" {
		config.Opponents = bot.Mixed
	}

	s := &Simulator{config: config, clock: config.Clock, logger: config.Logger}
	if s.clock == nil {
		s.clock = quartz.NewReal()
	}
	if s.logger == nil {
		s.logger = log.New(io.Discard)
	}
	s.logger = s.logger.WithPrefix("simulator")
	return s
}

// Run plays every session, at most Concurrency at a time, and returns the
// merged report. The first session error cancels the rest.
func (s *Simulator) Run(ctx context.Context) (*Report, error) {
	start := s.clock.Now()
	results := make([]SessionResult, s.config.Sessions)

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(s.config.Concurrency)
	for i := range results {
		seed := s.config.Seed + int64(i)
		g.Go(func() error {
			res, err := s.playSession(ctx, seed)
			if err != nil {
				return fmt.Errorf("session %d (seed %d): %w", i+1, seed, err)
			}
			results[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	report := &Report{Config: s.config, Sessions: results}
	for _, res := range results {
		report.Stats.Merge(res.Stats)
	}
	if err := report.Stats.Validate(); err != nil {
		return nil, fmt.Errorf("statistics validation failed: %w", err)
	}
	report.Duration = s.clock.Now().Sub(start)

	s.logger.Info("Simulation complete",
		"sessions", len(results),
		"hands", report.Stats.Hands,
		"aborted", report.Aborted(),
		"duration", report.Duration)
	return report, nil
}

// playSession plays one seeded random table until the session ends.
// A session that runs past Timeout is reported as aborted.
func (s *Simulator) playSession(ctx context.Context, seed int64) (SessionResult, error) {
	parent := ctx
	if s.config.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.config.Timeout)
		defer cancel()
	}

	session := game.NewRandomSession(randutil.New(seed),
		game.WithMaxSeats(s.config.MaxSeats),
		game.WithRules(s.config.Rules))
	heroSeat, err := session.HumanSeat()
	if err != nil {
		return SessionResult{}, err
	}

	// Bots and showdowns draw from their own stream so the deal only depends
	// on the seed.
	rng := randutil.New(^seed)
	source, err := s.sources(session, rng)
	if err != nil {
		return SessionResult{}, err
	}

	t := newTracker(seed, heroSeat, session.Rules().BigBlind)
	m := handflow.New(
		handflow.WithSession(session),
		handflow.WithActionSource(source),
		handflow.WithResolver(RandomWinner(rng)),
		handflow.WithLimits(s.config.Limits),
		handflow.WithClock(s.clock),
	)
	out, err := m.Run(ctx, t.visit)
	switch {
	case errors.Is(err, context.DeadlineExceeded) && parent.Err() == nil:
		out = handflow.Aborted{State: m.State(), Reason: fmt.Sprintf("timed out after %s", s.config.Timeout)}
	case err != nil:
		return SessionResult{}, fmt.Errorf("after %d hands: %w", session.HandNumber(), err)
	}

	res := SessionResult{
		Seed:    seed,
		Players: len(session.Players()),
		Hands:   session.HandNumber(),
		Result:  session.Result(),
		Stats:   t.stats,
	}
	if h := session.Human(); h != nil {
		res.NetChips = h.Stack - session.Rules().StartingStack
	}
	if aborted, ok := out.(handflow.Aborted); ok {
		res.Aborted = aborted.Reason
		s.logger.Warn("Session aborted", "seed", seed, "hands", res.Hands, "reason", aborted.Reason)
	}
	s.logger.Debug("Session complete", "seed", seed, "players", res.Players, "hands", res.Hands, "result", res.Result)
	return res, nil
}

// sources builds the hero bot and one bot per opponent seat.
func (s *Simulator) sources(session *game.Session, rng randutil.Source) (game.ActionSource, error) {
	hero, err := bot.New(s.config.Hero, rng, s.logger)
	if err != nil {
		return nil, err
	}
	bots, err := bot.ForPlayers(session.Players(), s.config.Opponents, rng, s.logger)
	if err != nil {
		return nil, err
	}
	return bot.Router{Human: hero, Bots: bots}, nil
}

// PrintSummary prints a comprehensive summary of simulation results
func PrintSummary(w io.Writer, r *Report) {
	stats := &r.Stats
	low, high := stats.ConfidenceInterval95()

	fmt.Fprintf(w, "\n=== SESSIONS: %s vs %s ===\n", r.Config.Hero, r.Config.Opponents)
	fmt.Fprintf(w, "Sessions played: %d (%d won, %d busted, %d aborted) in %s\n",
		len(r.Sessions), r.Count(game.HumanWon), r.Count(game.HumanBusted), r.Aborted(),
		r.Duration.Round(time.Millisecond))
	fmt.Fprintf(w, "Hands played: %d\n", stats.Hands)
	if stats.Hands == 0 {
		return
	}

	fmt.Fprintf(w, "\n=== STATISTICAL RESULTS ===\n")
	fmt.Fprintf(w, "Mean: %.4f bb/hand\n", stats.Mean())
	fmt.Fprintf(w, "Median: %.4f bb/hand\n", stats.Median())
	fmt.Fprintf(w, "Std Dev: %.4f bb\n", stats.StdDev())
	fmt.Fprintf(w, "Std Error: %.4f bb\n", stats.StdError())
	fmt.Fprintf(w, "95%% CI: [%.4f, %.4f] bb/hand\n", low, high)
	fmt.Fprintf(w, "Percentiles: P5=%.3f, P25=%.3f, P75=%.3f, P95=%.3f\n",
		stats.Percentile(0.05), stats.Percentile(0.25), stats.Percentile(0.75), stats.Percentile(0.95))

	fmt.Fprintf(w, "\n=== PROFIT SOURCE ANALYSIS ===\n")
	if wins := stats.ShowdownWins + stats.NonShowdownWins; wins > 0 {
		fmt.Fprintf(w, "Winning hands: %d showdown (%.1f%%), %d fold equity (%.1f%%)\n",
			stats.ShowdownWins, float64(stats.ShowdownWins)/float64(wins)*100,
			stats.NonShowdownWins, float64(stats.NonShowdownWins)/float64(wins)*100)
	}
	fmt.Fprintf(w, "Non-showdown: %.2f bb/hand avg (all hands)\n", stats.NonShowdownBB/float64(stats.Hands))
	fmt.Fprintf(w, "Showdown: %.2f bb/hand avg (all hands)\n", stats.ShowdownBB/float64(stats.Hands))

	fmt.Fprintf(w, "\n=== STREETS REACHED ===\n")
	for st, n := range stats.StreetsReached {
		if n > 0 {
			fmt.Fprintf(w, "%s: %d hands (%.1f%%)\n", game.Street(st), n, float64(n)/float64(stats.Hands)*100)
		}
	}

	fmt.Fprintf(w, "\n=== POT SIZE ANALYSIS ===\n")
	fmt.Fprintf(w, "Max pot observed: %d chips (%.1f bb)\n", stats.MaxPotChips, stats.MaxPotBB)
	fmt.Fprintf(w, "Big pots (>=%dbb): %d hands (%.1f%%), %.2f bb total\n",
		statistics.BigPotBB, stats.BigPots, float64(stats.BigPots)/float64(stats.Hands)*100, stats.BigPotsBB)

	fmt.Fprintf(w, "\n=== POSITION ANALYSIS ===\n")
	for pos := range statistics.MaxPositions {
		if ps := stats.PositionResults[pos]; ps.Hands > 0 {
			fmt.Fprintf(w, "Button+%d: %d hands, %.3f bb/hand\n", pos, ps.Hands, stats.PositionMean(pos))
		}
	}
}
