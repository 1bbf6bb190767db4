package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"

	"github.com/lox/holdem-engine/internal/bot"
	"github.com/lox/holdem-engine/internal/config"
	"github.com/lox/holdem-engine/internal/game"
	"github.com/lox/holdem-engine/internal/handflow"
	"github.com/lox/holdem-engine/internal/randutil"
	"github.com/lox/holdem-engine/internal/replay"
	"github.com/lox/holdem-engine/internal/simulator"
)

// PlayCmd plays one session at a random table.
type PlayCmd struct {
	Seed     int64  `help:"Session seed (0 uses the configured seed, then a random one)"`
	Human    string `default:"prompt" help:"Who plays the human seat: prompt, or a bot kind (${bot_kinds})"`
	Script   string `help:"Scripted human actions played first, e.g. call,raise:40,fold"`
	Bots     string `default:"mixed" help:"Opponent bot kind (${bot_kinds}) or mixed"`
	Showdown string `default:"random" enum:"random,refund" help:"Contested pots go to a random contender or are refunded"`
	OneHand  bool   `help:"Stop after the first hand"`
	Replay   string `type:"path" help:"Write the session replay as JSON"`
	PHH      string `name:"phh" type:"path" help:"Write the session as a PHH hand history"`
	Verbose  bool   `help:"Show every machine event"`
}

func (c *PlayCmd) Run(g *Globals) error {
	cfg, logger, err := g.load()
	if err != nil {
		return err
	}
	delay, err := cfg.StepDelay()
	if err != nil {
		return err
	}

	seed := resolveSeed(c.Seed, cfg)
	session := game.NewRandomSession(randutil.New(seed),
		game.WithMaxSeats(cfg.Table.MaxSeats),
		game.WithRules(cfg.Rules()),
		game.WithLogger(logger.WithPrefix("session")))

	// Bots draw from their own stream so the deal only depends on the seed.
	rng := randutil.New(^seed)
	source, pr, err := c.sources(session, rng, logger)
	if err != nil {
		return err
	}

	clock := quartz.NewReal()
	opts := []handflow.Option{
		handflow.WithSession(session),
		handflow.WithActionSource(source),
		handflow.WithLimits(cfg.Limits()),
		handflow.StopAfterOneHand(c.OneHand || cfg.Flow.StopAfterOneHand),
		handflow.WithClock(clock),
		handflow.WithLogger(logger),
	}
	if c.Showdown == "random" {
		opts = append(opts, handflow.WithResolver(simulator.RandomWinner(rng)))
	}
	var rec *replay.Recorder
	if c.Replay != "" || c.PHH != "" {
		rec = replay.NewRecorder(replay.WithSeed(seed), replay.WithClock(clock), replay.WithLogger(logger))
		opts = append(opts, handflow.WithObserver(rec))
	}
	m := handflow.New(opts...)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	fmt.Println(titleStyle.Render(" ♠ ♥ Texas Hold'em ♦ ♣ "))
	fmt.Printf("Seed %d, %d players\n\n", seed, len(session.Players()))
	logger.Info("Starting session", "seed", seed, "players", len(session.Players()), "human", c.Human, "bots", c.Bots)

	r := newRenderer(os.Stdout, c.Verbose)
	out, runErr := m.Run(ctx, func(o handflow.Outcome) {
		r.visit(o)
		if delay > 0 && !handflow.IsTerminal(o) {
			pause(ctx, clock, delay)
		}
	})

	if err := c.save(rec, cfg, logger); err != nil {
		return err
	}
	if runErr != nil {
		if errors.Is(runErr, context.Canceled) {
			logger.Info("Interrupted", "hands", session.HandNumber())
			return nil
		}
		return runErr
	}
	if aborted, ok := out.(handflow.Aborted); ok {
		if pr != nil && pr.quit {
			logger.Info("Left the table", "hands", session.HandNumber())
			return nil
		}
		return fmt.Errorf("session aborted: %s", aborted.Reason)
	}
	logger.Info("Session finished", "hands", session.HandNumber(), "result", session.Result())
	return nil
}

// sources assembles the human source (prompt, bot or script) and the bots.
// The prompt is returned when the human plays from the terminal.
func (c *PlayCmd) sources(session *game.Session, rng randutil.Source, logger *log.Logger) (game.ActionSource, *prompt, error) {
	var (
		human game.ActionSource
		pr    *prompt
	)
	if c.Human == "prompt" {
		pr = newPrompt(os.Stdin, os.Stdout)
		human = pr
	} else {
		b, err := bot.New(c.Human, rng, logger)
		if err != nil {
			return nil, nil, err
		}
		human = b
	}
	if c.Script != "" {
		steps, err := bot.ParseSteps(c.Script)
		if err != nil {
			return nil, nil, fmt.Errorf("invalid script: %w", err)
		}
		human = bot.NewScript(steps...).Then(human)
	}

	bots, err := bot.ForPlayers(session.Players(), c.Bots, rng, logger)
	if err != nil {
		return nil, nil, err
	}
	return bot.Router{Human: human, Bots: bots}, pr, nil
}

func (c *PlayCmd) save(rec *replay.Recorder, cfg *config.Config, logger *log.Logger) error {
	if rec == nil || len(rec.Log().Hands) == 0 {
		return nil
	}
	if c.Replay != "" {
		if err := rec.WriteFile(c.Replay); err != nil {
			return fmt.Errorf("writing replay: %w", err)
		}
		logger.Info("Wrote replay", "file", c.Replay, "hands", len(rec.Log().Hands))
	}
	if c.PHH != "" {
		if err := rec.WritePHH(c.PHH); err != nil {
			return fmt.Errorf("writing hand history: %w", err)
		}
		logger.Info("Wrote hand history", "file", c.PHH, "big_blind", cfg.Rules().BigBlind)
	}
	return nil
}

// pause waits for d on clock unless ctx ends first.
func pause(ctx context.Context, clock quartz.Clock, d time.Duration) {
	t := clock.NewTimer(d, "play", "pause")
	defer t.Stop()
	select {
	case <-ctx.Done():
	case <-t.C:
	}
}
