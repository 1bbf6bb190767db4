package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/lox/holdem-engine/internal/simulator"
)

// SimulateCmd plays many bot-only sessions and reports the human seat's results.
type SimulateCmd struct {
	Sessions    int           `short:"n" default:"100" help:"Number of sessions to play"`
	Seed        int64         `help:"Seed of the first session (0 uses the configured seed, then a random one)"`
	Hero        string        `default:"call" help:"Bot kind playing the human seat (${bot_kinds})"`
	Opponents   string        `default:"mixed" help:"Opponent bot kind (${bot_kinds}) or mixed"`
	Concurrency int           `short:"j" help:"Sessions played at once (0 = one per CPU)"`
	Timeout     time.Duration `default:"30s" help:"Maximum time per session"`
}

func (c *SimulateCmd) Run(g *Globals) error {
	cfg, logger, err := g.load()
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	seed := resolveSeed(c.Seed, cfg)
	sim := simulator.New(simulator.Config{
		Sessions:    c.Sessions,
		Seed:        seed,
		Hero:        c.Hero,
		Opponents:   c.Opponents,
		Rules:       cfg.Rules(),
		MaxSeats:    cfg.Table.MaxSeats,
		Limits:      cfg.Limits(),
		Timeout:     c.Timeout,
		Concurrency: c.Concurrency,
		Logger:      logger,
	})

	fmt.Println(titleStyle.Render(fmt.Sprintf(" Simulating %d sessions ", c.Sessions)))
	logger.Info("Starting simulation", "sessions", c.Sessions, "seed", seed, "hero", c.Hero, "opponents", c.Opponents)

	report, err := sim.Run(ctx)
	if err != nil {
		return err
	}
	simulator.PrintSummary(os.Stdout, report)

	for _, s := range report.Sessions {
		if s.Aborted != "" {
			fmt.Println(warningStyle.Render(fmt.Sprintf("seed %d aborted after %d hands: %s", s.Seed, s.Hands, s.Aborted)))
		}
	}
	return nil
}
