package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/muesli/termenv"

	"github.com/lox/holdem-engine/internal/bot"
	"github.com/lox/holdem-engine/internal/config"
	"github.com/lox/holdem-engine/internal/randutil"
)

// version is set by ldflags during build
var version = "dev"

// Globals are the flags shared by every command.
type Globals struct {
	ConfigFile string `name:"config" short:"c" default:"holdem.hcl" type:"path" help:"HCL configuration file (defaults apply when it does not exist)"`
	LogLevel   string `help:"Override the configured log level (debug|info|warn|error)"`
	NoColor    bool   `help:"Disable colored output"`
}

type CLI struct {
	Globals

	Version  kong.VersionFlag `short:"v" help:"Show version"`
	Play     PlayCmd          `cmd:"" default:"withargs" help:"Play a session at a random table"`
	Simulate SimulateCmd      `cmd:"" help:"Play many bot-only sessions and report the results"`
	Replay   ReplayCmd        `cmd:"" help:"Summarise or convert a recorded session"`
	Config   ConfigCmd        `cmd:"" help:"Print the effective configuration as HCL"`
}

func main() {
	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("holdem"),
		kong.Description("No-limit Texas Hold'em at a single table"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
		}),
		kong.Vars{
			"version":   version,
			"bot_kinds": strings.Join(bot.Kinds, ", "),
		},
	)
	err := ctx.Run(&cli.Globals)
	ctx.FatalIfErrorf(err)
}

// load reads the configuration and builds the logger every command uses.
func (g *Globals) load() (*config.Config, *log.Logger, error) {
	if g.NoColor {
		lipgloss.SetColorProfile(termenv.Ascii)
	}

	cfg, err := config.Load(g.ConfigFile)
	if err != nil {
		return nil, nil, fmt.Errorf("loading %s: %w", g.ConfigFile, err)
	}
	if g.LogLevel != "" {
		cfg.Log.Level = g.LogLevel
		if _, err := cfg.LogLevel(); err != nil {
			return nil, nil, err
		}
	}

	logger := cfg.Logger(os.Stderr).WithPrefix("MAIN")
	logger.Debug("Loaded configuration", "file", g.ConfigFile, "max_seats", cfg.Table.MaxSeats)
	return cfg, logger, nil
}

// resolveSeed prefers the flag, then the configured seed, then a random one.
func resolveSeed(flag int64, cfg *config.Config) int64 {
	switch {
	case flag != 0:
		return flag
	case cfg.Seed != 0:
		return cfg.Seed
	default:
		return randutil.NewSecure().Int64()
	}
}
