// Package config loads engine settings from HCL files.
package config

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/hashicorp/hcl/v2/hclwrite"

	"github.com/lox/holdem-engine/internal/game"
	"github.com/lox/holdem-engine/internal/handflow"
)

// MaxTableSeats is the largest table a single deck can serve with burn cards:
// two hole cards each plus five board cards and three burns.
const MaxTableSeats = 22

// Config represents the complete engine configuration
type Config struct {
	// Seed drives seating, the button and every shuffle. Zero means a
	// fresh random seed per run.
	Seed         int64             `hcl:"seed,optional"`
	Table        *TableSettings    `hcl:"table,block"`
	Gameplay     *GameplaySettings `hcl:"gameplay,block"`
	RuleSettings *RulesSettings    `hcl:"rules,block"`
	Flow         *FlowSettings     `hcl:"flow,block"`
	Log          *LogSettings      `hcl:"log,block"`
}

// TableSettings controls the table size
type TableSettings struct {
	MaxSeats int `hcl:"max_seats,optional"`
}

// GameplaySettings contains stack and blind sizes
type GameplaySettings struct {
	StartingStack int `hcl:"starting_stack,optional"`
	SmallBlind    int `hcl:"small_blind,optional"`
	BigBlind      int `hcl:"big_blind,optional"`
	Ante          int `hcl:"ante,optional"`
}

// RulesSettings toggles rule variants
type RulesSettings struct {
	BurnCards          *bool `hcl:"burn_cards,optional"`
	ReopenOnShortAllIn bool  `hcl:"reopen_on_short_allin,optional"`
}

// FlowSettings bounds the hand flow state machine
type FlowSettings struct {
	StopAfterOneHand   bool   `hcl:"stop_after_one_hand,optional"`
	MaxTotalSteps      int    `hcl:"max_total_steps,optional"`
	MaxVisitsPerState  int    `hcl:"max_visits_per_state,optional"`
	MaxActionsPerRound int    `hcl:"max_actions_per_round,optional"`
	StepDelay          string `hcl:"step_delay,optional"`
}

// LogSettings contains logging configuration
type LogSettings struct {
	Level string `hcl:"level,optional"`
}

// Default returns the default configuration. Flow limits are generous enough
// for long multi-hand sessions; a fresh machine without a config uses the
// tighter handflow defaults.
func Default() *Config {
	rules := game.DefaultRules()
	burn := rules.BurnCards
	return &Config{
		Table: &TableSettings{
			MaxSeats: game.DefaultMaxSeats,
		},
		Gameplay: &GameplaySettings{
			StartingStack: rules.StartingStack,
			SmallBlind:    rules.SmallBlind,
			BigBlind:      rules.BigBlind,
			Ante:          rules.Ante,
		},
		RuleSettings: &RulesSettings{
			BurnCards:          &burn,
			ReopenOnShortAllIn: rules.ReopenOnShortAllIn,
		},
		Flow: &FlowSettings{
			MaxTotalSteps:      100000,
			MaxVisitsPerState:  10000,
			MaxActionsPerRound: handflow.DefaultLimits().MaxActionsPerRound,
			StepDelay:          "0s",
		},
		Log: &LogSettings{
			Level: "info",
		},
	}
}

// Load loads configuration from an HCL file. A missing file yields the defaults.
func Load(filename string) (*Config, error) {
	if _, err := os.Stat(filename); os.IsNotExist(err) {
		return Default(), nil
	}

	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file: %s", diags.Error())
	}
	return decode(file.Body)
}

// Parse decodes configuration from HCL source. The filename is only used in
// diagnostics.
func Parse(src []byte, filename string) (*Config, error) {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCL(src, filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL: %s", diags.Error())
	}
	return decode(file.Body)
}

func decode(body hcl.Body) (*Config, error) {
	var cfg Config
	if diags := gohcl.DecodeBody(body, nil, &cfg); diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL: %s", diags.Error())
	}
	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// applyDefaults fills missing blocks and zero values from Default.
func (c *Config) applyDefaults() {
	def := Default()

	if c.Table == nil {
		c.Table = def.Table
	} else if c.Table.MaxSeats == 0 {
		c.Table.MaxSeats = def.Table.MaxSeats
	}

	if c.Gameplay == nil {
		c.Gameplay = def.Gameplay
	} else {
		if c.Gameplay.StartingStack == 0 {
			c.Gameplay.StartingStack = def.Gameplay.StartingStack
		}
		if c.Gameplay.SmallBlind == 0 && c.Gameplay.BigBlind == 0 {
			c.Gameplay.SmallBlind = def.Gameplay.SmallBlind
			c.Gameplay.BigBlind = def.Gameplay.BigBlind
		}
	}

	if c.RuleSettings == nil {
		c.RuleSettings = def.RuleSettings
	} else if c.RuleSettings.BurnCards == nil {
		c.RuleSettings.BurnCards = def.RuleSettings.BurnCards
	}

	if c.Flow == nil {
		c.Flow = def.Flow
	} else {
		if c.Flow.MaxTotalSteps == 0 {
			c.Flow.MaxTotalSteps = def.Flow.MaxTotalSteps
		}
		if c.Flow.MaxVisitsPerState == 0 {
			c.Flow.MaxVisitsPerState = def.Flow.MaxVisitsPerState
		}
		if c.Flow.MaxActionsPerRound == 0 {
			c.Flow.MaxActionsPerRound = def.Flow.MaxActionsPerRound
		}
		if c.Flow.StepDelay == "" {
			c.Flow.StepDelay = def.Flow.StepDelay
		}
	}

	if c.Log == nil {
		c.Log = def.Log
	} else if c.Log.Level == "" {
		c.Log.Level = def.Log.Level
	}
}

// Validate checks the configuration for errors. Out-of-range gameplay values
// are not errors; Rules clamps them the same way a session does.
func (c *Config) Validate() error {
	if c.Table.MaxSeats < 2 || c.Table.MaxSeats > MaxTableSeats {
		return fmt.Errorf("max_seats must be between 2 and %d, got %d", MaxTableSeats, c.Table.MaxSeats)
	}
	if c.Flow.MaxTotalSteps < 0 {
		return fmt.Errorf("max_total_steps must be positive, got %d", c.Flow.MaxTotalSteps)
	}
	if c.Flow.MaxVisitsPerState < 0 {
		return fmt.Errorf("max_visits_per_state must be positive, got %d", c.Flow.MaxVisitsPerState)
	}
	if c.Flow.MaxActionsPerRound < 0 {
		return fmt.Errorf("max_actions_per_round must be positive, got %d", c.Flow.MaxActionsPerRound)
	}
	if _, err := c.StepDelay(); err != nil {
		return err
	}
	if _, err := c.LogLevel(); err != nil {
		return err
	}
	return nil
}

// Rules returns the sanitised gameplay rules.
func (c *Config) Rules() game.Rules {
	burn := true
	if c.RuleSettings != nil && c.RuleSettings.BurnCards != nil {
		burn = *c.RuleSettings.BurnCards
	}
	return game.Rules{
		StartingStack:      c.Gameplay.StartingStack,
		SmallBlind:         c.Gameplay.SmallBlind,
		BigBlind:           c.Gameplay.BigBlind,
		Ante:               c.Gameplay.Ante,
		BurnCards:          burn,
		ReopenOnShortAllIn: c.RuleSettings != nil && c.RuleSettings.ReopenOnShortAllIn,
	}.Sanitize()
}

// Limits returns the hand flow safety limits.
func (c *Config) Limits() handflow.Limits {
	return handflow.Limits{
		MaxTotalSteps:      c.Flow.MaxTotalSteps,
		MaxVisitsPerState:  c.Flow.MaxVisitsPerState,
		MaxActionsPerRound: c.Flow.MaxActionsPerRound,
	}
}

// StepDelay parses the pause between machine steps.
func (c *Config) StepDelay() (time.Duration, error) {
	if c.Flow.StepDelay == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(c.Flow.StepDelay)
	if err != nil {
		return 0, fmt.Errorf("invalid step_delay %q: %w", c.Flow.StepDelay, err)
	}
	if d < 0 {
		return 0, fmt.Errorf("step_delay must not be negative, got %s", d)
	}
	return d, nil
}

// LogLevel parses the configured log level.
func (c *Config) LogLevel() (log.Level, error) {
	level, err := log.ParseLevel(c.Log.Level)
	if err != nil {
		return log.InfoLevel, fmt.Errorf("invalid log level %q: %w", c.Log.Level, err)
	}
	return level, nil
}

// Logger builds a logger writing to w at the configured level.
func (c *Config) Logger(w io.Writer) *log.Logger {
	level, err := c.LogLevel()
	if err != nil {
		level = log.InfoLevel
	}
	return log.NewWithOptions(w, log.Options{
		Level:           level,
		ReportTimestamp: true,
		TimeFormat:      "15:04:05",
	})
}

// Encode renders the configuration as HCL.
func (c *Config) Encode() []byte {
	f := hclwrite.NewEmptyFile()
	gohcl.EncodeIntoBody(c, f.Body())
	return f.Bytes()
}
