package config

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/holdem-engine/internal/game"
	"github.com/lox/holdem-engine/internal/handflow"
)

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	t.Parallel()

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.hcl"))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
	assert.Equal(t, game.DefaultRules(), cfg.Rules())
}

func TestLoadFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "holdem.hcl")
	src := `
seed = 42

table {
  max_seats = 6
}

gameplay {
  starting_stack = 500
  small_blind    = 10
  big_blind      = 20
  ante           = 2
}

rules {
  burn_cards            = false
  reopen_on_short_allin = true
}

flow {
  stop_after_one_hand   = true
  max_total_steps       = 400
  max_visits_per_state  = 40
  max_actions_per_round = 60
  step_delay            = "250ms"
}

log {
  level = "debug"
}
`
	require.NoError(t, os.WriteFile(path, []byte(src), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, int64(42), cfg.Seed)
	assert.Equal(t, 6, cfg.Table.MaxSeats)
	assert.True(t, cfg.Flow.StopAfterOneHand)
	assert.Equal(t, game.Rules{
		StartingStack:      500,
		SmallBlind:         10,
		BigBlind:           20,
		Ante:               2,
		BurnCards:          false,
		ReopenOnShortAllIn: true,
	}, cfg.Rules())
	assert.Equal(t, handflow.Limits{
		MaxTotalSteps:      400,
		MaxVisitsPerState:  40,
		MaxActionsPerRound: 60,
	}, cfg.Limits())

	delay, err := cfg.StepDelay()
	require.NoError(t, err)
	assert.Equal(t, 250*time.Millisecond, delay)

	level, err := cfg.LogLevel()
	require.NoError(t, err)
	assert.Equal(t, log.DebugLevel, level)
}

func TestParsePartialBlocksKeepDefaults(t *testing.T) {
	t.Parallel()

	cfg, err := Parse([]byte(`
gameplay {
  ante = 1
}

rules {
  reopen_on_short_allin = true
}
`), "partial.hcl")
	require.NoError(t, err)
	require.NotNil(t, cfg.RuleSettings)
	require.NotNil(t, cfg.RuleSettings.BurnCards)
	assert.True(t, *cfg.RuleSettings.BurnCards)
	assert.True(t, cfg.RuleSettings.ReopenOnShortAllIn)

	rules := cfg.Rules()
	assert.Equal(t, 1000, rules.StartingStack)
	assert.Equal(t, 5, rules.SmallBlind)
	assert.Equal(t, 10, rules.BigBlind)
	assert.Equal(t, 1, rules.Ante)
	assert.True(t, rules.BurnCards, "burn_cards defaults to true when omitted")
	assert.True(t, rules.ReopenOnShortAllIn)
	assert.Equal(t, Default().Limits(), cfg.Limits())
	assert.Equal(t, "info", cfg.Log.Level)
}

func TestRulesAreSanitised(t *testing.T) {
	t.Parallel()

	cfg, err := Parse([]byte(`
gameplay {
  starting_stack = -50
  small_blind    = 20
  big_blind      = 10
  ante           = -3
}
`), "sanitise.hcl")
	require.NoError(t, err)

	rules := cfg.Rules()
	assert.Equal(t, 1, rules.StartingStack)
	assert.Equal(t, 20, rules.SmallBlind)
	assert.Equal(t, 20, rules.BigBlind, "big blind is raised to the small blind")
	assert.Equal(t, 0, rules.Ante)
}

func TestParseErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		src  string
		want string
	}{
		{"syntax", `table {`, "failed to parse HCL"},
		{"unknown attribute", `colour = "red"`, "failed to decode HCL"},
		{"wrong type", `seed = "abc"`, "failed to decode HCL"},
		{"too few seats", "table {\n  max_seats = 1\n}", "max_seats must be between 2 and 22"},
		{"too many seats", "table {\n  max_seats = 23\n}", "max_seats must be between 2 and 22"},
		{"negative steps", "flow {\n  max_total_steps = -1\n}", "max_total_steps"},
		{"negative visits", "flow {\n  max_visits_per_state = -1\n}", "max_visits_per_state"},
		{"negative actions", "flow {\n  max_actions_per_round = -1\n}", "max_actions_per_round"},
		{"bad delay", "flow {\n  step_delay = \"soon\"\n}", "invalid step_delay"},
		{"negative delay", "flow {\n  step_delay = \"-1s\"\n}", "step_delay must not be negative"},
		{"bad level", "log {\n  level = \"loud\"\n}", "invalid log level"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := Parse([]byte(tt.src), "bad.hcl")
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestLoadInvalidFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "broken.hcl")
	require.NoError(t, os.WriteFile(path, []byte("gameplay {"), 0o644))

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse HCL file")
}

func TestEncodeRoundTrips(t *testing.T) {
	t.Parallel()

	cfg, err := Parse([]byte(`
seed = 7

gameplay {
  starting_stack = 300
  small_blind    = 1
  big_blind      = 2
}
`), "in.hcl")
	require.NoError(t, err)

	again, err := Parse(cfg.Encode(), "out.hcl")
	require.NoError(t, err)
	assert.Equal(t, cfg, again)
}

func TestLoggerUsesConfiguredLevel(t *testing.T) {
	t.Parallel()

	cfg := Default()
	cfg.Log.Level = "warn"

	var buf bytes.Buffer
	logger := cfg.Logger(&buf)
	logger.Info("hidden")
	logger.Warn("shown", "seat", 3)

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "shown")
	assert.Contains(t, out, "seat=3")
}
