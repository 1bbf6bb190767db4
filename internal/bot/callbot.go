package bot

import (
	"io"

	"github.com/charmbracelet/log"

	"github.com/lox/holdem-engine/internal/game"
)

// CallBot checks when it can and calls everything else
type CallBot struct {
	logger *log.Logger
}

// NewCallBot creates a new CallBot instance
func NewCallBot(logger *log.Logger) *CallBot {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &CallBot{logger: logger.WithPrefix("callbot")}
}

// NextAction implements game.ActionSource.
func (c *CallBot) NextAction(req game.ActionRequest) (game.Action, error) {
	if len(req.Options.Actions) == 0 {
		return game.Action{}, ErrNoLegalAction
	}
	a := checkOrCall(req)
	c.logger.Debug("Decision", "hand", req.HandNumber, "seat", req.Seat, "action", a.Type, "amount", a.Amount)
	return a, nil
}
