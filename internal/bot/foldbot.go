package bot

import (
	"io"

	"github.com/charmbracelet/log"

	"github.com/lox/holdem-engine/internal/game"
)

// FoldBot is a simple bot that always folds (or checks when possible)
type FoldBot struct {
	logger *log.Logger
}

// NewFoldBot creates a new FoldBot instance
func NewFoldBot(logger *log.Logger) *FoldBot {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &FoldBot{logger: logger.WithPrefix("foldbot")}
}

// NextAction implements game.ActionSource.
func (f *FoldBot) NextAction(req game.ActionRequest) (game.Action, error) {
	if len(req.Options.Actions) == 0 {
		return game.Action{}, ErrNoLegalAction
	}
	a := fold(req)
	if req.Options.Can(game.Check) {
		a = check(req)
	}
	f.logger.Debug("Decision", "hand", req.HandNumber, "seat", req.Seat, "action", a.Type)
	return a, nil
}
