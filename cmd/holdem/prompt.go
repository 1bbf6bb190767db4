package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/lox/holdem-engine/internal/bot"
	"github.com/lox/holdem-engine/internal/game"
)

// errQuit is returned when the player asks to leave the table.
var errQuit = errors.New("player quit")

// prompt asks the human for every decision on the terminal. Input that names
// an action the options do not offer is rejected and asked again, so the
// engine only ever sees legal actions.
type prompt struct {
	in   *bufio.Scanner
	out  io.Writer
	quit bool
}

func newPrompt(in io.Reader, out io.Writer) *prompt {
	return &prompt{in: bufio.NewScanner(in), out: out}
}

// NextAction implements game.ActionSource.
func (p *prompt) NextAction(req game.ActionRequest) (game.Action, error) {
	for {
		fmt.Fprintln(p.out, heroStyle.Render(describeOptions(req)))
		fmt.Fprint(p.out, "> ")
		if !p.in.Scan() {
			if err := p.in.Err(); err != nil {
				return game.Action{}, err
			}
			p.quit = true
			return game.Action{}, errQuit
		}

		line := strings.TrimSpace(p.in.Text())
		if line == "q" || line == "quit" {
			p.quit = true
			return game.Action{}, errQuit
		}
		a, err := parseInput(req, line)
		if err != nil {
			fmt.Fprintln(p.out, errorStyle.Render(err.Error()))
			continue
		}
		return a, nil
	}
}

// describeOptions lists what the player may do, with the amounts involved.
func describeOptions(req game.ActionRequest) string {
	o := req.Options
	parts := make([]string, 0, len(o.Actions))
	for _, t := range o.Actions {
		switch t {
		case game.Call:
			parts = append(parts, fmt.Sprintf("call %d", o.CallAmount))
		case game.Bet:
			parts = append(parts, fmt.Sprintf("bet %d-%d", o.MinBet, o.MaxCommit))
		case game.Raise:
			parts = append(parts, fmt.Sprintf("raise %d-%d", o.MinRaiseAmount, o.MaxCommit))
		case game.AllIn:
			parts = append(parts, fmt.Sprintf("allin %d", o.AllInAmount))
		default:
			parts = append(parts, t.String())
		}
	}
	return fmt.Sprintf("%s %s, pot %d, stack %d: %s",
		req.Street, formatCards(req.HoleCards), req.Pot, req.Player.Stack, strings.Join(parts, " | "))
}

// parseInput turns "raise 40" or "call" into an action. Amounts for bets and
// raises are chips added to the pot, like every Action amount.
func parseInput(req game.ActionRequest, line string) (game.Action, error) {
	steps, err := bot.ParseSteps(strings.Join(strings.Fields(line), ":"))
	if err != nil {
		return game.Action{}, err
	}
	if len(steps) != 1 {
		return game.Action{}, errors.New("enter one action, e.g. call or raise 40")
	}
	step := steps[0]

	o := req.Options
	if !o.Can(step.Type) {
		return game.Action{}, fmt.Errorf("%s is not available", step.Type)
	}
	switch step.Type {
	case game.Bet:
		if step.Amount < o.MinBet || step.Amount >= o.MaxCommit {
			return game.Action{}, fmt.Errorf("bet must be between %d and %d (use allin for everything)", o.MinBet, o.MaxCommit-1)
		}
	case game.Raise:
		if step.Amount < o.MinRaiseAmount || step.Amount >= o.MaxCommit {
			return game.Action{}, fmt.Errorf("raise must be between %d and %d (use allin for everything)", o.MinRaiseAmount, o.MaxCommit-1)
		}
	}
	return bot.NewScript(step).NextAction(req)
}
