package main

import (
	"fmt"
	"io"
	"maps"
	"os"
	"slices"

	"github.com/lox/holdem-engine/internal/replay"
)

// ReplayCmd summarises a JSON replay written by play --replay.
type ReplayCmd struct {
	File  string `arg:"" type:"existingfile" help:"Replay file"`
	Limit int    `help:"Maximum number of hands to show (0 = all)"`
	PHH   string `name:"phh" type:"path" help:"Convert the replay to a PHH hand history instead of showing it"`
}

func (c *ReplayCmd) Run(g *Globals) error {
	_, logger, err := g.load()
	if err != nil {
		return err
	}

	l, err := replay.ReadFile(c.File)
	if err != nil {
		return err
	}
	logger.Debug("Loaded replay", "file", c.File, "id", l.ID, "hands", len(l.Hands))

	if c.PHH != "" {
		if err := l.WritePHH(c.PHH); err != nil {
			return err
		}
		logger.Info("Wrote hand history", "file", c.PHH, "hands", len(l.Hands))
		return nil
	}

	printReplay(os.Stdout, l, c.Limit)
	return nil
}

// printReplay writes a compact per-hand summary of a replay.
func printReplay(w io.Writer, l replay.Log, limit int) {
	fmt.Fprintln(w, titleStyle.Render(fmt.Sprintf(" Replay %s ", l.ID)))
	fmt.Fprintf(w, "Seed %d, created %s, blinds %d/%d, %d hands\n",
		l.Seed, l.Created.Format("2006-01-02 15:04:05"), l.Rules.SmallBlind, l.Rules.BigBlind, len(l.Hands))
	for _, s := range l.Seats {
		fmt.Fprintln(w, infoStyle.Render(fmt.Sprintf("Seat %d: %s (%d chips)", s.Seat, s.Name, s.Stack)))
	}

	hands := l.Hands
	if limit > 0 && limit < len(hands) {
		hands = hands[:limit]
	}
	for _, h := range hands {
		fmt.Fprintf(w, "\n%s button %d, %d actions, board %s\n",
			handStyle.Render(fmt.Sprintf("Hand #%d", h.Number)), h.Button, len(h.Actions), formatCards(h.Board()))
		for _, seat := range slices.Sorted(maps.Keys(h.StartingStacks)) {
			name := fmt.Sprintf("seat %d", seat)
			if s, ok := l.Seat(seat); ok {
				name = s.Name
			}
			net := h.FinalStacks[seat] - h.StartingStacks[seat]
			fmt.Fprintf(w, "  %-8s %s %+d\n", name, formatCards(h.HoleCards(seat)), net)
		}
	}
}
