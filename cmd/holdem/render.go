package main

import (
	"fmt"
	"io"
	"maps"
	"slices"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/lox/holdem-engine/internal/deck"
	"github.com/lox/holdem-engine/internal/game"
	"github.com/lox/holdem-engine/internal/handflow"
)

var titleStyle = lipgloss.NewStyle().
	Foreground(lipgloss.Color("#FAFAFA")).
	Background(lipgloss.Color("#7D56F4")).
	Padding(0, 1).
	Bold(true)

var (
	handStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("#96CEB4")).Bold(true)
	actionStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#FAFAFA"))
	heroStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("#FFD700")).Bold(true)
	redCardStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF6B6B")).Bold(true)
	blackCardStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#FAFAFA")).Bold(true)
	successStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#96CEB4")).Bold(true)
	errorStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF6B6B")).Bold(true)
	warningStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#FFEAA7")).Bold(true)
	infoStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("#626262"))
)

// formatCards formats cards with colors
func formatCards(cards []deck.Card) string {
	if len(cards) == 0 {
		return "[]"
	}
	formatted := make([]string, 0, len(cards))
	for _, c := range cards {
		if c.Suit == deck.Hearts || c.Suit == deck.Diamonds {
			formatted = append(formatted, redCardStyle.Render(c.String()))
		} else {
			formatted = append(formatted, blackCardStyle.Render(c.String()))
		}
	}
	return "[" + strings.Join(formatted, " ") + "]"
}

// renderer prints the event stream of a hand flow machine from the human
// seat's point of view. Other players' hole cards stay hidden until showdown.
type renderer struct {
	w       io.Writer
	verbose bool

	names map[int]string
	human int
	hole  []deck.Card
	board []deck.Card
}

func newRenderer(w io.Writer, verbose bool) *renderer {
	return &renderer{w: w, verbose: verbose, names: make(map[int]string), human: game.NoSeat}
}

// visit prints every event of a step; it has the shape Machine.Run expects.
func (r *renderer) visit(out handflow.Outcome) {
	for _, e := range out.StepEvents() {
		if line := r.line(e); line != "" {
			fmt.Fprintln(r.w, line)
		}
	}
	if aborted, ok := out.(handflow.Aborted); ok && r.verbose {
		fmt.Fprintln(r.w, infoStyle.Render("machine parked in "+aborted.State.String()))
	}
}

func (r *renderer) name(seat int) string {
	if n, ok := r.names[seat]; ok {
		return n
	}
	return fmt.Sprintf("seat %d", seat)
}

func (r *renderer) line(e handflow.Event) string {
	switch e.Kind {
	case handflow.Error:
		return errorStyle.Render(e.Message)
	case handflow.Warning:
		return warningStyle.Render(e.Message)
	}

	switch p := e.Payload.(type) {
	case handflow.SeatPayload:
		if e.Kind == handflow.PlayerSatDown {
			r.names[p.Seat] = p.Name
			if p.Human {
				r.human = p.Seat
			}
			return infoStyle.Render(fmt.Sprintf("Seat %d: %s (%d chips)", p.Seat, p.Name, p.Stack))
		}
		return warningStyle.Render(e.Message)

	case game.HandStart:
		r.hole, r.board = nil, nil
		return fmt.Sprintf("\n%s button %s, blinds %s/%s",
			handStyle.Render(fmt.Sprintf("Hand #%d", p.HandNumber)),
			r.name(p.Button), r.name(p.SmallBlind), r.name(p.BigBlind))

	case handflow.DeckPayload:
		if r.verbose {
			return infoStyle.Render(fmt.Sprintf("Deck shuffled (%d cards)", p.Remaining))
		}

	case handflow.HoleCardPayload:
		if p.Seat != r.human {
			return ""
		}
		r.hole = append(r.hole, p.Card)
		if len(r.hole) == 2 {
			return handStyle.Render("Your cards: ") + formatCards(r.hole)
		}

	case handflow.BoardPayload:
		if e.Message == "BurnCard" {
			if r.verbose {
				return infoStyle.Render("Burn " + p.Cards[0].String())
			}
			return ""
		}
		r.board = append(r.board, p.Cards...)
		return handStyle.Render(fmt.Sprintf("%s: ", p.Street)) + formatCards(r.board)

	case handflow.ActionPayload:
		style := actionStyle
		if p.Action.Seat == r.human {
			style = heroStyle
		}
		return style.Render(fmt.Sprintf("  %s", e.Message)) + infoStyle.Render(fmt.Sprintf(" (stack %d, pot %d)", p.StackAfter, p.Pot))

	case handflow.ShowdownPayload:
		if p.Uncontested {
			return handStyle.Render(e.Message)
		}
		lines := []string{handStyle.Render("Showdown")}
		for _, seat := range slices.Sorted(maps.Keys(p.Hands)) {
			lines = append(lines, fmt.Sprintf("  %s shows %s", r.name(seat), formatCards(p.Hands[seat])))
		}
		return strings.Join(lines, "\n")

	case handflow.PayoutPayload:
		var lines []string
		for _, seat := range slices.Sorted(maps.Keys(p.Awards)) {
			switch {
			case p.Awards[seat] == 0:
			case seat == r.human:
				lines = append(lines, successStyle.Render(fmt.Sprintf("You collect %d", p.Awards[seat])))
			default:
				lines = append(lines, successStyle.Render(fmt.Sprintf("%s collects %d", r.name(seat), p.Awards[seat])))
			}
		}
		return strings.Join(lines, "\n")

	case handflow.SummaryPayload:
		if net, ok := p.Net[r.human]; ok {
			return heroStyle.Render(fmt.Sprintf("You: %+d (stack %d)", net, p.Stacks[r.human]))
		}

	case game.Result:
		return titleStyle.Render("Session over: " + p.String())

	default:
		if r.verbose {
			return infoStyle.Render(e.Message)
		}
	}
	return ""
}
