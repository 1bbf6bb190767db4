package game

import "github.com/lox/holdem-engine/internal/deck"

// PlayerView is a read-only snapshot of a seated player
type PlayerView struct {
	Seat          int
	ID            string
	Name          string
	Human         bool
	Status        Status
	Stack         int
	Contribution  int
	BetThisStreet int
}

// ActionRequest is everything an action source sees when it is asked to act.
// It is a snapshot; mutating it has no effect on the game.
type ActionRequest struct {
	HandNumber int
	Street     Street
	Seat       int
	Player     PlayerView
	HoleCards  []deck.Card // only the acting player's cards
	Board      []deck.Card
	Pot        int
	Button     int
	Players    []PlayerView // every seated player, in seat order
	Options    ActionOptions
}

// ActionSource supplies the next action for the seat currently obligated to
// act. The engine only validates and applies what it is given.
type ActionSource interface {
	NextAction(req ActionRequest) (Action, error)
}

// ActionSourceFunc adapts a function to the ActionSource interface.
type ActionSourceFunc func(req ActionRequest) (Action, error)

// NextAction calls f(req).
func (f ActionSourceFunc) NextAction(req ActionRequest) (Action, error) {
	return f(req)
}

// NewActionRequest builds the request for the seat whose turn it is in br.
func NewActionRequest(t *Table, br *BettingRound, handNumber, seat int) (ActionRequest, error) {
	opts, err := br.Options(seat)
	if err != nil {
		return ActionRequest{}, err
	}
	p := t.Player(seat)

	req := ActionRequest{
		HandNumber: handNumber,
		Street:     t.Street,
		Seat:       seat,
		Player:     viewOf(p, br),
		HoleCards:  append([]deck.Card(nil), p.HoleCards...),
		Board:      append([]deck.Card(nil), t.Board...),
		Pot:        t.Pot(),
		Button:     t.Button,
		Options:    opts,
	}
	for _, s := range t.Seats(func(*Player) bool { return true }) {
		req.Players = append(req.Players, viewOf(t.Player(s), br))
	}
	return req, nil
}

func viewOf(p *Player, br *BettingRound) PlayerView {
	return PlayerView{
		Seat:          p.Seat,
		ID:            p.ID,
		Name:          p.Name,
		Human:         p.Human,
		Status:        p.Status,
		Stack:         p.Stack,
		Contribution:  p.Contribution,
		BetThisStreet: br.BetThisStreet(p.Seat),
	}
}
