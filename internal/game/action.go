package game

import (
	"fmt"
	"strings"
)

// ActionType is the kind of betting action a player takes
type ActionType int

const (
	Fold ActionType = iota
	Check
	Call
	Bet
	Raise
	AllIn
)

var actionNames = [...]string{"fold", "check", "call", "bet", "raise", "allin"}

func (a ActionType) String() string {
	if a < Fold || a > AllIn {
		return fmt.Sprintf("action(%d)", int(a))
	}
	return actionNames[a]
}

// MarshalText implements encoding.TextMarshaler.
func (a ActionType) MarshalText() ([]byte, error) {
	if a < Fold || a > AllIn {
		return nil, fmt.Errorf("unknown action type %d", int(a))
	}
	return []byte(a.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (a *ActionType) UnmarshalText(text []byte) error {
	parsed, err := ParseActionType(string(text))
	if err != nil {
		return err
	}
	*a = parsed
	return nil
}

// ParseActionType parses an action name such as "raise" (case-insensitive).
func ParseActionType(s string) (ActionType, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "all-in" {
		s = "allin"
	}
	for i, name := range actionNames {
		if name == s {
			return ActionType(i), nil
		}
	}
	return Fold, fmt.Errorf("unknown action %q", s)
}

// Action is a betting action by the player in Seat. Amount is the number of
// chips the action moves from the player's stack (a delta, not a raise-to
// total); it is zero for Fold and Check.
type Action struct {
	Seat   int        `json:"seat"`
	Type   ActionType `json:"type"`
	Amount int        `json:"amount"`
}

func (a Action) String() string {
	if a.Amount == 0 {
		return fmt.Sprintf("seat %d %s", a.Seat, a.Type)
	}
	return fmt.Sprintf("seat %d %s %d", a.Seat, a.Type, a.Amount)
}
