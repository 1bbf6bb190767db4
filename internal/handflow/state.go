package handflow

import "fmt"

// State is a phase of the hand flow.
type State int

const (
	Boot State = iota
	MainMenu
	TableSetup
	PostingBlinds
	DealHoleCards
	BettingPreflop
	DealFlop
	BettingFlop
	DealTurn
	BettingTurn
	DealRiver
	BettingRiver
	Showdown
	Payout
	HandSummary
	NextHandOrExit
)

var stateNames = [...]string{
	Boot:           "Boot",
	MainMenu:       "MainMenu",
	TableSetup:     "TableSetup",
	PostingBlinds:  "PostingBlinds",
	DealHoleCards:  "DealHoleCards",
	BettingPreflop: "BettingPreflop",
	DealFlop:       "DealFlop",
	BettingFlop:    "BettingFlop",
	DealTurn:       "DealTurn",
	BettingTurn:    "BettingTurn",
	DealRiver:      "DealRiver",
	BettingRiver:   "BettingRiver",
	Showdown:       "Showdown",
	Payout:         "Payout",
	HandSummary:    "HandSummary",
	NextHandOrExit: "NextHandOrExit",
}

func (s State) String() string {
	if s >= 0 && int(s) < len(stateNames) {
		return stateNames[s]
	}
	return fmt.Sprintf("State(%d)", int(s))
}
