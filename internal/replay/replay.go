// Package replay records everything needed to reproduce a session: seats, hand
// starts, deck order, draws and applied actions. Recorder implements
// handflow.Observer; the resulting Log is written as JSON or exported to PHH.
package replay

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/lox/holdem-engine/internal/deck"
	"github.com/lox/holdem-engine/internal/game"
)

// Version is the current log format version.
const Version = 1

// Log is a complete session recording.
type Log struct {
	Version int       `json:"version"`
	ID      string    `json:"id"`
	Created time.Time `json:"created"`
	Seed    int64     `json:"seed,omitempty"`
	Rules   Rules     `json:"rules"`
	Seats   []Seat    `json:"seats"`
	Hands   []Hand    `json:"hands"`
}

// Rules mirrors game.Rules with stable JSON names.
type Rules struct {
	StartingStack      int  `json:"starting_stack"`
	SmallBlind         int  `json:"small_blind"`
	BigBlind           int  `json:"big_blind"`
	Ante               int  `json:"ante"`
	BurnCards          bool `json:"burn_cards"`
	ReopenOnShortAllIn bool `json:"reopen_on_short_allin"`
}

// Seat is a player as seated when the session started.
type Seat struct {
	Seat  int    `json:"seat"`
	ID    string `json:"id"`
	Name  string `json:"name"`
	Human bool   `json:"human"`
	Stack int    `json:"stack"`
}

// Hand is one recorded hand.
type Hand struct {
	Number         int         `json:"number"`
	Button         int         `json:"button"`
	SmallBlind     int         `json:"small_blind"`
	BigBlind       int         `json:"big_blind"`
	Antes          map[int]int `json:"antes,omitempty"`
	Blinds         map[int]int `json:"blinds"`
	StartingStacks map[int]int `json:"starting_stacks"`
	Deck           []deck.Card `json:"deck"`
	Draws          []Draw      `json:"draws"`
	Actions        []Action    `json:"actions"`
	FinalStacks    map[int]int `json:"final_stacks,omitempty"`
	Awards         map[int]int `json:"awards,omitempty"`
	Started        time.Time   `json:"started"`
}

// Draw is a group of cards taken from the deck, tagged "hole:seatN:cardM",
// "burn:<street>" or the street name for board cards.
type Draw struct {
	Tag       string      `json:"tag"`
	Cards     []deck.Card `json:"cards"`
	Remaining int         `json:"remaining"`
}

// Action is an applied betting action and the street it happened on.
type Action struct {
	Street game.Street `json:"street"`
	game.Action
}

// Board returns the community cards dealt in h, in order.
func (h Hand) Board() []deck.Card {
	var board []deck.Card
	for _, d := range h.Draws {
		switch d.Tag {
		case game.Flop.String(), game.Turn.String(), game.River.String():
			board = append(board, d.Cards...)
		}
	}
	return board
}

// HoleCards returns the cards dealt to seat in h.
func (h Hand) HoleCards(seat int) []deck.Card {
	var cards []deck.Card
	for round := 1; round <= 2; round++ {
		tag := holeTag(seat, round)
		for _, d := range h.Draws {
			if d.Tag == tag {
				cards = append(cards, d.Cards...)
			}
		}
	}
	return cards
}

func holeTag(seat, round int) string {
	return fmt.Sprintf("hole:seat%d:card%d", seat, round)
}

// Seat returns the seated player for seat.
func (l Log) Seat(seat int) (Seat, bool) {
	for _, s := range l.Seats {
		if s.Seat == seat {
			return s, true
		}
	}
	return Seat{}, false
}

// ReadFile loads a log written by Recorder.WriteFile.
func ReadFile(filename string) (Log, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return Log{}, fmt.Errorf("failed to read replay: %w", err)
	}
	var l Log
	if err := json.Unmarshal(data, &l); err != nil {
		return Log{}, fmt.Errorf("failed to decode replay %s: %w", filename, err)
	}
	if l.Version != Version {
		return Log{}, fmt.Errorf("unsupported replay version %d (want %d)", l.Version, Version)
	}
	return l, nil
}
