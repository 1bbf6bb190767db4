package phh

import (
	"bytes"
	"fmt"
	"io"

	"github.com/BurntSushi/toml"
)

// Encode writes the hand history to the provided writer in PHH TOML format.
func Encode(w io.Writer, hand *HandHistory) error {
	if hand == nil {
		return fmt.Errorf("phh: hand history is nil")
	}

	enc := toml.NewEncoder(w)
	enc.Indent = "\t"
	return enc.Encode(hand)
}

// EncodeToBytes encodes and returns the result as bytes.
func EncodeToBytes(hand *HandHistory) ([]byte, error) {
	var buf bytes.Buffer
	if err := Encode(&buf, hand); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// EncodeAll writes several hands as a PHHS document: one table per hand,
// keyed by its 1-based position.
func EncodeAll(w io.Writer, hands []*HandHistory) error {
	for i, hand := range hands {
		if i > 0 {
			if _, err := io.WriteString(w, "\n"); err != nil {
				return err
			}
		}
		if _, err := fmt.Fprintf(w, "[%d]\n", i+1); err != nil {
			return err
		}
		if err := Encode(w, hand); err != nil {
			return fmt.Errorf("phh: hand %d: %w", i+1, err)
		}
	}
	return nil
}

// Player returns the PHH name of the player at 0-based position i.
func Player(i int) string {
	return fmt.Sprintf("p%d", i+1)
}

// Fold formats a fold.
func Fold(i int) string { return Player(i) + " f" }

// CheckOrCall formats a check or a call.
func CheckOrCall(i int) string { return Player(i) + " cc" }

// CompleteBetOrRaiseTo formats a bet or raise to a street total.
func CompleteBetOrRaiseTo(i, total int) string {
	return fmt.Sprintf("%s cbr %d", Player(i), total)
}
