package deck

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCards(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []Card
		wantErr  bool
	}{
		{
			name:  "royal flush",
			input: "AsKsQsJsTs",
			expected: []Card{
				{Suit: Spades, Rank: Ace},
				{Suit: Spades, Rank: King},
				{Suit: Spades, Rank: Queen},
				{Suit: Spades, Rank: Jack},
				{Suit: Spades, Rank: Ten},
			},
		},
		{
			name:  "mixed suits with spaces",
			input: "Ah Kd Qc",
			expected: []Card{
				{Suit: Hearts, Rank: Ace},
				{Suit: Diamonds, Rank: King},
				{Suit: Clubs, Rank: Queen},
			},
		},
		{
			name:  "case insensitive",
			input: "asKHqD",
			expected: []Card{
				{Suit: Spades, Rank: Ace},
				{Suit: Hearts, Rank: King},
				{Suit: Diamonds, Rank: Queen},
			},
		},
		{name: "odd length", input: "AsK", wantErr: true},
		{name: "bad rank", input: "1s", wantErr: true},
		{name: "bad suit", input: "Ax", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseCards(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestCardString(t *testing.T) {
	assert.Equal(t, "Ks", NewCard(King, Spades).String())
	assert.Equal(t, "Td", NewCard(Ten, Diamonds).String())
	assert.Equal(t, "2c", NewCard(Two, Clubs).String())
	assert.Equal(t, []string{"Ah", "9h"}, Strings([]Card{NewCard(Ace, Hearts), NewCard(Nine, Hearts)}))
}

func TestCardJSON(t *testing.T) {
	data, err := json.Marshal([]Card{NewCard(Queen, Hearts)})
	require.NoError(t, err)
	assert.JSONEq(t, `["Qh"]`, string(data))

	var cards []Card
	require.NoError(t, json.Unmarshal(data, &cards))
	assert.Equal(t, []Card{NewCard(Queen, Hearts)}, cards)
}
