package game

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/holdem-engine/internal/randutil"
)

// newTestSession seats a human in the first listed seat and bots in the rest.
func newTestSession(t *testing.T, rng randutil.Source, rules Rules, seats ...int) *Session {
	t.Helper()
	s := NewSession(rng, WithRules(rules))
	for i, seat := range seats {
		if i == 0 {
			_, err := s.AddPlayer(seat, "HUMAN", "You", true, 0)
			require.NoError(t, err)
			continue
		}
		_, err := s.AddPlayer(seat, "BOT", "Bot", false, 0)
		require.NoError(t, err)
	}
	return s
}

func TestNewSessionRequiresRand(t *testing.T) {
	t.Parallel()
	assert.Panics(t, func() { NewSession(nil) })
}

func TestRulesSanitize(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   Rules
		want Rules
	}{
		{"defaults unchanged", DefaultRules(), DefaultRules()},
		{"zero stack", Rules{StartingStack: 0, SmallBlind: 1, BigBlind: 2}, Rules{StartingStack: 1, SmallBlind: 1, BigBlind: 2}},
		{"negative blinds", Rules{StartingStack: 100, SmallBlind: -5, BigBlind: -10, Ante: -1}, Rules{StartingStack: 100}},
		{"big blind below small", Rules{StartingStack: 100, SmallBlind: 20, BigBlind: 10}, Rules{StartingStack: 100, SmallBlind: 20, BigBlind: 20}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.in.Sanitize())
		})
	}
}

func TestNewSessionSanitizesRules(t *testing.T) {
	t.Parallel()
	s := NewSession(randutil.New(1), WithRules(Rules{StartingStack: -3, SmallBlind: 10, BigBlind: 4}), WithMaxSeats(6))

	assert.Equal(t, 1, s.Rules().StartingStack)
	assert.Equal(t, 10, s.Rules().BigBlind)
	assert.Equal(t, 6, s.Table().MaxSeats())
	assert.Equal(t, InProgress, s.Result())
}

func TestSeatRandomly(t *testing.T) {
	t.Parallel()
	sizes := map[int]bool{}
	for seed := range int64(300) {
		s := NewRandomSession(randutil.New(seed))
		players := s.Players()
		sizes[len(players)] = true

		require.GreaterOrEqual(t, len(players), 2)
		require.LessOrEqual(t, len(players), 9)
		require.Equal(t, len(players), s.Table().Count(InHand))

		humans := 0
		seen := map[int]bool{}
		for _, p := range players {
			require.False(t, seen[p.Seat], "seat %d used twice", p.Seat)
			seen[p.Seat] = true
			require.Equal(t, 1000, p.Stack)
			require.Equal(t, StatusActive, p.Status)
			if p.Human {
				humans++
				require.Equal(t, "HUMAN", p.ID)
				require.Equal(t, "You", p.Name)
			}
		}
		require.Equal(t, 1, humans)

		seat, err := s.HumanSeat()
		require.NoError(t, err)
		require.Same(t, s.Human(), s.Table().Player(seat))
	}
	assert.Len(t, sizes, 8, "every table size from 2 to 9 occurs")
}

func TestSeatRandomlyNamesBotsInOrder(t *testing.T) {
	t.Parallel()
	s := NewRandomSession(randutil.New(7))

	n := 1
	for _, p := range s.Players() {
		if p.Human {
			continue
		}
		assert.Equal(t, fmt.Sprintf("BOT_%d", n), p.ID)
		assert.Equal(t, fmt.Sprintf("Bot-%d", n), p.Name)
		n++
	}
}

func TestSeatRandomlyRespectsMaxSeats(t *testing.T) {
	t.Parallel()
	for seed := range int64(50) {
		s := NewRandomSession(randutil.New(seed), WithMaxSeats(3))
		require.LessOrEqual(t, len(s.Players()), 3)
		for _, p := range s.Players() {
			require.Less(t, p.Seat, 3)
		}
	}
}

func TestSeatRandomlyIsDeterministic(t *testing.T) {
	t.Parallel()
	a := NewRandomSession(randutil.New(42))
	b := NewRandomSession(randutil.New(42))

	require.Equal(t, len(a.Players()), len(b.Players()))
	for i := range a.Players() {
		assert.Equal(t, a.Players()[i].Seat, b.Players()[i].Seat)
		assert.Equal(t, a.Players()[i].ID, b.Players()[i].ID)
	}
}

func TestAddPlayer(t *testing.T) {
	t.Parallel()
	s := NewSession(randutil.New(1))

	p, err := s.AddPlayer(3, "A", "Alice", false, 0)
	require.NoError(t, err)
	assert.Equal(t, 1000, p.Stack, "non-positive stack means the starting stack")
	assert.Equal(t, 3, p.Seat)

	p, err = s.AddPlayer(4, "B", "Bob", false, 250)
	require.NoError(t, err)
	assert.Equal(t, 250, p.Stack)

	_, err = s.AddPlayer(3, "C", "Carol", false, 0)
	require.ErrorIs(t, err, ErrSeatTaken)
	_, err = s.AddPlayer(9, "C", "Carol", false, 0)
	require.ErrorIs(t, err, ErrInvalidSeat)
	assert.Len(t, s.Players(), 2)

	_, err = s.HumanSeat()
	require.ErrorIs(t, err, ErrNoHuman)
}

func TestStartHandAssignsPositionsAndPostsBlinds(t *testing.T) {
	t.Parallel()
	s := newTestSession(t, &fixedSource{ints: []int{1}}, DefaultRules(), 1, 4, 7)

	hs, err := s.StartHand()
	require.NoError(t, err)

	assert.Equal(t, 1, hs.HandNumber)
	assert.Equal(t, 4, hs.Button, "first button is drawn from the eligible seats")
	assert.Equal(t, 7, hs.SmallBlind)
	assert.Equal(t, 1, hs.BigBlind)
	assert.Equal(t, map[int]int{7: 5, 1: 10}, hs.PostedBlinds)
	assert.Empty(t, hs.PostedAntes)
	assert.Equal(t, map[int]int{1: 1000, 4: 1000, 7: 1000}, hs.StartingStacks)

	tbl := s.Table()
	assert.Equal(t, 995, tbl.Player(7).Stack)
	assert.Equal(t, 990, tbl.Player(1).Stack)
	assert.Equal(t, 15, tbl.Pot())
	assert.Equal(t, Preflop, tbl.Street)

	current, ok := s.CurrentHand()
	require.True(t, ok)
	assert.Equal(t, hs.Button, current.Button)
}

func TestStartHandRotatesButton(t *testing.T) {
	t.Parallel()
	s := newTestSession(t, &fixedSource{ints: []int{1}}, DefaultRules(), 1, 4, 7)

	hs, err := s.StartHand()
	require.NoError(t, err)
	require.NoError(t, s.Settle(map[int]int{hs.Button: s.Table().Pot()}))

	hs, err = s.StartHand()
	require.NoError(t, err)
	assert.Equal(t, 2, hs.HandNumber)
	assert.Equal(t, 7, hs.Button)
	assert.Equal(t, 1, hs.SmallBlind)
	assert.Equal(t, 4, hs.BigBlind)
	assert.False(t, s.Settled())

	hs, err = s.StartHand()
	require.NoError(t, err)
	assert.Equal(t, 1, hs.Button, "button wraps around the table")
}

func TestStartHandHeadsUpButtonIsSmallBlind(t *testing.T) {
	t.Parallel()
	s := newTestSession(t, &fixedSource{ints: []int{0}}, DefaultRules(), 2, 5)

	hs, err := s.StartHand()
	require.NoError(t, err)
	assert.Equal(t, 2, hs.Button)
	assert.Equal(t, 2, hs.SmallBlind)
	assert.Equal(t, 5, hs.BigBlind)

	first, err := FirstToAct(s.Table(), Preflop)
	require.NoError(t, err)
	assert.Equal(t, 2, first)
}

func TestStartHandPostsAntes(t *testing.T) {
	t.Parallel()
	rules := DefaultRules()
	rules.Ante = 2
	s := NewSession(&fixedSource{ints: []int{0}}, WithRules(rules))
	_, err := s.AddPlayer(0, "HUMAN", "You", true, 1)
	require.NoError(t, err)
	_, err = s.AddPlayer(3, "B1", "Bot-1", false, 0)
	require.NoError(t, err)
	_, err = s.AddPlayer(6, "B2", "Bot-2", false, 0)
	require.NoError(t, err)

	hs, err := s.StartHand()
	require.NoError(t, err)
	require.Equal(t, 0, hs.Button)

	assert.Equal(t, map[int]int{0: 1, 3: 2, 6: 2}, hs.PostedAntes, "a short stack posts what it has")
	assert.Equal(t, map[int]int{3: 5, 6: 10}, hs.PostedBlinds)
	assert.Equal(t, StatusAllIn, s.Table().Player(0).Status)
	assert.Equal(t, 20, s.Table().Pot())
	assert.Equal(t, 1, hs.StartingStacks[0])
}

func TestStartHandShortBlindGoesAllIn(t *testing.T) {
	t.Parallel()
	s := NewSession(&fixedSource{ints: []int{0}})
	_, err := s.AddPlayer(0, "HUMAN", "You", true, 0)
	require.NoError(t, err)
	_, err = s.AddPlayer(1, "B1", "Bot-1", false, 0)
	require.NoError(t, err)
	_, err = s.AddPlayer(2, "B2", "Bot-2", false, 4)
	require.NoError(t, err)

	hs, err := s.StartHand()
	require.NoError(t, err)
	assert.Equal(t, 4, hs.PostedBlinds[2])
	assert.Equal(t, StatusAllIn, s.Table().Player(2).Status)
}

func TestApplyBrokeRules(t *testing.T) {
	t.Parallel()

	t.Run("broke bots leave the table", func(t *testing.T) {
		s := newTestSession(t, randutil.New(1), DefaultRules(), 0, 3, 5)
		bot := s.Table().Player(3)
		bot.Stack = 0

		removed, err := s.ApplyBrokeRules()
		require.NoError(t, err)
		require.Len(t, removed, 1)
		assert.Same(t, bot, removed[0])
		assert.Equal(t, StatusOut, bot.Status)
		assert.Equal(t, NoSeat, bot.Seat)
		assert.Nil(t, s.Table().Player(3))
		assert.Equal(t, InProgress, s.Result())

		removed, err = s.ApplyBrokeRules()
		require.NoError(t, err)
		assert.Empty(t, removed, "already removed bots are not reported twice")
	})

	t.Run("human busts", func(t *testing.T) {
		s := newTestSession(t, randutil.New(1), DefaultRules(), 0, 3)
		s.Human().Stack = 0

		removed, err := s.ApplyBrokeRules()
		require.NoError(t, err)
		assert.Empty(t, removed)
		assert.Equal(t, HumanBusted, s.Result())

		_, err = s.StartHand()
		require.ErrorIs(t, err, ErrSessionEnded)
	})

	t.Run("human wins", func(t *testing.T) {
		s := newTestSession(t, randutil.New(1), DefaultRules(), 0, 3, 5)
		s.Table().Player(3).Stack = 0
		s.Table().Player(5).Stack = 0

		removed, err := s.ApplyBrokeRules()
		require.NoError(t, err)
		assert.Len(t, removed, 2)
		assert.Equal(t, HumanWon, s.Result())
		assert.Equal(t, []int{0}, s.EligibleSeats())
	})

	t.Run("no human", func(t *testing.T) {
		s := NewSession(randutil.New(1))
		_, err := s.AddPlayer(0, "B1", "Bot-1", false, 0)
		require.NoError(t, err)

		_, err = s.ApplyBrokeRules()
		require.ErrorIs(t, err, ErrNoHuman)
	})
}

func TestStartHandRemovesBrokeBots(t *testing.T) {
	t.Parallel()
	s := newTestSession(t, &fixedSource{ints: []int{0}}, DefaultRules(), 0, 3, 5)
	s.Table().Player(5).Stack = 0

	hs, err := s.StartHand()
	require.NoError(t, err)
	assert.Len(t, hs.StartingStacks, 2)
	assert.Equal(t, 0, hs.SmallBlind, "two players left, so the button posts the small blind")
	assert.Nil(t, s.Table().Player(5))
}

func TestStartHandNotEnoughPlayers(t *testing.T) {
	t.Parallel()
	s := newTestSession(t, randutil.New(1), DefaultRules(), 0, 3)
	// A player with chips who is not seated counts for the session but cannot be dealt in.
	s.Table().Vacate(3)

	_, err := s.StartHand()
	require.ErrorIs(t, err, ErrNotEnoughPlayers)
	assert.Equal(t, 0, s.HandNumber())
}

func TestSettle(t *testing.T) {
	t.Parallel()

	start := func(t *testing.T) *Session {
		s := newTestSession(t, &fixedSource{ints: []int{0}}, DefaultRules(), 0, 3, 5)
		_, err := s.StartHand()
		require.NoError(t, err)
		return s
	}

	t.Run("no hand in progress", func(t *testing.T) {
		s := newTestSession(t, randutil.New(1), DefaultRules(), 0, 3)
		require.ErrorIs(t, s.Settle(map[int]int{0: 0}), ErrNoHandInProgress)
	})

	t.Run("awards must match the pot", func(t *testing.T) {
		s := start(t)
		require.ErrorIs(t, s.Settle(map[int]int{0: 10}), ErrChipsNotConserved)
		require.ErrorIs(t, s.Settle(map[int]int{0: 10, 3: 10}), ErrChipsNotConserved)
		assert.False(t, s.Settled())
	})

	t.Run("negative award", func(t *testing.T) {
		s := start(t)
		require.ErrorIs(t, s.Settle(map[int]int{0: -1}), ErrInvalidAmount)
	})

	t.Run("empty seat", func(t *testing.T) {
		s := start(t)
		require.ErrorIs(t, s.Settle(map[int]int{8: 15}), ErrEmptySeat)
	})

	t.Run("split pot", func(t *testing.T) {
		s := start(t)
		before := totalStacks(s.Table()) + s.Table().Pot()

		require.NoError(t, s.Settle(map[int]int{0: 7, 5: 8}))
		assert.True(t, s.Settled())
		assert.Equal(t, 1007, s.Table().Player(0).Stack)
		assert.Equal(t, before, totalStacks(s.Table()))

		require.ErrorIs(t, s.Settle(map[int]int{0: 15}), ErrAlreadySettled)
	})
}

func TestAbandonHand(t *testing.T) {
	t.Parallel()

	s := newTestSession(t, &fixedSource{ints: []int{0}}, DefaultRules(), 0, 3, 5)
	refunds, err := s.AbandonHand()
	require.NoError(t, err)
	assert.Nil(t, refunds, "nothing to abandon before the first hand")

	_, err = s.StartHand()
	require.NoError(t, err)
	before := totalStacks(s.Table()) + s.Table().Pot()

	refunds, err = s.AbandonHand()
	require.NoError(t, err)
	assert.Equal(t, map[int]int{3: 5, 5: 10}, refunds)
	assert.Equal(t, before, totalStacks(s.Table()))
	assert.True(t, s.Settled())

	refunds, err = s.AbandonHand()
	require.NoError(t, err)
	assert.Nil(t, refunds, "a settled hand is left alone")
	assert.Equal(t, before, totalStacks(s.Table()))
}
