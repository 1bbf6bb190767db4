package game

import (
	"fmt"
	"io"
	"maps"

	"github.com/charmbracelet/log"

	"github.com/lox/holdem-engine/internal/randutil"
)

// Result is the session-level outcome
type Result int

const (
	InProgress Result = iota
	HumanBusted
	HumanWon
)

func (r Result) String() string {
	switch r {
	case InProgress:
		return "InProgress"
	case HumanBusted:
		return "HumanBusted"
	case HumanWon:
		return "HumanWon"
	default:
		return fmt.Sprintf("Result(%d)", int(r))
	}
}

// DefaultMaxSeats is the table size used when none is configured.
const DefaultMaxSeats = 9

// Rules are the gameplay settings of a session. They are read once when a
// session is created and never change afterwards.
type Rules struct {
	StartingStack      int
	SmallBlind         int
	BigBlind           int
	Ante               int
	BurnCards          bool
	ReopenOnShortAllIn bool
}

// DefaultRules returns 1000 chip stacks at 5/10 with burn cards and no
// reopening on short all-in raises.
func DefaultRules() Rules {
	return Rules{
		StartingStack: 1000,
		SmallBlind:    5,
		BigBlind:      10,
		Ante:          0,
		BurnCards:     true,
	}
}

// Sanitize clamps out-of-range values: the starting stack is at least 1, blinds
// and ante are non-negative and the big blind is never below the small blind.
func (r Rules) Sanitize() Rules {
	r.StartingStack = max(1, r.StartingStack)
	r.SmallBlind = max(0, r.SmallBlind)
	r.BigBlind = max(r.SmallBlind, max(0, r.BigBlind))
	r.Ante = max(0, r.Ante)
	return r
}

// HandStart is produced once per hand by StartHand. Treat it as immutable.
type HandStart struct {
	HandNumber   int
	Button       int
	SmallBlind   int
	BigBlind     int
	PostedAntes  map[int]int // seat -> amount
	PostedBlinds map[int]int // seat -> amount
	// StartingStacks holds every dealt-in seat's stack before antes and blinds.
	StartingStacks map[int]int
}

// SessionOption configures a Session during creation.
type SessionOption func(*Session)

// WithMaxSeats sets the table size (minimum 2).
func WithMaxSeats(n int) SessionOption {
	return func(s *Session) { s.maxSeats = n }
}

// WithRules sets the gameplay rules. They are sanitised before use.
func WithRules(r Rules) SessionOption {
	return func(s *Session) { s.rules = r }
}

// WithLogger sets the session logger.
func WithLogger(l *log.Logger) SessionOption {
	return func(s *Session) { s.logger = l }
}

// Session owns the table, the roster and the multi-hand lifecycle. It is the
// only mutator of button/blind assignment and of bust-driven seat removal.
type Session struct {
	table    *Table
	rng      randutil.Source
	rules    Rules
	logger   *log.Logger
	maxSeats int

	players    []*Player
	handNumber int
	result     Result

	current *HandStart
	settled bool
}

// NewSession creates an empty session. The random source drives seating and
// the first button; shuffles done by the hand flow use it as well.
func NewSession(rng randutil.Source, opts ...SessionOption) *Session {
	if rng == nil {
		panic("rng is required for session creation")
	}
	s := &Session{
		rng:      rng,
		rules:    DefaultRules(),
		maxSeats: DefaultMaxSeats,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = log.New(io.Discard)
	}
	s.rules = s.rules.Sanitize()
	s.table = NewTable(s.maxSeats)
	return s
}

// NewRandomSession creates a session and seats a random table with one human.
func NewRandomSession(rng randutil.Source, opts ...SessionOption) *Session {
	s := NewSession(rng, opts...)
	s.SeatRandomly()
	return s
}

// Table returns the session table
func (s *Session) Table() *Table { return s.table }

// Rules returns the sanitised rules
func (s *Session) Rules() Rules { return s.rules }

// Rand returns the session random source
func (s *Session) Rand() randutil.Source { return s.rng }

// Players returns the roster, including players who have left their seat
func (s *Session) Players() []*Player { return s.players }

// HandNumber returns the number of hands started so far
func (s *Session) HandNumber() int { return s.handNumber }

// Result returns the session result
func (s *Session) Result() Result { return s.result }

// CurrentHand returns the record of the hand in progress, if any.
func (s *Session) CurrentHand() (HandStart, bool) {
	if s.current == nil {
		return HandStart{}, false
	}
	return *s.current, true
}

// Human returns the human player, or nil.
func (s *Session) Human() *Player {
	for _, p := range s.players {
		if p.Human {
			return p
		}
	}
	return nil
}

// HumanSeat returns the seat of the human player.
func (s *Session) HumanSeat() (int, error) {
	h := s.Human()
	if h == nil || h.Seat == NoSeat {
		return NoSeat, ErrNoHuman
	}
	return h.Seat, nil
}

// EligibleSeats returns seats that can be dealt into the next hand.
func (s *Session) EligibleSeats() []int {
	return s.table.Seats(Eligible)
}

// AddPlayer seats a new player with the given stack (the starting stack when
// stack <= 0).
func (s *Session) AddPlayer(seat int, id, name string, human bool, stack int) (*Player, error) {
	if stack <= 0 {
		stack = s.rules.StartingStack
	}
	p := NewPlayer(id, name, human, stack)
	if err := s.table.Sit(seat, p); err != nil {
		return nil, err
	}
	s.players = append(s.players, p)
	return p, nil
}

// SeatRandomly clears the table and seats between 2 and min(9, max seats)
// players in random seats, one of whom is human.
func (s *Session) SeatRandomly() {
	s.table.Clear()
	s.players = nil
	s.handNumber = 0
	s.result = InProgress
	s.current = nil

	n := min(min(9, s.table.MaxSeats()), s.rng.IntN(8)+2)

	seats := make([]int, s.table.MaxSeats())
	for i := range seats {
		seats[i] = i
	}
	randutil.Shuffle(s.rng, len(seats), func(i, j int) { seats[i], seats[j] = seats[j], seats[i] })

	humanIndex := s.rng.IntN(n)
	botNumber := 1
	for i := range n {
		var id, name string
		human := i == humanIndex
		if human {
			id, name = "HUMAN", "You"
		} else {
			id, name = fmt.Sprintf("BOT_%d", botNumber), fmt.Sprintf("Bot-%d", botNumber)
			botNumber++
		}
		// seats are distinct and in range, Sit cannot fail
		_, _ = s.AddPlayer(seats[i], id, name, human, s.rules.StartingStack)
	}
	s.logger.Debug("Seated random table", "players", n, "human_seat", seats[humanIndex])
}

// StartHand applies the bust rules, rotates the button, assigns the blinds and
// posts antes and blinds.
func (s *Session) StartHand() (HandStart, error) {
	if s.result != InProgress {
		return HandStart{}, fmt.Errorf("%w: %s", ErrSessionEnded, s.result)
	}
	if _, err := s.ApplyBrokeRules(); err != nil {
		return HandStart{}, err
	}
	if s.result != InProgress {
		return HandStart{}, fmt.Errorf("%w: %s", ErrSessionEnded, s.result)
	}

	eligible := s.EligibleSeats()
	if len(eligible) < 2 {
		return HandStart{}, fmt.Errorf("%w: %d eligible seats", ErrNotEnoughPlayers, len(eligible))
	}

	for _, p := range s.players {
		p.resetForHand()
	}
	s.table.resetCards()
	s.handNumber++
	s.settled = false

	t := s.table
	var button int
	if t.Button == NoSeat {
		button = eligible[s.rng.IntN(len(eligible))]
	} else {
		button, _ = t.NextSeat(t.Button, false, Eligible)
	}

	var sb, bb int
	if len(eligible) == 2 {
		sb = button
		bb, _ = t.NextSeat(button, false, Eligible)
	} else {
		sb, _ = t.NextSeat(button, false, Eligible)
		bb, _ = t.NextSeat(sb, false, Eligible)
	}
	t.Button, t.SmallBlind, t.BigBlind = button, sb, bb

	hs := HandStart{
		HandNumber:     s.handNumber,
		Button:         button,
		SmallBlind:     sb,
		BigBlind:       bb,
		PostedAntes:    make(map[int]int),
		PostedBlinds:   make(map[int]int),
		StartingStacks: make(map[int]int),
	}
	for _, seat := range t.Seats(InHand) {
		hs.StartingStacks[seat] = t.Player(seat).Stack
	}

	if s.rules.Ante > 0 {
		for _, seat := range t.Seats(Eligible) {
			hs.PostedAntes[seat] = t.Player(seat).post(s.rules.Ante)
		}
	}
	hs.PostedBlinds[sb] = t.Player(sb).post(s.rules.SmallBlind)
	hs.PostedBlinds[bb] = t.Player(bb).post(s.rules.BigBlind)

	s.current = &hs
	s.logger.Info("Hand started",
		"hand", hs.HandNumber,
		"button", button,
		"sb", sb,
		"bb", bb,
		"players", len(eligible))
	return hs, nil
}

// ApplyBrokeRules ends the session if the human is broke; otherwise it marks
// broke bots Out, vacates their seats and returns them. If the human is then
// the only player with chips the session is won.
func (s *Session) ApplyBrokeRules() ([]*Player, error) {
	human := s.Human()
	if human == nil {
		return nil, ErrNoHuman
	}
	if human.Stack <= 0 {
		human.Status = StatusOut
		s.result = HumanBusted
		s.logger.Info("Human busted", "hand", s.handNumber)
		return nil, nil
	}

	var removed []*Player
	for _, p := range s.players {
		if p.Human || p.Stack > 0 {
			continue
		}
		p.Status = StatusOut
		if p.Seat != NoSeat {
			s.logger.Info("Player busted", "player", p.Name, "seat", p.Seat)
			s.table.Vacate(p.Seat)
			removed = append(removed, p)
		}
	}

	withChips := 0
	for _, p := range s.players {
		if p.Stack > 0 {
			withChips++
		}
	}
	if withChips == 1 {
		s.result = HumanWon
		s.logger.Info("Human won the session", "hand", s.handNumber)
	}
	return removed, nil
}

// Settle credits the chips won in the current hand. Awards map seats to chips
// and must add up to every chip contributed this hand.
func (s *Session) Settle(awards map[int]int) error {
	if s.current == nil {
		return ErrNoHandInProgress
	}
	if s.settled {
		return fmt.Errorf("%w: hand %d", ErrAlreadySettled, s.handNumber)
	}

	total := 0
	for seat, amount := range awards {
		if s.table.Player(seat) == nil {
			return fmt.Errorf("%w: award to seat %d", ErrEmptySeat, seat)
		}
		if amount < 0 {
			return fmt.Errorf("%w: negative award %d to seat %d", ErrInvalidAmount, amount, seat)
		}
		total += amount
	}
	if pot := s.table.Pot(); total != pot {
		return fmt.Errorf("%w: awarded %d, pot %d", ErrChipsNotConserved, total, pot)
	}

	for seat, amount := range awards {
		s.table.Player(seat).Stack += amount
	}
	s.settled = true
	s.logger.Debug("Hand settled", "hand", s.handNumber, "awards", maps.Clone(awards))
	return nil
}

// Settled reports whether the current hand's pot has been paid out.
func (s *Session) Settled() bool { return s.settled }

// AbandonHand refunds every contribution of a hand that will not be played
// to the end and returns the refunds. It returns nil when no unsettled hand
// is in progress.
func (s *Session) AbandonHand() (map[int]int, error) {
	if s.current == nil || s.settled {
		return nil, nil
	}
	refunds := make(map[int]int)
	for _, seat := range s.table.Seats(func(p *Player) bool { return p.Contribution > 0 }) {
		refunds[seat] = s.table.Player(seat).Contribution
	}
	if err := s.Settle(refunds); err != nil {
		return nil, err
	}
	s.logger.Info("Hand abandoned", "hand", s.handNumber, "refunded", s.table.Pot())
	return refunds, nil
}
