package game

import (
	"fmt"
	"slices"
)

// EndReason explains why a betting round finished
type EndReason int

const (
	NotFinished EndReason = iota
	OnlyOneUnfolded
	EveryoneAllIn
	AllMatchedAndActed
)

func (r EndReason) String() string {
	switch r {
	case NotFinished:
		return "NotFinished"
	case OnlyOneUnfolded:
		return "OnlyOneUnfolded"
	case EveryoneAllIn:
		return "AllIn"
	case AllMatchedAndActed:
		return "AllActiveMatchedAndActed"
	default:
		return fmt.Sprintf("EndReason(%d)", int(r))
	}
}

// RoundConfig configures a BettingRound.
type RoundConfig struct {
	// FirstToAct is the seat obligated to act first, normally from FirstToAct.
	FirstToAct int
	// BigBlind is the minimum bet and the default raise increment.
	BigBlind int
	// StartingBets seeds chips already committed this street, e.g. posted
	// blinds on preflop. Antes do not belong here.
	StartingBets map[int]int
	// ReopenOnShortAllIn lets an all-in raise smaller than the last full raise
	// reopen betting for players who already acted.
	ReopenOnShortAllIn bool
}

// ActionOptions describes what a seat may legally do right now.
type ActionOptions struct {
	Seat               int
	ToCall             int
	CurrentBet         int
	LastRaiseIncrement int
	MinBet             int
	// MinRaiseTo is the smallest legal raise-to total; 0 while the street is unopened.
	MinRaiseTo int
	MaxCommit  int
	Actions    []ActionType

	// Amounts expressed as stack deltas, matching Action.Amount.
	CallAmount     int
	MinRaiseAmount int // 0 while the street is unopened
	AllInAmount    int

	// RaiseBlocked is set when a short all-in raise closed raising for this seat.
	RaiseBlocked bool
}

// Can reports whether the action type is currently legal.
func (o ActionOptions) Can(a ActionType) bool {
	return slices.Contains(o.Actions, a)
}

// BettingRound tracks the wagering of exactly one street.
type BettingRound struct {
	table              *Table
	bigBlind           int
	reopenOnShortAllIn bool

	betThisStreet []int
	currentBet    int
	lastRaiseInc  int
	committed     int

	nextToAct int
	reason    EndReason

	actedSinceReopen []bool
	shortRaisePending bool
}

// NewBettingRound creates a betting round for the current street. The round is
// evaluated immediately, so it may already be finished (e.g. when only one
// player has not folded).
func NewBettingRound(t *Table, cfg RoundConfig) *BettingRound {
	br := &BettingRound{
		table:              t,
		bigBlind:           max(1, cfg.BigBlind),
		reopenOnShortAllIn: cfg.ReopenOnShortAllIn,
		betThisStreet:      make([]int, t.MaxSeats()),
		actedSinceReopen:   make([]bool, t.MaxSeats()),
		nextToAct:          cfg.FirstToAct,
	}

	for seat, amount := range cfg.StartingBets {
		if seat < 0 || seat >= t.MaxSeats() {
			continue
		}
		br.betThisStreet[seat] = max(0, amount)
		br.currentBet = max(br.currentBet, br.betThisStreet[seat])
	}

	// Forced bets open the street and set the first raise increment; an
	// unopened street starts from the big blind.
	if br.currentBet > 0 {
		br.lastRaiseInc = br.currentBet
	} else {
		br.lastRaiseInc = br.bigBlind
	}

	br.recomputeTerminalState()
	return br
}

// CurrentBet returns the amount every active player must match
func (br *BettingRound) CurrentBet() int { return br.currentBet }

// LastRaiseIncrement returns the size of the last full bet or raise
func (br *BettingRound) LastRaiseIncrement() int { return br.lastRaiseInc }

// BigBlind returns the minimum bet of the round
func (br *BettingRound) BigBlind() int { return br.bigBlind }

// BetThisStreet returns the chips a seat has committed on this street
func (br *BettingRound) BetThisStreet(seat int) int {
	if seat < 0 || seat >= len(br.betThisStreet) {
		return 0
	}
	return br.betThisStreet[seat]
}

// Committed returns the chips moved from stacks by actions applied to this
// round. Starting bets are not included.
func (br *BettingRound) Committed() int { return br.committed }

// NextToAct returns the seat whose turn it is, or NoSeat, false once finished.
func (br *BettingRound) NextToAct() (int, bool) {
	if br.reason != NotFinished || br.nextToAct == NoSeat {
		return NoSeat, false
	}
	return br.nextToAct, true
}

// Finished reports whether the round is over
func (br *BettingRound) Finished() bool { return br.reason != NotFinished }

// EndReason returns why the round finished, or NotFinished.
func (br *BettingRound) EndReason() EndReason { return br.reason }

// ToCall returns what an active seat must add to match the current bet.
func (br *BettingRound) ToCall(seat int) int {
	p := br.table.Player(seat)
	if p == nil || p.Status != StatusActive {
		return 0
	}
	return max(0, br.currentBet-br.betThisStreet[seat])
}

// MinRaiseTo returns the minimum raise-to total for an active seat. It reports
// false while the street is unopened, where a raise does not exist.
func (br *BettingRound) MinRaiseTo(seat int) (int, bool) {
	p := br.table.Player(seat)
	if p == nil || p.Status != StatusActive || br.currentBet <= 0 {
		return 0, false
	}
	return br.currentBet + br.lastRaiseInc, true
}

// raiseBlocked reports whether a short all-in raise has closed raising for seat.
// Seats that have not acted since the last full reopen may still raise.
func (br *BettingRound) raiseBlocked(seat int) bool {
	return br.shortRaisePending && br.actedSinceReopen[seat] && !br.reopenOnShortAllIn
}

// Options returns the legal actions for a seat. Seats that are not Active get
// an options record with no actions.
func (br *BettingRound) Options(seat int) (ActionOptions, error) {
	p := br.table.Player(seat)
	if p == nil {
		return ActionOptions{}, fmt.Errorf("%w: %d", ErrEmptySeat, seat)
	}

	opts := ActionOptions{
		Seat:               seat,
		CurrentBet:         br.currentBet,
		LastRaiseIncrement: br.lastRaiseInc,
		MinBet:             br.bigBlind,
	}
	if p.Status != StatusActive {
		return opts, nil
	}

	toCall := br.ToCall(seat)
	maxCommit := p.Stack
	minRaiseTo, opened := br.MinRaiseTo(seat)

	opts.ToCall = toCall
	opts.MaxCommit = maxCommit
	opts.CallAmount = min(maxCommit, toCall)
	opts.AllInAmount = maxCommit
	opts.RaiseBlocked = br.raiseBlocked(seat)
	if opened {
		opts.MinRaiseTo = minRaiseTo
		opts.MinRaiseAmount = max(0, minRaiseTo-br.betThisStreet[seat])
	}

	actions := []ActionType{Fold}
	if toCall == 0 {
		actions = append(actions, Check)
		if maxCommit > 0 {
			if br.currentBet == 0 {
				actions = append(actions, Bet)
			}
			actions = append(actions, AllIn)
		}
	} else {
		actions = append(actions, Call)
		if !opts.RaiseBlocked && opened &&
			br.betThisStreet[seat]+maxCommit >= minRaiseTo && maxCommit > toCall {
			actions = append(actions, Raise)
		}
		if maxCommit > 0 {
			actions = append(actions, AllIn)
		}
	}
	opts.Actions = actions
	return opts, nil
}

// Apply validates and applies an action from the seat whose turn it is. On
// error the round and the table are left untouched.
func (br *BettingRound) Apply(a Action) error {
	if br.Finished() {
		return fmt.Errorf("%w (reason=%s)", ErrRoundFinished, br.reason)
	}
	if br.nextToAct == NoSeat {
		return fmt.Errorf("%w: no seat to act", ErrRoundFinished)
	}
	if a.Seat != br.nextToAct {
		return fmt.Errorf("%w: actor=%d, expected=%d", ErrOutOfTurn, a.Seat, br.nextToAct)
	}

	seat := a.Seat
	p := br.table.Player(seat)
	if p == nil {
		return fmt.Errorf("%w: %d", ErrEmptySeat, seat)
	}
	if p.Status != StatusActive {
		return fmt.Errorf("%w: seat %d is %s", ErrSeatCannotAct, seat, p.Status)
	}
	if a.Amount < 0 {
		return fmt.Errorf("%w: negative amount %d", ErrInvalidAmount, a.Amount)
	}

	opts, err := br.Options(seat)
	if err != nil {
		return err
	}
	if !opts.Can(a.Type) {
		return fmt.Errorf("%w: %s at seat %d (toCall=%d, currentBet=%d)",
			ErrIllegalAction, a.Type, seat, opts.ToCall, opts.CurrentBet)
	}

	switch a.Type {
	case Fold:
		if a.Amount != 0 {
			return fmt.Errorf("%w: fold amount must be 0", ErrInvalidAmount)
		}
		p.Status = StatusFolded
		br.actedSinceReopen[seat] = true

	case Check:
		if a.Amount != 0 {
			return fmt.Errorf("%w: check amount must be 0", ErrInvalidAmount)
		}
		if opts.ToCall != 0 {
			return fmt.Errorf("%w: cannot check facing %d", ErrIllegalAction, opts.ToCall)
		}
		br.actedSinceReopen[seat] = true

	case Call:
		if a.Amount != opts.CallAmount {
			return fmt.Errorf("%w: call amount %d, expected %d", ErrInvalidAmount, a.Amount, opts.CallAmount)
		}
		if err := br.commit(p, seat, a.Amount); err != nil {
			return err
		}
		br.actedSinceReopen[seat] = true

	case Bet:
		if br.currentBet != 0 {
			return fmt.Errorf("%w: bet only valid on an unopened street", ErrIllegalAction)
		}
		if a.Amount < br.bigBlind {
			return fmt.Errorf("%w: bet %d below minimum %d", ErrInvalidAmount, a.Amount, br.bigBlind)
		}
		if a.Amount > p.Stack {
			return fmt.Errorf("%w: bet %d > stack %d", ErrInsufficientChips, a.Amount, p.Stack)
		}
		if err := br.commit(p, seat, a.Amount); err != nil {
			return err
		}
		br.currentBet = br.betThisStreet[seat]
		br.lastRaiseInc = a.Amount
		br.fullReopen(seat)

	case Raise:
		if br.currentBet <= 0 {
			return fmt.Errorf("%w: raise requires an opened street", ErrIllegalAction)
		}
		if opts.RaiseBlocked {
			return fmt.Errorf("%w: raising closed by short all-in", ErrIllegalAction)
		}
		if a.Amount > p.Stack {
			return fmt.Errorf("%w: raise %d > stack %d", ErrInsufficientChips, a.Amount, p.Stack)
		}
		total := br.betThisStreet[seat] + a.Amount
		if minTo := br.currentBet + br.lastRaiseInc; total < minTo {
			return fmt.Errorf("%w: raise to %d below minimum %d", ErrInvalidAmount, total, minTo)
		}
		if err := br.commit(p, seat, a.Amount); err != nil {
			return err
		}
		br.lastRaiseInc = total - br.currentBet
		br.currentBet = total
		br.fullReopen(seat)

	case AllIn:
		if a.Amount != p.Stack {
			return fmt.Errorf("%w: all-in must be the whole stack %d, got %d", ErrInvalidAmount, p.Stack, a.Amount)
		}
		if a.Amount <= 0 {
			return fmt.Errorf("%w: all-in with empty stack", ErrInvalidAmount)
		}
		br.applyAllIn(p, seat, a.Amount)

	default:
		return fmt.Errorf("%w: unsupported action %s", ErrIllegalAction, a.Type)
	}

	br.recomputeTerminalState()
	if !br.Finished() {
		next, ok := br.table.NextSeat(seat, false, IsActive)
		if !ok {
			next = NoSeat
		}
		br.nextToAct = next
		br.recomputeTerminalState()
	}
	return nil
}

func (br *BettingRound) applyAllIn(p *Player, seat, amount int) {
	prevBet := br.currentBet
	prevInc := br.lastRaiseInc

	// amount equals the stack, so the commit cannot fail
	_ = br.commit(p, seat, amount)
	total := br.betThisStreet[seat]

	if total <= prevBet {
		// All-in call or short call: the bet level is unchanged.
		br.actedSinceReopen[seat] = true
		return
	}

	br.currentBet = total
	if prevBet == 0 {
		if total >= br.bigBlind {
			br.lastRaiseInc = total
			br.fullReopen(seat)
		} else {
			// Sub-minimum opening all-in. Nobody has acted yet so there is
			// nothing to reopen, and the minimum raise stays the big blind.
			br.lastRaiseInc = br.bigBlind
			br.actedSinceReopen[seat] = true
		}
		return
	}

	inc := total - prevBet
	switch {
	case inc >= prevInc:
		br.lastRaiseInc = inc
		br.fullReopen(seat)
	case br.reopenOnShortAllIn:
		// Reopen, but the minimum raise still follows the last full raise.
		br.fullReopen(seat)
	default:
		br.shortRaisePending = true
		br.actedSinceReopen[seat] = true
	}
}

func (br *BettingRound) commit(p *Player, seat, amount int) error {
	if err := p.commit(amount); err != nil {
		return err
	}
	br.betThisStreet[seat] += amount
	br.committed += amount
	return nil
}

// fullReopen gives every other active seat a fresh chance to act.
func (br *BettingRound) fullReopen(aggressor int) {
	br.shortRaisePending = false
	for _, seat := range br.table.Seats(IsActive) {
		br.actedSinceReopen[seat] = false
	}
	br.actedSinceReopen[aggressor] = true
}

func (br *BettingRound) finish(reason EndReason) {
	br.reason = reason
	br.nextToAct = NoSeat
}

func (br *BettingRound) recomputeTerminalState() {
	if br.table.Count(Contesting) <= 1 {
		br.finish(OnlyOneUnfolded)
		return
	}

	anyActive := false
	anyPending := false
	for _, seat := range br.table.Seats(IsActive) {
		anyActive = true
		matched := br.betThisStreet[seat] >= br.currentBet
		if !matched || !br.actedSinceReopen[seat] {
			anyPending = true
		}
	}

	switch {
	case !anyActive:
		br.finish(EveryoneAllIn)
	case !anyPending:
		br.finish(AllMatchedAndActed)
	default:
		br.reason = NotFinished
	}
}
