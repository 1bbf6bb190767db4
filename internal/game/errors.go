package game

import "errors"

// Contract violations. These indicate a caller bug rather than a game outcome
// and are always returned wrapped with context; match them with errors.Is.
var (
	ErrInvalidSeat       = errors.New("invalid seat")
	ErrSeatTaken         = errors.New("seat already occupied")
	ErrEmptySeat         = errors.New("seat is empty")
	ErrButtonUnset       = errors.New("button seat is not set")
	ErrBigBlindUnset     = errors.New("big blind seat is not set")
	ErrNoActor           = errors.New("no seat can act")
	ErrRoundFinished     = errors.New("betting round already finished")
	ErrOutOfTurn         = errors.New("action out of turn")
	ErrSeatCannotAct     = errors.New("seat cannot act")
	ErrIllegalAction     = errors.New("illegal action")
	ErrInvalidAmount     = errors.New("invalid amount")
	ErrInsufficientChips = errors.New("commit exceeds stack")
	ErrSessionEnded      = errors.New("session already ended")
	ErrNotEnoughPlayers  = errors.New("not enough players to start a hand")
	ErrNoHuman           = errors.New("no human player seated")
	ErrNoHandInProgress  = errors.New("no hand in progress")
	ErrAlreadySettled    = errors.New("hand already settled")
	ErrChipsNotConserved = errors.New("awards do not match contributions")
)
