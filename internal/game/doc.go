// Package game implements the no-limit Texas Hold'em betting rules for a
// single table.
//
// The package has three cooperating parts:
//   - FirstToAct computes who opens each street (heads-up and 3+ handed).
//   - BettingRound tracks one street of wagering: legal actions, bet and raise
//     sizing, short all-in reopening and round termination.
//   - Session owns the table and the multi-hand lifecycle: button rotation,
//     antes and blinds, bust-outs and the session result.
//
// # Basic Usage
//
//	s := game.NewRandomSession(randutil.New(42))
//	hand, _ := s.StartHand()
//	seat, _ := game.FirstToAct(s.Table(), game.Preflop)
//	br := game.NewBettingRound(s.Table(), game.RoundConfig{
//	    FirstToAct:   seat,
//	    BigBlind:     s.Rules().BigBlind,
//	    StartingBets: hand.PostedBlinds,
//	})
//	opts, _ := br.Options(seat)
//	err := br.Apply(game.Action{Seat: seat, Type: game.Call, Amount: opts.CallAmount})
//
// # Chips
//
// Stacks only change through a single commit primitive shared by blind/ante
// posting and betting, and through Session.Settle which pays out the pot. A
// player whose stack reaches exactly zero becomes AllIn.
//
// Contract violations (out-of-turn actions, illegal amounts, missing table
// state) are returned as wrapped sentinel errors; see errors.go.
package game
