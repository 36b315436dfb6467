package bigtwo

import (
	"errors"
	"fmt"
)

// Reason is the machine readable code of a rejected action
type Reason string

// rejection reasons
const (
	ReasonInvalidShape    Reason = "invalid_shape"
	ReasonNotHeld         Reason = "not_held"
	ReasonNotClassifiable Reason = "not_classifiable"
	ReasonWrongOpener     Reason = "wrong_opener"
	ReasonDoesNotBeat     Reason = "does_not_beat"
	ReasonOutOfTurn       Reason = "out_of_turn"
	ReasonIllegalPass     Reason = "illegal_pass"
	ReasonRoundOver       Reason = "round_over"
	ReasonUnknownPlayer   Reason = "unknown_player"
)

// RuleError is a recoverable error. The round is never modified when one is returned
type RuleError struct {
	Reason  Reason
	Message string
}

func (r RuleError) Error() string {
	return r.Message
}

// Is matches any RuleError with the same reason
func (r RuleError) Is(target error) bool {
	var t RuleError
	if !errors.As(target, &t) {
		return false
	}

	return t.Reason == r.Reason
}

func newRuleError(reason Reason, format string, a ...interface{}) RuleError {
	return RuleError{
		Reason:  reason,
		Message: fmt.Sprintf(format, a...),
	}
}

// ErrInvalidShape is returned when a play has the wrong number of cards or duplicate cards
var ErrInvalidShape = RuleError{Reason: ReasonInvalidShape, Message: "a play must be 1, 2, 3, or 5 distinct cards"}

// ErrNotHeld is returned when a player plays cards they do not hold
var ErrNotHeld = RuleError{Reason: ReasonNotHeld, Message: "you do not hold those cards"}

// ErrNotClassifiable is returned when the cards do not form a valid hand
var ErrNotClassifiable = RuleError{Reason: ReasonNotClassifiable, Message: "those cards do not form a valid hand"}

// ErrWrongOpener is returned when the first trick of the round does not include the 3 of diamonds
var ErrWrongOpener = RuleError{Reason: ReasonWrongOpener, Message: "the first play of the round must include the 3♢"}

// ErrDoesNotBeat is returned when the play does not beat the last play of the trick
var ErrDoesNotBeat = RuleError{Reason: ReasonDoesNotBeat, Message: "your play does not beat the last play"}

// ErrOutOfTurn is returned when a player acts when it is not their turn
var ErrOutOfTurn = RuleError{Reason: ReasonOutOfTurn, Message: "it is not your turn"}

// ErrIllegalPass is returned when a pass is attempted on an empty table or by the trick owner
var ErrIllegalPass = RuleError{Reason: ReasonIllegalPass, Message: "you cannot pass right now"}

// ErrRoundOver is returned when an action is attempted after the round has finished
var ErrRoundOver = RuleError{Reason: ReasonRoundOver, Message: "the round is over"}

// ErrUnknownPlayer is returned when the player is not seated in the round
var ErrUnknownPlayer = RuleError{Reason: ReasonUnknownPlayer, Message: "player is not in this round"}

// ErrBrokenDeal is returned when a deal does not partition the deck or the 3♢ cannot be found
// This is a bug, and the round is never created
var ErrBrokenDeal = errors.New("broken deal")

// ErrDuplicatePlayer is returned when a player is given more than one seat
var ErrDuplicatePlayer = errors.New("a player cannot hold more than one seat")

// SeatCount is the number of players in a round
const SeatCount = 4

// PlayerCountError is an error on the number of players in the game
type PlayerCountError struct {
	Got int
}

func (p PlayerCountError) Error() string {
	return fmt.Sprintf("expected %d players, got %d", SeatCount, p.Got)
}
