package bigtwo

import (
	"errors"

	"bigtwo-server/pkg/deck"
)

// Result is the outcome of a submitted action
type Result struct {
	Accepted bool     `json:"accepted"`
	Category Category `json:"category,omitempty"`
	Reason   Reason   `json:"reason,omitempty"`
	Message  string   `json:"message,omitempty"`
}

// SubmitPlay plays the cards and reports the outcome
func SubmitPlay(r *Round, playerID int64, cards deck.Hand) Result {
	play, err := r.Play(playerID, cards)
	if err != nil {
		return rejected(err)
	}

	return Result{
		Accepted: true,
		Category: play.Category,
	}
}

// SubmitPass passes and reports the outcome
func SubmitPass(r *Round, playerID int64) Result {
	if err := r.Pass(playerID); err != nil {
		return rejected(err)
	}

	return Result{Accepted: true}
}

func rejected(err error) Result {
	var ruleErr RuleError
	if errors.As(err, &ruleErr) {
		return Result{
			Reason:  ruleErr.Reason,
			Message: ruleErr.Message,
		}
	}

	return Result{Message: err.Error()}
}
