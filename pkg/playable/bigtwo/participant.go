package bigtwo

import "bigtwo-server/pkg/deck"

// Participant is a seated player in the round
type Participant struct {
	PlayerID int64
	Seat     int
	hand     deck.Hand
}

func newParticipant(playerID int64, seat int, hand deck.Hand) *Participant {
	return &Participant{
		PlayerID: playerID,
		Seat:     seat,
		hand:     hand.Sorted(),
	}
}

// Hand returns a sorted copy of the participant's hand
func (p *Participant) Hand() deck.Hand {
	return p.hand.Sorted()
}

// CardsLeft returns the number of cards still held
func (p *Participant) CardsLeft() int {
	return len(p.hand)
}

// HoldsAll returns true if every card is in the participant's hand
func (p *Participant) HoldsAll(cards deck.Hand) bool {
	for _, card := range cards {
		if !p.hand.HasCard(card) {
			return false
		}
	}

	return true
}

// removeCards expects HoldsAll to have been checked
func (p *Participant) removeCards(cards deck.Hand) {
	for _, card := range cards {
		p.hand.Discard(card)
	}
}
