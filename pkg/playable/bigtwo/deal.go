package bigtwo

import (
	"fmt"

	"bigtwo-server/internal/rng"
	"bigtwo-server/pkg/deck"
	"github.com/sirupsen/logrus"
)

// CardsPerSeat is the number of cards each seat is dealt
const CardsPerSeat = deck.Size / SeatCount

// Opener is the card that must be in the first play of the round
var Opener = deck.Card{Rank: deck.Three, Suit: deck.Diamonds}

// Deal deals the deck round-robin: card i goes to seat i mod 4
// Each hand is returned sorted
func Deal(d *deck.Deck) ([SeatCount]deck.Hand, error) {
	var hands [SeatCount]deck.Hand

	cards := deck.Hand(d.Cards)
	if len(cards) != deck.Size {
		return hands, fmt.Errorf("%w: deck has %d cards", ErrBrokenDeal, len(cards))
	}

	if cards.HasDuplicates() {
		return hands, fmt.Errorf("%w: deck has duplicate cards", ErrBrokenDeal)
	}

	for i := range hands {
		hands[i] = make(deck.Hand, 0, CardsPerSeat)
	}

	for i, card := range cards {
		seat := i % SeatCount
		hands[seat] = append(hands[seat], card)
	}

	for _, hand := range hands {
		hand.Sort()
	}

	return hands, nil
}

// ShuffleBalanced shuffles and deals until the balance policy accepts the deal
// The number of shuffles is returned. If opts.MaxShuffleAttempts is reached, the last deal is kept
func ShuffleBalanced(logger logrus.FieldLogger, d *deck.Deck, gen rng.Generator, opts Options) ([SeatCount]deck.Hand, int, error) {
	policy := opts.BalancePolicy
	if policy == nil {
		policy = DefaultBalance
	}

	maxAttempts := opts.MaxShuffleAttempts
	if maxAttempts < 1 {
		maxAttempts = 1
	}

	for attempt := 1; ; attempt++ {
		d.ShuffleWith(gen)
		hands, err := Deal(d)
		if err != nil {
			return hands, attempt, err
		}

		if !opts.Balance || policy(hands) {
			return hands, attempt, nil
		}

		if attempt >= maxAttempts {
			logger.WithField("attempts", attempt).Warn("no balanced deal found, keeping the last shuffle")
			return hands, attempt, nil
		}
	}
}

// FindOpener returns the seat holding the 3♢
func FindOpener(hands [SeatCount]deck.Hand) (int, error) {
	seat := -1
	for i, hand := range hands {
		if !hand.HasCard(Opener) {
			continue
		}

		if seat >= 0 {
			return -1, fmt.Errorf("%w: %s is held by seats %d and %d", ErrBrokenDeal, Opener, seat, i)
		}

		seat = i
	}

	if seat < 0 {
		return -1, fmt.Errorf("%w: nobody holds the %s", ErrBrokenDeal, Opener)
	}

	return seat, nil
}

// VerifyPartition ensures that every card of the deck is held by exactly one seat or has been played exactly once
func VerifyPartition(hands [SeatCount]deck.Hand, played []*Play) error {
	seen := make(map[deck.Card]bool, deck.Size)
	add := func(card deck.Card) error {
		if card.Rank < deck.Three || card.Rank > deck.Two || card.Suit < deck.Diamonds || card.Suit > deck.Spades {
			return fmt.Errorf("%w: %v is not a card", ErrBrokenDeal, card)
		}

		if seen[card] {
			return fmt.Errorf("%w: %s appears more than once", ErrBrokenDeal, card)
		}

		seen[card] = true
		return nil
	}

	for _, hand := range hands {
		for _, card := range hand {
			if err := add(card); err != nil {
				return err
			}
		}
	}

	for _, play := range played {
		for _, card := range play.Cards {
			if err := add(card); err != nil {
				return err
			}
		}
	}

	if len(seen) != deck.Size {
		return fmt.Errorf("%w: %d of %d cards accounted for", ErrBrokenDeal, len(seen), deck.Size)
	}

	return nil
}
