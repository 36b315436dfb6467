package bigtwo

import "bigtwo-server/pkg/deck"

// BalancePolicy decides if a deal is fair enough to play
type BalancePolicy func(hands [SeatCount]deck.Hand) bool

// BalanceRule is the default balance policy
type BalanceRule struct {
	// MaxTwos is the most 2s a single seat may hold
	MaxTwos int
	// MinStrength and MaxStrength bound the sum of card values in each seat
	// The average seat strength is 799.5
	MinStrength int
	MaxStrength int
}

// DefaultBalanceRule returns the default balance rule
func DefaultBalanceRule() BalanceRule {
	return BalanceRule{
		MaxTwos:     2,
		MinStrength: 650,
		MaxStrength: 900,
	}
}

// Accepts returns true if every seat satisfies the rule
func (b BalanceRule) Accepts(hands [SeatCount]deck.Hand) bool {
	for _, hand := range hands {
		twos := 0
		for _, card := range hand {
			if card.Rank == deck.Two {
				twos++
			}
		}

		if twos > b.MaxTwos {
			return false
		}

		strength := hand.Strength()
		if strength < b.MinStrength || strength > b.MaxStrength {
			return false
		}
	}

	return true
}

// DefaultBalance is the policy used when none is set
func DefaultBalance(hands [SeatCount]deck.Hand) bool {
	return DefaultBalanceRule().Accepts(hands)
}

// Options are options for a big two round
type Options struct {
	// Balance will reshuffle until BalancePolicy accepts the deal
	Balance       bool
	BalancePolicy BalancePolicy

	// MaxShuffleAttempts caps the reshuffles. The last shuffle is kept once reached
	MaxShuffleAttempts int

	// Seed makes the deal reproducible. 0 uses a crypto generator
	Seed int64
}

// DefaultOptions returns the default options
func DefaultOptions() Options {
	return Options{
		Balance:            true,
		BalancePolicy:      DefaultBalance,
		MaxShuffleAttempts: 1000,
	}
}
