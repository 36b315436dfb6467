package bigtwo

// Beats returns true if the challenger legally beats the incumbent
// A hand never beats an equal hand. Hands of a different size, or invalid hands, never beat anything
func Beats(challenger, incumbent *Classification) bool {
	if !challenger.IsValid() || !incumbent.IsValid() {
		return false
	}

	if len(challenger.Cards) != len(incumbent.Cards) {
		return false
	}

	if challenger.Category != incumbent.Category {
		// only five-card hands can be beaten by a different category
		if challenger.Category.IsFiveCard() && incumbent.Category.IsFiveCard() {
			return challenger.Category.Strength() > incumbent.Category.Strength()
		}

		return false
	}

	switch challenger.Category {
	case Single, Pair, Triple:
		return outranks(challenger, incumbent)
	case Straight, Flush, StraightFlush:
		// High is already small-ace remapped for the low straights
		return outranks(challenger, incumbent)
	case RoyalFlush:
		return challenger.Decisive.Suit > incumbent.Decisive.Suit
	case FullHouse, FourOfAKind:
		return challenger.Body > incumbent.Body
	case Invalid:
		return false
	}

	return false
}

func outranks(challenger, incumbent *Classification) bool {
	if challenger.High != incumbent.High {
		return challenger.High > incumbent.High
	}

	return challenger.Decisive.Suit > incumbent.Decisive.Suit
}
