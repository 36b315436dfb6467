package bigtwo

import "fmt"

// Category is the type of hand formed by a play
// The numeric value is the category's strength
type Category int

// categories, weakest to strongest
const (
	Invalid Category = iota
	Single
	Pair
	Triple
	Straight
	Flush
	FullHouse
	FourOfAKind
	StraightFlush
	RoyalFlush
)

// Strength returns the strength of the category. Invalid has a strength of 0
func (c Category) Strength() int {
	return int(c)
}

// IsValid returns true if the category is one of the nine playable categories
func (c Category) IsValid() bool {
	return c >= Single && c <= RoyalFlush
}

// IsFiveCard returns true for the categories that are made of five cards
func (c Category) IsFiveCard() bool {
	return c >= Straight && c <= RoyalFlush
}

// Size returns the number of cards a hand of this category holds
func (c Category) Size() int {
	switch c {
	case Single:
		return 1
	case Pair:
		return 2
	case Triple:
		return 3
	case Straight, Flush, FullHouse, FourOfAKind, StraightFlush, RoyalFlush:
		return 5
	default:
		return 0
	}
}

func (c Category) String() string {
	switch c {
	case Invalid:
		return "Invalid"
	case Single:
		return "Single"
	case Pair:
		return "Pair"
	case Triple:
		return "Three of a Kind"
	case Straight:
		return "Straight"
	case Flush:
		return "Flush"
	case FullHouse:
		return "Full House"
	case FourOfAKind:
		return "Four of a Kind"
	case StraightFlush:
		return "Straight Flush"
	case RoyalFlush:
		return "Royal Flush"
	default:
		return fmt.Sprintf("Category(%d)", int(c))
	}
}

// MarshalText encodes the category by name
func (c Category) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}
