package deck

import (
	"sort"
	"strings"
)

// Hand represents a collection of cards
type Hand []Card

func (h Hand) Len() int {
	return len(h)
}

func (h Hand) Less(i, j int) bool {
	return h[i].Less(h[j])
}

func (h Hand) Swap(i, j int) {
	h[i], h[j] = h[j], h[i]
}

// Sort sorts the hand in place by card value
func (h Hand) Sort() {
	sort.Sort(h)
}

// Sorted returns a sorted clone of the hand
func (h Hand) Sorted() Hand {
	h2 := h.Clone()
	h2.Sort()
	return h2
}

// HasCard returns true if the hand contains the specified card
func (h Hand) HasCard(card Card) bool {
	for _, c := range h {
		if c == card {
			return true
		}
	}

	return false
}

// HasDuplicates returns true if any card appears more than once
func (h Hand) HasDuplicates() bool {
	seen := make(map[Card]bool, len(h))
	for _, c := range h {
		if seen[c] {
			return true
		}

		seen[c] = true
	}

	return false
}

// Discard will discard the specified card and return true if it was found
func (h *Hand) Discard(card Card) bool {
	for i, c := range *h {
		if c == card {
			*h = append((*h)[:i:i], (*h)[i+1:]...)
			return true
		}
	}

	return false
}

// HighCard returns the highest card in the hand
// The second value is false if the hand is empty
func (h Hand) HighCard() (Card, bool) {
	if len(h) == 0 {
		return Card{}, false
	}

	high := h[0]
	for _, c := range h[1:] {
		if high.Less(c) {
			high = c
		}
	}

	return high, true
}

// Strength is the sum of card values in the hand
func (h Hand) Strength() int {
	sum := 0
	for _, c := range h {
		sum += c.Value()
	}

	return sum
}

func (h Hand) String() string {
	return CardsToString(h)
}

// Pretty returns the hand using suit symbols, separated by spaces
func (h Hand) Pretty() string {
	c := make([]string, len(h))
	for i, card := range h {
		c[i] = card.Pretty()
	}

	return strings.Join(c, " ")
}

// Clone returns a clone of the hand
func (h Hand) Clone() Hand {
	h2 := make(Hand, len(h))
	copy(h2, h)

	return h2
}
