package bigtwo

import (
	"bigtwo-server/pkg/deck"
)

// Classification is a hand that has been analyzed and the keys needed to compare it
type Classification struct {
	Category Category  `json:"category"`
	Cards    deck.Hand `json:"cards"`

	// Decisive is the card whose suit breaks a tie on High
	Decisive deck.Card `json:"decisive"`

	// High is the rank compared first. For the two low straights (A-2-3-4-5 and 2-3-4-5-6)
	// the ace and the two count below the three.
	High int `json:"high"`

	// Body is the rank of the larger group of a full house or four of a kind
	Body deck.Rank `json:"body"`
}

// IsValid returns true if the cards form one of the nine categories
func (c *Classification) IsValid() bool {
	return c != nil && c.Category.IsValid()
}

func (c *Classification) String() string {
	if !c.IsValid() {
		return Invalid.String()
	}

	return c.Category.String() + ": " + c.Cards.Pretty()
}

var invalid = &Classification{Category: Invalid}

// Classify determines the category of the cards
// The order of the cards does not matter, and the input is never modified
func Classify(cards deck.Hand) *Classification {
	n := len(cards)
	if n == 0 || n == 4 || n > 5 || cards.HasDuplicates() {
		return invalid
	}

	sorted := cards.Sorted()
	high := sorted[n-1]

	switch n {
	case 1:
		return ofAKind(Single, sorted)
	case 2:
		if sorted[0].Rank != high.Rank {
			return invalid
		}

		return ofAKind(Pair, sorted)
	case 3:
		if sorted[0].Rank != high.Rank || sorted[1].Rank != high.Rank {
			return invalid
		}

		return ofAKind(Triple, sorted)
	}

	return classifyFive(sorted)
}

func ofAKind(category Category, sorted deck.Hand) *Classification {
	high := sorted[len(sorted)-1]
	return &Classification{
		Category: category,
		Cards:    sorted,
		Decisive: high,
		High:     int(high.Rank),
		Body:     high.Rank,
	}
}

// classifyFive expects five distinct cards sorted by value
func classifyFive(sorted deck.Hand) *Classification {
	flush := isFlush(sorted)
	high := sorted[4]

	if decisive, ok := straightHigh(sorted); ok {
		c := &Classification{
			Category: Straight,
			Cards:    sorted,
			Decisive: decisive,
			High:     smallAceRank(sorted, decisive.Rank),
			Body:     decisive.Rank,
		}

		if flush {
			c.Category = StraightFlush
			if isRoyal(sorted) {
				c.Category = RoyalFlush
			}
		}

		return c
	}

	if flush {
		return &Classification{
			Category: Flush,
			Cards:    sorted,
			Decisive: high,
			High:     int(high.Rank),
			Body:     high.Rank,
		}
	}

	groups := groupByRank(sorted)
	if len(groups) != 2 {
		return invalid
	}

	body, kicker := groups[0], groups[1]
	if len(kicker.cards) > len(body.cards) {
		body, kicker = kicker, body
	}

	var category Category
	switch {
	case len(body.cards) == 3 && len(kicker.cards) == 2:
		category = FullHouse
	case len(body.cards) == 4 && len(kicker.cards) == 1:
		category = FourOfAKind
	default:
		return invalid
	}

	return &Classification{
		Category: category,
		Cards:    sorted,
		Decisive: body.cards[len(body.cards)-1],
		High:     int(body.rank),
		Body:     body.rank,
	}
}

func isFlush(cards deck.Hand) bool {
	for _, c := range cards[1:] {
		if c.Suit != cards[0].Suit {
			return false
		}
	}

	return true
}

// lowStraights are the two straights where the ace and the two play low
var lowStraights = []rankSet{
	newRankSet(deck.Ace, deck.Two, deck.Three, deck.Four, deck.Five),
	newRankSet(deck.Two, deck.Three, deck.Four, deck.Five, deck.Six),
}

// J-Q-K-A-2 is contiguous in table order, but is not a straight
var excludedStraight = newRankSet(deck.Jack, deck.Queen, deck.King, deck.Ace, deck.Two)

var royalRanks = newRankSet(deck.Ten, deck.Jack, deck.Queen, deck.King, deck.Ace)

// straightHigh returns the top card of the straight, or false if the cards are not a straight.
// cards must be sorted by value
func straightHigh(cards deck.Hand) (deck.Card, bool) {
	ranks := ranksOf(cards)
	if ranks == excludedStraight {
		return deck.Card{}, false
	}

	if isLowStraight(ranks) {
		// with the ace and two playing low, the top card is the highest card below the ace
		for i := len(cards) - 1; i >= 0; i-- {
			if cards[i].Rank < deck.Ace {
				return cards[i], true
			}
		}
	}

	for i := 1; i < len(cards); i++ {
		if cards[i].Rank != cards[i-1].Rank+1 {
			return deck.Card{}, false
		}
	}

	return cards[len(cards)-1], true
}

func isLowStraight(ranks rankSet) bool {
	for _, low := range lowStraights {
		if ranks == low {
			return true
		}
	}

	return false
}

func isRoyal(cards deck.Hand) bool {
	return ranksOf(cards) == royalRanks
}

// smallAceRank returns the rank used to compare a straight, where the ace and the two
// rank below the three in the two low straights only
func smallAceRank(cards deck.Hand, rank deck.Rank) int {
	if !isLowStraight(ranksOf(cards)) {
		return int(rank)
	}

	switch rank {
	case deck.Ace:
		return int(deck.Three) - 2
	case deck.Two:
		return int(deck.Three) - 1
	default:
		return int(rank)
	}
}

// rankSet is a bit set of ranks
type rankSet uint16

func newRankSet(ranks ...deck.Rank) rankSet {
	var s rankSet
	for _, r := range ranks {
		s |= 1 << uint(r)
	}

	return s
}

func ranksOf(cards deck.Hand) rankSet {
	var s rankSet
	for _, c := range cards {
		s |= 1 << uint(c.Rank)
	}

	return s
}

type rankGroup struct {
	rank  deck.Rank
	cards deck.Hand
}

// groupByRank groups sorted cards by rank, lowest rank first
func groupByRank(sorted deck.Hand) []rankGroup {
	groups := make([]rankGroup, 0, len(sorted))
	for _, c := range sorted {
		n := len(groups)
		if n > 0 && groups[n-1].rank == c.Rank {
			groups[n-1].cards = append(groups[n-1].cards, c)
			continue
		}

		groups = append(groups, rankGroup{rank: c.Rank, cards: deck.Hand{c}})
	}

	return groups
}
