package deck

import (
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// ErrInvalidCard is returned when a card token cannot be parsed
var ErrInvalidCard = errors.New("invalid card")

// Suit represents a card suit
// Suits are ordered Diamonds < Clubs < Hearts < Spades
type Suit int

// suit constants
const (
	Diamonds Suit = iota
	Clubs
	Hearts
	Spades
)

// Suits lists the suits in ascending order
var Suits = []Suit{Diamonds, Clubs, Hearts, Spades}

// Rank is the index of a card's face in table order, where 2 is the highest
type Rank int

// rank constants
const (
	Three Rank = iota
	Four
	Five
	Six
	Seven
	Eight
	Nine
	Ten
	Jack
	Queen
	King
	Ace
	Two
)

// Ranks lists the ranks in ascending table order
var Ranks = []Rank{Three, Four, Five, Six, Seven, Eight, Nine, Ten, Jack, Queen, King, Ace, Two}

var rankTokens = []string{"3", "4", "5", "6", "7", "8", "9", "10", "J", "Q", "K", "A", "2"}
var suitTokens = []string{"D", "C", "H", "S"}

// String returns the token for the rank (3, 10, J, 2, ...)
func (r Rank) String() string {
	if r < Three || r > Two {
		return fmt.Sprintf("Rank(%d)", int(r))
	}

	return rankTokens[r]
}

// String returns the single-letter token for the suit
func (s Suit) String() string {
	if s < Diamonds || s > Spades {
		return fmt.Sprintf("Suit(%d)", int(s))
	}

	return suitTokens[s]
}

// Symbol returns the unicode symbol for the suit
func (s Suit) Symbol() string {
	switch s {
	case Diamonds:
		return "♢"
	case Clubs:
		return "♣"
	case Hearts:
		return "♡"
	case Spades:
		return "♠"
	default:
		panic("unknown suit")
	}
}

// Card is an individual playing card
type Card struct {
	Rank Rank
	Suit Suit
}

// Value is the total order key of the card
// No two cards in a deck share a value
func (c Card) Value() int {
	return 10*int(c.Rank) + int(c.Suit)
}

// Less returns true if c is ordered before card
func (c Card) Less(card Card) bool {
	return c.Value() < card.Value()
}

// String returns the card in the <suit><rank> format, i.e., D3, H10, SA
func (c Card) String() string {
	return c.Suit.String() + c.Rank.String()
}

// Pretty returns the card with a suit symbol, i.e., 3♢
func (c Card) Pretty() string {
	return c.Rank.String() + c.Suit.Symbol()
}

// MarshalJSON encodes the card as its token
func (c Card) MarshalJSON() ([]byte, error) {
	return json.Marshal(c.String())
}

// UnmarshalJSON decodes a card token
func (c *Card) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}

	card, err := ParseCard(s)
	if err != nil {
		return err
	}

	*c = card
	return nil
}

var cardRx = regexp.MustCompile(`(?i)^\s*([dchs])\s*(10|[2-9]|[jqka])\s*\z`)

// ParseCard parses a card in the format of <suit><rank>
// Suit must be one of D, C, H, S and rank one of 3-10, J, Q, K, A, 2 (case-insensitive)
func ParseCard(s string) (Card, error) {
	match := cardRx.FindStringSubmatch(s)
	if match == nil {
		return Card{}, fmt.Errorf("%w: %q", ErrInvalidCard, s)
	}

	suit := indexOf(suitTokens, strings.ToUpper(match[1]))
	rank := indexOf(rankTokens, strings.ToUpper(match[2]))
	if suit < 0 || rank < 0 {
		// should never be hit due to the regexp
		return Card{}, fmt.Errorf("%w: %q", ErrInvalidCard, s)
	}

	return Card{Rank: Rank(rank), Suit: Suit(suit)}, nil
}

// ParseCards parses a comma or whitespace separated list of cards
func ParseCards(s string) (Hand, error) {
	fields := strings.FieldsFunc(s, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t'
	})

	cards := make(Hand, 0, len(fields))
	for _, field := range fields {
		card, err := ParseCard(field)
		if err != nil {
			return nil, err
		}

		cards = append(cards, card)
	}

	return cards, nil
}

// CardFromString returns a Card from the string and panics if it is not valid.
func CardFromString(s string) Card {
	card, err := ParseCard(s)
	if err != nil {
		panic(fmt.Sprintf("could not parse card: %v", err))
	}

	return card
}

// CardsFromString will return a slice of cards from a string like D3,C3,H3
func CardsFromString(s string) Hand {
	if s == "" {
		return Hand{}
	}

	cardStrings := strings.Split(s, ",")
	cards := make(Hand, len(cardStrings))
	for i, card := range cardStrings {
		cards[i] = CardFromString(card)
	}

	return cards
}

// CardsToString will convert a slice of cards to a string in the format of D3,C3,H3
func CardsToString(cards []Card) string {
	c := make([]string, len(cards))
	for i, card := range cards {
		c[i] = card.String()
	}

	return strings.Join(c, ",")
}

func indexOf(tokens []string, token string) int {
	for i, t := range tokens {
		if t == token {
			return i
		}
	}

	return -1
}
