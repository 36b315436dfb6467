package bigtwo

import (
	"testing"

	"bigtwo-server/internal/rng"
	"bigtwo-server/pkg/deck"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
)

var testPlayerIDs = []int64{1, 2, 3, 4}

// handsFor deals the listed cards to the first seats and every remaining card to the next seat
func handsFor(seats ...string) [SeatCount]deck.Hand {
	var hands [SeatCount]deck.Hand
	used := make(map[deck.Card]bool)
	for i, cards := range seats {
		hands[i] = deck.CardsFromString(cards)
		for _, c := range hands[i] {
			used[c] = true
		}
	}

	rest := deck.Hand{}
	for _, c := range deck.New().Cards {
		if !used[c] {
			rest = append(rest, c)
		}
	}

	hands[len(seats)] = rest
	return hands
}

// newTestRound seats players 1-4 in seats 0-3
func newTestRound(t *testing.T) *Round {
	t.Helper()

	hands := handsFor(
		"D3,C4,H4,S9",
		"C3,S5,D6,H6",
		"H3,D7,S7,DK",
	)

	r, err := newRoundFromHands(logrus.StandardLogger(), testPlayerIDs, hands)
	if err != nil {
		t.Fatal(err)
	}

	return r
}

func play(r *Round, playerID int64, cards string) Result {
	return SubmitPlay(r, playerID, deck.CardsFromString(cards))
}

func TestNewRound(t *testing.T) {
	a := assert.New(t)

	opts := DefaultOptions()
	opts.Seed = 42

	r, err := NewRound(logrus.StandardLogger(), testPlayerIDs, opts)
	a.NoError(err)
	a.Equal(PhaseAwaitingOpen, r.Phase())
	a.Equal(1, r.TrickNumber())
	a.Empty(r.TrickHistory())
	a.True(r.ShuffleAttempts() >= 1)
	a.NoError(r.verify())

	hand, err := r.HandOf(r.CurrentActor())
	a.NoError(err)
	a.True(hand.HasCard(Opener))

	_, ok := r.TrickOwner()
	a.False(ok)

	isOver, winner := r.IsFinished()
	a.False(isOver)
	a.Equal(int64(0), winner)

	a.Len(r.DealHash(), 40)

	// a seed makes the deal reproducible
	r2, err := NewRound(logrus.StandardLogger(), testPlayerIDs, opts)
	a.NoError(err)
	a.Equal(r.DealHash(), r2.DealHash())
	for _, id := range testPlayerIDs {
		h1, _ := r.HandOf(id)
		h2, _ := r2.HandOf(id)
		a.Equal(h1, h2)
		a.Equal(CardsPerSeat, len(h1))
	}
}

func TestNewRound_dealHash(t *testing.T) {
	a := assert.New(t)

	opts := DefaultOptions()
	opts.Seed = 42
	opts.Balance = false

	// an unbalanced deal shuffles exactly once, so the hash matches the deck
	d := deck.New()
	d.ShuffleWith(rng.Seeded(42))

	r, err := NewRound(logrus.StandardLogger(), testPlayerIDs, opts)
	a.NoError(err)
	a.Equal(1, r.ShuffleAttempts())
	a.Equal(d.HashCode(), r.DealHash())

	a.Empty(newTestRound(t).DealHash())
}

func TestNewRound_players(t *testing.T) {
	_, err := NewRound(logrus.StandardLogger(), []int64{1, 2, 3}, DefaultOptions())
	assert.Equal(t, PlayerCountError{Got: 3}, err)
	assert.EqualError(t, err, "expected 4 players, got 3")

	_, err = NewRound(logrus.StandardLogger(), []int64{1, 2, 3, 4, 5}, DefaultOptions())
	assert.Equal(t, PlayerCountError{Got: 5}, err)

	_, err = NewRound(logrus.StandardLogger(), []int64{1, 2, 3, 1}, DefaultOptions())
	assert.ErrorIs(t, err, ErrDuplicatePlayer)
}

func TestNewRound_brokenDeal(t *testing.T) {
	hands := handsFor("D3,C4", "C3")
	hands[1] = append(hands[1], deck.CardFromString("D3"))

	_, err := newRoundFromHands(logrus.StandardLogger(), testPlayerIDs, hands)
	assert.ErrorIs(t, err, ErrBrokenDeal)
}

func TestRound_scenario(t *testing.T) {
	a := assert.New(t)
	r := newTestRound(t)

	a.Equal(int64(1), r.CurrentActor())

	// nobody can pass on an empty table
	a.Equal(ReasonIllegalPass, SubmitPass(r, 1).Reason)
	a.Equal(ReasonOutOfTurn, SubmitPass(r, 2).Reason)

	a.Equal(Result{Accepted: true, Category: Single}, play(r, 1, "D3"))
	a.Equal(1, len(r.TrickHistory()))
	a.Equal(int64(2), r.CurrentActor())
	a.Equal(PhaseAwaitingResponse, r.Phase())

	// C3 beats D3 on suit
	a.Equal(Result{Accepted: true, Category: Single}, play(r, 2, "C3"))
	owner, ok := r.TrickOwner()
	a.True(ok)
	a.Equal(int64(2), owner)

	a.True(SubmitPass(r, 3).Accepted)
	a.True(SubmitPass(r, 4).Accepted)
	a.Equal(1, r.TrickNumber())
	a.True(SubmitPass(r, 1).Accepted)

	// trick won: the owner opens with anything
	a.Equal(int64(2), r.CurrentActor())
	a.Equal(2, r.TrickNumber())
	a.Equal(PhaseAwaitingOpen, r.Phase())
	a.Empty(r.CurrentTrick())
	a.Equal(2, len(r.TrickHistory()))
	a.Equal(ReasonIllegalPass, SubmitPass(r, 2).Reason)

	a.Equal(Result{Accepted: true, Category: Pair}, play(r, 2, "D6,H6"))
	a.Equal(Result{Accepted: true, Category: Pair}, play(r, 3, "D7,S7"))

	trick := r.CurrentTrick()
	a.Equal(2, len(trick))
	a.Equal(2, trick[0].Trick)
	a.Equal(int64(3), trick[1].PlayerID)
	a.Equal(2, trick[1].Seat)
	a.Equal("D7,S7", trick[1].Cards.String())

	history := r.TrickHistory()
	a.Equal(4, len(history))
	a.Equal("D3", history[0].Cards.String())
	a.Equal("S7", r.LastPlays(1)[0].Cards[1].String())
	a.Equal(4, len(r.LastPlays(10)))

	hand, _ := r.HandOf(2)
	a.Equal("S5", hand.String())
	a.NoError(r.verify())
}

func TestRound_Play_rejections(t *testing.T) {
	tests := []struct {
		name     string
		playerID int64
		cards    string
		reason   Reason
	}{
		{"out of turn", 2, "C3", ReasonOutOfTurn},
		{"unknown player", 99, "D3", ReasonUnknownPlayer},
		{"empty", 1, "", ReasonInvalidShape},
		{"four cards", 1, "D3,C4,H4,S9", ReasonInvalidShape},
		{"six cards", 1, "D3,C4,H4,S9,SA,S2", ReasonInvalidShape},
		{"duplicates", 1, "D3,D3", ReasonInvalidShape},
		{"not held", 1, "D3,C3", ReasonNotHeld},
		{"not classifiable", 1, "D3,C4", ReasonNotClassifiable},
		{"wrong opener", 1, "C4,H4", ReasonWrongOpener},
		{"wrong opener single", 1, "S9", ReasonWrongOpener},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := assert.New(t)
			r := newTestRound(t)
			before, _ := r.HandOf(1)

			result := play(r, tt.playerID, tt.cards)
			a.False(result.Accepted)
			a.Equal(tt.reason, result.Reason)
			a.NotEmpty(result.Message)
			a.Equal(Invalid, result.Category)

			after, _ := r.HandOf(1)
			a.Equal(before, after)
			a.Empty(r.TrickHistory())
			a.Equal(int64(1), r.CurrentActor())
		})
	}
}

func TestRound_Play_doesNotBeat(t *testing.T) {
	a := assert.New(t)
	r := newTestRound(t)

	a.True(play(r, 1, "D3").Accepted)
	a.True(play(r, 2, "D6").Accepted)

	_, err := r.Play(3, deck.CardsFromString("H3"))
	a.ErrorIs(err, ErrDoesNotBeat)

	// shape must match the trick
	_, err = r.Play(3, deck.CardsFromString("D7,S7"))
	a.ErrorIs(err, ErrInvalidShape)
	a.EqualError(err, "you must play 1 cards to beat the Single")

	hand, _ := r.HandOf(3)
	a.Equal(4, len(hand))
	a.Equal(2, len(r.TrickHistory()))
	a.Equal(int64(3), r.CurrentActor())

	a.True(play(r, 3, "D7").Accepted)
}

func TestRound_Pass(t *testing.T) {
	a := assert.New(t)
	r := newTestRound(t)

	a.True(play(r, 1, "D3").Accepted)
	a.True(SubmitPass(r, 2).Accepted)
	a.True(play(r, 3, "D7").Accepted)

	// the pass counter restarts after every play
	a.True(SubmitPass(r, 4).Accepted)
	a.True(SubmitPass(r, 1).Accepted)
	a.Equal(1, r.TrickNumber())
	a.True(SubmitPass(r, 2).Accepted)

	a.Equal(2, r.TrickNumber())
	a.Equal(int64(3), r.CurrentActor())
	owner, _ := r.TrickOwner()
	a.Equal(int64(3), owner)

	err := r.Pass(3)
	a.ErrorIs(err, ErrIllegalPass)
	a.Equal(int64(3), r.CurrentActor())
}

func TestRound_finished(t *testing.T) {
	a := assert.New(t)
	r := newTestRound(t)
	r.participants[0].hand = deck.CardsFromString("D3")

	a.True(play(r, 1, "D3").Accepted)

	isOver, winner := r.IsFinished()
	a.True(isOver)
	a.Equal(int64(1), winner)
	a.Equal(PhaseFinished, r.Phase())

	a.Equal(ReasonRoundOver, play(r, 2, "C3").Reason)
	a.Equal(ReasonRoundOver, SubmitPass(r, 2).Reason)

	_, err := r.Play(1, deck.CardsFromString("C4"))
	a.ErrorIs(err, ErrRoundOver)
}

func TestRuleError_Is(t *testing.T) {
	a := assert.New(t)

	err := newRuleError(ReasonDoesNotBeat, "custom %d", 1)
	a.ErrorIs(err, ErrDoesNotBeat)
	a.NotErrorIs(err, ErrNotHeld)
	a.Equal("custom 1", err.Error())

	a.Equal("assert.AnError general error for testing", rejected(assert.AnError).Message)
}

// autoPlay makes the simplest legal move: open with the lowest card, beat a single with the lowest card that can, otherwise pass
func autoPlay(r *Round) error {
	id := r.CurrentActor()
	hand, err := r.HandOf(id)
	if err != nil {
		return err
	}

	trick := r.CurrentTrick()
	if len(trick) == 0 {
		_, err := r.Play(id, hand[:1])
		return err
	}

	incumbent := trick[len(trick)-1]
	if len(incumbent.Cards) == 1 {
		for _, c := range hand {
			if incumbent.Cards[0].Less(c) {
				_, err := r.Play(id, deck.Hand{c})
				return err
			}
		}
	}

	return r.Pass(id)
}

func TestRound_fullGames(t *testing.T) {
	for seed := int64(1); seed <= 200; seed++ {
		opts := DefaultOptions()
		opts.Seed = seed

		r, err := NewRound(logrus.StandardLogger(), testPlayerIDs, opts)
		if !assert.NoError(t, err) {
			return
		}

		for i := 0; i < 1000; i++ {
			if isOver, _ := r.IsFinished(); isOver {
				break
			}

			if !assert.NoError(t, autoPlay(r), "seed %d", seed) || !assert.NoError(t, r.verify()) {
				return
			}
		}

		isOver, winner := r.IsFinished()
		assert.True(t, isOver, "seed %d", seed)

		hand, _ := r.HandOf(winner)
		assert.Empty(t, hand)
		assert.Equal(t, PhaseFinished, r.Phase())
	}
}
