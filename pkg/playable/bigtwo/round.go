package bigtwo

import (
	"fmt"

	"bigtwo-server/internal/rng"
	"bigtwo-server/pkg/deck"
	"github.com/sirupsen/logrus"
)

// Phase is the phase of the round
type Phase int

const (
	// PhaseAwaitingOpen is when the current trick has no plays
	// This is the first trick of the round, or the trick owner's renewed turn after everybody else passed
	PhaseAwaitingOpen Phase = iota
	// PhaseAwaitingResponse is when the current trick has a play to beat
	PhaseAwaitingResponse
	// PhaseFinished is when a player has emptied their hand
	PhaseFinished
)

func (p Phase) String() string {
	switch p {
	case PhaseAwaitingOpen:
		return "awaitingOpen"
	case PhaseAwaitingResponse:
		return "awaitingResponse"
	case PhaseFinished:
		return "finished"
	default:
		return "unknown"
	}
}

// Play is an accepted play. It is never modified after it is accepted
type Play struct {
	PlayerID int64     `json:"playerId"`
	Seat     int       `json:"seat"`
	Cards    deck.Hand `json:"cards"`
	Category Category  `json:"category"`
	// Trick is the trick number, starting at 1
	Trick int `json:"trick"`

	classification *Classification
}

// Round is a single round of big two, from the deal until somebody runs out of cards
// Round does not lock. Callers must serialize calls to Play and Pass
type Round struct {
	logger logrus.FieldLogger

	participants    [SeatCount]*Participant
	idToParticipant map[int64]*Participant

	// history is every play of the round, most recent last
	history []*Play
	// trickStart is the index in history where the current trick starts
	trickStart int
	trick      int

	actor int
	// owner is the seat of the most recent play, or -1
	owner  int
	passes int

	winner *Participant

	shuffleAttempts int
	dealHash        string
}

// NewRound shuffles, deals, and returns a round that is ready for the 3♢ holder to open
func NewRound(logger logrus.FieldLogger, playerIDs []int64, opts Options) (*Round, error) {
	if err := validatePlayerIDs(playerIDs); err != nil {
		return nil, err
	}

	var gen rng.Generator = rng.Crypto{}
	if opts.Seed != 0 {
		gen = rng.Seeded(opts.Seed)
	}

	d := deck.New()
	hands, attempts, err := ShuffleBalanced(logger, d, gen, opts)
	if err != nil {
		return nil, err
	}

	r, err := newRoundFromHands(logger, playerIDs, hands)
	if err != nil {
		return nil, err
	}

	r.shuffleAttempts = attempts
	r.dealHash = d.HashCode()
	logger.WithFields(logrus.Fields{
		"seed":     opts.Seed,
		"attempts": attempts,
		"hash":     r.dealHash,
	}).Info("dealt a new round")

	return r, nil
}

func validatePlayerIDs(playerIDs []int64) error {
	if len(playerIDs) != SeatCount {
		return PlayerCountError{Got: len(playerIDs)}
	}

	seen := make(map[int64]bool, SeatCount)
	for _, id := range playerIDs {
		if seen[id] {
			return fmt.Errorf("%w: %d", ErrDuplicatePlayer, id)
		}

		seen[id] = true
	}

	return nil
}

// newRoundFromHands seats playerIDs[i] with hands[i]
func newRoundFromHands(logger logrus.FieldLogger, playerIDs []int64, hands [SeatCount]deck.Hand) (*Round, error) {
	if err := validatePlayerIDs(playerIDs); err != nil {
		return nil, err
	}

	if err := VerifyPartition(hands, nil); err != nil {
		return nil, err
	}

	opener, err := FindOpener(hands)
	if err != nil {
		return nil, err
	}

	r := &Round{
		logger:          logger,
		idToParticipant: make(map[int64]*Participant, SeatCount),
		history:         make([]*Play, 0, deck.Size),
		trick:           1,
		actor:           opener,
		owner:           -1,
	}

	for seat, id := range playerIDs {
		p := newParticipant(id, seat, hands[seat])
		r.participants[seat] = p
		r.idToParticipant[id] = p
	}

	return r, nil
}

// Play attempts to play the cards for the player
// Every rule is checked before anything changes, so a rejected play leaves the round untouched
func (r *Round) Play(playerID int64, cards deck.Hand) (*Play, error) {
	p, err := r.actingParticipant(playerID)
	if err != nil {
		return nil, err
	}

	n := len(cards)
	if n == 0 || n == 4 || n > 5 || cards.HasDuplicates() {
		return nil, ErrInvalidShape
	}

	if !p.HoldsAll(cards) {
		return nil, ErrNotHeld
	}

	classification := Classify(cards)
	if !classification.IsValid() {
		return nil, ErrNotClassifiable
	}

	if len(r.history) == 0 && !cards.HasCard(Opener) {
		return nil, ErrWrongOpener
	}

	if incumbent := r.incumbent(); incumbent != nil {
		if len(incumbent.Cards) != n {
			return nil, newRuleError(ReasonInvalidShape, "you must play %d cards to beat the %s", len(incumbent.Cards), incumbent.Category)
		}

		if !Beats(classification, incumbent.classification) {
			return nil, ErrDoesNotBeat
		}
	}

	p.removeCards(classification.Cards)
	play := &Play{
		PlayerID:       p.PlayerID,
		Seat:           p.Seat,
		Cards:          classification.Cards.Clone(),
		Category:       classification.Category,
		Trick:          r.trick,
		classification: classification,
	}

	r.history = append(r.history, play)
	r.owner = p.Seat
	r.passes = 0

	r.logger.WithFields(logrus.Fields{
		"playerID": playerID,
		"category": classification.Category.String(),
		"cards":    play.Cards.String(),
	}).Debug("play accepted")

	if p.CardsLeft() == 0 {
		r.winner = p
		r.logger.WithField("playerID", playerID).Debug("round finished")
		return play, nil
	}

	r.actor = r.nextSeat(r.actor)
	return play, nil
}

// Pass passes the turn for the player
// If the other three players have all passed, the trick is won and the owner opens the next trick
func (r *Round) Pass(playerID int64) error {
	p, err := r.actingParticipant(playerID)
	if err != nil {
		return err
	}

	if r.incumbent() == nil || p.Seat == r.owner {
		return ErrIllegalPass
	}

	r.passes++
	r.actor = r.nextSeat(r.actor)

	if r.passes == SeatCount-1 {
		r.trick++
		r.trickStart = len(r.history)
		r.passes = 0
		r.actor = r.owner

		r.logger.WithFields(logrus.Fields{
			"playerID": r.participants[r.owner].PlayerID,
			"trick":    r.trick,
		}).Debug("trick won")
	}

	return nil
}

// actingParticipant returns the participant if they are allowed to act right now
func (r *Round) actingParticipant(playerID int64) (*Participant, error) {
	if r.winner != nil {
		return nil, ErrRoundOver
	}

	p, ok := r.idToParticipant[playerID]
	if !ok {
		return nil, ErrUnknownPlayer
	}

	if p.Seat != r.actor {
		return nil, ErrOutOfTurn
	}

	return p, nil
}

// incumbent returns the play to beat, or nil if the trick is open
func (r *Round) incumbent() *Play {
	if len(r.history) == r.trickStart {
		return nil
	}

	return r.history[len(r.history)-1]
}

func (r *Round) nextSeat(seat int) int {
	return (seat + 1) % SeatCount
}

// CurrentActor returns the player ID of the player who must act
func (r *Round) CurrentActor() int64 {
	return r.participants[r.actor].PlayerID
}

// CurrentSeat returns the seat of the player who must act
func (r *Round) CurrentSeat() int {
	return r.actor
}

// TrickOwner returns the player who made the last play, if any
func (r *Round) TrickOwner() (int64, bool) {
	if r.owner < 0 {
		return 0, false
	}

	return r.participants[r.owner].PlayerID, true
}

// TrickNumber returns the current trick number, starting at 1
func (r *Round) TrickNumber() int {
	return r.trick
}

// TrickHistory returns every play of the round, most recent last
func (r *Round) TrickHistory() []*Play {
	return append([]*Play{}, r.history...)
}

// CurrentTrick returns the plays since the last trick was won
func (r *Round) CurrentTrick() []*Play {
	return append([]*Play{}, r.history[r.trickStart:]...)
}

// LastPlays returns up to n of the most recent plays, most recent last
func (r *Round) LastPlays(n int) []*Play {
	start := len(r.history) - n
	if start < 0 {
		start = 0
	}

	return append([]*Play{}, r.history[start:]...)
}

// HandOf returns the cards held by the player
func (r *Round) HandOf(playerID int64) (deck.Hand, error) {
	p, ok := r.idToParticipant[playerID]
	if !ok {
		return nil, ErrUnknownPlayer
	}

	return p.Hand(), nil
}

// IsFinished returns true and the winner's player ID once a player has emptied their hand
func (r *Round) IsFinished() (bool, int64) {
	if r.winner == nil {
		return false, 0
	}

	return true, r.winner.PlayerID
}

// Phase returns the phase of the round
func (r *Round) Phase() Phase {
	if r.winner != nil {
		return PhaseFinished
	}

	if r.incumbent() == nil {
		return PhaseAwaitingOpen
	}

	return PhaseAwaitingResponse
}

// Participants returns the participants in seat order
func (r *Round) Participants() []*Participant {
	return append([]*Participant{}, r.participants[:]...)
}

// PlayerIDs returns the player IDs in seat order
func (r *Round) PlayerIDs() []int64 {
	ids := make([]int64, SeatCount)
	for i, p := range r.participants {
		ids[i] = p.PlayerID
	}

	return ids
}

// ShuffleAttempts returns how many shuffles it took to find the deal
func (r *Round) ShuffleAttempts() int {
	return r.shuffleAttempts
}

// DealHash is the SHA1 of the shuffled deck the round was dealt from
// It is empty for rounds that were not shuffled
func (r *Round) DealHash() string {
	return r.dealHash
}

// verify checks that the hands and the played cards still partition the deck
func (r *Round) verify() error {
	var hands [SeatCount]deck.Hand
	for i, p := range r.participants {
		hands[i] = p.hand
	}

	return VerifyPartition(hands, r.history)
}
