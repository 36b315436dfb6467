package rating

import (
	"context"
	"fmt"
	"math"
	"sync"

	"github.com/sirupsen/logrus"
)

// DefaultInitial is the rating a new player starts with
const DefaultInitial = 10000

// Floor is the lowest rating. A loser at or below the floor is pinned to it
const Floor = 5

// Godlike is the highest rating. Once reached, the rating never changes
const Godlike = math.MaxInt32

// Store persists ratings
type Store interface {
	// Get returns the rating for the player. found is false if the player has no rating
	Get(ctx context.Context, playerID int64) (rating int, found bool, err error)
	// Save persists all of the ratings, or none of them
	Save(ctx context.Context, ratings map[int64]int) error
}

// Entry is a player's standing in the ledger
type Entry struct {
	PlayerID int64 `json:"playerId"`
	Rating   int   `json:"rating"`
	// IsNew is true if the player was just added to the ledger
	IsNew bool `json:"isNew"`
}

// IsGodlike returns true if the rating can no longer change
func (e Entry) IsGodlike() bool {
	return e.Rating >= Godlike
}

// Describe returns a short description of the entry for the named player
func (e Entry) Describe(name string) string {
	switch {
	case e.IsGodlike():
		return fmt.Sprintf("%s is a god", name)
	case e.IsNew:
		return fmt.Sprintf("%s has been added to the skill pool with a rating of %d", name, e.Rating)
	default:
		return fmt.Sprintf("%s has some skill and a rating of %d", name, e.Rating)
	}
}

// Change is the result of a finished round for one player
type Change struct {
	PlayerID int64 `json:"playerId"`
	Before   int   `json:"before"`
	After    int   `json:"after"`
	Won      bool  `json:"won"`
}

// Describe returns a short description of the change for the named player
func (c Change) Describe(name string) string {
	switch {
	case c.Won && c.Before >= Godlike:
		return fmt.Sprintf("%s is still a god", name)
	case c.Won:
		return fmt.Sprintf("%s raised their rating to %d", name, c.After)
	case c.Before >= Godlike:
		return fmt.Sprintf("%s was taking it easy", name)
	case c.Before <= Floor:
		return fmt.Sprintf("%s's rating is too small to change", name)
	default:
		return fmt.Sprintf("%s's rating dropped to %d", name, c.After)
	}
}

// Ledger applies the results of finished rounds to player ratings
type Ledger struct {
	store   Store
	initial int
	logger  logrus.FieldLogger

	// mu serializes read-modify-write cycles against the store
	mu sync.Mutex
}

// NewLedger returns a new ledger
// If initial is not positive, DefaultInitial is used
func NewLedger(logger logrus.FieldLogger, store Store, initial int) *Ledger {
	if initial <= 0 {
		initial = DefaultInitial
	}

	return &Ledger{
		store:   store,
		initial: initial,
		logger:  logger,
	}
}

// Rating returns the player's rating, or the initial rating if the player is unknown
func (l *Ledger) Rating(ctx context.Context, playerID int64) (Entry, error) {
	rating, found, err := l.store.Get(ctx, playerID)
	if err != nil {
		return Entry{}, err
	}

	if !found {
		return Entry{PlayerID: playerID, Rating: l.initial, IsNew: true}, nil
	}

	return Entry{PlayerID: playerID, Rating: rating}, nil
}

// Join adds the player to the ledger if they do not have a rating
func (l *Ledger) Join(ctx context.Context, playerID int64) (Entry, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	entry, err := l.Rating(ctx, playerID)
	if err != nil {
		return Entry{}, err
	}

	if entry.IsNew {
		if err := l.store.Save(ctx, map[int64]int{playerID: entry.Rating}); err != nil {
			return Entry{}, err
		}

		l.logger.WithField("playerID", playerID).Info("player added to the skill pool")
	}

	return entry, nil
}

// RecordWin raises the winner's rating and lowers every loser's rating
// Changes are returned winner first, then in the order of losers
func (l *Ledger) RecordWin(ctx context.Context, winner int64, losers []int64) ([]Change, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	changes := make([]Change, 0, len(losers)+1)
	ratings := make(map[int64]int, len(losers)+1)

	players := append([]int64{winner}, losers...)
	for i, playerID := range players {
		if _, dup := ratings[playerID]; dup {
			return nil, fmt.Errorf("player %d appears more than once", playerID)
		}

		entry, err := l.Rating(ctx, playerID)
		if err != nil {
			return nil, err
		}

		won := i == 0
		after := Lose(entry.Rating)
		if won {
			after = Win(entry.Rating)
		}

		ratings[playerID] = after
		changes = append(changes, Change{
			PlayerID: playerID,
			Before:   entry.Rating,
			After:    after,
			Won:      won,
		})
	}

	if err := l.store.Save(ctx, ratings); err != nil {
		return nil, err
	}

	l.logger.WithFields(logrus.Fields{
		"winner": winner,
		"losers": losers,
	}).Info("recorded round result")

	return changes, nil
}

// Win returns the rating after a win
func Win(rating int) int {
	if rating >= Godlike {
		return Godlike
	}

	raised := int64(rating) * 6 / 5
	if raised >= Godlike {
		return Godlike
	}

	return int(raised)
}

// Lose returns the rating after a loss
func Lose(rating int) int {
	if rating >= Godlike {
		return Godlike
	}

	if rating <= Floor {
		return Floor
	}

	return int(int64(rating) * 85 / 100)
}
