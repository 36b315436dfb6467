package bigtwo

import (
	"fmt"
	"time"

	"bigtwo-server/pkg/deck"
	"bigtwo-server/pkg/playable"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// Name is the name of the game
const Name = "big-two"

// lastHandsCount is how many plays the lastHands action shows
const lastHandsCount = 5

// Game is a playable round of big two
type Game struct {
	round   *Round
	options Options

	logger  logrus.FieldLogger
	logChan chan []*playable.LogMessage
}

// NewGame deals a new round of big two for exactly four players
func NewGame(logger logrus.FieldLogger, playerIDs []int64, opts Options) (*Game, error) {
	round, err := NewRound(logger, playerIDs, opts)
	if err != nil {
		return nil, err
	}

	return newGameFromRound(logger, round, opts), nil
}

func newGameFromRound(logger logrus.FieldLogger, round *Round, opts Options) *Game {
	g := &Game{
		round:   round,
		options: opts,
		logger:  logger,
		logChan: make(chan []*playable.LogMessage, 256),
	}

	g.sendLogMessages(newLogMessage(round.CurrentActor(), nil, "New round of Big Two. {} holds the %s and opens", Opener.Pretty()))
	return g
}

// Round returns the underlying round
func (g *Game) Round() *Round {
	return g.round
}

// Name returns "big-two"
func (g *Game) Name() string {
	return Name
}

// LogChan returns a channel for sending log messages
func (g *Game) LogChan() <-chan []*playable.LogMessage {
	return g.logChan
}

// Action performs an action for the player
func (g *Game) Action(playerID int64, message *playable.PayloadIn) (playerResponse *playable.Response, updateState bool, err error) {
	switch message.Action {
	case "play":
		play, err := g.round.Play(playerID, message.Cards)
		if err != nil {
			return nil, false, err
		}

		messages := []*playable.LogMessage{
			newLogMessage(playerID, play.Cards, "{} played a %s", play.Category),
		}

		if isOver, winner := g.round.IsFinished(); isOver {
			messages = append(messages, newLogMessage(winner, nil, "{} played their last card and won the round"))
		}

		g.sendLogMessages(messages...)
		return playable.OK(), true, nil
	case "pass":
		trick := g.round.TrickNumber()
		if err := g.round.Pass(playerID); err != nil {
			return nil, false, err
		}

		messages := []*playable.LogMessage{newLogMessage(playerID, nil, "{} passed")}
		if g.round.TrickNumber() != trick {
			messages = append(messages, newLogMessage(g.round.CurrentActor(), nil, "{} won the trick and leads the next one"))
		}

		g.sendLogMessages(messages...)
		return playable.OK(), true, nil
	case "lastHands":
		return &playable.Response{
			Key:   "lastHands",
			Value: Name,
			Data:  g.round.LastPlays(lastHandsCount),
		}, false, nil
	}

	return nil, false, fmt.Errorf("unknown action: %s", message.Action)
}

// GetEndOfGameDetails returns the winner once the round is finished
func (g *Game) GetEndOfGameDetails() (gameOverDetails *playable.GameOverDetails, isGameOver bool) {
	isOver, winner := g.round.IsFinished()
	if !isOver {
		return nil, false
	}

	return &playable.GameOverDetails{
		Winner:    winner,
		PlayerIDs: g.round.PlayerIDs(),
		Log:       g.round.TrickHistory(),
	}, true
}

func (g *Game) sendLogMessages(msg ...*playable.LogMessage) {
	select {
	case g.logChan <- msg:
	default:
		g.logger.WithField("count", len(msg)).Warn("log channel is full, dropping messages")
	}
}

func newLogMessage(playerID int64, cards deck.Hand, format string, a ...interface{}) *playable.LogMessage {
	return &playable.LogMessage{
		UUID:      uuid.New().String(),
		PlayerIDs: []int64{playerID},
		Cards:     cards,
		Message:   fmt.Sprintf(format, a...),
		Time:      time.Now(),
	}
}
