package bigtwo

import (
	"testing"

	"bigtwo-server/pkg/deck"
	"bigtwo-server/pkg/playable"
	"bigtwo-server/pkg/snapshot"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
)

func newTestGame(t *testing.T) *Game {
	t.Helper()
	return newGameFromRound(logrus.StandardLogger(), newTestRound(t), DefaultOptions())
}

func action(g *Game, playerID int64, name string, cards string) (*playable.Response, bool, error) {
	return g.Action(playerID, &playable.PayloadIn{
		Action: name,
		Cards:  deck.CardsFromString(cards),
	})
}

func TestNewGame(t *testing.T) {
	a := assert.New(t)

	opts := DefaultOptions()
	opts.Seed = 7
	g, err := NewGame(logrus.StandardLogger(), testPlayerIDs, opts)
	a.NoError(err)
	a.Equal("big-two", g.Name())
	a.NotNil(g.Round())

	msgs := <-g.LogChan()
	a.Equal(1, len(msgs))
	a.Equal([]int64{g.Round().CurrentActor()}, msgs[0].PlayerIDs)
	a.Equal("New round of Big Two. {} holds the 3♢ and opens", msgs[0].Message)

	_, err = NewGame(logrus.StandardLogger(), []int64{1, 2}, opts)
	a.Equal(PlayerCountError{Got: 2}, err)
}

func TestGame_Action(t *testing.T) {
	a := assert.New(t)
	g := newTestGame(t)
	<-g.LogChan()

	resp, update, err := action(g, 1, "play", "D3")
	a.NoError(err)
	a.True(update)
	a.Equal(playable.OK(), resp)

	msgs := <-g.LogChan()
	a.Equal(1, len(msgs))
	a.Equal("{} played a Single", msgs[0].Message)
	a.Equal([]int64{1}, msgs[0].PlayerIDs)
	a.Equal("D3", msgs[0].Cards.String())

	// rejected actions leave the game untouched
	resp, update, err = action(g, 3, "play", "H3")
	a.ErrorIs(err, ErrOutOfTurn)
	a.False(update)
	a.Nil(resp)

	_, _, err = action(g, 2, "play", "")
	a.ErrorIs(err, ErrInvalidShape)

	_, _, err = action(g, 2, "fold", "")
	a.EqualError(err, "unknown action: fold")

	_, _, err = action(g, 2, "play", "C3")
	a.NoError(err)
	a.Equal([]int64{2}, (<-g.LogChan())[0].PlayerIDs)

	_, _, err = action(g, 3, "pass", "")
	a.NoError(err)
	a.Equal("{} passed", (<-g.LogChan())[0].Message)

	_, _, err = action(g, 4, "pass", "")
	a.NoError(err)
	<-g.LogChan()

	_, update, err = action(g, 1, "pass", "")
	a.NoError(err)
	a.True(update)

	msgs = <-g.LogChan()
	a.Equal(2, len(msgs))
	a.Equal("{} passed", msgs[0].Message)
	a.Equal("{} won the trick and leads the next one", msgs[1].Message)
	a.Equal([]int64{2}, msgs[1].PlayerIDs)

	resp, update, err = action(g, 4, "lastHands", "")
	a.NoError(err)
	a.False(update)
	a.Equal("lastHands", resp.Key)
	a.Equal(2, len(resp.Data.([]*Play)))
}

func TestGame_GetEndOfGameDetails(t *testing.T) {
	a := assert.New(t)
	g := newTestGame(t)
	<-g.LogChan()

	details, isOver := g.GetEndOfGameDetails()
	a.Nil(details)
	a.False(isOver)

	g.round.participants[0].hand = deck.CardsFromString("D3")
	_, _, err := action(g, 1, "play", "D3")
	a.NoError(err)

	msgs := <-g.LogChan()
	a.Equal(2, len(msgs))
	a.Equal("{} played their last card and won the round", msgs[1].Message)

	details, isOver = g.GetEndOfGameDetails()
	a.True(isOver)
	a.Equal(int64(1), details.Winner)
	a.Equal(testPlayerIDs, details.PlayerIDs)
	a.Equal([]int64{2, 3, 4}, details.Losers())
	a.Equal(1, len(details.Log.([]*Play)))

	_, _, err = action(g, 2, "pass", "")
	a.ErrorIs(err, ErrRoundOver)
}

func TestGame_GetPlayerState(t *testing.T) {
	a := assert.New(t)
	g := newTestGame(t)

	_, _, err := action(g, 1, "play", "D3")
	a.NoError(err)

	state, err := g.GetPlayerState(2)
	a.NoError(err)
	a.Equal("game", state.Key)
	a.Equal("big-two", state.Value)
	snapshot.ValidateSnapshot(t, state, 0)

	res := state.Data.(*Response)
	a.True(res.IsTurn)
	a.True(res.CanPass)

	// only your own hand is visible
	state, _ = g.GetPlayerState(1)
	res = state.Data.(*Response)
	a.Equal("C4,H4,S9", res.Hand.String())
	a.False(res.IsTurn)
	a.False(res.CanPass)

	state, _ = g.GetPlayerState(99)
	res = state.Data.(*Response)
	a.Equal(-1, res.Seat)
	a.Empty(res.Hand)
	a.Equal(4, len(res.GameState.Seats))
	a.Equal(40, res.GameState.Seats[3].CardsLeft)
}

func TestNewLogMessage(t *testing.T) {
	a := assert.New(t)

	msg := newLogMessage(0, deck.CardsFromString("D3"), "{} played a %s", Single)
	a.Equal([]int64{0}, msg.PlayerIDs)
	a.Equal("{} played a Single", msg.Message)
	a.Equal("D3", msg.Cards.String())
	a.NotEmpty(msg.UUID)

	a.Equal([]int64{-4}, newLogMessage(-4, nil, "{} passed").PlayerIDs)
}

func TestGame_Action_anyPlayerID(t *testing.T) {
	a := assert.New(t)

	ids := []int64{0, 5, 6, 7}
	r, err := newRoundFromHands(logrus.StandardLogger(), ids, handsFor("D3,C4,H4,S9", "C3,S5,D6,H6", "H3,D7,S7,DK"))
	a.NoError(err)

	g := newGameFromRound(logrus.StandardLogger(), r, DefaultOptions())
	a.Equal([]int64{0}, (<-g.LogChan())[0].PlayerIDs)

	_, _, err = action(g, 0, "play", "D3")
	a.NoError(err)
	a.Equal([]int64{0}, (<-g.LogChan())[0].PlayerIDs)
}

func TestGame_sendLogMessages_full(t *testing.T) {
	g := newTestGame(t)
	for i := 0; i < 300; i++ {
		g.sendLogMessages(newLogMessage(0, nil, "message %d", i))
	}

	assert.Equal(t, 256, len(g.logChan))
}
