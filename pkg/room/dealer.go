package room

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"bigtwo-server/internal/util"
	"bigtwo-server/pkg/playable"
	"bigtwo-server/pkg/playable/bigtwo"
	"bigtwo-server/pkg/rating"
	"github.com/sirupsen/logrus"
)

const maxNicknameLength = 40

var errGameInProgress = errors.New("a game is already in progress")

type state int

const (
	stateClientEvent state = iota
	stateGameEvent
	stateGameEnded
)

// Dealer is responsible for controlling the table
// All table and game state is owned by the run loop
type Dealer struct {
	pitBoss   *PitBoss
	tableUUID string
	clients   map[*Client]bool
	lock      sync.RWMutex
	logger    logrus.FieldLogger
	ledger    *rating.Ledger

	startDelay  time.Duration
	game        playable.Playable
	seats       []*seat
	logMessages []*playable.LogMessage
	pendingGame *pendingGame
	lastResult  *gameResult

	execInRunLoop chan func()
	stateChanged  chan state
	close         chan bool
}

// NewDealer creates a new dealer object
// This is called from a blocking state, so it needs to return quickly
func NewDealer(pitBoss *PitBoss, tableUUID string) *Dealer {
	return &Dealer{
		pitBoss:       pitBoss,
		tableUUID:     tableUUID,
		clients:       make(map[*Client]bool),
		logger:        pitBoss.logger.WithField("uuid", tableUUID),
		ledger:        pitBoss.ledger,
		startDelay:    pitBoss.startDelay,
		execInRunLoop: make(chan func(), 256),
		stateChanged:  make(chan state, 256),
		close:         make(chan bool),
	}
}

// Clients will return a slice of connected (at the time) clients
func (d *Dealer) Clients() []*Client {
	d.lock.RLock()
	defer d.lock.RUnlock()

	clients := make([]*Client, 0, len(d.clients))
	for client := range d.clients {
		clients = append(clients, client)
	}

	return clients
}

// StartShift starts the run loop
func (d *Dealer) StartShift() {
	go d.runLoop()
}

func (d *Dealer) runLoop() {
	d.logger.Debug("creating dealer run loop")
	for {
		var logChan <-chan []*playable.LogMessage
		if d.game != nil {
			logChan = d.game.LogChan()
		}

		var startChan <-chan time.Time
		if d.pendingGame != nil {
			startChan = d.pendingGame.timer.C
		}

		select {
		case s := <-d.stateChanged:
			switch s {
			case stateClientEvent:
				d.sendPlayerData()
			case stateGameEvent:
				d.sendGameData()
			case stateGameEnded:
				d.sendGameEnded()
				d.sendPlayerData()
			}
		case fn := <-d.execInRunLoop:
			fn()
		case messages := <-logChan:
			d.sendLogMessages(messages)
		case <-startChan:
			d.startPendingGame()
		case <-d.close:
			if d.pendingGame != nil {
				d.pendingGame.cancel()
			}

			d.logger.Debug("terminating dealer run loop")
			return
		}
	}
}

// AddClient adds a client
// This method must return quickly
func (d *Dealer) AddClient(client *Client) {
	d.lock.Lock()
	client.dealer = d
	d.clients[client] = true
	d.lock.Unlock()

	d.stateChanged <- stateClientEvent
	d.execInRunLoop <- func() {
		if len(d.logMessages) > 0 {
			client.Send(&playable.Response{
				Key:  "logs",
				Data: d.logMessages,
			})
		}

		if d.game == nil {
			return
		}

		gs, err := d.game.GetPlayerState(client.playerID)
		if err != nil {
			d.logger.WithError(err).Error("could not get player state")
			return
		}

		client.Send(gs)
	}
}

// RemoveClient removes a client
// This method must return quickly
func (d *Dealer) RemoveClient(client *Client) (lastClient bool) {
	d.lock.Lock()
	delete(d.clients, client)
	nClients := len(d.clients)
	d.lock.Unlock()

	if nClients > 0 {
		d.stateChanged <- stateClientEvent
		return false
	}

	return true
}

// EndShift is called when the dealer is no longer needed
func (d *Dealer) EndShift() {
	close(d.close)
}

// NOTE: must only be called from the run loop
func (d *Dealer) broadcast(msg *playable.Response) {
	for _, client := range d.Clients() {
		client.Send(msg)
	}
}

// NOTE: must only be called from the run loop
func (d *Dealer) sendGameEnded() {
	d.broadcast(&playable.Response{
		Key:  "gameEnded",
		Data: d.lastResult,
	})
}

// NOTE: must only be called from the run loop
func (d *Dealer) sendGameData() {
	if d.game == nil {
		return
	}

	for _, client := range d.Clients() {
		data, err := d.game.GetPlayerState(client.playerID)
		if err != nil {
			d.logger.WithError(err).Error("could not get player state")
			continue
		}

		client.Send(data)
	}
}

// NOTE: must only be called from the run loop
func (d *Dealer) sendPlayerData() {
	connected := make(map[int64]bool)
	for _, client := range d.Clients() {
		connected[client.playerID] = true
	}

	cs := &clientState{
		Seats:       make([]*clientStatePlayer, 0, len(d.seats)),
		Lobby:       make([]int64, 0),
		InProgress:  d.game != nil,
		PendingGame: d.pendingGame,
	}

	for i, s := range d.seats {
		cs.Seats = append(cs.Seats, &clientStatePlayer{
			seat:        s,
			Seat:        i,
			IsConnected: connected[s.PlayerID],
		})

		delete(connected, s.PlayerID)
	}

	for playerID := range connected {
		cs.Lobby = append(cs.Lobby, playerID)
	}

	sort.Slice(cs.Lobby, func(i, j int) bool {
		return cs.Lobby[i] < cs.Lobby[j]
	})

	d.broadcast(&playable.Response{
		Key:  "clientState",
		Data: cs,
	})
}

// seatOf returns the seat index of the player, or -1 if the player is not seated
func (d *Dealer) seatOf(playerID int64) int {
	for i, s := range d.seats {
		if s.PlayerID == playerID {
			return i
		}
	}

	return -1
}

func (d *Dealer) isBusy() bool {
	return d.game != nil || d.pendingGame != nil
}

// ReceivedMessage is called when a client sends a message to the server
func (d *Dealer) ReceivedMessage(c *Client, msg *playable.PayloadIn) {
	d.execInRunLoop <- func() {
		var err error
		sendOK := true

		switch msg.Action {
		case "sit":
			err = d.sit(c, msg)
		case "stand":
			err = d.stand(c)
		case "startGame":
			err = d.startGame(c, msg)
		case "terminateGame":
			err = d.terminateGame(c)
		case "checkSkill":
			err = d.checkSkill(c, msg)
			sendOK = false
		default:
			err = d.gameAction(c, msg)
			sendOK = false
		}

		if err != nil {
			d.logger.WithError(err).WithField("client", c.String()).WithField("action", msg.Action).Info("could not perform action")
			c.Send(newErrorResponse(msg.Context, err))
			return
		}

		if sendOK {
			c.Send(playable.OK(msg.Context))
		}
	}
}

func (d *Dealer) sit(c *Client, msg *playable.PayloadIn) error {
	if d.isBusy() {
		return errGameInProgress
	}

	if d.seatOf(c.playerID) >= 0 {
		return errors.New("you are already seated")
	}

	if len(d.seats) >= bigtwo.SeatCount {
		return errors.New("the table is full")
	}

	nickname, _ := msg.AdditionalData.GetString("nickname")
	nickname = strings.TrimSpace(nickname)
	if len(nickname) > maxNicknameLength {
		return fmt.Errorf("nickname cannot be longer than %d characters", maxNicknameLength)
	}

	if nickname == "" {
		nickname = util.GetRandomName()
	}

	entry, err := d.ledger.Join(context.Background(), c.playerID)
	if err != nil {
		return err
	}

	d.seats = append(d.seats, &seat{
		PlayerID: c.playerID,
		Nickname: nickname,
	})

	d.sendLogMessages(playable.SimpleLogMessageSlice(c.playerID, "%s", entry.Describe("{}")))
	d.stateChanged <- stateClientEvent
	return nil
}

func (d *Dealer) stand(c *Client) error {
	if d.isBusy() {
		return errGameInProgress
	}

	i := d.seatOf(c.playerID)
	if i < 0 {
		return errors.New("you are not seated")
	}

	d.seats = append(d.seats[:i], d.seats[i+1:]...)
	d.stateChanged <- stateClientEvent
	return nil
}

func (d *Dealer) startGame(c *Client, msg *playable.PayloadIn) error {
	if d.isBusy() {
		return errGameInProgress
	}

	if d.seatOf(c.playerID) < 0 {
		return errors.New("only a seated player can start a game")
	}

	if len(d.seats) != bigtwo.SeatCount {
		return fmt.Errorf("a game needs %d seated players, the table has %d", bigtwo.SeatCount, len(d.seats))
	}

	pg, err := newPendingGame(c, msg, d.startDelay)
	if err != nil {
		return err
	}

	d.pendingGame = pg
	d.stateChanged <- stateClientEvent
	return nil
}

// NOTE: must only be called from the run loop
func (d *Dealer) startPendingGame() {
	pg := d.pendingGame
	d.pendingGame = nil

	playerIDs := make([]int64, len(d.seats))
	for i, s := range d.seats {
		playerIDs[i] = s.PlayerID
	}

	game, err := pg.factory.CreateGame(d.logger.WithField("game", pg.Name), playerIDs, pg.message.AdditionalData)
	if err != nil {
		d.logger.WithError(err).Error("could not create game")
		pg.client.Send(newErrorResponse(pg.message.Context, err))
		d.stateChanged <- stateClientEvent
		return
	}

	d.game = game
	d.lastResult = nil
	d.drainLogMessages(game)
	d.stateChanged <- stateClientEvent
	d.stateChanged <- stateGameEvent
}

// terminateGame abandons the active or pending game. Only the host in the first seat may do this
func (d *Dealer) terminateGame(c *Client) error {
	if len(d.seats) == 0 || d.seats[0].PlayerID != c.playerID {
		return errors.New("only the host can end the game")
	}

	if !d.isBusy() {
		return errors.New("there is no game in progress")
	}

	if d.pendingGame != nil {
		d.pendingGame.cancel()
		d.pendingGame = nil
	}

	d.game = nil
	d.lastResult = nil
	d.sendLogMessages(playable.SimpleLogMessageSlice(c.playerID, "{} ended the game"))
	d.stateChanged <- stateGameEnded
	return nil
}

func (d *Dealer) checkSkill(c *Client, msg *playable.PayloadIn) error {
	entry, err := d.ledger.Rating(context.Background(), c.playerID)
	if err != nil {
		return err
	}

	name := fmt.Sprintf("Player %d", c.playerID)
	if i := d.seatOf(c.playerID); i >= 0 {
		name = d.seats[i].Nickname
	}

	c.Send(&playable.Response{
		Key:     "skill",
		Value:   entry.Describe(name),
		Data:    entry,
		Context: msg.Context,
	})

	return nil
}

func (d *Dealer) gameAction(c *Client, msg *playable.PayloadIn) error {
	game := d.game
	if game == nil {
		return fmt.Errorf("unknown message: %s", msg.Action)
	}

	action, updateState, err := game.Action(c.playerID, msg)
	if err != nil {
		return err
	}

	if action != nil {
		action.Context = msg.Context
		c.Send(action)
	}

	if details, isOver := game.GetEndOfGameDetails(); isOver {
		d.sendGameData()
		d.endGame(game, details)
		return nil
	}

	if updateState {
		d.stateChanged <- stateGameEvent
	}

	return nil
}

// endGame records the finished round in the rating ledger and clears the table for the next one
// NOTE: must only be called from the run loop
func (d *Dealer) endGame(game playable.Playable, details *playable.GameOverDetails) {
	d.drainLogMessages(game)

	changes, err := d.ledger.RecordWin(context.Background(), details.Winner, details.Losers())
	if err != nil {
		d.logger.WithError(err).Error("could not record the result")
	}

	messages := make([]*playable.LogMessage, 0, len(changes))
	for _, change := range changes {
		messages = append(messages, playable.SimpleLogMessage(change.PlayerID, "%s", change.Describe("{}")))
	}

	d.game = nil
	d.lastResult = &gameResult{
		Winner:  details.Winner,
		Changes: changes,
		Log:     details.Log,
	}

	d.sendLogMessages(messages)
	d.stateChanged <- stateGameEnded
}

// drainLogMessages sends whatever the game logged before it ended
func (d *Dealer) drainLogMessages(game playable.Playable) {
	for {
		select {
		case messages := <-game.LogChan():
			d.sendLogMessages(messages)
		default:
			return
		}
	}
}
