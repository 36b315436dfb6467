package room

import (
	"time"

	"bigtwo-server/pkg/rating"
	"github.com/sirupsen/logrus"
)

// PitBoss is responsible for dispatching players to tables
type PitBoss struct {
	dealers    map[string]*Dealer
	connect    chan *Client
	disconnect chan *Client

	logger     logrus.FieldLogger
	ledger     *rating.Ledger
	startDelay time.Duration
}

// NewPitBoss returns a new dispatch object
// Every dealer records finished rounds in ledger and waits startDelay between startGame and the deal
func NewPitBoss(logger logrus.FieldLogger, ledger *rating.Ledger, startDelay time.Duration) *PitBoss {
	return &PitBoss{
		dealers:    make(map[string]*Dealer),
		connect:    make(chan *Client, 256),
		disconnect: make(chan *Client, 256),
		logger:     logger,
		ledger:     ledger,
		startDelay: startDelay,
	}
}

// StartShift starts the PitBoss run loop
func (p *PitBoss) StartShift() {
	go p.runLoop()
}

func (p *PitBoss) runLoop() {
	for {
		select {
		case client := <-p.connect:
			p.logger.WithField("client", client.String()).Debug("client connected")
			dealer, found := p.dealers[client.tableUUID]
			if !found {
				dealer = NewDealer(p, client.tableUUID)
				dealer.StartShift()
				p.dealers[client.tableUUID] = dealer
			}

			dealer.AddClient(client)
		case client := <-p.disconnect:
			p.logger.WithField("client", client.String()).Debug("client disconnected")
			dealer, found := p.dealers[client.tableUUID]
			if !found {
				p.logger.WithField("uuid", client.tableUUID).WithField("type", "exception").Error("table not found")
				continue
			}

			if dealer.RemoveClient(client) {
				dealer.EndShift()
				delete(p.dealers, client.tableUUID)
			}
		}
	}
}

// ClientConnected is called when a client connects to the server
func (p *PitBoss) ClientConnected(client *Client) {
	p.connect <- client
}

// ClientDisconnected is called when a client disconnects from the server
func (p *PitBoss) ClientDisconnected(client *Client) {
	p.disconnect <- client
}
