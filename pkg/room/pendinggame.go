package room

import (
	"time"

	"bigtwo-server/pkg/playable"
	"bigtwo-server/pkg/playable/bigtwo"
	"bigtwo-server/pkg/room/gamefactory"
)

type pendingGame struct {
	Name     string    `json:"name"`
	Start    time.Time `json:"start"`
	PlayerID int64     `json:"playerId"`
	client   *Client
	factory  gamefactory.GameFactory
	message  *playable.PayloadIn
	timer    *time.Timer
}

func newPendingGame(c *Client, msg *playable.PayloadIn, delay time.Duration) (*pendingGame, error) {
	subject := msg.Subject
	if subject == "" {
		subject = bigtwo.Name
	}

	factory, err := gamefactory.Get(subject)
	if err != nil {
		return nil, err
	}

	name, err := factory.Details(msg.AdditionalData)
	if err != nil {
		return nil, err
	}

	start := time.Now().Add(delay)
	timer := time.NewTimer(time.Until(start))

	return &pendingGame{
		client:   c,
		factory:  factory,
		message:  msg,
		Name:     name,
		Start:    start,
		PlayerID: c.playerID,
		timer:    timer,
	}, nil
}

func (p *pendingGame) cancel() {
	p.timer.Stop()
}
