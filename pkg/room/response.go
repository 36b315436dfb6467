package room

import (
	"bigtwo-server/pkg/playable"
	"bigtwo-server/pkg/rating"
)

// seat is a player sitting at the table
type seat struct {
	PlayerID int64  `json:"playerId"`
	Nickname string `json:"nickname"`
}

type clientStatePlayer struct {
	*seat
	Seat        int  `json:"seat"`
	IsConnected bool `json:"isConnected"`
}

type clientState struct {
	Seats []*clientStatePlayer `json:"seats"`
	// Lobby are connected players without a seat
	Lobby       []int64      `json:"lobby"`
	InProgress  bool         `json:"inProgress"`
	PendingGame *pendingGame `json:"pendingGame,omitempty"`
}

type gameResult struct {
	Winner  int64           `json:"winner"`
	Changes []rating.Change `json:"changes"`
	Log     interface{}     `json:"log"`
}

func newErrorResponse(ctx string, err error) *playable.Response {
	return &playable.Response{
		Key:     "error",
		Value:   err.Error(),
		Context: ctx,
	}
}
