package bigtwo

import (
	"bigtwo-server/pkg/deck"
	"bigtwo-server/pkg/playable"
)

// GameState is the overall game state
// This is safe for all players to see
type GameState struct {
	Seats        []*SeatState `json:"seats"`
	Phase        string       `json:"phase"`
	Trick        int          `json:"trick"`
	CurrentActor int64        `json:"currentActor"`
	// TrickOwner is 0 until the first play
	TrickOwner   int64   `json:"trickOwner"`
	CurrentTrick []*Play `json:"currentTrick"`
	LastPlays    []*Play `json:"lastPlays"`
	Balanced     bool    `json:"balanced"`
	IsGameOver   bool    `json:"isGameOver"`
	Winner       int64   `json:"winner,omitempty"`
}

// SeatState is the public state of a seat
type SeatState struct {
	PlayerID  int64 `json:"playerId"`
	Seat      int   `json:"seat"`
	CardsLeft int   `json:"cardsLeft"`
}

// Response is the response format for this game
// Hand is only ever the requesting player's own hand
type Response struct {
	GameState *GameState `json:"gameState"`
	Seat      int        `json:"seat"`
	Hand      deck.Hand  `json:"hand"`
	IsTurn    bool       `json:"isTurn"`
	CanPass   bool       `json:"canPass"`
}

func (g *Game) getGameState() *GameState {
	r := g.round
	seats := make([]*SeatState, 0, SeatCount)
	for _, p := range r.participants {
		seats = append(seats, &SeatState{
			PlayerID:  p.PlayerID,
			Seat:      p.Seat,
			CardsLeft: p.CardsLeft(),
		})
	}

	owner, _ := r.TrickOwner()
	isOver, winner := r.IsFinished()

	return &GameState{
		Seats:        seats,
		Phase:        r.Phase().String(),
		Trick:        r.TrickNumber(),
		CurrentActor: r.CurrentActor(),
		TrickOwner:   owner,
		CurrentTrick: r.CurrentTrick(),
		LastPlays:    r.LastPlays(lastHandsCount),
		Balanced:     g.options.Balance,
		IsGameOver:   isOver,
		Winner:       winner,
	}
}

// GetPlayerState returns the state for the given player
// Players who are not seated get the public state with no hand
func (g *Game) GetPlayerState(playerID int64) (*playable.Response, error) {
	response := &Response{
		GameState: g.getGameState(),
		Seat:      -1,
		Hand:      deck.Hand{},
	}

	if p, ok := g.round.idToParticipant[playerID]; ok {
		response.Seat = p.Seat
		response.Hand = p.Hand()

		if g.round.Phase() != PhaseFinished && g.round.CurrentSeat() == p.Seat {
			response.IsTurn = true
			response.CanPass = g.round.Phase() == PhaseAwaitingResponse && g.round.owner != p.Seat
		}
	}

	return &playable.Response{
		Key:   "game",
		Value: Name,
		Data:  response,
	}, nil
}
