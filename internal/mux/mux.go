package mux

import (
	"context"
	"net/http"
	"strconv"
	"strings"

	"bigtwo-server/internal/jwt"
	"bigtwo-server/pkg/rating"
	"bigtwo-server/pkg/room"
	gmux "github.com/gorilla/mux"
)

type ctxKey int

const (
	ctxPlayerIDKey ctxKey = iota
	ctxTableKey
)

// PlayerIDHeader is set on every authenticated response
const PlayerIDHeader = "BigTwo-PlayerID"

// Mux handles HTTP requests
type Mux struct {
	*gmux.Router
	version string
	pitBoss *room.PitBoss
	ledger  *rating.Ledger

	// store for testing purposes
	authRouter *gmux.Router
}

// NewMux returns a new HTTP mux
// The pit boss must already be on shift
func NewMux(version string, pitBoss *room.PitBoss, ledger *rating.Ledger) *Mux {
	this := &Mux{
		Router:  gmux.NewRouter(),
		version: version,
		pitBoss: pitBoss,
		ledger:  ledger,
	}

	this.authRouter = this.Router.NewRoute().Subrouter()
	this.authRouter.Use(this.authMiddleware)

	// unauthorized endpoints
	{
		r := this.Router
		r.Methods(http.MethodGet).Path("/health").Handler(this.getHealth())
	}

	// requires bearer authorization
	{
		r := this.authRouter

		r.Methods(http.MethodGet).Path("/rating").Handler(this.getRating())
		r.Methods(http.MethodGet).Path("/rating/{id:[0-9]+}").Handler(this.getRatingID())
		r.Methods(http.MethodPost).Path("/table").Handler(this.postTable())

		tr := r.PathPrefix("/table/{uuid:(?i)[a-f0-9]{8}(?:-[a-f0-9]{4}){3}-[a-f0-9]{12}}").Subrouter()
		tr.Use(this.tableMiddleware)

		tr.Methods(http.MethodGet).Path("/ws").Handler(this.getTableUUIDWS())
	}

	return this
}

func (m *Mux) authMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := r.FormValue("access_token")
		if token == "" {
			authHeader := strings.Split(r.Header.Get("Authorization"), " ")
			if len(authHeader) != 2 || strings.ToLower(authHeader[0]) != "bearer" {
				writeJSONError(w, http.StatusUnauthorized, nil)
				return
			}

			token = authHeader[1]
		}

		playerID, err := jwt.ValidUserID(token)
		if err != nil {
			writeJSONError(w, http.StatusUnauthorized, nil)
			return
		}

		newCtx := context.WithValue(r.Context(), ctxPlayerIDKey, playerID)
		w.Header().Set(PlayerIDHeader, strconv.FormatInt(playerID, 10))
		next.ServeHTTP(w, r.WithContext(newCtx))
	})
}

func playerIDFromContext(ctx context.Context) int64 {
	return ctx.Value(ctxPlayerIDKey).(int64)
}
