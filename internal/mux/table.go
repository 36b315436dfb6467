package mux

import (
	"context"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

type tableResponse struct {
	UUID string `json:"uuid"`
}

// postTable hands out a new table UUID. The table itself exists once the first client connects
func (m *Mux) postTable() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusCreated, tableResponse{UUID: uuid.New().String()})
	}
}

func (m *Mux) tableMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, err := uuid.Parse(mux.Vars(r)["uuid"])
		if err != nil {
			writeJSONError(w, http.StatusNotFound, nil)
			return
		}

		newCtx := context.WithValue(r.Context(), ctxTableKey, strings.ToLower(id.String()))
		next.ServeHTTP(w, r.WithContext(newCtx))
	})
}
