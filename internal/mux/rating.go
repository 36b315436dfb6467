package mux

import (
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
)

func (m *Mux) getRating() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		entry, err := m.ledger.Rating(r.Context(), playerIDFromContext(r.Context()))
		if err != nil {
			writeJSONError(w, http.StatusInternalServerError, err)
			return
		}

		writeJSON(w, http.StatusOK, entry)
	}
}

func (m *Mux) getRatingID() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		playerID, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
		if err != nil || playerID <= 0 {
			writeJSONError(w, http.StatusNotFound, nil)
			return
		}

		entry, err := m.ledger.Rating(r.Context(), playerID)
		if err != nil {
			writeJSONError(w, http.StatusInternalServerError, err)
			return
		}

		writeJSON(w, http.StatusOK, entry)
	}
}
