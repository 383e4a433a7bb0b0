package httpapi

import (
	"database/sql"
	"net/http"
	"strconv"

	"salesscout-engine/internal/domain"
	"salesscout-engine/internal/store"
)

type FeedbackHandler struct {
	DB *sql.DB
}

func (h FeedbackHandler) List(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	entries, err := store.ListFeedback(r.Context(), h.DB, limit)
	if err != nil {
		WriteError(w, r, http.StatusInternalServerError, "db_error", err.Error())
		return
	}
	if entries == nil {
		entries = []domain.FeedbackEntry{}
	}
	writeJSON(w, entries)
}
