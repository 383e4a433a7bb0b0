package httpapi

import (
	"database/sql"
	"encoding/json"
	"net/http"
	"strconv"

	"salesscout-engine/internal/domain"
	"salesscout-engine/internal/research"
	"salesscout-engine/internal/store"
)

type ResearchHandler struct {
	Runner *research.Runner
	DB     *sql.DB
}

type startResearchReq struct {
	Name    string `json:"company_name"`
	TaxID   string `json:"inn"`
	Website string `json:"website"`
	UserID  string `json:"user_id"` // dialog the dossier is delivered to
	DealID  string `json:"deal_id"`
}

// Start kicks off a run directly, bypassing the chat gateway. Useful for
// CRM automations and manual re-runs.
func (h ResearchHandler) Start(w http.ResponseWriter, r *http.Request) {
	var req startResearchReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, r, http.StatusBadRequest, "bad_json", "invalid JSON: "+err.Error())
		return
	}

	q := domain.IdentityQuery{Name: req.Name, TaxID: req.TaxID, Website: req.Website}
	if q.Empty() {
		WriteError(w, r, http.StatusBadRequest, "empty_query", "name, inn or website is required")
		return
	}
	if q.TaxID != "" && !domain.ValidTaxID(q.TaxID) {
		WriteError(w, r, http.StatusBadRequest, "bad_inn", "inn must be 10 or 12 digits")
		return
	}
	if req.UserID == "" {
		WriteError(w, r, http.StatusBadRequest, "missing_user", "user_id is required")
		return
	}

	runID := h.Runner.Start(research.Request{
		Query:    q,
		DialogID: req.UserID,
		DealID:   req.DealID,
	})
	WriteJSON(w, http.StatusAccepted, map[string]any{"ok": true, "run_id": runID})
}

func (h ResearchHandler) Status(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, h.Runner.CurrentStatus())
}

func (h ResearchHandler) Runs(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	runs, err := store.ListRuns(r.Context(), h.DB, limit)
	if err != nil {
		WriteError(w, r, http.StatusInternalServerError, "db_error", err.Error())
		return
	}
	if runs == nil {
		runs = []store.Run{}
	}
	writeJSON(w, runs)
}
