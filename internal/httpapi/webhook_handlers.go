package httpapi

import (
	"database/sql"
	"log"
	"net/http"
	"strings"
	"time"
	"unicode/utf8"

	"salesscout-engine/internal/domain"
	"salesscout-engine/internal/events"
	"salesscout-engine/internal/research"
	"salesscout-engine/internal/store"
	"salesscout-engine/internal/webutil"
)

// Gateway event names, as the chat platform posts them.
const (
	evMessageAdd = "ONIMBOTMESSAGEADD"
	evCommandAdd = "ONIMCOMMANDADD"
	evJoinChat   = "ONIMBOTJOINCHAT"
)

type WebhookHandler struct {
	Runner    *research.Runner
	Messenger Messenger
	DB        *sql.DB
	Hub       *events.Hub
	Secret    func() string
}

// Handle accepts the platform's form-encoded bot events. The platform
// retries non-200 responses, so everything past auth answers 200 even
// when the payload is ignored.
func (h WebhookHandler) Handle(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		WriteError(w, r, http.StatusBadRequest, "bad_form", "cannot parse form body")
		return
	}

	if secret := h.Secret(); secret != "" {
		if r.FormValue("auth[application_token]") != secret {
			WriteError(w, r, http.StatusForbidden, "bad_token", "application token mismatch")
			return
		}
	}

	switch ev := r.FormValue("event"); ev {
	case evMessageAdd:
		h.handleMessage(w, r)
	case evCommandAdd:
		h.handleCommand(w, r)
	case evJoinChat:
		h.handleJoin(w, r)
	default:
		log.Printf("[webhook] ignoring event=%q", ev)
		writeJSON(w, map[string]any{"ok": true})
	}
}

func (h WebhookHandler) handleMessage(w http.ResponseWriter, r *http.Request) {
	dialogID := r.FormValue("data[PARAMS][DIALOG_ID]")
	message := strings.TrimSpace(r.FormValue("data[PARAMS][MESSAGE]"))

	// the platform echoes the bot's own service messages back
	if r.FormValue("data[PARAMS][SYSTEM]") == "Y" {
		writeJSON(w, map[string]any{"ok": true})
		return
	}

	// typed feedback commands take precedence over identity queries
	if kind, ok := domain.ParseFeedbackKind(strings.ToLower(message)); ok {
		h.recordFeedback(w, r, dialogID, "", kind)
		return
	}

	q := queryFromMessage(message)
	if q.Empty() {
		if err := h.Messenger.SendMessage(r.Context(), dialogID,
			"Пришлите название компании, её ИНН (10 или 12 цифр) или адрес сайта — соберу досье.", nil); err != nil {
			log.Printf("[webhook] hint message failed dialog=%s: %v", dialogID, err)
		}
		writeJSON(w, map[string]any{"ok": true})
		return
	}

	runID := h.Runner.Start(research.Request{Query: q, DialogID: dialogID})
	writeJSON(w, map[string]any{"ok": true, "run_id": runID})
}

func (h WebhookHandler) handleCommand(w http.ResponseWriter, r *http.Request) {
	dialogID := r.FormValue("data[COMMAND][0][MESSAGE][DIALOG_ID]")
	if dialogID == "" {
		dialogID = r.FormValue("data[PARAMS][DIALOG_ID]")
	}
	cmd := r.FormValue("data[COMMAND][0][COMMAND]")
	params := r.FormValue("data[COMMAND][0][COMMAND_PARAMS]")

	kind, ok := domain.ParseFeedbackKind(cmd)
	if !ok {
		log.Printf("[webhook] unknown command=%q dialog=%s", cmd, dialogID)
		writeJSON(w, map[string]any{"ok": true})
		return
	}

	h.recordFeedback(w, r, dialogID, params, kind)
}

func (h WebhookHandler) recordFeedback(w http.ResponseWriter, r *http.Request, dialogID, companyID string, kind domain.FeedbackKind) {
	entry := domain.FeedbackEntry{
		At:        time.Now().UTC(),
		CompanyID: companyID,
		Kind:      kind,
		DialogID:  dialogID,
	}
	if err := store.AppendFeedback(r.Context(), h.DB, entry); err != nil {
		log.Printf("[webhook] feedback store failed: %v", err)
	}
	h.Hub.Publish(events.MakeEvent("", events.TypeFeedbackRecorded, 1, map[string]any{
		"company": companyID, "kind": string(kind),
	}))

	reply := "Спасибо за оценку!"
	if kind == domain.FeedbackComment {
		reply = "Напишите, пожалуйста, что можно улучшить — передам команде."
	}
	if err := h.Messenger.SendMessage(r.Context(), dialogID, reply, nil); err != nil {
		log.Printf("[webhook] feedback ack failed dialog=%s: %v", dialogID, err)
	}

	writeJSON(w, map[string]any{"ok": true})
}

func (h WebhookHandler) handleJoin(w http.ResponseWriter, r *http.Request) {
	dialogID := r.FormValue("data[PARAMS][DIALOG_ID]")
	if err := h.Messenger.SendMessage(r.Context(), dialogID,
		"Привет! Я собираю досье на компании. Пришлите название, ИНН или сайт компании.", nil); err != nil {
		log.Printf("[webhook] welcome failed dialog=%s: %v", dialogID, err)
	}
	writeJSON(w, map[string]any{"ok": true})
}

// queryFromMessage classifies free text into an identity query: a tax id
// anywhere in the text wins, then a URL-looking token, then the text as a
// company name when it is at least two characters.
func queryFromMessage(message string) domain.IdentityQuery {
	var q domain.IdentityQuery

	if inn := domain.ExtractTaxID(message); inn != "" {
		q.TaxID = inn
		return q
	}
	if looksLikeURL(message) {
		q.Website = webutil.EnsureScheme(message)
		return q
	}
	if utf8.RuneCountInString(message) >= 2 {
		q.Name = message
	}
	return q
}

func looksLikeURL(s string) bool {
	if strings.ContainsAny(s, " \t\n") {
		return false
	}
	if strings.Contains(s, "://") || strings.HasPrefix(strings.ToLower(s), "www.") {
		return true
	}
	// bare domain like company.ru
	i := strings.LastIndex(s, ".")
	return i > 0 && i < len(s)-2 && !strings.ContainsRune(s[i+1:], '.') &&
		strings.IndexFunc(s, func(r rune) bool { return r >= 'а' && r <= 'я' || r >= 'А' && r <= 'Я' }) == -1
}
