// Package research executes one company-research run per trigger:
// acknowledge, resolve identity, collect and render the dossier, deliver
// it, then offer the rating keyboard. Runs are fire-and-forget: the
// triggering request returns as soon as the run is enqueued, and the
// outcome is only observable through the messaging gateway and the SSE
// progress stream.
package research

import (
	"context"
	"database/sql"
	"errors"
	"log"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"salesscout-engine/internal/domain"
	"salesscout-engine/internal/events"
	"salesscout-engine/internal/identity"
	"salesscout-engine/internal/messenger"
	"salesscout-engine/internal/store"
)

// runTimeout bounds a whole run; individual collection calls carry their
// own shorter timeouts.
const runTimeout = 10 * time.Minute

type Resolver interface {
	Resolve(ctx context.Context, q domain.IdentityQuery) (identity.Result, error)
}

type Synthesizer interface {
	Synthesize(ctx context.Context, id domain.ConfirmedIdentity, record *domain.RegistryRecord) string
}

type Messenger interface {
	SendMessage(ctx context.Context, dialogID, text string, keyboard messenger.Keyboard) error
	AddComment(ctx context.Context, dealID, comment string) error
	FeedbackKeyboard(companyID string) messenger.Keyboard
}

// Request is one unit of research work.
type Request struct {
	Query    domain.IdentityQuery
	DialogID string // where the dossier goes
	DealID   string // optional CRM deal to comment on
}

// Status mirrors the latest run for the status endpoint.
type Status struct {
	RunID     string `json:"run_id"`
	Query     string `json:"query"`
	LastRunAt string `json:"last_run_at"`
	LastOkAt  string `json:"last_ok_at"`
	LastError string `json:"last_error"`
	Running   bool   `json:"running"`
}

type Runner struct {
	Resolver    Resolver
	Synthesizer Synthesizer
	Messenger   Messenger
	DB          *sql.DB
	Hub         *events.Hub

	status atomic.Value // Status
}

// Start enqueues a run and returns its id immediately. The goroutine is
// its own error boundary: nothing escapes to the caller.
func (r *Runner) Start(req Request) string {
	runID := uuid.NewString()

	now := time.Now().Format(time.RFC3339)
	prev := r.CurrentStatus()
	r.status.Store(Status{
		RunID:     runID,
		Query:     req.Query.Label(),
		LastRunAt: now,
		LastOkAt:  prev.LastOkAt,
		Running:   true,
	})

	go r.run(runID, req)

	return runID
}

func (r *Runner) CurrentStatus() Status {
	if st, ok := r.status.Load().(Status); ok {
		return st
	}
	return Status{}
}

func (r *Runner) finish(runID string, runErr string) {
	now := time.Now().Format(time.RFC3339)
	st := r.CurrentStatus()
	st.Running = false
	st.LastError = runErr
	if runErr == "" {
		st.LastOkAt = now
	}
	r.status.Store(st)
}

func (r *Runner) run(runID string, req Request) {
	defer func() {
		if rec := recover(); rec != nil {
			log.Printf("[research] panic run=%s: %v", runID, rec)
			r.finish(runID, "panic")
		}
	}()

	ctx, cancel := context.WithTimeout(context.Background(), runTimeout)
	defer cancel()

	label := req.Query.Label()
	log.Printf("[research] start run=%s query=%q dialog=%s", runID, label, req.DialogID)

	if err := store.InsertRun(ctx, r.DB, runID, label, req.DialogID); err != nil {
		log.Printf("[research] run=%s insert history: %v", runID, err)
	}
	r.Hub.Publish(events.MakeEvent(runID, events.TypeResearchStarted, 1, map[string]any{"query": label}))

	// immediate acknowledgement; delivery failure here is not fatal
	if err := r.Messenger.SendMessage(ctx, req.DialogID, msgAck(label), nil); err != nil {
		log.Printf("[research] run=%s ack failed: %v", runID, err)
	}

	res, err := r.Resolver.Resolve(ctx, req.Query)
	if err != nil {
		if errors.Is(err, identity.ErrIdentityNotFound) {
			log.Printf("[research] run=%s identity not found query=%q", runID, label)
			if serr := r.Messenger.SendMessage(ctx, req.DialogID, msgNotFound(label), nil); serr != nil {
				log.Printf("[research] run=%s not-found message failed: %v", runID, serr)
			}
			_ = store.FinishRun(ctx, r.DB, runID, "not_found", "")
			r.Hub.Publish(events.MakeEvent(runID, events.TypeResearchFailed, 1, map[string]any{"reason": "not_found"}))
			r.finish(runID, "")
			return
		}

		log.Printf("[research] run=%s resolve failed: %v", runID, err)
		if serr := r.Messenger.SendMessage(ctx, req.DialogID, msgFailure(label), nil); serr != nil {
			log.Printf("[research] run=%s failure message failed: %v", runID, serr)
		}
		_ = store.FinishRun(ctx, r.DB, runID, "failed", err.Error())
		r.Hub.Publish(events.MakeEvent(runID, events.TypeResearchFailed, 1, map[string]any{"reason": "error"}))
		r.finish(runID, err.Error())
		return
	}

	log.Printf("[research] run=%s resolved name=%q inn=%s site=%q",
		runID, res.Identity.Name, res.Identity.TaxID, res.Identity.Website)
	r.Hub.Publish(events.MakeEvent(runID, events.TypeIdentityResolved, 1, map[string]any{
		"name": res.Identity.Name, "inn": res.Identity.TaxID,
	}))

	doc := r.Synthesizer.Synthesize(ctx, res.Identity, res.Registry)

	if err := r.Messenger.SendMessage(ctx, req.DialogID, doc, nil); err != nil {
		log.Printf("[research] run=%s dossier delivery failed: %v", runID, err)
		_ = store.FinishRun(ctx, r.DB, runID, "failed", err.Error())
		r.Hub.Publish(events.MakeEvent(runID, events.TypeResearchFailed, 1, map[string]any{"reason": "delivery"}))
		r.finish(runID, err.Error())
		return
	}

	// CRM comment when a deal was named; best effort
	if req.DealID != "" {
		if err := r.Messenger.AddComment(ctx, req.DealID, doc); err != nil {
			log.Printf("[research] run=%s deal comment failed deal=%s: %v", runID, req.DealID, err)
		}
	}

	// rating keyboard in a separate message; its failure never fails the run
	feedbackID := res.Identity.TaxID
	if feedbackID == "" {
		feedbackID = res.Identity.Name
	}
	kb := r.Messenger.FeedbackKeyboard(feedbackID)
	if err := r.Messenger.SendMessage(ctx, req.DialogID, "Оцените полезность досье:", kb); err != nil {
		log.Printf("[research] run=%s rating keyboard failed: %v", runID, err)
	}

	_ = store.FinishRun(ctx, r.DB, runID, "done", "")
	r.Hub.Publish(events.MakeEvent(runID, events.TypeDossierSent, 1, map[string]any{"name": res.Identity.Name}))
	r.finish(runID, "")
	log.Printf("[research] run=%s done name=%q", runID, res.Identity.Name)
}
