package research

import (
	"context"
	"errors"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"salesscout-engine/internal/domain"
	"salesscout-engine/internal/events"
	"salesscout-engine/internal/identity"
	"salesscout-engine/internal/messenger"
	"salesscout-engine/internal/store"
)

type stubResolver struct {
	res identity.Result
	err error
}

func (s *stubResolver) Resolve(ctx context.Context, q domain.IdentityQuery) (identity.Result, error) {
	return s.res, s.err
}

type stubSynth struct {
	doc string
}

func (s *stubSynth) Synthesize(ctx context.Context, id domain.ConfirmedIdentity, record *domain.RegistryRecord) string {
	return s.doc
}

type sentMessage struct {
	DialogID string
	Text     string
	Keyboard messenger.Keyboard
}

type stubMessenger struct {
	mu       sync.Mutex
	sent     []sentMessage
	comments map[string]string
	failOn   string // substring of text that triggers a send error
}

func (s *stubMessenger) SendMessage(ctx context.Context, dialogID, text string, keyboard messenger.Keyboard) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failOn != "" && strings.Contains(text, s.failOn) {
		return errors.New("gateway down")
	}
	s.sent = append(s.sent, sentMessage{DialogID: dialogID, Text: text, Keyboard: keyboard})
	return nil
}

func (s *stubMessenger) AddComment(ctx context.Context, dealID, comment string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.comments == nil {
		s.comments = make(map[string]string)
	}
	s.comments[dealID] = comment
	return nil
}

func (s *stubMessenger) FeedbackKeyboard(companyID string) messenger.Keyboard {
	return messenger.Keyboard{{{Command: "positive", CommandParams: companyID}}}
}

func (s *stubMessenger) messages() []sentMessage {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]sentMessage, len(s.sent))
	copy(out, s.sent)
	return out
}

func newTestRunner(t *testing.T, resolver Resolver, synth Synthesizer, m Messenger) *Runner {
	t.Helper()
	db, err := store.Open(filepath.Join(t.TempDir(), "runner.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	require.NoError(t, store.Migrate(db))

	return &Runner{
		Resolver:    resolver,
		Synthesizer: synth,
		Messenger:   m,
		DB:          db,
		Hub:         events.NewHub(),
	}
}

func waitDone(t *testing.T, r *Runner) {
	t.Helper()
	require.Eventually(t, func() bool {
		st := r.CurrentStatus()
		return st.RunID != "" && !st.Running
	}, 5*time.Second, 10*time.Millisecond)
}

func TestRunnerSuccessfulRun(t *testing.T) {
	resolver := &stubResolver{res: identity.Result{
		Identity: domain.ConfirmedIdentity{Name: "ООО Ромашка", TaxID: "7707083893"},
	}}
	m := &stubMessenger{}
	r := newTestRunner(t, resolver, &stubSynth{doc: "готовое досье"}, m)

	runID := r.Start(Request{Query: domain.IdentityQuery{Name: "Ромашка"}, DialogID: "chat1", DealID: "555"})
	require.NotEmpty(t, runID)
	waitDone(t, r)

	msgs := m.messages()
	require.Len(t, msgs, 3)
	assert.Contains(t, msgs[0].Text, "Принял запрос")
	assert.Equal(t, "готовое досье", msgs[1].Text)
	assert.Contains(t, msgs[2].Text, "Оцените")
	// the rating keyboard carries the confirmed tax id
	require.NotEmpty(t, msgs[2].Keyboard)
	assert.Equal(t, "7707083893", msgs[2].Keyboard[0][0].CommandParams)

	assert.Equal(t, "готовое досье", m.comments["555"])

	runs, err := store.ListRuns(context.Background(), r.DB, 10)
	require.NoError(t, err)
	require.Len(t, runs, 1)
	assert.Equal(t, runID, runs[0].ID)
	assert.Equal(t, "done", runs[0].Status)

	st := r.CurrentStatus()
	assert.Equal(t, runID, st.RunID)
	assert.Empty(t, st.LastError)
	assert.NotEmpty(t, st.LastOkAt)
}

func TestRunnerIdentityNotFound(t *testing.T) {
	resolver := &stubResolver{err: &identity.NotFoundError{Query: domain.IdentityQuery{Name: "хз"}}}
	m := &stubMessenger{}
	r := newTestRunner(t, resolver, &stubSynth{}, m)

	r.Start(Request{Query: domain.IdentityQuery{Name: "хз"}, DialogID: "chat1"})
	waitDone(t, r)

	msgs := m.messages()
	require.Len(t, msgs, 2)
	assert.Contains(t, msgs[1].Text, "уточнить")
	assert.Contains(t, msgs[1].Text, "ИНН")

	runs, err := store.ListRuns(context.Background(), r.DB, 10)
	require.NoError(t, err)
	require.Len(t, runs, 1)
	assert.Equal(t, "not_found", runs[0].Status)

	// an unresolvable query is a clean outcome, not an engine failure
	assert.Empty(t, r.CurrentStatus().LastError)
}

func TestRunnerResolveFailure(t *testing.T) {
	resolver := &stubResolver{err: errors.New("registry timeout")}
	m := &stubMessenger{}
	r := newTestRunner(t, resolver, &stubSynth{}, m)

	r.Start(Request{Query: domain.IdentityQuery{TaxID: "7707083893"}, DialogID: "chat1"})
	waitDone(t, r)

	msgs := m.messages()
	require.Len(t, msgs, 2)
	assert.Contains(t, msgs[1].Text, "технической ошибки")

	runs, err := store.ListRuns(context.Background(), r.DB, 10)
	require.NoError(t, err)
	require.Len(t, runs, 1)
	assert.Equal(t, "failed", runs[0].Status)
	assert.Equal(t, "registry timeout", runs[0].Error)
	assert.Equal(t, "registry timeout", r.CurrentStatus().LastError)
}

func TestRunnerDeliveryFailure(t *testing.T) {
	resolver := &stubResolver{res: identity.Result{
		Identity: domain.ConfirmedIdentity{Name: "Ромашка"},
	}}
	m := &stubMessenger{failOn: "готовое досье"}
	r := newTestRunner(t, resolver, &stubSynth{doc: "готовое досье"}, m)

	r.Start(Request{Query: domain.IdentityQuery{Name: "Ромашка"}, DialogID: "chat1"})
	waitDone(t, r)

	runs, err := store.ListRuns(context.Background(), r.DB, 10)
	require.NoError(t, err)
	require.Len(t, runs, 1)
	assert.Equal(t, "failed", runs[0].Status)
	assert.NotEmpty(t, r.CurrentStatus().LastError)
}

func TestRunnerFeedbackIDFallsBackToName(t *testing.T) {
	resolver := &stubResolver{res: identity.Result{
		Identity: domain.ConfirmedIdentity{Name: "Ромашка"}, // no tax id
	}}
	m := &stubMessenger{}
	r := newTestRunner(t, resolver, &stubSynth{doc: "досье"}, m)

	r.Start(Request{Query: domain.IdentityQuery{Name: "Ромашка"}, DialogID: "chat1"})
	waitDone(t, r)

	msgs := m.messages()
	require.Len(t, msgs, 3)
	assert.Equal(t, "Ромашка", msgs[2].Keyboard[0][0].CommandParams)
}
