package httpapi

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func postJSON(t *testing.T, h ResearchHandler, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/research", strings.NewReader(body))
	w := httptest.NewRecorder()
	h.Start(w, req)
	return w
}

func TestResearchStartAccepted(t *testing.T) {
	wh, _ := newWebhookHandler(t)
	h := ResearchHandler{Runner: wh.Runner, DB: wh.DB}

	w := postJSON(t, h, `{"inn": "7707083893", "user_id": "chat1", "deal_id": "555"}`)
	assert.Equal(t, http.StatusAccepted, w.Code)
	assert.Contains(t, w.Body.String(), "run_id")
}

func TestResearchStartValidation(t *testing.T) {
	wh, _ := newWebhookHandler(t)
	h := ResearchHandler{Runner: wh.Runner, DB: wh.DB}

	cases := []struct {
		name string
		body string
	}{
		{"empty query", `{"user_id": "chat1"}`},
		{"bad inn", `{"inn": "12345", "user_id": "chat1"}`},
		{"missing user", `{"company_name": "Ромашка"}`},
		{"broken json", `{`},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			w := postJSON(t, h, c.body)
			assert.Equal(t, http.StatusBadRequest, w.Code)
		})
	}
}

func TestResearchStatusAlwaysAnswers(t *testing.T) {
	wh, _ := newWebhookHandler(t)
	h := ResearchHandler{Runner: wh.Runner, DB: wh.DB}

	req := httptest.NewRequest(http.MethodGet, "/research/status", nil)
	w := httptest.NewRecorder()
	h.Status(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "running")
}

func TestResearchRunsEmptyIsJSONArray(t *testing.T) {
	wh, _ := newWebhookHandler(t)
	h := ResearchHandler{Runner: wh.Runner, DB: wh.DB}

	req := httptest.NewRequest(http.MethodGet, "/research/runs", nil)
	w := httptest.NewRecorder()
	h.Runs(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "[]\n", w.Body.String())
}
