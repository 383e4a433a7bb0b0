package dossier

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"salesscout-engine/internal/domain"
	"salesscout-engine/internal/websearch"
)

func renderServer(t *testing.T, content string) *LLMRenderer {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Model    string `json:"model"`
			Messages []struct {
				Role    string `json:"role"`
				Content string `json:"content"`
			} `json:"messages"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "writer-model", req.Model)
		require.Len(t, req.Messages, 2)
		assert.Contains(t, req.Messages[0].Content, "Наша CRM")

		resp := map[string]any{
			"choices": []map[string]any{
				{"message": map[string]any{"content": content}},
			},
		}
		_ = json.NewEncoder(w).Encode(resp)
	}))
	t.Cleanup(srv.Close)

	return &LLMRenderer{
		Client:  websearch.New(websearch.Config{BaseURL: srv.URL}),
		Model:   "writer-model",
		Product: "Наша CRM",
	}
}

func TestRenderProseIsTheSuccessPath(t *testing.T) {
	r := renderServer(t, "📋 ДОСЬЕ КОМПАНИИ\nООО Ромашка ...")

	doc, err := r.Render(context.Background(), domain.DossierBundle{
		Identity: domain.ConfirmedIdentity{Name: "ООО Ромашка"},
	})
	require.NoError(t, err)
	assert.Contains(t, doc, "ДОСЬЕ КОМПАНИИ")
}

func TestRenderAcceptsDossierJSONField(t *testing.T) {
	r := renderServer(t, `{"dossier": "текст досье"}`)

	doc, err := r.Render(context.Background(), domain.DossierBundle{})
	require.NoError(t, err)
	assert.Equal(t, "текст досье", doc)
}

func TestRenderRejectsForeignJSON(t *testing.T) {
	r := renderServer(t, `{"unexpected": true}`)

	_, err := r.Render(context.Background(), domain.DossierBundle{})
	assert.Error(t, err)
}
