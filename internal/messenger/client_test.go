package messenger

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newGateway(t *testing.T, reply string) (*httptest.Server, *[]url.Values) {
	t.Helper()
	var calls []url.Values
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseForm())
		calls = append(calls, r.PostForm)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(reply))
	}))
	t.Cleanup(srv.Close)
	return srv, &calls
}

func TestSendMessageChunksAndKeyboard(t *testing.T) {
	srv, calls := newGateway(t, `{"result":true}`)

	c := New(Config{WebhookURL: srv.URL, BotID: "77", ClientID: "cl", MaxPartLen: 10})
	kb := c.FeedbackKeyboard("7707083893")

	err := c.SendMessage(context.Background(), "chat42", "aaa\nbbb\nccc\nddd", kb)
	require.NoError(t, err)

	require.Len(t, *calls, 2)

	first, last := (*calls)[0], (*calls)[1]
	assert.Equal(t, "chat42", first.Get("DIALOG_ID"))
	assert.Equal(t, "77", first.Get("BOT_ID"))
	assert.Equal(t, "aaa\nbbb", first.Get("MESSAGE"))
	assert.Equal(t, "ccc\nddd", last.Get("MESSAGE"))

	// keyboard rides only on the final chunk
	assert.Empty(t, first.Get("KEYBOARD"))
	assert.Contains(t, last.Get("KEYBOARD"), `"COMMAND":"positive"`)
	assert.Contains(t, last.Get("KEYBOARD"), `"COMMAND_PARAMS":"7707083893"`)
}

func TestSendMessageGatewayError(t *testing.T) {
	srv, _ := newGateway(t, `{"error":"INVALID","error_description":"Bot not found"}`)

	c := New(Config{WebhookURL: srv.URL, BotID: "77"})
	err := c.SendMessage(context.Background(), "chat42", "привет", nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Bot not found")
}

func TestAddComment(t *testing.T) {
	var gotPath string
	var gotBody []byte
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		buf := make([]byte, 1024)
		n, _ := r.Body.Read(buf)
		gotBody = buf[:n]
		_, _ = w.Write([]byte(`{"result":1}`))
	}))
	defer srv.Close()

	c := New(Config{WebhookURL: srv.URL})
	require.NoError(t, c.AddComment(context.Background(), "555", "итог досье"))

	assert.Equal(t, "/crm.timeline.comment.add.json", gotPath)
	assert.Contains(t, string(gotBody), `"ENTITY_ID":"555"`)
	assert.Contains(t, string(gotBody), `"ENTITY_TYPE":"deal"`)
}

func TestFeedbackKeyboardRows(t *testing.T) {
	c := New(Config{BotID: "9"})
	kb := c.FeedbackKeyboard("x")

	require.Len(t, kb, 3)
	assert.Equal(t, "positive", kb[0][0].Command)
	assert.Equal(t, "negative", kb[1][0].Command)
	assert.Equal(t, "feedback", kb[2][0].Command)
	for _, row := range kb {
		assert.Equal(t, "9", row[0].BotID)
		assert.Equal(t, "x", row[0].CommandParams)
	}
}
