// Package channels - Test Slack client với httptest server giả lập Web API.
package channels

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type capturedRequest struct {
	path    string
	auth    string
	payload map[string]interface{}
}

func newSlackTestServer(t *testing.T, response map[string]interface{}, status int) (*httptest.Server, *capturedRequest) {
	t.Helper()
	captured := &capturedRequest{}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		captured.path = r.URL.Path
		captured.auth = r.Header.Get("Authorization")
		if err := json.NewDecoder(r.Body).Decode(&captured.payload); err != nil {
			t.Errorf("payload không phải JSON: %v", err)
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		json.NewEncoder(w).Encode(response)
	}))
	t.Cleanup(server.Close)
	return server, captured
}

func TestSendMessage(t *testing.T) {
	server, captured := newSlackTestServer(t, map[string]interface{}{
		"ok": true,
		"ts": "1700000000.000100",
	}, http.StatusOK)

	client := NewSlackClient(server.URL)
	ts, err := client.SendMessage(context.Background(), "xoxb-token", "D123", "hello",
		[]map[string]interface{}{{"type": "section"}})
	require.NoError(t, err)
	assert.Equal(t, "1700000000.000100", ts)

	assert.Equal(t, "/chat.postMessage", captured.path)
	assert.Equal(t, "Bearer xoxb-token", captured.auth)
	assert.Equal(t, "D123", captured.payload["channel"])
	assert.Equal(t, "hello", captured.payload["text"])
	assert.NotNil(t, captured.payload["blocks"])
}

func TestSendMessage_OmitsEmptyBlocks(t *testing.T) {
	server, captured := newSlackTestServer(t, map[string]interface{}{"ok": true, "ts": "1.0"}, http.StatusOK)

	client := NewSlackClient(server.URL)
	_, err := client.SendMessage(context.Background(), "xoxb-token", "D123", "hello", nil)
	require.NoError(t, err)

	_, hasBlocks := captured.payload["blocks"]
	assert.False(t, hasBlocks, "blocks rỗng không được đưa vào payload")
}

func TestUpdateMessage(t *testing.T) {
	server, captured := newSlackTestServer(t, map[string]interface{}{"ok": true}, http.StatusOK)

	client := NewSlackClient(server.URL)
	err := client.UpdateMessage(context.Background(), "xoxb-token", "D123", "1700000000.000100", "updated", nil)
	require.NoError(t, err)

	assert.Equal(t, "/chat.update", captured.path)
	assert.Equal(t, "1700000000.000100", captured.payload["ts"])
	assert.Equal(t, "updated", captured.payload["text"])
}

func TestOpenView(t *testing.T) {
	server, captured := newSlackTestServer(t, map[string]interface{}{"ok": true}, http.StatusOK)

	client := NewSlackClient(server.URL)
	err := client.OpenView(context.Background(), "xoxb-token", "trigger123", map[string]interface{}{
		"type": "modal",
	})
	require.NoError(t, err)

	assert.Equal(t, "/views.open", captured.path)
	assert.Equal(t, "trigger123", captured.payload["trigger_id"])
}

func TestCallAPI_NotOKEnvelope(t *testing.T) {
	server, _ := newSlackTestServer(t, map[string]interface{}{
		"ok":    false,
		"error": "channel_not_found",
	}, http.StatusOK)

	client := NewSlackClient(server.URL)
	_, err := client.SendMessage(context.Background(), "xoxb-token", "D999", "hello", nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "channel_not_found")
}

func TestCallAPI_HTTPError(t *testing.T) {
	server, _ := newSlackTestServer(t, map[string]interface{}{}, http.StatusBadGateway)

	client := NewSlackClient(server.URL)
	err := client.UpdateMessage(context.Background(), "xoxb-token", "D123", "1.0", "hello", nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "502")
}

func TestNewSlackClient_DefaultBaseURL(t *testing.T) {
	client := NewSlackClient("")
	assert.Equal(t, "https://slack.com/api", client.baseURL)
}
