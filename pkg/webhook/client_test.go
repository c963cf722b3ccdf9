package webhook

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lawpro-be/pkg/apperr"
)

func newServer(t *testing.T, status int, body string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestClient_Send(t *testing.T) {
	tests := []struct {
		name     string
		status   int
		body     string
		wantText string
		wantFlag bool
		wantKind apperr.Kind
	}{
		{name: "array with output.response", status: 200, body: `[{"output":{"response":"Hello from array"}}]`, wantText: "Hello from array"},
		{name: "array with response", status: 200, body: `[{"response":"Plain array"}]`, wantText: "Plain array"},
		{name: "object with output.response", status: 200, body: `{"output":{"response":"Nested","showLawyers":true}}`, wantText: "Nested", wantFlag: true},
		{name: "object with response and flag", status: 200, body: `{"response":"Top level","lawyerFlag":true}`, wantText: "Top level", wantFlag: true},
		{name: "snake case flag", status: 200, body: `{"response":"Snake","show_lawyers":true}`, wantText: "Snake", wantFlag: true},
		{name: "server error", status: 500, body: `{"error":"boom"}`, wantKind: apperr.KindNetwork},
		{name: "not json", status: 200, body: `<html>oops</html>`, wantKind: apperr.KindMalformedResponse},
		{name: "object without text", status: 200, body: `{"foo":"bar"}`, wantKind: apperr.KindMalformedResponse},
		{name: "empty array", status: 200, body: `[]`, wantKind: apperr.KindMalformedResponse},
		{name: "broken json", status: 200, body: `{"response":`, wantKind: apperr.KindMalformedResponse},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := newServer(t, tt.status, tt.body)
			client := NewClient(srv.URL, time.Second)

			reply, err := client.Send(context.Background(), "hello", "chat-1")
			if tt.wantKind != apperr.KindUnknown {
				require.Error(t, err)
				assert.Equal(t, tt.wantKind, apperr.KindOf(err))
				assert.Nil(t, reply)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantText, reply.ResponseText)
			assert.Equal(t, tt.wantFlag, reply.LawyerFlag)
		})
	}
}

func TestClient_SendPayload(t *testing.T) {
	var got sendRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		_, _ = w.Write([]byte(`{"response":"ok"}`))
	}))
	defer srv.Close()

	_, err := NewClient(srv.URL, time.Second).Send(context.Background(), "I need a lawyer", "session-42")
	require.NoError(t, err)
	assert.Equal(t, "I need a lawyer", got.Message)
	assert.Equal(t, "session-42", got.ChatID)
}

func TestClient_Timeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
		_, _ = w.Write([]byte(`{"response":"late"}`))
	}))
	defer srv.Close()

	_, err := NewClient(srv.URL, 20*time.Millisecond).Send(context.Background(), "hi", "chat")
	require.Error(t, err)
	assert.True(t, apperr.Is(err, apperr.KindNetwork))
}

func TestClient_Unreachable(t *testing.T) {
	_, err := NewClient("http://127.0.0.1:1", time.Second).Send(context.Background(), "hi", "chat")
	require.Error(t, err)
	assert.True(t, apperr.Is(err, apperr.KindNetwork))
}
