package openai

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
	"lawpro-be/pkg/llm"
)

type capturedRequest struct {
	Model       string        `json:"model"`
	Messages    []llm.Message `json:"messages"`
	Temperature float64       `json:"temperature"`
	MaxTokens   int           `json:"max_tokens"`
}

func TestOpenAIProvider_Chat(t *testing.T) {
	var got capturedRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"c1","object":"chat.completion","choices":[{"index":0,"message":{"role":"assistant","content":"DUI Arrest in Oregon"},"finish_reason":"stop"}]}`))
	}))
	defer srv.Close()

	p := NewOpenAIProvider("test-key", srv.URL, "openai/gpt-4.1", time.Second)
	out, err := p.Chat(context.Background(), []llm.Message{
		{Role: llm.RoleSystem, Content: "Generate a title"},
		{Role: llm.RoleUser, Content: "I had a DUI"},
	}, llm.WithTemperature(0.3), llm.WithMaxTokens(100))

	require.NoError(t, err)
	assert.Equal(t, "DUI Arrest in Oregon", out)
	assert.Equal(t, "openai/gpt-4.1", got.Model)
	assert.InDelta(t, 0.3, got.Temperature, 0.0001)
	assert.Equal(t, 100, got.MaxTokens)
	require.Len(t, got.Messages, 2)
	assert.Equal(t, "system", got.Messages[0].Role)
	assert.Equal(t, "user", got.Messages[1].Role)
}

func TestOpenAIProvider_Errors(t *testing.T) {
	t.Run("server error is a network failure", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
			_, _ = w.Write([]byte(`{"error":{"message":"boom"}}`))
		}))
		defer srv.Close()

		_, err := NewOpenAIProvider("k", srv.URL, "m", time.Second).Generate(context.Background(), "hi")
		require.Error(t, err)
		assert.True(t, apperr.Is(err, apperr.KindNetwork))
	})

	t.Run("no choices is malformed", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"id":"c1","object":"chat.completion","choices":[]}`))
		}))
		defer srv.Close()

		_, err := NewOpenAIProvider("k", srv.URL, "m", time.Second).Generate(context.Background(), "hi")
		require.Error(t, err)
		assert.True(t, apperr.Is(err, apperr.KindMalformedResponse))
	})
}
