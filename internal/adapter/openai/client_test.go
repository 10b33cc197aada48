package openai

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/sashabaranov/go-openai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClient_Generate(t *testing.T) {
	var got openai.ChatCompletionRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1beta/openai/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer secret", r.Header.Get("Authorization"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"id":"1","object":"chat.completion","choices":[{"index":0,"message":{"role":"assistant","content":"Acme moves freight."},"finish_reason":"stop"}]}`))
	}))
	defer srv.Close()

	c := NewClient("secret", srv.URL+"/v1beta/openai/", "gemini-2.0-flash", srv.Client())
	text, err := c.Generate(context.Background(), "Summarize Acme")

	require.NoError(t, err)
	assert.Equal(t, "Acme moves freight.", text)
	assert.Equal(t, "gemini-2.0-flash", got.Model)
	require.Len(t, got.Messages, 1)
	assert.Equal(t, openai.ChatMessageRoleUser, got.Messages[0].Role)
	assert.Equal(t, "Summarize Acme", got.Messages[0].Content)
}

func TestClient_Errors(t *testing.T) {
	t.Run("server error", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusTooManyRequests)
			w.Write([]byte(`{"error":{"message":"quota exceeded","type":"rate_limit"}}`))
		}))
		defer srv.Close()

		_, err := NewClient("secret", srv.URL, "m", srv.Client()).Generate(context.Background(), "p")
		assert.Error(t, err)
	})

	t.Run("no choices", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(`{"id":"1","object":"chat.completion","choices":[]}`))
		}))
		defer srv.Close()

		_, err := NewClient("secret", srv.URL, "m", srv.Client()).Generate(context.Background(), "p")
		assert.ErrorIs(t, err, ErrEmptyResponse)
	})
}
