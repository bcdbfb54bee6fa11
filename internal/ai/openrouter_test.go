package ai

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpenRouter_Ask(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))

		var req chatRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		require.Len(t, req.Messages, 2)
		assert.Equal(t, "system", req.Messages[0].Role)
		assert.Equal(t, "what laptop should I buy", req.Messages[1].Content)

		json.NewEncoder(w).Encode(chatResponse{
			Choices: []struct {
				Message chatMessage `json:"message"`
			}{{Message: chatMessage{Role: "assistant", Content: "  A good one.  "}}},
		})
	}))
	defer srv.Close()

	c := NewOpenRouterClient("test-key", "test-model", srv.URL)
	answer, err := c.Ask(context.Background(), "what laptop should I buy")
	require.NoError(t, err)
	assert.Equal(t, "A good one.", answer)
}

func TestOpenRouter_Ask_HTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "rate limited", http.StatusTooManyRequests)
	}))
	defer srv.Close()

	c := NewOpenRouterClient("k", "", srv.URL)
	_, err := c.Ask(context.Background(), "q")
	require.Error(t, err)

	var perr *ProviderError
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, http.StatusTooManyRequests, perr.Code)
	assert.Equal(t, "openrouter", perr.Provider)
}

func TestOpenRouter_Ask_EmptyChoices(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(chatResponse{})
	}))
	defer srv.Close()

	c := NewOpenRouterClient("k", "", srv.URL)
	_, err := c.Ask(context.Background(), "q")
	assert.Error(t, err)
}

func TestOpenRouter_Ask_EmptyAnswerFallback(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(chatResponse{
			Choices: []struct {
				Message chatMessage `json:"message"`
			}{{Message: chatMessage{Role: "assistant", Content: "   "}}},
		})
	}))
	defer srv.Close()

	c := NewOpenRouterClient("k", "", srv.URL)
	answer, err := c.Ask(context.Background(), "q")
	require.NoError(t, err)
	assert.Equal(t, "No se obtuvo respuesta de la IA.", answer)
}

func TestOpenRouter_Defaults(t *testing.T) {
	c := NewOpenRouterClient("k", "", "")
	assert.Equal(t, defaultBaseURL, c.baseURL)
	assert.Equal(t, defaultModel, c.model)
	assert.Equal(t, "openrouter", c.Name())
}
