package advisor

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestClientComplete(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/chat/completions", r.URL.Path)
		require.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))

		var req chatRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		require.Equal(t, "mistralai/mistral-7b-instruct", req.Model)
		require.Len(t, req.Messages, 1)
		require.Equal(t, "user", req.Messages[0].Role)

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"choices":[{"message":{"content":"RELIANCE – top pick"}}]}`))
	}))
	defer srv.Close()

	c := NewClientWithBaseURL("test-key", "mistralai/mistral-7b-instruct", srv.URL)

	text, err := c.Complete(context.Background(), "recommend stocks")
	require.NoError(t, err)
	require.Equal(t, "RELIANCE – top pick", text)
}

func TestClientComplete_NonSuccessStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		w.Write([]byte(`{"error":"rate limited"}`))
	}))
	defer srv.Close()

	c := NewClientWithBaseURL("test-key", "m", srv.URL)

	_, err := c.Complete(context.Background(), "prompt")
	require.Error(t, err)
	require.Contains(t, err.Error(), "429")
}

func TestClientComplete_EmptyChoices(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"choices":[]}`))
	}))
	defer srv.Close()

	c := NewClientWithBaseURL("test-key", "m", srv.URL)

	_, err := c.Complete(context.Background(), "prompt")
	require.Error(t, err)
	require.Contains(t, err.Error(), "no choices")
}
