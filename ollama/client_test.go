package ollama

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/ollama/ollama/api"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewClientDefaults(t *testing.T) {
	c, err := NewClient("", "", nil)
	require.NoError(t, err)
	assert.Equal(t, DefaultModel, c.GetModel())
	assert.Equal(t, DefaultBaseURL, c.BaseURL())
}

func TestNewClientAddsScheme(t *testing.T) {
	c, err := NewClient("127.0.0.1:11434", "m", nil)
	require.NoError(t, err)
	assert.Equal(t, "http://127.0.0.1:11434", c.BaseURL())
}

func TestNewClientInvalidURL(t *testing.T) {
	_, err := NewClient("http://", "m", nil)
	assert.Error(t, err)
}

func TestSetModel(t *testing.T) {
	c, err := NewClient("", "a", nil)
	require.NoError(t, err)
	c.SetModel("b")
	assert.Equal(t, "b", c.GetModel())
}

func TestChat(t *testing.T) {
	var got api.ChatRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/chat", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"model":"llama3.1:latest","message":{"role":"assistant","content":"hello there"},"done":true}` + "\n"))
	}))
	defer srv.Close()

	c, err := NewClient(srv.URL, "", srv.Client())
	require.NoError(t, err)

	out, err := c.Chat(context.Background(), []api.Message{{Role: "user", Content: "hi"}}, 0.5)
	require.NoError(t, err)
	assert.Equal(t, "hello there", out)

	assert.Equal(t, DefaultModel, got.Model)
	require.NotNil(t, got.Stream)
	assert.False(t, *got.Stream)
	assert.Equal(t, 0.5, got.Options["temperature"])
	require.Len(t, got.Messages, 1)
	assert.Equal(t, "hi", got.Messages[0].Content)
}

func TestChatServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error":"model exploded"}`))
	}))
	defer srv.Close()

	c, err := NewClient(srv.URL, "", srv.Client())
	require.NoError(t, err)

	_, err = c.Chat(context.Background(), []api.Message{{Role: "user", Content: "hi"}}, 0)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "model exploded")
}

func TestPing(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/tags", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"models":[]}`))
	}))
	defer srv.Close()

	c, err := NewClient(srv.URL, "", srv.Client())
	require.NoError(t, err)
	assert.NoError(t, c.Ping(context.Background()))

	srv.Close()
	assert.Error(t, c.Ping(context.Background()))
}
