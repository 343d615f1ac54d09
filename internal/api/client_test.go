package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoginSuccess(t *testing.T) {
	var calls int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/auth/login", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		assert.NotEmpty(t, r.Header.Get("X-Request-ID"))

		var creds Credentials
		require.NoError(t, json.NewDecoder(r.Body).Decode(&creds))
		assert.Equal(t, "alice", creds.Username)
		assert.Equal(t, "pw", creds.Password)

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(AuthResponse{Success: true, UserID: 1, Message: "Login successful"})
	}))
	defer server.Close()

	c := NewClient(server.URL)
	resp, err := c.Login(context.Background(), "alice", "pw")
	require.NoError(t, err)
	assert.True(t, resp.Success)
	assert.Equal(t, 1, resp.UserID)
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls), "exactly one network call per invocation")
}

func TestLoginInvalidCredentials(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"detail": "Invalid credentials"}`))
	}))
	defer server.Close()

	c := NewClient(server.URL)
	_, err := c.Login(context.Background(), "alice", "wrong")
	require.Error(t, err)

	var reqErr *RequestError
	require.True(t, errors.As(err, &reqErr))
	assert.Equal(t, "Invalid credentials", reqErr.Message)
	assert.Equal(t, http.StatusUnauthorized, reqErr.StatusCode)
}

func TestErrorBodyMessageField(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"message": "username taken"}`))
	}))
	defer server.Close()

	c := NewClient(server.URL)
	_, err := c.Register(context.Background(), Registration{Username: "bob", Password: "pw", Email: "b@x.io"})
	require.Error(t, err)
	assert.Equal(t, "username taken", err.Error())
}

func TestErrorBodyUnparseable(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte("<html>oops</html>"))
	}))
	defer server.Close()

	c := NewClient(server.URL)
	_, err := c.Health(context.Background())
	require.Error(t, err)
	assert.Equal(t, "HTTP error: status 500", err.Error())
}

func TestTransportFailure(t *testing.T) {
	// Point at a closed server so the dial fails.
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close()

	c := NewClient(server.URL)
	_, err := c.Health(context.Background())
	require.Error(t, err)

	var reqErr *RequestError
	require.True(t, errors.As(err, &reqErr), "transport failures use the same error kind")
	assert.Zero(t, reqErr.StatusCode)
}

func TestMalformedSuccessBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("not json"))
	}))
	defer server.Close()

	c := NewClient(server.URL)
	_, err := c.Health(context.Background())
	var reqErr *RequestError
	require.True(t, errors.As(err, &reqErr))
}

func TestUserItemsPathEscaping(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/items/a%20b", r.URL.EscapedPath())
		_ = json.NewEncoder(w).Encode(ItemsResponse{Success: true, Items: []InventoryItem{}})
	}))
	defer server.Close()

	c := NewClient(server.URL)
	resp, err := c.UserItems(context.Background(), "a b")
	require.NoError(t, err)
	assert.True(t, resp.Success)
}

func TestChatFailurePassthrough(t *testing.T) {
	// A 2xx with success:false is not a transport error; the workflow
	// layer decides how to surface it.
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(ChatResponse{Success: false, Response: "Chat service unavailable"})
	}))
	defer server.Close()

	c := NewClient(server.URL)
	resp, err := c.Chat(context.Background(), ChatRequest{Username: "alice", Text: "hi"})
	require.NoError(t, err)
	assert.False(t, resp.Success)
	assert.Equal(t, "Chat service unavailable", resp.Response)
}

func TestSearchRoundTrip(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req SearchRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "alice", req.Username)
		_ = json.NewEncoder(w).Encode(SearchResponse{
			Success: true,
			Results: []SearchResult{{Name: "M6 bolt", Score: 0.87}},
		})
	}))
	defer server.Close()

	c := NewClient(server.URL)
	resp, err := c.Search(context.Background(), SearchRequest{Image: "data:image/png;base64,AA==", Username: "alice"})
	require.NoError(t, err)
	require.Len(t, resp.Results, 1)
	assert.InDelta(t, 0.87, resp.Results[0].Score, 1e-9)
}
