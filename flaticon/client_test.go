package flaticon

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	c := NewClient(
		WithBaseURL(srv.URL),
		WithPageDelay(time.Millisecond),
	)
	return c
}

// authenticate runs the token exchange against the test server's
// /app/authentication handler and fails the test on error.
func authenticate(t *testing.T, c *Client, key string) {
	t.Helper()
	_, err := c.Authenticate(context.Background(), key)
	require.NoError(t, err)
}

func TestAuthenticate_Success(t *testing.T) {
	handler := func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/app/authentication", r.URL.Path)
		require.NoError(t, r.ParseMultipartForm(1<<20))
		assert.Equal(t, "secret-key", r.FormValue("apikey"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"token":"T1","expires":86400}`))
	}
	c := newTestClient(t, handler)

	token, err := c.Authenticate(context.Background(), "secret-key")
	require.NoError(t, err)
	assert.Equal(t, "T1", token)
}

func TestAuthenticate_EmptyKey(t *testing.T) {
	c := NewClient()
	_, err := c.Authenticate(context.Background(), "")
	require.Error(t, err)
}

func TestAuthenticate_HTTPError(t *testing.T) {
	handler := func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "invalid key", http.StatusForbidden)
	}
	c := newTestClient(t, handler)

	_, err := c.Authenticate(context.Background(), "bad-key")
	var authErr *AuthError
	require.ErrorAs(t, err, &authErr)
	assert.Equal(t, http.StatusForbidden, authErr.Status)
	assert.Contains(t, authErr.Body, "invalid key")
}

func TestAuthenticate_MissingToken(t *testing.T) {
	handler := func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"expires":86400}`))
	}
	c := newTestClient(t, handler)

	_, err := c.Authenticate(context.Background(), "key")
	var authErr *AuthError
	require.ErrorAs(t, err, &authErr)
	assert.Equal(t, "response missing token", authErr.Reason)
}

func TestSearch_NotAuthenticated(t *testing.T) {
	c := NewClient()
	_, err := c.Search(context.Background(), "guitar", OrderPriority, 5)
	require.True(t, errors.Is(err, ErrNotAuthenticated))
}

func TestAuthenticate_ContextTimeout(t *testing.T) {
	handler := func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(100 * time.Millisecond)
		_, _ = w.Write([]byte(`{"token":"T1"}`))
	}
	c := newTestClient(t, handler)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	_, err := c.Authenticate(ctx, "key")
	require.Error(t, err)
}

func TestClient_DefaultsAndOptions(t *testing.T) {
	c := NewClient(
		WithUserAgent("ua/1.0"),
		WithBaseURL("http://x/"),
		WithPageDelay(5*time.Millisecond),
	)
	assert.Equal(t, "ua/1.0", c.ua)
	assert.Equal(t, "http://x", c.baseURL, "trailing slash should be trimmed")
	assert.Equal(t, 5*time.Millisecond, c.pageDelay)
	require.NotNil(t, c.http)
	assert.NotZero(t, c.http.Timeout, "default client must carry a timeout")
}
