package avito_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/temirkanov/avito-watch/internal/avito"
)

// staticTokens serves a fixed token without any exchange.
type staticTokens struct {
	token string
	err   error
}

func (s *staticTokens) Token(_ context.Context) (string, error) {
	return s.token, s.err
}

func TestTransport_Send(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(
		http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "Bearer tok-1", r.Header.Get("Authorization"))
			assert.Equal(t, "application/json", r.Header.Get("Accept"))
			assert.Equal(t, "/items", r.URL.Path)
			assert.Equal(t, "phone", r.URL.Query().Get("query"))

			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"items":[],"total":0}`))
		}),
	)
	defer srv.Close()

	tr := avito.NewTransport(srv.URL, &staticTokens{token: "tok-1"}, 5*time.Second)

	query := url.Values{"query": {"phone"}}
	status, body, err := tr.Send(context.Background(), http.MethodGet, "/items", query, nil)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, status)
	assert.JSONEq(t, `{"items":[],"total":0}`, string(body))
}

func TestTransport_SendJSONBody(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(
		http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

			var payload map[string]string
			require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
			assert.Equal(t, "value", payload["key"])

			w.WriteHeader(http.StatusCreated)
		}),
	)
	defer srv.Close()

	tr := avito.NewTransport(srv.URL, &staticTokens{token: "tok-1"}, 5*time.Second)

	status, _, err := tr.Send(
		context.Background(),
		http.MethodPost,
		"/items",
		nil,
		map[string]string{"key": "value"},
	)
	require.NoError(t, err)
	assert.Equal(t, http.StatusCreated, status)
}

func TestTransport_StatusPassthrough(t *testing.T) {
	t.Parallel()

	// Send reports the status code without interpreting it.
	srv := httptest.NewServer(
		http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusBadGateway)
			_, _ = w.Write([]byte("upstream down"))
		}),
	)
	defer srv.Close()

	tr := avito.NewTransport(srv.URL, &staticTokens{token: "tok-1"}, 5*time.Second)

	status, body, err := tr.Send(context.Background(), http.MethodGet, "/items", nil, nil)
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadGateway, status)
	assert.Equal(t, "upstream down", string(body))
}

func TestTransport_ConnectionFailure(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	srv.Close() // nothing listening anymore

	tr := avito.NewTransport(srv.URL, &staticTokens{token: "tok-1"}, time.Second)

	_, _, err := tr.Send(context.Background(), http.MethodGet, "/items", nil, nil)
	require.Error(t, err)

	var te *avito.TransportError
	require.ErrorAs(t, err, &te)
	assert.Contains(t, te.Op, "/items")
}

func TestTransport_TokenFailurePropagates(t *testing.T) {
	t.Parallel()

	tokenErr := &avito.AuthError{Status: 403, Body: "invalid_client"}
	tr := avito.NewTransport("http://unused.invalid", &staticTokens{err: tokenErr}, time.Second)

	_, _, err := tr.Send(context.Background(), http.MethodGet, "/items", nil, nil)
	require.Error(t, err)

	var authErr *avito.AuthError
	require.ErrorAs(t, err, &authErr)

	var te *avito.TransportError
	assert.False(t, errors.As(err, &te))
}

func TestTransport_CloseAndReuse(t *testing.T) {
	t.Parallel()

	var hits int
	srv := httptest.NewServer(
		http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			hits++
			w.WriteHeader(http.StatusOK)
		}),
	)
	defer srv.Close()

	tr := avito.NewTransport(srv.URL, &staticTokens{token: "tok-1"}, time.Second)

	// Close before first use is a no-op.
	tr.Close()

	_, _, err := tr.Send(context.Background(), http.MethodGet, "/items", nil, nil)
	require.NoError(t, err)

	// Close releases the client; a later Send works again.
	tr.Close()

	_, _, err = tr.Send(context.Background(), http.MethodGet, "/items", nil, nil)
	require.NoError(t, err)
	assert.Equal(t, 2, hits)
}
