package avito_test

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/temirkanov/avito-watch/internal/avito"
)

// tokenJSON returns a valid token exchange response as JSON bytes.
func tokenJSON(token string) []byte {
	return []byte(fmt.Sprintf(
		`{"access_token":%q,"expires_in":3600,"token_type":"Bearer"}`,
		token,
	))
}

func TestTokenManager_Token(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		handler    http.HandlerFunc
		wantErr    bool
		wantToken  string
		errContain string
	}{
		{
			name: "successful token fetch",
			handler: func(w http.ResponseWriter, _ *http.Request) {
				w.Header().Set("Content-Type", "application/json")
				_, _ = w.Write(tokenJSON("test-token-123"))
			},
			wantToken: "test-token-123",
		},
		{
			name: "server rejects credentials",
			handler: func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(http.StatusForbidden)
				_, _ = w.Write([]byte(`{"error":"invalid_client"}`))
			},
			wantErr:    true,
			errContain: "status 403",
		},
		{
			name: "server returns 500",
			handler: func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(http.StatusInternalServerError)
			},
			wantErr:    true,
			errContain: "status 500",
		},
		{
			name: "server returns invalid JSON",
			handler: func(w http.ResponseWriter, _ *http.Request) {
				w.Header().Set("Content-Type", "application/json")
				_, _ = w.Write([]byte("not json"))
			},
			wantErr:    true,
			errContain: "parsing token response",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			srv := httptest.NewServer(tt.handler)
			defer srv.Close()

			tm := avito.NewTokenManager(srv.URL, "client-id", "client-secret")

			token, err := tm.Token(context.Background())

			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errContain)

				var authErr *avito.AuthError
				assert.ErrorAs(t, err, &authErr)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.wantToken, token)
		})
	}
}

func TestTokenManager_TokenCaching(t *testing.T) {
	t.Parallel()

	var callCount atomic.Int32

	srv := httptest.NewServer(
		http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			callCount.Add(1)
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write(tokenJSON("cached-token"))
		}),
	)
	defer srv.Close()

	tm := avito.NewTokenManager(srv.URL, "client-id", "client-secret")

	// First call should hit the server.
	token1, err := tm.Token(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "cached-token", token1)
	assert.Equal(t, int32(1), callCount.Load())

	// Second call should return the cached token (no HTTP call).
	token2, err := tm.Token(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "cached-token", token2)
	assert.Equal(t, int32(1), callCount.Load())
}

func TestTokenManager_RefreshOnExpiry(t *testing.T) {
	t.Parallel()

	var callCount atomic.Int32
	now := time.Now()

	srv := httptest.NewServer(
		http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			callCount.Add(1)
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write(tokenJSON("refreshed-token"))
		}),
	)
	defer srv.Close()

	currentTime := now
	var mu sync.Mutex

	tm := avito.NewTokenManager(
		srv.URL,
		"client-id",
		"client-secret",
		avito.WithNowFunc(func() time.Time {
			mu.Lock()
			defer mu.Unlock()
			return currentTime
		}),
	)

	// First call fetches a token with expires_in=3600.
	_, err := tm.Token(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int32(1), callCount.Load())

	// Advance time past expiry.
	mu.Lock()
	currentTime = now.Add(3601 * time.Second)
	mu.Unlock()

	// This call should refresh.
	_, err = tm.Token(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int32(2), callCount.Load())
}

func TestTokenManager_InitialToken(t *testing.T) {
	t.Parallel()

	var callCount atomic.Int32

	srv := httptest.NewServer(
		http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			callCount.Add(1)
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write(tokenJSON("exchanged-token"))
		}),
	)
	defer srv.Close()

	tm := avito.NewTokenManager(
		srv.URL,
		"client-id",
		"client-secret",
		avito.WithInitialToken("seeded-token"),
	)

	// The seeded token is used without a token exchange.
	token, err := tm.Token(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "seeded-token", token)
	assert.Equal(t, int32(0), callCount.Load())

	// Invalidate drops the seed; the next call exchanges credentials.
	tm.Invalidate()

	token, err = tm.Token(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "exchanged-token", token)
	assert.Equal(t, int32(1), callCount.Load())
}

func TestTokenManager_ForcedRefresh(t *testing.T) {
	t.Parallel()

	var callCount atomic.Int32

	srv := httptest.NewServer(
		http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			n := callCount.Add(1)
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write(tokenJSON(fmt.Sprintf("token-%d", n)))
		}),
	)
	defer srv.Close()

	tm := avito.NewTokenManager(srv.URL, "client-id", "client-secret")

	token, err := tm.Token(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "token-1", token)

	// Refresh ignores the still-valid held token.
	require.NoError(t, tm.Refresh(context.Background()))

	token, err = tm.Token(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "token-2", token)
	assert.Equal(t, int32(2), callCount.Load())
}

func TestTokenManager_ConcurrentAccess(t *testing.T) {
	t.Parallel()

	var callCount atomic.Int32

	srv := httptest.NewServer(
		http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			callCount.Add(1)
			time.Sleep(10 * time.Millisecond)
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write(tokenJSON("concurrent-token"))
		}),
	)
	defer srv.Close()

	tm := avito.NewTokenManager(srv.URL, "client-id", "client-secret")

	const goroutines = 10

	var wg sync.WaitGroup
	wg.Add(goroutines)

	for range goroutines {
		go func() {
			defer wg.Done()
			token, err := tm.Token(context.Background())
			assert.NoError(t, err)
			assert.Equal(t, "concurrent-token", token)
		}()
	}

	wg.Wait()

	// With mutex, only a few calls should happen at most.
	assert.Less(t, callCount.Load(), int32(goroutines))
}

func TestTokenManager_RequestFormat(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(
		http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodPost, r.Method)
			assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
			assert.Empty(t, r.Header.Get("Authorization"))

			var body map[string]string
			require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
			assert.Equal(t, "my-client-id", body["client_id"])
			assert.Equal(t, "my-client-secret", body["client_secret"])
			assert.Equal(t, "client_credentials", body["grant_type"])

			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write(tokenJSON("format-test-token"))
		}),
	)
	defer srv.Close()

	tm := avito.NewTokenManager(srv.URL, "my-client-id", "my-client-secret")

	token, err := tm.Token(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "format-test-token", token)
}
