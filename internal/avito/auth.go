package avito

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"
)

const defaultExpiresIn = 3600 * time.Second

// TokenManager implements TokenProvider using the client-credentials flow.
// It keeps the current token and its expiry; refresh is reactive, forced by
// the executor on a 401, or triggered lazily when no valid token is held.
// Thread-safe via mutex.
type TokenManager struct {
	clientID     string
	clientSecret string
	authURL      string
	httpTimeout  time.Duration

	mu      sync.Mutex
	token   string
	expiry  time.Time
	nowFunc func() time.Time // for testing
}

// TokenOption configures the TokenManager.
type TokenOption func(*TokenManager)

// WithInitialToken seeds the manager with a pre-issued token. The token is
// used until the first 401 forces a refresh.
func WithInitialToken(token string) TokenOption {
	return func(m *TokenManager) {
		m.token = token
		m.expiry = m.nowFunc().Add(defaultExpiresIn)
	}
}

// WithAuthTimeout overrides the timeout for the token exchange request.
func WithAuthTimeout(d time.Duration) TokenOption {
	return func(m *TokenManager) {
		m.httpTimeout = d
	}
}

// WithNowFunc overrides the time function for testing.
func WithNowFunc(f func() time.Time) TokenOption {
	return func(m *TokenManager) {
		m.nowFunc = f
	}
}

// NewTokenManager creates a token manager exchanging the given credentials
// at authURL.
func NewTokenManager(authURL, clientID, clientSecret string, opts ...TokenOption) *TokenManager {
	m := &TokenManager{
		clientID:     clientID,
		clientSecret: clientSecret,
		authURL:      authURL,
		httpTimeout:  10 * time.Second,
		nowFunc:      time.Now,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

type tokenRequest struct {
	ClientID     string `json:"client_id"`
	ClientSecret string `json:"client_secret"`
	GrantType    string `json:"grant_type"`
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	ExpiresIn   int    `json:"expires_in"`
}

// Token returns the current access token, performing a synchronous refresh
// when none is held or the held one has expired.
func (m *TokenManager) Token(ctx context.Context) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.token != "" && m.nowFunc().Before(m.expiry) {
		return m.token, nil
	}

	return m.refreshLocked(ctx)
}

// Refresh forces a token exchange regardless of the held token's state.
func (m *TokenManager) Refresh(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	_, err := m.refreshLocked(ctx)
	return err
}

// Invalidate drops the held token so the next Token call refreshes.
func (m *TokenManager) Invalidate() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.token = ""
	m.expiry = time.Time{}
}

func (m *TokenManager) refreshLocked(ctx context.Context) (string, error) {
	payload, err := json.Marshal(tokenRequest{
		ClientID:     m.clientID,
		ClientSecret: m.clientSecret,
		GrantType:    "client_credentials",
	})
	if err != nil {
		return "", fmt.Errorf("marshaling token request: %w", err)
	}

	req, err := http.NewRequestWithContext(
		ctx,
		http.MethodPost,
		m.authURL,
		bytes.NewReader(payload),
	)
	if err != nil {
		return "", fmt.Errorf("creating token request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")

	// A short-lived client, deliberately separate from the shared
	// authenticated transport: the exchange must not carry a Bearer header.
	client := &http.Client{Timeout: m.httpTimeout}

	resp, err := client.Do(req)
	if err != nil {
		return "", &AuthError{Body: err.Error()}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", &AuthError{Status: resp.StatusCode, Body: err.Error()}
	}

	if resp.StatusCode != http.StatusOK {
		return "", &AuthError{Status: resp.StatusCode, Body: string(body)}
	}

	var tokenResp tokenResponse
	if err := json.Unmarshal(body, &tokenResp); err != nil {
		return "", &AuthError{Status: resp.StatusCode, Body: "parsing token response: " + err.Error()}
	}

	expiresIn := defaultExpiresIn
	if tokenResp.ExpiresIn > 0 {
		expiresIn = time.Duration(tokenResp.ExpiresIn) * time.Second
	}

	m.token = tokenResp.AccessToken
	m.expiry = m.nowFunc().Add(expiresIn)

	return m.token, nil
}
