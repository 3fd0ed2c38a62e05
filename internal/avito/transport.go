package avito

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sync"
	"time"
)

// Transport owns the long-lived pooled HTTP client for authenticated API
// calls. It attaches the Bearer token and JSON headers to every request and
// enforces a fixed per-request timeout. The underlying client is created
// lazily and re-created after Close.
type Transport struct {
	baseURL string
	tokens  TokenProvider
	timeout time.Duration

	mu     sync.Mutex
	client *http.Client
}

// NewTransport creates a transport for baseURL with the given per-request
// timeout. Tokens are re-read from the provider on every call, so a refresh
// between attempts is picked up automatically.
func NewTransport(baseURL string, tokens TokenProvider, timeout time.Duration) *Transport {
	return &Transport{
		baseURL: baseURL,
		tokens:  tokens,
		timeout: timeout,
	}
}

// Send performs one HTTP request and returns the status code and body.
// Connection-level failures are returned as *TransportError; a failed token
// fetch surfaces as *AuthError. Send never interprets the status code.
func (t *Transport) Send(
	ctx context.Context,
	method, endpoint string,
	query url.Values,
	body any,
) (int, []byte, error) {
	token, err := t.tokens.Token(ctx)
	if err != nil {
		return 0, nil, err
	}

	fullURL := t.baseURL + endpoint
	if len(query) > 0 {
		fullURL += "?" + query.Encode()
	}

	var bodyReader io.Reader = http.NoBody
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return 0, nil, fmt.Errorf("marshaling request body: %w", err)
		}
		bodyReader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, fullURL, bodyReader)
	if err != nil {
		return 0, nil, fmt.Errorf("creating request: %w", err)
	}

	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := t.httpClient().Do(req)
	if err != nil {
		return 0, nil, &TransportError{Op: method + " " + endpoint, Err: err}
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, nil, &TransportError{Op: "reading response from " + endpoint, Err: err}
	}

	return resp.StatusCode, respBody, nil
}

func (t *Transport) httpClient() *http.Client {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.client == nil {
		t.client = &http.Client{Timeout: t.timeout}
	}
	return t.client
}

// Close releases idle pooled connections. Safe to call when the client was
// never opened; a later Send re-creates it.
func (t *Transport) Close() {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.client != nil {
		t.client.CloseIdleConnections()
		t.client = nil
	}
}
