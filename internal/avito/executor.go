package avito

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/temirkanov/avito-watch/internal/metrics"
)

// retryAction is the executor's decision after one attempt.
type retryAction int

const (
	actionDone retryAction = iota
	actionFail
	actionRefresh
	actionRetryAfterDelay
)

// Sender abstracts the transport for the executor.
type Sender interface {
	Send(ctx context.Context, method, endpoint string, query url.Values, body any) (int, []byte, error)
}

// TokenRefresher is the slice of the token manager the executor drives on 401.
type TokenRefresher interface {
	Invalidate()
	Refresh(ctx context.Context) error
}

// Executor wraps a transport and token manager with bounded retry. Each
// logical request runs an iterative attempt loop: transport failures and
// 5xx responses sleep for a fixed delay and retry, a 401 refreshes the
// token and retries, any other 4xx fails immediately, and 2xx/3xx is
// terminal success. Attempts within one chain are strictly sequential.
type Executor struct {
	transport  Sender
	tokens     TokenRefresher
	maxRetries int
	retryDelay time.Duration
	log        *slog.Logger
	sleep      func(ctx context.Context, d time.Duration) error
}

// ExecutorOption configures the Executor.
type ExecutorOption func(*Executor)

// WithMaxRetries sets the attempt budget per logical request.
func WithMaxRetries(n int) ExecutorOption {
	return func(e *Executor) {
		e.maxRetries = n
	}
}

// WithRetryDelay sets the fixed backoff between retryable attempts.
func WithRetryDelay(d time.Duration) ExecutorOption {
	return func(e *Executor) {
		e.retryDelay = d
	}
}

// WithLogger sets a custom logger.
func WithLogger(l *slog.Logger) ExecutorOption {
	return func(e *Executor) {
		e.log = l
	}
}

// WithSleepFunc overrides the backoff sleep for testing.
func WithSleepFunc(f func(ctx context.Context, d time.Duration) error) ExecutorOption {
	return func(e *Executor) {
		e.sleep = f
	}
}

// NewExecutor creates an executor with a 3-attempt budget and 5s fixed delay.
func NewExecutor(transport Sender, tokens TokenRefresher, opts ...ExecutorOption) *Executor {
	e := &Executor{
		transport:  transport,
		tokens:     tokens,
		maxRetries: 3,
		retryDelay: 5 * time.Second,
		log:        slog.Default(),
		sleep:      sleepCtx,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Execute runs one logical request through the retry state machine and
// returns the raw JSON body on success.
func (e *Executor) Execute(
	ctx context.Context,
	method, endpoint string,
	query url.Values,
	body any,
) (json.RawMessage, error) {
	var lastErr error

	for attempt := 0; attempt < e.maxRetries; attempt++ {
		metrics.APIAttemptsTotal.Inc()

		status, respBody, sendErr := e.transport.Send(ctx, method, endpoint, query, body)
		action, attemptErr := classify(status, respBody, sendErr)

		switch action {
		case actionDone:
			return respBody, nil

		case actionFail:
			return nil, attemptErr

		case actionRefresh:
			metrics.APIRetriesTotal.WithLabelValues("unauthorized").Inc()
			e.log.Debug("401 response, refreshing token",
				"endpoint", endpoint,
				"attempt", attempt,
			)
			e.tokens.Invalidate()
			if err := e.tokens.Refresh(ctx); err != nil {
				return nil, err
			}
			metrics.TokenRefreshesTotal.Inc()
			lastErr = attemptErr

		case actionRetryAfterDelay:
			reason := "server_error"
			var te *TransportError
			if errors.As(attemptErr, &te) {
				reason = "transport"
			}
			metrics.APIRetriesTotal.WithLabelValues(reason).Inc()
			e.log.Warn("retryable failure, backing off",
				"endpoint", endpoint,
				"attempt", attempt,
				"delay", e.retryDelay,
				"error", attemptErr,
			)
			if err := e.sleep(ctx, e.retryDelay); err != nil {
				return nil, err
			}
			lastErr = attemptErr
		}
	}

	return nil, &RetryExhaustedError{
		Endpoint: endpoint,
		Attempts: e.maxRetries,
		Last:     lastErr,
	}
}

func classify(status int, body []byte, sendErr error) (retryAction, error) {
	if sendErr != nil {
		var te *TransportError
		if errors.As(sendErr, &te) {
			return actionRetryAfterDelay, sendErr
		}
		// Token fetch failures and request construction errors are not
		// transient; surface them to the caller unchanged.
		return actionFail, sendErr
	}

	switch {
	case status == http.StatusUnauthorized:
		return actionRefresh, &APIError{Status: status, Body: string(body)}
	case status >= 500:
		return actionRetryAfterDelay, &APIError{Status: status, Body: string(body)}
	case status >= 400:
		return actionFail, &APIError{Status: status, Body: string(body)}
	default:
		return actionDone, nil
	}
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(d):
		return nil
	}
}
