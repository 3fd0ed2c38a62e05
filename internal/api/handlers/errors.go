package handlers

import (
	"errors"

	"github.com/danielgtaylor/huma/v2"

	"github.com/temirkanov/avito-watch/internal/avito"
)

// mapMarketError translates client-layer errors into HTTP errors for the
// frontend: upstream 4xx detail becomes 502, exhausted retries 504.
func mapMarketError(err error) error {
	var (
		apiErr  *avito.APIError
		authErr *avito.AuthError
		retries *avito.RetryExhaustedError
	)

	switch {
	case errors.As(err, &retries):
		return huma.Error504GatewayTimeout("marketplace API unreachable: " + err.Error())
	case errors.As(err, &apiErr), errors.As(err, &authErr):
		return huma.Error502BadGateway("marketplace API error: " + err.Error())
	default:
		return huma.Error500InternalServerError("internal error: " + err.Error())
	}
}
