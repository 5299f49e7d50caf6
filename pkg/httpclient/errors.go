package httpclient

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	apperrors "github.com/AmanPardeshi01/Revcart-Microservice/pkg/errors"
)

// downstreamEnvelope matches the {success, message, data} envelope the Revcart
// backend services return on both success and failure.
type downstreamEnvelope struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// ParseResponseError consumes the body of a non-2xx response from the named
// downstream service and translates it into an AppError, preferring the
// server-supplied message over a generic one. The body is fully read and closed.
func ParseResponseError(resp *http.Response, serviceName string) error {
	defer func() { _ = resp.Body.Close() }()

	bodyBytes, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20)) // 1 MB cap
	if err != nil {
		return fmt.Errorf("%s returned status %d (failed to read body: %w)", serviceName, resp.StatusCode, err)
	}

	var envelope downstreamEnvelope
	if json.Unmarshal(bodyBytes, &envelope) == nil && envelope.Message != "" {
		return mapDownstreamError(resp.StatusCode, envelope.Message, serviceName)
	}

	return fmt.Errorf("%s returned status %d: %s", serviceName, resp.StatusCode, string(bodyBytes))
}

// mapDownstreamError keeps the downstream status semantics when wrapping the
// message into an AppError.
func mapDownstreamError(status int, message, serviceName string) error {
	qualified := fmt.Sprintf("%s: %s", serviceName, message)

	switch {
	case status == http.StatusNotFound:
		return apperrors.NotFound(serviceName, message)
	case status == http.StatusBadRequest:
		return apperrors.InvalidInput(qualified)
	case status == http.StatusUnauthorized:
		return apperrors.Unauthorized(qualified)
	case status == http.StatusForbidden:
		return apperrors.Forbidden(qualified)
	case status == http.StatusConflict:
		return apperrors.Conflict(qualified)
	case status == http.StatusGone:
		return apperrors.Gone(qualified)
	case status == http.StatusUnprocessableEntity:
		return apperrors.PaymentFailed(qualified)
	case status == http.StatusServiceUnavailable:
		return apperrors.ServiceUnavailable(qualified)
	case status >= 500:
		return fmt.Errorf("%s server error (%d): %s", serviceName, status, message)
	default:
		return &apperrors.AppError{
			Code:    "DOWNSTREAM_ERROR",
			Message: qualified,
			Status:  status,
		}
	}
}
