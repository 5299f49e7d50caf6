package httpclient

import (
	"errors"
	"io"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/AmanPardeshi01/Revcart-Microservice/pkg/errors"
)

func makeResponse(status int, body string) *http.Response {
	return &http.Response{
		StatusCode: status,
		Body:       io.NopCloser(strings.NewReader(body)),
	}
}

func TestParseResponseError_UsesDownstreamMessage(t *testing.T) {
	resp := makeResponse(http.StatusBadRequest,
		`{"success":false,"message":"address does not belong to user"}`)

	err := ParseResponseError(resp, "order-service")
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperrors.ErrInvalidInput))
	assert.Contains(t, err.Error(), "order-service")
	assert.Contains(t, err.Error(), "address does not belong to user")
}

func TestParseResponseError_StatusMapping(t *testing.T) {
	cases := []struct {
		name     string
		status   int
		sentinel error
	}{
		{"not found", http.StatusNotFound, apperrors.ErrNotFound},
		{"unauthorized", http.StatusUnauthorized, apperrors.ErrUnauthorized},
		{"forbidden", http.StatusForbidden, apperrors.ErrForbidden},
		{"conflict", http.StatusConflict, apperrors.ErrConflict},
		{"gone", http.StatusGone, apperrors.ErrGone},
		{"payment failed", http.StatusUnprocessableEntity, apperrors.ErrPaymentFailed},
		{"unavailable", http.StatusServiceUnavailable, apperrors.ErrServiceUnavail},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			resp := makeResponse(tc.status, `{"success":false,"message":"nope"}`)
			err := ParseResponseError(resp, "payment-service")
			require.Error(t, err)
			assert.True(t, errors.Is(err, tc.sentinel))
		})
	}
}

func TestParseResponseError_ServerErrorIsNotAppError(t *testing.T) {
	resp := makeResponse(http.StatusInternalServerError,
		`{"success":false,"message":"database unavailable"}`)

	err := ParseResponseError(resp, "cart-service")
	require.Error(t, err)

	var appErr *apperrors.AppError
	assert.False(t, errors.As(err, &appErr))
	assert.Contains(t, err.Error(), "cart-service")
	assert.Contains(t, err.Error(), "database unavailable")
}

func TestParseResponseError_NonEnvelopeBody(t *testing.T) {
	resp := makeResponse(http.StatusBadGateway, "upstream timed out")

	err := ParseResponseError(resp, "profile-service")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "profile-service")
	assert.Contains(t, err.Error(), "502")
	assert.Contains(t, err.Error(), "upstream timed out")
}

func TestParseResponseError_UnmappedStatus(t *testing.T) {
	resp := makeResponse(http.StatusTeapot, `{"success":false,"message":"odd"}`)

	err := ParseResponseError(resp, "order-service")
	require.Error(t, err)

	var appErr *apperrors.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, "DOWNSTREAM_ERROR", appErr.Code)
	assert.Equal(t, http.StatusTeapot, appErr.Status)
}
