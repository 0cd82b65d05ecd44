package httpclient

import (
	"errors"
	"io"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/utafrali/audiophile/pkg/errors"
)

func makeResponse(statusCode int, body string) *http.Response {
	return &http.Response{
		StatusCode: statusCode,
		Body:       io.NopCloser(strings.NewReader(body)),
	}
}

func TestParseResponseError_QueryErrorDescription(t *testing.T) {
	resp := makeResponse(http.StatusBadRequest,
		`{"error":{"description":"expected ']' following array body","type":"queryParseError"}}`)

	err := ParseResponseError(resp, "content-api")

	var appErr *apperrors.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, http.StatusBadRequest, appErr.Status)
	assert.Equal(t, "content-api: expected ']' following array body", appErr.Message)
}

func TestParseResponseError_StringErrorWithMessage(t *testing.T) {
	resp := makeResponse(http.StatusUnauthorized,
		`{"error":"Unauthorized","message":"Session does not match project host","statusCode":401}`)

	err := ParseResponseError(resp, "content-api")

	assert.ErrorIs(t, err, apperrors.ErrUnauthorized)
	assert.Contains(t, err.Error(), "Unauthorized: Session does not match project host")
}

func TestParseResponseError_StatusMapping(t *testing.T) {
	tests := []struct {
		status int
		target error
	}{
		{http.StatusNotFound, apperrors.ErrNotFound},
		{http.StatusForbidden, apperrors.ErrForbidden},
		{http.StatusTooManyRequests, apperrors.ErrServiceUnavail},
		{http.StatusServiceUnavailable, apperrors.ErrServiceUnavail},
	}
	for _, tt := range tests {
		err := ParseResponseError(makeResponse(tt.status, `{"error":{"description":"x"}}`), "content-api")
		assert.ErrorIs(t, err, tt.target, "status %d", tt.status)
	}
}

func TestParseResponseError_ServerErrorIsPlain(t *testing.T) {
	err := ParseResponseError(makeResponse(http.StatusBadGateway, `<html>bad gateway</html>`), "content-api")

	var appErr *apperrors.AppError
	assert.False(t, errors.As(err, &appErr))
	assert.Contains(t, err.Error(), "502")
	assert.Contains(t, err.Error(), "<html>bad gateway</html>")
}

func TestParseResponseError_UnexpectedStatus(t *testing.T) {
	err := ParseResponseError(makeResponse(http.StatusTeapot, ``), "content-api")

	var appErr *apperrors.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, "UPSTREAM_ERROR", appErr.Code)
	assert.Equal(t, http.StatusTeapot, appErr.Status)
}

func TestIsClientError(t *testing.T) {
	assert.True(t, IsClientError(400))
	assert.True(t, IsClientError(499))
	assert.False(t, IsClientError(500))
	assert.False(t, IsClientError(200))
}
