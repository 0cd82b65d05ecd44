package httpclient

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	apperrors "github.com/utafrali/audiophile/pkg/errors"
)

// upstreamError covers the two error body shapes the content API returns:
// {"error":{"description":"...","type":"..."}} for query failures and
// {"error":"Unauthorized","message":"..."} for transport-level rejections.
type upstreamError struct {
	Error   json.RawMessage `json:"error"`
	Message string          `json:"message"`
}

type upstreamErrorDetail struct {
	Description string `json:"description"`
	Message     string `json:"message"`
	Type        string `json:"type"`
}

// ParseResponseError reads a non-2xx response and translates it into an
// AppError. The body is consumed and closed.
func ParseResponseError(resp *http.Response, serviceName string) error {
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return fmt.Errorf("%s returned status %d (failed to read body: %w)", serviceName, resp.StatusCode, err)
	}

	message := string(body)
	var parsed upstreamError
	if json.Unmarshal(body, &parsed) == nil && len(parsed.Error) > 0 && string(parsed.Error) != "null" {
		message = describe(parsed)
	}

	return mapStatus(resp.StatusCode, message, serviceName)
}

func describe(e upstreamError) string {
	var detail upstreamErrorDetail
	if json.Unmarshal(e.Error, &detail) == nil {
		switch {
		case detail.Description != "":
			return detail.Description
		case detail.Message != "":
			return detail.Message
		}
	}
	var label string
	if json.Unmarshal(e.Error, &label) == nil && e.Message != "" {
		return label + ": " + e.Message
	}
	if label != "" {
		return label
	}
	return e.Message
}

func mapStatus(status int, message, serviceName string) error {
	qualified := fmt.Sprintf("%s: %s", serviceName, message)

	switch {
	case status == http.StatusNotFound:
		return &apperrors.AppError{Code: "NOT_FOUND", Message: qualified, Status: status, Err: apperrors.ErrNotFound}
	case status == http.StatusBadRequest:
		return apperrors.InvalidInput(qualified)
	case status == http.StatusUnauthorized:
		return apperrors.Unauthorized(qualified)
	case status == http.StatusForbidden:
		return apperrors.Forbidden(qualified)
	case status == http.StatusTooManyRequests, status == http.StatusServiceUnavailable:
		return apperrors.ServiceUnavailable(qualified)
	case status >= 500:
		return fmt.Errorf("%s server error (%d): %s", serviceName, status, message)
	default:
		return &apperrors.AppError{Code: "UPSTREAM_ERROR", Message: qualified, Status: status}
	}
}

// IsClientError reports whether status is a 4xx.
func IsClientError(status int) bool {
	return status >= 400 && status < 500
}
