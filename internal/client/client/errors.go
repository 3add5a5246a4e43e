package client

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/dmitrijs2005/storefront/internal/common"
)

var (
	ErrUnavailable  = errors.New("server unavailable")
	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("forbidden")
)

// APIError is a non-2xx response from the storefront backend. Message holds
// the text the server sent back (e.g. "only 2 left in stock"), if any.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("api error: %d %s", e.StatusCode, http.StatusText(e.StatusCode))
	}
	return fmt.Sprintf("api error: %d: %s", e.StatusCode, e.Message)
}

// Unwrap maps the status code onto the package sentinels so callers can use
// errors.Is without inspecting codes.
func (e *APIError) Unwrap() error {
	switch {
	case e.StatusCode == http.StatusUnauthorized:
		return ErrUnauthorized
	case e.StatusCode == http.StatusForbidden:
		return ErrForbidden
	case e.StatusCode == http.StatusNotFound:
		return common.ErrorNotFound
	case e.StatusCode >= 500:
		return ErrUnavailable
	default:
		return nil
	}
}

// ServerMessage returns the server-supplied message carried by err, or "".
func ServerMessage(err error) string {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Message
	}
	return ""
}

// IsTransient reports whether err is a network failure or a 5xx response.
func IsTransient(err error) bool {
	return errors.Is(err, ErrUnavailable)
}

// decodeErrorBody extracts a human message from an error body. The backend
// answers with plain text, a JSON string, or an object with "message"/"error".
func decodeErrorBody(body []byte) string {
	text := strings.TrimSpace(string(body))
	if text == "" {
		return ""
	}

	var s string
	if err := json.Unmarshal(body, &s); err == nil {
		return strings.TrimSpace(s)
	}

	var obj map[string]any
	if err := json.Unmarshal(body, &obj); err == nil {
		for _, key := range []string{"message", "error", "detail"} {
			if m, ok := obj[key].(string); ok && m != "" {
				return m
			}
		}
		return ""
	}

	return text
}
