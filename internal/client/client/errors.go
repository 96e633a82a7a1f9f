package client

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
)

var (
	ErrUnavailable      = errors.New("server unavailable")
	ErrUnauthorized     = errors.New("unauthorized")
	ErrForbidden        = errors.New("forbidden")
	ErrConflict         = errors.New("conflict")
	ErrUnsupportedMedia = errors.New("unsupported media type")
)

// APIError is a non-2xx response from the backend.
type APIError struct {
	Status     int
	StatusText string
	Message    string
}

func (e *APIError) Error() string {
	return e.Message
}

func (e *APIError) Is(target error) bool {
	switch target {
	case ErrUnauthorized:
		return e.Status == http.StatusUnauthorized
	case ErrForbidden:
		return e.Status == http.StatusForbidden
	case ErrConflict:
		return e.Status == http.StatusConflict
	case ErrUnsupportedMedia:
		return e.Status == http.StatusUnsupportedMediaType
	}
	return false
}

// StatusCode returns the HTTP status carried by err, or 0 when err is not an
// *APIError (transport failures, validation errors).
func StatusCode(err error) int {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Status
	}
	return 0
}

func newAPIError(resp *http.Response, body any) *APIError {
	text := statusText(resp)
	return &APIError{
		Status:     resp.StatusCode,
		StatusText: text,
		Message:    errorMessage(body, text),
	}
}

// statusText is the reason phrase of resp, e.g. "Not Found".
func statusText(resp *http.Response) string {
	text := strings.TrimSpace(strings.TrimPrefix(resp.Status, strconv.Itoa(resp.StatusCode)))
	if text == "" {
		text = http.StatusText(resp.StatusCode)
	}
	return text
}

func errorMessage(body any, fallback string) string {
	switch b := body.(type) {
	case nil:
		return fallback
	case map[string]any:
		if detail, ok := b["detail"]; ok && truthy(detail) {
			if s, ok := detail.(string); ok {
				return s
			}
			return jsonText(detail)
		}
		return jsonText(b)
	case []any:
		return jsonText(b)
	case string:
		if b == "" {
			return fallback
		}
		return b
	default:
		if !truthy(b) {
			return fallback
		}
		return jsonText(b)
	}
}

func truthy(v any) bool {
	switch x := v.(type) {
	case nil:
		return false
	case string:
		return x != ""
	case bool:
		return x
	case float64:
		return x != 0
	default:
		return true
	}
}

func jsonText(v any) string {
	b, err := json.Marshal(v)
	if err != nil {
		return fmt.Sprint(v)
	}
	return string(b)
}
