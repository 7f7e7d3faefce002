package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
)

// Kind classifies a failed request.
type Kind int

const (
	// KindNetwork means no response was received.
	KindNetwork Kind = iota
	// KindAuth is a 401 or 403.
	KindAuth
	// KindServer is any 5xx.
	KindServer
	// KindValidation is any other 4xx.
	KindValidation
)

func (k Kind) String() string {
	switch k {
	case KindNetwork:
		return "network"
	case KindAuth:
		return "auth"
	case KindServer:
		return "server"
	case KindValidation:
		return "validation"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Error is returned by every Client method that can fail.
type Error struct {
	Kind    Kind
	Status  int
	Message string
	// Body is the decoded error payload, empty when the body was absent or
	// not a JSON object.
	Body map[string]any
	Err  error
}

func (e *Error) Error() string {
	if e.Status > 0 {
		return fmt.Sprintf("%s error (%d): %s", e.Kind, e.Status, e.Message)
	}
	return fmt.Sprintf("%s error: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error { return e.Err }

// IsKind reports whether err is an *Error of the given kind.
func IsKind(err error, kind Kind) bool {
	var apiErr *Error
	return errors.As(err, &apiErr) && apiErr.Kind == kind
}

func classify(status int) Kind {
	switch {
	case status == http.StatusUnauthorized || status == http.StatusForbidden:
		return KindAuth
	case status >= 500:
		return KindServer
	default:
		return KindValidation
	}
}

// newStatusError builds an Error from a non-2xx response body. A malformed
// or absent body decodes to an empty object.
func newStatusError(status int, body []byte) *Error {
	payload := map[string]any{}
	if len(body) > 0 {
		if err := json.Unmarshal(body, &payload); err != nil || payload == nil {
			payload = map[string]any{}
		}
	}
	return &Error{
		Kind:    classify(status),
		Status:  status,
		Message: messageFrom(status, payload),
		Body:    payload,
	}
}

func messageFrom(status int, payload map[string]any) string {
	for _, key := range []string{"error", "detail"} {
		if s, ok := payload[key].(string); ok && s != "" {
			return s
		}
	}
	return fmt.Sprintf("request failed with status %d", status)
}

func newNetworkError(err error) *Error {
	return &Error{Kind: KindNetwork, Message: err.Error(), Err: err}
}
