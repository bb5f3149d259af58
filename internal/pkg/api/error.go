package api

import (
	"context"
	"fmt"
	"strings"

	"github.com/mappingstudio/mapping-studio/internal/pkg/utils/errors"
)

// ErrSuperseded marks a response that arrived after a newer call of the
// same kind was issued. It is a benign outcome, not a failure, see
// IsCancelled.
var ErrSuperseded = errors.New("request superseded by a newer one") // nolint: gochecknoglobals

// APIError is a non-2xx, non-304 HTTP response.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	msg := e.Message
	if msg == "" {
		msg = "request failed"
	}
	return fmt.Sprintf("%s, http status %d", msg, e.StatusCode)
}

func newAPIError(statusCode int, body []byte) *APIError {
	message := strings.TrimSpace(string(body))
	if len(message) > 200 {
		message = message[:200] + "…"
	}
	return &APIError{StatusCode: statusCode, Message: message}
}

// IsCancelled reports whether the error is a benign cancellation:
// either the context was cancelled or the call was superseded by a newer
// one. Such errors must not surface as user-visible failures.
func IsCancelled(err error) bool {
	return errors.Is(err, ErrSuperseded) || errors.Is(err, context.Canceled)
}
