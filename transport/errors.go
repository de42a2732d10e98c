package transport

import (
	"encoding/json"
	"fmt"
	"net/http"
)

// unauthorizedMessage is what the service answers when the token pair is
// rejected.
const unauthorizedMessage = "Player not authorized."

// StatusError is returned for any non-2xx response.
type StatusError struct {
	StatusCode int
	// Message is error.message from the response body, if present.
	Message string
	Body    string
}

func (e *StatusError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("transport: status %d: %s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("transport: status %d: %s", e.StatusCode, e.Body)
}

// Unauthorized reports whether the service rejected the credentials.
func (e *StatusError) Unauthorized() bool {
	return e.StatusCode == http.StatusUnauthorized ||
		e.StatusCode == http.StatusForbidden ||
		e.Message == unauthorizedMessage
}

// ClientError reports a 4xx answer.
func (e *StatusError) ClientError() bool {
	return e.StatusCode >= 400 && e.StatusCode < 500
}

func newStatusError(statusCode int, body []byte) *StatusError {
	var envelope struct {
		Error struct {
			Message string `json:"message"`
		} `json:"error"`
	}
	_ = json.Unmarshal(body, &envelope)

	return &StatusError{
		StatusCode: statusCode,
		Message:    envelope.Error.Message,
		Body:       string(body),
	}
}
