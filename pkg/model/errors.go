package model

import (
	"encoding/json"
	"fmt"
	"strings"
)

// APIError is a normalized backend error: one message string plus the
// HTTP status code and the raw response payload. Status 0 means the
// request never reached the backend (network or configuration error).
type APIError struct {
	Status  int
	Message string
	Payload []byte
}

func (e *APIError) Error() string {
	if e.Status > 0 {
		return fmt.Sprintf("api: %s (HTTP %d)", e.Message, e.Status)
	}
	return "api: " + e.Message
}

// NewAPIError builds an APIError from a non-2xx response body. The
// backend answers with a JSON object carrying a `message` or `error`
// field, or with a plain-text body; all three collapse into one
// message, falling back to the HTTP status.
func NewAPIError(status int, body []byte) *APIError {
	e := &APIError{Status: status, Payload: body}

	var envelope struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if err := json.Unmarshal(body, &envelope); err == nil {
		if strings.TrimSpace(envelope.Message) != "" {
			e.Message = envelope.Message
			return e
		}
		if strings.TrimSpace(envelope.Error) != "" {
			e.Message = envelope.Error
			return e
		}
	}

	if text := strings.TrimSpace(string(body)); text != "" && !strings.HasPrefix(text, "{") {
		e.Message = text
		return e
	}

	e.Message = fmt.Sprintf("HTTP %d", status)
	return e
}
