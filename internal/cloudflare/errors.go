package cloudflare

import (
	"errors"
	"fmt"
	"strings"
)

// APIMessage is one entry of a v4 envelope's errors or messages list.
type APIMessage struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// APIError is a Cloudflare response whose envelope reported success=false.
type APIError struct {
	Status int
	Errors []APIMessage
}

// Error returns the comma-joined list of the API's reported error messages.
// When the API reported none, it falls back to the HTTP status.
func (e *APIError) Error() string {
	if len(e.Errors) == 0 {
		return fmt.Sprintf("cloudflare API request failed with status %d", e.Status)
	}

	msgs := make([]string, len(e.Errors))
	for i, m := range e.Errors {
		msgs[i] = m.Message
	}
	return strings.Join(msgs, ", ")
}

// IsAlreadyExists reports whether err is a Cloudflare API error for a
// resource that already exists. The API exposes no stable error code for
// duplicate identity providers, so this is a message-text match; keeping the
// heuristic here means exactly one place breaks if the wording changes.
func IsAlreadyExists(err error) bool {
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		return false
	}

	for _, m := range apiErr.Errors {
		if strings.Contains(strings.ToLower(m.Message), "already exists") {
			return true
		}
	}
	return false
}
