// ABOUTME: Normalized result of every gateway call
// ABOUTME: Exactly one of payload or error text is populated

package gateway

import (
	"encoding/json"
	"errors"
	"net/http"
)

// Messages used when the backend gives nothing better
const (
	MsgRequestFailed   = "Request failed"
	MsgNetworkError    = "Network error occurred"
	MsgInvalidResponse = "Invalid response from server"
)

// Envelope is the outcome of one request. Payload is set only for 2xx responses;
// Err is set otherwise. Status is 0 when no response was received.
type Envelope struct {
	Payload json.RawMessage
	Err     string
	Status  int
}

// OK reports whether the call succeeded
func (e Envelope) OK() bool {
	return e.Err == ""
}

// AsError returns nil on success, otherwise an *Error carrying status and message
func (e Envelope) AsError() error {
	if e.OK() {
		return nil
	}
	return &Error{Status: e.Status, Message: e.Err}
}

func failure(status int, msg string) Envelope {
	if msg == "" {
		msg = MsgRequestFailed
	}
	return Envelope{Err: msg, Status: status}
}

func success(status int, payload []byte) Envelope {
	if len(payload) == 0 {
		payload = []byte("{}")
	}
	return Envelope{Payload: payload, Status: status}
}

// Error is a failed gateway call
type Error struct {
	Status  int
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

// Unauthorized reports whether the backend rejected the credentials
func (e *Error) Unauthorized() bool {
	return isAuthFailure(e.Status)
}

// IsUnauthorized reports whether err is a 401/403 gateway error
func IsUnauthorized(err error) bool {
	var gerr *Error
	return errors.As(err, &gerr) && gerr.Unauthorized()
}

// IsNetwork reports whether err is a gateway error where no response was received
func IsNetwork(err error) bool {
	var gerr *Error
	return errors.As(err, &gerr) && gerr.Status == 0
}

func isAuthFailure(status int) bool {
	return status == http.StatusUnauthorized || status == http.StatusForbidden
}

func isSuccess(status int) bool {
	return status >= 200 && status < 300
}
