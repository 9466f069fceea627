package vaultsdk

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/aussiebroadwan/credvault/pkg/httpx"
)

// APIError is the JSON error body of every failed request. It is written by
// the server and returned by the client.
type APIError struct {
	StatusCode int `json:"-"`

	Message string `json:"error"`

	// Require2FA is set on a login that needs a second factor.
	Require2FA bool `json:"require2FA,omitempty"`

	// Details maps request fields to validation failures.
	Details map[string]string `json:"details,omitempty"`
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%d: %s", e.StatusCode, e.Message)
}

// WriteError writes e as the response.
func (e *APIError) WriteError(w http.ResponseWriter) {
	httpx.WriteJSON(w, e.StatusCode, e)
}

// NewAPIError returns an APIError with the given status and message.
func NewAPIError(status int, msg string) *APIError {
	return &APIError{StatusCode: status, Message: msg}
}

var (
	ErrUnauthorized = &APIError{StatusCode: http.StatusUnauthorized, Message: "unauthorized"}
	ErrBadRequest   = &APIError{StatusCode: http.StatusBadRequest, Message: "invalid request body"}
	ErrNotFound     = &APIError{StatusCode: http.StatusNotFound, Message: "not found"}
	ErrServerError  = &APIError{StatusCode: http.StatusInternalServerError, Message: "internal server error"}

	ErrInvalidCredentials = &APIError{StatusCode: http.StatusUnauthorized, Message: "Invalid credentials"}
	ErrTOTPRequired       = &APIError{StatusCode: http.StatusUnauthorized, Message: "2FA code required", Require2FA: true}
	ErrInvalidTOTPCode    = &APIError{StatusCode: http.StatusUnauthorized, Message: "Invalid 2FA code"}
)

// ValidationError wraps field failures from Validate in a 400.
func ValidationError(details map[string]string) *APIError {
	return &APIError{
		StatusCode: http.StatusBadRequest,
		Message:    "validation failed",
		Details:    details,
	}
}

// parseErrorResponse turns a non-2xx response body into an *APIError.
func parseErrorResponse(resp *http.Response, body []byte) error {
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}

	apiErr := &APIError{StatusCode: resp.StatusCode}
	if err := json.Unmarshal(body, apiErr); err != nil || apiErr.Message == "" {
		apiErr.Message = fmt.Sprintf("HTTP %d: %s", resp.StatusCode, http.StatusText(resp.StatusCode))
	}
	return apiErr
}
