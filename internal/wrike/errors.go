package wrike

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
)

var (
	// ErrInvalidArgument marks input rejected before any network call.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrInvalidIdentifier marks an ID that is neither canonical, numeric nor a permalink.
	ErrInvalidIdentifier = errors.New("invalid identifier")
)

func invalidArgument(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidArgument, fmt.Sprintf(format, args...))
}

// APIError is a non-2xx response from the Wrike API.
type APIError struct {
	StatusCode  int    `json:"-"`
	Code        string `json:"error"`
	Description string `json:"errorDescription"`
	Body        string `json:"-"`
}

func (e *APIError) Error() string {
	switch {
	case e.Code != "" && e.Description != "":
		return fmt.Sprintf("API error (status %d): %s - %s", e.StatusCode, e.Code, e.Description)
	case e.Code != "":
		return fmt.Sprintf("API error (status %d): %s", e.StatusCode, e.Code)
	default:
		return fmt.Sprintf("API error (status %d): %s", e.StatusCode, e.Body)
	}
}

// AuthError is returned for 401 responses.
type AuthError struct {
	APIError
}

func (e *AuthError) Error() string {
	return fmt.Sprintf("authentication failed (status %d): %s; the access token is invalid or expired, "+
		"generate a new permanent token in Wrike (Apps & Integrations > API) and update WRIKE_ACCESS_TOKEN",
		e.StatusCode, e.describe())
}

func (e *AuthError) describe() string {
	if e.Description != "" {
		return e.Description
	}
	if e.Code != "" {
		return e.Code
	}
	return http.StatusText(e.StatusCode)
}

// TransportError means the request was sent but no response was received.
type TransportError struct {
	Method string
	Path   string
	Err    error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("request %s %s failed: %v", e.Method, e.Path, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// newAPIError maps a failed response to AuthError or APIError.
func newAPIError(status int, body []byte) error {
	apiErr := APIError{StatusCode: status, Body: string(body)}
	// Bodies that are not JSON keep only the raw text.
	_ = json.Unmarshal(body, &apiErr)

	if status == http.StatusUnauthorized {
		return &AuthError{APIError: apiErr}
	}
	return &apiErr
}

// IsAuthError reports whether err was caused by a rejected access token.
func IsAuthError(err error) bool {
	var authErr *AuthError
	return errors.As(err, &authErr)
}
