// Package apierr maps service errors to HTTP status codes and the wire error
// envelope. The envelope is a flat {"error": "message"} object; clients use
// the string directly as the user-facing message.
package apierr

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/pr-poehali-dev/site-clone-poehali/internal/services/admin"
	"github.com/pr-poehali-dev/site-clone-poehali/internal/services/auth"
)

// ErrorResponse is the wire shape of every endpoint failure
type ErrorResponse struct {
	Error string `json:"error"`
}

// httpError combines an HTTP status code with a message
type httpError struct {
	status  int
	message string
}

// Error implements error interface
func (e *httpError) Error() string {
	return e.message
}

// WriteError writes an error response to the response writer
func WriteError(w http.ResponseWriter, err error) {
	he := toHTTPError(err)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(he.status)
	_ = json.NewEncoder(w).Encode(ErrorResponse{Error: he.message})
}

// toHTTPError converts an error to an httpError
func toHTTPError(err error) *httpError {
	var he *httpError
	if errors.As(err, &he) {
		return he
	}

	switch {
	// Auth service errors
	case errors.Is(err, auth.ErrInvalidCredentials):
		return &httpError{http.StatusUnauthorized, "Invalid email or password"}
	case errors.Is(err, auth.ErrInvalidToken):
		return &httpError{http.StatusUnauthorized, "Invalid or expired token"}
	case errors.Is(err, auth.ErrUserExists):
		return &httpError{http.StatusConflict, "Email or username already exists"}
	case errors.Is(err, auth.ErrPasswordTooShort):
		return &httpError{http.StatusBadRequest, "Password must be at least 6 characters"}
	case errors.Is(err, auth.ErrTokenRequired):
		return &httpError{http.StatusBadRequest, "Token is required"}

	// Admin service errors
	case errors.Is(err, admin.ErrUserNotFound):
		return &httpError{http.StatusNotFound, "User not found"}
	case errors.Is(err, admin.ErrInfiniteEnergy):
		return &httpError{http.StatusBadRequest, "User has infinite energy"}

	default:
		return &httpError{http.StatusInternalServerError, "Internal server error"}
	}
}

// NewBadRequestError creates a 400 error with the given message
func NewBadRequestError(message string) error {
	return &httpError{http.StatusBadRequest, message}
}

// NewUnauthorizedError creates a 401 error
func NewUnauthorizedError(message string) error {
	return &httpError{http.StatusUnauthorized, message}
}

// NewForbiddenError creates a 403 error
func NewForbiddenError(message string) error {
	return &httpError{http.StatusForbidden, message}
}

// NewInternalError creates a 500 error
func NewInternalError() error {
	return &httpError{http.StatusInternalServerError, "Internal server error"}
}
