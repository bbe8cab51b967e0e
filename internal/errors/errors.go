package errors

import (
	"errors"
	"net/http"
)

var (
	// ErrUserAlreadyExists is returned when the email is already registered.
	ErrUserAlreadyExists = errors.New("user already exists")
	// ErrAlreadyAuthenticated is returned when sign-up or sign-in is attempted with a session cookie.
	ErrAlreadyAuthenticated = errors.New("user already authenticated")
	// ErrUserNotFound is returned when no user has the given email.
	ErrUserNotFound = errors.New("user not found")
	// ErrInvalidPassword is returned when the password does not match the stored hash.
	ErrInvalidPassword = errors.New("invalid password")
	// ErrUnauthorized is returned when the session cookie is missing or resolves to no user.
	ErrUnauthorized = errors.New("unauthorized")
	// ErrMealNotFound is returned when the meal does not exist or is owned by someone else.
	ErrMealNotFound = errors.New("meal not found")
)

// ErrorResponse represents a standardized error response.
type ErrorResponse struct {
	Error string `json:"error"`
}

// HTTPError represents an HTTP error with status code.
type HTTPError struct {
	StatusCode int
	Message    string
}

func (e *HTTPError) Error() string {
	return e.Message
}

// NewHTTPError creates a new HTTP error.
func NewHTTPError(statusCode int, message string) *HTTPError {
	return &HTTPError{
		StatusCode: statusCode,
		Message:    message,
	}
}

// ToErrorResponse converts an HTTPError to ErrorResponse.
func (e *HTTPError) ToErrorResponse() ErrorResponse {
	return ErrorResponse{Error: e.Message}
}

// domainErrors lists the client-facing status and message for each sentinel.
var domainErrors = []struct {
	err     error
	status  int
	message string
}{
	{ErrUserAlreadyExists, http.StatusConflict, "User already exists"},
	{ErrAlreadyAuthenticated, http.StatusConflict, "User already authenticated"},
	{ErrUserNotFound, http.StatusNotFound, "User not found"},
	{ErrMealNotFound, http.StatusNotFound, "Meal not found"},
	{ErrInvalidPassword, http.StatusUnauthorized, "Invalid password"},
	{ErrUnauthorized, http.StatusUnauthorized, "Unauthorized"},
}

// MapErrorToHTTP maps domain errors, wrapped or not, to HTTP errors.
func MapErrorToHTTP(err error) *HTTPError {
	for _, d := range domainErrors {
		if errors.Is(err, d.err) {
			return NewHTTPError(d.status, d.message)
		}
	}
	return NewHTTPError(http.StatusInternalServerError, "internal server error")
}

// IsDomain reports whether err maps to a client-facing status.
func IsDomain(err error) bool {
	return MapErrorToHTTP(err).StatusCode != http.StatusInternalServerError
}
