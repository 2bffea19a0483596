package service

import (
	"errors"
	"net/http"
)

// Error carries an HTTP status together with the exact user-facing
// message owned by the rule that failed. Handlers return Message
// untouched; API consumers pattern-match on these strings.
type Error struct {
	Status  int
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

// NewError creates a service error with the given status and message
func NewError(status int, message string) *Error {
	return &Error{Status: status, Message: message}
}

func validationError(message string) *Error {
	return NewError(http.StatusBadRequest, message)
}

func notFoundError(message string) *Error {
	return NewError(http.StatusNotFound, message)
}

func conflictError(message string) *Error {
	return NewError(http.StatusConflict, message)
}

func forbiddenError(message string) *Error {
	return NewError(http.StatusForbidden, message)
}

// AsError unwraps a service Error from err, if present
func AsError(err error) (*Error, bool) {
	var svcErr *Error
	if errors.As(err, &svcErr) {
		return svcErr, true
	}
	return nil, false
}
