package repository

import "errors"

// ErrUsernameTaken is returned when a user is created with a username that
// already exists.
var ErrUsernameTaken = errors.New("username already in use")

// NotFoundError is an error type for when a resource is not found.
type NotFoundError struct {
	message string
}

// NewNotFoundError returns a NotFoundError carrying message.
func NewNotFoundError(message string) NotFoundError {
	return NotFoundError{message: message}
}

// Error returns the error message.
func (e NotFoundError) Error() string {
	return e.message
}
