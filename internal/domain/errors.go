package domain

import "errors"

var (
	// ErrNotFound indicates the requested entity was not found.
	ErrNotFound = errors.New("not found")
	// ErrInvalidInput indicates a request payload could not be accepted.
	ErrInvalidInput = errors.New("invalid input")
)
