package lib

import "errors"

var (
	// ErrNotFound is returned when a resource does not exist.
	ErrNotFound = errors.New("not found")
	// ErrAlreadyExists is returned when a resource with the same identifier already exists.
	ErrAlreadyExists = errors.New("already exists")
	// ErrNotValid is returned for invalid input or operations.
	ErrNotValid = errors.New("not valid")
)
