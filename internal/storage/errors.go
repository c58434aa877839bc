package storage

import "errors"

var (
	// ErrNotFound is returned when a habit or log does not exist for the requesting user.
	ErrNotFound = errors.New("not found")
	// ErrNotInitialized is returned by Load when no database exists yet.
	ErrNotInitialized = errors.New("storage not initialized")
)
