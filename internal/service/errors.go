package service

import "errors"

var (
	// ErrNotFound signals that the requested incident does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidCredentials is returned for unknown usernames and for wrong
	// passwords alike, so the two cases are indistinguishable to callers.
	ErrInvalidCredentials = errors.New("invalid credentials")
)
