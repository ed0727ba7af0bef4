package model

import "errors"

var (
	// ErrNotFound is returned when an id or email does not resolve to a record.
	ErrNotFound = errors.New("record not found")
	// ErrConflict is returned when a unique constraint (email, username) is violated.
	ErrConflict = errors.New("record already exists")
	// ErrValidation is returned when a payload fails presence checks.
	ErrValidation = errors.New("validation failed")
	// ErrInvalidTransition is returned for illegal note lifecycle moves.
	ErrInvalidTransition = errors.New("invalid lifecycle transition")
	// ErrInvalidCredentials is returned when a login password does not verify.
	ErrInvalidCredentials = errors.New("invalid credentials")
)
