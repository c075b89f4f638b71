package connection_history

import (
	"errors"
	"fmt"
)

var (
	// ErrPasswordNotFound is returned when no password is stored for an entry
	ErrPasswordNotFound = errors.New("password not found in keyring")

	// ErrEntryNotFound is returned when a history entry ID is unknown
	ErrEntryNotFound = errors.New("connection history entry not found")
)

// PasswordSaveError wraps a keyring write failure
type PasswordSaveError struct {
	Err     error
	Message string
}

func (e *PasswordSaveError) Error() string {
	return fmt.Sprintf("%s: %v", e.Message, e.Err)
}

func (e *PasswordSaveError) Unwrap() error {
	return e.Err
}

// PasswordReadError wraps a keyring read failure other than a missing entry
type PasswordReadError struct {
	Err error
}

func (e *PasswordReadError) Error() string {
	return fmt.Sprintf("failed to read password from keyring: %v", e.Err)
}

func (e *PasswordReadError) Unwrap() error {
	return e.Err
}
