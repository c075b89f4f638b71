package connection_history

import (
	"errors"
	"fmt"

	"github.com/zalando/go-keyring"
)

const serviceName = "crux"

// Secrets stores connection passwords outside the history file
type Secrets interface {
	Save(key, password string) error
	Get(key string) (string, error)
	Delete(key string) error
}

// PasswordStore keeps passwords in the OS keyring (Keychain, Secret Service
// or Windows Credential Manager).
type PasswordStore struct {
	service string
}

// NewPasswordStore creates a keyring-backed password store
func NewPasswordStore() *PasswordStore {
	return &PasswordStore{service: serviceName}
}

// Save stores a password under key. Empty passwords are not stored.
func (ps *PasswordStore) Save(key, password string) error {
	if password == "" {
		return nil
	}

	if err := keyring.Set(ps.service, key, password); err != nil {
		return &PasswordSaveError{
			Err:     err,
			Message: "failed to save password to keyring",
		}
	}
	return nil
}

// Get retrieves the password stored under key
func (ps *PasswordStore) Get(key string) (string, error) {
	password, err := keyring.Get(ps.service, key)
	if err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return "", ErrPasswordNotFound
		}
		return "", &PasswordReadError{Err: err}
	}
	return password, nil
}

// Delete removes the password stored under key; a missing entry is not an error
func (ps *PasswordStore) Delete(key string) error {
	err := keyring.Delete(ps.service, key)
	if err != nil && !errors.Is(err, keyring.ErrNotFound) {
		return fmt.Errorf("failed to delete password from keyring: %w", err)
	}
	return nil
}
