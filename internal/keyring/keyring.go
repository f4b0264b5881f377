package keyring

import (
	"errors"
	"fmt"

	"github.com/zalando/go-keyring"
)

const service = "hubsync"

// Keys under which Hubstaff credentials are stored.
const (
	KeyEmail    = "email"
	KeyPassword = "password"
	KeyAppToken = "app-token"
)

var (
	// ErrNotFound is returned when no value is stored under the requested key.
	ErrNotFound = errors.New("credential not found in keyring")
	// ErrUnavailable is returned when the OS keyring cannot be reached.
	ErrUnavailable = errors.New("OS keyring is not available")
)

// Get retrieves a stored credential. Returns ErrNotFound if the key has
// never been set.
func Get(key string) (string, error) {
	value, err := keyring.Get(service, key)
	if err != nil {
		if err == keyring.ErrNotFound {
			return "", ErrNotFound
		}
		return "", fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return value, nil
}

// Set stores a credential under the given key.
func Set(key, value string) error {
	if value == "" {
		return errors.New("credential value cannot be empty")
	}
	if err := keyring.Set(service, key, value); err != nil {
		return fmt.Errorf("failed to store credential in keyring: %w", err)
	}
	return nil
}

// Delete removes a stored credential.
func Delete(key string) error {
	err := keyring.Delete(service, key)
	if err != nil {
		if err == keyring.ErrNotFound {
			return ErrNotFound
		}
		return fmt.Errorf("failed to delete credential from keyring: %w", err)
	}
	return nil
}

// IsAvailable reports whether the OS keyring can be used on this system.
// Best effort: a missing test key still proves the keyring responds.
func IsAvailable() bool {
	_, err := keyring.Get(service, "availability-probe")
	return err == nil || err == keyring.ErrNotFound
}
