// ABOUTME: OS keyring access for the coach API key.
// ABOUTME: Wraps zalando/go-keyring with package-level sentinel errors.
package keyring

import (
	"errors"
	"fmt"

	"github.com/zalando/go-keyring"
)

const (
	// Service is the keyring service name.
	Service = "habits"
	// APIKeyUser is the keyring account holding the text-generation API key.
	APIKeyUser = "ai-api-key"
)

var (
	// ErrNotFound is returned when no key is stored in the keyring.
	ErrNotFound = errors.New("api key not found in keyring")
	// ErrKeyringUnavailable is returned when the OS keyring is not available.
	ErrKeyringUnavailable = errors.New("OS keyring is not available")
)

// GetAPIKey retrieves the API key from the OS keyring.
func GetAPIKey() (string, error) {
	key, err := keyring.Get(Service, APIKeyUser)
	if err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return "", ErrNotFound
		}
		return "", fmt.Errorf("%w: %v", ErrKeyringUnavailable, err)
	}
	return key, nil
}

// SetAPIKey stores the API key in the OS keyring.
func SetAPIKey(key string) error {
	if key == "" {
		return errors.New("api key cannot be empty")
	}
	if err := keyring.Set(Service, APIKeyUser, key); err != nil {
		return fmt.Errorf("store api key in keyring: %w", err)
	}
	return nil
}

// DeleteAPIKey removes the API key from the OS keyring.
func DeleteAPIKey() error {
	err := keyring.Delete(Service, APIKeyUser)
	if err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("delete api key from keyring: %w", err)
	}
	return nil
}
