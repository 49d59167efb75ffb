// Package credentials keeps host passwords in the OS keyring and remembers
// the host user next to the workbook.
package credentials

import (
	"errors"
	"fmt"
	"strings"

	"github.com/zalando/go-keyring"
)

// ErrNoPassword is returned when the keyring holds no password for the pair
var ErrNoPassword = errors.New("no password stored")

// Store reads and writes passwords keyed by (system, user)
type Store struct {
	system string
}

// NewStore creates a store for a host system, e.g. "F04"
func NewStore(system string) *Store {
	return &Store{system: system}
}

// System returns the keyring service name
func (s *Store) System() string {
	return s.system
}

// Set saves the password of user
func (s *Store) Set(user, password string) error {
	user = strings.TrimSpace(user)
	if s.system == "" || user == "" || password == "" {
		return errors.New("system, user and password are required")
	}
	if err := keyring.Set(s.system, user, password); err != nil {
		return fmt.Errorf("failed to store password for %s@%s: %w", user, s.system, err)
	}
	return nil
}

// Get returns the password of user
func (s *Store) Get(user string) (string, error) {
	user = strings.TrimSpace(user)
	if s.system == "" || user == "" {
		return "", errors.New("system and user are required")
	}
	password, err := keyring.Get(s.system, user)
	if errors.Is(err, keyring.ErrNotFound) {
		return "", fmt.Errorf("%w for %s@%s", ErrNoPassword, user, s.system)
	}
	if err != nil {
		return "", fmt.Errorf("failed to read password for %s@%s: %w", user, s.system, err)
	}
	return password, nil
}

// Delete removes the password of user
func (s *Store) Delete(user string) error {
	err := keyring.Delete(s.system, strings.TrimSpace(user))
	if errors.Is(err, keyring.ErrNotFound) {
		return fmt.Errorf("%w for %s@%s", ErrNoPassword, user, s.system)
	}
	return err
}
