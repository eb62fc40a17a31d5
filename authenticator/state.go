package authenticator

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/hex"
	"fmt"
	"regexp"

	"github.com/fysikteknologsektionen/ftek-login/cookies"
)

var randomKeyPattern = regexp.MustCompile(`^[0-9a-f]{32}$`)

// NewRandomKey returns 128 bits of randomness as lowercase hex
func NewRandomKey() (string, error) {
	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("failed to generate random key: %w", err)
	}
	return hex.EncodeToString(b), nil
}

// IsRandomKey reports whether s has the shape produced by NewRandomKey
func IsRandomKey(s string) bool {
	return randomKeyPattern.MatchString(s)
}

// StateManager keeps the anti-forgery state token in a browser cookie
type StateManager struct {
	store cookies.Store
}

// NewStateManager creates a state manager backed by store
func NewStateManager(store cookies.Store) *StateManager {
	return &StateManager{store: store}
}

// GetOrCreate returns the state stored in the browser, replacing it when
// it is absent or malformed
func (m *StateManager) GetOrCreate() (string, error) {
	if state, ok := m.store.Get(cookies.StateCookie); ok && IsRandomKey(state) {
		return state, nil
	}

	state, err := NewRandomKey()
	if err != nil {
		return "", err
	}
	m.store.Set(cookies.StateCookie, state)
	return state, nil
}

// Validate compares candidate against the stored state
func (m *StateManager) Validate(candidate string) (bool, error) {
	expected, err := m.GetOrCreate()
	if err != nil {
		return false, err
	}
	return subtle.ConstantTimeCompare([]byte(expected), []byte(candidate)) == 1, nil
}
