// Package pin implements the passcode gate: a 4-6 digit PIN whose SHA-256
// digest is the only thing ever stored. The gate knows nothing about the
// question/entry data model; it answers "is a PIN configured" and "does this
// PIN match".
package pin

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"unicode"

	"github.com/zalando/go-keyring"

	"github.com/julianstephens/trackdown/internal/constants"
	"github.com/julianstephens/trackdown/internal/logger"
	"github.com/julianstephens/trackdown/internal/storage"
)

const keyringUser = "pin-hash"

// Hash returns the hex-encoded SHA-256 digest of a PIN.
func Hash(pin string) string {
	sum := sha256.Sum256([]byte(pin))
	return hex.EncodeToString(sum[:])
}

// Validate checks the PIN policy: 4-6 digits.
func Validate(pin string) error {
	if len(pin) < 4 || len(pin) > 6 {
		return fmt.Errorf("PIN must be 4-6 digits")
	}
	for _, r := range pin {
		if !unicode.IsDigit(r) {
			return fmt.Errorf("PIN must contain only digits")
		}
	}
	return nil
}

// Gate guards the application behind an optional PIN. The digest lives in the
// OS keyring when one is available, with the store's pinHash as fallback, so
// a plain file copy of the store does not necessarily carry the secret.
type Gate struct {
	store storage.Provider
}

func NewGate(store storage.Provider) *Gate {
	return &Gate{store: store}
}

func (g *Gate) savedHash() (string, bool) {
	if hash, err := keyring.Get(constants.AppName, keyringUser); err == nil && hash != "" {
		return hash, true
	}
	hash, err := g.store.PINHash()
	if err != nil {
		return "", false
	}
	return hash, true
}

// Configured reports whether a PIN is set.
func (g *Gate) Configured() bool {
	_, ok := g.savedHash()
	return ok
}

// Verify reports whether the entered PIN matches the configured one. It is an
// error to call Verify when no PIN is configured.
func (g *Gate) Verify(entered string) (bool, error) {
	saved, ok := g.savedHash()
	if !ok {
		return false, errors.New("no PIN is currently set")
	}
	return Hash(entered) == saved, nil
}

// Set stores the digest of a new PIN, replacing any existing one.
func (g *Gate) Set(newPIN string) error {
	if err := Validate(newPIN); err != nil {
		return err
	}

	hash := Hash(newPIN)
	if err := keyring.Set(constants.AppName, keyringUser, hash); err == nil {
		// Clear any stale store copy so the keyring stays authoritative.
		if derr := g.store.DeletePINHash(); derr != nil {
			logger.Warn("failed to clear store PIN hash", "error", derr)
		}
		return nil
	} else {
		logger.Debug("keyring unavailable, storing PIN hash in store", "error", err)
	}

	return g.store.SetPINHash(hash)
}

// Remove deletes the configured PIN from both locations.
func (g *Gate) Remove() error {
	if err := keyring.Delete(constants.AppName, keyringUser); err != nil && !errors.Is(err, keyring.ErrNotFound) {
		logger.Debug("keyring delete failed", "error", err)
	}
	return g.store.DeletePINHash()
}
