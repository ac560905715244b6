// Package auth provides concrete implementations for authentication-related domain services.
package auth

import (
	"crypto/hmac"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/base64"
	"strings"

	"member/config"
	"member/internal/domain/service"

	"github.com/pkg/errors"
)

// ErrEmptyPasswordKey is returned when the hasher is built without a secret key.
var ErrEmptyPasswordKey = errors.New("password key must not be empty")

// hmacHasher is a concrete implementation of the PasswordHasher interface using HMAC-SHA256
// keyed by a server-wide secret.
//
// The output is deterministic and unsalted: two accounts with the same password store the
// same hash. Stored hashes depend on this, so adding a salt needs a data migration.
type hmacHasher struct {
	key string
}

// NewHMACHasher is the constructor for hmacHasher. It reads security.passwordKey and fails
// when the key is blank.
func NewHMACHasher(cfg *config.Config) (service.PasswordHasher, error) {
	if cfg == nil {
		return nil, errors.WithStack(ErrEmptyPasswordKey)
	}

	return NewHMACHasherWithKey(cfg.Security.PasswordKey)
}

// NewHMACHasherWithKey builds the hasher from a raw key.
func NewHMACHasherWithKey(key string) (service.PasswordHasher, error) {
	if strings.TrimSpace(key) == "" {
		return nil, errors.WithStack(ErrEmptyPasswordKey)
	}

	return &hmacHasher{key: key}, nil
}

// Hash returns the base64 HMAC-SHA256 of the password.
func (h *hmacHasher) Hash(password string) string {
	return HashPassword(password, h.key)
}

// Check compares a plaintext password with a stored hash.
func (h *hmacHasher) Check(password, hash string) bool {
	return VerifyPassword(password, hash, h.key)
}

// HashPassword computes HMAC-SHA256(key, password) over the UTF-8 bytes and encodes the
// 32-byte MAC as padded standard base64.
func HashPassword(password, key string) string {
	mac := hmac.New(sha256.New, []byte(key))
	mac.Write([]byte(password))

	return base64.StdEncoding.EncodeToString(mac.Sum(nil))
}

// VerifyPassword recomputes the hash and compares it in constant time.
func VerifyPassword(password, storedHash, key string) bool {
	computed := HashPassword(password, key)

	return subtle.ConstantTimeCompare([]byte(computed), []byte(storedHash)) == 1
}
