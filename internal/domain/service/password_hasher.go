// Package service defines interfaces for core, stateless domain logic.
// These services encapsulate business rules that don't naturally fit within a single entity.
package service

// PasswordHasher defines the interface for password hashing and verification.
// Implementations are bound to their key at construction and cannot fail per call.
type PasswordHasher interface {
	// Hash returns the encoded hash of a plaintext password.
	Hash(password string) string

	// Check reports whether the plaintext password produces the stored hash.
	Check(password, hash string) bool
}
