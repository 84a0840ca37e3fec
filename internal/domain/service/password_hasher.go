// Package service defines interfaces for core, stateless domain logic and external capabilities.
package service

// PasswordHasher defines the interface for hashing secrets: passwords and one-time codes.
// This abstracts the underlying hashing algorithm (e.g., bcrypt), keeping the domain pure.
type PasswordHasher interface {
	// Hash generates a salted hash from a plaintext secret.
	Hash(secret string) (string, error)

	// Check compares a plaintext secret with a hash to see if they match.
	Check(secret, hash string) bool
}
