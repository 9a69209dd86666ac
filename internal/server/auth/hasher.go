// Package auth implements the authentication core: password verification,
// session token issue/parse, route classification, and the per-request
// gate decision.
package auth

import "golang.org/x/crypto/bcrypt"

// PasswordHasher abstracts the one-way password hash. The algorithm and its
// cost are a deployment choice; verification must be constant-time with
// respect to password content.
type PasswordHasher interface {
	// Hash returns the stored form of a plaintext password.
	Hash(password string) (string, error)

	// Verify reports whether password matches the stored hash.
	Verify(password, hash string) bool
}

// dummyHash is a well-formed bcrypt hash of a random throwaway string.
// The verifier runs a comparison against it when the requested user does
// not exist, so the unknown-user and wrong-password paths cost the same.
// The comparison result is always discarded.
const dummyHash = "$2a$10$7EqJtq98hPqEX7fNZaFWoOhi5B0H1AYxWd5A9nFkM2uJvKzGQy3Da"

type BcryptHasher struct {
	cost int
}

// NewBcryptHasher returns a bcrypt-backed hasher. Costs outside the range
// supported by bcrypt fall back to the library default.
func NewBcryptHasher(cost int) *BcryptHasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return &BcryptHasher{cost: cost}
}

func (h *BcryptHasher) Hash(password string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(password), h.cost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func (h *BcryptHasher) Verify(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
