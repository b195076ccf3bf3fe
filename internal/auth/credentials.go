// FilePath: internal/auth/credentials.go

// Package auth implements the credential store and the bearer token
// service. Both are pure over their inputs; persistence of users and
// pending reset tokens lives in the repository layer.
package auth

import "golang.org/x/crypto/bcrypt"

// CredentialStore hashes and verifies passwords with bcrypt.
type CredentialStore struct {
	cost int
}

// NewCredentialStore creates a credential store with the given bcrypt cost.
// Costs outside bcrypt's valid range fall back to the library default.
func NewCredentialStore(cost int) *CredentialStore {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return &CredentialStore{cost: cost}
}

// HashPassword returns a salted bcrypt hash of the plaintext. Hashing the
// same plaintext twice yields different hashes; both verify.
func (c *CredentialStore) HashPassword(plain string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(plain), c.cost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// CheckPassword reports whether plain matches the stored hash. Malformed
// hashes verify as false, never panic.
func (c *CredentialStore) CheckPassword(plain, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain)) == nil
}
