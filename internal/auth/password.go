// ABOUTME: Password hashing and verification using bcrypt
// ABOUTME: One-way salted hashes; verification failure never leaks why

package auth

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// DummyHash is a valid bcrypt hash of a random string. When a login targets a
// handle that does not exist, compare the supplied password against this hash
// so the request costs the same as a real comparison and timing cannot
// enumerate handles.
const DummyHash = "$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy"

// HashPassword hashes a plaintext password with bcrypt at the default cost.
// Each call salts independently, so hashing the same input twice yields
// different outputs.
func HashPassword(plain string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("hashing password: %w", err)
	}
	return string(hash), nil
}

// CheckPassword reports whether plain matches the stored hash. A malformed
// stored hash returns false rather than an error: callers treat "cannot
// verify" identically to "wrong password".
func CheckPassword(plain, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain)) == nil
}
