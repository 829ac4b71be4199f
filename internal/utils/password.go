package utils

import (
	"golang.org/x/crypto/bcrypt"
)

// dummyHash is compared against when no principal matches a login, so unknown
// emails cost the same as wrong passwords.
var dummyHash, _ = bcrypt.GenerateFromPassword([]byte("invoicer-placeholder"), bcrypt.DefaultCost)

// HashPassword hashes a plaintext password using bcrypt.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	return string(hash), err
}

// CheckPasswordHash compares a plaintext password with a bcrypt hash.
// An empty hash never matches but still spends a comparison.
func CheckPasswordHash(password, hash string) bool {
	if hash == "" {
		_ = bcrypt.CompareHashAndPassword(dummyHash, []byte(password))
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
