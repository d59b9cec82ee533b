package helpers

import (
	"errors"

	"golang.org/x/crypto/bcrypt"
)

// ErrCorruptCredential signals a stored hash that bcrypt cannot parse.
var ErrCorruptCredential = errors.New("corrupt credential hash")

// HashPassword hashes the plain text password using bcrypt.
// Each call draws a fresh salt, so the same input yields a different hash.
func HashPassword(plain string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// CheckPassword compares a bcrypt hash with a plain password.
// A mismatch returns (false, nil); a malformed hash returns ErrCorruptCredential.
func CheckPassword(hash string, plain string) (bool, error) {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain))
	if err == nil {
		return true, nil
	}
	if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
		return false, nil
	}
	return false, ErrCorruptCredential
}
