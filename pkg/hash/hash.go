// Package hash wraps bcrypt for password storage.
package hash

import "golang.org/x/crypto/bcrypt"

// Password returns a salted bcrypt hash of the plain-text password.
func Password(plain string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.DefaultCost)
	return string(bytes), err
}

// Verify reports whether plain matches the stored bcrypt hash.
// A malformed hash is treated as a mismatch, never an error.
func Verify(plain, hashed string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hashed), []byte(plain)) == nil
}
