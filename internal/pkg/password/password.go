// Package password hashes and verifies user passwords with bcrypt.
package password

import (
	"golang.org/x/crypto/bcrypt"
)

// Cost is the bcrypt work factor (10 rounds).
const Cost = bcrypt.DefaultCost

// Hash returns a salted bcrypt digest of plain. On failure it returns an
// empty digest together with the cause; it never panics. bcrypt refuses
// inputs longer than 72 bytes, so callers that need a hard failure should
// validate length before calling.
func Hash(plain string) (string, error) {
	digest, err := bcrypt.GenerateFromPassword([]byte(plain), Cost)
	if err != nil {
		return "", err
	}
	return string(digest), nil
}

// Compare reports whether plain matches a digest produced by Hash.
func Compare(plain, digest string) bool {
	return bcrypt.CompareHashAndPassword([]byte(digest), []byte(plain)) == nil
}
