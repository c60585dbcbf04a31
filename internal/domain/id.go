package domain

import (
	"crypto/rand"
	"encoding/hex"
	"regexp"
)

var idPattern = regexp.MustCompile(`^[a-fA-F0-9]{24}$`)

// NewID generates a 24-character lowercase hexadecimal identifier.
func NewID() string {
	b := make([]byte, 12)
	if _, err := rand.Read(b); err != nil {
		panic("domain: read random bytes: " + err.Error())
	}
	return hex.EncodeToString(b)
}

// IsValidID reports whether id has the shape of a 24-character hex string.
func IsValidID(id string) bool {
	return idPattern.MatchString(id)
}
