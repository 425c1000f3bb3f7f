package id

import (
	"crypto/rand"
	"encoding/hex"
)

// NewID32 returns a public record identifier: exactly 32 lowercase hex
// characters, no separators or prefixes. Used for customers, loans and
// review requests alike.
func NewID32() string {
	b := make([]byte, 16)
	_, _ = rand.Read(b)
	return hex.EncodeToString(b)
}
