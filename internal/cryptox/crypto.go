// Package cryptox holds the password-verifier scheme shared by client and
// server. The client derives a key from the password with Argon2id and sends
// only a SHA-256 verifier of it; the server stores the verifier and the salt.
package cryptox

import (
	"crypto/sha256"

	"golang.org/x/crypto/argon2"
)

// DeriveKey stretches password with salt using Argon2id.
func DeriveKey(password []byte, salt []byte) []byte {
	return argon2.IDKey(password, salt, 1, 64*1024, 4, 32)
}

// MakeVerifier returns the value stored and compared server-side.
func MakeVerifier(key []byte) []byte {
	hash := sha256.Sum256(key)
	return hash[:]
}
