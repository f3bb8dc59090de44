package utils

import (
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"fmt"
)

// hashSaltLength is the salt prefix length the remote POS system uses for its
// operator password hashes.
const hashSaltLength = 2

const saltAlphabet = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// SaltedHash hashes a plaintext password the way the remote POS system stores
// it: the two-character salt, followed by the hex digest of salt+password.
func SaltedHash(salt, password string) string {
	sum := sha256.Sum256([]byte(salt + password))
	return salt + hex.EncodeToString(sum[:])
}

// VerifySaltedHash re-hashes the plaintext with the salt extracted from the
// stored hash's prefix and compares the result in constant time.
func VerifySaltedHash(password, storedHash string) bool {
	if len(storedHash) <= hashSaltLength {
		return false
	}
	computed := SaltedHash(storedHash[:hashSaltLength], password)
	return subtle.ConstantTimeCompare([]byte(computed), []byte(storedHash)) == 1
}

// NewHashSalt generates a fresh random salt in the remote system's format.
func NewHashSalt() (string, error) {
	buf := make([]byte, hashSaltLength)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("failed to read random bytes: %w", err)
	}
	for i, b := range buf {
		buf[i] = saltAlphabet[int(b)%len(saltAlphabet)]
	}
	return string(buf), nil
}
