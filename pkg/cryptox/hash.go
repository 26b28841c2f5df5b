package cryptox

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"fmt"

	"golang.org/x/crypto/scrypt"
)

// Key derivation policy. The cost parameters and output length are fixed:
// every stored credential hash in the database was produced with these values,
// so changing them invalidates existing hashes.
const (
	scryptN = 1024
	scryptR = 8
	scryptP = 1

	// HashLength is the derived key length in bytes.
	HashLength = 512

	// PasswordSaltLength is the per-user random salt size used for passwords.
	PasswordSaltLength = 64

	// SessionSecretLength is the size of a freshly minted session secret.
	SessionSecretLength = 128
)

// sessionSalt is the application-wide salt for session secrets. Session
// secrets are high-entropy random values rather than user-chosen passwords,
// so a shared salt is acceptable here.
var sessionSalt = []byte("rpcbridge-session-secret-salt")

// Hash derives a HashLength-byte key from secret and salt using scrypt.
// Deterministic: the same inputs always produce the same output.
func Hash(secret, salt []byte) []byte {
	key, err := scrypt.Key(secret, salt, scryptN, scryptR, scryptP, HashLength)
	if err != nil {
		// scrypt.Key only fails on invalid cost parameters, which are
		// constants here.
		panic(fmt.Sprintf("cryptox: scrypt: %v", err))
	}
	return key
}

// SessionSalt returns a copy of the fixed session-secret salt.
func SessionSalt() []byte {
	return append([]byte(nil), sessionSalt...)
}

// Equal compares two hashes in constant time.
func Equal(a, b []byte) bool {
	return subtle.ConstantTimeCompare(a, b) == 1
}

// RandomBytes returns n cryptographically secure random bytes.
// Panics if the system RNG is unavailable.
func RandomBytes(n int) []byte {
	buf := make([]byte, n)
	if _, err := rand.Read(buf); err != nil {
		panic(fmt.Sprintf("cryptox: rand: %v", err))
	}
	return buf
}

// EncodeSecret encodes a raw secret for transport to the caller.
func EncodeSecret(secret []byte) string {
	return base64.StdEncoding.EncodeToString(secret)
}

// DecodeSecret decodes a secret previously produced by EncodeSecret.
func DecodeSecret(s string) ([]byte, error) {
	return base64.StdEncoding.DecodeString(s)
}
