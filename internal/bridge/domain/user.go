package domain

import "time"

// User is a registered account. The password is stored as a per-user random
// salt plus a scrypt hash; the plaintext never leaves the signup/signin
// handlers.
type User struct {
	ID    string
	Name  string
	Email string

	PasswordSalt []byte
	PasswordHash []byte

	// LastActivityAt advances on every successful session verification.
	LastActivityAt time.Time
}
