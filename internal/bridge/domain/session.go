package domain

import "time"

const (
	// SessionTTL bounds a session's validity from its creation, enforced
	// lazily when the session is presented.
	SessionTTL = 7 * 24 * time.Hour

	// SessionSweepTTL is the age at which the background sweep deletes
	// session rows. Keep it numerically identical to SessionTTL; the sweep
	// reclaims exactly the rows the lazy check would refuse anyway.
	SessionSweepTTL = 7 * 24 * time.Hour
)

// Session is a live credential for one user. Only the scrypt hash of the
// session secret is stored; the plaintext exists client-side only.
type Session struct {
	UserID     string
	SecretHash []byte
	ExpiresAt  time.Time
	CreatedAt  time.Time
}

// Expired reports whether the session is past its validity window.
func (s Session) Expired(now time.Time) bool {
	return now.After(s.ExpiresAt)
}
