package httpx

import (
	"net/http"
	"strings"
)

// Credentials is the pair presented by authenticated callers in the
// Authorization header, formatted as "userId:secret" with a base64 secret.
type Credentials struct {
	UserID string
	Secret string
}

// ParseCredentials extracts the credential pair from the request.
// Absent and malformed headers both return ErrForbidden so a probing caller
// learns nothing about which part was wrong.
func ParseCredentials(r *http.Request) (Credentials, error) {
	header := r.Header.Get("Authorization")
	if header == "" {
		return Credentials{}, ErrForbidden
	}

	userID, secret, ok := strings.Cut(header, ":")
	if !ok || userID == "" || secret == "" {
		return Credentials{}, ErrForbidden
	}

	return Credentials{UserID: userID, Secret: secret}, nil
}
