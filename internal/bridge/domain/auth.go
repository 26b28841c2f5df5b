package domain

// AuthResponse is the body returned by signup and signin. TempPassword is the
// plaintext session secret, present only in this response.
type AuthResponse struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Email        string `json:"email"`
	TempPassword string `json:"tempPassword"`
}
