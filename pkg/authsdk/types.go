package authsdk

// SignupRequest is the payload for POST /api/v0/signup.
type SignupRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// SigninRequest is the payload for POST /api/v0/signin.
type SigninRequest struct {
	Name     string `json:"name"`
	Password string `json:"password"`
}

// AuthResponse is returned by both signup and signin. TempPassword is the
// freshly minted session secret; it is the only time the plaintext is
// visible.
type AuthResponse struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Email        string `json:"email"`
	TempPassword string `json:"tempPassword"`
}

// HealthResponse is returned by the livez and readyz probes.
type HealthResponse struct {
	Status  string `json:"status"`
	Uptime  string `json:"uptime"`
	Version string `json:"version"`
}

// ErrorResponse is the error body shared by all endpoints.
type ErrorResponse struct {
	Code    string `json:"error"`
	Message string `json:"error_description"`
}
