package api

const (
	authBodyMaxSize = 8 * 1024        // 8 KiB
	dataBodyMaxSize = 4 * 1024 * 1024 // 4 MiB
)

type errorResponse struct {
	Error string `json:"error"`
}

type successResponse struct {
	Success bool `json:"success"`
}

// /auth/login and /auth/register request body
type authRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name,omitempty"`
}

// /auth/login and /auth/register response body
type authResponse struct {
	Success bool `json:"success"`
	User    any  `json:"user"`
}

type healthResponse struct {
	Status string `json:"status"`
}
