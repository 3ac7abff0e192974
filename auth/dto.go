package auth

// LoginRequest is the body of POST /api/login.
type LoginRequest struct {
	Email    string `json:"email" validate:"required" example:"admin@example.com"`
	Password string `json:"password" validate:"required" example:"secret-password"`
}

// LoginResponse carries the issued bearer token.
type LoginResponse struct {
	StatusCode int    `json:"statusCode" example:"200"`
	Token      string `json:"token"`
}
