package users

import "time"

// User is a registered account. The password hash never leaves this package through JSON.
type User struct {
	ID           int       `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"createdAt"`
}

// ProvisionRequest describes an account created from the command line.
type ProvisionRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
}

// ProfileResponse is the body of GET /api/users/me.
type ProfileResponse struct {
	StatusCode int   `json:"statusCode" example:"200"`
	Data       *User `json:"data"`
}
