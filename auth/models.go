package auth

import "github.com/golang-jwt/jwt/v5"

// Identity is a verified user, as carried inside a token.
type Identity struct {
	UserID int    `json:"userId"`
	Email  string `json:"email"`
}

// Credential is the stored login record for a user.
type Credential struct {
	ID           int
	Email        string
	PasswordHash string
}

// Claims is the token payload: exactly {userId, email} plus the registered claims.
type Claims struct {
	UserID int    `json:"userId"`
	Email  string `json:"email"`
	jwt.RegisteredClaims
}

// Identity returns the identity encoded in the claims.
func (c *Claims) Identity() Identity {
	return Identity{UserID: c.UserID, Email: c.Email}
}
