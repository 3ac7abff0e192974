package auth

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/user/unidirectory-go/apperror"
	"github.com/user/unidirectory-go/logging"
)

// CredentialStore looks up login records. A missing user must be reported as an
// apperror NotFound error.
type CredentialStore interface {
	FindCredentialByEmail(ctx context.Context, email string) (*Credential, error)
}

// CredentialVerifier checks an email/password pair against the stored bcrypt hash.
type CredentialVerifier struct {
	store CredentialStore
	// dummyHash is compared against when the user does not exist, so that an unknown email
	// costs about as much time as a wrong password.
	dummyHash []byte
}

// NewCredentialVerifier creates a verifier backed by store.
func NewCredentialVerifier(store CredentialStore) (*CredentialVerifier, error) {
	dummy, err := bcrypt.GenerateFromPassword([]byte("unidirectory-dummy-password"), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to prepare dummy password hash: %w", err)
	}
	return &CredentialVerifier{store: store, dummyHash: dummy}, nil
}

// Verify returns the identity for a matching email/password pair.
// Unknown email and wrong password both yield ErrInvalidCredentials.
func (v *CredentialVerifier) Verify(ctx context.Context, email, password string) (*Identity, error) {
	log := logging.FromContext(ctx)

	cred, err := v.store.FindCredentialByEmail(ctx, email)
	if err != nil {
		if apperror.IsNotFound(err) {
			_ = bcrypt.CompareHashAndPassword(v.dummyHash, []byte(password))
			log.Info("login rejected: unknown email", nil)
			return nil, ErrInvalidCredentials
		}
		return nil, apperror.NewDatabaseError("failed to look up user", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(cred.PasswordHash), []byte(password)); err != nil {
		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			log.Info("login rejected: password mismatch", logging.Fields{"user_id": cred.ID})
			return nil, ErrInvalidCredentials
		}
		// A malformed stored hash is a server-side problem, not a client one.
		return nil, apperror.NewInternalError("failed to compare password hash", err)
	}

	return &Identity{UserID: cred.ID, Email: cred.Email}, nil
}

// HashPassword hashes a plaintext password for storage.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", apperror.NewInternalError("failed to hash password", err)
	}
	return string(hash), nil
}
