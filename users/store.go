// Package users stores user accounts and serves the authenticated user's profile.
// Accounts are created out of band (the `useradd` command); the API only reads them.
package users

import (
	"context"
	"errors"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/user/unidirectory-go/apperror"
	"github.com/user/unidirectory-go/auth"
	"github.com/user/unidirectory-go/db"
)

// Store is the PostgreSQL-backed user repository.
type Store struct {
	db db.DBTX
}

// NewStore creates a Store.
func NewStore(conn db.DBTX) *Store {
	return &Store{db: conn}
}

// FindCredentialByEmail returns the login record for an exact email match.
func (s *Store) FindCredentialByEmail(ctx context.Context, email string) (*auth.Credential, error) {
	var cred auth.Credential
	err := s.db.QueryRow(ctx,
		`SELECT id, email, password FROM users WHERE email = $1`, email,
	).Scan(&cred.ID, &cred.Email, &cred.PasswordHash)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperror.NewNotFoundError("user not found", nil)
		}
		return nil, err
	}
	return &cred, nil
}

// FindByID returns the user with the given id.
func (s *Store) FindByID(ctx context.Context, id int) (*User, error) {
	var u User
	err := s.db.QueryRow(ctx,
		`SELECT id, email, password, created_at FROM users WHERE id = $1`, id,
	).Scan(&u.ID, &u.Email, &u.PasswordHash, &u.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperror.NewNotFoundError("User not found", nil)
		}
		return nil, err
	}
	return &u, nil
}

// Create inserts a user with an already hashed password.
func (s *Store) Create(ctx context.Context, email, passwordHash string) (*User, error) {
	u := User{Email: email, PasswordHash: passwordHash}
	err := s.db.QueryRow(ctx,
		`INSERT INTO users (email, password) VALUES ($1, $2) RETURNING id, created_at`,
		email, passwordHash,
	).Scan(&u.ID, &u.CreatedAt)
	if err != nil {
		if db.IsUniqueViolation(err) {
			return nil, apperror.NewConflictError("a user with this email already exists", err)
		}
		return nil, err
	}
	return &u, nil
}

// Repository is what the user service needs from storage.
type Repository interface {
	FindByID(ctx context.Context, id int) (*User, error)
	Create(ctx context.Context, email, passwordHash string) (*User, error)
}

// Validator checks request structs.
type Validator interface {
	ValidateStruct(s interface{}) error
}

// Service implements user provisioning and profile lookup.
type Service struct {
	repo      Repository
	validator Validator
	hash      func(string) (string, error)
}

// NewService creates a user Service.
func NewService(repo Repository, v Validator) *Service {
	return &Service{repo: repo, validator: v, hash: auth.HashPassword}
}

// Provision validates and stores a new account. The email is stored trimmed; login matches it exactly.
func (s *Service) Provision(ctx context.Context, req ProvisionRequest) (*User, error) {
	req.Email = strings.TrimSpace(req.Email)
	if err := s.validator.ValidateStruct(&req); err != nil {
		return nil, err
	}
	hash, err := s.hash(req.Password)
	if err != nil {
		return nil, err
	}
	u, err := s.repo.Create(ctx, req.Email, hash)
	if err != nil {
		if _, ok := apperror.FromError(err); ok {
			return nil, err
		}
		return nil, apperror.NewDatabaseError("failed to create user", err)
	}
	return u, nil
}

// Profile returns the user with the given id.
func (s *Service) Profile(ctx context.Context, id int) (*User, error) {
	u, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if _, ok := apperror.FromError(err); ok {
			return nil, err
		}
		return nil, apperror.NewDatabaseError("failed to load user", err)
	}
	return u, nil
}
