package auth

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/user/unidirectory-go/apperror"
)

type fakeCredentialStore struct {
	byEmail map[string]*Credential
	err     error
}

func newFakeStore(t *testing.T, id int, email, password string) *fakeCredentialStore {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	return &fakeCredentialStore{byEmail: map[string]*Credential{
		email: {ID: id, Email: email, PasswordHash: string(hash)},
	}}
}

func (s *fakeCredentialStore) FindCredentialByEmail(_ context.Context, email string) (*Credential, error) {
	if s.err != nil {
		return nil, s.err
	}
	cred, ok := s.byEmail[email]
	if !ok {
		return nil, apperror.NewNotFoundError("user not found", nil)
	}
	return cred, nil
}

type recordingSigner struct {
	mu     sync.Mutex
	issued []Identity
	err    error
}

func (s *recordingSigner) Issue(_ context.Context, id Identity) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return "", s.err
	}
	s.issued = append(s.issued, id)
	return "signed-token", nil
}

var errStoreDown = errors.New("connection refused")
