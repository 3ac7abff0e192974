package users

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/user/unidirectory-go/apperror"
	"github.com/user/unidirectory-go/auth"
	"github.com/user/unidirectory-go/respond"
	"github.com/user/unidirectory-go/validation"
)

type memRepo struct {
	mu     sync.Mutex
	users  map[int]*User
	nextID int
	err    error
}

func newMemRepo() *memRepo {
	return &memRepo{users: map[int]*User{}, nextID: 1}
}

func (m *memRepo) FindByID(_ context.Context, id int) (*User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	u, ok := m.users[id]
	if !ok {
		return nil, apperror.NewNotFoundError("User not found", nil)
	}
	return u, nil
}

func (m *memRepo) Create(_ context.Context, email, hash string) (*User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	for _, u := range m.users {
		if u.Email == email {
			return nil, apperror.NewConflictError("a user with this email already exists", nil)
		}
	}
	u := &User{ID: m.nextID, Email: email, PasswordHash: hash, CreatedAt: time.Now()}
	m.users[u.ID] = u
	m.nextID++
	return u, nil
}

func newTestService(repo Repository) *Service {
	s := NewService(repo, validation.NewValidator())
	s.hash = func(pw string) (string, error) { return "hashed:" + pw, nil }
	return s
}

func TestProvision(t *testing.T) {
	repo := newMemRepo()
	s := newTestService(repo)

	u, err := s.Provision(context.Background(), ProvisionRequest{Email: " ada@example.com ", Password: "long-enough"})
	require.NoError(t, err)
	assert.Equal(t, "ada@example.com", u.Email)
	assert.Equal(t, "hashed:long-enough", u.PasswordHash)

	_, err = s.Provision(context.Background(), ProvisionRequest{Email: "ada@example.com", Password: "long-enough"})
	assert.True(t, apperror.IsConflictError(err))
}

func TestProvisionValidates(t *testing.T) {
	s := newTestService(newMemRepo())

	_, err := s.Provision(context.Background(), ProvisionRequest{Email: "not-an-email", Password: "long-enough"})
	assert.True(t, apperror.IsValidationError(err))

	_, err = s.Provision(context.Background(), ProvisionRequest{Email: "ada@example.com", Password: "short"})
	assert.True(t, apperror.IsValidationError(err))
}

func TestProvisionWrapsStorageErrors(t *testing.T) {
	repo := newMemRepo()
	repo.err = errors.New("disk full")

	_, err := newTestService(repo).Provision(context.Background(), ProvisionRequest{Email: "ada@example.com", Password: "long-enough"})
	appErr, ok := apperror.FromError(err)
	require.True(t, ok)
	assert.Equal(t, apperror.DatabaseError, appErr.Type)
}

func getProfile(h *Handlers, claims *auth.Claims) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/users/me", nil)
	if claims != nil {
		req = req.WithContext(auth.NewContextWithClaims(req.Context(), claims))
	}
	rec := httptest.NewRecorder()
	h.HandleGetProfile()(rec, req)
	return rec
}

func TestHandleGetProfile(t *testing.T) {
	repo := newMemRepo()
	s := newTestService(repo)
	u, err := s.Provision(context.Background(), ProvisionRequest{Email: "ada@example.com", Password: "long-enough"})
	require.NoError(t, err)
	h := NewHandlers(s, respond.New(false))

	rec := getProfile(h, &auth.Claims{UserID: u.ID, Email: u.Email})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"email":"ada@example.com"`)
	assert.NotContains(t, rec.Body.String(), "hashed:")

	rec = getProfile(h, &auth.Claims{UserID: 999})
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = getProfile(h, nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
