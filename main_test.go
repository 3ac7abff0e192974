package main

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/user/unidirectory-go/auth"
	"github.com/user/unidirectory-go/events"
	"github.com/user/unidirectory-go/favorites"
	"github.com/user/unidirectory-go/listquery"
	"github.com/user/unidirectory-go/logging"
	"github.com/user/unidirectory-go/respond"
	"github.com/user/unidirectory-go/universities"
	"github.com/user/unidirectory-go/users"
	"github.com/user/unidirectory-go/validation"
)

type stubPinger struct{ err error }

func (p stubPinger) Ping(context.Context) error { return p.err }

type stubUniversities struct{}

func (stubUniversities) Count(context.Context, listquery.Filter) (int64, error) { return 1, nil }

func (stubUniversities) List(context.Context, listquery.Query) ([]universities.University, error) {
	return []universities.University{{ID: 1, Name: "Harvard University", Country: "United States"}}, nil
}

type stubFavorites struct{}

func (stubFavorites) List(_ context.Context, p listquery.Params) (*listquery.Page[favorites.Favorite], error) {
	return &listquery.Page[favorites.Favorite]{Items: []favorites.Favorite{}, Params: p}, nil
}

func (stubFavorites) Create(_ context.Context, universityID int) (*favorites.Favorite, error) {
	return &favorites.Favorite{ID: 1, UniversityID: universityID}, nil
}

func (stubFavorites) Delete(_ context.Context, id int) (*favorites.Favorite, error) {
	return &favorites.Favorite{ID: id}, nil
}

type stubProfiles struct{}

func (stubProfiles) Profile(_ context.Context, id int) (*users.User, error) {
	return &users.User{ID: id, Email: "admin@example.com"}, nil
}

type stubCredentials struct{}

func (stubCredentials) Verify(context.Context, string, string) (*auth.Identity, error) {
	return nil, auth.ErrInvalidCredentials
}

func testRouter(t *testing.T, pinger stubPinger) (http.Handler, *auth.TokenIssuer) {
	t.Helper()
	tokens, err := auth.NewTokenIssuer("0123456789abcdef0123", auth.DefaultTokenTTL, "unidirectory")
	require.NoError(t, err)

	rs := respond.New(false)
	v := validation.NewValidator()
	return newRouter(routes{
		logger:       logging.Nop(),
		responder:    rs,
		origins:      []string{"*"},
		health:       pinger,
		tokens:       tokens,
		universities: universities.NewHandlers(universities.NewService(stubUniversities{}), listquery.StandardDefaults, rs),
		login:        auth.NewHandlers(stubCredentials{}, tokens, v, rs),
		favorites: favorites.NewHandlers(stubFavorites{}, v, listquery.StandardDefaults, rs).
			WithEventStream(events.Stream(events.NewBroadcaster(), rs)),
		users: users.NewHandlers(stubProfiles{}, rs),
	}), tokens
}

func TestHealth(t *testing.T) {
	h, _ := testRouter(t, stubPinger{})
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"statusCode":200,"status":"ok"}`, rec.Body.String())

	h, _ = testRouter(t, stubPinger{err: errors.New("connection refused")})
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.NotContains(t, rec.Body.String(), "connection refused")
}

func TestPublicAndProtectedRoutes(t *testing.T) {
	h, tokens := testRouter(t, stubPinger{})

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/universities?country=united", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	var search map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &search))
	assert.EqualValues(t, 1, search["total"])

	for _, target := range []string{"/api/favorites", "/api/favorites/events", "/api/users/me"} {
		rec = httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
		assert.Equal(t, http.StatusUnauthorized, rec.Code, target)
	}

	token, err := tokens.Issue(context.Background(), auth.Identity{UserID: 7, Email: "admin@example.com"})
	require.NoError(t, err)

	for _, target := range []string{"/api/favorites", "/api/users/me"} {
		req := httptest.NewRequest(http.MethodGet, target, nil)
		req.Header.Set("Authorization", "Bearer "+token)
		rec = httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusOK, rec.Code, target)
	}
}

func TestRouterServesFrontendAndDocs(t *testing.T) {
	h, _ := testRouter(t, stubPinger{})

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "<html")

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/swagger/doc.json", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "/universities")
}
