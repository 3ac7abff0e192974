package users

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/user/unidirectory-go/auth"
	"github.com/user/unidirectory-go/respond"
)

// ProfileReader loads a user profile.
type ProfileReader interface {
	Profile(ctx context.Context, id int) (*User, error)
}

// Handlers serves the user endpoints.
type Handlers struct {
	profiles ProfileReader
	rs       *respond.Responder
}

// NewHandlers creates user Handlers.
func NewHandlers(profiles ProfileReader, rs *respond.Responder) *Handlers {
	return &Handlers{profiles: profiles, rs: rs}
}

// RegisterRoutes mounts the user routes. They must sit behind auth.Middleware.
func (h *Handlers) RegisterRoutes(r chi.Router) {
	r.Get("/users/me", h.HandleGetProfile())
}

// HandleGetProfile godoc
// @Summary Current user
// @Description Returns the account behind the bearer token.
// @Tags users
// @Produce json
// @Security BearerAuth
// @Success 200 {object} users.ProfileResponse
// @Failure 401 {object} apperror.ErrorResponse "Unauthorized"
// @Failure 404 {object} apperror.ErrorResponse "User not found"
// @Failure 500 {object} apperror.ErrorResponse "Internal server error"
// @Router /users/me [get]
func (h *Handlers) HandleGetProfile() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := auth.ClaimsFromContext(r.Context())
		if !ok {
			h.rs.Error(w, r, auth.ErrUnauthorized)
			return
		}

		u, err := h.profiles.Profile(r.Context(), claims.UserID)
		if err != nil {
			h.rs.Error(w, r, err)
			return
		}
		respond.JSON(w, http.StatusOK, ProfileResponse{StatusCode: http.StatusOK, Data: u})
	}
}
