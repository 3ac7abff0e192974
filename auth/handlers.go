package auth

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/user/unidirectory-go/logging"
	"github.com/user/unidirectory-go/respond"
	"github.com/user/unidirectory-go/validation"
)

// Authenticator verifies submitted credentials.
type Authenticator interface {
	Verify(ctx context.Context, email, password string) (*Identity, error)
}

// Signer issues a token for a verified identity.
type Signer interface {
	Issue(ctx context.Context, id Identity) (string, error)
}

// Handlers serves the login endpoint.
type Handlers struct {
	credentials Authenticator
	tokens      Signer
	validator   *validation.Validator
	rs          *respond.Responder
}

// NewHandlers creates the login handlers.
func NewHandlers(credentials Authenticator, tokens Signer, v *validation.Validator, rs *respond.Responder) *Handlers {
	return &Handlers{credentials: credentials, tokens: tokens, validator: v, rs: rs}
}

// RegisterRoutes mounts the public auth routes.
func (h *Handlers) RegisterRoutes(r chi.Router) {
	r.Post("/login", h.HandleLogin())
}

// HandleLogin godoc
// @Summary Log in
// @Description Verifies email and password and returns a signed bearer token.
// @Tags Auth
// @Accept json
// @Produce json
// @Param loginBody body auth.LoginRequest true "Login credentials"
// @Success 200 {object} auth.LoginResponse
// @Failure 400 {object} apperror.ErrorResponse "Malformed body or missing fields"
// @Failure 401 {object} apperror.ErrorResponse "Invalid credentials"
// @Failure 500 {object} apperror.ErrorResponse "Internal server error"
// @Router /login [post]
func (h *Handlers) HandleLogin() http.HandlerFunc {
	// Login never exposes raw failure details, whatever the verbose setting.
	quiet := respond.WithServerMessage(respond.GenericServerError)

	return func(w http.ResponseWriter, r *http.Request) {
		var req LoginRequest
		if err := h.validator.Bind(r, &req); err != nil {
			h.rs.Error(w, r, err, quiet)
			return
		}

		id, err := h.credentials.Verify(r.Context(), req.Email, req.Password)
		if err != nil {
			h.rs.Error(w, r, err, quiet)
			return
		}

		token, err := h.tokens.Issue(r.Context(), *id)
		if err != nil {
			h.rs.Error(w, r, err, quiet)
			return
		}

		logging.FromContext(r.Context()).Info("user logged in", logging.Fields{"user_id": id.UserID})
		respond.JSON(w, http.StatusOK, LoginResponse{StatusCode: http.StatusOK, Token: token})
	}
}
