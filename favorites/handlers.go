package favorites

import (
	"context"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/user/unidirectory-go/apperror"
	"github.com/user/unidirectory-go/listquery"
	"github.com/user/unidirectory-go/respond"
	"github.com/user/unidirectory-go/validation"
)

// FavoriteService is what the handlers need.
type FavoriteService interface {
	List(ctx context.Context, p listquery.Params) (*listquery.Page[Favorite], error)
	Create(ctx context.Context, universityID int) (*Favorite, error)
	Delete(ctx context.Context, id int) (*Favorite, error)
}

// Handlers serves /favorites.
type Handlers struct {
	service   FavoriteService
	validator *validation.Validator
	defaults  listquery.Defaults
	rs        *respond.Responder
	events    http.HandlerFunc
}

// NewHandlers creates favorites Handlers.
func NewHandlers(service FavoriteService, v *validation.Validator, defaults listquery.Defaults, rs *respond.Responder) *Handlers {
	return &Handlers{service: service, validator: v, defaults: defaults, rs: rs}
}

// WithEventStream serves stream at GET /favorites/events.
func (h *Handlers) WithEventStream(stream http.HandlerFunc) *Handlers {
	h.events = stream
	return h
}

// RegisterRoutes mounts the favorites routes. They must sit behind auth.Middleware.
func (h *Handlers) RegisterRoutes(r chi.Router) {
	r.Route("/favorites", func(r chi.Router) {
		r.Get("/", h.HandleList())
		r.Post("/", h.HandleCreate())
		r.Delete("/", h.HandleDelete())
		if h.events != nil {
			r.Get("/events", h.events)
		}
	})
}

// HandleList godoc
// @Summary List favorites
// @Description Paginated favorites, each joined with its university.
// @Tags favorites
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page number" default(1)
// @Param pageSize query int false "Page size" default(10)
// @Success 200 {object} favorites.ListResponse
// @Failure 401 {object} apperror.ErrorResponse "Unauthorized"
// @Failure 500 {object} apperror.ErrorResponse
// @Router /favorites [get]
func (h *Handlers) HandleList() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		params := listquery.ParseParams(r.URL.Query(), h.defaults)
		page, err := h.service.List(r.Context(), params)
		if err != nil {
			h.rs.Error(w, r, err)
			return
		}
		respond.JSON(w, http.StatusOK, ListResponse{
			StatusCode: http.StatusOK,
			Data:       page.Items,
			Total:      page.Total,
			Page:       page.Params.Page,
			PageSize:   page.Params.PageSize,
		})
	}
}

// HandleCreate godoc
// @Summary Add a favorite
// @Tags favorites
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param favorite body favorites.CreateRequest true "University to bookmark"
// @Success 201 {object} favorites.ItemResponse
// @Failure 400 {object} apperror.ErrorResponse "universityId is required"
// @Failure 401 {object} apperror.ErrorResponse "Unauthorized"
// @Failure 404 {object} apperror.ErrorResponse "University not found"
// @Failure 500 {object} apperror.ErrorResponse
// @Router /favorites [post]
func (h *Handlers) HandleCreate() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req CreateRequest
		if err := h.validator.Bind(r, &req); err != nil {
			h.rs.Error(w, r, err)
			return
		}
		f, err := h.service.Create(r.Context(), req.UniversityID)
		if err != nil {
			h.rs.Error(w, r, err)
			return
		}
		respond.JSON(w, http.StatusCreated, ItemResponse{StatusCode: http.StatusCreated, Data: f})
	}
}

// HandleDelete godoc
// @Summary Remove a favorite
// @Tags favorites
// @Produce json
// @Security BearerAuth
// @Param id query int true "Favorite id"
// @Success 200 {object} favorites.ItemResponse
// @Failure 400 {object} apperror.ErrorResponse "id parameter is required"
// @Failure 401 {object} apperror.ErrorResponse "Unauthorized"
// @Failure 404 {object} apperror.ErrorResponse "Favorite not found"
// @Failure 500 {object} apperror.ErrorResponse
// @Router /favorites [delete]
func (h *Handlers) HandleDelete() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		raw := r.URL.Query().Get("id")
		if raw == "" {
			h.rs.Error(w, r, apperror.NewValidationError("id parameter is required", nil))
			return
		}
		id, err := strconv.Atoi(raw)
		if err != nil {
			h.rs.Error(w, r, apperror.NewBadRequestError("id parameter must be an integer", err))
			return
		}

		f, err := h.service.Delete(r.Context(), id)
		if err != nil {
			h.rs.Error(w, r, err)
			return
		}
		respond.JSON(w, http.StatusOK, ItemResponse{StatusCode: http.StatusOK, Data: f})
	}
}
