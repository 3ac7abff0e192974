package universities

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/user/unidirectory-go/listquery"
	"github.com/user/unidirectory-go/respond"
)

// Searcher runs a directory search.
type Searcher interface {
	Search(ctx context.Context, q listquery.Query) (*listquery.Page[University], error)
}

// Handlers serves the university endpoints.
type Handlers struct {
	search   Searcher
	defaults listquery.Defaults
	rs       *respond.Responder
	now      func() time.Time
}

// NewHandlers creates university Handlers.
func NewHandlers(search Searcher, defaults listquery.Defaults, rs *respond.Responder) *Handlers {
	return &Handlers{search: search, defaults: defaults, rs: rs, now: time.Now}
}

// RegisterRoutes mounts the public university routes.
func (h *Handlers) RegisterRoutes(r chi.Router) {
	r.Get("/universities", h.HandleSearch())
}

// HandleSearch godoc
// @Summary Search universities
// @Description Case-insensitive substring search by country and name, paginated.
// @Tags universities
// @Produce json
// @Param country query string false "Country contains"
// @Param name query string false "Name contains"
// @Param page query int false "Page number" default(1)
// @Param pageSize query int false "Page size" default(10)
// @Success 200 {object} universities.SearchResponse
// @Failure 500 {object} apperror.ErrorResponse "Internal Server Error"
// @Router /universities [get]
func (h *Handlers) HandleSearch() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		values := r.URL.Query()
		q := listquery.Query{
			Filter: listquery.Filter{}.
				Contains(FieldCountry, values.Get("country")).
				Contains(FieldName, values.Get("name")),
			Params: listquery.ParseParams(values, h.defaults),
		}

		start := h.now()
		page, err := h.search.Search(r.Context(), q)
		elapsed := h.now().Sub(start)
		if err != nil {
			h.rs.Error(w, r, err, respond.WithMessage("Internal Server Error"))
			return
		}

		respond.JSON(w, http.StatusOK, SearchResponse{
			StatusCode:   http.StatusOK,
			ResponseTime: elapsed.Milliseconds(),
			Data:         page.Items,
			Total:        page.Total,
			Page:         page.Params.Page,
			PageSize:     page.Params.PageSize,
		})
	}
}
