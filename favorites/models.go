// Package favorites manages bookmarked universities.
// Favorites are global (not scoped to a user); every route requires a valid bearer token.
package favorites

import (
	"time"

	"github.com/user/unidirectory-go/universities"
)

// Favorite links to exactly one University. University is populated on list.
type Favorite struct {
	ID           int                      `json:"id" example:"5"`
	UniversityID int                      `json:"universityId" example:"123"`
	CreatedAt    time.Time                `json:"createdAt"`
	University   *universities.University `json:"university,omitempty"`
}

// CreateRequest is the body of POST /api/favorites.
type CreateRequest struct {
	UniversityID int `json:"universityId" validate:"required,gt=0" example:"123"`
}

// ListResponse is the body of GET /api/favorites.
type ListResponse struct {
	StatusCode int        `json:"statusCode" example:"200"`
	Data       []Favorite `json:"data"`
	Total      int64      `json:"total" example:"1"`
	Page       int        `json:"page" example:"1"`
	PageSize   int        `json:"pageSize" example:"10"`
}

// ItemResponse is the body of POST and DELETE /api/favorites.
type ItemResponse struct {
	StatusCode int       `json:"statusCode" example:"201"`
	Data       *Favorite `json:"data"`
}
