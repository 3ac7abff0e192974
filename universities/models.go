// Package universities serves the read-only university directory: a filtered, paginated
// search backed by PostgreSQL, optionally fronted by a Redis read-through cache.
package universities

// University is a directory entry. Entries are seeded by the importer and never modified by the API.
type University struct {
	ID            int     `json:"id" example:"1"`
	Name          string  `json:"name" example:"Harvard University"`
	Country       string  `json:"country" example:"United States"`
	StateProvince *string `json:"stateProvince"`
	Website       string  `json:"website" example:"http://www.harvard.edu/"`
}

// SearchResponse is the body of GET /api/universities.
type SearchResponse struct {
	StatusCode int `json:"statusCode" example:"200"`
	// ResponseTime is the wall-clock duration of the store calls, in milliseconds.
	ResponseTime int64        `json:"responseTime" example:"12"`
	Data         []University `json:"data"`
	Total        int64        `json:"total" example:"2"`
	Page         int          `json:"page" example:"1"`
	PageSize     int          `json:"pageSize" example:"10"`
}
