package pagination

import (
	"github.com/gofiber/fiber/v2"
)

const (
	// DefaultLimit applies when the client sends no limit query parameter.
	DefaultLimit = 25
	// MaxLimit caps page size; application and notification lists can grow
	// large for busy agents, so anything above this is clamped.
	MaxLimit = 50
)

// Params holds the page window requested by the client.
type Params struct {
	Page   int `json:"page"`
	Limit  int `json:"limit"`
	Offset int `json:"-"`
}

// Meta describes where a page sits within the full result set.
type Meta struct {
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"total_pages"`
	HasNext    bool  `json:"has_next"`
	HasPrev    bool  `json:"has_prev"`
}

// Response pairs a page of rows with its metadata.
type Response struct {
	Data interface{} `json:"data"`
	Meta *Meta       `json:"meta"`
}

// GetParams reads page and limit from the query string, clamping both
// to sane bounds. Invalid or missing values fall back to page 1 with
// the default limit.
func GetParams(c *fiber.Ctx) *Params {
	page := c.QueryInt("page", 1)
	if page < 1 {
		page = 1
	}

	limit := c.QueryInt("limit", DefaultLimit)
	switch {
	case limit < 1:
		limit = DefaultLimit
	case limit > MaxLimit:
		limit = MaxLimit
	}

	return &Params{
		Page:   page,
		Limit:  limit,
		Offset: (page - 1) * limit,
	}
}

// GetMeta derives page metadata from the requested window and the total
// row count reported by the repository.
func GetMeta(params *Params, total int64) *Meta {
	pages := int((total + int64(params.Limit) - 1) / int64(params.Limit))

	return &Meta{
		Page:       params.Page,
		Limit:      params.Limit,
		Total:      total,
		TotalPages: pages,
		HasNext:    params.Page < pages,
		HasPrev:    params.Page > 1 && total > 0,
	}
}

// NewResponse wraps one page of rows together with its metadata.
func NewResponse(data interface{}, params *Params, total int64) *Response {
	return &Response{
		Data: data,
		Meta: GetMeta(params, total),
	}
}
