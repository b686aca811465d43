package service

import "fmt"

const (
	defaultPage  = 1
	defaultLimit = 10
)

// Pagination describes one result window over a filtered collection.
// PrevPage and NextPage are nil at the respective boundary.
type Pagination struct {
	Page       int  `json:"page"`
	Limit      int  `json:"limit"`
	TotalPages int  `json:"total_pages"`
	PrevPage   *int `json:"prev_page"`
	NextPage   *int `json:"next_page"`
}

// pageWindow validates page/limit and returns the offset of the window.
// Zero values fall back to the defaults; negatives are rejected rather than
// clamped so client bugs surface.
func pageWindow(page, limit int) (p, l, offset int, err error) {
	if page == 0 {
		page = defaultPage
	}
	if limit == 0 {
		limit = defaultLimit
	}
	if page < 1 {
		return 0, 0, 0, fmt.Errorf("%w: page must be >= 1", ErrValidation)
	}
	if limit < 1 {
		return 0, 0, 0, fmt.Errorf("%w: limit must be >= 1", ErrValidation)
	}
	if page > 1 {
		offset = (page - 1) * limit
	}
	return page, limit, offset, nil
}

// newPagination computes the window metadata over total matching rows.
// total_pages is ceil(total/limit); the count covers the same filter as the
// page itself, unpaginated.
func newPagination(page, limit, total int) Pagination {
	pg := Pagination{
		Page:       page,
		Limit:      limit,
		TotalPages: (total + limit - 1) / limit,
	}
	if page > 1 {
		prev := page - 1
		pg.PrevPage = &prev
	}
	offset := (page - 1) * limit
	if offset+limit < total {
		next := page + 1
		pg.NextPage = &next
	}
	return pg
}
