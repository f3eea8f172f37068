package utils

import (
	"fmt"
	"math"
	"net/http"
	"strconv"
)

// Upper bound on page size.
const maxLimit = 500

type PaginationParams struct {
	Page         int `json:"page"`
	Limit        int `json:"limit"`
	Offset       int `json:"offset"`
	TotalRecords int `json:"total_records"`
	TotalPages   int `json:"total_pages"`
}

// ExtractPagination reads page and limit from the query string. Present reports
// whether either was supplied; callers return unpaged results otherwise.
func ExtractPagination(r *http.Request) (params PaginationParams, present bool, err error) {
	params = PaginationParams{
		Page:  1,
		Limit: 10,
	}

	q := r.URL.Query()
	if p := q.Get("page"); p != "" {
		val, err := strconv.Atoi(p)
		if err != nil || val <= 0 {
			return PaginationParams{}, true, fmt.Errorf("invalid page parameter: %s", p)
		}
		params.Page = val
		present = true
	}
	if l := q.Get("limit"); l != "" {
		val, err := strconv.Atoi(l)
		if err != nil || val <= 0 {
			return PaginationParams{}, true, fmt.Errorf("invalid limit parameter: %s", l)
		}
		if val > maxLimit {
			val = maxLimit
		}
		params.Limit = val
		present = true
	}
	params.Offset = (params.Page - 1) * params.Limit
	return params, present, nil
}

func (p *PaginationParams) SetPaginationStats(totalRecords int) {
	p.TotalRecords = totalRecords
	if totalRecords > 0 {
		p.TotalPages = int(math.Ceil(float64(totalRecords) / float64(p.Limit)))
	} else {
		p.TotalPages = 0
	}
}

// Bounds returns the [start, end) slice window for a list of n items.
func (p PaginationParams) Bounds(n int) (start, end int) {
	start = p.Offset
	if start > n {
		start = n
	}
	end = start + p.Limit
	if end > n {
		end = n
	}
	return start, end
}
