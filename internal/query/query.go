// Package query turns raw list-endpoint parameters into a structured
// filter/sort/pagination descriptor shared by the storage layer.
package query

import (
	"math"
	"net/url"
	"strconv"
	"strings"
	"time"

	"budgetbook/internal/models"
)

const (
	// DefaultPage is used when no page parameter is supplied.
	DefaultPage = 1
	// DefaultLimit is used when no limit parameter is supplied. There is no
	// upper bound on an explicit limit.
	DefaultLimit = 10

	dateLayout = "2006-01-02"
)

// ListQuery is the normalized form of a list request.
type ListQuery struct {
	SortField string
	SortDir   string
	Keyword   string
	Type      string
	Category  string
	StartDate *time.Time
	EndDate   *time.Time
	Page      int
	Limit     int
}

// ParseListQuery reads the recognized parameters out of a URL query.
// A sort value without a comma keeps the field and leaves the direction
// empty; dates must be YYYY-MM-DD and the end date is inclusive.
func ParseListQuery(values url.Values) ListQuery {
	q := ListQuery{
		Keyword:  strings.TrimSpace(values.Get("keyword")),
		Type:     values.Get("type"),
		Category: values.Get("category"),
		Page:     DefaultPage,
		Limit:    DefaultLimit,
	}

	if sort := values.Get("sort"); sort != "" {
		parts := strings.SplitN(sort, ",", 2)
		q.SortField = parts[0]
		if len(parts) == 2 {
			q.SortDir = parts[1]
		}
	}

	if start := values.Get("startDate"); start != "" {
		if t, err := time.Parse(dateLayout, start); err == nil {
			q.StartDate = &t
		}
	}
	if end := values.Get("endDate"); end != "" {
		if t, err := time.Parse(dateLayout, end); err == nil {
			// Push to the last instant of the day so the bound is inclusive
			// for timestamps inside it.
			t = t.Add(24*time.Hour - time.Nanosecond)
			q.EndDate = &t
		}
	}

	if page, err := strconv.Atoi(values.Get("page")); err == nil && page > 0 {
		q.Page = page
	}
	if limit, err := strconv.Atoi(values.Get("limit")); err == nil && limit > 0 {
		q.Limit = limit
	}

	return q
}

// Skip is the number of rows before the requested page.
func (q ListQuery) Skip() int {
	return (q.Page - 1) * q.Limit
}

// Paginate derives the pagination envelope for a total row count.
func Paginate(q ListQuery, total int) models.Pagination {
	return models.Pagination{
		Page:      q.Page,
		Limit:     q.Limit,
		Total:     total,
		TotalPage: int(math.Ceil(float64(total) / float64(q.Limit))),
	}
}
