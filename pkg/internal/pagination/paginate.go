package pagination

import "github.com/spf13/viper"

const DefaultPageSize = 10

// PageSize reads the configured feed page size, falling back to the default.
func PageSize() int {
	if size := viper.GetInt("pagination.page_size"); size > 0 {
		return size
	}
	return DefaultPageSize
}

type Page[T any] struct {
	Items     []T  `json:"items"`
	Number    int  `json:"number"`
	PageCount int  `json:"page_count"`
	Total     int  `json:"total"`
	HasNext   bool `json:"has_next"`
	HasPrev   bool `json:"has_prev"`
}

// Paginate slices an ordered result set into fixed-size pages. Out-of-range
// or malformed page numbers clamp to the nearest valid page instead of
// failing, so a stale link never breaks navigation.
func Paginate[T any](items []T, size int, requested int) Page[T] {
	if size < 1 {
		size = 1
	}

	total := len(items)
	pageCount := (total + size - 1) / size
	if pageCount < 1 {
		pageCount = 1
	}

	number := requested
	if number < 1 {
		number = 1
	} else if number > pageCount {
		number = pageCount
	}

	start := (number - 1) * size
	end := start + size
	if start > total {
		start = total
	}
	if end > total {
		end = total
	}

	return Page[T]{
		Items:     items[start:end],
		Number:    number,
		PageCount: pageCount,
		Total:     total,
		HasNext:   number < pageCount,
		HasPrev:   number > 1,
	}
}
