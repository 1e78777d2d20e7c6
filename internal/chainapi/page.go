package chainapi

// Page is the generic paginated wrapper returned by every history accessor.
type Page[T any] struct {
	Items      []T `json:"results"`
	Page       int `json:"page"`
	PageSize   int `json:"page_size"`
	TotalItems int `json:"total_items"`
	TotalPages int `json:"total_pages"`
}

// Paginate slices entries into one page. Pure and idempotent: size is
// clamped to >=1, the page into [1, totalPages], and totalPages is never 0.
func Paginate[T any](entries []T, page int, size int) Page[T] {
	if size < 1 {
		size = 1
	}
	totalItems := len(entries)
	totalPages := (totalItems + size - 1) / size
	if totalPages < 1 {
		totalPages = 1
	}
	if page < 1 {
		page = 1
	}
	if page > totalPages {
		page = totalPages
	}
	from := (page - 1) * size
	to := from + size
	if from > totalItems {
		from = totalItems
	}
	if to > totalItems {
		to = totalItems
	}
	items := make([]T, to-from)
	copy(items, entries[from:to])
	return Page[T]{
		Items:      items,
		Page:       page,
		PageSize:   size,
		TotalItems: totalItems,
		TotalPages: totalPages,
	}
}
