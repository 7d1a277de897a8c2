package query

// DefaultPageSize applies when a caller passes a non-positive page size.
const DefaultPageSize = 10

// Page is one window over a filtered sequence.
type Page[T any] struct {
	Items      []T `json:"items"`
	PageNumber int `json:"page_number"`
	PageSize   int `json:"page_size"`
	TotalItems int `json:"total_items"`
	TotalPages int `json:"total_pages"`
}

// Paginate slices items into the requested page. Pages are 1-based;
// out-of-range inputs are clamped to safe values and a page past the end
// yields an empty item list, never an error.
func Paginate[T any](items []T, pageNumber, pageSize int) Page[T] {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	if pageNumber < 1 {
		pageNumber = 1
	}

	total := len(items)
	totalPages := (total + pageSize - 1) / pageSize

	start := (pageNumber - 1) * pageSize
	if start >= total {
		return Page[T]{
			Items:      []T{},
			PageNumber: pageNumber,
			PageSize:   pageSize,
			TotalItems: total,
			TotalPages: totalPages,
		}
	}
	end := min(start+pageSize, total)

	return Page[T]{
		Items:      items[start:end],
		PageNumber: pageNumber,
		PageSize:   pageSize,
		TotalItems: total,
		TotalPages: totalPages,
	}
}
