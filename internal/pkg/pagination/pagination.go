// Package pagination computes page windows the way a forgiving paginator does:
// bad or out-of-range page numbers fall back to the nearest valid page instead of failing.
package pagination

import "strconv"

type Page[T any] struct {
	Items      []T  `json:"items"`
	Number     int  `json:"number"`
	PageSize   int  `json:"page_size"`
	TotalItems int  `json:"total_items"`
	NumPages   int  `json:"num_pages"`
	HasNext    bool `json:"has_next"`
	HasPrev    bool `json:"has_previous"`
}

// ParseNumber turns a raw query value into a page number. Anything that is not an integer
// means the first page. Range clamping happens in Clamp once the total is known.
func ParseNumber(raw string) int {
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 1
	}
	return n
}

// NumPages is never less than one: an empty result still has one (empty) page.
func NumPages(total, pageSize int) int {
	if pageSize <= 0 || total <= 0 {
		return 1
	}
	return (total + pageSize - 1) / pageSize
}

// Clamp maps number into [1, NumPages(total, pageSize)].
func Clamp(number, total, pageSize int) int {
	last := NumPages(total, pageSize)
	if number < 1 {
		return 1
	}
	if number > last {
		return last
	}
	return number
}

func Offset(number, pageSize int) int {
	if number < 1 {
		return 0
	}
	return (number - 1) * pageSize
}

func New[T any](items []T, number, pageSize, total int) Page[T] {
	if items == nil {
		items = []T{}
	}
	numPages := NumPages(total, pageSize)
	return Page[T]{
		Items:      items,
		Number:     number,
		PageSize:   pageSize,
		TotalItems: total,
		NumPages:   numPages,
		HasNext:    number < numPages,
		HasPrev:    number > 1,
	}
}
