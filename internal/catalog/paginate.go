package catalog

// DefaultPageSize is the number of cards shown per catalog page.
const DefaultPageSize = 6

// stripWindow is the maximum number of numeric entries in a page strip.
const stripWindow = 5

// PageMarker is one entry of the page-number strip: either a page number
// or an ellipsis gap.
type PageMarker struct {
	Page     int  `json:"page,omitempty"`
	Ellipsis bool `json:"ellipsis,omitempty"`
}

// Page is one slice of an ordered list plus the data needed to render
// pagination controls.
type Page[T any] struct {
	Items       []T          `json:"items"`
	CurrentPage int          `json:"page"`
	PageSize    int          `json:"page_size"`
	TotalItems  int          `json:"total_items"`
	TotalPages  int          `json:"total_pages"`
	Strip       []PageMarker `json:"strip"`
}

// TotalPages returns max(1, ceil(total/pageSize)).
func TotalPages(total, pageSize int) int {
	if pageSize < 1 {
		pageSize = DefaultPageSize
	}
	pages := (total + pageSize - 1) / pageSize
	return max(1, pages)
}

// Paginate returns the currentPage-th window of items. A page beyond the
// end (or below 1) yields no items; it never panics.
func Paginate[T any](items []T, pageSize, currentPage int) Page[T] {
	if pageSize < 1 {
		pageSize = DefaultPageSize
	}
	total := TotalPages(len(items), pageSize)

	// Pages outside [1, total] are empty; checking first keeps the
	// offsets below from overflowing.
	window := []T{}
	if currentPage >= 1 && currentPage <= total {
		start := min((currentPage-1)*pageSize, len(items))
		end := min(start+pageSize, len(items))
		window = append(make([]T, 0, end-start), items[start:end]...)
	}

	return Page[T]{
		Items:       window,
		CurrentPage: currentPage,
		PageSize:    pageSize,
		TotalItems:  len(items),
		TotalPages:  total,
		Strip:       PageStrip(currentPage, total),
	}
}

// PageStrip builds the page-number strip shown under the catalog grid.
//
//	total <= 5         1 2 3 4 5
//	current <= 3       1 2 3 4 … last
//	current >= last-2  1 … last-3 last-2 last-1 last
//	otherwise          1 … c-1 c c+1 … last
func PageStrip(current, total int) []PageMarker {
	if total <= stripWindow {
		return pages(1, total)
	}

	gap := PageMarker{Ellipsis: true}
	switch {
	case current <= 3:
		return append(pages(1, 4), gap, PageMarker{Page: total})
	case current >= total-2:
		return append([]PageMarker{{Page: 1}, gap}, pages(total-3, total)...)
	default:
		strip := append([]PageMarker{{Page: 1}, gap}, pages(current-1, current+1)...)
		return append(strip, gap, PageMarker{Page: total})
	}
}

func pages(from, to int) []PageMarker {
	out := make([]PageMarker, 0, to-from+1)
	for p := from; p <= to; p++ {
		out = append(out, PageMarker{Page: p})
	}
	return out
}

// PaginationState tracks the page a caller is viewing.
type PaginationState struct {
	Page     int
	PageSize int
}

// NewPaginationState returns a state on page 1.
func NewPaginationState(pageSize int) *PaginationState {
	if pageSize < 1 {
		pageSize = DefaultPageSize
	}
	return &PaginationState{Page: 1, PageSize: pageSize}
}

// Reset returns to page 1. Call it whenever the selection, sort key or
// source list changes.
func (s *PaginationState) Reset() {
	s.Page = 1
}

// GoTo moves to page and clamps it against totalItems.
func (s *PaginationState) GoTo(page, totalItems int) {
	s.Page = page
	s.Clamp(totalItems)
}

// Clamp keeps Page within [1, TotalPages(totalItems)].
func (s *PaginationState) Clamp(totalItems int) {
	last := TotalPages(totalItems, s.PageSize)
	s.Page = min(max(1, s.Page), last)
}
