package domain

// PaginationParams selects one page of the trip listing.
type PaginationParams struct {
	// Page is 1-indexed; the first page is 1, not 0.
	Page int
	// Limit is how many trips the page holds, clamped by NewPaginationParams.
	Limit int
}

// NewPaginationParams derives PaginationParams from the optional page and
// limit query values. Absent or sub-1 values fall back to page 1 with 20
// trips per page; the limit never exceeds 100 regardless of what the
// client asks for.
func NewPaginationParams(page, limit *int) PaginationParams {
	p := PaginationParams{Page: 1, Limit: 20}
	if page != nil && *page >= 1 {
		p.Page = *page
	}
	if limit != nil && *limit >= 1 {
		p.Limit = *limit
		if p.Limit > 100 {
			p.Limit = 100
		}
	}
	return p
}

// Offset converts the page number into the number of rows the query skips.
func (p PaginationParams) Offset() int {
	return (p.Page - 1) * p.Limit
}
