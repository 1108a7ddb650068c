package pagination

// Params represents input parameters for page-based pagination.
type Params struct {
	Page int `form:"page" json:"page"`
}

// Validate ensures pagination parameters are within valid ranges
func (p *Params) Validate() {
	if p.Page < 1 {
		p.Page = 1
	}
}

// Page represents one fetched page of results. The backend does not report a
// total count; a page shorter than the page size signals the last page.
type Page[T any] struct {
	Items   []T  `json:"items"`
	Page    int  `json:"page"`
	HasNext bool `json:"has_next"`
	HasPrev bool `json:"has_prev"`
}

// NewPage creates a page result, deriving HasNext from the page length.
func NewPage[T any](items []T, page, pageSize int) Page[T] {
	if items == nil {
		items = []T{}
	}
	return Page[T]{
		Items:   items,
		Page:    page,
		HasNext: len(items) == pageSize,
		HasPrev: page > 1,
	}
}
