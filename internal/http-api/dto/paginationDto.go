package dto

// Pagination defaults. Limit is capped so a single page can never sweep the
// whole table.
const (
	DefaultPage      = 1
	DefaultLimit     = 10
	MaxLimit         = 100
	DefaultSortBy    = "created_at"
	DefaultSortOrder = "desc"
)

// PaginationQuery is the raw page/limit/sort request as bound from the query
// string. Zero values mean "not provided".
type PaginationQuery struct {
	Page      int    `form:"page"`
	Limit     int    `form:"limit"`
	SortBy    string `form:"sort_by"`
	SortOrder string `form:"sort_order"`
}

// Pagination is the normalized offset/count/order triple every list query
// runs with.
type Pagination struct {
	Page      int
	Limit     int
	Skip      int
	SortBy    string
	SortOrder string
}

// Normalize applies defaults and computes skip = max((page-1)*limit, 0).
// Malformed numeric input is the binding layer's problem; this only defaults
// and clamps.
func (q PaginationQuery) Normalize() Pagination {
	p := Pagination{
		Page:      q.Page,
		Limit:     q.Limit,
		SortBy:    q.SortBy,
		SortOrder: q.SortOrder,
	}
	if p.Page < 1 {
		p.Page = DefaultPage
	}
	if p.Limit < 1 {
		p.Limit = DefaultLimit
	}
	if p.Limit > MaxLimit {
		p.Limit = MaxLimit
	}
	if p.SortBy == "" {
		p.SortBy = DefaultSortBy
	}
	if p.SortOrder != "asc" && p.SortOrder != "desc" {
		p.SortOrder = DefaultSortOrder
	}
	p.Skip = (p.Page - 1) * p.Limit
	if p.Skip < 0 {
		p.Skip = 0
	}
	return p
}

// OrderClause renders the sort as a GORM order expression.
func (p Pagination) OrderClause() string {
	return p.SortBy + " " + p.SortOrder
}

// Meta echoes the page parameters plus the independent total count.
type Meta struct {
	Page  int   `json:"page"`
	Limit int   `json:"limit"`
	Total int64 `json:"total"`
}

// Paginated is the uniform list envelope: {meta, data}.
type Paginated[T any] struct {
	Meta Meta `json:"meta"`
	Data []T  `json:"data"`
}

// NewPaginated builds the envelope. Total comes from a count query over the
// same predicate as the page, never from the returned page length.
func NewPaginated[T any](data []T, total int64, p Pagination) *Paginated[T] {
	if data == nil {
		data = []T{}
	}
	return &Paginated[T]{
		Meta: Meta{Page: p.Page, Limit: p.Limit, Total: total},
		Data: data,
	}
}
