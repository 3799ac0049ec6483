package domain

const (
	DefaultPageLimit = 10
	MaxPageLimit     = 100
)

type PageRequest struct {
	Page  int `form:"page"`
	Limit int `form:"limit"`
	// All is set when the caller asked for neither page nor limit; the
	// whole result set comes back as a single page.
	All bool `form:"-"`
}

// Normalize clamps page to at least 1 and limit to [1, MaxPageLimit]. With
// neither page nor limit given the request becomes unbounded.
func (p PageRequest) Normalize() PageRequest {
	if p.All || (p.Page == 0 && p.Limit == 0) {
		return PageRequest{Page: 1, All: true}
	}
	if p.Page < 1 {
		p.Page = 1
	}
	if p.Limit < 1 {
		p.Limit = DefaultPageLimit
	}
	if p.Limit > MaxPageLimit {
		p.Limit = MaxPageLimit
	}
	return p
}

func (p PageRequest) Offset() int {
	if p.All {
		return 0
	}
	return (p.Page - 1) * p.Limit
}

// Bounded reports whether the repositories should apply offset and limit.
func (p PageRequest) Bounded() bool {
	return !p.All && p.Limit > 0
}

type PageMeta struct {
	Page      int   `json:"page"`
	Limit     int   `json:"limit"`
	Total     int64 `json:"total"`
	TotalPage int   `json:"totalPage"`
}

// Page is the {data, meta} shape list endpoints return.
type Page[T any] struct {
	Data []T      `json:"data"`
	Meta PageMeta `json:"meta"`
}

func NewPage[T any](items []T, total int64, req PageRequest) *Page[T] {
	if items == nil {
		items = []T{}
	}
	req = req.Normalize()
	if req.All {
		return &Page[T]{
			Data: items,
			Meta: PageMeta{Page: 1, Limit: len(items), Total: total, TotalPage: 1},
		}
	}
	totalPage := int((total + int64(req.Limit) - 1) / int64(req.Limit))
	if totalPage < 1 {
		totalPage = 1
	}
	return &Page[T]{
		Data: items,
		Meta: PageMeta{
			Page:      req.Page,
			Limit:     req.Limit,
			Total:     total,
			TotalPage: totalPage,
		},
	}
}

type CourseSort string

const (
	SortNewest    CourseSort = "newest"
	SortOldest    CourseSort = "oldest"
	SortPriceAsc  CourseSort = "price"
	SortPriceDesc CourseSort = "-price"
)

type CourseFilter struct {
	PageRequest
	Search   string     `form:"search"`
	Category string     `form:"category"`
	Sort     CourseSort `form:"sort"`
}

func (f CourseFilter) Normalize() CourseFilter {
	f.PageRequest = f.PageRequest.Normalize()
	switch f.Sort {
	case SortOldest, SortPriceAsc, SortPriceDesc:
	default:
		f.Sort = SortNewest
	}
	return f
}

type UserFilter struct {
	PageRequest
	Search string `form:"search"`
	Role   Role   `form:"role"`
}
