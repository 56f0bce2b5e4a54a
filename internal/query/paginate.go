package query

// PageInfo describes where a page sits in the full sequence.
type PageInfo struct {
	TotalRecords int
	TotalPages   int
	Page         int
	Limit        int
}

// Page is one slice of a sequence plus its position.
type Page[T any] struct {
	PageInfo
	Items []T
}

// TotalPages returns ceil(total/limit), or 0 when there is nothing to page.
func TotalPages(total, limit int) int {
	if total <= 0 || limit <= 0 {
		return 0
	}
	return (total + limit - 1) / limit
}

// Paginate returns the requested page of items. A page past the end is empty, never an error.
func Paginate[T any](items []T, spec PageSpec) Page[T] {
	spec = spec.normalized()
	total := len(items)
	p := Page[T]{
		PageInfo: PageInfo{
			TotalRecords: total,
			TotalPages:   TotalPages(total, spec.Limit),
			Page:         spec.Page,
			Limit:        spec.Limit,
		},
		Items: []T{},
	}
	// compare page numbers rather than offsets so huge pages cannot overflow
	if spec.Page > p.TotalPages {
		return p
	}
	start := (spec.Page - 1) * spec.Limit
	end := min(start+spec.Limit, total)
	p.Items = items[start:end]
	return p
}
