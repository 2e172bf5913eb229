package pagination

// DefaultPageSize is the number of games shown per page.
const DefaultPageSize = 6

// Paginator tracks a zero-based page index over a list whose length is supplied by
// the caller on every call. It is not safe for concurrent use; owners guard it.
type Paginator struct {
	page int
	size int
}

// New returns a paginator at page 0. Non-positive sizes fall back to DefaultPageSize.
func New(size int) *Paginator {
	if size <= 0 {
		size = DefaultPageSize
	}
	return &Paginator{size: size}
}

// Page is the current zero-based page index.
func (p *Paginator) Page() int {
	return p.page
}

// Size is the configured page size.
func (p *Paginator) Size() int {
	return p.size
}

// PageCount is ceil(total/size), or 0 for an empty list.
func (p *Paginator) PageCount(total int) int {
	if total <= 0 {
		return 0
	}
	return (total + p.size - 1) / p.size
}

// CanNext reports whether another page follows the current one.
func (p *Paginator) CanNext(total int) bool {
	return (p.page+1)*p.size < total
}

// CanPrevious reports whether a page precedes the current one.
func (p *Paginator) CanPrevious() bool {
	return p.page > 0
}

// Next advances one page if one exists and reports whether it moved.
func (p *Paginator) Next(total int) bool {
	if !p.CanNext(total) {
		return false
	}
	p.page++
	return true
}

// Previous retreats one page if possible and reports whether it moved.
func (p *Paginator) Previous() bool {
	if !p.CanPrevious() {
		return false
	}
	p.page--
	return true
}

// Reset returns to the first page.
func (p *Paginator) Reset() {
	p.page = 0
}

// Clamp pulls the page index back into [0, max(0, PageCount(total)-1)].
func (p *Paginator) Clamp(total int) {
	last := p.PageCount(total) - 1
	if last < 0 {
		last = 0
	}
	if p.page > last {
		p.page = last
	}
	if p.page < 0 {
		p.page = 0
	}
}

// Bounds returns the half-open index range of the current page within total items.
func (p *Paginator) Bounds(total int) (start, end int) {
	start = p.page * p.size
	if start > total {
		start = total
	}
	end = start + p.size
	if end > total {
		end = total
	}
	return start, end
}

// Slice returns the current page of items. The result aliases items.
func Slice[T any](p *Paginator, items []T) []T {
	start, end := p.Bounds(len(items))
	return items[start:end]
}
