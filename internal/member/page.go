package member

// DefaultPageSize is the number of rows per page when none is configured.
const DefaultPageSize = 10

// PageCount returns ceil(total/size), never less than 1. A non-positive size
// falls back to DefaultPageSize.
func PageCount(total, size int) int {
	if size <= 0 {
		size = DefaultPageSize
	}
	if total <= 0 {
		return 1
	}
	return (total + size - 1) / size
}

// Paginate returns the [(page-1)*size, page*size) slice of records, clamped
// to the available length. Pages below 1 read as page 1; a page past the end
// yields an empty window. The result shares no storage with records.
func Paginate(records []Record, page, size int) []Record {
	if size <= 0 {
		size = DefaultPageSize
	}
	if page < 1 {
		page = 1
	}
	start := (page - 1) * size
	if start >= len(records) {
		return []Record{}
	}
	end := min(start+size, len(records))
	out := make([]Record, end-start)
	copy(out, records[start:end])
	return out
}

// Window is the pagination position over a filtered sequence of Total rows.
// Methods return a new Window with Page clamped into [1, Count()].
type Window struct {
	Page  int
	Size  int
	Total int
}

// NewWindow starts at page 1.
func NewWindow(size, total int) Window {
	if size <= 0 {
		size = DefaultPageSize
	}
	return Window{Page: 1, Size: size, Total: max(total, 0)}.Clamp()
}

func (w Window) Count() int { return PageCount(w.Total, w.Size) }

// Clamp pulls Page back into range.
func (w Window) Clamp() Window {
	if w.Size <= 0 {
		w.Size = DefaultPageSize
	}
	w.Page = clampPage(w.Page, w.Count())
	return w
}

// Resize records a new filtered length and clamps the page to the new count.
func (w Window) Resize(total int) Window {
	w.Total = max(total, 0)
	return w.Clamp()
}

func (w Window) First() Window { return w.Goto(1) }

func (w Window) Last() Window { return w.Goto(w.Count()) }

// Prev is a no-op on page 1.
func (w Window) Prev() Window { return w.Goto(w.Page - 1) }

// Next is a no-op on the last page.
func (w Window) Next() Window { return w.Goto(w.Page + 1) }

func (w Window) Goto(page int) Window {
	w.Page = page
	return w.Clamp()
}

func (w Window) HasPrev() bool { return w.Page > 1 }

func (w Window) HasNext() bool { return w.Page < w.Count() }

// Bounds returns the half-open index range of the current page.
func (w Window) Bounds() (start, end int) {
	start = min((w.Page-1)*w.Size, w.Total)
	end = min(start+w.Size, w.Total)
	return start, end
}

// Pages lists the page numbers 1..Count().
func (w Window) Pages() []int {
	n := w.Count()
	out := make([]int, n)
	for i := range out {
		out[i] = i + 1
	}
	return out
}

func clampPage(page, count int) int {
	if count < 1 {
		count = 1
	}
	if page < 1 {
		return 1
	}
	if page > count {
		return count
	}
	return page
}
