package datatable

// DefaultItemsPerPage is the page size used by DefaultConfig.
const DefaultItemsPerPage = 10

// DefaultPageWindow is the number of page buttons shown by DefaultConfig.
const DefaultPageWindow = 5

// PaginationState locates the current page of a view.
//
// CurrentPage and ItemsPerPage are at least 1; CurrentPage never exceeds the
// page count, and is 1 when TotalItems is 0. Clamp restores these invariants.
type PaginationState struct {
	CurrentPage  int
	ItemsPerPage int
	TotalItems   int
}

// PageCount returns the number of pages needed for total items, at least 1.
func PageCount(total, itemsPerPage int) int {
	if itemsPerPage < 1 {
		itemsPerPage = 1
	}
	if total <= 0 {
		return 1
	}
	return (total + itemsPerPage - 1) / itemsPerPage
}

// PageCount returns the number of pages of the state.
func (s PaginationState) PageCount() int {
	return PageCount(s.TotalItems, s.ItemsPerPage)
}

// Clamp returns the state with its invariants restored.
func (s PaginationState) Clamp() PaginationState {
	if s.ItemsPerPage < 1 {
		s.ItemsPerPage = 1
	}
	if s.TotalItems < 0 {
		s.TotalItems = 0
	}
	s.CurrentPage = clamp(s.CurrentPage, 1, s.PageCount())
	return s
}

// WithTotal returns the state for a view of total items, clamping the page.
func (s PaginationState) WithTotal(total int) PaginationState {
	s.TotalItems = total
	return s.Clamp()
}

// WithItemsPerPage changes the page size while keeping the first item of the
// current page visible.
func (s PaginationState) WithItemsPerPage(n int) PaginationState {
	s = s.Clamp()
	if n < 1 {
		n = 1
	}
	first := s.Offset()
	s.ItemsPerPage = n
	s.CurrentPage = first/n + 1
	return s.Clamp()
}

// Offset returns the index of the first item on the current page.
func (s PaginationState) Offset() int {
	if s.CurrentPage < 1 || s.ItemsPerPage < 1 {
		return 0
	}
	return (s.CurrentPage - 1) * s.ItemsPerPage
}

// Page is one page of a view.
type Page struct {
	// Items holds the rows of the current page.
	Items []Row
	// PageCount is the number of pages, at least 1.
	PageCount int
	// State is the clamped pagination state, with TotalItems set.
	State PaginationState
}

// TotalItems returns the number of rows in the whole view.
func (p Page) TotalItems() int {
	return p.State.TotalItems
}

// FirstItem returns the 1-based position of the first row on the page, or 0
// for an empty view.
func (p Page) FirstItem() int {
	if len(p.Items) == 0 {
		return 0
	}
	return p.State.Offset() + 1
}

// LastItem returns the 1-based position of the last row on the page, or 0
// for an empty view.
func (p Page) LastItem() int {
	if len(p.Items) == 0 {
		return 0
	}
	return p.State.Offset() + len(p.Items)
}

// IDs returns the ids of the rows on the page.
func (p Page) IDs() []RowID {
	ids := make([]RowID, len(p.Items))
	for i, r := range p.Items {
		ids[i] = r.ID
	}
	return ids
}

// Paginate slices rows into the page described by state. A current page past
// the end is clamped to the last page.
func Paginate(rows []Row, state PaginationState) Page {
	st := state.WithTotal(len(rows))
	start := st.Offset()
	end := min(start+st.ItemsPerPage, len(rows))
	if start > end {
		start = end
	}
	return Page{
		Items:     rows[start:end:end],
		PageCount: st.PageCount(),
		State:     st,
	}
}

// PageButton is one entry of a pager: either a page number or a gap marker.
type PageButton struct {
	Page     int
	Ellipsis bool
	Current  bool
}

// PageButtons returns at most window page numbers centred on current, clamped
// to the ends, with an ellipsis marker before or after the window when it does
// not reach the first or the last page.
func PageButtons(current, pageCount, window int) []PageButton {
	if pageCount < 1 {
		pageCount = 1
	}
	if window < 1 {
		window = DefaultPageWindow
	}
	current = clamp(current, 1, pageCount)
	start := clamp(current-window/2, 1, max(1, pageCount-window+1))
	end := min(start+window-1, pageCount)

	buttons := make([]PageButton, 0, window+2)
	if start > 1 {
		buttons = append(buttons, PageButton{Ellipsis: true})
	}
	for p := start; p <= end; p++ {
		buttons = append(buttons, PageButton{Page: p, Current: p == current})
	}
	if end < pageCount {
		buttons = append(buttons, PageButton{Ellipsis: true})
	}
	return buttons
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
