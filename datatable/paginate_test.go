package datatable

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPageCount(t *testing.T) {
	assert.Equal(t, 1, PageCount(0, 10))
	assert.Equal(t, 1, PageCount(10, 10))
	assert.Equal(t, 2, PageCount(11, 10))
	assert.Equal(t, 7, PageCount(7, 0))
}

func TestPaginateScenario(t *testing.T) {
	rows := []Row{
		NewRow("1", map[string]interface{}{"name": "Bob", "age": 30}),
		NewRow("2", map[string]interface{}{"name": "Ann", "age": 25}),
	}
	page := Paginate(rows, PaginationState{CurrentPage: 1, ItemsPerPage: 1})
	assert.Equal(t, []RowID{"1"}, rowIDs(page.Items))
	assert.Equal(t, 2, page.PageCount)
	assert.Equal(t, 2, page.TotalItems())
}

func TestPaginateCoversAllRows(t *testing.T) {
	rows := numberedStore(t, 23).All()
	for per := 1; per <= 25; per++ {
		var joined []RowID
		pages := PageCount(len(rows), per)
		for p := 1; p <= pages; p++ {
			page := Paginate(rows, PaginationState{CurrentPage: p, ItemsPerPage: per})
			require.NotEmpty(t, page.Items, "per=%d page=%d", per, p)
			joined = append(joined, rowIDs(page.Items)...)
		}
		assert.Equal(t, rowIDs(rows), joined, "per=%d", per)
	}
}

func TestPaginateClampsPastTheEnd(t *testing.T) {
	rows := numberedStore(t, 12).All()

	page := Paginate(rows, PaginationState{CurrentPage: 9, ItemsPerPage: 5})
	assert.Equal(t, 3, page.State.CurrentPage)
	assert.Equal(t, []RowID{"11", "12"}, rowIDs(page.Items))

	page = Paginate(rows[:4], PaginationState{CurrentPage: 3, ItemsPerPage: 5})
	assert.Equal(t, 1, page.State.CurrentPage)
	assert.Len(t, page.Items, 4)

	page = Paginate(nil, PaginationState{CurrentPage: 4, ItemsPerPage: 5})
	assert.Equal(t, 1, page.State.CurrentPage)
	assert.Equal(t, 1, page.PageCount)
	assert.Empty(t, page.Items)
	assert.Zero(t, page.FirstItem())
	assert.Zero(t, page.LastItem())
}

func TestPageRange(t *testing.T) {
	rows := numberedStore(t, 12).All()
	page := Paginate(rows, PaginationState{CurrentPage: 3, ItemsPerPage: 5})
	assert.Equal(t, 11, page.FirstItem())
	assert.Equal(t, 12, page.LastItem())
}

func TestWithItemsPerPageKeepsFirstItem(t *testing.T) {
	tests := []struct {
		name     string
		from     PaginationState
		per      int
		wantPage int
	}{
		{"shrink", PaginationState{CurrentPage: 3, ItemsPerPage: 10, TotalItems: 95}, 5, 5},
		{"grow", PaginationState{CurrentPage: 3, ItemsPerPage: 10, TotalItems: 95}, 25, 1},
		{"grow mid", PaginationState{CurrentPage: 6, ItemsPerPage: 10, TotalItems: 95}, 25, 3},
		{"clamped to last", PaginationState{CurrentPage: 10, ItemsPerPage: 10, TotalItems: 95}, 50, 2},
		{"empty", PaginationState{CurrentPage: 1, ItemsPerPage: 10}, 3, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.from.WithItemsPerPage(tt.per)
			assert.Equal(t, tt.per, got.ItemsPerPage)
			assert.Equal(t, tt.wantPage, got.CurrentPage)
		})
	}
}

func TestClampRaisesItemsPerPage(t *testing.T) {
	s := PaginationState{CurrentPage: 0, ItemsPerPage: 0, TotalItems: 3}.Clamp()
	assert.Equal(t, PaginationState{CurrentPage: 1, ItemsPerPage: 1, TotalItems: 3}, s)
}

func pageNumbers(buttons []PageButton) []int {
	out := make([]int, len(buttons))
	for i, b := range buttons {
		if !b.Ellipsis {
			out[i] = b.Page
		}
	}
	return out
}

func TestPageButtons(t *testing.T) {
	tests := []struct {
		name                   string
		current, count, window int
		want                   []int // 0 marks an ellipsis
	}{
		{"start", 1, 10, 5, []int{1, 2, 3, 4, 5, 0}},
		{"middle", 5, 10, 5, []int{0, 3, 4, 5, 6, 7, 0}},
		{"end", 10, 10, 5, []int{0, 6, 7, 8, 9, 10}},
		{"near end", 9, 10, 5, []int{0, 6, 7, 8, 9, 10}},
		{"fewer pages than window", 2, 3, 5, []int{1, 2, 3}},
		{"single page", 1, 1, 5, []int{1}},
		{"even window", 5, 10, 4, []int{0, 3, 4, 5, 6, 0}},
		{"current clamped", 42, 10, 5, []int{0, 6, 7, 8, 9, 10}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buttons := PageButtons(tt.current, tt.count, tt.window)
			assert.Equal(t, tt.want, pageNumbers(buttons))
		})
	}
}

func TestPageButtonsMarksCurrent(t *testing.T) {
	for _, b := range PageButtons(4, 10, 5) {
		assert.Equal(t, b.Page == 4, b.Current)
	}
}
