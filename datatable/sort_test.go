package datatable

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSortRowsScenario(t *testing.T) {
	rows := []Row{
		NewRow("1", map[string]interface{}{"name": "Bob", "age": 30}),
		NewRow("2", map[string]interface{}{"name": "Ann", "age": 25}),
	}
	got := SortRows(rows, SortState{Key: "age", Direction: SortAscending})
	assert.Equal(t, []RowID{"2", "1"}, rowIDs(got))
}

func TestSortRowsIsStable(t *testing.T) {
	rows := samplePeople()

	asc := SortRows(rows, SortState{Key: "age", Direction: SortAscending})
	assert.Equal(t, []RowID{"2", "5", "1", "3", "4"}, rowIDs(asc))

	// Descending negates the comparator: ties keep input order rather than
	// the reverse of the ascending result.
	desc := SortRows(rows, SortState{Key: "age", Direction: SortDescending})
	assert.Equal(t, []RowID{"4", "1", "3", "2", "5"}, rowIDs(desc))
}

func TestSortRowsDoesNotMutateInput(t *testing.T) {
	rows := samplePeople()
	_ = SortRows(rows, SortState{Key: "name", Direction: SortDescending})
	assert.Equal(t, []RowID{"1", "2", "3", "4", "5"}, rowIDs(rows))
}

func TestSortRowsUnsortedPassThrough(t *testing.T) {
	rows := samplePeople()
	assert.Equal(t, rows, SortRows(rows, SortState{}))
	assert.Equal(t, rows, SortRows(rows, SortState{Key: "age"}))
}

func TestSortRowsMissingKeyKeepsOrder(t *testing.T) {
	rows := samplePeople()
	got := SortRows(rows, SortState{Key: "note", Direction: SortDescending})
	assert.Equal(t, rowIDs(rows), rowIDs(got))
}

func TestCompareValues(t *testing.T) {
	assert.Negative(t, CompareValues(NumberValue(9), NumberValue(10)))
	assert.Positive(t, CompareValues(TextValue("9"), TextValue("10")))
	assert.Zero(t, CompareValues(NumberValue(2), NumberValue(2)))
	// Mixed kinds: nulls, then numbers, then text.
	assert.Negative(t, CompareValues(NumberValue(9), TextValue("10")))
	assert.Negative(t, CompareValues(NullValue(), TextValue("a")))
	assert.Negative(t, CompareValues(NullValue(), NumberValue(-1)))
	assert.Zero(t, CompareValues(NullValue(), NullValue()))
}

func TestSortRowsMixedKindsIsConsistent(t *testing.T) {
	rows := []Row{
		NewRow("1", map[string]interface{}{"v": 2}),
		NewRow("2", map[string]interface{}{"v": "10"}),
		NewRow("3", map[string]interface{}{"v": 10}),
		NewRow("4", map[string]interface{}{"v": nil}),
	}
	got := SortRows(rows, SortState{Key: "v", Direction: SortAscending})
	assert.Equal(t, []RowID{"4", "1", "3", "2"}, rowIDs(got))

	got = SortRows(rows, SortState{Key: "v", Direction: SortDescending})
	assert.Equal(t, []RowID{"2", "3", "1", "4"}, rowIDs(got))
}

func TestSortStateToggle(t *testing.T) {
	asc := SortState{Key: "age", Direction: SortAscending}
	desc := SortState{Key: "age", Direction: SortDescending}

	tests := []struct {
		name  string
		from  SortState
		key   string
		cycle SortCycle
		want  SortState
	}{
		{"unsorted starts ascending", SortState{}, "age", SortCycleThreeState, asc},
		{"asc to desc", asc, "age", SortCycleThreeState, desc},
		{"desc to unsorted", desc, "age", SortCycleThreeState, SortState{}},
		{"two-state desc to asc", desc, "age", SortCycleTwoState, asc},
		{"two-state asc to desc", asc, "age", SortCycleTwoState, desc},
		{"other key restarts", desc, "name", SortCycleThreeState, SortState{Key: "name", Direction: SortAscending}},
		{"empty key clears", asc, "", SortCycleTwoState, SortState{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.from.Toggle(tt.key, tt.cycle))
		})
	}
}

func TestNewSortState(t *testing.T) {
	assert.Equal(t, SortState{}, NewSortState("", SortAscending))
	assert.Equal(t, SortState{}, NewSortState("age", SortNone))
	assert.True(t, NewSortState("age", SortDescending).IsSorted())
}
