package datatable

import (
	"cmp"
	"slices"
	"strings"
)

// SortRows returns a sorted copy of rows. The input is never modified.
// An unsorted state returns rows unchanged. The sort is stable, and a
// descending sort negates the comparison so equal rows keep their input order
// in both directions.
func SortRows(rows []Row, state SortState) []Row {
	if !state.IsSorted() {
		return rows
	}
	out := slices.Clone(rows)
	key := state.Key
	desc := state.Direction == SortDescending
	slices.SortStableFunc(out, func(a, b Row) int {
		c := CompareValues(a.Get(key), b.Get(key))
		if desc {
			return -c
		}
		return c
	})
	return out
}

// CompareValues orders two values: numerically when both are numbers,
// by their formatted text when both are text. Values of different kinds
// order nulls first, then numbers, then text.
func CompareValues(a, b Value) int {
	if ka, kb := valueKind(a), valueKind(b); ka != kb {
		return cmp.Compare(ka, kb)
	}
	af, aok := a.Float()
	bf, bok := b.Float()
	if aok && bok {
		return cmp.Compare(af, bf)
	}
	return strings.Compare(a.Formatted, b.Formatted)
}

func valueKind(v Value) int {
	switch {
	case v.IsNull:
		return 0
	case v.IsNumber():
		return 1
	}
	return 2
}
