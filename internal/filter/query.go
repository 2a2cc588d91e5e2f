// Copyright 2025 Magnus Pierre
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package filter

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/magpierre/datagrid/datatable"
)

// CompOp is a comparison operator.
type CompOp int

const (
	OpEqual CompOp = iota
	OpNotEqual
	OpGreater
	OpLess
	OpGreaterEqual
	OpLessEqual
	OpContains
)

// Operators in matching order: two-character symbols before their prefixes.
var operators = []struct {
	op     CompOp
	symbol string
}{
	{OpGreaterEqual, ">="},
	{OpLessEqual, "<="},
	{OpNotEqual, "!="},
	{OpEqual, "="},
	{OpGreater, ">"},
	{OpLess, "<"},
	{OpContains, "~"},
}

// String returns the operator symbol.
func (op CompOp) String() string {
	for _, o := range operators {
		if o.op == op {
			return o.symbol
		}
	}
	return fmt.Sprintf("op(%d)", int(op))
}

// Comparison tests one column of a row against a literal. A Comparison with
// no column is a free-text search over the whole row.
type Comparison struct {
	Column string
	Op     CompOp
	Value  string
}

// Evaluate implements the datatable.Filter interface.
func (c *Comparison) Evaluate(row datatable.Row) (bool, error) {
	if c.Column == "" {
		return datatable.MatchesQuery(row, c.Value), nil
	}

	cell := row.Get(c.Column)

	switch c.Op {
	case OpEqual:
		if n, ok := bothNumeric(cell, c.Value); ok {
			return n == 0, nil
		}
		return strings.EqualFold(cell.Formatted, c.Value), nil

	case OpNotEqual:
		if n, ok := bothNumeric(cell, c.Value); ok {
			return n != 0, nil
		}
		return !strings.EqualFold(cell.Formatted, c.Value), nil

	case OpContains:
		return strings.Contains(strings.ToLower(cell.Formatted), strings.ToLower(c.Value)), nil

	case OpGreater, OpLess, OpGreaterEqual, OpLessEqual:
		n, ok := bothNumeric(cell, c.Value)
		if !ok {
			n = strings.Compare(strings.ToLower(cell.Formatted), strings.ToLower(c.Value))
		}
		return ordered(n, c.Op), nil
	}

	return false, fmt.Errorf("%w: unknown operator %d", datatable.ErrInvalidFilter, c.Op)
}

// Description implements the datatable.Filter interface.
func (c *Comparison) Description() string {
	if c.Column == "" {
		return strconv.Quote(c.Value)
	}
	return fmt.Sprintf("%s %s %s", c.Column, c.Op, strconv.Quote(c.Value))
}

// bothNumeric compares the cell with the literal numerically when both are
// numbers; text cells holding a number count as numeric.
func bothNumeric(cell datatable.Value, literal string) (int, bool) {
	rhs, err := strconv.ParseFloat(strings.TrimSpace(literal), 64)
	if err != nil {
		return 0, false
	}
	lhs, ok := cell.Float()
	if !ok {
		if cell.IsNull {
			return 0, false
		}
		lhs, err = strconv.ParseFloat(strings.TrimSpace(cell.Formatted), 64)
		if err != nil {
			return 0, false
		}
	}
	switch {
	case lhs < rhs:
		return -1, true
	case lhs > rhs:
		return 1, true
	default:
		return 0, true
	}
}

func ordered(cmp int, op CompOp) bool {
	switch op {
	case OpGreater:
		return cmp > 0
	case OpLess:
		return cmp < 0
	case OpGreaterEqual:
		return cmp >= 0
	case OpLessEqual:
		return cmp <= 0
	}
	return false
}

// Parse turns an expression such as `age >= 30 AND status = 'active'` into a
// filter over the given columns. Column names match keys or labels, ignoring
// case. Terms without an operator search every field. AND binds tighter than
// OR. An empty expression yields a nil filter.
func Parse(columns []datatable.Column, expr string) (datatable.Filter, error) {
	if strings.TrimSpace(expr) == "" {
		return nil, nil
	}

	names := make(map[string]string, 2*len(columns))
	for _, c := range columns {
		names[strings.ToLower(c.Label)] = c.Key
		names[strings.ToLower(c.Key)] = c.Key
	}

	parts := splitByLogicOps(expr)

	var groups, current []datatable.Filter
	expectTerm := true
	flush := func() {
		if len(current) == 1 {
			groups = append(groups, current[0])
		} else {
			groups = append(groups, &CompositeFilter{Filters: current, Logic: LogicAND})
		}
		current = nil
	}

	for _, part := range parts {
		if part.isOperator {
			if expectTerm {
				return nil, fmt.Errorf("%w: unexpected %s", datatable.ErrInvalidFilter, part.text)
			}
			if part.text == "OR" {
				flush()
			}
			expectTerm = true
			continue
		}
		if !expectTerm {
			return nil, fmt.Errorf("%w: missing AND/OR before %q", datatable.ErrInvalidFilter, part.text)
		}
		cmp, err := parseExpression(names, part.text)
		if err != nil {
			return nil, err
		}
		current = append(current, cmp)
		expectTerm = false
	}
	if expectTerm {
		return nil, fmt.Errorf("%w: expression ends with an operator", datatable.ErrInvalidFilter)
	}
	flush()

	if len(groups) == 1 {
		return groups[0], nil
	}
	return &CompositeFilter{Filters: groups, Logic: LogicOR}, nil
}

type queryPart struct {
	text       string
	isOperator bool
}

// splitByLogicOps splits an expression on whitespace-delimited AND/OR words
// outside quotes, keeping the operators.
func splitByLogicOps(query string) []queryPart {
	var (
		parts   []queryPart
		current strings.Builder
		quote   byte
	)
	push := func() {
		if s := strings.TrimSpace(current.String()); s != "" {
			parts = append(parts, queryPart{text: s})
		}
		current.Reset()
	}

	for i := 0; i < len(query); {
		c := query[i]
		if quote != 0 {
			if c == quote {
				quote = 0
			}
			current.WriteByte(c)
			i++
			continue
		}
		if c == '\'' || c == '"' {
			quote = c
			current.WriteByte(c)
			i++
			continue
		}
		if op, n := logicOpAt(query, i); n > 0 {
			push()
			parts = append(parts, queryPart{text: op, isOperator: true})
			i += n
			continue
		}
		current.WriteByte(c)
		i++
	}
	push()
	return parts
}

// logicOpAt reports an AND or OR word starting at i, bounded by whitespace
// or the ends of the query.
func logicOpAt(query string, i int) (string, int) {
	if i > 0 && !isWhitespace(query[i-1]) {
		return "", 0
	}
	for _, op := range []string{"AND", "OR"} {
		end := i + len(op)
		if end > len(query) || !strings.EqualFold(query[i:end], op) {
			continue
		}
		if end < len(query) && !isWhitespace(query[end]) {
			continue
		}
		return op, len(op)
	}
	return "", 0
}

func isWhitespace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r'
}

// parseExpression parses a single term like `column = value`. The first
// operator before any quote splits the term.
func parseExpression(names map[string]string, exprStr string) (*Comparison, error) {
	exprStr = strings.TrimSpace(exprStr)
	if exprStr[0] == '\'' || exprStr[0] == '"' {
		return &Comparison{Op: OpContains, Value: unquote(exprStr)}, nil
	}

	for idx := 1; idx < len(exprStr); idx++ {
		if c := exprStr[idx]; c == '\'' || c == '"' {
			break
		}
		for _, opInfo := range operators {
			if !strings.HasPrefix(exprStr[idx:], opInfo.symbol) {
				continue
			}
			name := strings.TrimSpace(exprStr[:idx])
			value := unquote(strings.TrimSpace(exprStr[idx+len(opInfo.symbol):]))

			key, ok := names[strings.ToLower(name)]
			if !ok {
				return nil, fmt.Errorf("%w: unknown column %q", datatable.ErrInvalidFilter, name)
			}
			return &Comparison{Column: key, Op: opInfo.op, Value: value}, nil
		}
	}

	// No operator: search all columns.
	return &Comparison{Op: OpContains, Value: unquote(exprStr)}, nil
}

func unquote(s string) string {
	if len(s) >= 2 && (s[0] == '\'' || s[0] == '"') && s[len(s)-1] == s[0] {
		return s[1 : len(s)-1]
	}
	return s
}
