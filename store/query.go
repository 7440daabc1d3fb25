// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"fmt"
	"sort"
)

// Filter matches rows whose Column equals Value.
type Filter struct {
	Column string
	Value  any
}

type Order struct {
	Column    string
	Ascending bool
}

// Range selects rows From..To inclusive, 0-based.
type Range struct {
	From int
	To   int
}

// Query describes a read or the target of a write. It is a value: every
// builder method returns a new Query and never modifies the receiver.
type Query struct {
	Table   string
	Columns []string // empty means all columns
	Filters []Filter
	Orders  []Order
	Range   *Range
}

// From starts a query against table.
func From(table string) Query {
	return Query{Table: table}
}

func (q Query) Select(columns ...string) Query {
	q.Columns = append([]string(nil), columns...)
	return q
}

func (q Query) Eq(column string, value any) Query {
	filters := make([]Filter, len(q.Filters), len(q.Filters)+1)
	copy(filters, q.Filters)
	q.Filters = append(filters, Filter{Column: column, Value: value})
	return q
}

func (q Query) OrderBy(column string, ascending bool) Query {
	orders := make([]Order, len(q.Orders), len(q.Orders)+1)
	copy(orders, q.Orders)
	q.Orders = append(orders, Order{Column: column, Ascending: ascending})
	return q
}

func (q Query) Limit(from, to int) Query {
	q.Range = &Range{From: from, To: to}
	return q
}

// Validate checks the query is well formed: a table, identifier-like column
// names, and a non-negative range.
func (q Query) Validate() error {
	if !IsIdentifier(q.Table) {
		return &Error{Code: CodeInvalidQuery, Message: fmt.Sprintf("invalid table name %q", q.Table)}
	}
	for _, c := range q.Columns {
		if c != "*" && !IsIdentifier(c) {
			return &Error{Code: CodeInvalidQuery, Message: fmt.Sprintf("invalid column name %q", c)}
		}
	}
	for _, f := range q.Filters {
		if !IsIdentifier(f.Column) {
			return &Error{Code: CodeInvalidQuery, Message: fmt.Sprintf("invalid filter column %q", f.Column)}
		}
	}
	for _, o := range q.Orders {
		if !IsIdentifier(o.Column) {
			return &Error{Code: CodeInvalidQuery, Message: fmt.Sprintf("invalid order column %q", o.Column)}
		}
	}
	if q.Range != nil && (q.Range.From < 0 || q.Range.To < q.Range.From) {
		return &Error{Code: CodeInvalidQuery, Message: fmt.Sprintf("invalid range %d..%d", q.Range.From, q.Range.To)}
	}
	return nil
}

// IsIdentifier reports whether s is a lowercase SQL-safe identifier.
func IsIdentifier(s string) bool {
	if s == "" {
		return false
	}
	for i, c := range s {
		switch {
		case c >= 'a' && c <= 'z', c == '_':
		case c >= '0' && c <= '9' && i > 0:
		default:
			return false
		}
	}
	return true
}

// Columns returns the keys of the first row in sorted order and checks that
// every other row has exactly the same keys.
func Columns(rows []Row) ([]string, error) {
	if len(rows) == 0 {
		return nil, &Error{Code: CodeInvalidQuery, Message: "no rows to insert"}
	}

	cols := SortedKeys(rows[0])
	for _, c := range cols {
		if !IsIdentifier(c) {
			return nil, &Error{Code: CodeInvalidQuery, Message: fmt.Sprintf("invalid column name %q", c)}
		}
	}
	for i, row := range rows[1:] {
		if len(row) != len(cols) {
			return nil, &Error{Code: CodeInvalidQuery, Message: fmt.Sprintf("row %d has different columns", i+1)}
		}
		for _, c := range cols {
			if _, ok := row[c]; !ok {
				return nil, &Error{Code: CodeInvalidQuery, Message: fmt.Sprintf("row %d is missing column %q", i+1, c)}
			}
		}
	}
	return cols, nil
}

// SortedKeys returns the column names of row in sorted order.
func SortedKeys(row Row) []string {
	keys := make([]string, 0, len(row))
	for k := range row {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
