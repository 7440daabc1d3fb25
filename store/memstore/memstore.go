// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package memstore

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/danielhkuo/quickly-poll/store"
)

// Operation names recorded in Call.Op
const (
	OpSelect = "select"
	OpInsert = "insert"
	OpUpdate = "update"
	OpDelete = "delete"
)

// Call records one operation made against the store.
type Call struct {
	Op    string
	Table string
	Query store.Query
	Rows  []store.Row
	Patch store.Row
}

type cascade struct {
	parent, child, foreignKey string
}

// Store keeps tables in memory. Rows are copied on the way in and out.
type Store struct {
	mu       sync.Mutex
	tables   map[string][]store.Row
	cascades []cascade
	failures map[string]error
	calls    []Call
	hook     func(Call)
}

func New() *Store {
	return &Store{
		tables:   make(map[string][]store.Row),
		failures: make(map[string]error),
	}
}

// Cascade deletes child rows whose foreignKey equals the id of a deleted
// parent row.
func (s *Store) Cascade(parent, child, foreignKey string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cascades = append(s.cascades, cascade{parent, child, foreignKey})
}

// FailOn makes every op against table return err until cleared with a nil err.
func (s *Store) FailOn(op, table string, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err == nil {
		delete(s.failures, op+":"+table)
		return
	}
	s.failures[op+":"+table] = err
}

// OnCall registers fn to run before each operation, outside the store lock.
func (s *Store) OnCall(fn func(Call)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.hook = fn
}

// Calls returns the operations made so far, in order.
func (s *Store) Calls() []Call {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Call(nil), s.calls...)
}

// Seed inserts rows without recording a call or checking failures.
func (s *Store) Seed(table string, rows ...store.Row) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, r := range rows {
		s.tables[table] = append(s.tables[table], copyRow(r))
	}
}

// Rows returns a snapshot of every row in table.
func (s *Store) Rows(table string) []store.Row {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]store.Row, 0, len(s.tables[table]))
	for _, r := range s.tables[table] {
		out = append(out, copyRow(r))
	}
	return out
}

func (s *Store) begin(c Call) error {
	s.mu.Lock()
	hook := s.hook
	s.mu.Unlock()
	if hook != nil {
		hook(c)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls = append(s.calls, c)
	return s.failures[c.Op+":"+c.Table]
}

func (s *Store) Select(ctx context.Context, q store.Query) ([]store.Row, error) {
	if err := s.begin(Call{Op: OpSelect, Table: q.Table, Query: q}); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := q.Validate(); err != nil {
		return nil, err
	}

	var matched []store.Row
	for _, r := range s.tables[q.Table] {
		if matches(r, q.Filters) {
			matched = append(matched, r)
		}
	}

	if len(q.Orders) > 0 {
		sort.SliceStable(matched, func(i, j int) bool {
			for _, o := range q.Orders {
				c := compare(matched[i][o.Column], matched[j][o.Column])
				if c == 0 {
					continue
				}
				if o.Ascending {
					return c < 0
				}
				return c > 0
			}
			return false
		})
	}

	if q.Range != nil {
		from, to := q.Range.From, q.Range.To+1
		if from > len(matched) {
			from = len(matched)
		}
		if to > len(matched) {
			to = len(matched)
		}
		matched = matched[from:to]
	}

	out := make([]store.Row, 0, len(matched))
	for _, r := range matched {
		out = append(out, project(r, q.Columns))
	}
	return out, nil
}

func (s *Store) Insert(ctx context.Context, table string, rows []store.Row) ([]store.Row, error) {
	if err := s.begin(Call{Op: OpInsert, Table: table, Rows: copyRows(rows)}); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if !store.IsIdentifier(table) {
		return nil, &store.Error{Code: store.CodeInvalidQuery, Message: fmt.Sprintf("invalid table name %q", table)}
	}
	if _, err := store.Columns(rows); err != nil {
		return nil, err
	}

	// all or nothing: check primary keys before writing any row
	ids := make(map[any]bool)
	for _, existing := range s.tables[table] {
		ids[existing["id"]] = true
	}
	for _, r := range rows {
		id, ok := r["id"]
		if !ok {
			continue
		}
		id = normalize(id)
		if ids[id] {
			return nil, &store.Error{
				Code:    store.CodeConstraint,
				Message: fmt.Sprintf("duplicate key value violates primary key of %s", table),
				Details: fmt.Sprintf("Key (id)=(%v) already exists.", id),
			}
		}
		ids[id] = true
	}

	out := make([]store.Row, 0, len(rows))
	for _, r := range rows {
		stored := copyRow(r)
		s.tables[table] = append(s.tables[table], stored)
		out = append(out, copyRow(stored))
	}
	return out, nil
}

func (s *Store) Update(ctx context.Context, q store.Query, patch store.Row) ([]store.Row, error) {
	if err := s.begin(Call{Op: OpUpdate, Table: q.Table, Query: q, Patch: copyRow(patch)}); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := q.Validate(); err != nil {
		return nil, err
	}
	if len(q.Filters) == 0 {
		return nil, &store.Error{Code: store.CodeInvalidQuery, Message: "update requires a filter"}
	}
	if len(patch) == 0 {
		return nil, &store.Error{Code: store.CodeInvalidQuery, Message: "empty update"}
	}

	var out []store.Row
	for _, r := range s.tables[q.Table] {
		if !matches(r, q.Filters) {
			continue
		}
		for k, v := range patch {
			r[k] = normalize(v)
		}
		out = append(out, copyRow(r))
	}
	return out, nil
}

func (s *Store) Delete(ctx context.Context, q store.Query) error {
	if err := s.begin(Call{Op: OpDelete, Table: q.Table, Query: q}); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return err
	}
	if err := q.Validate(); err != nil {
		return err
	}
	if len(q.Filters) == 0 {
		return &store.Error{Code: store.CodeInvalidQuery, Message: "delete requires a filter"}
	}

	s.deleteWhere(q.Table, func(r store.Row) bool { return matches(r, q.Filters) })
	return nil
}

// deleteWhere must be called with s.mu held.
func (s *Store) deleteWhere(table string, match func(store.Row) bool) {
	var kept []store.Row
	var removed []any
	for _, r := range s.tables[table] {
		if match(r) {
			removed = append(removed, r["id"])
			continue
		}
		kept = append(kept, r)
	}
	s.tables[table] = kept

	for _, c := range s.cascades {
		if c.parent != table {
			continue
		}
		for _, id := range removed {
			id := id
			s.deleteWhere(c.child, func(r store.Row) bool { return equal(r[c.foreignKey], id) })
		}
	}
}

func matches(r store.Row, filters []store.Filter) bool {
	for _, f := range filters {
		if !equal(r[f.Column], f.Value) {
			return false
		}
	}
	return true
}

func project(r store.Row, columns []string) store.Row {
	if len(columns) == 0 || (len(columns) == 1 && columns[0] == "*") {
		return copyRow(r)
	}
	out := make(store.Row, len(columns))
	for _, c := range columns {
		out[c] = r[c]
	}
	return out
}

func copyRow(r store.Row) store.Row {
	out := make(store.Row, len(r))
	for k, v := range r {
		out[k] = normalize(v)
	}
	return out
}

func copyRows(rows []store.Row) []store.Row {
	out := make([]store.Row, 0, len(rows))
	for _, r := range rows {
		out = append(out, copyRow(r))
	}
	return out
}

// normalize folds the value types callers pass in into one representation
// per kind so equality and ordering behave like a database column.
func normalize(v any) any {
	switch x := v.(type) {
	case int:
		return int64(x)
	case int32:
		return int64(x)
	case float32:
		return float64(x)
	case *string:
		if x == nil {
			return nil
		}
		return *x
	case *time.Time:
		if x == nil {
			return nil
		}
		return x.UTC()
	case time.Time:
		return x.UTC()
	case *bool:
		if x == nil {
			return nil
		}
		return *x
	}
	return v
}

func equal(a, b any) bool {
	a, b = normalize(a), normalize(b)
	return compare(a, b) == 0 && (a == nil) == (b == nil)
}

// compare orders nil before everything else; mismatched types compare by
// their printed form.
func compare(a, b any) int {
	a, b = normalize(a), normalize(b)
	if a == nil || b == nil {
		switch {
		case a == nil && b == nil:
			return 0
		case a == nil:
			return -1
		default:
			return 1
		}
	}

	switch x := a.(type) {
	case string:
		if y, ok := b.(string); ok {
			return cmp3(x < y, x > y)
		}
	case int64:
		switch y := b.(type) {
		case int64:
			return cmp3(x < y, x > y)
		case float64:
			return cmp3(float64(x) < y, float64(x) > y)
		}
	case float64:
		switch y := b.(type) {
		case float64:
			return cmp3(x < y, x > y)
		case int64:
			return cmp3(x < float64(y), x > float64(y))
		}
	case bool:
		if y, ok := b.(bool); ok {
			return cmp3(!x && y, x && !y)
		}
	case time.Time:
		if y, ok := b.(time.Time); ok {
			return cmp3(x.Before(y), x.After(y))
		}
	}

	as, bs := fmt.Sprint(a), fmt.Sprint(b)
	return cmp3(as < bs, as > bs)
}

func cmp3(less, greater bool) int {
	switch {
	case less:
		return -1
	case greater:
		return 1
	}
	return 0
}
