// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package sqlstore

import (
	"context"
	"database/sql"
	"strconv"
	"strings"

	"github.com/danielhkuo/quickly-poll/store"
)

type Dialect int

const (
	Postgres Dialect = iota
	SQLite
)

// Store implements store.Store on a database/sql connection pool.
type Store struct {
	db      *sql.DB
	dialect Dialect
}

func New(db *sql.DB, dialect Dialect) *Store {
	return &Store{db: db, dialect: dialect}
}

func (s *Store) Select(ctx context.Context, q store.Query) ([]store.Row, error) {
	if err := q.Validate(); err != nil {
		return nil, err
	}

	b := s.builder()
	b.WriteString("SELECT ")
	b.columns(q.Columns)
	b.WriteString(" FROM ")
	b.ident(q.Table)
	b.where(q.Filters)

	if len(q.Orders) > 0 {
		b.WriteString(" ORDER BY ")
		for i, o := range q.Orders {
			if i > 0 {
				b.WriteString(", ")
			}
			b.ident(o.Column)
			if o.Ascending {
				b.WriteString(" ASC")
			} else {
				b.WriteString(" DESC")
			}
		}
	}

	if q.Range != nil {
		b.WriteString(" LIMIT " + strconv.Itoa(q.Range.To-q.Range.From+1))
		b.WriteString(" OFFSET " + strconv.Itoa(q.Range.From))
	}

	return s.query(ctx, "select", q.Table, b)
}

func (s *Store) Insert(ctx context.Context, table string, rows []store.Row) ([]store.Row, error) {
	if err := store.From(table).Validate(); err != nil {
		return nil, err
	}
	cols, err := store.Columns(rows)
	if err != nil {
		return nil, err
	}

	b := s.builder()
	b.WriteString("INSERT INTO ")
	b.ident(table)
	b.WriteString(" (")
	b.columns(cols)
	b.WriteString(") VALUES ")
	for i, row := range rows {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString("(")
		for j, c := range cols {
			if j > 0 {
				b.WriteString(", ")
			}
			b.arg(row[c])
		}
		b.WriteString(")")
	}
	b.WriteString(" RETURNING *")

	return s.query(ctx, "insert", table, b)
}

func (s *Store) Update(ctx context.Context, q store.Query, patch store.Row) ([]store.Row, error) {
	if err := q.Validate(); err != nil {
		return nil, err
	}
	if len(q.Filters) == 0 {
		return nil, &store.Error{Code: store.CodeInvalidQuery, Message: "update requires a filter"}
	}
	if len(patch) == 0 {
		return nil, &store.Error{Code: store.CodeInvalidQuery, Message: "empty update"}
	}

	b := s.builder()
	b.WriteString("UPDATE ")
	b.ident(q.Table)
	b.WriteString(" SET ")
	for i, c := range store.SortedKeys(patch) {
		if !store.IsIdentifier(c) {
			return nil, &store.Error{Code: store.CodeInvalidQuery, Message: "invalid column name " + strconv.Quote(c)}
		}
		if i > 0 {
			b.WriteString(", ")
		}
		b.ident(c)
		b.WriteString(" = ")
		b.arg(patch[c])
	}
	b.where(q.Filters)
	b.WriteString(" RETURNING *")

	return s.query(ctx, "update", q.Table, b)
}

func (s *Store) Delete(ctx context.Context, q store.Query) error {
	if err := q.Validate(); err != nil {
		return err
	}
	if len(q.Filters) == 0 {
		return &store.Error{Code: store.CodeInvalidQuery, Message: "delete requires a filter"}
	}

	b := s.builder()
	b.WriteString("DELETE FROM ")
	b.ident(q.Table)
	b.where(q.Filters)

	if _, err := s.db.ExecContext(ctx, b.String(), b.args...); err != nil {
		return toStoreError(err, "delete", q.Table)
	}
	return nil
}

func (s *Store) query(ctx context.Context, op, table string, b *sqlBuilder) ([]store.Row, error) {
	rows, err := s.db.QueryContext(ctx, b.String(), b.args...)
	if err != nil {
		return nil, toStoreError(err, op, table)
	}
	defer rows.Close()

	out, err := scanRows(rows)
	if err != nil {
		return nil, toStoreError(err, op, table)
	}
	return out, nil
}

func scanRows(rows *sql.Rows) ([]store.Row, error) {
	cols, err := rows.Columns()
	if err != nil {
		return nil, err
	}

	out := []store.Row{}
	for rows.Next() {
		vals := make([]any, len(cols))
		ptrs := make([]any, len(cols))
		for i := range vals {
			ptrs[i] = &vals[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, err
		}

		row := make(store.Row, len(cols))
		for i, c := range cols {
			if b, ok := vals[i].([]byte); ok {
				row[c] = string(b)
			} else {
				row[c] = vals[i]
			}
		}
		out = append(out, row)
	}
	return out, rows.Err()
}

type sqlBuilder struct {
	strings.Builder
	dialect Dialect
	args    []any
}

func (s *Store) builder() *sqlBuilder {
	return &sqlBuilder{dialect: s.dialect}
}

// ident writes a quoted identifier. Names are checked by store.IsIdentifier
// before they get here.
func (b *sqlBuilder) ident(name string) {
	b.WriteString(`"` + name + `"`)
}

func (b *sqlBuilder) columns(cols []string) {
	if len(cols) == 0 || (len(cols) == 1 && cols[0] == "*") {
		b.WriteString("*")
		return
	}
	for i, c := range cols {
		if i > 0 {
			b.WriteString(", ")
		}
		b.ident(c)
	}
}

func (b *sqlBuilder) arg(v any) {
	b.args = append(b.args, v)
	if b.dialect == Postgres {
		b.WriteString("$" + strconv.Itoa(len(b.args)))
	} else {
		b.WriteString("?")
	}
}

func (b *sqlBuilder) where(filters []store.Filter) {
	for i, f := range filters {
		if i == 0 {
			b.WriteString(" WHERE ")
		} else {
			b.WriteString(" AND ")
		}
		b.ident(f.Column)
		if f.Value == nil {
			b.WriteString(" IS NULL")
			continue
		}
		b.WriteString(" = ")
		b.arg(f.Value)
	}
}
