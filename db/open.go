// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"database/sql"
	"fmt"

	_ "github.com/lib/pq"
	"github.com/pkg/errors"
	_ "modernc.org/sqlite"

	"github.com/danielhkuo/quickly-poll/store/sqlstore"
)

// Database types accepted by Open
const (
	TypePostgres = "postgres"
	TypeSQLite   = "sqlite"
)

// Open connects to the database, verifies the connection and returns the
// matching SQL dialect.
func Open(dbType, url string) (*sql.DB, sqlstore.Dialect, error) {
	var dialect sqlstore.Dialect
	switch dbType {
	case TypePostgres:
		dialect = sqlstore.Postgres
	case TypeSQLite:
		dialect = sqlstore.SQLite
	default:
		return nil, 0, fmt.Errorf("unsupported database type %q", dbType)
	}

	conn, err := sql.Open(dbType, url)
	if err != nil {
		return nil, 0, errors.Wrap(err, "database connection failed")
	}

	if dialect == sqlstore.SQLite {
		// One connection keeps :memory: databases shared and serializes writers
		conn.SetMaxOpenConns(1)
		if _, err := conn.Exec("PRAGMA foreign_keys = ON"); err != nil {
			conn.Close()
			return nil, 0, errors.Wrap(err, "failed to enable foreign keys")
		}
	}

	if err := conn.Ping(); err != nil {
		conn.Close()
		return nil, 0, errors.Wrap(err, "database ping failed")
	}

	return conn, dialect, nil
}
