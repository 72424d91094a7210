// Package postgres materializes snapshots from Postgres query results.
package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"autoviz/domain/table"
	"autoviz/internal/errors"
)

// Source runs a query against a Postgres database and exposes the result
// set as a snapshot.
type Source struct {
	db    *sqlx.DB
	name  string
	query string
}

// Connect opens a connection and verifies it with a ping.
func Connect(ctx context.Context, url string) (*sqlx.DB, error) {
	db, err := sqlx.ConnectContext(ctx, "postgres", url)
	if err != nil {
		return nil, errors.SourceUnavailable("postgres", err)
	}
	return db, nil
}

// NewQuerySource creates a source backed by an arbitrary SQL query.
func NewQuerySource(db *sqlx.DB, name, query string) *Source {
	return &Source{db: db, name: name, query: query}
}

// NewTableSource creates a source that reads a whole table.
func NewTableSource(db *sqlx.DB, tableName string) *Source {
	return &Source{
		db:    db,
		name:  tableName,
		query: fmt.Sprintf("SELECT * FROM %s", pq.QuoteIdentifier(tableName)),
	}
}

// LoadSnapshot executes the query and builds a snapshot preserving the
// result set's column order.
func (s *Source) LoadSnapshot(ctx context.Context) (*table.Snapshot, error) {
	rows, err := s.db.QueryxContext(ctx, s.query)
	if err != nil {
		return nil, errors.SourceUnavailable(s.name, err)
	}
	defer rows.Close()

	columns, err := rows.Columns()
	if err != nil {
		return nil, errors.ParseFailed("result columns", err)
	}

	var out []table.Row
	for rows.Next() {
		record := make(map[string]any, len(columns))
		if err := rows.MapScan(record); err != nil {
			return nil, errors.ParseFailed("result row", err)
		}
		row := make(table.Row, len(columns))
		for _, col := range columns {
			row[col] = normalize(record[col])
		}
		out = append(out, row)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.SourceUnavailable(s.name, err)
	}

	snap := table.NewSnapshot(columns, out)
	snap.Name = s.name
	return snap, nil
}

// normalize converts driver byte slices to strings so downstream parsing
// sees the same shapes as file sources.
func normalize(v any) any {
	if b, ok := v.([]byte); ok {
		return string(b)
	}
	return v
}
