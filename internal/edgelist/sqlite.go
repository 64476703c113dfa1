package edgelist

import (
	"context"
	"database/sql"
	"fmt"
	"iter"

	_ "modernc.org/sqlite"
)

// DefaultQuery reads an edges(source, dest, label) table.
const DefaultQuery = `SELECT source, dest, label FROM edges`

// ReadSQLite yields the edges returned by query against the SQLite database
// at path. The query must return three text columns: source, dest, label.
func ReadSQLite(ctx context.Context, path, query string) iter.Seq2[Edge, error] {
	return func(yield func(Edge, error) bool) {
		db, err := sql.Open("sqlite", path)
		if err != nil {
			yield(Edge{}, fmt.Errorf("opening sqlite database: %w", err))
			return
		}
		defer db.Close()

		if err := db.PingContext(ctx); err != nil {
			yield(Edge{}, fmt.Errorf("connecting to sqlite: %w", err))
			return
		}

		rows, err := db.QueryContext(ctx, query)
		if err != nil {
			yield(Edge{}, fmt.Errorf("querying edges: %w", err))
			return
		}
		defer rows.Close()

		row := 0
		for rows.Next() {
			row++
			var e Edge
			if err := rows.Scan(&e.Source, &e.Dest, &e.Label); err != nil {
				yield(Edge{}, fmt.Errorf("scanning edge row %d: %w", row, err))
				return
			}
			if e.Source == "" || e.Dest == "" || e.Label == "" {
				yield(Edge{}, fmt.Errorf("edge row %d: empty source, dest or label", row))
				return
			}
			if !yield(e, nil) {
				return
			}
		}
		if err := rows.Err(); err != nil {
			yield(Edge{}, fmt.Errorf("iterating edges: %w", err))
		}
	}
}
