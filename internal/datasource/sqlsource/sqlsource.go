// Package sqlsource is a reference Dataset loader that reads rows from
// a SQL database. It exists to exercise the external Dataset interface
// against a real driver rather than require every analytic to be backed
// by an in-memory or file-based source.
package sqlsource

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/go-sql-driver/mysql"

	"github.com/lblanes25/tabvalid/internal/dateutil"

	"github.com/lblanes25/tabvalid/internal/dataset"
)

// Load runs query against db and builds a Dataset from the result set.
// Column types are inferred from the driver's reported column types;
// DATE/DATETIME columns are parsed with the same ISO-8601/MM/DD/YYYY
// flexibility the evaluator accepts, and every other type falls back to
// its string representation, letting the evaluator's own coercion rules
// take over from there.
func Load(ctx context.Context, db *sql.DB, query string, args ...any) (*dataset.Dataset, error) {
	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("sqlsource: query failed: %w", err)
	}
	defer rows.Close()

	columnNames, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("sqlsource: reading column names: %w", err)
	}
	columnTypes, err := rows.ColumnTypes()
	if err != nil {
		return nil, fmt.Errorf("sqlsource: reading column types: %w", err)
	}

	values := make([][]dataset.Value, len(columnNames))

	scanDest := make([]any, len(columnNames))
	rawValues := make([]sql.NullString, len(columnNames))
	for i := range rawValues {
		scanDest[i] = &rawValues[i]
	}

	for rows.Next() {
		if err := rows.Scan(scanDest...); err != nil {
			return nil, fmt.Errorf("sqlsource: scanning row: %w", err)
		}
		for i, raw := range rawValues {
			values[i] = append(values[i], convert(raw, columnTypes[i]))
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlsource: iterating rows: %w", err)
	}

	cols := make([]*dataset.Column, len(columnNames))
	for i, name := range columnNames {
		cols[i] = dataset.NewColumn(name, values[i])
	}
	return dataset.New(cols...)
}

func convert(raw sql.NullString, colType *sql.ColumnType) dataset.Value {
	if !raw.Valid {
		return dataset.Missing()
	}
	switch colType.DatabaseTypeName() {
	case "DATE", "DATETIME", "TIMESTAMP":
		if t, ok := dateutil.ParseFlexibleDate(raw.String[:min(10, len(raw.String))]); ok {
			return dataset.Date(t)
		}
		return dataset.Str(raw.String)
	default:
		return dataset.Str(raw.String)
	}
}
