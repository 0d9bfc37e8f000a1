package db

import (
	"database/sql"
	"fmt"
	"time"

	"tasnim.dev/iam-audit/internal/utils"
)

// Table is an in-memory query result. Every row has len(Columns) cells.
type Table struct {
	Columns []string
	Rows    [][]any
}

func (t *Table) Len() int {
	return len(t.Rows)
}

// Strings formats every cell for display. NULL cells become "NULL".
func (t *Table) Strings() [][]string {
	out := make([][]string, len(t.Rows))
	for i, row := range t.Rows {
		cells := make([]string, len(row))
		for j, v := range row {
			cells[j] = formatCell(v)
		}
		out[i] = cells
	}
	return out
}

// Records returns one column-name keyed map per row.
func (t *Table) Records() []map[string]any {
	out := make([]map[string]any, len(t.Rows))
	for i, row := range t.Rows {
		rec := make(map[string]any, len(t.Columns))
		for j, col := range t.Columns {
			rec[col] = row[j]
		}
		out[i] = rec
	}
	return out
}

// ColumnNames reads the column names of rows. rows must come from an executed
// statement and still be open.
func ColumnNames(rows *sql.Rows) ([]string, error) {
	return rows.Columns()
}

// FetchData reads every remaining row into memory. There is no streaming
// path; large result sets are held in full.
func FetchData(rows *sql.Rows) (*Table, error) {
	cols, err := ColumnNames(rows)
	if err != nil {
		return nil, err
	}

	table := &Table{Columns: cols, Rows: [][]any{}}
	for rows.Next() {
		values := make([]any, len(cols))
		ptrs := make([]any, len(cols))
		for i := range values {
			ptrs[i] = &values[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, err
		}
		for i, v := range values {
			if b, ok := v.([]byte); ok {
				values[i] = string(b)
			}
		}
		table.Rows = append(table.Rows, values)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return table, nil
}

func formatCell(v any) string {
	switch x := v.(type) {
	case nil:
		return "NULL"
	case time.Time:
		return utils.TimeOrDash(x, utils.DateTimeSec)
	default:
		return fmt.Sprint(x)
	}
}
