package db

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// ParseRows decodes a YAML list of rows, e.g.
//
//	- [AAPL.O, "20220101", 100.0, 80.0]
//	- [AMZN.O, "20220101", 2000.0, 1800.0]
//
// All rows must have the same number of values.
func ParseRows(data []byte) ([][]any, error) {
	var rows [][]any
	if err := yaml.Unmarshal(data, &rows); err != nil {
		return nil, fmt.Errorf("parsing rows: %w", err)
	}
	for i, row := range rows {
		if len(row) != len(rows[0]) {
			return nil, fmt.Errorf("row %d has %d values, want %d", i+1, len(row), len(rows[0]))
		}
	}
	return rows, nil
}
