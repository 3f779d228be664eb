// Taxiboard - NYC Yellow Taxi Warehouse Analytics Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/taxiboard

package query

import (
	"database/sql"
	"fmt"
	"math"
	"math/big"
	"strconv"
	"strings"
	"time"

	"github.com/duckdb/duckdb-go/v2"
)

// Column describes one result column.
type Column struct {
	Name         string `json:"name"`
	DatabaseType string `json:"database_type,omitempty"`
}

// Row maps column names to scalar values: int64, float64, string,
// time.Time, bool or nil.
type Row map[string]any

// Result is a fully materialised query result. It is shared between callers
// through the cache and must not be modified after creation.
type Result struct {
	Columns   []Column      `json:"columns"`
	Rows      []Row         `json:"rows"`
	FetchedAt time.Time     `json:"fetched_at"`
	Duration  time.Duration `json:"duration_ns"`
}

// Len returns the number of rows.
func (r *Result) Len() int {
	if r == nil {
		return 0
	}
	return len(r.Rows)
}

// ColumnNames returns the column names in result order.
func (r *Result) ColumnNames() []string {
	names := make([]string, len(r.Columns))
	for i, c := range r.Columns {
		names[i] = c.Name
	}
	return names
}

// HasColumn reports whether the result has a column with the given name.
func (r *Result) HasColumn(name string) bool {
	for _, c := range r.Columns {
		if c.Name == name {
			return true
		}
	}
	return false
}

// Value returns the value at row i, column col, or nil.
func (r *Result) Value(i int, col string) any {
	if i < 0 || i >= len(r.Rows) {
		return nil
	}
	return r.Rows[i][col]
}

// Float64 returns the value at row i, column col as a float64.
func (r *Result) Float64(i int, col string) (float64, bool) {
	return ToFloat64(r.Value(i, col))
}

// ToFloat64 converts a normalised numeric value to float64.
func ToFloat64(v any) (float64, bool) {
	switch x := v.(type) {
	case int64:
		return float64(x), true
	case float64:
		return x, true
	case string:
		f, err := strconv.ParseFloat(x, 64)
		return f, err == nil
	default:
		return 0, false
	}
}

// scanResult reads every row from rows.
func scanResult(rows *sql.Rows) (*Result, error) {
	colTypes, err := rows.ColumnTypes()
	if err != nil {
		return nil, fmt.Errorf("failed to read column types: %w", err)
	}

	columns := make([]Column, len(colTypes))
	for i, ct := range colTypes {
		columns[i] = Column{Name: ct.Name(), DatabaseType: ct.DatabaseTypeName()}
	}

	result := &Result{Columns: columns, Rows: make([]Row, 0)}
	values := make([]any, len(columns))
	ptrs := make([]any, len(columns))
	for i := range values {
		ptrs[i] = &values[i]
	}

	for rows.Next() {
		if err := rows.Scan(ptrs...); err != nil {
			return nil, fmt.Errorf("failed to scan row %d: %w", len(result.Rows), err)
		}
		row := make(Row, len(columns))
		for i, c := range columns {
			row[c.Name] = normalize(values[i], c.DatabaseType)
		}
		result.Rows = append(result.Rows, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return result, nil
}

// numericTypes are database type names whose values may arrive as text.
// Snowflake returns NUMBER as FIXED strings unless told otherwise.
var numericTypes = []string{"FIXED", "NUMBER", "DECIMAL", "NUMERIC", "REAL", "DOUBLE", "FLOAT", "INT", "BIGINT", "HUGEINT"}

func isNumericType(dbType string) bool {
	upper := strings.ToUpper(dbType)
	for _, t := range numericTypes {
		if strings.HasPrefix(upper, t) {
			return true
		}
	}
	return false
}

// normalize converts driver values to the small set of scalar types a Row holds.
func normalize(v any, dbType string) any {
	switch x := v.(type) {
	case nil:
		return nil
	case int64, float64, bool, time.Time:
		return x
	case string:
		if isNumericType(dbType) {
			return parseNumber(x)
		}
		return x
	case []byte:
		return normalize(string(x), dbType)
	case int:
		return int64(x)
	case int8:
		return int64(x)
	case int16:
		return int64(x)
	case int32:
		return int64(x)
	case uint8:
		return int64(x)
	case uint16:
		return int64(x)
	case uint32:
		return int64(x)
	case uint64:
		if x > math.MaxInt64 {
			return float64(x)
		}
		return int64(x)
	case float32:
		return float64(x)
	case *big.Int:
		if x.IsInt64() {
			return x.Int64()
		}
		f, _ := new(big.Float).SetInt(x).Float64()
		return f
	case duckdb.Decimal:
		if x.Scale == 0 && x.Value != nil && x.Value.IsInt64() {
			return x.Value.Int64()
		}
		return x.Float64()
	default:
		return fmt.Sprint(x)
	}
}

func parseNumber(s string) any {
	if i, err := strconv.ParseInt(s, 10, 64); err == nil {
		return i
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return f
	}
	return s
}
