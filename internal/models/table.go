package models

import (
	"fmt"
	"math"
	"strconv"
	"time"
)

type ColumnType int

const (
	ColumnInt ColumnType = iota
	ColumnFloat
	ColumnString
	ColumnBool
	ColumnTimestamp
	ColumnDate
)

type Column struct {
	Name string
	Type ColumnType
}

// Table is the flat row/column view every exporter consumes. Cell values are
// int64, float64 (NaN for null), string, bool or time.Time, matching the column type.
type Table struct {
	Name    string
	Columns []Column
	Rows    [][]interface{}
}

func (t *Table) Header() []string {
	header := make([]string, len(t.Columns))
	for i, c := range t.Columns {
		header[i] = c.Name
	}
	return header
}

// FormatCell renders a cell the way flat text sinks (CSV, console) expect. Nulls
// become the empty string.
func FormatCell(col Column, v interface{}) string {
	if IsNull(v) {
		return ""
	}
	switch col.Type {
	case ColumnInt:
		return strconv.FormatInt(toInt64(v), 10)
	case ColumnFloat:
		return strconv.FormatFloat(v.(float64), 'f', -1, 64)
	case ColumnBool:
		return strconv.FormatBool(v.(bool))
	case ColumnTimestamp:
		return v.(time.Time).Format("2006-01-02 15:04:05")
	case ColumnDate:
		return v.(time.Time).Format(DateLayout)
	default:
		return fmt.Sprintf("%v", v)
	}
}

// JSONValue converts a cell into a value encoding/json renders sensibly: times become
// strings and null floats become nil.
func JSONValue(col Column, v interface{}) interface{} {
	if IsNull(v) {
		return nil
	}
	switch col.Type {
	case ColumnTimestamp, ColumnDate:
		return FormatCell(col, v)
	}
	return v
}

func IsNull(v interface{}) bool {
	if v == nil {
		return true
	}
	if f, ok := v.(float64); ok && math.IsNaN(f) {
		return true
	}
	return false
}

func toInt64(v interface{}) int64 {
	switch n := v.(type) {
	case int:
		return int64(n)
	case int32:
		return int64(n)
	case int64:
		return n
	default:
		return 0
	}
}
