package output

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/chrisdamba/cafesim/internal/models"
)

const metadataFile = "metadata.json"

// JSONOutput writes each table as <table>.json, an array of records whose keys follow
// the table's column order, plus a metadata.json describing the run.
type JSONOutput struct {
	basePath string
	run      models.RunInfo
}

type runMetadata struct {
	models.RunInfo
	TotalOrders     int            `json:"total_orders"`
	TotalOrderItems int            `json:"total_order_items"`
	TotalSales      int64          `json:"total_sales"`
	Tables          map[string]int `json:"tables"`
}

func NewJSONOutput(basePath string, run models.RunInfo) (*JSONOutput, error) {
	if err := os.MkdirAll(basePath, os.ModePerm); err != nil {
		return nil, err
	}
	return &JSONOutput{basePath: basePath, run: run}, nil
}

func (j *JSONOutput) WriteDataset(ds *models.Dataset) error {
	meta := runMetadata{
		RunInfo:         j.run,
		TotalOrders:     len(ds.Orders),
		TotalOrderItems: len(ds.OrderItems),
		TotalSales:      ds.TotalSales(),
		Tables:          make(map[string]int),
	}
	for _, t := range Tables(ds) {
		meta.Tables[t.Name] = len(t.Rows)
	}
	data, err := json.MarshalIndent(meta, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(j.basePath, metadataFile), data, 0o644)
}

func (j *JSONOutput) WriteTable(table *models.Table) error {
	records := make([]orderedRecord, len(table.Rows))
	for i, row := range table.Rows {
		records[i] = orderedRecord{columns: table.Columns, values: row}
	}
	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode table %s: %w", table.Name, err)
	}
	return os.WriteFile(filepath.Join(j.basePath, table.Name+".json"), data, 0o644)
}

func (j *JSONOutput) Close() error {
	return nil
}

// orderedRecord marshals a row as an object without losing column order.
type orderedRecord struct {
	columns []models.Column
	values  []interface{}
}

func (r orderedRecord) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, column := range r.columns {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(column.Name)
		if err != nil {
			return nil, err
		}
		value, err := json.Marshal(models.JSONValue(column, r.values[i]))
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(value)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
