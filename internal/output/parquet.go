package output

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/chrisdamba/cafesim/internal/models"
	"github.com/xitongsys/parquet-go-source/local"
	"github.com/xitongsys/parquet-go/writer"
)

const parquetParallelism = 4

// ParquetOutput writes one <table>.parquet per table. Every column is OPTIONAL so
// missing temperatures survive as nulls; dates and timestamps are stored as UTF8 text.
type ParquetOutput struct {
	basePath string
}

func NewParquetOutput(basePath string) (*ParquetOutput, error) {
	if err := os.MkdirAll(basePath, os.ModePerm); err != nil {
		return nil, err
	}
	return &ParquetOutput{basePath: basePath}, nil
}

func (p *ParquetOutput) WriteTable(table *models.Table) error {
	filePath := filepath.Join(p.basePath, table.Name+".parquet")
	fw, err := local.NewLocalFileWriter(filePath)
	if err != nil {
		return fmt.Errorf("failed to create local file writer: %w", err)
	}
	defer fw.Close()

	pw, err := writer.NewCSVWriter(parquetSchema(table.Columns), fw, parquetParallelism)
	if err != nil {
		return fmt.Errorf("failed to create ParquetWriter: %w", err)
	}

	for _, row := range table.Rows {
		if err := pw.Write(parquetRow(table.Columns, row)); err != nil {
			return fmt.Errorf("failed to write row: %w", err)
		}
	}
	if err := pw.WriteStop(); err != nil {
		return fmt.Errorf("failed to finish parquet file: %w", err)
	}
	return nil
}

func (p *ParquetOutput) Close() error {
	return nil
}

func parquetSchema(columns []models.Column) []string {
	md := make([]string, len(columns))
	for i, c := range columns {
		md[i] = fmt.Sprintf("name=%s, %s, repetitiontype=OPTIONAL", c.Name, parquetType(c.Type))
	}
	return md
}

func parquetType(t models.ColumnType) string {
	switch t {
	case models.ColumnInt:
		return "type=INT64"
	case models.ColumnFloat:
		return "type=DOUBLE"
	case models.ColumnBool:
		return "type=BOOLEAN"
	default:
		return "type=BYTE_ARRAY, convertedtype=UTF8"
	}
}

func parquetRow(columns []models.Column, row []interface{}) []interface{} {
	out := make([]interface{}, len(columns))
	for i, c := range columns {
		v := row[i]
		if models.IsNull(v) {
			continue
		}
		switch c.Type {
		case models.ColumnTimestamp, models.ColumnDate:
			out[i] = models.FormatCell(c, v)
		default:
			out[i] = v
		}
	}
	return out
}
