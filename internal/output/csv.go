package output

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"

	"github.com/chrisdamba/cafesim/internal/models"
)

// CSVOutput writes one <table>.csv per table with a header row. Nulls are empty cells.
type CSVOutput struct {
	basePath string
}

func NewCSVOutput(basePath string) (*CSVOutput, error) {
	if err := os.MkdirAll(basePath, os.ModePerm); err != nil {
		return nil, err
	}
	return &CSVOutput{basePath: basePath}, nil
}

func (c *CSVOutput) WriteTable(table *models.Table) error {
	file, err := os.Create(filepath.Join(c.basePath, table.Name+".csv"))
	if err != nil {
		return fmt.Errorf("failed to create file for table %s: %w", table.Name, err)
	}
	defer file.Close()

	csvWriter := csv.NewWriter(file)
	if err := csvWriter.Write(table.Header()); err != nil {
		return err
	}
	record := make([]string, len(table.Columns))
	for _, row := range table.Rows {
		for i, column := range table.Columns {
			record[i] = models.FormatCell(column, row[i])
		}
		if err := csvWriter.Write(record); err != nil {
			return err
		}
	}
	csvWriter.Flush()
	if err := csvWriter.Error(); err != nil {
		return err
	}
	return file.Close()
}

func (c *CSVOutput) Close() error {
	return nil
}
