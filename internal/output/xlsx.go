package output

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/chrisdamba/cafesim/internal/models"
	"github.com/xuri/excelize/v2"
)

const defaultSheet = "Sheet1"

// XLSXOutput collects every table into one workbook, a sheet per table, saved on Close.
type XLSXOutput struct {
	path   string
	file   *excelize.File
	sheets []string
}

func NewXLSXOutput(basePath, fileName string) (*XLSXOutput, error) {
	if err := os.MkdirAll(basePath, os.ModePerm); err != nil {
		return nil, err
	}
	if fileName == "" {
		fileName = "cafe_mock_data.xlsx"
	}
	return &XLSXOutput{
		path: filepath.Join(basePath, fileName),
		file: excelize.NewFile(),
	}, nil
}

func (x *XLSXOutput) WriteTable(table *models.Table) error {
	if _, err := x.file.NewSheet(table.Name); err != nil {
		return err
	}
	x.sheets = append(x.sheets, table.Name)

	header := make([]interface{}, len(table.Columns))
	for i, h := range table.Header() {
		header[i] = h
	}
	if err := x.file.SetSheetRow(table.Name, "A1", &header); err != nil {
		return err
	}

	for r, row := range table.Rows {
		cells := make([]interface{}, len(row))
		for i, column := range table.Columns {
			cells[i] = models.JSONValue(column, row[i])
		}
		cell, err := excelize.CoordinatesToCellName(1, r+2)
		if err != nil {
			return err
		}
		if err := x.file.SetSheetRow(table.Name, cell, &cells); err != nil {
			return fmt.Errorf("row %d: %w", r+1, err)
		}
	}
	return nil
}

func (x *XLSXOutput) Close() error {
	defer x.file.Close()
	if len(x.sheets) > 0 {
		if err := x.file.DeleteSheet(defaultSheet); err != nil {
			return err
		}
		index, err := x.file.GetSheetIndex(x.sheets[0])
		if err != nil {
			return err
		}
		x.file.SetActiveSheet(index)
	}
	if err := x.file.SaveAs(x.path); err != nil {
		return fmt.Errorf("failed to save workbook %s: %w", x.path, err)
	}
	return nil
}
