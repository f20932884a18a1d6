package output

import (
	"encoding/csv"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestCSVOutput(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "csv")
	ds := sampleDataset()

	out, err := NewCSVOutput(dir)
	require.NoError(t, err)
	require.NoError(t, writeAll(out, ds, Tables(ds)))
	require.NoError(t, out.Close())

	f, err := os.Open(filepath.Join(dir, "orders.csv"))
	require.NoError(t, err)
	defer f.Close()
	records, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)

	require.Len(t, records, 3)
	assert.Equal(t, []string{"order_id", "customer_id", "order_datetime", "hour", "weather_condition",
		"temperature", "is_weekend", "season", "gender", "age_group", "age", "total_amount"}, records[0])
	assert.Equal(t, []string{"1", "1", "2024-01-01 09:12:05", "9", "cloudy", "3.5", "false",
		"winter", "female", "twenties", "27", "1400"}, records[1])
	assert.Equal(t, "", records[2][5])

	menu, err := os.ReadFile(filepath.Join(dir, "menu_items.csv"))
	require.NoError(t, err)
	assert.Contains(t, string(menu), `"9,10"`)
}

func TestJSONOutput(t *testing.T) {
	dir := t.TempDir()
	ds := sampleDataset()

	out, err := NewJSONOutput(dir, ds.Run)
	require.NoError(t, err)
	require.NoError(t, writeAll(out, ds, Tables(ds)))

	raw, err := os.ReadFile(filepath.Join(dir, "orders.json"))
	require.NoError(t, err)
	var orders []map[string]interface{}
	require.NoError(t, json.Unmarshal(raw, &orders))
	require.Len(t, orders, 2)
	assert.Equal(t, float64(1400), orders[0]["total_amount"])
	assert.Equal(t, "2024-01-01 09:12:05", orders[0]["order_datetime"])
	assert.Nil(t, orders[1]["temperature"])
	// keys keep column order
	text := string(raw)
	assert.Less(t, strings.Index(text, `"order_id"`), strings.Index(text, `"customer_id"`))
	assert.Less(t, strings.Index(text, `"age"`), strings.Index(text, `"total_amount"`))

	raw, err = os.ReadFile(filepath.Join(dir, metadataFile))
	require.NoError(t, err)
	var meta map[string]interface{}
	require.NoError(t, json.Unmarshal(raw, &meta))
	assert.Equal(t, "ckrun0001", meta["run_id"])
	assert.Equal(t, float64(42), meta["seed"])
	assert.Equal(t, float64(2), meta["total_orders"])
	assert.Equal(t, float64(3), meta["total_order_items"])
	assert.Equal(t, float64(1800), meta["total_sales"])
	tables := meta["tables"].(map[string]interface{})
	assert.Equal(t, float64(2), tables["daily_summary"])
}

func TestXLSXOutput(t *testing.T) {
	dir := t.TempDir()
	ds := sampleDataset()

	out, err := NewXLSXOutput(dir, "")
	require.NoError(t, err)
	require.NoError(t, writeAll(out, ds, Tables(ds)))
	require.NoError(t, out.Close())

	wb, err := excelize.OpenFile(filepath.Join(dir, "cafe_mock_data.xlsx"))
	require.NoError(t, err)
	defer wb.Close()

	assert.Equal(t, tableNames(Tables(ds)), wb.GetSheetList())

	rows, err := wb.GetRows("orders")
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, "order_id", rows[0][0])
	assert.Equal(t, "1", rows[1][0])
	assert.Equal(t, "cloudy", rows[1][4])
}

func TestParquetOutput(t *testing.T) {
	dir := t.TempDir()
	ds := sampleDataset()

	out, err := NewParquetOutput(dir)
	require.NoError(t, err)
	require.NoError(t, writeAll(out, ds, Tables(ds)))
	require.NoError(t, out.Close())

	for _, name := range tableNames(Tables(ds)) {
		info, err := os.Stat(filepath.Join(dir, name+".parquet"))
		require.NoError(t, err, name)
		assert.Greater(t, info.Size(), int64(0), name)
	}
}

func TestParquetSchema(t *testing.T) {
	tables := Tables(sampleDataset())
	schema := parquetSchema(tables[2].Columns)
	assert.Equal(t, "name=order_id, type=INT64, repetitiontype=OPTIONAL", schema[0])
	assert.Equal(t, "name=order_datetime, type=BYTE_ARRAY, convertedtype=UTF8, repetitiontype=OPTIONAL", schema[2])
	assert.Equal(t, "name=temperature, type=DOUBLE, repetitiontype=OPTIONAL", schema[5])

	row := parquetRow(tables[2].Columns, tables[2].Rows[1])
	assert.Equal(t, "2024-01-02 10:40:00", row[2])
	assert.Nil(t, row[5])
}
