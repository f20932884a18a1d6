package postgres

import (
	"context"
	"math"
	"os"
	"testing"
	"time"

	"github.com/chrisdamba/cafesim/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ordersTable() *models.Table {
	return &models.Table{
		Name: "orders",
		Columns: []models.Column{
			{Name: "order_id", Type: models.ColumnInt},
			{Name: "order_datetime", Type: models.ColumnTimestamp},
			{Name: "temperature", Type: models.ColumnFloat},
			{Name: "is_weekend", Type: models.ColumnBool},
			{Name: "gender", Type: models.ColumnString},
			{Name: "date", Type: models.ColumnDate},
		},
		Rows: [][]interface{}{
			{int64(1), time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC), 4.5, false, "female", time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)},
			{int64(2), time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC), math.NaN(), false, "male", time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)},
		},
	}
}

func TestCreateTableStatement(t *testing.T) {
	want := `CREATE TABLE "cafe"."orders" (
    "order_id" BIGINT,
    "order_datetime" TIMESTAMP,
    "temperature" DOUBLE PRECISION,
    "is_weekend" BOOLEAN,
    "gender" TEXT,
    "date" DATE
)`
	assert.Equal(t, want, createTableStatement("cafe", ordersTable()))
}

func TestCopyRow(t *testing.T) {
	table := ordersTable()
	row := copyRow(table.Rows[1])
	assert.Nil(t, row[2])
	assert.Equal(t, int64(2), row[0])
	assert.Equal(t, "male", row[4])
	// the source row keeps its NaN
	assert.True(t, math.IsNaN(table.Rows[1][2].(float64)))
}

func TestNewTableRepositoryDefaultsSchema(t *testing.T) {
	assert.Equal(t, "public", NewTableRepository(nil, "").schema)
}

// TestReplace needs a live server, e.g.
// CAFESIM_TEST_DATABASE_URL=postgres://postgres@localhost:5432/cafe_test
func TestReplace(t *testing.T) {
	connString := os.Getenv("CAFESIM_TEST_DATABASE_URL")
	if connString == "" {
		t.Skip("CAFESIM_TEST_DATABASE_URL not set")
	}
	ctx := context.Background()
	repo, err := Connect(ctx, connString, "public")
	require.NoError(t, err)
	defer repo.Close()

	table := ordersTable()
	require.NoError(t, repo.Replace(ctx, table))
	// a second load replaces rather than appends
	require.NoError(t, repo.Replace(ctx, table))

	count, err := repo.Count(ctx, table.Name)
	require.NoError(t, err)
	assert.Equal(t, 2, count)
}
