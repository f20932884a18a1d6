package postgres

import (
	"context"
	"fmt"
	"strings"

	"github.com/chrisdamba/cafesim/internal/models"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type TableRepository struct {
	pool   *pgxpool.Pool
	schema string
}

func NewTableRepository(pool *pgxpool.Pool, schema string) *TableRepository {
	if schema == "" {
		schema = "public"
	}
	return &TableRepository{pool: pool, schema: schema}
}

// Connect opens a pool against connString and checks the server is reachable.
func Connect(ctx context.Context, connString, schema string) (*TableRepository, error) {
	pool, err := pgxpool.New(ctx, connString)
	if err != nil {
		return nil, fmt.Errorf("error connecting to database: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("error pinging database: %w", err)
	}
	return NewTableRepository(pool, schema), nil
}

func (r *TableRepository) Replace(ctx context.Context, table *models.Table) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	ident := pgx.Identifier{r.schema, table.Name}
	if _, err := tx.Exec(ctx, "DROP TABLE IF EXISTS "+ident.Sanitize()); err != nil {
		return fmt.Errorf("failed to drop %s: %w", table.Name, err)
	}
	if _, err := tx.Exec(ctx, createTableStatement(r.schema, table)); err != nil {
		return fmt.Errorf("failed to create %s: %w", table.Name, err)
	}

	_, err = tx.CopyFrom(
		ctx,
		ident,
		table.Header(),
		pgx.CopyFromSlice(len(table.Rows), func(i int) ([]interface{}, error) {
			return copyRow(table.Rows[i]), nil
		}),
	)
	if err != nil {
		return fmt.Errorf("failed to load %s: %w", table.Name, err)
	}
	return tx.Commit(ctx)
}

func (r *TableRepository) Count(ctx context.Context, tableName string) (int, error) {
	var count int
	query := "SELECT COUNT(*) FROM " + pgx.Identifier{r.schema, tableName}.Sanitize()
	err := r.pool.QueryRow(ctx, query).Scan(&count)
	return count, err
}

func (r *TableRepository) Close() {
	r.pool.Close()
}

func createTableStatement(schema string, table *models.Table) string {
	defs := make([]string, len(table.Columns))
	for i, c := range table.Columns {
		defs[i] = fmt.Sprintf("%s %s", pgx.Identifier{c.Name}.Sanitize(), sqlType(c.Type))
	}
	return fmt.Sprintf("CREATE TABLE %s (\n    %s\n)",
		pgx.Identifier{schema, table.Name}.Sanitize(), strings.Join(defs, ",\n    "))
}

func sqlType(t models.ColumnType) string {
	switch t {
	case models.ColumnInt:
		return "BIGINT"
	case models.ColumnFloat:
		return "DOUBLE PRECISION"
	case models.ColumnBool:
		return "BOOLEAN"
	case models.ColumnTimestamp:
		return "TIMESTAMP"
	case models.ColumnDate:
		return "DATE"
	default:
		return "TEXT"
	}
}

// copyRow maps NaN floats to SQL NULL.
func copyRow(row []interface{}) []interface{} {
	out := make([]interface{}, len(row))
	for i, v := range row {
		if models.IsNull(v) {
			out[i] = nil
			continue
		}
		out[i] = v
	}
	return out
}
