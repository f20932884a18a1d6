package repositories

import (
	"context"

	"github.com/chrisdamba/cafesim/internal/models"
)

// TableRepository stores generated tables in a relational database.
type TableRepository interface {
	// Replace drops any previous copy of the table, recreates it and bulk loads the rows.
	Replace(ctx context.Context, table *models.Table) error
	Count(ctx context.Context, tableName string) (int, error)
	Close()
}
