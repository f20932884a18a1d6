package output

import (
	"context"

	"github.com/chrisdamba/cafesim/internal/models"
	"github.com/chrisdamba/cafesim/internal/repositories"
)

// DBOutput replaces each table in the database with the freshly generated rows.
type DBOutput struct {
	ctx  context.Context
	repo repositories.TableRepository
}

func NewDBOutput(ctx context.Context, repo repositories.TableRepository) *DBOutput {
	return &DBOutput{ctx: ctx, repo: repo}
}

func (d *DBOutput) WriteTable(table *models.Table) error {
	if err := d.repo.Replace(d.ctx, table); err != nil {
		return err
	}
	log.Debugf("loaded %d rows into %s", len(table.Rows), table.Name)
	return nil
}

func (d *DBOutput) Close() error {
	d.repo.Close()
	return nil
}
