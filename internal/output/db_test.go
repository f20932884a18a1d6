package output

import (
	"context"
	"testing"

	"github.com/chrisdamba/cafesim/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRepository struct {
	rows   map[string]int
	closed bool
}

func (f *fakeRepository) Replace(_ context.Context, table *models.Table) error {
	f.rows[table.Name] = len(table.Rows)
	return nil
}

func (f *fakeRepository) Count(_ context.Context, name string) (int, error) {
	return f.rows[name], nil
}

func (f *fakeRepository) Close() {
	f.closed = true
}

func TestDBOutput(t *testing.T) {
	ds := sampleDataset()
	repo := &fakeRepository{rows: make(map[string]int)}
	out := NewDBOutput(context.Background(), repo)

	require.NoError(t, writeAll(out, ds, Tables(ds)))
	require.NoError(t, out.Close())

	assert.True(t, repo.closed)
	assert.Len(t, repo.rows, 8)
	n, err := repo.Count(context.Background(), TableOrderItems)
	require.NoError(t, err)
	assert.Equal(t, 3, n)
}
