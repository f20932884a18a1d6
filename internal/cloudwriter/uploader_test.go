package cloudwriter

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type bufferWriter struct {
	bytes.Buffer
	onClose func([]byte)
}

func (b *bufferWriter) Close() error {
	b.onClose(b.Bytes())
	return nil
}

type fakeFactory struct {
	objects map[string][]byte
	fail    error
}

func (f *fakeFactory) NewWriter(_ context.Context, bucket, objectPath string) (CloudWriter, error) {
	if f.fail != nil {
		return nil, f.fail
	}
	key := bucket + "/" + objectPath
	return &bufferWriter{onClose: func(data []byte) { f.objects[key] = data }}, nil
}

func TestUploadDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "json")
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "nested"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "orders.json"), []byte(`[{"order_id":1}]`), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "nested", "metadata.json"), []byte(`{}`), 0o644))

	factory := &fakeFactory{objects: make(map[string][]byte)}
	keys, err := NewUploader(factory, "bucket", "exports/2024").UploadDir(context.Background(), dir)
	require.NoError(t, err)

	sort.Strings(keys)
	assert.Equal(t, []string{"exports/2024/json/nested/metadata.json", "exports/2024/json/orders.json"}, keys)
	assert.Equal(t, []byte(`[{"order_id":1}]`), factory.objects["bucket/exports/2024/json/orders.json"])
}

func TestUploadDirWithoutPrefix(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "csv")
	require.NoError(t, os.MkdirAll(dir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "orders.csv"), []byte("order_id\n1\n"), 0o644))

	factory := &fakeFactory{objects: make(map[string][]byte)}
	keys, err := NewUploader(factory, "bucket", "").UploadDir(context.Background(), dir)
	require.NoError(t, err)
	assert.Equal(t, []string{"csv/orders.csv"}, keys)
}

func TestUploadDirErrors(t *testing.T) {
	factory := &fakeFactory{objects: make(map[string][]byte)}
	_, err := NewUploader(factory, "bucket", "").UploadDir(context.Background(), filepath.Join(t.TempDir(), "missing"))
	assert.Error(t, err)

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.csv"), []byte("x"), 0o644))
	factory.fail = errors.New("access denied")
	_, err = NewUploader(factory, "bucket", "").UploadDir(context.Background(), dir)
	assert.ErrorContains(t, err, "access denied")
}

func TestContentType(t *testing.T) {
	assert.Equal(t, "text/csv", contentType("runs/csv/orders.csv"))
	assert.Equal(t, "application/json", contentType("runs/json/metadata.JSON"))
	assert.Equal(t, "application/vnd.apache.parquet", contentType("orders.parquet"))
	assert.Equal(t, "application/octet-stream", contentType("README"))
}
