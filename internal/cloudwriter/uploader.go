package cloudwriter

import (
	"context"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
)

// Uploader copies exported files into a bucket, keeping their layout below a prefix.
type Uploader struct {
	factory CloudWriterFactory
	bucket  string
	prefix  string
}

func NewUploader(factory CloudWriterFactory, bucket, prefix string) *Uploader {
	return &Uploader{factory: factory, bucket: bucket, prefix: prefix}
}

// UploadDir uploads every regular file below dir. Object keys are
// <prefix>/<base of dir>/<path relative to dir> with forward slashes.
func (u *Uploader) UploadDir(ctx context.Context, dir string) ([]string, error) {
	var keys []string
	base := filepath.Base(dir)
	err := filepath.Walk(dir, func(p string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() {
			return nil
		}
		rel, err := filepath.Rel(dir, p)
		if err != nil {
			return err
		}
		key := path.Join(u.prefix, base, filepath.ToSlash(rel))
		if err := u.UploadFile(ctx, p, key); err != nil {
			return err
		}
		keys = append(keys, key)
		return nil
	})
	if err != nil {
		return keys, fmt.Errorf("uploading %s: %w", dir, err)
	}
	return keys, nil
}

func (u *Uploader) UploadFile(ctx context.Context, localPath, key string) error {
	f, err := os.Open(localPath)
	if err != nil {
		return err
	}
	defer f.Close()

	w, err := u.factory.NewWriter(ctx, u.bucket, key)
	if err != nil {
		return fmt.Errorf("failed to create cloud writer for %s: %w", key, err)
	}
	if _, err := io.Copy(w, f); err != nil {
		w.Close()
		return fmt.Errorf("failed to buffer %s: %w", localPath, err)
	}
	return w.Close()
}
