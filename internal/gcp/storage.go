package gcp

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"cloud.google.com/go/storage"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/iterator"

	"github.com/chethancinemas/cinema-admin/internal/content"
)

// Objects is the Cloud Storage implementation of content.ObjectStore.
type Objects struct {
	bucket     *storage.BucketHandle
	bucketName string
	publicBase string
}

// NewObjects wraps a bucket handle. publicBase is the URL prefix objects
// resolve under, e.g. "https://storage.googleapis.com".
func NewObjects(bucket *storage.BucketHandle, bucketName, publicBase string) *Objects {
	return &Objects{
		bucket:     bucket,
		bucketName: bucketName,
		publicBase: strings.TrimSuffix(publicBase, "/"),
	}
}

// Upload streams r into the object at path using a resumable transfer and
// returns the object's public URL. progress receives the cumulative byte
// count as chunks commit.
func (o *Objects) Upload(ctx context.Context, path, contentType string, r io.Reader, size int64, progress func(written int64)) (string, error) {
	w := o.bucket.Object(path).NewWriter(ctx)
	w.ContentType = contentType
	// A small chunk size keeps the transfer resumable and the progress
	// callbacks fine-grained; the default commits 16 MiB at a time.
	w.ChunkSize = googleapi.MinUploadChunkSize
	if progress != nil {
		w.ProgressFunc = progress
	}

	if _, err := io.Copy(w, r); err != nil {
		_ = w.Close()
		return "", fmt.Errorf("writing object %s: %w", path, err)
	}
	if err := w.Close(); err != nil {
		return "", fmt.Errorf("finalizing object %s: %w", path, err)
	}

	return o.PublicURL(path), nil
}

// PublicURL resolves an object path to its public URL.
func (o *Objects) PublicURL(path string) string {
	return fmt.Sprintf("%s/%s/%s", o.publicBase, o.bucketName, path)
}

// Delete removes the object at path.
func (o *Objects) Delete(ctx context.Context, path string) error {
	if err := o.bucket.Object(path).Delete(ctx); err != nil {
		if errors.Is(err, storage.ErrObjectNotExist) {
			return fmt.Errorf("deleting object %s: %w", path, content.ErrNotFound)
		}
		return fmt.Errorf("deleting object %s: %w", path, err)
	}
	return nil
}

// Exists reports whether an object is present at path.
func (o *Objects) Exists(ctx context.Context, path string) (bool, error) {
	_, err := o.bucket.Object(path).Attrs(ctx)
	if errors.Is(err, storage.ErrObjectNotExist) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("probing object %s: %w", path, err)
	}
	return true, nil
}

// List returns the objects stored under prefix.
func (o *Objects) List(ctx context.Context, prefix string) ([]content.ObjectInfo, error) {
	it := o.bucket.Objects(ctx, &storage.Query{Prefix: prefix})

	var infos []content.ObjectInfo
	for {
		attrs, err := it.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("listing objects under %s: %w", prefix, err)
		}
		infos = append(infos, content.ObjectInfo{Path: attrs.Name, Created: attrs.Created})
	}
	return infos, nil
}
