package content

import (
	"context"
	"io"
	"time"

	"github.com/chethancinemas/cinema-admin/internal/models"
)

// DocumentStore is the per-namespace document access used by the content
// services. Implementations stamp createdAt/updatedAt with the store's
// server-side clock: Insert stamps both, Update stamps updatedAt only.
type DocumentStore interface {
	// Insert adds a new document and returns its store-assigned id.
	Insert(ctx context.Context, ns string, fields map[string]any) (string, error)
	// Update applies a partial update to an existing document.
	Update(ctx context.Context, ns, id string, fields map[string]any) error
	// Delete removes a document. Deleting a missing id is an error.
	Delete(ctx context.Context, ns, id string) error
	// Get fetches a single document, or ErrNotFound.
	Get(ctx context.Context, ns, id string) (*models.ContentItem, error)
	// List fetches all documents ordered by createdAt descending.
	// Ordering is store-side; callers must not re-sort.
	List(ctx context.Context, ns string) ([]models.ContentItem, error)
	// Count returns the number of documents in the namespace.
	Count(ctx context.Context, ns string) (int64, error)
}

// ObjectInfo describes one stored object, as seen by the reconciler.
type ObjectInfo struct {
	Path    string
	Created time.Time
}

// ObjectStore is the binary asset store backing every namespace.
type ObjectStore interface {
	// Upload streams r to path and returns the object's public URL.
	// progress, when non-nil, receives the cumulative byte count as the
	// transfer commits chunks.
	Upload(ctx context.Context, path, contentType string, r io.Reader, size int64, progress func(written int64)) (string, error)
	// Delete removes the object at path.
	Delete(ctx context.Context, path string) error
	// Exists reports whether an object is present at path.
	Exists(ctx context.Context, path string) (bool, error)
	// List returns the objects under prefix.
	List(ctx context.Context, prefix string) ([]ObjectInfo, error)
}
