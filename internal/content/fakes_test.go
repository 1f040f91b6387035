package content

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/chethancinemas/cinema-admin/internal/models"
)

// fakeObjectStore is an in-memory ObjectStore. chunk controls how many
// bytes each progress callback reports at a time.
type fakeObjectStore struct {
	chunk int64

	uploadErr error
	deleteErr error

	stored  map[string][]byte
	deleted []string
	infos   []ObjectInfo
	missing map[string]bool
}

func newFakeObjectStore() *fakeObjectStore {
	return &fakeObjectStore{stored: map[string][]byte{}, missing: map[string]bool{}}
}

func (f *fakeObjectStore) Upload(ctx context.Context, path, contentType string, r io.Reader, size int64, progress func(written int64)) (string, error) {
	if f.uploadErr != nil {
		return "", f.uploadErr
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return "", err
	}
	if progress != nil {
		step := f.chunk
		if step <= 0 {
			step = int64(len(data))
		}
		for written := step; written < int64(len(data)); written += step {
			progress(written)
		}
		progress(int64(len(data)))
	}
	f.stored[path] = data
	return "https://storage.example.com/test-bucket/" + path, nil
}

func (f *fakeObjectStore) Delete(ctx context.Context, path string) error {
	if f.deleteErr != nil {
		return f.deleteErr
	}
	f.deleted = append(f.deleted, path)
	delete(f.stored, path)
	return nil
}

func (f *fakeObjectStore) Exists(ctx context.Context, path string) (bool, error) {
	if f.missing[path] {
		return false, nil
	}
	if _, ok := f.stored[path]; ok {
		return true, nil
	}
	for _, info := range f.infos {
		if info.Path == path {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeObjectStore) List(ctx context.Context, prefix string) ([]ObjectInfo, error) {
	return f.infos, nil
}

// fakeDocumentStore is an in-memory DocumentStore preserving insertion
// order per namespace.
type fakeDocumentStore struct {
	insertErr error
	updateErr error
	deleteErr error
	listErr   error

	counts   map[string]int64
	countErr map[string]error

	nextID   int
	items    map[string][]*models.ContentItem
	inserted []insertedDoc
	updates  []updateCall
}

type insertedDoc struct {
	ns     string
	fields map[string]any
}

type updateCall struct {
	ns     string
	id     string
	fields map[string]any
}

func newFakeDocumentStore() *fakeDocumentStore {
	return &fakeDocumentStore{items: map[string][]*models.ContentItem{}}
}

func (f *fakeDocumentStore) seed(ns string, item models.ContentItem) *models.ContentItem {
	copied := item
	f.items[ns] = append(f.items[ns], &copied)
	return &copied
}

func (f *fakeDocumentStore) find(ns, id string) *models.ContentItem {
	for _, it := range f.items[ns] {
		if it.ID == id {
			return it
		}
	}
	return nil
}

func (f *fakeDocumentStore) Insert(ctx context.Context, ns string, fields map[string]any) (string, error) {
	if f.insertErr != nil {
		return "", f.insertErr
	}
	f.nextID++
	id := fmt.Sprintf("doc-%d", f.nextID)
	f.inserted = append(f.inserted, insertedDoc{ns: ns, fields: fields})

	item := &models.ContentItem{ID: id, CreatedAt: time.Now(), UpdatedAt: time.Now()}
	if v, ok := fields["title"].(string); ok {
		item.Title = v
	}
	if v, ok := fields["imageUrl"].(string); ok {
		item.ImageURL = v
	}
	if v, ok := fields["storagePath"].(string); ok {
		item.StoragePath = v
	}
	if v, ok := fields["isActive"].(bool); ok {
		item.IsActive = v
	}
	if v, ok := fields["year"].(int); ok {
		item.Year = v
	}
	if v, ok := fields["status"].(string); ok {
		item.Status = v
	}
	f.items[ns] = append(f.items[ns], item)
	return id, nil
}

func (f *fakeDocumentStore) Update(ctx context.Context, ns, id string, fields map[string]any) error {
	if f.updateErr != nil {
		return f.updateErr
	}
	item := f.find(ns, id)
	if item == nil {
		return ErrNotFound
	}
	f.updates = append(f.updates, updateCall{ns: ns, id: id, fields: fields})
	if v, ok := fields["isActive"].(bool); ok {
		item.IsActive = v
	}
	if v, ok := fields["needsReconcile"].(bool); ok {
		item.NeedsReconcile = v
	}
	if v, ok := fields["title"].(string); ok {
		item.Title = v
	}
	if v, ok := fields["imageUrl"].(string); ok {
		item.ImageURL = v
	}
	if v, ok := fields["storagePath"].(string); ok {
		item.StoragePath = v
	}
	return nil
}

func (f *fakeDocumentStore) Delete(ctx context.Context, ns, id string) error {
	if f.deleteErr != nil {
		return f.deleteErr
	}
	items := f.items[ns]
	for i, it := range items {
		if it.ID == id {
			f.items[ns] = append(items[:i], items[i+1:]...)
			return nil
		}
	}
	return ErrNotFound
}

func (f *fakeDocumentStore) Get(ctx context.Context, ns, id string) (*models.ContentItem, error) {
	item := f.find(ns, id)
	if item == nil {
		return nil, ErrNotFound
	}
	copied := *item
	return &copied, nil
}

func (f *fakeDocumentStore) List(ctx context.Context, ns string) ([]models.ContentItem, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	out := make([]models.ContentItem, 0, len(f.items[ns]))
	for _, it := range f.items[ns] {
		out = append(out, *it)
	}
	return out, nil
}

func (f *fakeDocumentStore) Count(ctx context.Context, ns string) (int64, error) {
	if err := f.countErr[ns]; err != nil {
		return 0, err
	}
	if f.counts != nil {
		return f.counts[ns], nil
	}
	return int64(len(f.items[ns])), nil
}
