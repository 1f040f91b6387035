package content

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"strings"

	"github.com/chethancinemas/cinema-admin/internal/models"
)

// Year bounds accepted for project records.
const (
	MinYear = 2000
	MaxYear = 2100
)

// Service implements the create/update/toggle/delete lifecycle for every
// content namespace. A mutation that needs both stores runs as a strict
// sequence: upload first, document write second, with a best-effort
// compensating delete of the uploaded object when the write fails.
type Service struct {
	docs    DocumentStore
	objects ObjectStore
	upload  *Uploader
	log     *slog.Logger
}

// NewService wires a Service over the two stores.
func NewService(docs DocumentStore, objects ObjectStore, upload *Uploader, log *slog.Logger) *Service {
	if log == nil {
		log = slog.Default()
	}
	return &Service{docs: docs, objects: objects, upload: upload, log: log}
}

// CreateInput carries the user-entered fields for a new record. File is
// required for banners and gallery, optional for projects.
type CreateInput struct {
	Title string
	Year  int
	Link  string
	File  *FileInput
}

// UpdateInput carries the editable fields of a project. A nil File keeps
// the current image.
type UpdateInput struct {
	Title string
	Year  int
	Link  string
	File  *FileInput
}

// Create uploads the file (if any) and inserts the namespace document.
// The returned item has its store-assigned id set; timestamps are stamped
// server-side and appear on the next fetch.
func (s *Service) Create(ctx context.Context, ns string, in CreateInput, onProgress func(pct int)) (*models.ContentItem, error) {
	if err := s.validateCreate(ns, in); err != nil {
		return nil, err
	}

	var obj *StoredObject
	if in.File != nil {
		var err error
		obj, err = s.upload.Upload(ctx, ns, *in.File, onProgress)
		if err != nil {
			return nil, err
		}
	}

	item := s.newItem(ns, in, obj)
	id, err := s.docs.Insert(ctx, ns, s.insertFields(ns, in, obj))
	if err != nil {
		s.compensateUpload(ctx, ns, obj)
		return nil, fmt.Errorf("%w: inserting %s document: %v", ErrWrite, ns, err)
	}
	item.ID = id

	s.log.Info("content item created", "namespace", ns, "id", id, "storagePath", item.StoragePath)
	return item, nil
}

// Update edits an existing project record. When a replacement image is
// supplied, the new object is uploaded and the previous one deleted
// best-effort only after the document update succeeds.
func (s *Service) Update(ctx context.Context, ns, id string, in UpdateInput, onProgress func(pct int)) (*models.ContentItem, error) {
	if err := validateProject(in.Title, in.Year, in.Link); err != nil {
		return nil, err
	}

	existing, err := s.docs.Get(ctx, ns, id)
	if err != nil {
		return nil, fmt.Errorf("%w: loading %s/%s: %w", ErrWrite, ns, id, err)
	}

	var obj *StoredObject
	if in.File != nil {
		obj, err = s.upload.Upload(ctx, ns, *in.File, onProgress)
		if err != nil {
			return nil, err
		}
	}

	fields := map[string]any{
		"title": in.Title,
		"year":  in.Year,
		"link":  in.Link,
	}
	if obj != nil {
		fields["imageUrl"] = obj.URL
		fields["storagePath"] = obj.Path
	}

	if err := s.docs.Update(ctx, ns, id, fields); err != nil {
		s.compensateUpload(ctx, ns, obj)
		return nil, fmt.Errorf("%w: updating %s/%s: %v", ErrWrite, ns, id, err)
	}

	if obj != nil {
		s.deleteReplacedObject(ctx, existing)
		existing.ImageURL = obj.URL
		existing.StoragePath = obj.Path
	}
	existing.ID = id
	existing.Title = in.Title
	existing.Year = in.Year
	existing.Link = in.Link

	s.log.Info("content item updated", "namespace", ns, "id", id)
	return existing, nil
}

// Toggle flips the record's isActive flag via a partial update and
// returns the new value. There is no optimistic local state; callers
// re-fetch after the round trip.
func (s *Service) Toggle(ctx context.Context, ns, id string) (bool, error) {
	item, err := s.docs.Get(ctx, ns, id)
	if err != nil {
		return false, fmt.Errorf("%w: loading %s/%s: %w", ErrWrite, ns, id, err)
	}
	next := !item.IsActive
	if err := s.docs.Update(ctx, ns, id, map[string]any{"isActive": next}); err != nil {
		return false, fmt.Errorf("%w: toggling %s/%s: %v", ErrWrite, ns, id, err)
	}
	return next, nil
}

// Delete removes the stored object and the document, in that order. The
// two stores cannot be updated transactionally: a failed object delete
// still lets the document delete proceed (the reconciler collects the
// orphan later), and a failed document delete leaves the record flagged
// needsReconcile instead of silently diverging.
func (s *Service) Delete(ctx context.Context, ns, id string) error {
	item, err := s.docs.Get(ctx, ns, id)
	if err != nil {
		return fmt.Errorf("%w: loading %s/%s: %w", ErrDelete, ns, id, err)
	}

	objectPath := item.StoragePath
	if objectPath == "" && item.ImageURL != "" {
		p, perr := PathFromURL(item.ImageURL)
		if perr != nil {
			s.log.Warn("cannot recover object path from URL", "namespace", ns, "id", id, "error", perr)
		} else {
			objectPath = p
		}
	}

	if objectPath != "" {
		if derr := s.objects.Delete(ctx, objectPath); derr != nil {
			s.log.Warn("object delete failed, continuing with document delete",
				"namespace", ns, "id", id, "path", objectPath, "error", derr)
		}
	}

	if derr := s.docs.Delete(ctx, ns, id); derr != nil {
		if uerr := s.docs.Update(ctx, ns, id, map[string]any{"needsReconcile": true}); uerr != nil {
			s.log.Warn("failed to flag record for reconciliation", "namespace", ns, "id", id, "error", uerr)
		}
		return fmt.Errorf("%w: deleting %s/%s document: %v", ErrDelete, ns, id, derr)
	}

	s.log.Info("content item deleted", "namespace", ns, "id", id, "path", objectPath)
	return nil
}

// List fetches the namespace in creation order (newest first, store-side)
// and applies the view filter.
func (s *Service) List(ctx context.Context, ns string, f Filter) ([]models.ContentItem, error) {
	items, err := s.docs.List(ctx, ns)
	if err != nil {
		return nil, fmt.Errorf("%w: listing %s: %v", ErrFetch, ns, err)
	}
	return f.Apply(items), nil
}

func (s *Service) validateCreate(ns string, in CreateInput) error {
	switch ns {
	case models.NamespaceBanners, models.NamespaceGallery:
		if in.File == nil {
			return fmt.Errorf("%w: an image is required", ErrValidation)
		}
		return nil
	case models.NamespaceProjects:
		return validateProject(in.Title, in.Year, in.Link)
	default:
		return fmt.Errorf("%w: unknown namespace %q", ErrValidation, ns)
	}
}

func validateProject(title string, year int, link string) error {
	if strings.TrimSpace(title) == "" {
		return fmt.Errorf("%w: title is required", ErrValidation)
	}
	if year < MinYear || year > MaxYear {
		return fmt.Errorf("%w: year must be between %d and %d", ErrValidation, MinYear, MaxYear)
	}
	if link != "" {
		u, err := url.Parse(link)
		if err != nil || u.Scheme == "" || u.Host == "" {
			return fmt.Errorf("%w: link must be a well-formed URL", ErrValidation)
		}
	}
	return nil
}

func (s *Service) insertFields(ns string, in CreateInput, obj *StoredObject) map[string]any {
	imageURL, storagePath := "", ""
	if obj != nil {
		imageURL, storagePath = obj.URL, obj.Path
	}

	switch ns {
	case models.NamespaceBanners:
		return map[string]any{
			"imageUrl":    imageURL,
			"storagePath": storagePath,
			"isActive":    true,
		}
	case models.NamespaceGallery:
		return map[string]any{
			"imageUrl":    imageURL,
			"storagePath": storagePath,
			"title":       in.File.Name,
			"size":        SizeLabel(in.File.Size),
		}
	default: // projects
		return map[string]any{
			"title":       in.Title,
			"year":        in.Year,
			"link":        in.Link,
			"imageUrl":    imageURL,
			"storagePath": storagePath,
			"status":      models.StatusPending,
			"progress":    0,
		}
	}
}

func (s *Service) newItem(ns string, in CreateInput, obj *StoredObject) *models.ContentItem {
	item := &models.ContentItem{}
	if obj != nil {
		item.ImageURL = obj.URL
		item.StoragePath = obj.Path
	}
	switch ns {
	case models.NamespaceBanners:
		item.IsActive = true
	case models.NamespaceGallery:
		item.Title = in.File.Name
		item.SizeLabel = SizeLabel(in.File.Size)
	default:
		item.Title = in.Title
		item.Year = in.Year
		item.Link = in.Link
		item.Status = models.StatusPending
		item.Progress = 0
	}
	return item
}

func (s *Service) compensateUpload(ctx context.Context, ns string, obj *StoredObject) {
	if obj == nil {
		return
	}
	if err := s.objects.Delete(ctx, obj.Path); err != nil {
		s.log.Warn("compensating delete of uploaded object failed",
			"namespace", ns, "path", obj.Path, "error", err)
	}
}

func (s *Service) deleteReplacedObject(ctx context.Context, old *models.ContentItem) {
	objectPath := old.StoragePath
	if objectPath == "" && old.ImageURL != "" {
		p, err := PathFromURL(old.ImageURL)
		if err != nil {
			s.log.Warn("cannot recover replaced object path", "url", old.ImageURL, "error", err)
			return
		}
		objectPath = p
	}
	if objectPath == "" {
		return
	}
	if err := s.objects.Delete(ctx, objectPath); err != nil {
		s.log.Warn("deleting replaced object failed", "path", objectPath, "error", err)
	}
}
