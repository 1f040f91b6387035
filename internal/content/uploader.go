package content

import (
	"context"
	"fmt"
	"io"
	"math"
	"path"
	"strings"
	"time"
)

// StoredObject is the durable result of a completed upload.
type StoredObject struct {
	Path string
	URL  string
}

// Uploader coordinates a single user-initiated transfer into the object
// store: it derives a unique storage path, streams the bytes, and reports
// integer progress. There is no automatic retry; a failed upload is
// re-invoked from scratch by the caller.
type Uploader struct {
	objects  ObjectStore
	maxBytes int64
	now      func() time.Time
}

// NewUploader returns an Uploader writing through objects. maxBytes <= 0
// disables the size cap.
func NewUploader(objects ObjectStore, maxBytes int64) *Uploader {
	return &Uploader{objects: objects, maxBytes: maxBytes, now: time.Now}
}

// FileInput is a user-selected file handed to Upload.
type FileInput struct {
	Name        string
	ContentType string
	Size        int64
	Reader      io.Reader
}

// Upload streams in into namespace ns and returns the stored object's
// path and public URL. onProgress, when non-nil, receives a monotonically
// non-decreasing percentage that reaches exactly 100 before Upload
// returns successfully.
func (u *Uploader) Upload(ctx context.Context, ns string, in FileInput, onProgress func(pct int)) (*StoredObject, error) {
	if in.Reader == nil || in.Name == "" {
		return nil, fmt.Errorf("%w: no file selected", ErrValidation)
	}
	if !strings.HasPrefix(in.ContentType, "image/") {
		return nil, fmt.Errorf("%w: not an image: %s", ErrValidation, in.ContentType)
	}
	if u.maxBytes > 0 && in.Size > u.maxBytes {
		return nil, fmt.Errorf("%w: file exceeds %d byte limit", ErrValidation, u.maxBytes)
	}

	objectPath := u.objectPath(ns, in.Name)

	last := -1
	report := func(pct int) {
		if onProgress == nil {
			return
		}
		if pct > 100 {
			pct = 100
		}
		if pct > last {
			last = pct
			onProgress(pct)
		}
	}

	url, err := u.objects.Upload(ctx, objectPath, in.ContentType, in.Reader, in.Size, func(written int64) {
		if in.Size > 0 {
			report(int(math.Round(float64(written) / float64(in.Size) * 100)))
		}
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrUpload, objectPath, err)
	}

	// The completion path must observe 100 even when the writer commits
	// everything in one chunk without a progress callback.
	report(100)

	return &StoredObject{Path: objectPath, URL: url}, nil
}

// objectPath builds the unique storage path for a new object:
// "<namespace>/<unix-millis>-<filename>".
func (u *Uploader) objectPath(ns, filename string) string {
	name := path.Base(strings.ReplaceAll(filename, "\\", "/"))
	name = strings.ReplaceAll(name, " ", "_")
	return fmt.Sprintf("%s/%d-%s", ns, u.now().UnixMilli(), name)
}

// SizeLabel renders a byte count the way gallery records store it,
// e.g. "2.35 MB".
func SizeLabel(size int64) string {
	return fmt.Sprintf("%.2f MB", float64(size)/(1024*1024))
}
