package content

import (
	"fmt"
	"net/url"
	"strings"
)

// PathFromURL recovers a storage object path from a resolved public URL.
// It understands the hosted download form
// ("https://firebasestorage.googleapis.com/v0/b/<bucket>/o/<escaped path>?alt=media&...")
// and the plain form ("https://storage.googleapis.com/<bucket>/<path>").
//
// Legacy documents written before storagePath was persisted carry only the
// URL; everything written now stores the canonical path alongside it, so
// this is a read-side fallback only.
func PathFromURL(raw string) (string, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return "", fmt.Errorf("unparseable object URL %q: %w", raw, err)
	}

	if i := strings.Index(u.Path, "/o/"); i >= 0 {
		escaped := u.Path[i+len("/o/"):]
		p, err := url.PathUnescape(escaped)
		if err != nil {
			return "", fmt.Errorf("unescaping object path %q: %w", escaped, err)
		}
		if p == "" {
			return "", fmt.Errorf("object URL %q has an empty path", raw)
		}
		return p, nil
	}

	// Plain form: first path segment is the bucket.
	parts := strings.SplitN(strings.TrimPrefix(u.Path, "/"), "/", 2)
	if len(parts) == 2 && parts[1] != "" {
		return parts[1], nil
	}

	return "", fmt.Errorf("cannot derive object path from URL %q", raw)
}
