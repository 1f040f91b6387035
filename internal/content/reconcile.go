package content

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
)

// Reconciler repairs the two ways the object store and document store can
// diverge: objects no document references (a write failed after its
// upload) and documents whose object is gone (a document delete failed
// after its object delete). Orphans younger than the grace period are
// left alone so in-flight uploads are never collected.
type Reconciler struct {
	docs    DocumentStore
	objects ObjectStore
	grace   time.Duration
	now     func() time.Time
	log     *slog.Logger
}

// NewReconciler wires a Reconciler over the two stores.
func NewReconciler(docs DocumentStore, objects ObjectStore, grace time.Duration, log *slog.Logger) *Reconciler {
	if log == nil {
		log = slog.Default()
	}
	return &Reconciler{docs: docs, objects: objects, grace: grace, now: time.Now, log: log}
}

// ReconcileReport summarizes one pass over a namespace.
type ReconcileReport struct {
	RunID          string
	Namespace      string
	OrphansDeleted int
	FlaggedMissing int
}

// Run performs one best-effort pass over ns. Per-object and per-document
// failures are logged and skipped; only a failed listing fails the pass.
func (r *Reconciler) Run(ctx context.Context, ns string) (*ReconcileReport, error) {
	report := &ReconcileReport{RunID: uuid.NewString(), Namespace: ns}
	log := r.log.With("runId", report.RunID, "namespace", ns)

	items, err := r.docs.List(ctx, ns)
	if err != nil {
		return nil, fmt.Errorf("%w: listing %s documents: %v", ErrFetch, ns, err)
	}

	referenced := make(map[string]bool, len(items))
	for _, it := range items {
		p := it.StoragePath
		if p == "" && it.ImageURL != "" {
			if parsed, perr := PathFromURL(it.ImageURL); perr == nil {
				p = parsed
			}
		}
		if p != "" {
			referenced[p] = true
		}
	}

	objects, err := r.objects.List(ctx, ns+"/")
	if err != nil {
		return nil, fmt.Errorf("%w: listing %s objects: %v", ErrFetch, ns, err)
	}

	cutoff := r.now().Add(-r.grace)
	for _, obj := range objects {
		if referenced[obj.Path] || obj.Created.After(cutoff) {
			continue
		}
		if derr := r.objects.Delete(ctx, obj.Path); derr != nil {
			log.Warn("failed to delete orphaned object", "path", obj.Path, "error", derr)
			continue
		}
		log.Info("deleted orphaned object", "path", obj.Path)
		report.OrphansDeleted++
	}

	for _, it := range items {
		if it.StoragePath == "" || it.NeedsReconcile {
			continue
		}
		exists, eerr := r.objects.Exists(ctx, it.StoragePath)
		if eerr != nil {
			log.Warn("failed to probe object", "id", it.ID, "path", it.StoragePath, "error", eerr)
			continue
		}
		if exists {
			continue
		}
		if uerr := r.docs.Update(ctx, ns, it.ID, map[string]any{"needsReconcile": true}); uerr != nil {
			log.Warn("failed to flag record with missing object", "id", it.ID, "error", uerr)
			continue
		}
		log.Info("flagged record with missing object", "id", it.ID, "path", it.StoragePath)
		report.FlaggedMissing++
	}

	log.Info("reconciliation pass finished",
		"orphansDeleted", report.OrphansDeleted, "flaggedMissing", report.FlaggedMissing)
	return report, nil
}
