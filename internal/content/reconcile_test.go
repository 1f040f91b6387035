package content

import (
	"context"
	"testing"
	"time"

	"github.com/chethancinemas/cinema-admin/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReconcileDeletesAgedOrphans(t *testing.T) {
	now := time.Now()

	docs := newFakeDocumentStore()
	docs.seed(models.NamespaceGallery, models.ContentItem{ID: "g1", StoragePath: "gallery/1-kept.png"})

	objects := newFakeObjectStore()
	objects.infos = []ObjectInfo{
		{Path: "gallery/1-kept.png", Created: now.Add(-2 * time.Hour)},
		{Path: "gallery/2-orphan.png", Created: now.Add(-2 * time.Hour)},
		{Path: "gallery/3-inflight.png", Created: now.Add(-time.Minute)},
	}

	r := NewReconciler(docs, objects, time.Hour, nil)
	r.now = func() time.Time { return now }

	report, err := r.Run(context.Background(), models.NamespaceGallery)
	require.NoError(t, err)

	assert.Equal(t, 1, report.OrphansDeleted)
	assert.Equal(t, []string{"gallery/2-orphan.png"}, objects.deleted)
	assert.NotEmpty(t, report.RunID)
}

func TestReconcileHonorsURLOnlyReferences(t *testing.T) {
	now := time.Now()

	docs := newFakeDocumentStore()
	docs.seed(models.NamespaceGallery, models.ContentItem{
		ID:       "g1",
		ImageURL: "https://firebasestorage.googleapis.com/v0/b/bkt/o/gallery%2F1-legacy.png?alt=media",
	})

	objects := newFakeObjectStore()
	objects.infos = []ObjectInfo{
		{Path: "gallery/1-legacy.png", Created: now.Add(-2 * time.Hour)},
	}

	r := NewReconciler(docs, objects, time.Hour, nil)
	r.now = func() time.Time { return now }

	report, err := r.Run(context.Background(), models.NamespaceGallery)
	require.NoError(t, err)
	assert.Zero(t, report.OrphansDeleted)
	assert.Empty(t, objects.deleted)
}

func TestReconcileFlagsRecordsWithMissingObjects(t *testing.T) {
	docs := newFakeDocumentStore()
	docs.seed(models.NamespaceProjects, models.ContentItem{ID: "p1", StoragePath: "projects/1-gone.png"})
	docs.seed(models.NamespaceProjects, models.ContentItem{ID: "p2", StoragePath: "projects/2-here.png"})

	objects := newFakeObjectStore()
	objects.infos = []ObjectInfo{{Path: "projects/2-here.png", Created: time.Now()}}
	objects.missing["projects/1-gone.png"] = true

	r := NewReconciler(docs, objects, time.Hour, nil)
	report, err := r.Run(context.Background(), models.NamespaceProjects)
	require.NoError(t, err)

	assert.Equal(t, 1, report.FlaggedMissing)
	assert.True(t, docs.find(models.NamespaceProjects, "p1").NeedsReconcile)
	assert.False(t, docs.find(models.NamespaceProjects, "p2").NeedsReconcile)
}

func TestReconcileSkipsAlreadyFlaggedRecords(t *testing.T) {
	docs := newFakeDocumentStore()
	docs.seed(models.NamespaceProjects, models.ContentItem{
		ID:             "p1",
		StoragePath:    "projects/1-gone.png",
		NeedsReconcile: true,
	})

	objects := newFakeObjectStore()
	objects.missing["projects/1-gone.png"] = true

	r := NewReconciler(docs, objects, time.Hour, nil)
	report, err := r.Run(context.Background(), models.NamespaceProjects)
	require.NoError(t, err)
	assert.Zero(t, report.FlaggedMissing)
	assert.Empty(t, docs.updates)
}
