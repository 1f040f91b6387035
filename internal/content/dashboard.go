package content

import (
	"context"
	"fmt"

	"github.com/chethancinemas/cinema-admin/internal/models"
	"golang.org/x/sync/errgroup"
)

// Dashboard aggregates per-namespace record counts for the summary tiles.
type Dashboard struct {
	docs DocumentStore
}

// NewDashboard returns a Dashboard counting through docs.
func NewDashboard(docs DocumentStore) *Dashboard {
	return &Dashboard{docs: docs}
}

// Summary issues the three count queries concurrently and joins them
// all-or-nothing: one failed count fails the whole summary.
func (d *Dashboard) Summary(ctx context.Context) (*models.DashboardSummary, error) {
	var banners, gallery, projects int64

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		banners, err = d.docs.Count(ctx, models.NamespaceBanners)
		return err
	})
	g.Go(func() error {
		var err error
		gallery, err = d.docs.Count(ctx, models.NamespaceGallery)
		return err
	})
	g.Go(func() error {
		var err error
		projects, err = d.docs.Count(ctx, models.NamespaceProjects)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("%w: counting namespaces: %v", ErrFetch, err)
	}

	return &models.DashboardSummary{
		Banners:  banners,
		Gallery:  gallery,
		Projects: projects,
		Total:    banners + gallery + projects,
	}, nil
}
