package gcp

import (
	"context"
	"fmt"

	"cloud.google.com/go/firestore"
	"cloud.google.com/go/firestore/apiv1/firestorepb"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/chethancinemas/cinema-admin/internal/content"
	"github.com/chethancinemas/cinema-admin/internal/models"
)

// NewFirestoreClient creates and returns a new Firestore client for the given project ID.
// It centralizes client creation for all services.
func NewFirestoreClient(ctx context.Context, projectID string) (*firestore.Client, error) {
	if projectID == "" {
		return nil, fmt.Errorf("projectID must be provided to create a firestore client")
	}

	client, err := firestore.NewClient(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to create Firestore client: %w", err)
	}

	return client, nil
}

// Documents is the Firestore implementation of content.DocumentStore.
// Timestamps are stamped with the store's server-side clock: Insert sets
// createdAt and updatedAt, Update refreshes updatedAt.
type Documents struct {
	client *firestore.Client
}

// NewDocuments wraps an existing client.
func NewDocuments(client *firestore.Client) *Documents {
	return &Documents{client: client}
}

func (d *Documents) Insert(ctx context.Context, ns string, fields map[string]any) (string, error) {
	data := make(map[string]any, len(fields)+2)
	for k, v := range fields {
		data[k] = v
	}
	data["createdAt"] = firestore.ServerTimestamp
	data["updatedAt"] = firestore.ServerTimestamp

	ref, _, err := d.client.Collection(ns).Add(ctx, data)
	if err != nil {
		return "", fmt.Errorf("adding document to %s: %w", ns, err)
	}
	return ref.ID, nil
}

func (d *Documents) Update(ctx context.Context, ns, id string, fields map[string]any) error {
	updates := make([]firestore.Update, 0, len(fields)+1)
	for k, v := range fields {
		updates = append(updates, firestore.Update{Path: k, Value: v})
	}
	updates = append(updates, firestore.Update{Path: "updatedAt", Value: firestore.ServerTimestamp})

	if _, err := d.client.Collection(ns).Doc(id).Update(ctx, updates); err != nil {
		return mapNotFound(err, fmt.Sprintf("updating %s/%s", ns, id))
	}
	return nil
}

func (d *Documents) Delete(ctx context.Context, ns, id string) error {
	// The Exists precondition turns a delete of a missing document into
	// an error instead of a silent no-op.
	if _, err := d.client.Collection(ns).Doc(id).Delete(ctx, firestore.Exists); err != nil {
		return mapNotFound(err, fmt.Sprintf("deleting %s/%s", ns, id))
	}
	return nil
}

func (d *Documents) Get(ctx context.Context, ns, id string) (*models.ContentItem, error) {
	snap, err := d.client.Collection(ns).Doc(id).Get(ctx)
	if err != nil {
		return nil, mapNotFound(err, fmt.Sprintf("getting %s/%s", ns, id))
	}
	var item models.ContentItem
	if err := snap.DataTo(&item); err != nil {
		return nil, fmt.Errorf("decoding %s/%s: %w", ns, id, err)
	}
	item.ID = snap.Ref.ID
	return &item, nil
}

func (d *Documents) List(ctx context.Context, ns string) ([]models.ContentItem, error) {
	iter := d.client.Collection(ns).OrderBy("createdAt", firestore.Desc).Documents(ctx)
	defer iter.Stop()

	var items []models.ContentItem
	for {
		snap, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("iterating %s: %w", ns, err)
		}
		var item models.ContentItem
		if err := snap.DataTo(&item); err != nil {
			return nil, fmt.Errorf("decoding %s/%s: %w", ns, snap.Ref.ID, err)
		}
		item.ID = snap.Ref.ID
		items = append(items, item)
	}
	return items, nil
}

func (d *Documents) Count(ctx context.Context, ns string) (int64, error) {
	result, err := d.client.Collection(ns).NewAggregationQuery().WithCount("all").Get(ctx)
	if err != nil {
		return 0, fmt.Errorf("counting %s: %w", ns, err)
	}
	value, ok := result["all"]
	if !ok {
		return 0, fmt.Errorf("counting %s: aggregation returned no value", ns)
	}
	count, ok := value.(*firestorepb.Value)
	if !ok {
		return 0, fmt.Errorf("counting %s: unexpected aggregation type %T", ns, value)
	}
	return count.GetIntegerValue(), nil
}

// Admins is the Firestore implementation of auth.ProfileStore.
type Admins struct {
	client *firestore.Client
}

// NewAdmins wraps an existing client.
func NewAdmins(client *firestore.Client) *Admins {
	return &Admins{client: client}
}

// RecordLogin creates admins/<uid> on first login and stamps lastLogin on
// every later one.
func (a *Admins) RecordLogin(ctx context.Context, uid, email string) error {
	ref := a.client.Collection(models.AdminsCollection).Doc(uid)

	_, err := ref.Get(ctx)
	if status.Code(err) == codes.NotFound {
		// Zero time fields pick up the server timestamp via the
		// serverTimestamp struct tags.
		_, err = ref.Set(ctx, models.AdminProfile{
			UID:    uid,
			Email:  email,
			Role:   "super_admin",
			Status: "active",
		})
		if err != nil {
			return fmt.Errorf("creating admin profile %s: %w", uid, err)
		}
		return nil
	}
	if err != nil {
		return fmt.Errorf("loading admin profile %s: %w", uid, err)
	}

	_, err = ref.Update(ctx, []firestore.Update{
		{Path: "lastLogin", Value: firestore.ServerTimestamp},
	})
	if err != nil {
		return fmt.Errorf("stamping lastLogin for %s: %w", uid, err)
	}
	return nil
}

// Watch streams snapshots of admins/<uid>. The stream is torn down when
// ctx is cancelled.
func (a *Admins) Watch(ctx context.Context, uid string) (<-chan models.AdminProfile, error) {
	iter := a.client.Collection(models.AdminsCollection).Doc(uid).Snapshots(ctx)
	ch := make(chan models.AdminProfile, 1)

	go func() {
		defer iter.Stop()
		defer close(ch)
		for {
			snap, err := iter.Next()
			if err != nil {
				return
			}
			if !snap.Exists() {
				continue
			}
			var profile models.AdminProfile
			if err := snap.DataTo(&profile); err != nil {
				continue
			}
			select {
			case ch <- profile:
			case <-ctx.Done():
				return
			}
		}
	}()

	return ch, nil
}

func mapNotFound(err error, op string) error {
	if status.Code(err) == codes.NotFound {
		return fmt.Errorf("%s: %w", op, content.ErrNotFound)
	}
	return fmt.Errorf("%s: %w", op, err)
}
