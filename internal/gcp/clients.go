// Package gcp holds the hosted-platform clients (Firestore, Cloud
// Storage, Identity Toolkit) and their implementations of the content and
// auth store interfaces. The client bundle is constructed exactly once at
// startup and passed by reference to every component that needs it.
package gcp

import (
	"context"
	"fmt"

	"cloud.google.com/go/storage"

	"cloud.google.com/go/firestore"
	"github.com/chethancinemas/cinema-admin/internal/config"
)

// Clients bundles the platform clients for one process.
type Clients struct {
	Firestore *firestore.Client
	Storage   *storage.Client
	Identity  *IdentityClient

	cfg *config.Config
}

// NewClients dials the platform once from configuration.
func NewClients(ctx context.Context, cfg *config.Config) (*Clients, error) {
	firestoreClient, err := NewFirestoreClient(ctx, cfg.ProjectID)
	if err != nil {
		return nil, err
	}

	storageClient, err := storage.NewClient(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to create Storage client: %w", err)
	}

	// The reconciler runs without an API key; only the login surface
	// needs the identity service.
	var identityClient *IdentityClient
	if cfg.APIKey != "" {
		identityClient, err = NewIdentityClient(ctx, cfg.APIKey)
		if err != nil {
			return nil, err
		}
	}

	return &Clients{
		Firestore: firestoreClient,
		Storage:   storageClient,
		Identity:  identityClient,
		cfg:       cfg,
	}, nil
}

// Documents returns the Firestore-backed document store.
func (c *Clients) Documents() *Documents {
	return NewDocuments(c.Firestore)
}

// Objects returns the bucket-backed object store.
func (c *Clients) Objects() *Objects {
	return NewObjects(c.Storage.Bucket(c.cfg.Bucket), c.cfg.Bucket, c.cfg.PublicURLBase)
}

// Admins returns the Firestore-backed admin profile store.
func (c *Clients) Admins() *Admins {
	return NewAdmins(c.Firestore)
}

// Close releases the underlying connections.
func (c *Clients) Close() error {
	if err := c.Firestore.Close(); err != nil {
		return fmt.Errorf("closing Firestore client: %w", err)
	}
	return c.Storage.Close()
}
