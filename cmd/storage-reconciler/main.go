package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"sync"

	"github.com/GoogleCloudPlatform/functions-framework-go/funcframework"
	"github.com/GoogleCloudPlatform/functions-framework-go/functions"
	cloudevents "github.com/cloudevents/sdk-go/v2"

	"github.com/chethancinemas/cinema-admin/internal/config"
	"github.com/chethancinemas/cinema-admin/internal/content"
	"github.com/chethancinemas/cinema-admin/internal/gcp"
	"github.com/chethancinemas/cinema-admin/internal/models"
)

var (
	reconciler *content.Reconciler
	once       sync.Once
	initErr    error
)

func init() {
	// --- Set up structured logging ---
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	// Register the CloudEvent function; storage object events route here.
	functions.CloudEvent("ReconcileStorage", reconcileStorage)
}

func main() {
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	if err := funcframework.Start(port); err != nil {
		slog.Error("failed to start functions framework", "error", err)
		os.Exit(1)
	}
}

// GCSEvent is the storage object payload carried by the CloudEvent.
type GCSEvent struct {
	Bucket string `json:"bucket"`
	Name   string `json:"name"`
}

// reconcileStorage runs one reconciliation pass over the namespace the
// changed object belongs to: unreferenced objects past the grace period
// are deleted, and records pointing at missing objects are flagged.
func reconcileStorage(ctx context.Context, e cloudevents.Event) error {
	once.Do(func() {
		initErr = initialize(context.Background())
	})
	if initErr != nil {
		slog.Error("critical error during function initialization", "error", initErr)
		return initErr
	}

	var gcsEvent GCSEvent
	if err := json.Unmarshal(e.Data(), &gcsEvent); err != nil {
		slog.Error("failed to unmarshal event data", "error", err, "data", string(e.Data()))
		return fmt.Errorf("json.Unmarshal: %w", err)
	}

	ns, _, _ := strings.Cut(gcsEvent.Name, "/")
	if !models.ValidNamespace(ns) {
		slog.Info("object outside content namespaces, skipping", "object", gcsEvent.Name)
		return nil
	}

	report, err := reconciler.Run(ctx, ns)
	if err != nil {
		slog.Error("reconciliation pass failed", "namespace", ns, "error", err)
		return err
	}

	slog.Info("reconciliation pass complete",
		"runId", report.RunID,
		"namespace", report.Namespace,
		"orphansDeleted", report.OrphansDeleted,
		"flaggedMissing", report.FlaggedMissing)
	return nil
}

func initialize(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	clients, err := gcp.NewClients(ctx, cfg)
	if err != nil {
		return err
	}
	reconciler = content.NewReconciler(clients.Documents(), clients.Objects(), cfg.ReconcileGrace, slog.Default())
	slog.Info("storage reconciler initialized", "project", cfg.ProjectID, "bucket", cfg.Bucket)
	return nil
}
