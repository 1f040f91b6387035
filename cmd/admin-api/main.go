package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"sync"

	"github.com/GoogleCloudPlatform/functions-framework-go/funcframework"
	"github.com/GoogleCloudPlatform/functions-framework-go/functions"

	"github.com/chethancinemas/cinema-admin/internal/auth"
	"github.com/chethancinemas/cinema-admin/internal/config"
	"github.com/chethancinemas/cinema-admin/internal/content"
	"github.com/chethancinemas/cinema-admin/internal/gcp"
	"github.com/chethancinemas/cinema-admin/internal/httpapi"
)

var (
	apiHandler http.Handler
	once       sync.Once
	initErr    error
)

func init() {
	// --- Set up structured logging ---
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	functions.HTTP("AdminAPI", serve)
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

// serve is the HTTP function entry point. Clients are initialized once
// on the first request and shared by every later one.
func serve(w http.ResponseWriter, r *http.Request) {
	once.Do(func() {
		apiHandler, initErr = buildHandler(context.Background())
	})
	if initErr != nil {
		slog.Error("critical error during function initialization", "error", initErr)
		http.Error(w, "service unavailable", http.StatusInternalServerError)
		return
	}
	apiHandler.ServeHTTP(w, r)
}

func buildHandler(ctx context.Context) (http.Handler, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("FIREBASE_API_KEY environment variable must be set")
	}

	clients, err := gcp.NewClients(ctx, cfg)
	if err != nil {
		return nil, err
	}

	docs := clients.Documents()
	objects := clients.Objects()
	uploader := content.NewUploader(objects, cfg.MaxUploadBytes)

	api := httpapi.New(
		clients.Identity,
		auth.NewAllowList(cfg.AdminUID),
		clients.Admins(),
		content.NewService(docs, objects, uploader, slog.Default()),
		content.NewDashboard(docs),
		[]byte(cfg.SessionSecret),
		cfg.SessionValidity,
		slog.Default(),
	)

	slog.Info("admin API initialized", "project", cfg.ProjectID, "bucket", cfg.Bucket)
	return api.Handler(), nil
}
