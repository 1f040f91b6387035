// Package config handles runtime configuration: development defaults,
// an optional .env overlay, and environment variables.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds runtime settings shared by every entrypoint.
//
// Fields:
//   - ProjectID: GCP project hosting Firestore and Identity Toolkit.
//   - Bucket: storage bucket for uploaded images.
//   - APIKey: browser API key used for Identity Toolkit password sign-in.
//   - AdminUID: the single allow-listed admin identity.
//   - SessionSecret: HMAC secret for signing session JWTs (HS256).
//   - SessionValidity: session token lifetime.
//   - MaxUploadBytes: upload size cap enforced before any bytes move.
//   - PublicURLBase: base URL for resolving stored objects.
//   - Port: listen port for the functions framework.
//   - ReconcileGrace: minimum object age before the reconciler will treat
//     an unreferenced object as an orphan.
type Config struct {
	ProjectID       string
	Bucket          string
	APIKey          string
	AdminUID        string
	SessionSecret   string
	SessionValidity time.Duration
	MaxUploadBytes  int64
	PublicURLBase   string
	Port            string
	ReconcileGrace  time.Duration
}

// LoadDefaults populates Config with development defaults.
// NOTE: the session secret default is insecure and must be overridden.
func (c *Config) LoadDefaults() {
	c.SessionSecret = "dev-session-secret"
	c.SessionValidity = 12 * time.Hour
	c.MaxUploadBytes = 5 * 1024 * 1024
	c.PublicURLBase = "https://storage.googleapis.com"
	c.Port = "8080"
	c.ReconcileGrace = 15 * time.Minute
}

// Load builds a Config from defaults, an optional .env file, and the
// environment. It fails fast when a required setting is missing.
func Load() (*Config, error) {
	// A missing .env is fine; the environment is the source of truth.
	_ = godotenv.Load()

	c := &Config{}
	c.LoadDefaults()

	c.ProjectID = getEnv("PROJECT_ID", c.ProjectID)
	c.Bucket = getEnv("STORAGE_BUCKET", c.Bucket)
	c.APIKey = getEnv("FIREBASE_API_KEY", c.APIKey)
	c.AdminUID = getEnv("ADMIN_UID", c.AdminUID)
	c.SessionSecret = getEnv("SESSION_SECRET", c.SessionSecret)
	c.PublicURLBase = getEnv("PUBLIC_URL_BASE", c.PublicURLBase)
	c.Port = getEnv("PORT", c.Port)

	var err error
	if c.SessionValidity, err = getDuration("SESSION_VALIDITY", c.SessionValidity); err != nil {
		return nil, err
	}
	if c.ReconcileGrace, err = getDuration("RECONCILE_GRACE", c.ReconcileGrace); err != nil {
		return nil, err
	}
	if v := os.Getenv("MAX_UPLOAD_BYTES"); v != "" {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid MAX_UPLOAD_BYTES %q: %w", v, err)
		}
		c.MaxUploadBytes = n
	}

	if c.ProjectID == "" {
		return nil, fmt.Errorf("PROJECT_ID environment variable must be set")
	}
	if c.Bucket == "" {
		return nil, fmt.Errorf("STORAGE_BUCKET environment variable must be set")
	}
	if c.AdminUID == "" {
		return nil, fmt.Errorf("ADMIN_UID environment variable must be set")
	}

	return c, nil
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getDuration(key string, fallback time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", key, v, err)
	}
	return d, nil
}
