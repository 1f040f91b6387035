// Package httpapi exposes the admin panel's backend surface: a public
// login route and an authenticated section with dashboard, banner,
// gallery and project operations.
package httpapi

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/chethancinemas/cinema-admin/internal/auth"
	"github.com/chethancinemas/cinema-admin/internal/content"
)

// loginRoute is the redirect hint returned with every rejected request.
const loginRoute = "/admin/login"

// API bundles the services behind the admin HTTP surface.
type API struct {
	authn     auth.Authenticator
	policy    auth.Policy
	profiles  auth.ProfileStore
	content   *content.Service
	dashboard *content.Dashboard

	sessionSecret   []byte
	sessionValidity time.Duration
	log             *slog.Logger
}

// New wires the API. log may be nil.
func New(
	authn auth.Authenticator,
	policy auth.Policy,
	profiles auth.ProfileStore,
	contentSvc *content.Service,
	dashboard *content.Dashboard,
	sessionSecret []byte,
	sessionValidity time.Duration,
	log *slog.Logger,
) *API {
	if log == nil {
		log = slog.Default()
	}
	return &API{
		authn:           authn,
		policy:          policy,
		profiles:        profiles,
		content:         contentSvc,
		dashboard:       dashboard,
		sessionSecret:   sessionSecret,
		sessionValidity: sessionValidity,
		log:             log,
	}
}

// Handler builds the route table. Everything under the admin section
// except login requires a valid session.
func (a *API) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("POST /admin/login", a.handleLogin)
	mux.HandleFunc("GET /admin/login", a.handleRememberedEmail)

	mux.HandleFunc("GET /admin/dashboard", a.requireSession(a.handleDashboard))
	mux.HandleFunc("GET /admin/profile/stream", a.requireSession(a.handleProfileStream))

	mux.HandleFunc("GET /admin/{ns}", a.requireSession(a.handleList))
	mux.HandleFunc("POST /admin/{ns}", a.requireSession(a.handleCreate))
	mux.HandleFunc("PUT /admin/{ns}/{id}", a.requireSession(a.handleUpdate))
	mux.HandleFunc("POST /admin/{ns}/{id}/toggle", a.requireSession(a.handleToggle))
	mux.HandleFunc("DELETE /admin/{ns}/{id}", a.requireSession(a.handleDelete))

	// Anything unrecognized points back at login.
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusNotFound, "not found", loginRoute)
	})

	return mux
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg, redirect string) {
	body := map[string]string{"error": msg}
	if redirect != "" {
		body["redirect"] = redirect
	}
	writeJSON(w, status, body)
}

// writeFailure maps a service error onto an HTTP status without leaking
// platform detail to the client.
func (a *API) writeFailure(w http.ResponseWriter, r *http.Request, err error) {
	a.log.Error("request failed", "method", r.Method, "path", r.URL.Path, "error", err)
	switch {
	case errors.Is(err, content.ErrValidation):
		writeError(w, http.StatusBadRequest, err.Error(), "")
	case errors.Is(err, content.ErrNotFound):
		writeError(w, http.StatusNotFound, "not found", "")
	case errors.Is(err, auth.ErrInvalidCredentials):
		writeError(w, http.StatusUnauthorized, auth.ErrInvalidCredentials.Error(), loginRoute)
	default:
		writeError(w, http.StatusInternalServerError, "operation failed", "")
	}
}
