package httpapi

import (
	"context"
	"net/http"
	"strings"

	"github.com/chethancinemas/cinema-admin/internal/auth"
)

type contextKey string

const sessionUIDKey contextKey = "sessionUID"

// requireSession rejects requests without a valid session token for the
// allow-listed admin. The allow-list is re-checked on every request so a
// token outlives a config change by at most its own expiry.
func (a *API) requireSession(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		raw, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || raw == "" {
			writeError(w, http.StatusUnauthorized, "authentication required", loginRoute)
			return
		}

		uid, err := auth.UIDFromSessionToken(raw, a.sessionSecret)
		if err != nil {
			writeError(w, http.StatusUnauthorized, "session expired", loginRoute)
			return
		}
		if !a.policy.Authorized(uid) {
			writeError(w, http.StatusUnauthorized, "authentication required", loginRoute)
			return
		}

		next(w, r.WithContext(context.WithValue(r.Context(), sessionUIDKey, uid)))
	}
}

func sessionUID(r *http.Request) string {
	uid, _ := r.Context().Value(sessionUIDKey).(string)
	return uid
}
