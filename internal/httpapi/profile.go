package httpapi

import (
	"encoding/json"
	"fmt"
	"net/http"
)

// handleProfileStream pushes live snapshots of the signed-in admin's own
// profile document as server-sent events. This is the one place the
// backend holds a long-lived subscription; every other view re-fetches
// after mutations.
func (a *API) handleProfileStream(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		writeError(w, http.StatusInternalServerError, "streaming unsupported", "")
		return
	}

	uid := sessionUID(r)
	profiles, err := a.profiles.Watch(r.Context(), uid)
	if err != nil {
		a.writeFailure(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.WriteHeader(http.StatusOK)
	flusher.Flush()

	for profile := range profiles {
		payload, err := json.Marshal(profile)
		if err != nil {
			a.log.Error("failed to encode profile snapshot", "uid", uid, "error", err)
			continue
		}
		fmt.Fprintf(w, "data: %s\n\n", payload)
		flusher.Flush()
	}
}
