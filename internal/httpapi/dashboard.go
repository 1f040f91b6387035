package httpapi

import "net/http"

func (a *API) handleDashboard(w http.ResponseWriter, r *http.Request) {
	summary, err := a.dashboard.Summary(r.Context())
	if err != nil {
		a.writeFailure(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, summary)
}
