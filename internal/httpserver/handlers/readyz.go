package handlers

import (
	"net/http"

	"github.com/MrSnakeDoc/folio/internal/httpserver/deps"
)

type readyzResponse struct {
	Ready   bool   `json:"ready"`
	Loading bool   `json:"loading"`
	Mode    string `json:"mode"`
}

// Readyz reports ready once the first content load has finished. Until
// then it answers 503 so a proxy keeps traffic away.
func Readyz(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		loading := d.State.Loading() && d.State.Snapshot().RefreshedAt.IsZero()

		status := http.StatusOK
		if loading {
			status = http.StatusServiceUnavailable
		}
		writeJSON(d, w, status, readyzResponse{
			Ready:   !loading,
			Loading: d.State.Loading(),
			Mode:    string(d.State.Mode()),
		})
	}
}
