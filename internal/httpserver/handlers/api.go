package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/MrSnakeDoc/folio/internal/domain"
	"github.com/MrSnakeDoc/folio/internal/httpserver/deps"
	"github.com/MrSnakeDoc/folio/internal/logger"
)

const defaultSceneStride = 10

// Content serves the public view of the portfolio: published topics and
// news plus the settings.
func Content(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(d, w, http.StatusOK, domain.Published(d.State.Snapshot().Data))
	}
}

// Scene serves a strided sample of the particle positions. ?stride= keeps
// every Nth point.
func Scene(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		stride := defaultSceneStride
		if v := r.URL.Query().Get("stride"); v != "" {
			n, err := strconv.Atoi(v)
			if err != nil || n < 1 {
				http.Error(w, "stride must be a positive integer", http.StatusBadRequest)
				return
			}
			stride = n
		}

		writeJSON(d, w, http.StatusOK, d.Scene.Renderer().Frame(stride))
	}
}

func writeJSON(d deps.Deps, w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		d.Logger.Debug("failed to write response", logger.Error(err))
	}
}
