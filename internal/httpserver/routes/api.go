package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/MrSnakeDoc/folio/internal/httpserver/deps"
	"github.com/MrSnakeDoc/folio/internal/httpserver/handlers"
	"github.com/MrSnakeDoc/folio/internal/httpserver/mw"
)

func init() { Register(registerAPI) }

func registerAPI(r chi.Router, d deps.Deps) {
	api := r.With(mw.CORS(d.CORSOrigins))
	api.Get("/api/content", handlers.Content(d))
	api.Get("/api/scene", handlers.Scene(d))
	// Preflight requests are answered by the CORS middleware.
	api.Options("/api/*", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})
}
