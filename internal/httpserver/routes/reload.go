package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/MrSnakeDoc/folio/internal/httpserver/deps"
	"github.com/MrSnakeDoc/folio/internal/httpserver/handlers"
	"github.com/MrSnakeDoc/folio/internal/httpserver/mw"
)

func init() { Register(registerReload) }

func registerReload(r chi.Router, d deps.Deps) {
	r.With(mw.RestrictCIDRs(d.AllowedCIDRS, d.TrustProxy, d.Logger), mw.CORS(d.CORSOrigins)).Post("/api/reload", handlers.Reload(d))
}
