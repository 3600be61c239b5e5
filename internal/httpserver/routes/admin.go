package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/MrSnakeDoc/folio/internal/httpserver/deps"
	"github.com/MrSnakeDoc/folio/internal/httpserver/handlers"
	"github.com/MrSnakeDoc/folio/internal/httpserver/mw"
)

func init() { Register(registerAdmin) }

func registerAdmin(r chi.Router, d deps.Deps) {
	loginLimit := mw.RateLimit(mw.RateLimitConfig{
		Burst:             d.LoginBurst,
		RefillPerIPPerMin: d.LoginRefillPerMin,
		MaxEntries:        10_000,
		TrustProxy:        d.TrustProxy,
		Now:               d.TimeNow,
	})

	r.Route("/admin", func(r chi.Router) {
		r.Use(mw.EnforceHost(d.AllowedHosts, d.Logger))

		r.Get("/login", handlers.LoginForm(d))
		r.With(loginLimit).Post("/login", handlers.Login(d))
		r.Post("/logout", handlers.Logout(d))

		r.Group(func(r chi.Router) {
			r.Use(mw.AdminGate(d))

			r.Get("/", handlers.Dashboard(d))
			r.Post("/topics", handlers.SaveTopic(d))
			r.Post("/topics/{id}/delete", handlers.DeleteTopic(d))
			r.Post("/news", handlers.SaveNews(d))
			r.Post("/news/{id}/delete", handlers.DeleteNews(d))
			r.Post("/activities", handlers.SaveActivity(d))
			r.Post("/activities/{id}/delete", handlers.DeleteActivity(d))
			r.Post("/settings", handlers.SaveSettings(d))
		})
	})
}
