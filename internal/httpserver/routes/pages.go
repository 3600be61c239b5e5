package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/MrSnakeDoc/folio/internal/httpserver/deps"
	"github.com/MrSnakeDoc/folio/internal/httpserver/handlers"
	"github.com/MrSnakeDoc/folio/internal/httpserver/mw"
)

func init() { Register(registerPages) }

func registerPages(r chi.Router, d deps.Deps) {
	r.Group(func(r chi.Router) {
		r.Use(mw.TrackRoute(d.Scene))

		r.Get("/", handlers.Home(d))
		r.Get("/topics", handlers.Topics(d))
		r.Get("/topics/{slug}", handlers.TopicDetail(d))
		r.Get("/news", handlers.News(d))
		r.Get("/contact", handlers.ContactForm(d))
		r.Post("/contact", handlers.ContactSubmit(d))
	})
}
