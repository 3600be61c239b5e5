package mw

import (
	"net/http"

	"github.com/MrSnakeDoc/folio/internal/httpserver/deps"
	"github.com/MrSnakeDoc/folio/internal/httpserver/views"
	"github.com/MrSnakeDoc/folio/internal/logger"
)

// SessionCookie carries the admin session token.
const SessionCookie = "folio_session"

// SessionToken returns the session token sent with r, or "".
func SessionToken(r *http.Request) string {
	c, err := r.Cookie(SessionCookie)
	if err != nil {
		return ""
	}
	return c.Value
}

// AdminGate protects the dashboard. While content is loading a GET gets a
// neutral loading page that refreshes itself; requests without a valid
// session are sent to the login form.
func AdminGate(d deps.Deps) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method == http.MethodGet && d.State.Loading() {
				w.Header().Set("Cache-Control", "no-store")
				if err := d.Views.Render(w, views.PageLoading, views.Page{Title: "Loading", Path: r.URL.Path}); err != nil {
					d.Logger.Error("render loading page", logger.Error(err))
				}
				return
			}

			if !d.State.Authenticated(r.Context(), SessionToken(r)) {
				http.Redirect(w, r, "/admin/login", http.StatusSeeOther)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
