package mw

import (
	"net/http"

	"github.com/MrSnakeDoc/folio/internal/scene"
)

// TrackRoute reports the path of every page view to the scene loop so the
// particles morph toward the shape of the current page.
func TrackRoute(loop *scene.Loop) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if loop != nil && r.Method == http.MethodGet {
				loop.SetRoute(r.URL.Path)
			}
			next.ServeHTTP(w, r)
		})
	}
}
