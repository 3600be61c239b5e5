package handlers

import (
	"net/http"

	"github.com/MrSnakeDoc/folio/internal/httpserver/deps"
	"github.com/MrSnakeDoc/folio/internal/httpserver/views"
	"github.com/MrSnakeDoc/folio/internal/logger"
)

// render writes a page with status. Template errors are logged and turned
// into a bare 500 since nothing has been written yet.
func render(d deps.Deps, w http.ResponseWriter, r *http.Request, status int, name string, page views.Page) {
	page.Path = r.URL.Path

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")

	rec := &bufferedStatus{ResponseWriter: w, status: status}
	if err := d.Views.Render(rec, name, page); err != nil {
		d.Logger.Error("render page",
			logger.String("page", name),
			logger.Error(err))
		if !rec.wrote {
			http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		}
	}
}

// bufferedStatus defers WriteHeader until the first body write so a failed
// render can still answer 500.
type bufferedStatus struct {
	http.ResponseWriter
	status int
	wrote  bool
}

func (b *bufferedStatus) Write(p []byte) (int, error) {
	if !b.wrote {
		b.wrote = true
		b.ResponseWriter.WriteHeader(b.status)
	}
	return b.ResponseWriter.Write(p)
}
