package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// ServeUpload serves a stored campaign image by filename.
func (a *App) ServeUpload(w http.ResponseWriter, r *http.Request) {
	path, err := a.Store.Resolve(chi.URLParam(r, "filename"))
	if err != nil {
		a.error(w, http.StatusNotFound, "file not found")
		return
	}
	http.ServeFile(w, r, path)
}
