// Package site serves the dashboard's embedded static assets.
package site

import (
	"context"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
)

// Error constants
var (
	ErrServe = errors.New("static asset serve failed")
)

// Prefix is the URL path the assets are mounted under.
const Prefix = "/assets/"

// Register attaches the static asset routes to r.
func Register(_ context.Context, r chi.Router) {
	if r == nil {
		panic("router is nil")
	}
	files := http.StripPrefix(Prefix, http.FileServer(FS()))
	r.Handle(Prefix+"*", http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		w.Header().Set("Cache-Control", "public, max-age=3600")
		files.ServeHTTP(w, req)
	}))
}
