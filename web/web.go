// Package web serves the browser frontend: search, favorites and login views
// talking to the JSON API. The assets are embedded in the binary.
package web

import (
	"embed"
	"io/fs"
	"net/http"
)

//go:embed static
var assets embed.FS

// Handler serves the embedded frontend. Unknown paths fall back to index.html,
// where client-side routing takes over.
func Handler() http.Handler {
	root, err := fs.Sub(assets, "static")
	if err != nil {
		// The embed directive guarantees the directory exists.
		panic(err)
	}
	files := http.FileServer(http.FS(root))

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/" {
			if _, err := fs.Stat(root, r.URL.Path[1:]); err != nil {
				r2 := r.Clone(r.Context())
				r2.URL.Path = "/"
				files.ServeHTTP(w, r2)
				return
			}
		}
		w.Header().Set("Cache-Control", "no-cache")
		files.ServeHTTP(w, r)
	})
}
