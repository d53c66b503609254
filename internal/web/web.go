// Package web serves the embedded score widget page.
package web

import (
	"embed"
	"io/fs"
	"net/http"
)

//go:embed static
var staticFS embed.FS

// FS returns an http.FileSystem for the embedded widget assets.
func FS() http.FileSystem {
	sub, err := fs.Sub(staticFS, "static")
	if err != nil {
		// should never happen with a correct embed directive
		return http.FS(staticFS)
	}
	return http.FS(sub)
}

// Handler serves the embedded widget at the mux root.
func Handler() http.Handler {
	return http.FileServer(FS())
}
