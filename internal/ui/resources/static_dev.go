//go:build dev

package resources

import (
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"runtime"
)

// staticDir locates static/ next to this source file so the dev server
// works from any working directory.
func staticDir() string {
	_, filename, _, ok := runtime.Caller(0)
	if !ok {
		return StaticDirectoryPath
	}
	return filepath.Join(filepath.Dir(filename), "static")
}

// IsDev reports whether assets are served from disk.
const IsDev = true

// Handler serves assets straight from disk so CSS edits show up on reload.
func Handler() http.Handler {
	dir := staticDir()
	slog.Info("static assets served from filesystem", "path", dir)

	fileServer := http.StripPrefix("/static/", http.FileServer(http.Dir(dir)))
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Cache-Control", "no-cache")
		fileServer.ServeHTTP(w, r)
	})
}

// StaticPath returns the versioned URL of a static asset.
func StaticPath(name string) string {
	content, err := os.ReadFile(filepath.Join(staticDir(), name))
	if err != nil {
		content = nil
	}
	return versioned("/static/"+name, content)
}
