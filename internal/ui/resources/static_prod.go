//go:build !dev

package resources

import (
	"bytes"
	"embed"
	"io/fs"
	"log/slog"
	"net/http"
	"path"
	"strings"
	"sync"
	"time"
)

//go:embed static/*
var staticFS embed.FS

// IsDev reports whether assets are served from disk.
const IsDev = false

var (
	assetsOnce sync.Once
	assets     map[string][]byte
)

// minifiedAssets returns the embedded assets, minified once on first use.
// An asset that fails to minify is served as embedded.
func minifiedAssets() map[string][]byte {
	assetsOnce.Do(func() {
		assets = make(map[string][]byte)
		_ = fs.WalkDir(staticFS, "static", func(p string, d fs.DirEntry, err error) error {
			if err != nil || d.IsDir() {
				return err
			}
			src, err := staticFS.ReadFile(p)
			if err != nil {
				return err
			}
			name := strings.TrimPrefix(p, "static/")
			out, err := minify(name, src)
			if err != nil {
				slog.Warn("serving unminified asset", "name", name, "error", err)
				out = src
			}
			assets[name] = out
			return nil
		})
	})
	return assets
}

// Handler serves embedded assets under /static/. Asset URLs carry a
// content hash, so responses are cached indefinitely.
func Handler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		name := strings.TrimPrefix(path.Clean(r.URL.Path), "/static/")
		content, ok := minifiedAssets()[name]
		if !ok {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Cache-Control", "public, max-age=31536000, immutable")
		http.ServeContent(w, r, name, time.Time{}, bytes.NewReader(content))
	})
}

// StaticPath returns the versioned URL of a static asset.
func StaticPath(name string) string {
	return versioned("/static/"+name, minifiedAssets()[name])
}
