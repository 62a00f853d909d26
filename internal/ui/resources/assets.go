// Package resources serves the playground's static assets.
package resources

import (
	"crypto/sha256"
	"encoding/hex"
)

// StaticDirectoryPath is the path to static assets from the project root.
const StaticDirectoryPath = "internal/ui/resources/static"

// Stylesheet is the playground stylesheet name.
const Stylesheet = "playground.css"

// versioned appends a short content hash to path for cache busting.
func versioned(path string, content []byte) string {
	if content == nil {
		return path
	}
	sum := sha256.Sum256(content)
	return path + "?v=" + hex.EncodeToString(sum[:4])
}
