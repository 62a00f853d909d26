package resources

import (
	"fmt"
	"path"
	"strings"

	"github.com/evanw/esbuild/pkg/api"
)

// minify shrinks CSS and JS assets with esbuild. Other content is returned
// unchanged.
func minify(name string, src []byte) ([]byte, error) {
	var loader api.Loader
	switch path.Ext(name) {
	case ".css":
		loader = api.LoaderCSS
	case ".js":
		loader = api.LoaderJS
	default:
		return src, nil
	}

	result := api.Transform(string(src), api.TransformOptions{
		Loader:            loader,
		Sourcefile:        name,
		MinifyWhitespace:  true,
		MinifySyntax:      true,
		MinifyIdentifiers: loader == api.LoaderJS,
		LogLevel:          api.LogLevelSilent,
	})

	if len(result.Errors) > 0 {
		var errMsg strings.Builder
		for _, err := range result.Errors {
			if err.Location != nil {
				fmt.Fprintf(&errMsg, "%s:%d:%d: %s\n", name, err.Location.Line, err.Location.Column, err.Text)
			} else {
				fmt.Fprintf(&errMsg, "%s: %s\n", name, err.Text)
			}
		}
		return nil, fmt.Errorf("esbuild errors:\n%s", errMsg.String())
	}
	return result.Code, nil
}
