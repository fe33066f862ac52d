// Package templates bundles the default template tree into the binary
// so templater works without a --from directory.
package templates

import (
	"embed"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
)

//go:embed all:templates
var bundled embed.FS

// Bundled returns the built-in template tree.
func Bundled() fs.FS {
	sub, err := fs.Sub(bundled, "templates")
	if err != nil {
		// The embed path is fixed at compile time.
		panic(err)
	}
	return sub
}

// UserDir is where a user-maintained template tree overrides the
// bundled one.
func UserDir() string {
	return filepath.Join(xdg.DataHome, "templater", "templates")
}

// Default returns the template tree used when --from is not given: the
// user tree under the XDG data dir when it exists, otherwise the
// bundled tree. The second value names the chosen source for logging.
func Default() (fs.FS, string) {
	userDir := UserDir()
	if info, err := os.Stat(userDir); err == nil && info.IsDir() {
		return os.DirFS(userDir), userDir
	}
	return Bundled(), "bundled"
}
