// Package static embeds the stylesheet presets and scripts served under /static/.
package static

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"net/http"
	"os"
	"strings"
)

// FS exposes web static assets for HTTP serving.
//
//go:embed css/*.css js/*.js
var FS embed.FS

// Presets lists the CSS presets shipped with the binary.
var Presets = []string{"reset", "uno", "typography", "flowbite"}

// ValidatePresets trims and checks preset names against the embedded set.
func ValidatePresets(names []string) ([]string, error) {
	out := make([]string, 0, len(names))
	for _, name := range names {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		if !isPreset(name) {
			return nil, fmt.Errorf("unknown css preset %q (available: %s)", name, strings.Join(Presets, ", "))
		}
		out = append(out, name)
	}
	return out, nil
}

func isPreset(name string) bool {
	for _, preset := range Presets {
		if preset == name {
			return true
		}
	}
	return false
}

// Source picks the asset filesystem: the output directory layered over the
// embedded assets when it exists, otherwise the embedded assets alone. The
// bool reports whether outputDir was used.
func Source(outputDir string) (fs.FS, bool) {
	outputDir = strings.TrimSpace(outputDir)
	if outputDir != "" {
		if info, err := os.Stat(outputDir); err == nil && info.IsDir() {
			return overlayFS{primary: os.DirFS(outputDir), fallback: FS}, true
		}
	}
	return FS, false
}

// Handler serves assets from Source(outputDir). Mount it with the /static/ prefix stripped.
func Handler(outputDir string) http.Handler {
	assets, _ := Source(outputDir)
	return http.FileServerFS(assets)
}

// overlayFS reads from primary and falls back to fallback on missing files.
type overlayFS struct {
	primary  fs.FS
	fallback fs.FS
}

func (o overlayFS) Open(name string) (fs.File, error) {
	file, err := o.primary.Open(name)
	if err == nil {
		return file, nil
	}
	if !errors.Is(err, fs.ErrNotExist) {
		return nil, err
	}
	return o.fallback.Open(name)
}
