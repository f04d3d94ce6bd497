package assets

import (
	"encoding/json"
	"fmt"
	"io"
	"path/filepath"

	"github.com/miuchi/chaticons/internal/paths"
)

// ManifestFileName is the file written by WriteManifest.
const ManifestFileName = "manifest.json"

// ManifestIcon is one entry in the manifest's icons array.
type ManifestIcon struct {
	Src     string `json:"src"`
	Sizes   string `json:"sizes"`
	Type    string `json:"type"`
	Purpose string `json:"purpose,omitempty"`
}

// Manifest mirrors the web app manifest fields chaticons maintains.
type Manifest struct {
	Name            string         `json:"name"`
	ShortName       string         `json:"short_name"`
	StartURL        string         `json:"start_url"`
	Display         string         `json:"display"`
	BackgroundColor string         `json:"background_color"`
	ThemeColor      string         `json:"theme_color"`
	Icons           []ManifestIcon `json:"icons"`
}

// DefaultManifest returns the miuchi.chat manifest with one icon entry per
// size in Sizes. Icon srcs are relative to the manifest's own location so
// the whole set can be served from any directory.
func DefaultManifest() Manifest {
	m := Manifest{
		Name:            "miuchi.chat",
		ShortName:       "miuchi",
		StartURL:        "/",
		Display:         "standalone",
		BackgroundColor: "#1a1a1a",
		ThemeColor:      "#58a6ff",
	}
	for _, size := range Sizes {
		m.Icons = append(m.Icons, ManifestIcon{
			Src:     IconFileName(size),
			Sizes:   fmt.Sprintf("%dx%d", size, size),
			Type:    "image/png",
			Purpose: "any maskable",
		})
	}
	return m
}

// WriteManifest writes manifest.json into dir and returns its path.
func WriteManifest(dir string, progress io.Writer) (string, error) {
	if progress == nil {
		progress = io.Discard
	}
	data, err := json.MarshalIndent(DefaultManifest(), "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal manifest: %w", err)
	}
	data = append(data, '\n')

	p := filepath.Join(dir, ManifestFileName)
	if err := paths.AtomicWrite(p, data); err != nil {
		return "", fmt.Errorf("write manifest: %w", err)
	}
	fmt.Fprintf(progress, "Generated: %s (%d icons)\n", p, len(Sizes))
	return p, nil
}
