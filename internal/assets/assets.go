// Package assets drives generation of the PWA asset set for miuchi.chat:
// the eight manifest icons plus favicon, touch icon and web app manifest.
package assets

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/miuchi/chaticons/internal/icon"
	"github.com/miuchi/chaticons/internal/paths"
)

// Sizes lists the manifest icon dimensions, in generation order.
var Sizes = []int{72, 96, 128, 144, 152, 192, 384, 512}

// IconFileName returns the conventional file name for a manifest icon.
func IconFileName(size int) string {
	return fmt.Sprintf("icon-%dx%d.png", size, size)
}

// GenerateIcons renders every size in Sizes into dir, creating the
// directory first if needed. One progress line is written per file. The
// first failure aborts the batch; files already written are returned so
// the caller can still account for them.
func GenerateIcons(dir string, progress io.Writer) ([]string, error) {
	if progress == nil {
		progress = io.Discard
	}
	if err := os.MkdirAll(dir, paths.DirPerm); err != nil {
		return nil, fmt.Errorf("create output dir: %w", err)
	}

	written := make([]string, 0, len(Sizes))
	for _, size := range Sizes {
		p := filepath.Join(dir, IconFileName(size))
		if err := icon.Generate(size, p); err != nil {
			return written, err
		}
		fmt.Fprintf(progress, "Generated: %s (%dx%d)\n", p, size, size)
		written = append(written, p)
	}
	return written, nil
}

// GenerateAll produces the complete asset set: manifest icons, favicons,
// the touch icon and manifest.json. Returns every path written.
func GenerateAll(dir string, progress io.Writer) ([]string, error) {
	written, err := GenerateIcons(dir, progress)
	if err != nil {
		return written, err
	}

	fav, err := GenerateFavicon(dir, progress)
	written = append(written, fav...)
	if err != nil {
		return written, err
	}

	touch, err := GenerateTouchIcon(dir, progress)
	if err != nil {
		return written, err
	}
	written = append(written, touch)

	man, err := WriteManifest(dir, progress)
	if err != nil {
		return written, err
	}
	written = append(written, man)

	return written, nil
}
