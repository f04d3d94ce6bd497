package assets

import (
	"fmt"
	"image"
	"io"
	"os"
	"path/filepath"

	ico "github.com/sergeymakinen/go-ico"
	xdraw "golang.org/x/image/draw"

	"github.com/miuchi/chaticons/internal/icon"
	"github.com/miuchi/chaticons/internal/paths"
)

// Browser favicon conventions: standalone PNGs at 16 and 32, a multi-image
// ICO covering 16/32/48, and a 180px PNG for Safari's touch icon.
var (
	faviconPNGSizes = []int{16, 32}
	faviconICOSizes = []int{16, 32, 48}
)

const (
	FaviconFileName   = "favicon.ico"
	TouchIconFileName = "apple-touch-icon.png"
	touchIconSize     = 180
)

// scaleTo downscales the master render to size px using Catmull-Rom
// resampling, which keeps the bubble edges smooth at favicon sizes where
// the hard-edged rasterizer would alias badly.
func scaleTo(src image.Image, size int) *image.NRGBA {
	dst := image.NewNRGBA(image.Rect(0, 0, size, size))
	xdraw.CatmullRom.Scale(dst, dst.Bounds(), src, src.Bounds(), xdraw.Src, nil)
	return dst
}

// GenerateFavicon writes favicon.ico plus favicon-16x16.png and
// favicon-32x32.png into dir, all derived from one 512px master render.
// Returns the paths written.
func GenerateFavicon(dir string, progress io.Writer) ([]string, error) {
	if progress == nil {
		progress = io.Discard
	}
	if err := os.MkdirAll(dir, paths.DirPerm); err != nil {
		return nil, fmt.Errorf("create output dir: %w", err)
	}
	master := icon.Draw(icon.RefSize)

	var written []string
	for _, size := range faviconPNGSizes {
		p := filepath.Join(dir, fmt.Sprintf("favicon-%dx%d.png", size, size))
		if err := writePNG(p, scaleTo(master, size)); err != nil {
			return written, err
		}
		fmt.Fprintf(progress, "Generated: %s (%dx%d)\n", p, size, size)
		written = append(written, p)
	}

	imgs := make([]image.Image, 0, len(faviconICOSizes))
	for _, size := range faviconICOSizes {
		imgs = append(imgs, scaleTo(master, size))
	}
	p := filepath.Join(dir, FaviconFileName)
	f, err := os.Create(p)
	if err != nil {
		return written, fmt.Errorf("create %s: %w", p, err)
	}
	if err := ico.EncodeAll(f, imgs); err != nil {
		f.Close()
		return written, fmt.Errorf("encode %s: %w", p, err)
	}
	if err := f.Close(); err != nil {
		return written, fmt.Errorf("close %s: %w", p, err)
	}
	fmt.Fprintf(progress, "Generated: %s (%d images)\n", p, len(imgs))
	written = append(written, p)

	return written, nil
}

// GenerateTouchIcon writes apple-touch-icon.png (180×180) into dir and
// returns its path.
func GenerateTouchIcon(dir string, progress io.Writer) (string, error) {
	if progress == nil {
		progress = io.Discard
	}
	if err := os.MkdirAll(dir, paths.DirPerm); err != nil {
		return "", fmt.Errorf("create output dir: %w", err)
	}
	p := filepath.Join(dir, TouchIconFileName)
	if err := icon.Generate(touchIconSize, p); err != nil {
		return "", err
	}
	fmt.Fprintf(progress, "Generated: %s (%dx%d)\n", p, touchIconSize, touchIconSize)
	return p, nil
}

func writePNG(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := icon.Encode(f, img); err != nil {
		f.Close()
		return fmt.Errorf("encode %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close %s: %w", path, err)
	}
	return nil
}
