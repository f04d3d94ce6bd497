package icon

import (
	"fmt"
	"image"
	"image/png"
	"io"
	"os"
)

// Icons are written once and served many times, so spend encode time on
// smaller files.
var encoder = png.Encoder{CompressionLevel: png.BestCompression}

// Encode writes img to w as a PNG.
func Encode(w io.Writer, img image.Image) error {
	return encoder.Encode(w, img)
}

// Generate renders the composition at size and writes it to path as a PNG.
// The parent directory must already exist.
func Generate(size int, path string) error {
	if size <= 0 {
		return fmt.Errorf("invalid icon size %d: must be positive", size)
	}
	img := Draw(size)
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := Encode(f, img); err != nil {
		f.Close()
		return fmt.Errorf("encode %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close %s: %w", path, err)
	}
	return nil
}
