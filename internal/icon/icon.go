// Package icon renders the chaticons chat-bubble artwork as an in-memory
// raster. All geometry is defined on a 512×512 reference canvas and scaled
// uniformly to the requested size, so every icon is the same composition at
// a different resolution.
package icon

import (
	"image"
	"image/color"
)

// RefSize is the reference canvas dimension all geometry constants are
// expressed in.
const RefSize = 512

// Detail thresholds. Below these sizes the small elements would collapse
// into single-pixel noise, so they are omitted entirely.
const (
	dotMinSize    = 96
	barMinSize    = 128
	cursorMinSize = 192
)

var (
	background  = color.NRGBA{R: 26, G: 26, B: 26, A: 255}    // #1a1a1a
	blueBubble  = color.NRGBA{R: 88, G: 166, B: 255, A: 230}  // #58a6ff
	greenBubble = color.NRGBA{R: 57, G: 211, B: 83, A: 230}   // #39d353
	detailInk   = color.NRGBA{R: 255, G: 255, B: 255, A: 200} // dots and text bars
	cursorAmber = color.NRGBA{R: 255, G: 193, B: 7, A: 230}   // #ffc107
)

// Draw renders the two-bubble chat composition at the given pixel size.
// The output is deterministic: the same size always yields the same pixels.
// Fills are written with straight (non-premultiplied) alpha; later shapes
// replace earlier pixels rather than blending over them.
func Draw(size int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, size, size))
	fillRect(img, 0, 0, size-1, size-1, background)

	s := float64(size) / RefSize

	// Blue bubble, top left.
	x, y := scaled(80, s), scaled(120, s)
	fillRoundedRect(img, x, y, x+scaled(240, s), y+scaled(160, s), scaled(32, s), blueBubble)

	// Green bubble, bottom right, drawn second so it occludes the blue one
	// where they overlap.
	x, y = scaled(192, s), scaled(232, s)
	fillRoundedRect(img, x, y, x+scaled(240, s), y+scaled(160, s), scaled(32, s), greenBubble)

	if size >= dotMinSize {
		// Typing dots inside the blue bubble.
		dotY := scaled(180, s)
		d := max(2, scaled(8, s))
		for _, refX := range []int{140, 180, 220} {
			fillCircle(img, scaled(refX, s), dotY, d/2, detailInk)
		}

		if size >= barMinSize {
			// Two text lines inside the green bubble, the lower one shorter.
			h := max(2, scaled(12, s))
			y1 := scaled(292, s)
			fillRoundedRect(img, scaled(232, s), y1, scaled(352, s), y1+h, h/2, detailInk)
			y2 := scaled(316, s)
			fillRoundedRect(img, scaled(232, s), y2, scaled(312, s), y2+h, h/2, detailInk)
		}
	}

	if size >= cursorMinSize {
		// Amber input cursor below the green bubble.
		x, y = scaled(380, s), scaled(380, s)
		fillRect(img, x, y, x+scaled(20, s), y+scaled(24, s), cursorAmber)
	}

	return img
}

// Features returns the names of the composition elements drawn at size,
// in draw order.
func Features(size int) []string {
	fs := []string{"bubbles"}
	if size >= dotMinSize {
		fs = append(fs, "dots")
	}
	if size >= barMinSize {
		fs = append(fs, "text bars")
	}
	if size >= cursorMinSize {
		fs = append(fs, "cursor")
	}
	return fs
}

// scaled maps a reference-canvas coordinate to the target size, truncating
// toward zero. Truncation is applied independently at every call site.
func scaled(v int, s float64) int {
	return int(float64(v) * s)
}
