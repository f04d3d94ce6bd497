package icon

import (
	"image"
	"image/color"
)

// fillRect fills the inclusive pixel box [x0,x1]×[y0,y1]. Pixels outside
// the image bounds are ignored.
func fillRect(img *image.NRGBA, x0, y0, x1, y1 int, c color.NRGBA) {
	for y := y0; y <= y1; y++ {
		for x := x0; x <= x1; x++ {
			img.SetNRGBA(x, y, c)
		}
	}
}

// fillRoundedRect fills the inclusive pixel box [x0,x1]×[y0,y1] with
// quarter-circle corners of radius r. A pixel belongs to the shape when it
// lies within r of the rectangle's inner core, which covers the straight
// edges and the corner arcs in one test.
func fillRoundedRect(img *image.NRGBA, x0, y0, x1, y1, r int, c color.NRGBA) {
	if r < 0 {
		r = 0
	}
	for y := y0; y <= y1; y++ {
		for x := x0; x <= x1; x++ {
			dx := x - clamp(x, x0+r, x1-r)
			dy := y - clamp(y, y0+r, y1-r)
			if dx*dx+dy*dy <= r*r {
				img.SetNRGBA(x, y, c)
			}
		}
	}
}

// fillCircle fills a circle of radius r centered on (cx, cy).
func fillCircle(img *image.NRGBA, cx, cy, r int, c color.NRGBA) {
	for y := cy - r; y <= cy+r; y++ {
		for x := cx - r; x <= cx+r; x++ {
			dx, dy := x-cx, y-cy
			if dx*dx+dy*dy <= r*r {
				img.SetNRGBA(x, y, c)
			}
		}
	}
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
