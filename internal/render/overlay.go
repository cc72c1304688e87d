package render

import (
	"image"
	"image/color"

	"github.com/disintegration/imaging"
	colorful "github.com/lucasb-eyer/go-colorful"

	"github.com/ironsheep/hough-lines/internal/hough"
)

// Overlay draws the detected segments over a copy of the source image and
// returns the result. Each segment gets its own hue, evenly spaced around
// the color wheel, so overlapping detections stay distinguishable. The
// source image is never modified.
func Overlay(img image.Image, lines []hough.LineSegment) *image.NRGBA {
	out := imaging.Clone(img)
	for i, seg := range lines {
		hue := float64(i) * 360.0 / float64(len(lines))
		r, g, b := colorful.Hsv(hue, 0.9, 0.95).RGB255()
		drawLine(out, seg.Start, seg.End, color.NRGBA{R: r, G: g, B: b, A: 255})
	}
	return out
}

// drawLine rasterizes the segment with Bresenham's algorithm, skipping
// pixels that fall outside the image. Segments from the extractor span the
// full image width, so their endpoints routinely sit on or past the border.
func drawLine(dst *image.NRGBA, p0, p1 image.Point, c color.NRGBA) {
	bounds := dst.Bounds()

	dx := abs(p1.X - p0.X)
	dy := -abs(p1.Y - p0.Y)
	sx := 1
	if p0.X > p1.X {
		sx = -1
	}
	sy := 1
	if p0.Y > p1.Y {
		sy = -1
	}

	x, y := p0.X, p0.Y
	errAcc := dx + dy
	for {
		if (image.Point{X: x, Y: y}).In(bounds) {
			dst.SetNRGBA(x, y, c)
		}
		if x == p1.X && y == p1.Y {
			return
		}
		e2 := 2 * errAcc
		if e2 >= dy {
			errAcc += dy
			x += sx
		}
		if e2 <= dx {
			errAcc += dx
			y += sy
		}
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
