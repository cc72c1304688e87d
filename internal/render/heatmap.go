package render

import (
	"image"
	"image/color"

	colorful "github.com/lucasb-eyer/go-colorful"
	xdraw "golang.org/x/image/draw"
	"gonum.org/v1/gonum/mat"
)

// Heatmap renders a vote histogram as a false-color image for external
// visualization. Rows map to distance indices (top to bottom), columns to
// angle indices, and cell intensity is scaled relative to the histogram's
// maximum: cold blue for zero votes through warm yellow at the peak. An
// all-zero histogram renders entirely cold.
//
// scale multiplies both output dimensions using nearest-neighbor sampling,
// keeping each histogram cell a crisp block; values below 2 return the
// histogram at native size.
func Heatmap(m *mat.Dense, scale int) *image.NRGBA {
	rows, cols := m.Dims()
	peak := mat.Max(m)

	cold := colorful.Color{R: 0.03, G: 0.05, B: 0.25}
	hot := colorful.Color{R: 1.0, G: 0.87, B: 0.12}

	out := image.NewNRGBA(image.Rect(0, 0, cols, rows))
	for r := 0; r < rows; r++ {
		row := m.RawRowView(r)
		for c, v := range row {
			t := 0.0
			if peak > 0 {
				t = v / peak
			}
			cr, cg, cb := cold.BlendLuv(hot, t).Clamped().RGB255()
			out.SetNRGBA(c, r, color.NRGBA{R: cr, G: cg, B: cb, A: 255})
		}
	}

	if scale < 2 {
		return out
	}
	scaled := image.NewNRGBA(image.Rect(0, 0, cols*scale, rows*scale))
	xdraw.NearestNeighbor.Scale(scaled, scaled.Bounds(), out, out.Bounds(), xdraw.Src, nil)
	return scaled
}
