package hough

import (
	"fmt"
	"image"
	"math"
	"sync"

	"github.com/anthonynsimon/bild/parallel"
	"gonum.org/v1/gonum/mat"
)

// Accumulator builds and owns the (distance, angle) vote histogram for one
// image. Create it with NewAccumulator, populate it with Init, then query it
// through AccumulationMatrix or a LineExtractor.
//
// The histogram has 2*distanceRange rows and AngleCount columns. Row index
// round(distanceRange + rho) holds the votes for signed perpendicular
// distance rho from the image center. All cells are non-negative integer
// counts stored as float64.
//
// An Accumulator is not safe for concurrent Init calls, but once Init has
// returned, any number of goroutines may query it concurrently. Independent
// Accumulator instances share nothing except an optional common TrigTable.
type Accumulator struct {
	trig *TrigTable

	width, height    int
	centerX, centerY int
	distanceRange    int

	votes *mat.Dense
}

// NewAccumulator creates an empty accumulator using the given trig table.
// A nil table allocates a fresh one.
func NewAccumulator(trig *TrigTable) *Accumulator {
	if trig == nil {
		trig = NewTrigTable()
	}
	return &Accumulator{trig: trig}
}

// Init populates the histogram from an intensity image.
//
// The image is min-max normalized to the full 0-255 range; every pixel with
// a non-zero normalized value votes once per discretized angle. A constant
// image normalizes to all-background and yields an all-zero histogram.
//
// Voting runs in parallel over image row ranges. Each worker accumulates
// into its own partial histogram which is then merged into the shared one
// under a lock, so concurrent workers never race on a cell even though
// distance indices from different image rows routinely collide. Votes whose
// rounded distance index falls outside the histogram (possible from rounding
// at the image corners) are discarded.
//
// Init may be called again to reuse the accumulator for a new image; the
// previous histogram is discarded. Returns an error for images with zero
// width or height.
func (a *Accumulator) Init(img *image.Gray) error {
	bounds := img.Bounds()
	width := bounds.Dx()
	height := bounds.Dy()
	if width < 1 || height < 1 {
		return fmt.Errorf("hough: cannot accumulate %dx%d image: dimensions must be at least 1x1", width, height)
	}

	norm := normalizeGray(img, width, height)

	a.width = width
	a.height = height
	a.centerX = width / 2
	a.centerY = height / 2

	longest := width
	if height > longest {
		longest = height
	}
	a.distanceRange = int(math.Round(float64(longest) * math.Sqrt2 / 2))

	rows := 2 * a.distanceRange
	a.votes = mat.NewDense(rows, AngleCount, nil)

	var mu sync.Mutex
	parallel.Line(height, func(start, end int) {
		part := mat.NewDense(rows, AngleCount, nil)
		for y := start; y < end; y++ {
			dy := float64(y - a.centerY)
			row := norm[y*width : (y+1)*width]
			for x, v := range row {
				if v == 0 {
					continue
				}
				dx := float64(x - a.centerX)
				for theta := 0; theta < AngleCount; theta++ {
					r := dx*a.trig.cos[theta] + dy*a.trig.sin[theta]
					idx := int(math.Round(float64(a.distanceRange) + r))
					if idx < 0 || idx >= rows {
						continue
					}
					part.RawRowView(idx)[theta]++
				}
			}
		}
		mu.Lock()
		a.votes.Add(a.votes, part)
		mu.Unlock()
	})

	return nil
}

// AccumulationMatrix returns a copy of the histogram with every cell below
// thresh zeroed out. It is a pure read: calling it repeatedly with the same
// threshold on an unmodified accumulator returns identical matrices, and the
// internal histogram is never mutated. Pass a threshold <= 0 (or any value
// no cell reaches) to obtain the raw, respectively empty, histogram.
//
// Init must have been called first.
func (a *Accumulator) AccumulationMatrix(thresh float64) *mat.Dense {
	rows, cols := a.votes.Dims()
	out := mat.NewDense(rows, cols, nil)
	out.Apply(func(_, _ int, v float64) float64 {
		if v < thresh {
			return 0
		}
		return v
	}, a.votes)
	return out
}

// DistanceRange returns the histogram's half-height: row index
// DistanceRange() corresponds to a line through the image center.
func (a *Accumulator) DistanceRange() int { return a.distanceRange }

// Center returns the image center used as the distance origin.
func (a *Accumulator) Center() image.Point { return image.Pt(a.centerX, a.centerY) }

// normalizeGray min-max stretches the image to [0, 255] and returns the
// result as a row-major byte grid. A flat image comes back all zero.
func normalizeGray(img *image.Gray, width, height int) []uint8 {
	bounds := img.Bounds()
	norm := make([]uint8, width*height)

	lo, hi := uint8(255), uint8(0)
	for y := 0; y < height; y++ {
		off := img.PixOffset(bounds.Min.X, bounds.Min.Y+y)
		for _, v := range img.Pix[off : off+width] {
			if v < lo {
				lo = v
			}
			if v > hi {
				hi = v
			}
		}
	}
	if hi == lo {
		return norm
	}

	scale := 255.0 / float64(hi-lo)
	for y := 0; y < height; y++ {
		off := img.PixOffset(bounds.Min.X, bounds.Min.Y+y)
		for x, v := range img.Pix[off : off+width] {
			norm[y*width+x] = uint8(math.Round(float64(v-lo) * scale))
		}
	}
	return norm
}
