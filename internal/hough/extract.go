package hough

import (
	"image"
	"math"
	"sync"

	"github.com/anthonynsimon/bild/parallel"
)

// LineSegment is one detected line, clipped to the image's left and right
// boundary columns (or, for a vertical line, to its top and bottom rows).
type LineSegment struct {
	Start image.Point
	End   image.Point
}

// Length returns the Euclidean length of the segment in pixels.
func (s LineSegment) Length() float64 {
	dx := float64(s.End.X - s.Start.X)
	dy := float64(s.End.Y - s.Start.Y)
	return math.Sqrt(dx*dx + dy*dy)
}

// AngleDegrees returns the segment's direction in degrees, measured from the
// positive X axis with Y increasing downward, in (-180, 180].
func (s LineSegment) AngleDegrees() float64 {
	dy := float64(s.End.Y - s.Start.Y)
	dx := float64(s.End.X - s.Start.X)
	return math.Atan2(dy, dx) * 180 / math.Pi
}

// LineExtractor converts histogram peaks into image-space line segments.
// It reads the accumulator's histogram and geometry but never mutates them,
// so one extractor may serve concurrent Lines calls.
type LineExtractor struct {
	acc *Accumulator
}

// NewLineExtractor creates an extractor over an initialized accumulator.
func NewLineExtractor(acc *Accumulator) *LineExtractor {
	return &LineExtractor{acc: acc}
}

// Line converts one histogram cell into a line segment.
//
// The endpoints sit at x=0 and x=width, with y solved from the line
// equation rho = (x-centerX)*cos(theta) + (y-centerY)*sin(theta). When
// sin(theta) is zero the equation has no y solution; the line is vertical in
// image space and is returned as a fixed-x segment spanning the image
// height instead.
func (e *LineExtractor) Line(distanceIndex, angleIndex int) LineSegment {
	a := e.acc
	rho := float64(distanceIndex - a.distanceRange)

	sin := a.trig.sin[angleIndex]
	if sin == 0 {
		x := a.centerX + int(math.Round(rho))
		return LineSegment{Start: image.Pt(x, 0), End: image.Pt(x, a.height)}
	}

	cos := a.trig.cos[angleIndex]
	y1 := int((rho-float64(-a.centerX)*cos)/sin + float64(a.centerY))
	y2 := int((rho-float64(a.width-a.centerX)*cos)/sin + float64(a.centerY))
	return LineSegment{Start: image.Pt(0, y1), End: image.Pt(a.width, y2)}
}

// Lines returns the segments whose histogram cells clear thresh and are 3x3
// local maxima.
//
// A cell is a local maximum iff its value is non-zero and >= every value in
// its 8 neighbors. Ties count as maxima, so a flat peak plateau can emit
// duplicate adjacent lines; this is the accepted tie policy, not a defect.
// The first and last distance rows and angle columns are excluded from the
// search (no wraparound), so peaks on the histogram border are never
// reported.
//
// Distance rows are visited sequentially; the angle search within each row
// runs in parallel over a read-only thresholded snapshot, with accepted
// maxima appended under a lock. Output order is not significant.
//
// A threshold below 1 requests nothing and returns an empty result without
// touching the histogram.
func (e *LineExtractor) Lines(thresh float64) []LineSegment {
	if thresh < 1 {
		return nil
	}

	th := e.acc.AccumulationMatrix(thresh)
	rows, _ := th.Dims()
	if rows < 3 {
		return nil
	}

	var (
		mu    sync.Mutex
		lines []LineSegment
	)
	for r := 1; r < rows-1; r++ {
		prev := th.RawRowView(r - 1)
		curr := th.RawRowView(r)
		next := th.RawRowView(r + 1)

		parallel.Line(AngleCount-2, func(start, end int) {
			var local []LineSegment
			for i := start; i < end; i++ {
				theta := i + 1
				v := curr[theta]
				if v == 0 {
					continue
				}
				if v < prev[theta-1] || v < prev[theta] || v < prev[theta+1] ||
					v < curr[theta-1] || v < curr[theta+1] ||
					v < next[theta-1] || v < next[theta] || v < next[theta+1] {
					continue
				}
				local = append(local, e.Line(r, theta))
			}
			if len(local) > 0 {
				mu.Lock()
				lines = append(lines, local...)
				mu.Unlock()
			}
		})
	}
	return lines
}
