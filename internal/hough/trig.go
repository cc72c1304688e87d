package hough

import "math"

// AngleCount is the number of discretized angles in the transform:
// 1-degree resolution over [0, 180). All histogram columns, trig lookups,
// and angle indices in this package share this count.
const AngleCount = 180

// TrigTable holds precomputed cosine and sine values for each discretized
// angle, avoiding repeated trigonometric evaluation in the voting and
// extraction hot loops.
//
// A TrigTable is immutable after construction and safe for concurrent use
// by any number of Accumulators and LineExtractors.
type TrigTable struct {
	cos [AngleCount]float64
	sin [AngleCount]float64
}

// NewTrigTable builds the lookup table for angle indices 0..AngleCount-1,
// where index theta corresponds to theta degrees.
func NewTrigTable() *TrigTable {
	t := &TrigTable{}
	for theta := 0; theta < AngleCount; theta++ {
		rad := float64(theta) * math.Pi / 180.0
		t.cos[theta] = math.Cos(rad)
		t.sin[theta] = math.Sin(rad)
	}
	return t
}

// Cos returns the cosine of the given angle index in degrees.
func (t *TrigTable) Cos(theta int) float64 { return t.cos[theta] }

// Sin returns the sine of the given angle index in degrees.
func (t *TrigTable) Sin(theta int) float64 { return t.sin[theta] }
