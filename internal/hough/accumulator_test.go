package hough

import (
	"image"
	"image/color"
	"math"
	"testing"

	"gonum.org/v1/gonum/mat"
)

// newTestImage creates an all-black grayscale image.
func newTestImage(width, height int) *image.Gray {
	return image.NewGray(image.Rect(0, 0, width, height))
}

// drawDiagonal sets the pixels (i, i) for i in [from, to] to full intensity.
func drawDiagonal(img *image.Gray, from, to int) {
	for i := from; i <= to; i++ {
		img.SetGray(i, i, color.Gray{Y: 255})
	}
}

// drawRow sets a full image row to full intensity.
func drawRow(img *image.Gray, y int) {
	b := img.Bounds()
	for x := b.Min.X; x < b.Max.X; x++ {
		img.SetGray(x, y, color.Gray{Y: 255})
	}
}

func TestInitRejectsDegenerateDimensions(t *testing.T) {
	acc := NewAccumulator(nil)

	if err := acc.Init(image.NewGray(image.Rect(0, 0, 0, 10))); err == nil {
		t.Error("Init accepted a zero-width image")
	}
	if err := acc.Init(image.NewGray(image.Rect(0, 0, 10, 0))); err == nil {
		t.Error("Init accepted a zero-height image")
	}
}

func TestSinglePixelVotesOncePerAngle(t *testing.T) {
	img := newTestImage(12, 12)
	img.SetGray(3, 2, color.Gray{Y: 255})

	acc := NewAccumulator(nil)
	if err := acc.Init(img); err != nil {
		t.Fatalf("Init failed: %v", err)
	}

	m := acc.AccumulationMatrix(0)
	rows, cols := m.Dims()
	if cols != AngleCount {
		t.Fatalf("histogram columns: got %d, want %d", cols, AngleCount)
	}
	if rows != 2*acc.DistanceRange() {
		t.Fatalf("histogram rows: got %d, want %d", rows, 2*acc.DistanceRange())
	}

	// A single foreground pixel traces a sinusoid: exactly one vote in
	// every angle column, at round(distanceRange + dx*cos + dy*sin).
	nonZero := 0
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			if v := m.At(r, c); v != 0 {
				nonZero++
				if v != 1 {
					t.Errorf("cell (%d,%d): got %v votes, want 1", r, c, v)
				}
			}
		}
	}
	if nonZero != AngleCount {
		t.Errorf("non-zero cells: got %d, want %d", nonZero, AngleCount)
	}

	trig := NewTrigTable()
	center := acc.Center()
	dx := float64(3 - center.X)
	dy := float64(2 - center.Y)
	for theta := 0; theta < AngleCount; theta++ {
		r := dx*trig.Cos(theta) + dy*trig.Sin(theta)
		idx := int(math.Round(float64(acc.DistanceRange()) + r))
		if got := m.At(idx, theta); got != 1 {
			t.Errorf("theta %d: expected vote at row %d, got %v", theta, idx, got)
		}
	}
}

func TestFlatImageYieldsEmptyHistogram(t *testing.T) {
	img := newTestImage(40, 40)
	for i := range img.Pix {
		img.Pix[i] = 128
	}

	acc := NewAccumulator(nil)
	if err := acc.Init(img); err != nil {
		t.Fatalf("Init failed: %v", err)
	}

	if sum := mat.Sum(acc.AccumulationMatrix(0)); sum != 0 {
		t.Errorf("flat image histogram sum: got %v, want 0", sum)
	}
}

func TestNormalizationStretchesLowContrastInput(t *testing.T) {
	// Background 100, foreground 110: min-max normalization must stretch
	// this to a full-range signal so the foreground pixel still votes.
	img := newTestImage(16, 16)
	for i := range img.Pix {
		img.Pix[i] = 100
	}
	img.SetGray(8, 4, color.Gray{Y: 110})

	acc := NewAccumulator(nil)
	if err := acc.Init(img); err != nil {
		t.Fatalf("Init failed: %v", err)
	}

	if sum := mat.Sum(acc.AccumulationMatrix(0)); sum != AngleCount {
		t.Errorf("histogram sum: got %v, want %d", sum, AngleCount)
	}
}

func TestAccumulationMatrixThresholdAndIdempotence(t *testing.T) {
	img := newTestImage(50, 50)
	drawDiagonal(img, 5, 44)

	acc := NewAccumulator(nil)
	if err := acc.Init(img); err != nil {
		t.Fatalf("Init failed: %v", err)
	}

	raw := acc.AccumulationMatrix(0)
	first := acc.AccumulationMatrix(10)
	second := acc.AccumulationMatrix(10)

	if !mat.Equal(first, second) {
		t.Error("AccumulationMatrix is not a pure read: repeated calls differ")
	}

	rows, cols := raw.Dims()
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			v := raw.At(r, c)
			got := first.At(r, c)
			if v < 10 && got != 0 {
				t.Fatalf("cell (%d,%d): value %v below threshold not zeroed (got %v)", r, c, v, got)
			}
			if v >= 10 && got != v {
				t.Fatalf("cell (%d,%d): value %v above threshold changed to %v", r, c, v, got)
			}
		}
	}
}

func TestInitVariousSizes(t *testing.T) {
	sizes := []struct{ w, h int }{
		{1, 1},
		{1, 7},
		{7, 1},
		{2, 2},
		{3, 5},
		{64, 48},
		{100, 100},
	}

	for _, size := range sizes {
		img := newTestImage(size.w, size.h)
		foreground := 0
		for y := 0; y < size.h; y++ {
			for x := 0; x < size.w; x++ {
				if (x*31+y*17)%7 == 0 {
					img.SetGray(x, y, color.Gray{Y: 255})
					foreground++
				}
			}
		}

		acc := NewAccumulator(nil)
		if err := acc.Init(img); err != nil {
			t.Fatalf("%dx%d: Init failed: %v", size.w, size.h, err)
		}

		sum := mat.Sum(acc.AccumulationMatrix(0))
		if foreground == size.w*size.h {
			// Every pixel lit means a constant image, which normalizes to
			// all-background (the 1x1 case).
			if sum != 0 {
				t.Errorf("%dx%d: constant image histogram sum: got %v, want 0", size.w, size.h, sum)
			}
			continue
		}

		// Every foreground pixel votes once per angle; votes whose rounded
		// distance index leaves the histogram are discarded, never written
		// out of bounds. Tiny images discard a noticeable share because the
		// integer-division center sits off the geometric middle, but most
		// votes must always land.
		max := float64(foreground * AngleCount)
		if sum > max {
			t.Errorf("%dx%d: histogram sum %v exceeds %v possible votes", size.w, size.h, sum, max)
		}
		if foreground > 0 && sum < max*0.8 {
			t.Errorf("%dx%d: histogram sum %v lost too many votes (max %v)", size.w, size.h, sum, max)
		}
	}
}

// sequentialHistogram is a straight single-goroutine rendition of the voting
// loop, used to prove the parallel version loses no updates.
func sequentialHistogram(img *image.Gray) *mat.Dense {
	trig := NewTrigTable()
	bounds := img.Bounds()
	width := bounds.Dx()
	height := bounds.Dy()

	longest := width
	if height > longest {
		longest = height
	}
	distanceRange := int(math.Round(float64(longest) * math.Sqrt2 / 2))
	rows := 2 * distanceRange
	centerX := width / 2
	centerY := height / 2

	votes := mat.NewDense(rows, AngleCount, nil)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			if img.GrayAt(bounds.Min.X+x, bounds.Min.Y+y).Y == 0 {
				continue
			}
			dx := float64(x - centerX)
			dy := float64(y - centerY)
			for theta := 0; theta < AngleCount; theta++ {
				r := dx*trig.Cos(theta) + dy*trig.Sin(theta)
				idx := int(math.Round(float64(distanceRange) + r))
				if idx < 0 || idx >= rows {
					continue
				}
				votes.Set(idx, theta, votes.At(idx, theta)+1)
			}
		}
	}
	return votes
}

func TestParallelVotingMatchesSequential(t *testing.T) {
	// Binary image, so normalization is the identity and the sequential
	// reference can treat any non-zero pixel as foreground.
	img := newTestImage(64, 48)
	for y := 0; y < 48; y++ {
		for x := 0; x < 64; x++ {
			if (x*13+y*29)%5 == 0 {
				img.SetGray(x, y, color.Gray{Y: 255})
			}
		}
	}

	acc := NewAccumulator(nil)
	if err := acc.Init(img); err != nil {
		t.Fatalf("Init failed: %v", err)
	}

	want := sequentialHistogram(img)
	got := acc.AccumulationMatrix(0)
	if !mat.Equal(got, want) {
		t.Error("parallel histogram differs from sequential reference: lost or duplicated votes")
	}
}
