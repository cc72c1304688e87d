package imaging

import (
	"fmt"
	"image"
	"image/color"
	"math"

	"github.com/anthonynsimon/bild/blur"
	"github.com/anthonynsimon/bild/effect"
)

// EdgeDetect performs Canny-style edge detection on an image, producing the
// binary-ish input the hough accumulator expects: edge pixels are 255,
// everything else is 0.
//
// Parameters:
//   - img: Source image (color or grayscale).
//   - thresholdLow: Low threshold (0-255). Gradients below this are never
//     edges. Typical value: 50.
//   - thresholdHigh: High threshold (0-255). Gradients above this are always
//     edges; gradients between the thresholds are kept only when connected
//     to a strong edge. Typical value: 150.
//
// # Algorithm
//
//  1. Grayscale conversion and noise reduction via a radius-1.4 Gaussian
//     blur, both delegated to bild.
//  2. Sobel gradients: magnitude = sqrt(Gx² + Gy²), direction = atan2(Gy, Gx).
//  3. Non-maximum suppression: keep only local maxima along the gradient
//     direction, thinning edges to one pixel.
//  4. Hysteresis thresholding between thresholdLow and thresholdHigh.
//
// Lower thresholds detect more edges but admit more noise into the vote
// histogram; when downstream line detection reports spurious peaks, raise
// them before raising the vote threshold.
func EdgeDetect(img image.Image, thresholdLow, thresholdHigh int) (*image.Gray, error) {
	if thresholdLow < 0 || thresholdHigh > 255 || thresholdLow > thresholdHigh {
		return nil, fmt.Errorf("invalid edge thresholds %d..%d: need 0 <= low <= high <= 255", thresholdLow, thresholdHigh)
	}

	bounds := img.Bounds()
	width := bounds.Dx()
	height := bounds.Dy()

	// Grayscale + Gaussian blur; bild returns RGBA with equal R/G/B.
	blurred := blur.Gaussian(effect.Grayscale(img), 1.4)
	blurBounds := blurred.Bounds()
	gray := make([][]float64, height)
	for y := 0; y < height; y++ {
		gray[y] = make([]float64, width)
		row := blurred.Pix[blurred.PixOffset(blurBounds.Min.X, blurBounds.Min.Y+y):]
		for x := 0; x < width; x++ {
			gray[y][x] = float64(row[x*4]) / 255.0
		}
	}

	// Sobel gradients
	magnitude := make([][]float64, height)
	direction := make([][]float64, height)

	sobelX := [3][3]float64{
		{-1, 0, 1},
		{-2, 0, 2},
		{-1, 0, 1},
	}
	sobelY := [3][3]float64{
		{-1, -2, -1},
		{0, 0, 0},
		{1, 2, 1},
	}

	for y := 0; y < height; y++ {
		magnitude[y] = make([]float64, width)
		direction[y] = make([]float64, width)

		for x := 0; x < width; x++ {
			var gx, gy float64
			for ky := -1; ky <= 1; ky++ {
				for kx := -1; kx <= 1; kx++ {
					py := clamp(y+ky, 0, height-1)
					px := clamp(x+kx, 0, width-1)
					gx += gray[py][px] * sobelX[ky+1][kx+1]
					gy += gray[py][px] * sobelY[ky+1][kx+1]
				}
			}
			magnitude[y][x] = math.Sqrt(gx*gx + gy*gy)
			direction[y][x] = math.Atan2(gy, gx)
		}
	}

	// Non-maximum suppression along the gradient direction
	suppressed := make([][]float64, height)
	for y := 0; y < height; y++ {
		suppressed[y] = make([]float64, width)
		for x := 0; x < width; x++ {
			if y == 0 || y == height-1 || x == 0 || x == width-1 {
				continue
			}

			angle := direction[y][x]
			mag := magnitude[y][x]

			var n1, n2 float64
			if (angle >= -math.Pi/8 && angle < math.Pi/8) || (angle >= 7*math.Pi/8 || angle < -7*math.Pi/8) {
				n1 = magnitude[y][x-1]
				n2 = magnitude[y][x+1]
			} else if (angle >= math.Pi/8 && angle < 3*math.Pi/8) || (angle >= -7*math.Pi/8 && angle < -5*math.Pi/8) {
				n1 = magnitude[y-1][x+1]
				n2 = magnitude[y+1][x-1]
			} else if (angle >= 3*math.Pi/8 && angle < 5*math.Pi/8) || (angle >= -5*math.Pi/8 && angle < -3*math.Pi/8) {
				n1 = magnitude[y-1][x]
				n2 = magnitude[y+1][x]
			} else {
				n1 = magnitude[y-1][x-1]
				n2 = magnitude[y+1][x+1]
			}

			if mag >= n1 && mag >= n2 {
				suppressed[y][x] = mag
			}
		}
	}

	// Double threshold and edge tracking by hysteresis
	result := image.NewGray(image.Rect(0, 0, width, height))
	lowThresh := float64(thresholdLow) / 255.0
	highThresh := float64(thresholdHigh) / 255.0

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			val := suppressed[y][x]
			if val >= highThresh {
				result.SetGray(x, y, color.Gray{Y: 255})
			} else if val >= lowThresh {
				hasStrongNeighbor := false
				for ky := -1; ky <= 1 && !hasStrongNeighbor; ky++ {
					for kx := -1; kx <= 1 && !hasStrongNeighbor; kx++ {
						py := clamp(y+ky, 0, height-1)
						px := clamp(x+kx, 0, width-1)
						if suppressed[py][px] >= highThresh {
							hasStrongNeighbor = true
						}
					}
				}
				if hasStrongNeighbor {
					result.SetGray(x, y, color.Gray{Y: 255})
				}
			}
		}
	}

	return result, nil
}

// clamp constrains an integer value to the range [min, max].
// Used for boundary handling in convolution operations.
func clamp(val, min, max int) int {
	if val < min {
		return min
	}
	if val > max {
		return max
	}
	return val
}
