// Package hough implements straight-line detection on raster images using
// the classical Hough transform.
//
// The package turns an edge-filtered intensity image into a set of line
// segments in three steps:
//
//  1. TrigTable: a precomputed cosine/sine lookup for 180 discretized angles
//     (1-degree resolution over a half turn; the (distance, angle) line
//     representation is periodic with period 180 degrees).
//  2. Accumulator: a dense 2D vote histogram over (distance, angle). Every
//     foreground pixel votes once per angle at the signed perpendicular
//     distance of the line through it.
//  3. LineExtractor: thresholding plus 3x3 non-maximum suppression over the
//     histogram, mapping each surviving peak back to a pair of image-space
//     endpoints.
//
// # Input Contract
//
// The core consumes an in-memory *image.Gray of arbitrary size >= 1x1. It
// does not load, display, or preprocess images; pair it with an edge
// detector (see the imaging package) for real photographs. The image is
// min-max normalized to the full 0-255 range before voting, so any
// non-degenerate input yields a usable binary-like signal. Pixels that
// normalize to exactly 0 are background and never vote. A flat (constant)
// image normalizes to all-background and produces an empty histogram - a
// valid "no lines found" outcome, not an error.
//
// # Coordinate System
//
// Pixel coordinates are 0-based with the origin at the top-left corner, X
// increasing rightward and Y increasing downward. Distances are measured
// from the image center (width/2, height/2); a line is parameterized by the
// signed perpendicular distance rho from the center and the angle theta of
// that perpendicular:
//
//	rho = (x - centerX)*cos(theta) + (y - centerY)*sin(theta)
//
// Histogram row index = round(distanceRange + rho), where distanceRange =
// round(max(width, height) * sqrt(2)/2) is the largest perpendicular
// distance a corner-spanning line can reach.
//
// # Concurrency
//
// Both hot phases are data-parallel fork-join loops with no blocking work:
// voting runs in parallel over image row ranges with per-worker partial
// histograms merged at the end (parallel and sequential runs produce
// identical histograms), and peak search runs in parallel over angles
// within each sequentially visited distance row. All state is owned per
// Accumulator instance; any number of independent instances may be active
// concurrently. A TrigTable is immutable after construction and safe to
// share across instances.
//
// # Performance Considerations
//
// Voting is O(foreground pixels * 180) and dominates runtime on dense edge
// images. The histogram is allocated once per Init call and reused by every
// subsequent query; AccumulationMatrix and Lines never mutate it.
package hough
