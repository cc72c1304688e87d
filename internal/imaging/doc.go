// Package imaging provides the image acquisition and preprocessing steps
// that feed the hough detection core.
//
// The package covers the concerns the core deliberately leaves to
// collaborators: decoding images from disk (with an optional thread-safe
// cache for repeated loads), converting arbitrary color images to the 8-bit
// intensity grid the accumulator consumes, and Canny-style edge detection
// that turns a photograph into the binary-ish edge image the Hough
// transform expects.
//
// # Coordinate System
//
// All pixel coordinates are 0-based with origin at the top-left corner,
// X increasing rightward and Y increasing downward.
//
// # Thread Safety
//
// The ImageCache type is safe for concurrent use. The conversion and edge
// detection functions are stateless and can be called concurrently on
// different images.
//
// # Error Handling
//
// Functions return errors for invalid inputs such as unreadable or
// undecodable files and out-of-range edge thresholds.
package imaging
