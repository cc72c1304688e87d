// Package render turns detection results into images: line segments drawn
// over the source frame and a false-color view of the vote histogram. It is
// a presentation layer only; nothing here feeds back into detection.
package render
