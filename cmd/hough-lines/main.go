package main

import (
	"flag"
	"fmt"
	"image"
	"log"
	"os"

	"github.com/ironsheep/hough-lines/internal/hough"
	"github.com/ironsheep/hough-lines/internal/imaging"
	"github.com/ironsheep/hough-lines/internal/render"
)

// Version information - set by ldflags during build
var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

func main() {
	var (
		showVersion = flag.Bool("version", false, "print version information and exit")
		inPath      = flag.String("in", "", "input image (PNG, JPEG, or GIF)")
		outPath     = flag.String("out", "lines.png", "output image with detected lines drawn over the input")
		heatPath    = flag.String("heatmap", "", "optional output path for a vote-histogram heatmap")
		heatScale   = flag.Int("heatmap-scale", 2, "integer upscaling factor for the heatmap")
		voteThresh  = flag.Float64("thresh", 100, "minimum votes for a histogram peak to count as a line")
		runEdge     = flag.Bool("edge", true, "run edge detection before the transform (disable for pre-binarized input)")
		edgeLow     = flag.Int("edge-low", 50, "low hysteresis threshold for edge detection (0-255)")
		edgeHigh    = flag.Int("edge-high", 150, "high hysteresis threshold for edge detection (0-255)")
	)
	flag.Parse()

	if *showVersion {
		fmt.Printf("hough-lines %s\n", Version)
		fmt.Printf("  Build time: %s\n", BuildTime)
		fmt.Printf("  Git commit: %s\n", GitCommit)
		return
	}

	log.SetOutput(os.Stderr)
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)

	if *inPath == "" {
		flag.Usage()
		os.Exit(2)
	}

	if err := run(*inPath, *outPath, *heatPath, *heatScale, *voteThresh, *runEdge, *edgeLow, *edgeHigh); err != nil {
		log.Fatalf("hough-lines: %v", err)
	}
}

func run(inPath, outPath, heatPath string, heatScale int, voteThresh float64, runEdge bool, edgeLow, edgeHigh int) error {
	cache := imaging.NewImageCache()
	img, err := cache.Load(inPath)
	if err != nil {
		return err
	}

	var input *image.Gray
	if runEdge {
		input, err = imaging.EdgeDetect(img, edgeLow, edgeHigh)
		if err != nil {
			return err
		}
	} else {
		input = imaging.ToGray(img)
	}

	acc := hough.NewAccumulator(hough.NewTrigTable())
	if err := acc.Init(input); err != nil {
		return err
	}

	lines := hough.NewLineExtractor(acc).Lines(voteThresh)
	log.Printf("detected %d line(s) in %s at threshold %.0f", len(lines), inPath, voteThresh)
	for i, seg := range lines {
		fmt.Printf("line %d: (%d,%d) -> (%d,%d) length=%.1f angle=%.1f\n",
			i, seg.Start.X, seg.Start.Y, seg.End.X, seg.End.Y, seg.Length(), seg.AngleDegrees())
	}

	if err := imaging.Save(render.Overlay(img, lines), outPath); err != nil {
		return err
	}
	log.Printf("wrote overlay to %s", outPath)

	if heatPath != "" {
		heat := render.Heatmap(acc.AccumulationMatrix(0), heatScale)
		if err := imaging.Save(heat, heatPath); err != nil {
			return err
		}
		log.Printf("wrote accumulator heatmap to %s", heatPath)
	}
	return nil
}
