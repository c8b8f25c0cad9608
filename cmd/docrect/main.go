package main

import (
	"flag"
	"fmt"
	"image"
	"os"
	"strconv"
	"strings"

	"github.com/disintegration/imaging"

	docrect "github.com/ericlevine/docrect"
	"github.com/ericlevine/docrect/filter"
)

func main() {
	cornersFlag := flag.String("corners", "", "document corners as eight comma-separated values: tlX,tlY,trX,trY,brX,brY,blX,blY (required)")
	rotate := flag.Int("rotate", 0, "clockwise rotation to bake in before warping: 0, 90, 180 or 270")
	maxSize := flag.Int("max-size", 0, "subsample the source so its longer side stays near this many pixels (0 disables)")
	brightness := flag.Float64("brightness", 0, "brightness adjustment in percent, -100 to 100")
	contrast := flag.Float64("contrast", 0, "contrast adjustment in percent, -100 to 100")
	saturation := flag.Float64("saturation", 0, "saturation adjustment in percent, -100 to 100")
	output := flag.String("o", "rectified.png", "output image path")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: docrect -corners tlX,tlY,trX,trY,brX,brY,blX,blY [flags] <image-file>\n\n")
		fmt.Fprintf(os.Stderr, "Warp the document quadrilateral in an image into an upright rectangle.\n")
		fmt.Fprintf(os.Stderr, "Corner coordinates are given in the rotated image's pixel space.\n\n")
		fmt.Fprintf(os.Stderr, "Flags:\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	if flag.NArg() != 1 || *cornersFlag == "" {
		flag.Usage()
		os.Exit(1)
	}

	corners, err := parseCorners(*cornersFlag)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	path := flag.Arg(0)
	img, err := loadImage(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s: error: %v\n", path, err)
		os.Exit(1)
	}

	result, err := docrect.Rectify(img, corners, &docrect.Options{
		Rotation:       *rotate,
		MaxContentSize: *maxSize,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s: error: %v\n", path, err)
		os.Exit(1)
	}

	params := filter.Params{
		Brightness: *brightness,
		Contrast:   *contrast,
		Saturation: *saturation,
	}
	if !params.IsZero() {
		result = filter.Apply(result, params)
	}

	if err := imaging.Save(result.ToImage(), *output); err != nil {
		fmt.Fprintf(os.Stderr, "%s: error: %v\n", *output, err)
		os.Exit(1)
	}
}

// loadImage decodes an image file and normalizes it to NRGBA, so decoder
// output the rectifier does not sample directly (JPEG's YCbCr, paletted GIF)
// still works from the command line.
func loadImage(path string) (image.Image, error) {
	img, err := imaging.Open(path)
	if err != nil {
		return nil, err
	}
	return imaging.Clone(img), nil
}

// parseCorners parses "tlX,tlY,trX,trY,brX,brY,blX,blY" into a Quad.
func parseCorners(s string) (docrect.Quad, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 8 {
		return docrect.Quad{}, fmt.Errorf("corners: want 8 comma-separated values, got %d", len(parts))
	}
	vals := make([]float64, 8)
	for i, part := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(part), 64)
		if err != nil {
			return docrect.Quad{}, fmt.Errorf("corners: bad value %q: %w", part, err)
		}
		vals[i] = v
	}
	return docrect.NewQuad(
		docrect.Point{X: vals[0], Y: vals[1]},
		docrect.Point{X: vals[2], Y: vals[3]},
		docrect.Point{X: vals[4], Y: vals[5]},
		docrect.Point{X: vals[6], Y: vals[7]},
	), nil
}
