package main

import (
	"bytes"
	"image"
	"image/color"
	"image/jpeg"
	"os"
	"path/filepath"
	"testing"

	docrect "github.com/ericlevine/docrect"
)

func writeTestJPEG(t *testing.T, w, h int) string {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetNRGBA(x, y, color.NRGBA{R: uint8(x * 255 / w), G: uint8(y * 255 / h), B: 128, A: 255})
		}
	}
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, nil); err != nil {
		t.Fatalf("encode jpeg: %v", err)
	}
	path := filepath.Join(t.TempDir(), "doc.jpg")
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		t.Fatalf("write jpeg: %v", err)
	}
	return path
}

func TestLoadImageNormalizesJPEG(t *testing.T) {
	path := writeTestJPEG(t, 80, 60)
	img, err := loadImage(path)
	if err != nil {
		t.Fatalf("loadImage: %v", err)
	}
	// JPEG decodes to YCbCr; loadImage must hand Rectify a layout it samples.
	if _, ok := img.(*image.NRGBA); !ok {
		t.Fatalf("loadImage returned %T, want *image.NRGBA", img)
	}
	q := docrect.NewQuad(
		docrect.Point{X: 10, Y: 8}, docrect.Point{X: 70, Y: 12},
		docrect.Point{X: 68, Y: 52}, docrect.Point{X: 8, Y: 50})
	result, err := docrect.Rectify(img, q, nil)
	if err != nil {
		t.Fatalf("Rectify on loaded JPEG: %v", err)
	}
	if result.W == 0 || result.H == 0 {
		t.Errorf("empty result %dx%d", result.W, result.H)
	}
}

func TestParseCorners(t *testing.T) {
	q, err := parseCorners("1,2, 3,4,5.5,6, 7,8")
	if err != nil {
		t.Fatalf("parseCorners: %v", err)
	}
	want := docrect.NewQuad(
		docrect.Point{X: 1, Y: 2}, docrect.Point{X: 3, Y: 4},
		docrect.Point{X: 5.5, Y: 6}, docrect.Point{X: 7, Y: 8})
	if q != want {
		t.Errorf("parseCorners = %+v, want %+v", q, want)
	}
	for _, bad := range []string{"", "1,2,3", "1,2,3,4,5,6,7,x"} {
		if _, err := parseCorners(bad); err == nil {
			t.Errorf("parseCorners(%q) should fail", bad)
		}
	}
}
