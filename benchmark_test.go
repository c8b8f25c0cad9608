package docrect_test

import (
	"image"
	"image/color"
	"testing"

	docrect "github.com/ericlevine/docrect"
)

func benchmarkImage(w, h int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetNRGBA(x, y, color.NRGBA{R: uint8(x), G: uint8(y), B: uint8(x ^ y), A: 255})
		}
	}
	return img
}

var benchmarkQuad = docrect.NewQuad(
	docrect.Point{X: 80, Y: 60},
	docrect.Point{X: 950, Y: 40},
	docrect.Point{X: 990, Y: 720},
	docrect.Point{X: 50, Y: 700},
)

func BenchmarkRectify(b *testing.B) {
	img := benchmarkImage(1024, 768)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := docrect.Rectify(img, benchmarkQuad, nil); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkRectifySerial(b *testing.B) {
	img := benchmarkImage(1024, 768)
	opts := &docrect.Options{Parallelism: 1}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := docrect.Rectify(img, benchmarkQuad, opts); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkRectifyDownscaled(b *testing.B) {
	img := benchmarkImage(1024, 768)
	opts := &docrect.Options{MaxContentSize: 512}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := docrect.Rectify(img, benchmarkQuad, opts); err != nil {
			b.Fatal(err)
		}
	}
}
