package pixel

import (
	"image"
	"image/color"
	"testing"
)

func makeNRGBA(w, h int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetNRGBA(x, y, color.NRGBA{R: uint8(x * 7), G: uint8(y * 11), B: uint8(x + y), A: 255})
		}
	}
	return img
}

func TestFromImageNRGBA(t *testing.T) {
	b, err := FromImage(makeNRGBA(5, 4))
	if err != nil {
		t.Fatalf("FromImage: %v", err)
	}
	if b.W != 5 || b.H != 4 || b.Format != FormatNRGBA {
		t.Errorf("got %dx%d format %d", b.W, b.H, b.Format)
	}
	px := b.Pixel(3, 2)
	if px[0] != 21 || px[1] != 22 || px[2] != 5 || px[3] != 255 {
		t.Errorf("pixel (3,2) = %v", px)
	}
}

func TestFromImageRGBA(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 3, 3))
	img.SetRGBA(1, 1, color.RGBA{R: 10, G: 20, B: 30, A: 255})
	b, err := FromImage(img)
	if err != nil {
		t.Fatalf("FromImage: %v", err)
	}
	px := b.Pixel(1, 1)
	if px[0] != 10 || px[1] != 20 || px[2] != 30 || px[3] != 255 {
		t.Errorf("pixel (1,1) = %v", px)
	}
}

func TestFromImageGray(t *testing.T) {
	img := image.NewGray(image.Rect(0, 0, 4, 2))
	img.SetGray(2, 1, color.Gray{Y: 77})
	b, err := FromImage(img)
	if err != nil {
		t.Fatalf("FromImage: %v", err)
	}
	if b.Format != FormatGray || b.Format.Channels() != 1 {
		t.Errorf("format = %d", b.Format)
	}
	if b.Pixel(2, 1)[0] != 77 {
		t.Errorf("pixel (2,1) = %v", b.Pixel(2, 1))
	}
}

func TestFromImageSubimage(t *testing.T) {
	img := makeNRGBA(10, 10)
	sub := img.SubImage(image.Rect(2, 3, 7, 8)).(*image.NRGBA)
	b, err := FromImage(sub)
	if err != nil {
		t.Fatalf("FromImage: %v", err)
	}
	if b.W != 5 || b.H != 5 {
		t.Fatalf("got %dx%d, want 5x5", b.W, b.H)
	}
	// (0,0) of the buffer is (2,3) of the parent image.
	px := b.Pixel(0, 0)
	if px[0] != 14 || px[1] != 33 || px[2] != 5 {
		t.Errorf("pixel (0,0) = %v", px)
	}
}

func TestFromImageUnsupported(t *testing.T) {
	img := image.NewCMYK(image.Rect(0, 0, 2, 2))
	if _, err := FromImage(img); err != ErrUnsupportedFormat {
		t.Errorf("err = %v, want ErrUnsupportedFormat", err)
	}
}

func TestRotate90(t *testing.T) {
	// 2x3 gray buffer with distinct values.
	b := New(2, 3, FormatGray)
	for i := range b.Pix {
		b.Pix[i] = uint8(i + 1)
	}
	// Layout:          After 90 CW:
	//  1 2              5 3 1
	//  3 4              6 4 2
	//  5 6
	r := b.Rotate(90)
	if r.W != 3 || r.H != 2 {
		t.Fatalf("got %dx%d, want 3x2", r.W, r.H)
	}
	want := []uint8{5, 3, 1, 6, 4, 2}
	for i, v := range want {
		if r.Pix[i] != v {
			t.Errorf("Pix[%d] = %d, want %d", i, r.Pix[i], v)
		}
	}
}

func TestRotate180TwiceIsIdentity(t *testing.T) {
	b, _ := FromImage(makeNRGBA(7, 5))
	if !b.Rotate(180).Rotate(180).Equals(b) {
		t.Error("two 180 rotations should restore the original")
	}
}

func TestRotateFullTurnIsIdentity(t *testing.T) {
	b, _ := FromImage(makeNRGBA(6, 4))
	r := b
	for i := 0; i < 4; i++ {
		r = r.Rotate(90)
	}
	if !r.Equals(b) {
		t.Error("four 90 rotations should restore the original")
	}
	if !b.Rotate(90).Rotate(180).Equals(b.Rotate(270)) {
		t.Error("90 then 180 should equal 270")
	}
}

func TestRotateInvalidPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("Rotate(45) should panic")
		}
	}()
	New(2, 2, FormatGray).Rotate(45)
}

func TestSubsample(t *testing.T) {
	b := New(5, 5, FormatGray)
	for y := 0; y < 5; y++ {
		for x := 0; x < 5; x++ {
			b.Pixel(x, y)[0] = uint8(10*y + x)
		}
	}
	s := b.Subsample(2)
	if s.W != 3 || s.H != 3 {
		t.Fatalf("got %dx%d, want 3x3", s.W, s.H)
	}
	for y := 0; y < 3; y++ {
		for x := 0; x < 3; x++ {
			want := uint8(20*y + 2*x)
			if got := s.Pixel(x, y)[0]; got != want {
				t.Errorf("(%d,%d) = %d, want %d", x, y, got, want)
			}
		}
	}
}

func TestSubsampleFactorOneCopies(t *testing.T) {
	b, _ := FromImage(makeNRGBA(4, 4))
	s := b.Subsample(1)
	if !s.Equals(b) {
		t.Error("factor 1 should copy unchanged")
	}
	s.Pixel(0, 0)[0] = 99
	if b.Pixel(0, 0)[0] == 99 {
		t.Error("subsample result should not alias the source")
	}
}

func TestToImageRoundTrip(t *testing.T) {
	b, _ := FromImage(makeNRGBA(6, 3))
	img := b.ToImage().(*image.NRGBA)
	back, _ := FromImage(img)
	if !back.Equals(b) {
		t.Error("ToImage/FromImage round trip changed pixels")
	}
	// The returned image must not alias the buffer.
	img.Pix[0] = ^img.Pix[0]
	if b.Pix[0] == img.Pix[0] {
		t.Error("ToImage should copy pixel data")
	}
}

func TestToImageGray(t *testing.T) {
	b := New(3, 2, FormatGray)
	b.Pixel(1, 1)[0] = 42
	img, ok := b.ToImage().(*image.Gray)
	if !ok {
		t.Fatal("expected *image.Gray")
	}
	if img.GrayAt(1, 1).Y != 42 {
		t.Errorf("GrayAt(1,1) = %d, want 42", img.GrayAt(1, 1).Y)
	}
}
