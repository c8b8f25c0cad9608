// Package filter implements the optional color post-pass applied to a
// rectified document: brightness, contrast and saturation adjustments. It is
// a pure function over pixel buffers, fully decoupled from the warp.
package filter

import (
	"image"
	"image/color"

	"github.com/disintegration/imaging"
	colorful "github.com/lucasb-eyer/go-colorful"

	"github.com/ericlevine/docrect/pixel"
)

// Params holds adjustment strengths as percentages in [-100, 100]. The zero
// value leaves the image unchanged.
type Params struct {
	Brightness float64
	Contrast   float64
	Saturation float64
}

// IsZero reports whether applying the params would be a no-op.
func (p Params) IsZero() bool {
	return p == Params{}
}

// Apply returns a new buffer with the adjustments applied in brightness,
// contrast, saturation order. src is never mutated. Saturation has no effect
// on grayscale buffers.
func Apply(src *pixel.Buffer, p Params) *pixel.Buffer {
	if p.IsZero() {
		return src.Clone()
	}
	if src.Format == pixel.FormatGray {
		return applyGray(src, p)
	}

	img := src.ToImage()
	if p.Brightness != 0 {
		img = imaging.AdjustBrightness(img, p.Brightness)
	}
	if p.Contrast != 0 {
		img = imaging.AdjustContrast(img, p.Contrast)
	}
	if p.Saturation != 0 {
		img = adjustSaturation(img, p.Saturation)
	}
	nrgba, ok := img.(*image.NRGBA)
	if !ok {
		nrgba = imaging.Clone(img)
	}
	return pixel.FromNRGBA(nrgba)
}

// adjustSaturation scales HSL saturation per pixel. Alpha passes through.
func adjustSaturation(img image.Image, percentage float64) *image.NRGBA {
	scale := 1 + percentage/100
	if scale < 0 {
		scale = 0
	}
	return imaging.AdjustFunc(img, func(c color.NRGBA) color.NRGBA {
		col := colorful.Color{
			R: float64(c.R) / 255,
			G: float64(c.G) / 255,
			B: float64(c.B) / 255,
		}
		h, s, l := col.Hsl()
		s *= scale
		if s > 1 {
			s = 1
		}
		out := colorful.Hsl(h, s, l).Clamped()
		return color.NRGBA{
			R: uint8(out.R*255 + 0.5),
			G: uint8(out.G*255 + 0.5),
			B: uint8(out.B*255 + 0.5),
			A: c.A,
		}
	})
}

// applyGray adjusts a grayscale buffer through a lookup table, matching the
// brightness and contrast response of the color path.
func applyGray(src *pixel.Buffer, p Params) *pixel.Buffer {
	shift := 255 * p.Brightness / 100
	gain := (100 + p.Contrast) / 100
	if gain < 0 {
		gain = 0
	}
	var lut [256]uint8
	for i := range lut {
		v := float64(i) + shift
		v = (v-127.5)*gain + 127.5
		if v < 0 {
			v = 0
		} else if v > 255 {
			v = 255
		}
		lut[i] = uint8(v + 0.5)
	}

	out := pixel.New(src.W, src.H, pixel.FormatGray)
	for y := 0; y < src.H; y++ {
		srcRow := src.Pix[y*src.Stride : y*src.Stride+src.W]
		dstRow := out.Pix[y*out.Stride : y*out.Stride+out.W]
		for x, v := range srcRow {
			dstRow[x] = lut[v]
		}
	}
	return out
}
