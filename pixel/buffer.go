// Package pixel provides flat 8-bit pixel buffers used as the working
// representation for warping. A Buffer decouples the geometric core from Go's
// image.Image interface: conversion happens once at the boundary, and the
// warp kernel indexes raw bytes.
package pixel

import (
	"errors"
	"image"
)

// ErrUnsupportedFormat is returned when an image's pixel layout cannot be
// converted to a Buffer.
var ErrUnsupportedFormat = errors.New("pixel: unsupported image format")

// Format identifies the channel layout of a Buffer.
type Format int

const (
	// FormatNRGBA is 4 bytes per pixel: R, G, B, A, non-premultiplied.
	FormatNRGBA Format = iota
	// FormatGray is 1 byte per pixel.
	FormatGray
)

// Channels returns the number of bytes per pixel for the format.
func (f Format) Channels() int {
	if f == FormatGray {
		return 1
	}
	return 4
}

// Buffer is a flat pixel buffer. Pix holds rows of Channels()-byte pixels,
// Stride bytes apart. Buffers handed to the warp kernel are treated as
// read-only.
type Buffer struct {
	Pix    []uint8
	Stride int
	W, H   int
	Format Format
}

// New allocates a zeroed buffer of the given size and format.
func New(w, h int, format Format) *Buffer {
	stride := w * format.Channels()
	return &Buffer{
		Pix:    make([]uint8, stride*h),
		Stride: stride,
		W:      w,
		H:      h,
		Format: format,
	}
}

// FromImage converts an image to a Buffer. NRGBA, RGBA and Gray images are
// supported; any other layout yields ErrUnsupportedFormat. RGBA pixel data is
// taken as-is: document photographs are opaque, where premultiplied and
// straight alpha coincide. Subimages (non-zero origin or wide stride) are
// normalized by row copy.
func FromImage(img image.Image) (*Buffer, error) {
	switch src := img.(type) {
	case *image.NRGBA:
		return FromNRGBA(src), nil
	case *image.RGBA:
		return fromRows(src.Pix, src.Stride, src.Rect, FormatNRGBA), nil
	case *image.Gray:
		return fromRows(src.Pix, src.Stride, src.Rect, FormatGray), nil
	default:
		return nil, ErrUnsupportedFormat
	}
}

// FromNRGBA converts an NRGBA image to a Buffer. It never fails.
func FromNRGBA(src *image.NRGBA) *Buffer {
	return fromRows(src.Pix, src.Stride, src.Rect, FormatNRGBA)
}

func fromRows(pix []uint8, stride int, rect image.Rectangle, format Format) *Buffer {
	w := rect.Dx()
	h := rect.Dy()
	b := New(w, h, format)
	ch := format.Channels()
	for y := 0; y < h; y++ {
		srcOff := y*stride + rect.Min.X*ch
		// Rect.Min offsets index into the parent image's data for subimages.
		copy(b.Pix[y*b.Stride:(y+1)*b.Stride], pix[srcOff:srcOff+w*ch])
	}
	return b
}

// ToImage returns the buffer's contents as an image.Image (*image.NRGBA or
// *image.Gray). The pixel data is copied, so the buffer stays unchanged if
// the caller draws on the result.
func (b *Buffer) ToImage() image.Image {
	pix := make([]uint8, len(b.Pix))
	copy(pix, b.Pix)
	rect := image.Rect(0, 0, b.W, b.H)
	if b.Format == FormatGray {
		return &image.Gray{Pix: pix, Stride: b.Stride, Rect: rect}
	}
	return &image.NRGBA{Pix: pix, Stride: b.Stride, Rect: rect}
}

// Clone returns a deep copy of the buffer.
func (b *Buffer) Clone() *Buffer {
	out := New(b.W, b.H, b.Format)
	copy(out.Pix, b.Pix)
	return out
}

// Pixel returns a view of the pixel at (x, y); mutating the returned slice
// mutates the buffer.
func (b *Buffer) Pixel(x, y int) []uint8 {
	ch := b.Format.Channels()
	off := y*b.Stride + x*ch
	return b.Pix[off : off+ch]
}

// Rotate returns a copy of the buffer rotated clockwise by the given number
// of degrees, which must be a multiple of 90 in [0, 360). Rotation by 90 or
// 270 swaps width and height. Rotating by 0 still copies.
func (b *Buffer) Rotate(degrees int) *Buffer {
	switch degrees {
	case 0:
		return b.Clone()
	case 90:
		return b.rotate90()
	case 180:
		return b.rotate180()
	case 270:
		return b.rotate270()
	default:
		panic("pixel: degrees must be 0, 90, 180 or 270")
	}
}

func (b *Buffer) rotate90() *Buffer {
	out := New(b.H, b.W, b.Format)
	ch := b.Format.Channels()
	for y := 0; y < out.H; y++ {
		for x := 0; x < out.W; x++ {
			// (x, y) in the rotated image reads (y, H-1-x) in the source.
			src := (b.H-1-x)*b.Stride + y*ch
			copy(out.Pix[y*out.Stride+x*ch:y*out.Stride+(x+1)*ch], b.Pix[src:src+ch])
		}
	}
	return out
}

func (b *Buffer) rotate180() *Buffer {
	out := New(b.W, b.H, b.Format)
	ch := b.Format.Channels()
	for y := 0; y < b.H; y++ {
		for x := 0; x < b.W; x++ {
			src := (b.H-1-y)*b.Stride + (b.W-1-x)*ch
			copy(out.Pix[y*out.Stride+x*ch:y*out.Stride+(x+1)*ch], b.Pix[src:src+ch])
		}
	}
	return out
}

func (b *Buffer) rotate270() *Buffer {
	out := New(b.H, b.W, b.Format)
	ch := b.Format.Channels()
	for y := 0; y < out.H; y++ {
		for x := 0; x < out.W; x++ {
			src := x*b.Stride + (b.W-1-y)*ch
			copy(out.Pix[y*out.Stride+x*ch:y*out.Stride+(x+1)*ch], b.Pix[src:src+ch])
		}
	}
	return out
}

// Subsample returns a decimated copy keeping every factor-th pixel in both
// dimensions, starting at (0, 0). A factor of 1 or less returns a plain copy.
// This is point decimation, not a filtered resize: it exists to bound the
// cost of warping oversized captures, and corner coordinates must be divided
// by the same factor to stay consistent.
func (b *Buffer) Subsample(factor int) *Buffer {
	if factor <= 1 {
		return b.Clone()
	}
	w := (b.W-1)/factor + 1
	h := (b.H-1)/factor + 1
	out := New(w, h, b.Format)
	ch := b.Format.Channels()
	for y := 0; y < h; y++ {
		srcRow := y * factor * b.Stride
		dstRow := y * out.Stride
		for x := 0; x < w; x++ {
			src := srcRow + x*factor*ch
			copy(out.Pix[dstRow+x*ch:dstRow+(x+1)*ch], b.Pix[src:src+ch])
		}
	}
	return out
}

// Equals reports whether two buffers have identical size, format and pixel
// content.
func (b *Buffer) Equals(other *Buffer) bool {
	if b.W != other.W || b.H != other.H || b.Format != other.Format {
		return false
	}
	for y := 0; y < b.H; y++ {
		rowA := b.Pix[y*b.Stride : y*b.Stride+b.W*b.Format.Channels()]
		rowB := other.Pix[y*other.Stride : y*other.Stride+other.W*other.Format.Channels()]
		for i := range rowA {
			if rowA[i] != rowB[i] {
				return false
			}
		}
	}
	return true
}
