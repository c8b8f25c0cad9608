package docrect

import (
	"image"
	"runtime"

	"github.com/ericlevine/docrect/pixel"
	"github.com/ericlevine/docrect/transform"
)

// Options controls rectification. The zero value rectifies the image as-is,
// at full resolution, using all CPUs for the warp.
type Options struct {
	// Rotation is a clockwise rotation in degrees (0, 90, 180 or 270) baked
	// into the source before anything else happens, typically taken from EXIF
	// orientation. Corner coordinates are interpreted in the rotated image.
	Rotation int

	// MaxContentSize, when positive, subsamples the source so its longer side
	// shrinks below roughly this many pixels before warping. The subsample
	// factor is floor(longerSide / MaxContentSize), never less than 1, and
	// corner coordinates are scaled down to match. Zero disables the policy.
	MaxContentSize int

	// Parallelism is the number of goroutines used by the warp kernel.
	// Zero or negative means runtime.NumCPU().
	Parallelism int
}

// Rectify warps the quadrilateral region of img outlined by corners into an
// upright rectangle, undoing perspective skew. The output size is derived
// from the corners' pairwise distances (see Quad.TargetSize) and the result
// is a freshly allocated buffer owned by the caller; img is never mutated.
//
// Supported source layouts are NRGBA, RGBA and Gray; the output keeps the
// source's channel layout. On any error no partial result is returned.
func Rectify(img image.Image, corners Quad, opts *Options) (*pixel.Buffer, error) {
	var o Options
	if opts != nil {
		o = *opts
	}
	if o.Rotation < 0 || o.Rotation >= 360 || o.Rotation%90 != 0 {
		return nil, ErrBadRotation
	}

	buf, err := pixel.FromImage(img)
	if err != nil {
		return nil, err
	}
	if o.Rotation != 0 {
		buf = buf.Rotate(o.Rotation)
	}
	if o.MaxContentSize > 0 {
		longer := buf.W
		if buf.H > longer {
			longer = buf.H
		}
		if factor := longer / o.MaxContentSize; factor > 1 {
			buf = buf.Subsample(factor)
			corners = corners.Scale(1 / float64(factor))
		}
	}

	width, height := corners.TargetSize()
	if width <= 0 || height <= 0 {
		return nil, ErrInvalidGeometry
	}
	t, err := transform.RectToQuadrilateral(float64(width), float64(height),
		corners.TopLeft.X, corners.TopLeft.Y,
		corners.TopRight.X, corners.TopRight.Y,
		corners.BottomRight.X, corners.BottomRight.Y,
		corners.BottomLeft.X, corners.BottomLeft.Y)
	if err != nil {
		return nil, ErrDegenerateTransform
	}

	workers := o.Parallelism
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	return transform.Warp(buf, t, width, height, workers), nil
}
