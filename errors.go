package docrect

import (
	"errors"

	"github.com/ericlevine/docrect/pixel"
)

var (
	// ErrInvalidGeometry is returned when the corner quadrilateral collapses
	// to a zero-width or zero-height output rectangle.
	ErrInvalidGeometry = errors.New("invalid corner geometry")

	// ErrDegenerateTransform is returned when no perspective transform exists
	// for the given corners (collinear corners, or three corners coincident).
	ErrDegenerateTransform = errors.New("degenerate perspective transform")

	// ErrUnsupportedFormat is returned when the source image's pixel layout is
	// not one the rectifier can sample. It is the same value pixel.FromImage
	// reports, so there is a single error identity to match at either level.
	ErrUnsupportedFormat = pixel.ErrUnsupportedFormat

	// ErrBadRotation is returned when the requested rotation is not a
	// multiple of 90 degrees in [0, 360).
	ErrBadRotation = errors.New("rotation must be 0, 90, 180 or 270")
)
