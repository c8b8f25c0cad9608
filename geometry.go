// Package docrect rectifies photographed documents: given an image and four
// corner points outlining a document, it warps the quadrilateral region into
// an upright rectangle, undoing perspective skew.
package docrect

import "math"

// Point is a 2D coordinate in image space.
type Point struct {
	X, Y float64
}

// Distance returns the Euclidean distance between two points.
func Distance(a, b Point) float64 {
	return math.Sqrt((a.X-b.X)*(a.X-b.X) + (a.Y-b.Y)*(a.Y-b.Y))
}

// Quad holds the four corners of a document boundary in canonical order.
// Callers are responsible for supplying a simple, non-self-intersecting
// quadrilateral; no validation is performed here.
type Quad struct {
	TopLeft     Point
	TopRight    Point
	BottomRight Point
	BottomLeft  Point
}

// NewQuad builds a Quad from four corners in top-left, top-right,
// bottom-right, bottom-left order.
func NewQuad(tl, tr, br, bl Point) Quad {
	return Quad{TopLeft: tl, TopRight: tr, BottomRight: br, BottomLeft: bl}
}

// Scale returns the quad with every corner coordinate multiplied by f. It is
// used to map corners expressed in one coordinate space (say, the full-size
// capture) into another (a subsampled working buffer).
func (q Quad) Scale(f float64) Quad {
	return Quad{
		TopLeft:     Point{X: q.TopLeft.X * f, Y: q.TopLeft.Y * f},
		TopRight:    Point{X: q.TopRight.X * f, Y: q.TopRight.Y * f},
		BottomRight: Point{X: q.BottomRight.X * f, Y: q.BottomRight.Y * f},
		BottomLeft:  Point{X: q.BottomLeft.X * f, Y: q.BottomLeft.Y * f},
	}
}

// TargetSize computes the output rectangle dimensions for rectifying this
// quad. Each dimension is the smaller of the two opposing edge lengths, so a
// skewed capture is never upsampled past its tightest edge. Values are
// rounded half-up to whole pixels; a dimension of 0 means the quad is too
// degenerate to rectify.
func (q Quad) TargetSize() (width, height int) {
	w := math.Min(Distance(q.TopLeft, q.TopRight), Distance(q.BottomLeft, q.BottomRight))
	h := math.Min(Distance(q.TopLeft, q.BottomLeft), Distance(q.TopRight, q.BottomRight))
	return int(math.Round(w)), int(math.Round(h))
}
