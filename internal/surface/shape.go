package surface

import (
	"math"

	"SketchBoard/internal/state"
)

// Shape is a geometric primitive spanned by an anchor and a cursor point.
type Shape uint8

const (
	ShapeLine Shape = iota
	ShapeRectangle
	ShapeTriangle
	ShapeCircle
)

func (s Shape) String() string {
	switch s {
	case ShapeLine:
		return "line"
	case ShapeRectangle:
		return "rectangle"
	case ShapeTriangle:
		return "triangle"
	case ShapeCircle:
		return "circle"
	}
	return "unknown"
}

// circleSides is the polygon resolution used when a circle is stored as a
// point list.
const circleSides = 64

// Corners returns the top-left and bottom-right corners of the box spanned by
// a and b.
func Corners(a, b state.Point) (lo, hi state.Point) {
	lo = state.Point{X: fmin(a.X, b.X), Y: fmin(a.Y, b.Y)}
	hi = state.Point{X: fmax(a.X, b.X), Y: fmax(a.Y, b.Y)}
	return lo, hi
}

// Circle returns the center and radius of the circle spanned by a and b.
func Circle(a, b state.Point) (center state.Point, radius float32) {
	return a.Mid(b), a.Dist(b) / 2
}

// Outline returns the shape as an open polyline. Closed shapes repeat their
// first vertex at the end.
func Outline(kind Shape, anchor, cursor state.Point) []state.Point {
	switch kind {
	case ShapeLine:
		return []state.Point{anchor, cursor}
	case ShapeRectangle:
		lo, hi := Corners(anchor, cursor)
		return []state.Point{
			lo,
			{X: hi.X, Y: lo.Y},
			hi,
			{X: lo.X, Y: hi.Y},
			lo,
		}
	case ShapeTriangle:
		lo, hi := Corners(anchor, cursor)
		left := state.Point{X: anchor.X, Y: hi.Y}
		apex := state.Point{X: (anchor.X + cursor.X) / 2, Y: lo.Y}
		right := state.Point{X: cursor.X, Y: hi.Y}
		return []state.Point{left, apex, right, left}
	case ShapeCircle:
		c, r := Circle(anchor, cursor)
		pts := make([]state.Point, circleSides+1)
		for i := range circleSides {
			a := 2 * math.Pi * float64(i) / circleSides
			pts[i] = state.Point{
				X: c.X + r*float32(math.Cos(a)),
				Y: c.Y + r*float32(math.Sin(a)),
			}
		}
		pts[circleSides] = pts[0]
		return pts
	}
	return nil
}

func fmin(a, b float32) float32 {
	if a < b {
		return a
	}
	return b
}

func fmax(a, b float32) float32 {
	if a > b {
		return a
	}
	return b
}
