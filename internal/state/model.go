package state

import (
	"image/color"
	"math"
	"time"
)

// Point is a position in surface-local coordinates. One unit is one pixel of
// the raster backend; (0,0) is the top-left corner of the top-left pixel.
type Point struct{ X, Y float32 }

// Dist returns the Euclidean distance between p and q.
func (p Point) Dist(q Point) float32 {
	dx, dy := float64(q.X-p.X), float64(q.Y-p.Y)
	return float32(math.Hypot(dx, dy))
}

// Mid returns the midpoint of p and q.
func (p Point) Mid(q Point) Point {
	return Point{X: (p.X + q.X) / 2, Y: (p.Y + q.Y) / 2}
}

// Brush is the active drawing style.
type Brush struct {
	Color   color.NRGBA
	Width   float32
	Opacity float32 // 0..1
}

// Paint returns the brush color with the opacity folded into alpha.
func (b Brush) Paint() color.NRGBA {
	c := b.Color
	o := b.Opacity
	if o < 0 {
		o = 0
	} else if o > 1 {
		o = 1
	}
	c.A = uint8(float32(c.A)*o + 0.5)
	return c
}

// MarkKind says how a committed stroke is composited.
type MarkKind uint8

const (
	MarkPaint MarkKind = iota
	MarkErase
	MarkFill
)

func (k MarkKind) String() string {
	switch k {
	case MarkPaint:
		return "paint"
	case MarkErase:
		return "erase"
	case MarkFill:
		return "fill"
	}
	return "unknown"
}

// Stroke is one mark on a path surface. Fill marks carry a single point, the
// seed of the flood fill.
type Stroke struct {
	ID      string      `json:"id"`
	Kind    MarkKind    `json:"kind"`
	Points  []Point     `json:"points"`
	Color   color.NRGBA `json:"color"`
	Width   float32     `json:"width"`
	Opacity float32     `json:"opacity"`
	Time    time.Time   `json:"time"`
}

// Brush returns the style the stroke was drawn with.
func (s Stroke) Brush() Brush {
	return Brush{Color: s.Color, Width: s.Width, Opacity: s.Opacity}
}

// Last returns the most recently recorded point.
func (s Stroke) Last() Point {
	return s.Points[len(s.Points)-1]
}
