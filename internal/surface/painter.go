package surface

import (
	"image"
	"image/color"
	"math"

	"golang.org/x/image/draw"
	"golang.org/x/image/vector"

	"SketchBoard/internal/state"
)

// painter turns stroke geometry into a coverage mask and composites it onto
// an NRGBA layer. Geometry is collected as closed contours first so that the
// rasterizer only has to cover their bounding box.
type painter struct {
	bounds   image.Rectangle
	z        *vector.Rasterizer
	mask     *image.Alpha
	aliased  bool
	contours [][]state.Point
}

func newPainter(b image.Rectangle, aliased bool) *painter {
	return &painter{
		bounds:  b,
		z:       vector.NewRasterizer(b.Dx(), b.Dy()),
		mask:    image.NewAlpha(b),
		aliased: aliased,
	}
}

// limit clamps vertices far outside the surface so that rasterization cost
// stays bounded. Only circles with huge radii are affected; segments are
// clipped exactly before they get here.
func (p *painter) limit(pt state.Point) state.Point {
	ext := float32(4 * max(p.bounds.Dx(), p.bounds.Dy()))
	lo := state.Point{X: float32(p.bounds.Min.X) - ext, Y: float32(p.bounds.Min.Y) - ext}
	hi := state.Point{X: float32(p.bounds.Max.X) + ext, Y: float32(p.bounds.Max.Y) + ext}
	return state.Point{X: fmin(fmax(pt.X, lo.X), hi.X), Y: fmin(fmax(pt.Y, lo.Y), hi.Y)}
}

func (p *painter) contour(pts []state.Point) {
	for i, pt := range pts {
		pts[i] = p.limit(pt)
	}
	p.contours = append(p.contours, pts)
}

// clip trims the segment a→b to the surface grown by pad on every side
// (Liang–Barsky). Pixels within pad of the original segment are within pad of
// the trimmed one.
func (p *painter) clip(a, b state.Point, pad float32) (state.Point, state.Point, bool) {
	lo := state.Point{X: float32(p.bounds.Min.X) - pad, Y: float32(p.bounds.Min.Y) - pad}
	hi := state.Point{X: float32(p.bounds.Max.X) + pad, Y: float32(p.bounds.Max.Y) + pad}
	dx, dy := b.X-a.X, b.Y-a.Y
	t0, t1 := float32(0), float32(1)
	for _, e := range [4][2]float32{
		{-dx, a.X - lo.X},
		{dx, hi.X - a.X},
		{-dy, a.Y - lo.Y},
		{dy, hi.Y - a.Y},
	} {
		pe, qe := e[0], e[1]
		if pe == 0 {
			if qe < 0 {
				return a, b, false
			}
			continue
		}
		t := qe / pe
		if pe < 0 {
			if t > t1 {
				return a, b, false
			}
			t0 = fmax(t0, t)
		} else {
			if t < t0 {
				return a, b, false
			}
			t1 = fmin(t1, t)
		}
	}
	return state.Point{X: a.X + t0*dx, Y: a.Y + t0*dy},
		state.Point{X: a.X + t1*dx, Y: a.Y + t1*dy}, true
}

// arcSteps picks a polygon resolution for an arc of the given radius and
// sweep.
func arcSteps(r float32, sweep float64) int {
	n := int(math.Ceil(float64(r) * sweep / 2))
	return min(max(n, 4), 64)
}

// arc appends points on the circle (c, r) from angle a0 to a1, inclusive.
func arc(dst []state.Point, c state.Point, r float32, a0, a1 float64) []state.Point {
	n := arcSteps(r, math.Abs(a1-a0))
	for i := 0; i <= n; i++ {
		a := a0 + (a1-a0)*float64(i)/float64(n)
		dst = append(dst, state.Point{
			X: c.X + r*float32(math.Cos(a)),
			Y: c.Y + r*float32(math.Sin(a)),
		})
	}
	return dst
}

// disc adds a filled circle traced clockwise on screen.
func (p *painter) disc(c state.Point, r float32) {
	p.contour(arc(nil, c, r, 0, -2*math.Pi))
}

// capsule adds the round-capped segment a→b of the given width. All capsules
// and discs share one orientation so overlapping pieces add up.
func (p *painter) capsule(a, b state.Point, width float32) {
	r := width / 2
	if r <= 0 {
		r = 0.5
	}
	a, b, ok := p.clip(a, b, r+1)
	if !ok {
		return
	}
	l := a.Dist(b)
	if l < 1e-3 {
		p.disc(a, r)
		return
	}
	ux, uy := (b.X-a.X)/l, (b.Y-a.Y)/l
	an := math.Atan2(float64(ux), float64(-uy))

	pts := make([]state.Point, 0, 2*arcSteps(r, math.Pi)+4)
	pts = append(pts, state.Point{X: a.X - uy*r, Y: a.Y + ux*r})
	pts = arc(pts, b, r, an, an-math.Pi)
	pts = arc(pts, a, r, an-math.Pi, an-2*math.Pi)
	p.contour(pts)
}

// ring adds a circular outline: an outer circle and an inner circle of
// opposite orientation.
func (p *painter) ring(c state.Point, radius, width float32) {
	outer := radius + width/2
	inner := radius - width/2
	if outer <= 0 {
		outer = 0.5
	}
	p.disc(c, outer)
	if inner > 0 {
		p.contour(arc(nil, c, inner, 0, 2*math.Pi))
	}
}

func (p *painter) polyline(pts []state.Point, width float32) {
	if len(pts) == 1 {
		p.capsule(pts[0], pts[0], width)
		return
	}
	for i := 1; i < len(pts); i++ {
		p.capsule(pts[i-1], pts[i], width)
	}
}

func (p *painter) shape(kind Shape, anchor, cursor state.Point, width float32) {
	if kind == ShapeCircle {
		c, r := Circle(anchor, cursor)
		p.ring(c, r, width)
		return
	}
	p.polyline(Outline(kind, anchor, cursor), width)
}

// rasterize writes the raw coverage of the pending contours into the mask and
// returns the rectangle it touched. The contours are consumed.
func (p *painter) rasterize() (image.Rectangle, bool) {
	defer func() { p.contours = p.contours[:0] }()
	if len(p.contours) == 0 {
		return image.Rectangle{}, false
	}

	lo := p.contours[0][0]
	hi := lo
	for _, c := range p.contours {
		for _, pt := range c {
			lo = state.Point{X: fmin(lo.X, pt.X), Y: fmin(lo.Y, pt.Y)}
			hi = state.Point{X: fmax(hi.X, pt.X), Y: fmax(hi.Y, pt.Y)}
		}
	}
	r := image.Rect(
		int(math.Floor(float64(lo.X))), int(math.Floor(float64(lo.Y))),
		int(math.Ceil(float64(hi.X)))+1, int(math.Ceil(float64(hi.Y)))+1,
	).Intersect(p.bounds)
	if r.Empty() {
		return r, false
	}

	p.z.Reset(r.Dx(), r.Dy())
	p.z.DrawOp = draw.Src
	ox, oy := float32(r.Min.X), float32(r.Min.Y)
	for _, c := range p.contours {
		p.z.MoveTo(c[0].X-ox, c[0].Y-oy)
		for _, pt := range c[1:] {
			p.z.LineTo(pt.X-ox, pt.Y-oy)
		}
		p.z.ClosePath()
	}
	p.z.Draw(p.mask, r, image.Opaque, image.Point{})
	return r, true
}

// threshold snaps the mask inside r to fully on or off when aliased.
func (p *painter) threshold(r image.Rectangle) {
	if !p.aliased {
		return
	}
	for y := r.Min.Y; y < r.Max.Y; y++ {
		row := p.mask.Pix[p.mask.PixOffset(r.Min.X, y):p.mask.PixOffset(r.Max.X, y)]
		for i, a := range row {
			if a >= 0x80 {
				row[i] = 0xff
			} else {
				row[i] = 0
			}
		}
	}
}

// cover rasterizes the pending contours into the final mask.
func (p *painter) cover() (image.Rectangle, bool) {
	r, ok := p.rasterize()
	if ok {
		p.threshold(r)
	}
	return r, ok
}

// accumulate adds the raw coverage of the pending contours to acc, saturating
// at full coverage. Accumulating the pieces of a stroke one at a time gives
// the same coverage as rasterizing them in one pass.
func (p *painter) accumulate(acc *image.Alpha) (image.Rectangle, bool) {
	r, ok := p.rasterize()
	if !ok {
		return r, false
	}
	for y := r.Min.Y; y < r.Max.Y; y++ {
		i, j := acc.PixOffset(r.Min.X, y), p.mask.PixOffset(r.Min.X, y)
		for x := 0; x < r.Dx(); x++ {
			acc.Pix[i+x] = uint8(min(uint16(acc.Pix[i+x])+uint16(p.mask.Pix[j+x]), 0xff))
		}
	}
	return r, true
}

// load makes acc, restricted to r, the final mask.
func (p *painter) load(acc *image.Alpha, r image.Rectangle) {
	for y := r.Min.Y; y < r.Max.Y; y++ {
		copy(p.mask.Pix[p.mask.PixOffset(r.Min.X, y):p.mask.PixOffset(r.Max.X, y)],
			acc.Pix[acc.PixOffset(r.Min.X, y):acc.PixOffset(r.Max.X, y)])
	}
	p.threshold(r)
}

// over composites c through the pending coverage onto dst.
func (p *painter) over(dst *image.NRGBA, c color.NRGBA) {
	if r, ok := p.cover(); ok {
		p.paint(dst, r, c)
	}
}

// out removes the pending coverage from dst.
func (p *painter) out(dst *image.NRGBA) {
	if r, ok := p.cover(); ok {
		p.erase(dst, r)
	}
}

// paint composites c through the mask inside r onto dst.
func (p *painter) paint(dst *image.NRGBA, r image.Rectangle, c color.NRGBA) {
	if c.A == 0 {
		return
	}
	draw.DrawMask(dst, r, image.NewUniform(c), image.Point{}, p.mask, r.Min, draw.Over)
}

// erase applies the mask inside r to dst as destination-out. Pixels whose
// alpha reaches zero become fully transparent.
func (p *painter) erase(dst *image.NRGBA, r image.Rectangle) {
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			m := p.mask.Pix[p.mask.PixOffset(x, y)]
			if m == 0 {
				continue
			}
			i := dst.PixOffset(x, y)
			a := uint32(dst.Pix[i+3]) * uint32(0xff-m) / 0xff
			if a == 0 {
				dst.Pix[i+0], dst.Pix[i+1], dst.Pix[i+2], dst.Pix[i+3] = 0, 0, 0, 0
				continue
			}
			dst.Pix[i+3] = uint8(a)
		}
	}
}

// mark renders a committed path-surface mark onto layer.
func (p *painter) mark(layer *image.NRGBA, s state.Stroke) {
	switch s.Kind {
	case state.MarkPaint:
		p.polyline(s.Points, s.Width)
		p.over(layer, s.Brush().Paint())
	case state.MarkErase:
		p.polyline(s.Points, s.Width)
		p.out(layer)
	case state.MarkFill:
		x, y := pixel(s.Points[0])
		FloodFill(layer, x, y, s.Color)
	}
}

// pixel maps a surface point to the pixel that contains it.
func pixel(pt state.Point) (x, y int) {
	return int(math.Floor(float64(pt.X))), int(math.Floor(float64(pt.Y)))
}
