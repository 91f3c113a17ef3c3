package surface

import (
	"image"
	"image/color"

	"SketchBoard/internal/state"
)

// Raster is a Surface backed by a fixed-size pixel buffer. The buffer starts
// transparent and the background is applied on export.
//
// Segments of the stroke in progress accumulate in a coverage mask that is
// composited once, on Commit, so a translucent stroke has uniform opacity
// where its segments overlap. Render shows the pending stroke.
type Raster struct {
	buf *image.NRGBA
	bg  color.NRGBA
	p   *painter

	pending struct {
		active bool
		kind   state.MarkKind
		paint  color.NRGBA
		cov    *image.Alpha
		dirty  image.Rectangle
	}
}

var _ Surface = (*Raster)(nil)

// NewRaster returns a cleared w×h raster surface.
func NewRaster(w, h int, opts Options) *Raster {
	b := image.Rect(0, 0, w, h)
	r := &Raster{
		buf: image.NewNRGBA(b),
		bg:  opts.Background,
		p:   newPainter(b, opts.Aliased),
	}
	r.pending.cov = image.NewAlpha(b)
	return r
}

type rasterSnapshot struct{ pix []uint8 }

func (rasterSnapshot) snapshot() {}

func (r *Raster) Bounds() image.Rectangle  { return r.buf.Rect }
func (r *Raster) Background() color.NRGBA { return r.bg }

// Pixels exposes the committed buffer. Callers must not keep it across
// mutations.
func (r *Raster) Pixels() *image.NRGBA { return r.buf }

// extend adds the pending contours to the stroke in progress, first
// committing a stroke of another kind or paint.
func (r *Raster) extend(kind state.MarkKind, paint color.NRGBA) {
	pd := &r.pending
	if pd.active && (pd.kind != kind || pd.paint != paint) {
		r.Commit()
	}
	if !pd.active {
		pd.active, pd.kind, pd.paint = true, kind, paint
	}
	if d, ok := r.p.accumulate(pd.cov); ok {
		pd.dirty = pd.dirty.Union(d)
	}
}

// apply composites the stroke in progress onto dst.
func (r *Raster) apply(dst *image.NRGBA) {
	d := r.pending.dirty
	if d.Empty() {
		return
	}
	r.p.load(r.pending.cov, d)
	if r.pending.kind == state.MarkErase {
		r.p.erase(dst, d)
		return
	}
	r.p.paint(dst, d, r.pending.paint)
}

func (r *Raster) StrokeSegment(from, to state.Point, b state.Brush) {
	r.p.capsule(from, to, b.Width)
	r.extend(state.MarkPaint, b.Paint())
}

func (r *Raster) Erase(from, to state.Point, width float32) {
	r.p.capsule(from, to, width)
	r.extend(state.MarkErase, color.NRGBA{})
}

func (r *Raster) StrokeShape(kind Shape, anchor, cursor state.Point, b state.Brush) {
	r.Commit()
	r.p.shape(kind, anchor, cursor, b.Width)
	r.p.over(r.buf, b.Paint())
}

func (r *Raster) FloodFill(seed state.Point, c color.NRGBA) bool {
	r.Commit()
	x, y := pixel(seed)
	return FloodFill(r.buf, x, y, c)
}

// Commit composites the stroke in progress into the buffer.
func (r *Raster) Commit() {
	if r.pending.active {
		r.apply(r.buf)
	}
	r.Abandon()
}

// Abandon drops the stroke in progress.
func (r *Raster) Abandon() {
	pd := &r.pending
	d := pd.dirty
	for y := d.Min.Y; y < d.Max.Y; y++ {
		clear(pd.cov.Pix[pd.cov.PixOffset(d.Min.X, y):pd.cov.PixOffset(d.Max.X, y)])
	}
	pd.active = false
	pd.dirty = image.Rectangle{}
}

func (r *Raster) Clear() {
	r.Abandon()
	clear(r.buf.Pix)
}

func (r *Raster) Load(img image.Image) {
	r.Abandon()
	scaleInto(r.buf, img)
}

// SetMarks clears the buffer and paints marks into it. The marks themselves
// are not kept.
func (r *Raster) SetMarks(marks []state.Stroke) {
	r.Abandon()
	clear(r.buf.Pix)
	for _, st := range marks {
		r.p.mark(r.buf, st)
	}
}

func (r *Raster) Snapshot() Snapshot {
	pix := make([]uint8, len(r.buf.Pix))
	copy(pix, r.buf.Pix)
	return rasterSnapshot{pix: pix}
}

func (r *Raster) Restore(s Snapshot) {
	rs, ok := s.(rasterSnapshot)
	if !ok || len(rs.pix) != len(r.buf.Pix) {
		return
	}
	r.Abandon()
	copy(r.buf.Pix, rs.pix)
}

func (r *Raster) Render() *image.NRGBA {
	if r.pending.dirty.Empty() {
		return flatten(r.buf, r.bg)
	}
	frame := image.NewNRGBA(r.buf.Rect)
	copy(frame.Pix, r.buf.Pix)
	r.apply(frame)
	return flatten(frame, r.bg)
}

func (r *Raster) ExportRaster() *image.NRGBA { return flatten(r.buf, r.bg) }
