package surface

import (
	"image"
	"image/color"
	"slices"

	"SketchBoard/internal/gesture"
	"SketchBoard/internal/state"
)

// Paths is a Surface that stores committed marks as point lists and
// rasterizes them in paint order. It holds at most one stroke in progress.
type Paths struct {
	bounds image.Rectangle
	bg     color.NRGBA
	base   *image.NRGBA // loaded image under all marks; never mutated
	marks  []state.Stroke

	sampler gesture.Sampler
	p       *painter

	// layer caches base plus marks; nil when stale.
	layer *image.NRGBA
}

var (
	_ Surface  = (*Paths)(nil)
	_ Recorder = (*Paths)(nil)
)

// NewPaths returns an empty w×h path surface.
func NewPaths(w, h int, opts Options) *Paths {
	b := image.Rect(0, 0, w, h)
	return &Paths{
		bounds: b,
		bg:     opts.Background,
		p:      newPainter(b, opts.Aliased),
	}
}

type pathsSnapshot struct {
	base  *image.NRGBA
	marks []state.Stroke
}

func (pathsSnapshot) snapshot() {}

func (s *Paths) Bounds() image.Rectangle  { return s.bounds }
func (s *Paths) Background() color.NRGBA { return s.bg }

// Marks returns a copy of the committed marks in paint order.
func (s *Paths) Marks() []state.Stroke { return slices.Clone(s.marks) }

// InProgress returns the stroke being drawn, or nil.
func (s *Paths) InProgress() *state.Stroke { return s.sampler.Current() }

// extend records to on the stroke in progress, starting one at from when
// there is none of the right kind.
func (s *Paths) extend(kind state.MarkKind, from, to state.Point, b state.Brush) {
	if cur := s.sampler.Current(); cur == nil || cur.Kind != kind {
		s.sampler.Start(kind, from, b)
	}
	s.sampler.Move(to)
}

func (s *Paths) StrokeSegment(from, to state.Point, b state.Brush) {
	s.extend(state.MarkPaint, from, to, b)
}

func (s *Paths) Erase(from, to state.Point, width float32) {
	s.extend(state.MarkErase, from, to, state.Brush{Color: color.NRGBA{A: 0xff}, Width: width, Opacity: 1})
}

func (s *Paths) StrokeShape(kind Shape, anchor, cursor state.Point, b state.Brush) {
	st := state.NewStroke(state.MarkPaint, anchor, b)
	st.Points = Outline(kind, anchor, cursor)
	s.append(st)
}

// FloodFill records a fill mark when the seed region would change. The fill
// itself is replayed against the layer in paint order.
func (s *Paths) FloodFill(seed state.Point, c color.NRGBA) bool {
	x, y := pixel(seed)
	if !image.Pt(x, y).In(s.bounds) {
		return false
	}
	if s.cached().NRGBAAt(x, y) == c {
		return false
	}
	st := state.NewStroke(state.MarkFill, seed, state.Brush{Color: c, Opacity: 1})
	s.append(st)
	return true
}

func (s *Paths) Commit() {
	if st, ok := s.sampler.End(); ok {
		s.append(st)
	}
}

func (s *Paths) Abandon() { s.sampler.Abandon() }

func (s *Paths) Clear() {
	s.sampler.Abandon()
	s.base = nil
	s.marks = nil
	s.layer = nil
}

func (s *Paths) Load(img image.Image) {
	base := image.NewNRGBA(s.bounds)
	scaleInto(base, img)
	s.sampler.Abandon()
	s.base = base
	s.marks = nil
	s.layer = nil
}

func (s *Paths) SetMarks(marks []state.Stroke) {
	s.sampler.Abandon()
	s.base = nil
	s.marks = slices.Clone(marks)
	s.layer = nil
}

func (s *Paths) Snapshot() Snapshot {
	return pathsSnapshot{base: s.base, marks: slices.Clone(s.marks)}
}

func (s *Paths) Restore(snap Snapshot) {
	ps, ok := snap.(pathsSnapshot)
	if !ok {
		return
	}
	s.sampler.Abandon()
	s.base = ps.base
	s.marks = slices.Clone(ps.marks)
	s.layer = nil
}

func (s *Paths) Render() *image.NRGBA {
	layer := s.cached()
	cur := s.sampler.Current()
	if cur == nil || len(cur.Points) < 2 {
		return flatten(layer, s.bg)
	}
	frame := image.NewNRGBA(s.bounds)
	copy(frame.Pix, layer.Pix)
	s.p.mark(frame, *cur)
	return flatten(frame, s.bg)
}

func (s *Paths) ExportRaster() *image.NRGBA { return flatten(s.cached(), s.bg) }

func (s *Paths) append(st state.Stroke) {
	s.marks = append(s.marks, st)
	if s.layer != nil {
		s.p.mark(s.layer, st)
	}
}

// cached returns the committed layer, rebuilding it when stale.
func (s *Paths) cached() *image.NRGBA {
	if s.layer != nil {
		return s.layer
	}
	layer := image.NewNRGBA(s.bounds)
	if s.base != nil {
		copy(layer.Pix, s.base.Pix)
	}
	for _, st := range s.marks {
		s.p.mark(layer, st)
	}
	s.layer = layer
	return layer
}
