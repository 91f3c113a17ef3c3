package tools

import (
	"SketchBoard/internal/state"
	"SketchBoard/internal/surface"
)

// handler implements one tool's response to a gesture. start runs after the
// history snapshot; move and end only run while the gesture is active.
type handler interface {
	start(e *Engine, p state.Point)
	move(e *Engine, p state.Point)
	end(e *Engine, p state.Point)
}

var handlers = [numTools]handler{
	None:      idle{},
	Freehand:  stroker{kind: state.MarkPaint},
	Line:      shaper{kind: surface.ShapeLine},
	Rectangle: shaper{kind: surface.ShapeRectangle},
	Triangle:  shaper{kind: surface.ShapeTriangle},
	Circle:    shaper{kind: surface.ShapeCircle},
	Bucket:    filler{},
	Eraser:    stroker{kind: state.MarkErase},
}

type idle struct{}

func (idle) start(*Engine, state.Point) {}
func (idle) move(*Engine, state.Point)  {}
func (idle) end(*Engine, state.Point)   {}

// stroker draws freehand paint or erase strokes, rasterizing each sampled
// segment as soon as it is accepted.
type stroker struct{ kind state.MarkKind }

func (h stroker) start(e *Engine, p state.Point) {
	e.g.sampler.Start(h.kind, p, e.brush)
}

func (h stroker) move(e *Engine, p state.Point) {
	from, ok := e.g.sampler.Move(p)
	if !ok {
		return
	}
	if h.kind == state.MarkErase {
		e.surface.Erase(from, p, e.brush.Width)
		return
	}
	e.surface.StrokeSegment(from, p, e.brush)
}

func (h stroker) end(e *Engine, p state.Point) {
	h.move(e, p)
	st, ok := e.g.sampler.End()
	e.surface.Commit()
	if ok {
		e.log.Debug("stroke committed", "kind", st.Kind, "points", len(st.Points))
	}
}

// shaper commits a primitive spanned by the gesture's anchor and release
// point. The drag itself only updates the preview.
type shaper struct{ kind surface.Shape }

func (shaper) start(*Engine, state.Point) {}
func (shaper) move(*Engine, state.Point)  {}

func (h shaper) end(e *Engine, p state.Point) {
	e.surface.StrokeShape(h.kind, e.g.anchor, p, e.brush)
	e.log.Debug("shape committed", "shape", h.kind, "anchor", e.g.anchor, "cursor", p)
}

// filler flood-fills on press; the gesture ends immediately.
type filler struct{}

func (filler) start(e *Engine, p state.Point) {
	changed := e.surface.FloodFill(p, e.brush.Paint())
	e.g.active = false
	e.log.Debug("flood fill", "seed", p, "changed", changed)
}

func (filler) move(*Engine, state.Point) {}
func (filler) end(*Engine, state.Point)  {}
