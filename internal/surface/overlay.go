package surface

import (
	"image"

	"SketchBoard/internal/state"
)

// Overlay draws transient geometry, such as a shape being dragged out, onto a
// rendered frame without touching any surface.
type Overlay struct {
	p *painter
}

// NewOverlay returns an overlay for frames with bounds b.
func NewOverlay(b image.Rectangle, opts Options) *Overlay {
	return &Overlay{p: newPainter(b, opts.Aliased)}
}

// Shape strokes kind onto frame.
func (o *Overlay) Shape(frame *image.NRGBA, kind Shape, anchor, cursor state.Point, b state.Brush) {
	o.p.shape(kind, anchor, cursor, b.Width)
	o.p.over(frame, b.Paint())
}
