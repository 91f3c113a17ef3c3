// Package surface holds the drawing surface: the area that accumulates
// committed marks. Two backends implement Surface: Raster paints straight into
// a pixel buffer, Paths keeps an ordered list of marks and rasterizes them on
// export.
package surface

import (
	"fmt"
	"image"
	"image/color"

	"golang.org/x/image/draw"

	"SketchBoard/internal/state"
)

// Surface is the drawing target of the tool state machine. It is not safe
// for concurrent use.
type Surface interface {
	Bounds() image.Rectangle
	Background() color.NRGBA

	// StrokeSegment adds the round-capped segment from→to to the stroke in
	// progress.
	StrokeSegment(from, to state.Point, b state.Brush)
	// Erase removes coverage along from→to, leaving transparent pixels.
	Erase(from, to state.Point, width float32)
	// StrokeShape outlines a shape spanned by two corner points.
	StrokeShape(kind Shape, anchor, cursor state.Point, b state.Brush)
	// FloodFill recolors the 4-connected region around seed. It reports
	// whether any pixel changed.
	FloodFill(seed state.Point, c color.NRGBA) bool

	// Commit finalizes the stroke in progress, Abandon drops it.
	Commit()
	Abandon()

	// Clear resets the surface to its background.
	Clear()
	// Load replaces the content with img scaled to the surface.
	Load(img image.Image)
	// SetMarks replaces the content with marks replayed in order.
	SetMarks(marks []state.Stroke)

	Snapshot() Snapshot
	Restore(Snapshot)

	// Render returns the current frame, including any stroke in progress.
	Render() *image.NRGBA
	// ExportRaster flattens the committed content over the background.
	ExportRaster() *image.NRGBA
}

// Snapshot is an opaque copy of a surface's state.
type Snapshot interface {
	snapshot()
}

// Recorder is implemented by surfaces that keep their committed marks.
type Recorder interface {
	Marks() []state.Stroke
}

// Options configures a surface backend.
type Options struct {
	Background color.NRGBA
	// Aliased disables anti-aliasing: coverage is thresholded at 50%.
	Aliased bool
}

// Backend names a Surface implementation.
type Backend string

const (
	BackendRaster Backend = "raster"
	BackendPaths  Backend = "paths"
)

// New builds a w×h surface of the given backend.
func New(backend Backend, w, h int, opts Options) (Surface, error) {
	if w <= 0 || h <= 0 {
		return nil, fmt.Errorf("invalid surface size %dx%d", w, h)
	}
	switch backend {
	case BackendRaster:
		return NewRaster(w, h, opts), nil
	case BackendPaths:
		return NewPaths(w, h, opts), nil
	}
	return nil, fmt.Errorf("unknown surface backend %q", backend)
}

// flatten composites layer over a uniform background into a new image.
func flatten(layer *image.NRGBA, bg color.NRGBA) *image.NRGBA {
	out := image.NewNRGBA(layer.Rect)
	draw.Draw(out, out.Rect, image.NewUniform(bg), image.Point{}, draw.Src)
	draw.Draw(out, out.Rect, layer, layer.Rect.Min, draw.Over)
	return out
}

// scaleInto replaces dst with img scaled to dst's bounds.
func scaleInto(dst *image.NRGBA, img image.Image) {
	draw.Draw(dst, dst.Rect, image.Transparent, image.Point{}, draw.Src)
	if img.Bounds().Size() == dst.Rect.Size() {
		draw.Draw(dst, dst.Rect, img, img.Bounds().Min, draw.Src)
		return
	}
	draw.CatmullRom.Scale(dst, dst.Rect, img, img.Bounds(), draw.Src, nil)
}
