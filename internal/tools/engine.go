package tools

import (
	"errors"
	"image"
	"image/color"
	"log/slog"

	"SketchBoard/internal/gesture"
	"SketchBoard/internal/history"
	"SketchBoard/internal/state"
	"SketchBoard/internal/surface"
)

// ErrNotRecorded is returned when the surface does not keep its marks.
var ErrNotRecorded = errors.New("surface does not record marks")

// DefaultBrush is the brush an engine starts with when none is configured.
var DefaultBrush = state.Brush{Color: color.NRGBA{A: 255}, Width: 3, Opacity: 1}

// Event is one pointer event delivered by the host UI.
type Event struct {
	Phase Phase
	Pos   state.Point
}

// Options configures an Engine.
type Options struct {
	// HistoryDepth bounds the undo stack; zero keeps every snapshot.
	HistoryDepth int
	Brush        state.Brush
	// Aliased matches the preview overlay to an aliased surface.
	Aliased bool
	Logger  *slog.Logger
}

// Engine owns a surface and its history and turns pointer gestures into
// surface operations. Events must be delivered serially from one goroutine.
type Engine struct {
	surface surface.Surface
	history *history.Manager
	overlay *surface.Overlay
	log     *slog.Logger

	tool  Tool
	brush state.Brush
	panel Panel

	g struct {
		active  bool
		tool    Tool
		anchor  state.Point
		cursor  state.Point
		sampler gesture.Sampler
	}
}

// New returns an engine drawing on s with no tool selected.
func New(s surface.Surface, opts Options) *Engine {
	b := opts.Brush
	if b.Width <= 0 {
		b = DefaultBrush
	}
	l := opts.Logger
	if l == nil {
		l = slog.New(slog.DiscardHandler)
	}
	return &Engine{
		surface: s,
		history: history.New(s, opts.HistoryDepth),
		overlay: surface.NewOverlay(s.Bounds(), surface.Options{Aliased: opts.Aliased}),
		log:     l,
		brush:   b,
	}
}

func (e *Engine) Surface() surface.Surface { return e.surface }
func (e *Engine) Tool() Tool               { return e.tool }
func (e *Engine) Brush() state.Brush       { return e.brush }
func (e *Engine) Panel() Panel             { return e.panel }

// Drawing reports whether a gesture is in progress.
func (e *Engine) Drawing() bool { return e.g.active }

// CanUndo reports whether Undo would change anything.
func (e *Engine) CanUndo() bool { return e.g.active || e.history.Len() > 0 }

// Select activates t. Selecting the active tool deselects it. A gesture in
// progress is abandoned without being committed.
func (e *Engine) Select(t Tool) Tool {
	if t >= numTools {
		return e.tool
	}
	e.abandon()
	if t == e.tool {
		t = None
	}
	e.log.Debug("tool selected", "from", e.tool, "to", t)
	e.tool = t
	return t
}

// TogglePanel opens p, closing the other panel, or closes p if it is open.
func (e *Engine) TogglePanel(p Panel) Panel {
	if e.panel == p {
		e.panel = NoPanel
	} else {
		e.panel = p
	}
	return e.panel
}

// SetColor changes the brush color and closes the color panel.
func (e *Engine) SetColor(c color.NRGBA) {
	e.brush.Color = c
	if e.panel == ColorPanel {
		e.panel = NoPanel
	}
}

// SetWidth changes the brush width and closes the width panel. Non-positive
// widths are ignored.
func (e *Engine) SetWidth(w float32) {
	if w > 0 {
		e.brush.Width = w
	}
	if e.panel == WidthPanel {
		e.panel = NoPanel
	}
}

// SetOpacity changes the brush opacity, clamped to 0..1.
func (e *Engine) SetOpacity(o float32) {
	e.brush.Opacity = min(max(o, 0), 1)
}

// Handle dispatches one pointer event.
func (e *Engine) Handle(ev Event) {
	switch ev.Phase {
	case Start:
		e.PointerDown(ev.Pos)
	case Move:
		e.PointerMove(ev.Pos)
	case End:
		e.PointerUp(ev.Pos)
	}
}

// PointerDown starts a gesture with the active tool. A gesture still in
// progress is finished at its last position first.
func (e *Engine) PointerDown(p state.Point) {
	if e.g.active {
		e.PointerUp(e.g.cursor)
	}
	if e.tool == None {
		return
	}
	e.history.BeginOperation()
	e.g.active = true
	e.g.tool = e.tool
	e.g.anchor, e.g.cursor = p, p
	handlers[e.tool].start(e, p)
}

func (e *Engine) PointerMove(p state.Point) {
	if !e.g.active {
		return
	}
	e.g.cursor = p
	handlers[e.g.tool].move(e, p)
}

func (e *Engine) PointerUp(p state.Point) {
	if !e.g.active {
		return
	}
	e.g.cursor = p
	handlers[e.g.tool].end(e, p)
	e.g.active = false
}

// abandon drops the gesture in progress and restores the surface to the
// snapshot taken when it started.
func (e *Engine) abandon() {
	if !e.g.active {
		return
	}
	e.g.active = false
	e.g.sampler.Abandon()
	e.surface.Abandon()
	e.history.Rollback()
	e.log.Debug("gesture abandoned", "tool", e.g.tool)
}

// Undo reverts the last committed operation, or the gesture in progress. It
// reports false when there was nothing to undo.
func (e *Engine) Undo() bool {
	if e.g.active {
		e.abandon()
		return true
	}
	ok := e.history.Undo()
	e.log.Debug("undo", "applied", ok, "remaining", e.history.Len())
	return ok
}

// Clear wipes the surface and the undo history.
func (e *Engine) Clear() {
	e.abandon()
	e.surface.Clear()
	e.history.Reset()
	e.log.Info("surface cleared")
}

// Load replaces the surface content with img, for example an enhanced
// rendition of the export. It can be undone.
func (e *Engine) Load(img image.Image) {
	e.abandon()
	e.history.BeginOperation()
	e.surface.Load(img)
	e.log.Info("image loaded", "size", img.Bounds().Size())
}

// Marks returns the committed marks of a recording surface.
func (e *Engine) Marks() ([]state.Stroke, error) {
	rec, ok := e.surface.(surface.Recorder)
	if !ok {
		return nil, ErrNotRecorded
	}
	return rec.Marks(), nil
}

// LoadMarks replaces the surface content with marks, for example a saved
// drawing. It can be undone.
func (e *Engine) LoadMarks(marks []state.Stroke) {
	e.abandon()
	e.history.BeginOperation()
	e.surface.SetMarks(marks)
	e.log.Info("marks loaded", "count", len(marks))
}

// Export flattens the committed content for hand-off.
func (e *Engine) Export() *image.NRGBA {
	return e.surface.ExportRaster()
}

// Render returns the frame to display, including the preview of a shape
// being dragged out.
func (e *Engine) Render() *image.NRGBA {
	frame := e.surface.Render()
	if !e.g.active {
		return frame
	}
	if kind, ok := e.g.tool.Shape(); ok {
		e.overlay.Shape(frame, kind, e.g.anchor, e.g.cursor, e.brush)
	}
	return frame
}
