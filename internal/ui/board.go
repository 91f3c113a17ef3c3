package ui

import (
	"image"
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/widget"

	"SketchBoard/internal/state"
	"SketchBoard/internal/tools"
)

// Board shows an engine's surface and feeds it pointer gestures. The surface
// is letterboxed into the widget at a uniform scale.
type Board struct {
	widget.BaseWidget
	engine *tools.Engine

	// OnChange runs after every gesture or external edit.
	OnChange func()

	last state.Point
	down bool
	// mouse is set once a desktop mouse event arrives. Without one, drags and
	// taps come from touch and start gestures themselves.
	mouse bool
}

var _ fyne.Widget = (*Board)(nil)
var _ fyne.Draggable = (*Board)(nil)
var _ fyne.Tappable = (*Board)(nil)
var _ desktop.Mouseable = (*Board)(nil)

func NewBoard(e *tools.Engine) *Board {
	b := &Board{engine: e}
	b.ExtendBaseWidget(b)
	return b
}

func (b *Board) Engine() *tools.Engine { return b.engine }

// toSurface maps a widget position to surface coordinates.
func toSurface(pos fyne.Position, size fyne.Size, surf image.Point) state.Point {
	scale, off := fit(size, surf)
	if scale == 0 {
		return state.Point{}
	}
	return state.Point{X: (pos.X - off.X) / scale, Y: (pos.Y - off.Y) / scale}
}

// fit returns the scale and offset that letterbox surf into size.
func fit(size fyne.Size, surf image.Point) (float32, fyne.Position) {
	if surf.X <= 0 || surf.Y <= 0 || size.Width <= 0 || size.Height <= 0 {
		return 0, fyne.Position{}
	}
	scale := min(size.Width/float32(surf.X), size.Height/float32(surf.Y))
	return scale, fyne.NewPos(
		(size.Width-float32(surf.X)*scale)/2,
		(size.Height-float32(surf.Y)*scale)/2,
	)
}

func (b *Board) point(pos fyne.Position) state.Point {
	return toSurface(pos, b.Size(), b.engine.Surface().Bounds().Size())
}

func (b *Board) MouseDown(e *desktop.MouseEvent) {
	if e.Button != desktop.MouseButtonPrimary {
		return
	}
	b.mouse = true
	b.press(e.Position)
}

func (b *Board) press(pos fyne.Position) {
	b.down = true
	b.last = b.point(pos)
	b.engine.PointerDown(b.last)
	b.changed()
}

// Dragged moves the gesture. On touch devices the first drag event also
// starts it, at the position the drag began.
func (b *Board) Dragged(e *fyne.DragEvent) {
	if !b.down {
		if b.mouse {
			return
		}
		b.press(fyne.NewPos(e.Position.X-e.Dragged.DX, e.Position.Y-e.Dragged.DY))
	}
	b.last = b.point(e.Position)
	b.engine.PointerMove(b.last)
	b.Refresh()
}

func (b *Board) MouseUp(e *desktop.MouseEvent) {
	if e.Button != desktop.MouseButtonPrimary {
		return
	}
	b.release(b.point(e.Position))
}

// Tapped handles a touch tap as a press and release in place. Mouse clicks
// have already been handled by MouseDown and MouseUp.
func (b *Board) Tapped(e *fyne.PointEvent) {
	if b.mouse || b.down {
		return
	}
	p := b.point(e.Position)
	b.engine.PointerDown(p)
	b.engine.PointerUp(p)
	b.changed()
}

// DragEnd finishes the gesture when the release lands outside the widget.
func (b *Board) DragEnd() { b.release(b.last) }

func (b *Board) release(p state.Point) {
	if !b.down {
		return
	}
	b.down = false
	b.engine.PointerUp(p)
	b.changed()
}

// changed refreshes the board and notifies OnChange.
func (b *Board) changed() {
	b.Refresh()
	if b.OnChange != nil {
		b.OnChange()
	}
}

func (b *Board) CreateRenderer() fyne.WidgetRenderer {
	r := &boardRenderer{
		board:      b,
		background: canvas.NewRectangle(color.NRGBA{R: 245, G: 246, B: 248, A: 255}),
		image:      canvas.NewImageFromImage(b.engine.Render()),
	}
	r.image.FillMode = canvas.ImageFillContain
	r.image.ScaleMode = canvas.ImageScalePixels
	return r
}

type boardRenderer struct {
	board      *Board
	background *canvas.Rectangle
	image      *canvas.Image
}

func (r *boardRenderer) Objects() []fyne.CanvasObject {
	return []fyne.CanvasObject{r.background, r.image}
}

func (r *boardRenderer) Refresh() {
	r.image.Image = r.board.engine.Render()
	r.image.Refresh()
}

func (r *boardRenderer) Layout(size fyne.Size) {
	r.background.Resize(size)
	r.image.Resize(size)
}

func (r *boardRenderer) MinSize() fyne.Size { return fyne.NewSize(300, 300) }

func (r *boardRenderer) Destroy() {}

func (b *Board) MouseIn(*desktop.MouseEvent)    {}
func (b *Board) MouseOut()                      {}
func (b *Board) MouseMoved(*desktop.MouseEvent) {}
