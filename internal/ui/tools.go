package ui

import (
	"fmt"
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"SketchBoard/internal/state"
	"SketchBoard/internal/tools"
)

type colorSwatch struct {
	widget.BaseWidget
	Color    color.NRGBA
	OnTapped func(color.NRGBA)
}

func newColorSwatch(c color.NRGBA, tapped func(color.NRGBA)) *colorSwatch {
	s := &colorSwatch{Color: c, OnTapped: tapped}
	s.ExtendBaseWidget(s)
	return s
}

func (s *colorSwatch) CreateRenderer() fyne.WidgetRenderer {
	rect := canvas.NewRectangle(s.Color)
	rect.SetMinSize(fyne.NewSize(32, 32))

	border := canvas.NewRectangle(color.Transparent)
	border.StrokeColor = color.Gray{Y: 150}
	border.StrokeWidth = 1

	return widget.NewSimpleRenderer(container.NewStack(rect, border))
}

func (s *colorSwatch) Tapped(_ *fyne.PointEvent) {
	if s.OnTapped != nil {
		s.OnTapped(s.Color)
	}
}

func toolIcon(t tools.Tool) fyne.Resource {
	switch t {
	case tools.Freehand:
		return theme.DocumentCreateIcon()
	case tools.Line:
		return theme.ContentRemoveIcon()
	case tools.Rectangle:
		return theme.CheckButtonIcon()
	case tools.Triangle:
		return theme.MoveUpIcon()
	case tools.Circle:
		return theme.RadioButtonIcon()
	case tools.Bucket:
		return theme.ColorPaletteIcon()
	case tools.Eraser:
		return theme.DeleteIcon()
	}
	return nil
}

// toolbar mirrors the engine's tool and panel state. Only one tool button is
// highlighted and at most one panel is visible.
type toolbar struct {
	board   *Board
	buttons map[tools.Tool]*widget.Button

	colors *fyne.Container
	widths *fyne.Container
	status *widget.Label

	content fyne.CanvasObject
}

func newToolbar(board *Board, actions *widget.Toolbar) *toolbar {
	tb := &toolbar{
		board:   board,
		buttons: make(map[tools.Tool]*widget.Button),
		status:  widget.NewLabel(""),
	}
	e := board.Engine()

	toolBox := container.NewHBox()
	for _, t := range tools.Tools() {
		btn := widget.NewButtonWithIcon("", toolIcon(t), func() {
			e.Select(t)
			tb.refresh()
		})
		tb.buttons[t] = btn
		toolBox.Add(btn)
	}

	swatches := container.NewHBox()
	for _, c := range state.Palette {
		swatches.Add(newColorSwatch(c, func(c color.NRGBA) {
			e.SetColor(c)
			tb.refresh()
		}))
	}
	tb.colors = swatches

	width := widget.NewSlider(1, 50)
	width.SetValue(float64(e.Brush().Width))
	width.OnChangeEnded = func(v float64) {
		e.SetWidth(float32(v))
		tb.refresh()
	}
	opacity := widget.NewSlider(0.05, 1)
	opacity.Step = 0.05
	opacity.SetValue(float64(e.Brush().Opacity))
	opacity.OnChanged = func(v float64) {
		e.SetOpacity(float32(v))
		tb.updateStatus()
	}
	sized := layout.NewGridWrapLayout(fyne.NewSize(150, 35))
	tb.widths = container.NewHBox(
		widget.NewLabel("Size:"), container.New(sized, width),
		widget.NewLabel("Opacity:"), container.New(sized, opacity),
	)

	panels := container.NewHBox(
		widget.NewButtonWithIcon("", theme.ColorChromaticIcon(), func() {
			e.TogglePanel(tools.ColorPanel)
			tb.refresh()
		}),
		widget.NewButton("Size", func() {
			e.TogglePanel(tools.WidthPanel)
			tb.refresh()
		}),
	)

	tb.content = container.NewVBox(
		container.NewHBox(
			widget.NewLabel("Tool:"),
			toolBox,
			widget.NewSeparator(),
			panels,
			widget.NewSeparator(),
			actions,
			layout.NewSpacer(),
			tb.status,
		),
		tb.colors,
		tb.widths,
	)
	tb.refresh()
	return tb
}

// refresh syncs button highlights and panel visibility with the engine.
func (tb *toolbar) refresh() {
	e := tb.board.Engine()
	for t, btn := range tb.buttons {
		if t == e.Tool() {
			btn.Importance = widget.HighImportance
		} else {
			btn.Importance = widget.MediumImportance
		}
		btn.Refresh()
	}
	show(tb.colors, e.Panel() == tools.ColorPanel)
	show(tb.widths, e.Panel() == tools.WidthPanel)
	tb.updateStatus()
}

func (tb *toolbar) updateStatus() {
	e := tb.board.Engine()
	b := e.Brush()
	tb.status.SetText(fmt.Sprintf("%s  %s  %.0fpx  %.0f%%", e.Tool(), state.Hex(b.Color), b.Width, b.Opacity*100))
}

func show(o fyne.CanvasObject, visible bool) {
	if visible {
		o.Show()
	} else {
		o.Hide()
	}
}
