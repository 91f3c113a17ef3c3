package export

import (
	"encoding/json"
	"fmt"
	"image"
	"io"

	"SketchBoard/internal/state"
)

// Drawing is the saved form of a path surface: its size and marks in paint
// order.
type Drawing struct {
	Width  int            `json:"width"`
	Height int            `json:"height"`
	Marks  []state.Stroke `json:"marks"`
}

func NewDrawing(bounds image.Rectangle, marks []state.Stroke) Drawing {
	return Drawing{Width: bounds.Dx(), Height: bounds.Dy(), Marks: marks}
}

// WriteDrawing encodes d as indented JSON.
func WriteDrawing(w io.Writer, d Drawing) error {
	data, err := json.MarshalIndent(d, "", "  ")
	if err != nil {
		return fmt.Errorf("encode drawing: %w", err)
	}
	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("write drawing: %w", err)
	}
	return nil
}

// ReadDrawing decodes and validates a drawing written by WriteDrawing.
func ReadDrawing(r io.Reader) (Drawing, error) {
	var d Drawing
	if err := json.NewDecoder(r).Decode(&d); err != nil {
		return Drawing{}, fmt.Errorf("decode drawing: %w", err)
	}
	for i, m := range d.Marks {
		if err := validMark(m); err != nil {
			return Drawing{}, fmt.Errorf("decode drawing: mark %d: %w", i, err)
		}
	}
	return d, nil
}

func validMark(m state.Stroke) error {
	switch m.Kind {
	case state.MarkPaint, state.MarkErase:
		if len(m.Points) == 0 {
			return fmt.Errorf("%s mark has no points", m.Kind)
		}
		if m.Width < 0 {
			return fmt.Errorf("%s mark has width %v", m.Kind, m.Width)
		}
	case state.MarkFill:
		if len(m.Points) != 1 {
			return fmt.Errorf("fill mark has %d points", len(m.Points))
		}
	default:
		return fmt.Errorf("unknown mark kind %d", m.Kind)
	}
	return nil
}
