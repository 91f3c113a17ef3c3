// Package tools is the tool state machine: it tracks the active tool and
// brush and routes pointer gestures to the tool's handler.
package tools

import "SketchBoard/internal/surface"

// Tool is the active drawing tool. Exactly one is active at a time; None
// ignores pointer input.
type Tool uint8

const (
	None Tool = iota
	Freehand
	Line
	Rectangle
	Triangle
	Circle
	Bucket
	Eraser

	numTools
)

var toolNames = [numTools]string{
	None:      "none",
	Freehand:  "freehand",
	Line:      "line",
	Rectangle: "rectangle",
	Triangle:  "triangle",
	Circle:    "circle",
	Bucket:    "bucket",
	Eraser:    "eraser",
}

func (t Tool) String() string {
	if t < numTools {
		return toolNames[t]
	}
	return "unknown"
}

// Tools lists every selectable tool except None, in toolbar order.
func Tools() []Tool {
	return []Tool{Freehand, Line, Rectangle, Triangle, Circle, Bucket, Eraser}
}

// ParseTool looks a tool up by name.
func ParseTool(name string) (Tool, bool) {
	for t, n := range toolNames {
		if n == name {
			return Tool(t), true
		}
	}
	return None, false
}

// Shape returns the primitive drawn by a shape tool.
func (t Tool) Shape() (surface.Shape, bool) {
	switch t {
	case Line:
		return surface.ShapeLine, true
	case Rectangle:
		return surface.ShapeRectangle, true
	case Triangle:
		return surface.ShapeTriangle, true
	case Circle:
		return surface.ShapeCircle, true
	}
	return 0, false
}

// Panel is an auxiliary toolbar panel. At most one is open.
type Panel uint8

const (
	NoPanel Panel = iota
	ColorPanel
	WidthPanel
)

// Phase is the stage of a pointer gesture.
type Phase uint8

const (
	Start Phase = iota
	Move
	End
)

func (p Phase) String() string {
	switch p {
	case Start:
		return "start"
	case Move:
		return "move"
	case End:
		return "end"
	}
	return "unknown"
}
