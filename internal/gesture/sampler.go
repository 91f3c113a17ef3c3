// Package gesture turns a pointer-move stream into a simplified point list.
package gesture

import "SketchBoard/internal/state"

// MinDistance is the distance a pointer must travel from the last sampled
// point before a new point is recorded.
const MinDistance float32 = 2

// Sampler holds at most one in-progress stroke.
type Sampler struct {
	// MinDistance overrides the package default when positive.
	MinDistance float32

	stroke *state.Stroke
}

func (s *Sampler) threshold() float32 {
	if s.MinDistance > 0 {
		return s.MinDistance
	}
	return MinDistance
}

// Start begins a new in-progress stroke at p, dropping any previous one.
func (s *Sampler) Start(kind state.MarkKind, p state.Point, b state.Brush) {
	st := state.NewStroke(kind, p, b)
	s.stroke = &st
}

// Move samples p. It reports the segment from the previous sampled point to p
// when p was recorded.
func (s *Sampler) Move(p state.Point) (from state.Point, ok bool) {
	if s.stroke == nil {
		return state.Point{}, false
	}
	last := s.stroke.Last()
	if last.Dist(p) <= s.threshold() {
		return state.Point{}, false
	}
	s.stroke.Points = append(s.stroke.Points, p)
	return last, true
}

// End finishes the in-progress stroke. Strokes with fewer than two points are
// discarded.
func (s *Sampler) End() (state.Stroke, bool) {
	st := s.stroke
	s.stroke = nil
	if st == nil || len(st.Points) < 2 {
		return state.Stroke{}, false
	}
	return *st, true
}

// Abandon drops the in-progress stroke without committing it.
func (s *Sampler) Abandon() { s.stroke = nil }

// Active reports whether a stroke is in progress.
func (s *Sampler) Active() bool { return s.stroke != nil }

// Current returns the in-progress stroke, or nil.
func (s *Sampler) Current() *state.Stroke { return s.stroke }
