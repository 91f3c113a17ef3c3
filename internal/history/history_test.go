package history

import (
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"SketchBoard/internal/state"
	"SketchBoard/internal/surface"
)

func step(s *surface.Raster, h *Manager, y float32) {
	h.BeginOperation()
	s.StrokeSegment(state.Point{X: 0, Y: y}, state.Point{X: 30, Y: y}, state.Brush{
		Color:   color.NRGBA{A: 255},
		Width:   3,
		Opacity: 1,
	})
	s.Commit()
}

func pixels(s *surface.Raster) []uint8 {
	return append([]uint8(nil), s.Pixels().Pix...)
}

func TestUndoRoundTrip(t *testing.T) {
	s := surface.NewRaster(30, 30, surface.Options{})
	h := New(s, 0)
	initial := pixels(s)

	var states [][]uint8
	for i := 0; i < 6; i++ {
		states = append(states, pixels(s))
		step(s, h, float32(2+i*4))
	}
	require.Equal(t, 6, h.Len())

	for i := 5; i >= 0; i-- {
		require.True(t, h.Undo())
		assert.Equal(t, states[i], pixels(s), "after undo %d", 6-i)
	}
	assert.Equal(t, initial, pixels(s))

	assert.False(t, h.Undo(), "undo on empty history")
	assert.Equal(t, initial, pixels(s))
}

func TestBoundedHistoryEvictsOldest(t *testing.T) {
	s := surface.NewRaster(30, 30, surface.Options{})
	h := New(s, 2)

	step(s, h, 2)
	afterFirst := pixels(s)
	step(s, h, 10)
	step(s, h, 20)
	assert.Equal(t, 2, h.Len())

	require.True(t, h.Undo())
	require.True(t, h.Undo())
	assert.False(t, h.Undo())
	assert.Equal(t, afterFirst, pixels(s))
}

func TestResetAndRollback(t *testing.T) {
	s := surface.NewRaster(30, 30, surface.Options{})
	h := New(s, -1)

	step(s, h, 2)
	before := pixels(s)
	step(s, h, 10)
	require.True(t, h.Rollback())
	assert.Equal(t, before, pixels(s))

	h.Reset()
	assert.Zero(t, h.Len())
	assert.False(t, h.Undo())
}
