package state

import (
	"fmt"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
)

var (
	sessionID = uuid.NewString()
	seq       uint64
)

// NewStroke builds a stroke starting at p with the given style. Each stroke
// gets an ID unique to this process: the session UUID plus a sequence number.
func NewStroke(kind MarkKind, p Point, b Brush) Stroke {
	n := atomic.AddUint64(&seq, 1)
	return Stroke{
		ID:      fmt.Sprintf("%s-%d", sessionID, n),
		Kind:    kind,
		Points:  []Point{p},
		Color:   b.Color,
		Width:   b.Width,
		Opacity: b.Opacity,
		Time:    time.Now(),
	}
}
