// Package history keeps the undo stack of a drawing surface.
package history

import "SketchBoard/internal/surface"

// Target is the state the history snapshots and restores.
type Target interface {
	Snapshot() surface.Snapshot
	Restore(surface.Snapshot)
}

// Manager is a LIFO stack of snapshots taken before each operation. There is
// no redo.
type Manager struct {
	target Target
	limit  int
	stack  []surface.Snapshot
}

// New returns a manager for target. A positive limit bounds the stack depth
// by evicting the oldest snapshot; zero keeps every snapshot.
func New(target Target, limit int) *Manager {
	if limit < 0 {
		limit = 0
	}
	return &Manager{target: target, limit: limit}
}

// BeginOperation snapshots the target. Call it once per gesture, before the
// first mutation.
func (m *Manager) BeginOperation() {
	m.stack = append(m.stack, m.target.Snapshot())
	if m.limit > 0 && len(m.stack) > m.limit {
		n := copy(m.stack, m.stack[len(m.stack)-m.limit:])
		clear(m.stack[n:])
		m.stack = m.stack[:n]
	}
}

// Undo restores the most recent snapshot. It reports false, and changes
// nothing, when the stack is empty.
func (m *Manager) Undo() bool {
	if len(m.stack) == 0 {
		return false
	}
	last := len(m.stack) - 1
	snap := m.stack[last]
	m.stack[last] = nil
	m.stack = m.stack[:last]
	m.target.Restore(snap)
	return true
}

// Rollback undoes an operation that was begun but never committed.
func (m *Manager) Rollback() bool { return m.Undo() }

// Reset drops every snapshot.
func (m *Manager) Reset() {
	clear(m.stack)
	m.stack = m.stack[:0]
}

// Len returns the number of operations that can be undone.
func (m *Manager) Len() int { return len(m.stack) }
