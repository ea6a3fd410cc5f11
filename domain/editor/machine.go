package editor

import (
	"log/slog"
	"math"

	"github.com/Ahmed-Fekry07/YOLO-Annotator/domain/annotation"
)

// HandleHitRadius is the scene-space half-width around a corner handle
// anchor within which a press grabs that handle instead of the box body.
const HandleHitRadius = 5.0

// Machine turns raw pointer primitives into document gestures. It is
// synchronous: every event runs to completion on the caller's thread, and
// exactly one of Drawing or Editing is in progress at a time.
type Machine struct {
	doc    Document
	logger *slog.Logger

	state          State
	drawingEnabled bool

	drag      dragKind
	handle    annotation.Handle
	pressPos  annotation.Point
	listeners []StateListener
}

// NewMachine constructs an idle machine over doc. Drawing starts enabled.
func NewMachine(doc Document, logger *slog.Logger) *Machine {
	return &Machine{doc: doc, logger: logger, state: StateIdle, drawingEnabled: true}
}

// Current returns the machine's state.
func (m *Machine) Current() State { return m.state }

// AddListener registers a transition callback.
func (m *Machine) AddListener(l StateListener) {
	m.listeners = append(m.listeners, l)
}

// SetDrawingEnabled toggles whether pointer presses drive gestures at
// all. Disabling resolves any gesture in flight and leaves the canvas
// inert until re-enabled.
func (m *Machine) SetDrawingEnabled(enabled bool) {
	if !enabled && m.state != StateIdle {
		m.Abort()
	}
	m.drawingEnabled = enabled
}

// DrawingEnabled reports the draw toggle.
func (m *Machine) DrawingEnabled() bool { return m.drawingEnabled }

// Press handles pointer-down. Only the left button drives gestures, and
// only while drawing is enabled.
func (m *Machine) Press(ev PointerEvent) {
	if ev.Button != ButtonLeft || !m.drawingEnabled {
		return
	}
	m.pressPos = ev.Pos
	switch m.state {
	case StateIdle:
		m.pressIdle(ev.Pos)
	case StateEditing:
		m.pressEditing(ev.Pos)
	case StateDrawing:
		// Button is already down while drawing; a second press is a
		// host artifact and is ignored.
	}
}

func (m *Machine) pressIdle(p annotation.Point) {
	if i, ok := m.hitBox(p); ok {
		if err := m.doc.BeginEdit(i); err != nil {
			if m.logger != nil {
				m.logger.Error("begin edit failed", "index", i, "error", err)
			}
			return
		}
		m.doc.BeginDrag()
		m.drag = dragMove
		m.transition(StateEditing)
		return
	}
	// A new box needs an active class to commit under; without one the
	// press only deselects.
	if _, name, _ := m.doc.CurrentClass(); name == "" {
		m.doc.SelectNone()
		return
	}
	m.doc.BeginDraw(p)
	m.transition(StateDrawing)
}

func (m *Machine) pressEditing(p annotation.Point) {
	if h, ok := m.hitHandle(p); ok {
		m.doc.BeginDrag()
		m.drag = dragResize
		m.handle = h
		return
	}
	if r, ok := m.doc.EditRect(); ok && r.Contains(p) {
		m.doc.BeginDrag()
		m.drag = dragMove
		return
	}
	// Pressing elsewhere commits the edit. Another box's body moves the
	// edit there; empty canvas deselects and returns to Idle.
	cur, _ := m.doc.Editing()
	m.doc.EndEdit()
	m.drag = dragNone
	if i, ok := m.hitBox(p); ok && i != cur {
		if err := m.doc.BeginEdit(i); err == nil {
			m.doc.BeginDrag()
			m.drag = dragMove
			return
		}
	}
	m.doc.SelectNone()
	m.transition(StateIdle)
}

// MoveTo handles pointer motion with the button held. Editing drags are
// computed from the total delta since the press, never incrementally.
func (m *Machine) MoveTo(p annotation.Point) {
	switch m.state {
	case StateDrawing:
		m.doc.UpdateDraw(p)
	case StateEditing:
		delta := p.Sub(m.pressPos)
		switch m.drag {
		case dragResize:
			m.doc.Resize(m.handle, delta)
		case dragMove:
			m.doc.MoveBy(delta)
		}
	}
}

// Release handles pointer-up, ending the active drag. A draw is committed
// or discarded by the document's minimum-size rule; an edit stays selected
// until a press lands outside it.
func (m *Machine) Release(p annotation.Point) {
	switch m.state {
	case StateDrawing:
		m.doc.UpdateDraw(p)
		if i, ok := m.doc.CommitDraw(); ok {
			if m.logger != nil {
				m.logger.Debug("box committed", "index", i)
			}
		}
		m.transition(StateIdle)
	case StateEditing:
		m.drag = dragNone
	}
}

// Abort force-resolves any in-progress gesture ahead of a teardown such
// as an image switch: a draw is discarded, an edit is committed.
func (m *Machine) Abort() {
	switch m.state {
	case StateDrawing:
		m.doc.CancelDraw()
	case StateEditing:
		m.doc.EndEdit()
		m.doc.SelectNone()
	}
	m.drag = dragNone
	m.transition(StateIdle)
}

func (m *Machine) transition(next State) {
	prev := m.state
	if prev == next {
		return
	}
	m.state = next
	if m.logger != nil {
		m.logger.Debug("canvas state transition", "from", prev.String(), "to", next.String())
	}
	for _, l := range m.listeners {
		l(prev, next)
	}
}

// hitHandle tests p against the corner handle anchors of the box under
// edit, in the same order the document reports its corners.
func (m *Machine) hitHandle(p annotation.Point) (annotation.Handle, bool) {
	r, ok := m.doc.EditRect()
	if !ok {
		return 0, false
	}
	for k, anchor := range r.Corners() {
		if math.Abs(p.X-anchor.X) <= HandleHitRadius && math.Abs(p.Y-anchor.Y) <= HandleHitRadius {
			return annotation.CornerHandles[k], true
		}
	}
	return 0, false
}

// hitBox returns the topmost committed box whose body contains p. Boxes
// later in the sequence render on top, so the scan runs in reverse.
func (m *Machine) hitBox(p annotation.Point) (int, bool) {
	boxes := m.doc.Boxes()
	for i := len(boxes) - 1; i >= 0; i-- {
		if boxes[i].Rect.Contains(p) {
			return i, true
		}
	}
	return 0, false
}

var _ MachineContract = (*Machine)(nil)
