package editor

import (
	"github.com/Ahmed-Fekry07/YOLO-Annotator/domain/annotation"
)

// State enumerates the finite interaction states of the canvas.
type State int

const (
	StateIdle State = iota
	StateDrawing
	StateEditing
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateDrawing:
		return "drawing"
	case StateEditing:
		return "editing"
	default:
		return "unknown"
	}
}

// dragKind is the nested sub-state while Editing: a handle drag resizes,
// a body drag moves the whole box.
type dragKind int

const (
	dragNone dragKind = iota
	dragMove
	dragResize
)

// Button identifies the pointer button carried by an event.
type Button int

const (
	ButtonLeft Button = iota
	ButtonMiddle
	ButtonRight
)

// PointerEvent is one pointer primitive in scene space (image pixel
// coordinates, already unscaled by the host).
type PointerEvent struct {
	Pos    annotation.Point
	Button Button
}

// StateListener is called on each successful state transition.
type StateListener func(prev, next State)

// Document is the slice of the annotation document the machine drives.
type Document interface {
	CurrentClass() (int, string, *annotation.Color)

	BeginDraw(annotation.Point)
	UpdateDraw(annotation.Point)
	CommitDraw() (int, bool)
	CancelDraw()

	SelectNone()

	BeginEdit(int) error
	Editing() (int, bool)
	EditRect() (annotation.Rect, bool)
	BeginDrag()
	Resize(annotation.Handle, annotation.Point) bool
	MoveBy(annotation.Point)
	EndEdit() (int, bool)

	Boxes() []annotation.Box
}

// Interface slices for consumers (presenters).
type PointerSink interface {
	Press(PointerEvent)
	MoveTo(annotation.Point)
	Release(annotation.Point)
}
type DrawToggle interface {
	SetDrawingEnabled(bool)
	DrawingEnabled() bool
}
type StateSource interface{ Current() State }

// MachineContract aggregate for DI.
type MachineContract interface {
	PointerSink
	DrawToggle
	StateSource
	Abort()
	AddListener(StateListener)
}
