package editor

import (
	"testing"

	"github.com/Ahmed-Fekry07/YOLO-Annotator/domain/annotation"
)

func newTestMachine(boxes ...annotation.Box) (*Machine, *annotation.Document) {
	doc := annotation.NewDocument(1000, 500, nil, nil)
	doc.SetCurrentClass(0, "fish", nil)
	if len(boxes) > 0 {
		doc.Load(boxes)
	}
	return NewMachine(doc, nil), doc
}

func box(x, y, w, h float64) annotation.Box {
	return annotation.NewBox(annotation.Rect{X: x, Y: y, W: w, H: h}, 0, "fish", nil)
}

func press(m *Machine, x, y float64) {
	m.Press(PointerEvent{Pos: annotation.Point{X: x, Y: y}, Button: ButtonLeft})
}

func TestMachine_DrawGesture(t *testing.T) {
	m, doc := newTestMachine()
	press(m, 100, 100)
	if m.Current() != StateDrawing {
		t.Fatalf("state after press = %v", m.Current())
	}
	m.MoveTo(annotation.Point{X: 200, Y: 150})
	if r, ok := doc.Provisional(); !ok || r.W != 100 || r.H != 50 {
		t.Fatalf("provisional = %+v,%v", r, ok)
	}
	m.Release(annotation.Point{X: 300, Y: 400})
	if m.Current() != StateIdle {
		t.Fatalf("state after release = %v", m.Current())
	}
	if doc.Len() != 1 {
		t.Fatalf("len = %d, want 1", doc.Len())
	}
	b, _ := doc.Box(0)
	if b.Rect != (annotation.Rect{X: 100, Y: 100, W: 200, H: 300}) {
		t.Fatalf("rect %+v", b.Rect)
	}
}

func TestMachine_TinyDrawDiscarded(t *testing.T) {
	m, doc := newTestMachine()
	press(m, 10, 10)
	m.Release(annotation.Point{X: 13, Y: 13})
	if m.Current() != StateIdle || doc.Len() != 0 {
		t.Fatalf("state=%v len=%d", m.Current(), doc.Len())
	}
}

func TestMachine_DrawDisabledCanvasInert(t *testing.T) {
	m, doc := newTestMachine(box(0, 0, 50, 50))
	press(m, 25, 25) // select the box
	if m.Current() != StateEditing {
		t.Fatalf("state = %v", m.Current())
	}
	m.MoveTo(annotation.Point{X: 35, Y: 35})

	// Disabling resolves the edit in flight and deselects.
	m.SetDrawingEnabled(false)
	if m.Current() != StateIdle {
		t.Fatalf("state after disable = %v", m.Current())
	}
	if len(doc.Selection()) != 0 {
		t.Fatal("selection survives disable")
	}
	b, _ := doc.Box(0)
	if b.Rect != (annotation.Rect{X: 10, Y: 10, W: 50, H: 50}) {
		t.Fatalf("rect after disable = %+v", b.Rect)
	}

	// While disabled presses neither select nor draw.
	press(m, 35, 35)
	if m.Current() != StateIdle || len(doc.Selection()) != 0 {
		t.Fatalf("body press while disabled: state=%v sel=%v", m.Current(), doc.Selection())
	}
	press(m, 500, 400)
	if _, ok := doc.Provisional(); ok {
		t.Fatal("draw started while disabled")
	}

	m.SetDrawingEnabled(true)
	press(m, 500, 400)
	if m.Current() != StateDrawing {
		t.Fatalf("state after re-enable = %v", m.Current())
	}
}

func TestMachine_NoActiveClassOnlyDeselects(t *testing.T) {
	doc := annotation.NewDocument(1000, 500, nil, nil)
	doc.Load([]annotation.Box{box(0, 0, 50, 50)})
	m := NewMachine(doc, nil)

	// Existing boxes stay selectable without an active class.
	press(m, 25, 25)
	if m.Current() != StateEditing {
		t.Fatalf("state = %v", m.Current())
	}
	m.Release(annotation.Point{X: 25, Y: 25})
	press(m, 500, 400) // ends the edit
	if m.Current() != StateIdle {
		t.Fatalf("state = %v", m.Current())
	}

	// An empty-canvas drag opens nothing and commits nothing.
	press(m, 500, 400)
	if m.Current() != StateIdle {
		t.Fatalf("state = %v", m.Current())
	}
	if _, ok := doc.Provisional(); ok {
		t.Fatal("provisional opened with no active class")
	}
	m.MoveTo(annotation.Point{X: 600, Y: 450})
	m.Release(annotation.Point{X: 600, Y: 450})
	if doc.Len() != 1 {
		t.Fatalf("len = %d, want 1", doc.Len())
	}

	doc.SetCurrentClass(0, "fish", nil)
	press(m, 500, 400)
	if m.Current() != StateDrawing {
		t.Fatalf("state with active class = %v", m.Current())
	}
}

func TestMachine_BodyPressSelectsNotDraws(t *testing.T) {
	m, doc := newTestMachine(box(100, 100, 200, 200))
	press(m, 150, 150)
	if m.Current() != StateEditing {
		t.Fatalf("state = %v", m.Current())
	}
	if _, ok := doc.Provisional(); ok {
		t.Fatal("press on box body opened a provisional draw")
	}
	if p, ok := doc.Primary(); !ok || p != 0 {
		t.Fatalf("primary = %d,%v", p, ok)
	}
}

func TestMachine_TopmostBoxWins(t *testing.T) {
	m, doc := newTestMachine(box(0, 0, 300, 300), box(100, 100, 100, 100))
	press(m, 150, 150) // inside both; later box renders on top
	if p, ok := doc.Primary(); !ok || p != 1 {
		t.Fatalf("primary = %d,%v, want 1", p, ok)
	}
}

func TestMachine_MoveDragTotalDelta(t *testing.T) {
	m, doc := newTestMachine(box(100, 100, 50, 50))
	press(m, 120, 120)
	// Jittery path; only the final pointer position matters.
	m.MoveTo(annotation.Point{X: 121, Y: 119})
	m.MoveTo(annotation.Point{X: 140, Y: 135})
	m.MoveTo(annotation.Point{X: 130, Y: 130})
	m.Release(annotation.Point{X: 130, Y: 130})
	if m.Current() != StateEditing {
		t.Fatalf("state = %v", m.Current())
	}
	r, ok := doc.EditRect()
	if !ok || r != (annotation.Rect{X: 110, Y: 110, W: 50, H: 50}) {
		t.Fatalf("rect = %+v,%v", r, ok)
	}
}

func TestMachine_HandleDragResizes(t *testing.T) {
	m, doc := newTestMachine(box(100, 100, 100, 100))
	press(m, 150, 150) // enter editing
	m.Release(annotation.Point{X: 150, Y: 150})

	// Grab the bottom-right handle (within HandleHitRadius of the corner)
	// and drag it out.
	press(m, 198, 203)
	m.MoveTo(annotation.Point{X: 248, Y: 233})
	m.Release(annotation.Point{X: 248, Y: 233})
	r, _ := doc.EditRect()
	if r != (annotation.Rect{X: 100, Y: 100, W: 150, H: 130}) {
		t.Fatalf("rect after resize = %+v", r)
	}
}

func TestMachine_ResizeBelowFloorKeepsGeometry(t *testing.T) {
	m, doc := newTestMachine(box(100, 100, 100, 100))
	press(m, 150, 150)
	m.Release(annotation.Point{X: 150, Y: 150})

	press(m, 200, 200) // bottom-right handle
	m.MoveTo(annotation.Point{X: 105, Y: 105})
	m.Release(annotation.Point{X: 105, Y: 105})
	r, _ := doc.EditRect()
	if r != (annotation.Rect{X: 100, Y: 100, W: 100, H: 100}) {
		t.Fatalf("rect = %+v", r)
	}
}

func TestMachine_OutsidePressEndsEdit(t *testing.T) {
	m, doc := newTestMachine(box(100, 100, 100, 100))
	press(m, 150, 150)
	m.MoveTo(annotation.Point{X: 170, Y: 170})
	m.Release(annotation.Point{X: 170, Y: 170})

	press(m, 600, 400)
	if m.Current() != StateIdle {
		t.Fatalf("state = %v", m.Current())
	}
	if len(doc.Selection()) != 0 {
		t.Fatal("still selected after outside press")
	}
	// The move was committed to the box on edit end.
	b, _ := doc.Box(0)
	if b.Rect != (annotation.Rect{X: 120, Y: 120, W: 100, H: 100}) {
		t.Fatalf("committed rect = %+v", b.Rect)
	}
}

func TestMachine_PressOtherBoxTransfersEdit(t *testing.T) {
	m, doc := newTestMachine(box(0, 0, 50, 50), box(200, 200, 50, 50))
	press(m, 25, 25)
	m.Release(annotation.Point{X: 25, Y: 25})
	press(m, 225, 225)
	if m.Current() != StateEditing {
		t.Fatalf("state = %v", m.Current())
	}
	if i, ok := doc.Editing(); !ok || i != 1 {
		t.Fatalf("editing = %d,%v, want 1", i, ok)
	}
}

func TestMachine_AbortDiscardsDraw(t *testing.T) {
	m, doc := newTestMachine()
	press(m, 10, 10)
	m.MoveTo(annotation.Point{X: 200, Y: 200})
	m.Abort()
	if m.Current() != StateIdle || doc.Len() != 0 {
		t.Fatalf("state=%v len=%d", m.Current(), doc.Len())
	}
	if _, ok := doc.Provisional(); ok {
		t.Fatal("provisional survives abort")
	}
}

func TestMachine_AbortCommitsEdit(t *testing.T) {
	m, doc := newTestMachine(box(100, 100, 100, 100))
	press(m, 150, 150)
	m.MoveTo(annotation.Point{X: 160, Y: 160})
	m.Abort()
	if m.Current() != StateIdle {
		t.Fatalf("state = %v", m.Current())
	}
	b, _ := doc.Box(0)
	if b.Rect != (annotation.Rect{X: 110, Y: 110, W: 100, H: 100}) {
		t.Fatalf("rect after abort = %+v", b.Rect)
	}
}

func TestMachine_NonLeftButtonIgnored(t *testing.T) {
	m, doc := newTestMachine()
	m.Press(PointerEvent{Pos: annotation.Point{X: 10, Y: 10}, Button: ButtonRight})
	if m.Current() != StateIdle {
		t.Fatalf("state = %v", m.Current())
	}
	if _, ok := doc.Provisional(); ok {
		t.Fatal("right press opened a draw")
	}
}

func TestMachine_ListenersSeeTransitions(t *testing.T) {
	m, _ := newTestMachine()
	var got [][2]State
	m.AddListener(func(prev, next State) { got = append(got, [2]State{prev, next}) })
	press(m, 10, 10)
	m.Release(annotation.Point{X: 100, Y: 100})
	if len(got) != 2 {
		t.Fatalf("transitions = %v", got)
	}
	if got[0] != [2]State{StateIdle, StateDrawing} || got[1] != [2]State{StateDrawing, StateIdle} {
		t.Fatalf("transitions = %v", got)
	}
}
