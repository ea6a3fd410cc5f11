package presenter

import (
	"image"
	"testing"

	"github.com/Ahmed-Fekry07/YOLO-Annotator/domain/annotation"
	"github.com/Ahmed-Fekry07/YOLO-Annotator/domain/editor"
)

type canvasSessionStub struct {
	doc   *annotation.Document
	m     *editor.Machine
	img   image.Image
	dirty int
}

func (s *canvasSessionStub) Document() *annotation.Document { return s.doc }
func (s *canvasSessionStub) Machine() *editor.Machine       { return s.m }
func (s *canvasSessionStub) Image() image.Image             { return s.img }
func (s *canvasSessionStub) MarkDirty()                     { s.dirty++ }

type canvasViewStub struct {
	frames int
	last   []byte
}

func (v *canvasViewStub) SetFrame(png []byte) { v.frames++; v.last = png }

func newCanvasFixture(imgW, imgH int) (*CanvasPresenter, *canvasSessionStub, *canvasViewStub) {
	doc := annotation.NewDocument(imgW, imgH, nil, nil)
	doc.SetCurrentClass(0, "fish", nil)
	s := &canvasSessionStub{
		doc: doc,
		m:   editor.NewMachine(doc, nil),
		img: image.NewRGBA(image.Rect(0, 0, imgW, imgH)),
	}
	v := &canvasViewStub{}
	return NewCanvasPresenter(s, v, 500, 500), s, v
}

func TestCanvasPresenter_DrawThroughViewCoordinates(t *testing.T) {
	// 1000x1000 image in a 500x500 viewport: view coordinates are half
	// of scene coordinates.
	p, s, v := newCanvasFixture(1000, 1000)
	p.Refresh()
	if v.frames != 1 || len(v.last) == 0 {
		t.Fatalf("frames = %d", v.frames)
	}

	p.PointerPress(50, 50, editor.ButtonLeft)
	p.PointerMove(100, 100)
	p.PointerRelease(150, 200)
	if s.doc.Len() != 1 {
		t.Fatalf("len = %d", s.doc.Len())
	}
	b, _ := s.doc.Box(0)
	if b.Rect != (annotation.Rect{X: 100, Y: 100, W: 200, H: 300}) {
		t.Fatalf("rect = %+v", b.Rect)
	}
	if s.dirty == 0 {
		t.Fatal("commit did not mark the session dirty")
	}
	// Press, move and release each pushed a frame.
	if v.frames != 4 {
		t.Fatalf("frames = %d, want 4", v.frames)
	}
}

func TestCanvasPresenter_DiscardedDrawNotDirty(t *testing.T) {
	p, s, _ := newCanvasFixture(100, 100)
	p.Refresh()
	p.PointerPress(10, 10, editor.ButtonLeft)
	p.PointerRelease(12, 12)
	if s.doc.Len() != 0 {
		t.Fatalf("len = %d", s.doc.Len())
	}
	if s.dirty != 0 {
		t.Fatal("discarded draw marked dirty")
	}
}

func TestCanvasPresenter_NoImageIsInert(t *testing.T) {
	s := &canvasSessionStub{}
	v := &canvasViewStub{}
	p := NewCanvasPresenter(s, v, 500, 500)
	p.Refresh()
	if v.frames != 1 || v.last != nil {
		t.Fatalf("frames = %d last = %v", v.frames, v.last)
	}
	p.PointerPress(10, 10, editor.ButtonLeft)
	p.PointerRelease(10, 10)
	if s.dirty != 0 {
		t.Fatal("pointer events on empty session had effect")
	}
}
