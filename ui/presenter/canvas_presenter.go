package presenter

import (
	"image"

	"github.com/Ahmed-Fekry07/YOLO-Annotator/domain/annotation"
	"github.com/Ahmed-Fekry07/YOLO-Annotator/domain/editor"
	"github.com/Ahmed-Fekry07/YOLO-Annotator/ui/render"
)

// CanvasSession narrows what the canvas needs from the session layer.
type CanvasSession interface {
	Document() *annotation.Document
	Machine() *editor.Machine
	Image() image.Image
	MarkDirty()
}

// CanvasView displays composited preview frames.
type CanvasView interface {
	SetFrame(png []byte)
}

// CanvasPresenter translates view pointer callbacks (view coordinates)
// into interaction-machine events and pushes recomposited frames back.
// The view-to-scene mapping uses the scale of the last composited frame.
type CanvasPresenter struct {
	session CanvasSession
	view    CanvasView
	viewW   int
	viewH   int
	scale   float64
}

// NewCanvasPresenter returns a canvas presenter rendering into a viewport
// of the given size.
func NewCanvasPresenter(session CanvasSession, view CanvasView, viewW, viewH int) *CanvasPresenter {
	return &CanvasPresenter{session: session, view: view, viewW: viewW, viewH: viewH}
}

// Refresh recomposites the current document over the current image and
// pushes the frame to the view.
func (p *CanvasPresenter) Refresh() {
	if p == nil || p.session == nil || p.view == nil {
		return
	}
	img := p.session.Image()
	doc := p.session.Document()
	if img == nil || doc == nil {
		p.view.SetFrame(nil)
		return
	}
	f := render.Compose(img, doc, p.viewW, p.viewH)
	p.scale = f.Scale
	p.view.SetFrame(render.EncodePNG(f.RGBA))
}

// PointerPress forwards a pointer-down at view coordinates.
func (p *CanvasPresenter) PointerPress(x, y float64, btn editor.Button) {
	m, doc := p.machine()
	if m == nil {
		return
	}
	gen := doc.Generation()
	m.Press(editor.PointerEvent{Pos: p.toScene(x, y), Button: btn})
	p.afterEvent(doc, gen)
}

// PointerMove forwards pointer motion with the button held.
func (p *CanvasPresenter) PointerMove(x, y float64) {
	m, doc := p.machine()
	if m == nil {
		return
	}
	gen := doc.Generation()
	m.MoveTo(p.toScene(x, y))
	p.afterEvent(doc, gen)
}

// PointerRelease forwards pointer-up.
func (p *CanvasPresenter) PointerRelease(x, y float64) {
	m, doc := p.machine()
	if m == nil {
		return
	}
	gen := doc.Generation()
	m.Release(p.toScene(x, y))
	p.afterEvent(doc, gen)
}

func (p *CanvasPresenter) machine() (*editor.Machine, *annotation.Document) {
	if p == nil || p.session == nil {
		return nil, nil
	}
	m := p.session.Machine()
	doc := p.session.Document()
	if m == nil || doc == nil {
		return nil, nil
	}
	return m, doc
}

func (p *CanvasPresenter) afterEvent(doc *annotation.Document, genBefore uint64) {
	if doc.Generation() != genBefore {
		p.session.MarkDirty()
	}
	p.Refresh()
}

func (p *CanvasPresenter) toScene(x, y float64) annotation.Point {
	if p.scale == 0 {
		return annotation.Point{X: x, Y: y}
	}
	return annotation.Point{X: x / p.scale, Y: y / p.scale}
}
