package view

import (
	"image"

	"github.com/Ahmed-Fekry07/YOLO-Annotator/ui/render"

	//lint:ignore ST1001 Dot import is intentional for concise Tk widget DSL builders.
	. "modernc.org/tk9.0"
)

// PointerHandler receives pointer events at view coordinates.
type PointerHandler func(x, y float64)

// CanvasView is the image preview the boxes are drawn on. It owns one
// label widget whose photo is replaced with each composited frame, and
// forwards the pointer events the annotation gestures are made of.
type CanvasView interface {
	SetFrame(png []byte)
	SetPointerHandlers(press, move, release PointerHandler)
}

type canvasView struct {
	label     *LabelWidget
	prevPhoto *Img
	onPress   PointerHandler
	onMove    PointerHandler
	onRelease PointerHandler
}

// NewCanvasView creates the canvas label sized to the configured viewport
// and grids it at the given position.
func NewCanvasView(row, column, viewW, viewH int) CanvasView {
	placeholder := image.NewRGBA(image.Rect(0, 0, viewW, viewH))
	photo := NewPhoto(Data(render.EncodePNG(placeholder)))
	label := Label(Image(photo), Borderwidth(1), Relief("sunken"))
	Grid(label, Row(row), Column(column), Rowspan(6), Sticky("nw"), Padx("0.4m"), Pady("0.4m"))
	v := &canvasView{label: label, prevPhoto: photo}

	Bind(label, "<ButtonPress-1>", Command(func(e *Event) {
		if v.onPress != nil {
			v.onPress(float64(e.X), float64(e.Y))
		}
	}))
	Bind(label, "<B1-Motion>", Command(func(e *Event) {
		if v.onMove != nil {
			v.onMove(float64(e.X), float64(e.Y))
		}
	}))
	Bind(label, "<ButtonRelease-1>", Command(func(e *Event) {
		if v.onRelease != nil {
			v.onRelease(float64(e.X), float64(e.Y))
		}
	}))
	return v
}

func (v *canvasView) SetPointerHandlers(press, move, release PointerHandler) {
	if v == nil {
		return
	}
	v.onPress, v.onMove, v.onRelease = press, move, release
}

// SetFrame replaces the displayed photo. The previous Tk image is deleted
// first so stale pixel buffers do not accumulate.
func (v *canvasView) SetFrame(png []byte) {
	if v == nil || v.label == nil {
		return
	}
	if len(png) == 0 {
		return
	}
	if v.prevPhoto != nil {
		v.prevPhoto.Delete()
	}
	photo := NewPhoto(Data(png))
	v.prevPhoto = photo
	v.label.Configure(Image(photo))
}
