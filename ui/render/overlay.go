package render

import (
	"bytes"
	"image"
	"image/color"
	"image/draw"
	"image/png"

	"github.com/disintegration/imaging"

	"github.com/Ahmed-Fekry07/YOLO-Annotator/domain/annotation"
)

const (
	// BoxOutline is the outline thickness of a committed box.
	BoxOutline = 3
	// SelectionOutline is the outline thickness of a selected box.
	SelectionOutline = 4
	// HandleSize is the side of the square corner handles drawn on the
	// box under edit.
	HandleSize = 10
)

var (
	selectionColor = color.RGBA{255, 255, 255, 255}
	editingColor   = color.RGBA{255, 255, 0, 255}
)

// Frame is one composited preview: the image fitted to the viewport with
// the annotation overlays drawn at view scale.
type Frame struct {
	RGBA *image.RGBA
	// Scale maps scene (image pixel) coordinates to view coordinates.
	Scale float64
}

// MapToScene converts a view coordinate back into scene space.
func (f Frame) MapToScene(x, y float64) annotation.Point {
	if f.Scale == 0 {
		return annotation.Point{}
	}
	return annotation.Point{X: x / f.Scale, Y: y / f.Scale}
}

// Compose fits img into viewW x viewH preserving aspect ratio (never
// upscaling) and draws the document state over it: committed boxes in
// their class color, the multi-select set highlighted, the box under edit
// with its corner handles, and any provisional draw as a thin outline.
func Compose(img image.Image, doc *annotation.Document, viewW, viewH int) Frame {
	if img == nil || doc == nil {
		return Frame{}
	}
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	if w < 1 || h < 1 || viewW < 1 || viewH < 1 {
		return Frame{}
	}
	scale := 1.0
	fitted := img
	if w > viewW || h > viewH {
		fitted = imaging.Fit(img, viewW, viewH, imaging.Linear)
		scale = float64(fitted.Bounds().Dx()) / float64(w)
	}

	dst := image.NewRGBA(image.Rect(0, 0, fitted.Bounds().Dx(), fitted.Bounds().Dy()))
	draw.Draw(dst, dst.Bounds(), fitted, fitted.Bounds().Min, draw.Src)

	reg := doc.Registry()
	editing, hasEdit := doc.Editing()
	for i, box := range doc.Boxes() {
		if hasEdit && i == editing {
			continue
		}
		c := reg.ResolveColor(box.ClassID)
		if box.Color != nil {
			c = *box.Color
		}
		outlineRect(dst, viewRect(box.Rect, scale), rgba(c), BoxOutline)
		if doc.IsSelected(i) {
			outlineRect(dst, viewRect(box.Rect, scale), selectionColor, SelectionOutline)
		}
	}

	if r, ok := doc.EditRect(); ok {
		vr := viewRect(r, scale)
		outlineRect(dst, vr, editingColor, SelectionOutline)
		for _, corner := range [4]image.Point{
			{vr.Min.X, vr.Min.Y}, {vr.Max.X, vr.Min.Y},
			{vr.Min.X, vr.Max.Y}, {vr.Max.X, vr.Max.Y},
		} {
			hr := image.Rect(corner.X-HandleSize/2, corner.Y-HandleSize/2,
				corner.X+HandleSize/2, corner.Y+HandleSize/2)
			fillRect(dst, hr, editingColor)
		}
	}

	if r, ok := doc.Provisional(); ok {
		_, _, pc := doc.CurrentClass()
		c := rgba(annotation.PaletteColor(0))
		if pc != nil {
			c = rgba(*pc)
		}
		outlineRect(dst, viewRect(r, scale), c, 1)
	}

	return Frame{RGBA: dst, Scale: scale}
}

// EncodePNG encodes a frame to PNG bytes for the Tk photo widget. Errors
// are ignored and may return an empty slice.
func EncodePNG(img image.Image) []byte {
	if img == nil {
		return nil
	}
	var buf bytes.Buffer
	_ = png.Encode(&buf, img)
	return buf.Bytes()
}

func viewRect(r annotation.Rect, scale float64) image.Rectangle {
	return image.Rect(
		int(r.Left()*scale+0.5), int(r.Top()*scale+0.5),
		int(r.Right()*scale+0.5), int(r.Bottom()*scale+0.5),
	)
}

func rgba(c annotation.Color) color.RGBA {
	return color.RGBA{c.R, c.G, c.B, c.A}
}

// outlineRect strokes r with the given thickness, drawn inward from the
// edge and alpha-composited over the image.
func outlineRect(dst *image.RGBA, r image.Rectangle, c color.RGBA, thickness int) {
	if thickness < 1 {
		thickness = 1
	}
	fillRect(dst, image.Rect(r.Min.X, r.Min.Y, r.Max.X, r.Min.Y+thickness), c)
	fillRect(dst, image.Rect(r.Min.X, r.Max.Y-thickness, r.Max.X, r.Max.Y), c)
	fillRect(dst, image.Rect(r.Min.X, r.Min.Y, r.Min.X+thickness, r.Max.Y), c)
	fillRect(dst, image.Rect(r.Max.X-thickness, r.Min.Y, r.Max.X, r.Max.Y), c)
}

func fillRect(dst *image.RGBA, r image.Rectangle, c color.RGBA) {
	draw.Draw(dst, r.Intersect(dst.Bounds()), image.NewUniform(c), image.Point{}, draw.Over)
}
