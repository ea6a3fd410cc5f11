package annotation

import (
	"github.com/google/uuid"
)

// Point is a position in scene (pixel) space, top-left origin.
type Point struct {
	X, Y float64
}

// Add returns p translated by d.
func (p Point) Add(d Point) Point { return Point{X: p.X + d.X, Y: p.Y + d.Y} }

// Sub returns the delta from q to p.
func (p Point) Sub(q Point) Point { return Point{X: p.X - q.X, Y: p.Y - q.Y} }

// Rect is an axis-aligned rectangle in pixel space, top-left origin.
// W and H may be zero or negative for transient rectangles; committed
// boxes always carry a normalized rectangle with W > 0 and H > 0.
type Rect struct {
	X, Y, W, H float64
}

func (r Rect) Left() float64   { return r.X }
func (r Rect) Top() float64    { return r.Y }
func (r Rect) Right() float64  { return r.X + r.W }
func (r Rect) Bottom() float64 { return r.Y + r.H }

// CenterX and CenterY return the rectangle midpoint.
func (r Rect) CenterX() float64 { return r.X + r.W/2 }
func (r Rect) CenterY() float64 { return r.Y + r.H/2 }

// Normalized returns an equivalent rectangle with non-negative W and H
// (left <= right, top <= bottom).
func (r Rect) Normalized() Rect {
	if r.W < 0 {
		r.X += r.W
		r.W = -r.W
	}
	if r.H < 0 {
		r.Y += r.H
		r.H = -r.H
	}
	return r
}

// Contains reports whether p lies inside the rectangle (edges inclusive).
func (r Rect) Contains(p Point) bool {
	n := r.Normalized()
	return p.X >= n.Left() && p.X <= n.Right() && p.Y >= n.Top() && p.Y <= n.Bottom()
}

// Translate returns the rectangle shifted by d without resizing.
func (r Rect) Translate(d Point) Rect {
	r.X += d.X
	r.Y += d.Y
	return r
}

// RectFromCorners returns the normalized rectangle spanning a and b, so a
// drag in any of the four directions yields a correctly oriented rectangle.
func RectFromCorners(a, b Point) Rect {
	return Rect{X: a.X, Y: a.Y, W: b.X - a.X, H: b.Y - a.Y}.Normalized()
}

// Corners returns the four corner points in top-left, top-right,
// bottom-left, bottom-right order. These are the anchor positions for the
// interactive resize handles.
func (r Rect) Corners() [4]Point {
	n := r.Normalized()
	return [4]Point{
		{X: n.Left(), Y: n.Top()},
		{X: n.Right(), Y: n.Top()},
		{X: n.Left(), Y: n.Bottom()},
		{X: n.Right(), Y: n.Bottom()},
	}
}

// Color is a display color for a class (non-premultiplied RGBA).
type Color struct {
	R, G, B, A uint8
}

// Box is a single committed bounding-box annotation.
//
// RenderKey is an opaque identifier the host render layer may use to track
// the on-screen item for this box. The document never interprets it.
type Box struct {
	Rect      Rect
	ClassID   int
	ClassName string
	Color     *Color // optional per-box override; nil falls back to the class palette
	RenderKey string
}

// NewBox returns a committed box with a fresh render key.
func NewBox(r Rect, classID int, className string, color *Color) Box {
	return Box{
		Rect:      r.Normalized(),
		ClassID:   classID,
		ClassName: className,
		Color:     color,
		RenderKey: uuid.NewString(),
	}
}

// Clone returns a deep copy of the box, render key included.
func (b Box) Clone() Box {
	c := b
	if b.Color != nil {
		col := *b.Color
		c.Color = &col
	}
	return c
}
