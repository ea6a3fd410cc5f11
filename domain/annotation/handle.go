package annotation

import "strings"

// Handle identifies which edges of a rectangle a resize gesture drags.
// Corner handles combine two edge bits; any subset is valid.
type Handle uint8

const (
	HandleTop Handle = 1 << iota
	HandleBottom
	HandleLeft
	HandleRight
)

const (
	HandleTopLeft     = HandleTop | HandleLeft
	HandleTopRight    = HandleTop | HandleRight
	HandleBottomLeft  = HandleBottom | HandleLeft
	HandleBottomRight = HandleBottom | HandleRight
)

// CornerHandles lists the four corner handles in the same order as
// Rect.Corners.
var CornerHandles = [4]Handle{HandleTopLeft, HandleTopRight, HandleBottomLeft, HandleBottomRight}

func (h Handle) String() string {
	if h == 0 {
		return "none"
	}
	var parts []string
	if h&HandleTop != 0 {
		parts = append(parts, "top")
	}
	if h&HandleBottom != 0 {
		parts = append(parts, "bottom")
	}
	if h&HandleLeft != 0 {
		parts = append(parts, "left")
	}
	if h&HandleRight != 0 {
		parts = append(parts, "right")
	}
	return strings.Join(parts, "-")
}

// adjust applies the drag delta to the edges the handle owns, starting
// from the pre-drag rectangle, and returns the normalized result.
func (h Handle) adjust(base Rect, delta Point) Rect {
	left, top := base.Left(), base.Top()
	right, bottom := base.Right(), base.Bottom()
	if h&HandleTop != 0 {
		top += delta.Y
	}
	if h&HandleBottom != 0 {
		bottom += delta.Y
	}
	if h&HandleLeft != 0 {
		left += delta.X
	}
	if h&HandleRight != 0 {
		right += delta.X
	}
	return Rect{X: left, Y: top, W: right - left, H: bottom - top}.Normalized()
}
