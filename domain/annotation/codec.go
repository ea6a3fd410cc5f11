package annotation

// YOLO line codec: "<class_id> <cx> <cy> <w> <h>" with the four floats
// normalized to [0,1] relative to the image dimensions.

import (
	"fmt"
	"strconv"
	"strings"
)

// EncodeLine converts a box to its normalized five-field text line.
// Each of cx, cy, w, h is clamped to [0,1] independently after
// computation, so boxes extending past the image edge export in range.
func EncodeLine(b Box, imageW, imageH int) string {
	r := b.Rect.Normalized()
	cx := (r.Left() + r.Right()) / 2 / float64(imageW)
	cy := (r.Top() + r.Bottom()) / 2 / float64(imageH)
	w := r.W / float64(imageW)
	h := r.H / float64(imageH)
	return fmt.Sprintf("%d %.6f %.6f %.6f %.6f",
		b.ClassID, clamp01(cx), clamp01(cy), clamp01(w), clamp01(h))
}

// DecodeLine parses a YOLO line back into a pixel-space box. It requires
// exactly five whitespace-separated tokens: an integer class id and four
// floats. The box's class name and color are left for the caller to
// resolve.
//
// Decode never clamps: malformed upstream data may legitimately describe
// an off-canvas rectangle, and silently altering values would hide that.
func DecodeLine(line string, imageW, imageH int) (Box, error) {
	tokens := strings.Fields(line)
	if len(tokens) != 5 {
		return Box{}, &ParseError{Line: line, Reason: fmt.Sprintf("want 5 fields, got %d", len(tokens))}
	}
	classID, err := strconv.Atoi(tokens[0])
	if err != nil {
		return Box{}, &ParseError{Line: line, Reason: "class id is not an integer"}
	}
	var vals [4]float64
	for i, tok := range tokens[1:] {
		vals[i], err = strconv.ParseFloat(tok, 64)
		if err != nil {
			return Box{}, &ParseError{Line: line, Reason: fmt.Sprintf("field %d is not a number", i+1)}
		}
	}
	w := vals[2] * float64(imageW)
	h := vals[3] * float64(imageH)
	r := Rect{
		X: vals[0]*float64(imageW) - w/2,
		Y: vals[1]*float64(imageH) - h/2,
		W: w,
		H: h,
	}
	return NewBox(r, classID, "", nil), nil
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
