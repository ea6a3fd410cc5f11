package annotation

import (
	"log/slog"
	"sort"
)

const (
	// MinDrawSize is the creation minimum: a drawn rectangle must exceed
	// this in both dimensions to be committed, filtering out mouse jitter.
	MinDrawSize = 5.0
	// MinBoxSize is the resize floor: an adjustment that would leave
	// either dimension at or below this is rejected outright.
	MinBoxSize = 10.0
)

// Document is the annotation state for one open image: the ordered box
// sequence, the class registry, the current class for new boxes, the
// selection, and any in-progress draw or edit gesture. All mutation flows
// through its methods; each committed gesture is preceded by exactly one
// history snapshot.
//
// A Document is single-threaded: every operation runs to completion on
// the caller's thread and is applied atomically or not at all.
type Document struct {
	imageW, imageH int
	boxes          []Box
	history        History
	registry       *ClassRegistry
	logger         *slog.Logger
	gen            uint64

	currentClassID    int
	currentClassName  string
	currentClassColor *Color

	// provisional draw state
	drawing     bool
	anchor      Point
	provisional Rect

	// edit state; editing < 0 means no edit in progress
	editing    int
	editRect   Rect
	dragBase   Rect
	editPushed bool

	// selection: primary < 0 means none
	primary  int
	selected map[int]struct{}
}

// NewDocument creates an empty document for an image of the given pixel
// dimensions. The registry is shared with the session so classes survive
// image switches; history never does.
func NewDocument(imageW, imageH int, registry *ClassRegistry, logger *slog.Logger) *Document {
	if registry == nil {
		registry = NewClassRegistry()
	}
	return &Document{
		imageW:   imageW,
		imageH:   imageH,
		registry: registry,
		logger:   logger,
		editing:  -1,
		primary:  -1,
		selected: make(map[int]struct{}),
	}
}

// ImageSize returns the image pixel dimensions the document was created for.
func (d *Document) ImageSize() (w, h int) { return d.imageW, d.imageH }

// Registry returns the class registry the document owns.
func (d *Document) Registry() *ClassRegistry { return d.registry }

// Len returns the number of committed boxes.
func (d *Document) Len() int { return len(d.boxes) }

// Box returns a copy of the box at index i.
func (d *Document) Box(i int) (Box, error) {
	if i < 0 || i >= len(d.boxes) {
		return Box{}, &IndexError{Index: i, Len: len(d.boxes)}
	}
	return d.boxes[i].Clone(), nil
}

// Boxes returns a deep copy of the committed box sequence for the host to
// render. Mutating the returned slice never affects the document.
func (d *Document) Boxes() []Box { return cloneBoxes(d.boxes) }

// SetCurrentClass sets the active class for newly drawn boxes. A non-nil
// color is also stored as the class's custom color.
func (d *Document) SetCurrentClass(id int, name string, color *Color) {
	d.currentClassID = id
	d.currentClassName = name
	d.currentClassColor = color
	if color != nil {
		d.registry.SetColor(id, *color)
	}
}

// CurrentClass returns the active class for new boxes.
func (d *Document) CurrentClass() (id int, name string, color *Color) {
	return d.currentClassID, d.currentClassName, d.currentClassColor
}

// Load replaces the box sequence wholesale without a history snapshot.
// Used when annotations are read from disk at image-open time, which is
// not an undoable user action.
func (d *Document) Load(boxes []Box) {
	d.boxes = cloneBoxes(boxes)
	d.clearInteraction()
	d.clearSelection()
}

// --- drawing ---

// BeginDraw opens a provisional box anchored at p with zero size.
func (d *Document) BeginDraw(p Point) {
	d.drawing = true
	d.anchor = p
	d.provisional = Rect{X: p.X, Y: p.Y}
}

// UpdateDraw recomputes the provisional box as the normalized rectangle
// spanning the anchor and p.
func (d *Document) UpdateDraw(p Point) {
	if !d.drawing {
		return
	}
	d.provisional = RectFromCorners(d.anchor, p)
}

// Provisional returns the in-progress rectangle while a draw is active.
func (d *Document) Provisional() (Rect, bool) {
	return d.provisional, d.drawing
}

// CommitDraw finishes the draw gesture. If the provisional rectangle
// exceeds MinDrawSize in both dimensions it is appended under the current
// class and the new index is returned; otherwise it is discarded. The
// history snapshot is taken only before a successful commit: a discard is
// a no-op and must not consume an undo step.
func (d *Document) CommitDraw() (int, bool) {
	if !d.drawing {
		return 0, false
	}
	r := d.provisional
	d.drawing = false
	d.provisional = Rect{}
	if r.W <= MinDrawSize || r.H <= MinDrawSize {
		if d.logger != nil {
			d.logger.Debug("draw discarded below minimum size", "w", r.W, "h", r.H)
		}
		return 0, false
	}
	d.history.Push(cloneBoxes(d.boxes))
	d.gen++
	d.boxes = append(d.boxes, NewBox(r, d.currentClassID, d.currentClassName, d.currentClassColor))
	return len(d.boxes) - 1, true
}

// CancelDraw discards any in-progress provisional box.
func (d *Document) CancelDraw() {
	d.drawing = false
	d.provisional = Rect{}
}

// --- selection ---

// Select makes the box at index i the primary selection (the single box
// eligible for resize handles) and resets the multi-select set to it.
func (d *Document) Select(i int) error {
	if i < 0 || i >= len(d.boxes) {
		return &IndexError{Index: i, Len: len(d.boxes)}
	}
	d.primary = i
	d.selected = map[int]struct{}{i: {}}
	return nil
}

// SelectNone clears both the primary selection and the multi-select set.
func (d *Document) SelectNone() {
	d.clearSelection()
}

// SetSelection replaces the multi-select set used for batch delete and
// export. The primary selection is kept only if it remains a member.
func (d *Document) SetSelection(indices []int) error {
	next := make(map[int]struct{}, len(indices))
	for _, i := range indices {
		if i < 0 || i >= len(d.boxes) {
			return &IndexError{Index: i, Len: len(d.boxes)}
		}
		next[i] = struct{}{}
	}
	d.selected = next
	if _, ok := next[d.primary]; !ok {
		d.primary = -1
	}
	return nil
}

// SelectAll puts every box into the multi-select set.
func (d *Document) SelectAll() {
	for i := range d.boxes {
		d.selected[i] = struct{}{}
	}
}

// Primary returns the primary-selected box index.
func (d *Document) Primary() (int, bool) {
	if d.primary < 0 {
		return 0, false
	}
	return d.primary, true
}

// Selection returns the multi-select set in ascending order.
func (d *Document) Selection() []int {
	out := make([]int, 0, len(d.selected))
	for i := range d.selected {
		out = append(out, i)
	}
	sort.Ints(out)
	return out
}

// IsSelected reports membership in the multi-select set.
func (d *Document) IsSelected(i int) bool {
	_, ok := d.selected[i]
	return ok
}

// --- deletion ---

// Delete removes the boxes at the given indices and clears the selection.
// Indices are validated up front and removed in descending order so
// earlier removals cannot shift later ones; a failed validation performs
// no mutation and pushes no snapshot.
func (d *Document) Delete(indices []int) error {
	if len(indices) == 0 {
		return nil
	}
	for _, i := range indices {
		if i < 0 || i >= len(d.boxes) {
			return &IndexError{Index: i, Len: len(d.boxes)}
		}
	}
	d.history.Push(cloneBoxes(d.boxes))
	d.gen++
	sorted := append([]int(nil), indices...)
	sort.Sort(sort.Reverse(sort.IntSlice(sorted)))
	prev := -1
	for _, i := range sorted {
		if i == prev { // tolerate duplicate indices
			continue
		}
		prev = i
		d.boxes = append(d.boxes[:i], d.boxes[i+1:]...)
	}
	d.clearInteraction()
	d.clearSelection()
	return nil
}

// --- move/resize editing ---

// BeginEdit marks the box at index i as under interactive move/resize.
// The history snapshot for the gesture is taken lazily on the first
// Resize or MoveBy that changes geometry, so selecting a box and
// releasing without dragging never consumes an undo step. The box's
// corner handle anchors are available through Handles.
func (d *Document) BeginEdit(i int) error {
	if i < 0 || i >= len(d.boxes) {
		return &IndexError{Index: i, Len: len(d.boxes)}
	}
	d.editing = i
	d.editPushed = false
	d.editRect = d.boxes[i].Rect
	d.dragBase = d.editRect
	d.primary = i
	d.selected = map[int]struct{}{i: {}}
	return nil
}

// Editing returns the index of the box under edit.
func (d *Document) Editing() (int, bool) {
	if d.editing < 0 {
		return 0, false
	}
	return d.editing, true
}

// EditRect returns the working geometry of the box under edit.
func (d *Document) EditRect() (Rect, bool) {
	if d.editing < 0 {
		return Rect{}, false
	}
	return d.editRect, true
}

// Handles returns the four corner-handle anchor points of the working
// rectangle, in top-left, top-right, bottom-left, bottom-right order.
func (d *Document) Handles() ([4]Point, bool) {
	if d.editing < 0 {
		return [4]Point{}, false
	}
	return d.editRect.Corners(), true
}

// BeginDrag records the pre-drag rectangle at pointer-down on a handle or
// the box body. Subsequent Resize/MoveBy calls are computed against this
// base from the total pointer delta, so floating-point error cannot
// accumulate across move events.
func (d *Document) BeginDrag() {
	if d.editing < 0 {
		return
	}
	d.dragBase = d.editRect
}

// Resize adjusts the edges owned by handle by the total drag delta. The
// whole adjustment is rejected, leaving the geometry unchanged, if the
// resulting width or height would not exceed MinBoxSize.
func (d *Document) Resize(handle Handle, delta Point) bool {
	if d.editing < 0 {
		return false
	}
	next := handle.adjust(d.dragBase, delta)
	if next.W <= MinBoxSize || next.H <= MinBoxSize {
		return false
	}
	d.pushEditSnapshot()
	d.editRect = next
	return true
}

// MoveBy translates the working rectangle by the total drag delta without
// resizing.
func (d *Document) MoveBy(delta Point) {
	if d.editing < 0 {
		return
	}
	d.pushEditSnapshot()
	d.editRect = d.dragBase.Translate(delta)
}

// pushEditSnapshot takes the single snapshot covering an edit gesture the
// first time the gesture actually changes geometry.
func (d *Document) pushEditSnapshot() {
	if d.editPushed {
		return
	}
	d.history.Push(cloneBoxes(d.boxes))
	d.gen++
	d.editPushed = true
}

// Move translates a committed box by delta as a standalone operation with
// its own history snapshot (used for nudges outside an edit gesture).
func (d *Document) Move(i int, delta Point) error {
	if i < 0 || i >= len(d.boxes) {
		return &IndexError{Index: i, Len: len(d.boxes)}
	}
	d.history.Push(cloneBoxes(d.boxes))
	d.gen++
	d.boxes[i].Rect = d.boxes[i].Rect.Translate(delta)
	return nil
}

// EndEdit commits the working rectangle as the box's permanent geometry
// and clears the edit state. It returns the edited index.
func (d *Document) EndEdit() (int, bool) {
	if d.editing < 0 {
		return 0, false
	}
	i := d.editing
	d.boxes[i].Rect = d.editRect.Normalized()
	d.editing = -1
	d.editPushed = false
	return i, true
}

// --- history ---

// Undo restores the most recent snapshot, moving the current state onto
// the redo stack. Any in-progress gesture and the selection are cleared.
func (d *Document) Undo() bool {
	s, ok := d.history.Undo(cloneBoxes(d.boxes))
	if !ok {
		return false
	}
	d.gen++
	d.boxes = []Box(s)
	d.clearInteraction()
	d.clearSelection()
	return true
}

// Redo is the mirror of Undo.
func (d *Document) Redo() bool {
	s, ok := d.history.Redo(cloneBoxes(d.boxes))
	if !ok {
		return false
	}
	d.gen++
	d.boxes = []Box(s)
	d.clearInteraction()
	d.clearSelection()
	return true
}

// Generation is a counter incremented by every committed mutation,
// including undo and redo. Presenters compare it across a pointer gesture
// to tell whether anything actually changed.
func (d *Document) Generation() uint64 { return d.gen }

// CanUndo reports whether an undo step is available.
func (d *Document) CanUndo() bool { return d.history.CanUndo() }

// CanRedo reports whether a redo step is available.
func (d *Document) CanRedo() bool { return d.history.CanRedo() }

// --- classes ---

// BoxesWithClass returns the indices of all boxes referencing class id,
// in ascending order.
func (d *Document) BoxesWithClass(id int) []int {
	var out []int
	for i, b := range d.boxes {
		if b.ClassID == id {
			out = append(out, i)
		}
	}
	return out
}

// RemoveClass deletes the class from the registry and returns the indices
// of boxes that become orphaned. The boxes themselves are untouched:
// cascade-deleting them or keeping them dangling is the caller's policy,
// never silent document behavior.
func (d *Document) RemoveClass(id int) []int {
	orphans := d.BoxesWithClass(id)
	d.registry.Remove(id)
	return orphans
}

// --- export ---

// EncodeAll returns the YOLO lines for every committed box, clamped to
// the image bounds by the codec.
func (d *Document) EncodeAll() []string {
	lines := make([]string, len(d.boxes))
	for i, b := range d.boxes {
		lines[i] = EncodeLine(b, d.imageW, d.imageH)
	}
	return lines
}

// EncodeIndices returns the YOLO lines for the boxes at the given
// indices, in the given order.
func (d *Document) EncodeIndices(indices []int) ([]string, error) {
	lines := make([]string, 0, len(indices))
	for _, i := range indices {
		if i < 0 || i >= len(d.boxes) {
			return nil, &IndexError{Index: i, Len: len(d.boxes)}
		}
		lines = append(lines, EncodeLine(d.boxes[i], d.imageW, d.imageH))
	}
	return lines, nil
}

func (d *Document) clearInteraction() {
	d.drawing = false
	d.provisional = Rect{}
	d.editing = -1
	d.editRect = Rect{}
	d.dragBase = Rect{}
	d.editPushed = false
}

func (d *Document) clearSelection() {
	d.primary = -1
	d.selected = make(map[int]struct{})
}
