package annotation

// Snapshot is an immutable deep copy of the committed box sequence, taken
// immediately before a mutating operation. It carries geometry and class
// data only; the host's live render state is never captured.
type Snapshot []Box

func cloneBoxes(boxes []Box) Snapshot {
	s := make(Snapshot, len(boxes))
	for i, b := range boxes {
		s[i] = b.Clone()
	}
	return s
}

// History holds the undo and redo stacks for one open image session.
// The zero value is ready to use.
type History struct {
	undo []Snapshot
	redo []Snapshot
}

// Push records the pre-mutation state and invalidates redo: any new
// user-initiated mutation makes previously undone states unreachable.
func (h *History) Push(s Snapshot) {
	h.undo = append(h.undo, s)
	h.redo = h.redo[:0]
}

// Undo moves current onto the redo stack and returns the most recent
// undo entry. It returns false when there is nothing to undo.
func (h *History) Undo(current Snapshot) (Snapshot, bool) {
	if len(h.undo) == 0 {
		return nil, false
	}
	h.redo = append(h.redo, current)
	s := h.undo[len(h.undo)-1]
	h.undo = h.undo[:len(h.undo)-1]
	return s, true
}

// Redo is the mirror of Undo.
func (h *History) Redo(current Snapshot) (Snapshot, bool) {
	if len(h.redo) == 0 {
		return nil, false
	}
	h.undo = append(h.undo, current)
	s := h.redo[len(h.redo)-1]
	h.redo = h.redo[:len(h.redo)-1]
	return s, true
}

// CanUndo reports whether the undo stack is non-empty.
func (h *History) CanUndo() bool { return len(h.undo) > 0 }

// CanRedo reports whether the redo stack is non-empty.
func (h *History) CanRedo() bool { return len(h.redo) > 0 }

// Clear drops both stacks. Called unconditionally when a new image is
// loaded; there is no cross-image history.
func (h *History) Clear() {
	h.undo = nil
	h.redo = nil
}
