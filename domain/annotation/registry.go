package annotation

import (
	"fmt"
	"sort"
)

// SynthesizedName is the display name for a class id with no registry
// entry (a dangling reference after a declined cascade delete).
func SynthesizedName(id int) string { return fmt.Sprintf("class_%d", id) }

// defaultPalette is the fallback color scheme for classes without a custom
// color, indexed by class id modulo its length.
var defaultPalette = []Color{
	{0, 255, 0, 150},   // green
	{255, 0, 0, 150},   // red
	{0, 0, 255, 150},   // blue
	{255, 255, 0, 150}, // yellow
	{255, 0, 255, 150}, // magenta
	{0, 255, 255, 150}, // cyan
	{255, 128, 0, 150}, // orange
	{128, 0, 255, 150}, // purple
}

// PaletteColor returns the deterministic fallback color for a class id.
func PaletteColor(id int) Color {
	n := len(defaultPalette)
	return defaultPalette[((id%n)+n)%n]
}

// ClassRegistry is a sparse mapping from non-negative integer class ids to
// names and optional display colors. Ids need not be contiguous or start
// at 0, and removing an id never renumbers the others; that sparseness
// keeps ids stable across dataset edits.
type ClassRegistry struct {
	names  map[int]string
	colors map[int]Color
}

func NewClassRegistry() *ClassRegistry {
	return &ClassRegistry{
		names:  make(map[int]string),
		colors: make(map[int]Color),
	}
}

// Add registers name under id, optionally with a custom color. Adding to
// an existing id overwrites it (there is no separate rename operation).
// A name already mapping to a different id is rejected with
// DuplicateNameError before any mutation.
func (r *ClassRegistry) Add(id int, name string, color *Color) error {
	for otherID, otherName := range r.names {
		if otherName == name && otherID != id {
			return &DuplicateNameError{Name: name, ExistingID: otherID}
		}
	}
	r.names[id] = name
	if color != nil {
		r.colors[id] = *color
	}
	return nil
}

// Remove deletes the id's name and color entries. It reports whether the
// id was registered. Other ids are never renumbered or otherwise touched.
func (r *ClassRegistry) Remove(id int) bool {
	_, ok := r.names[id]
	delete(r.names, id)
	delete(r.colors, id)
	return ok
}

// Name returns the registered name for id.
func (r *ClassRegistry) Name(id int) (string, bool) {
	name, ok := r.names[id]
	return name, ok
}

// DisplayName returns the registered name, or a synthesized fallback for
// dangling ids left behind by a declined cascade delete.
func (r *ClassRegistry) DisplayName(id int) string {
	if name, ok := r.names[id]; ok {
		return name
	}
	return SynthesizedName(id)
}

// IDByName returns the id a name is registered under.
func (r *ClassRegistry) IDByName(name string) (int, bool) {
	for id, n := range r.names {
		if n == name {
			return id, true
		}
	}
	return 0, false
}

// SetColor stores a custom color override for id.
func (r *ClassRegistry) SetColor(id int, c Color) {
	r.colors[id] = c
}

// ResolveColor returns the custom color for id if one is set, else the
// deterministic palette fallback.
func (r *ClassRegistry) ResolveColor(id int) Color {
	if c, ok := r.colors[id]; ok {
		return c
	}
	return PaletteColor(id)
}

// IDs returns all registered ids in ascending order.
func (r *ClassRegistry) IDs() []int {
	ids := make([]int, 0, len(r.names))
	for id := range r.names {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	return ids
}

// Len returns the number of registered classes.
func (r *ClassRegistry) Len() int { return len(r.names) }

// NextID suggests the next free id: one past the highest registered id,
// or 0 for an empty registry.
func (r *ClassRegistry) NextID() int {
	next := 0
	for id := range r.names {
		if id >= next {
			next = id + 1
		}
	}
	return next
}
