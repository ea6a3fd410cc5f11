package model

import (
	"testing"

	"github.com/Ahmed-Fekry07/YOLO-Annotator/domain/annotation"
)

func TestClassModel_RowsSortedByID(t *testing.T) {
	reg := annotation.NewClassRegistry()
	_ = reg.Add(7, "wreck", nil)
	_ = reg.Add(0, "fish", nil)
	_ = reg.Add(3, "buoy", nil)

	m := NewClassModel()
	m.Reload(reg)
	rows := m.Rows()
	want := []string{"[0] fish", "[3] buoy", "[7] wreck"}
	if len(rows) != len(want) {
		t.Fatalf("rows = %v", rows)
	}
	for i := range want {
		if rows[i] != want[i] {
			t.Fatalf("row %d = %q, want %q", i, rows[i], want[i])
		}
	}
	if id, ok := m.IDAt(1); !ok || id != 3 {
		t.Fatalf("IDAt(1) = %d,%v", id, ok)
	}
}

func TestClassModel_SelectionSurvivesReload(t *testing.T) {
	reg := annotation.NewClassRegistry()
	_ = reg.Add(0, "fish", nil)
	_ = reg.Add(5, "wreck", nil)

	m := NewClassModel()
	m.Reload(reg)
	if !m.Select(1) {
		t.Fatal("Select(1) failed")
	}
	// Removing an unrelated id shifts the rows but keeps the selected id.
	reg.Remove(0)
	m.Reload(reg)
	if id, ok := m.SelectedID(); !ok || id != 5 {
		t.Fatalf("selected id = %d,%v, want 5", id, ok)
	}

	// Removing the selected id falls back to the first row.
	_ = reg.Add(2, "buoy", nil)
	reg.Remove(5)
	m.Reload(reg)
	if id, ok := m.SelectedID(); !ok || id != 2 {
		t.Fatalf("selected id = %d,%v, want 2", id, ok)
	}
}

func TestClassModel_EmptyRegistry(t *testing.T) {
	m := NewClassModel()
	m.Reload(annotation.NewClassRegistry())
	if m.Len() != 0 {
		t.Fatalf("len = %d", m.Len())
	}
	if _, ok := m.SelectedID(); ok {
		t.Fatal("selection on empty model")
	}
	if _, ok := m.IDAt(0); ok {
		t.Fatal("IDAt on empty model")
	}
}

func TestWorkspaceModel_ImageInfo(t *testing.T) {
	m := NewWorkspaceModel()
	if m.ImageInfo() != "" {
		t.Fatalf("info = %q", m.ImageInfo())
	}
	m.SetImage("scene.png", 1920, 1080)
	if m.ImageInfo() != "scene.png (1920x1080)" {
		t.Fatalf("info = %q", m.ImageInfo())
	}
	m.SetDirty(true)
	if !m.Dirty() {
		t.Fatal("dirty lost")
	}
}

func TestWorkspaceModel_NilSafe(t *testing.T) {
	var m *WorkspaceModel
	m.SetStatus("x")
	if m.Status() != "" || m.Dirty() {
		t.Fatal("nil model not inert")
	}
	var c *ClassModel
	c.Reload(nil)
	if c.Len() != 0 {
		t.Fatal("nil class model not inert")
	}
}
