package model

import (
	"fmt"

	"github.com/Ahmed-Fekry07/YOLO-Annotator/domain/annotation"
)

// ClassModel maps the class panel's list rows onto sparse class ids. Rows
// are ordered by ascending id; the mapping is rebuilt from the registry
// after every class mutation. The zero value is ready to use.
type ClassModel struct {
	ids      []int
	names    []string
	selected int // row index, -1 none
}

// NewClassModel returns a pointer to a ready-to-use ClassModel.
func NewClassModel() *ClassModel { return &ClassModel{selected: -1} }

// Reload rebuilds the row mapping from the registry, preserving the
// selected id when it survives the mutation.
func (m *ClassModel) Reload(reg *annotation.ClassRegistry) {
	if m == nil || reg == nil {
		return
	}
	keepID, hadSel := m.SelectedID()
	m.ids = reg.IDs()
	m.names = make([]string, len(m.ids))
	m.selected = -1
	for i, id := range m.ids {
		m.names[i] = reg.DisplayName(id)
		if hadSel && id == keepID {
			m.selected = i
		}
	}
	if m.selected < 0 && len(m.ids) > 0 {
		m.selected = 0
	}
}

// Rows returns the display strings in row order, in the same explicit
// form the class file uses.
func (m *ClassModel) Rows() []string {
	if m == nil {
		return nil
	}
	rows := make([]string, len(m.ids))
	for i, id := range m.ids {
		rows[i] = fmt.Sprintf("[%d] %s", id, m.names[i])
	}
	return rows
}

// Len returns the number of rows.
func (m *ClassModel) Len() int {
	if m == nil {
		return 0
	}
	return len(m.ids)
}

// IDAt returns the class id behind a row.
func (m *ClassModel) IDAt(row int) (int, bool) {
	if m == nil || row < 0 || row >= len(m.ids) {
		return 0, false
	}
	return m.ids[row], true
}

// Select marks a row as the active class row.
func (m *ClassModel) Select(row int) bool {
	if m == nil || row < 0 || row >= len(m.ids) {
		return false
	}
	m.selected = row
	return true
}

// SelectedID returns the id behind the selected row.
func (m *ClassModel) SelectedID() (int, bool) {
	if m == nil || m.selected < 0 || m.selected >= len(m.ids) {
		return 0, false
	}
	return m.ids[m.selected], true
}

// SelectedName returns the display name behind the selected row.
func (m *ClassModel) SelectedName() (string, bool) {
	if m == nil || m.selected < 0 || m.selected >= len(m.names) {
		return "", false
	}
	return m.names[m.selected], true
}
