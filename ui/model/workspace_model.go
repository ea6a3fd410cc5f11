package model

import "fmt"

// WorkspaceModel tracks what the workspace panels display: the open image,
// its position in the file list, the status line and the unsaved flag.
// It is decoupled from the UI; presenters update it and push values to
// views. The zero value is ready to use.
type WorkspaceModel struct {
	status    string
	imageName string
	imageW    int
	imageH    int
	fileNames []string
	fileIndex int
	dirty     bool
}

// NewWorkspaceModel returns a pointer to a ready-to-use WorkspaceModel.
func NewWorkspaceModel() *WorkspaceModel { return &WorkspaceModel{} }

// SetStatus records the status line message.
func (m *WorkspaceModel) SetStatus(msg string) {
	if m == nil {
		return
	}
	m.status = msg
}

// Status returns the status line message.
func (m *WorkspaceModel) Status() string {
	if m == nil {
		return ""
	}
	return m.status
}

// SetImage records the open image's name and pixel dimensions.
func (m *WorkspaceModel) SetImage(name string, w, h int) {
	if m == nil {
		return
	}
	m.imageName, m.imageW, m.imageH = name, w, h
}

// ImageInfo returns a display string for the open image, empty when none.
func (m *WorkspaceModel) ImageInfo() string {
	if m == nil || m.imageName == "" {
		return ""
	}
	return fmt.Sprintf("%s (%dx%d)", m.imageName, m.imageW, m.imageH)
}

// SetFiles records the workspace file list and the open index.
func (m *WorkspaceModel) SetFiles(names []string, index int) {
	if m == nil {
		return
	}
	m.fileNames = append([]string(nil), names...)
	m.fileIndex = index
}

// Files returns the workspace file names and the open index.
func (m *WorkspaceModel) Files() ([]string, int) {
	if m == nil {
		return nil, 0
	}
	return append([]string(nil), m.fileNames...), m.fileIndex
}

// SetDirty records whether the document has unsaved changes.
func (m *WorkspaceModel) SetDirty(dirty bool) {
	if m == nil {
		return
	}
	m.dirty = dirty
}

// Dirty reports the unsaved flag.
func (m *WorkspaceModel) Dirty() bool {
	if m == nil {
		return false
	}
	return m.dirty
}
