package presenter

import (
	"errors"
	"fmt"
	"image"
	"path/filepath"

	"github.com/Ahmed-Fekry07/YOLO-Annotator/config"
	"github.com/Ahmed-Fekry07/YOLO-Annotator/domain/annotation"
	"github.com/Ahmed-Fekry07/YOLO-Annotator/domain/editor"
	"github.com/Ahmed-Fekry07/YOLO-Annotator/domain/session"
	"github.com/Ahmed-Fekry07/YOLO-Annotator/ui/model"
)

// SaveDecision is the answer to the save-before-switch prompt.
type SaveDecision int

const (
	SaveYes SaveDecision = iota
	SaveNo
	SaveCancel
)

// WorkspaceSession narrows what the workspace presenter needs from the
// session layer.
type WorkspaceSession interface {
	OpenImage(string) error
	OpenDirectory(string) error
	Next() error
	Prev() error
	Save() error
	Export([]int) error
	Undo() bool
	Redo() bool
	Dirty() bool
	MarkDirty()
	SetLabelsDir(string)
	LabelsDir() string
	Document() *annotation.Document
	Machine() *editor.Machine
	Image() image.Image
	ImagePath() string
	Files() []string
	Index() int
}

// WorkspaceView is the file-chooser and prompt surface plus the panels
// the presenter keeps in sync.
type WorkspaceView interface {
	ChooseImageFile() (string, bool)
	ChooseDirectory() (string, bool)
	ChooseLabelsDir() (string, bool)
	ConfirmSaveBeforeSwitch(boxes int) SaveDecision
	ConfirmDelete(boxes int) bool
	SetStatus(string)
	SetImageInfo(string)
	SetFiles(names []string, index int)
	SetDrawingEnabled(bool)
}

// FrameRefresher recomposites the canvas after document changes.
type FrameRefresher interface{ Refresh() }

// WorkspacePresenter owns the file-level flows: opening images and
// directories, navigation, save and export, undo/redo and deletion.
type WorkspacePresenter struct {
	session WorkspaceSession
	cfg     *config.Config
	ws      *model.WorkspaceModel
	view    WorkspaceView
	canvas  FrameRefresher
}

// NewWorkspacePresenter returns a new WorkspacePresenter.
func NewWorkspacePresenter(s WorkspaceSession, cfg *config.Config, ws *model.WorkspaceModel, view WorkspaceView, canvas FrameRefresher) *WorkspacePresenter {
	return &WorkspacePresenter{session: s, cfg: cfg, ws: ws, view: view, canvas: canvas}
}

// OpenImage prompts for a single image file and opens it.
func (p *WorkspacePresenter) OpenImage() {
	if p == nil || p.session == nil || p.view == nil {
		return
	}
	path, ok := p.view.ChooseImageFile()
	if !ok {
		return
	}
	if !p.resolveUnsaved() {
		return
	}
	if err := p.session.OpenImage(path); err != nil {
		p.status(fmt.Sprintf("Failed to open image: %v", err))
		return
	}
	p.sync(fmt.Sprintf("Opened %s", filepath.Base(path)))
}

// OpenDirectory prompts for an image directory and opens its first image.
func (p *WorkspacePresenter) OpenDirectory() {
	if p == nil || p.session == nil || p.view == nil {
		return
	}
	dir, ok := p.view.ChooseDirectory()
	if !ok {
		return
	}
	if !p.resolveUnsaved() {
		return
	}
	if err := p.session.OpenDirectory(dir); err != nil {
		p.status(fmt.Sprintf("Failed to open directory: %v", err))
		return
	}
	p.sync(fmt.Sprintf("Loaded %d images from %s", len(p.session.Files()), filepath.Base(dir)))
}

// NextImage navigates to the next workspace image, wrapping at the end.
func (p *WorkspacePresenter) NextImage() { p.navigate(func() error { return p.session.Next() }) }

// PrevImage navigates to the previous workspace image.
func (p *WorkspacePresenter) PrevImage() { p.navigate(func() error { return p.session.Prev() }) }

func (p *WorkspacePresenter) navigate(step func() error) {
	if p == nil || p.session == nil || p.view == nil {
		return
	}
	if !p.resolveUnsaved() {
		return
	}
	if err := step(); err != nil {
		p.status(fmt.Sprintf("Failed to open image: %v", err))
		return
	}
	p.sync(fmt.Sprintf("Opened %s", filepath.Base(p.session.ImagePath())))
}

// resolveUnsaved handles unsaved changes before the document is torn
// down. With autosave on it just saves; otherwise the user chooses, and
// cancelling keeps the current image open.
func (p *WorkspacePresenter) resolveUnsaved() bool {
	doc := p.session.Document()
	if doc == nil || !p.session.Dirty() || doc.Len() == 0 {
		return true
	}
	if p.cfg != nil && p.cfg.AutosaveOnSwitch {
		if err := p.session.Save(); err != nil {
			p.status(fmt.Sprintf("Autosave failed: %v", err))
			return false
		}
		return true
	}
	switch p.view.ConfirmSaveBeforeSwitch(doc.Len()) {
	case SaveCancel:
		return false
	case SaveYes:
		if err := p.session.Save(); err != nil {
			p.status(fmt.Sprintf("Save failed: %v", err))
			return false
		}
	}
	return true
}

// Save writes the current annotations.
func (p *WorkspacePresenter) Save() {
	if p == nil || p.session == nil {
		return
	}
	if err := p.session.Save(); err != nil {
		p.status(fmt.Sprintf("Save failed: %v", err))
		return
	}
	p.sync("Annotations saved")
}

// Export writes the selected boxes (or all, with nothing selected) into
// the labels directory, prompting for one the first time. Cancelling the
// prompt abandons the export.
func (p *WorkspacePresenter) Export() {
	if p == nil || p.session == nil || p.view == nil {
		return
	}
	doc := p.session.Document()
	if doc == nil {
		return
	}
	indices := doc.Selection()
	err := p.session.Export(indices)
	if errors.Is(err, session.ErrNothingToExport) {
		p.status("Nothing to export")
		return
	}
	if errors.Is(err, session.ErrNoLabelsDir) {
		dir, ok := p.view.ChooseLabelsDir()
		if !ok {
			p.status("Export cancelled")
			return
		}
		p.session.SetLabelsDir(dir)
		err = p.session.Export(indices)
	}
	if err != nil {
		p.status(fmt.Sprintf("Export failed: %v", err))
		return
	}
	n := len(indices)
	if n == 0 {
		n = doc.Len()
	}
	p.sync(fmt.Sprintf("Exported %d annotation(s)", n))
}

// DeleteSelected removes the selected boxes after confirmation.
func (p *WorkspacePresenter) DeleteSelected() {
	if p == nil || p.session == nil || p.view == nil {
		return
	}
	doc := p.session.Document()
	if doc == nil {
		return
	}
	sel := doc.Selection()
	if len(sel) == 0 {
		p.status("Nothing selected")
		return
	}
	if !p.view.ConfirmDelete(len(sel)) {
		return
	}
	// Resolve any in-progress edit first; indices stay valid since
	// ending an edit never reorders the box sequence.
	if m := p.session.Machine(); m != nil {
		m.Abort()
	}
	if err := doc.Delete(sel); err != nil {
		p.status(fmt.Sprintf("Delete failed: %v", err))
		return
	}
	p.session.MarkDirty()
	p.sync(fmt.Sprintf("Deleted %d annotation(s)", len(sel)))
}

// Undo reverts the last committed gesture.
func (p *WorkspacePresenter) Undo() {
	if p == nil || p.session == nil {
		return
	}
	if !p.session.Undo() {
		p.status("Nothing to undo")
		return
	}
	p.sync("Undone")
}

// Redo reapplies the last undone gesture.
func (p *WorkspacePresenter) Redo() {
	if p == nil || p.session == nil {
		return
	}
	if !p.session.Redo() {
		p.status("Nothing to redo")
		return
	}
	p.sync("Redone")
}

// ToggleDrawing flips whether empty-canvas presses start a new box.
func (p *WorkspacePresenter) ToggleDrawing() {
	if p == nil || p.session == nil || p.view == nil {
		return
	}
	m := p.session.Machine()
	if m == nil {
		return
	}
	m.SetDrawingEnabled(!m.DrawingEnabled())
	p.view.SetDrawingEnabled(m.DrawingEnabled())
	if m.DrawingEnabled() {
		p.status("Drawing enabled")
	} else {
		p.status("Drawing disabled")
	}
}

// sync updates the workspace model from the session and pushes it to the
// view, then recomposites the canvas.
func (p *WorkspacePresenter) sync(statusMsg string) {
	doc := p.session.Document()
	if doc != nil {
		w, h := doc.ImageSize()
		p.ws.SetImage(filepath.Base(p.session.ImagePath()), w, h)
	}
	names := make([]string, 0, len(p.session.Files()))
	for _, f := range p.session.Files() {
		names = append(names, filepath.Base(f))
	}
	p.ws.SetFiles(names, p.session.Index())
	p.ws.SetDirty(p.session.Dirty())
	if p.view != nil {
		p.view.SetImageInfo(p.ws.ImageInfo())
		p.view.SetFiles(names, p.session.Index())
	}
	p.status(statusMsg)
	if p.canvas != nil {
		p.canvas.Refresh()
	}
}

func (p *WorkspacePresenter) status(msg string) {
	p.ws.SetStatus(msg)
	if p.view != nil {
		p.view.SetStatus(msg)
	}
}
