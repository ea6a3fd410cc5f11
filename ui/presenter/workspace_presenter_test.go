package presenter

import (
	"image"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Ahmed-Fekry07/YOLO-Annotator/domain/annotation"
	"github.com/Ahmed-Fekry07/YOLO-Annotator/domain/session"
	"github.com/Ahmed-Fekry07/YOLO-Annotator/ui/model"
)

type wsViewStub struct {
	imagePath string
	imageOK   bool
	dirPath   string
	dirOK     bool
	labelsDir     string
	labelsOK      bool
	labelsPrompts int

	saveDecision  SaveDecision
	confirmDelete bool

	statuses  []string
	imageInfo string
	files     []string
	index     int
	drawing   bool
}

func (v *wsViewStub) ChooseImageFile() (string, bool)  { return v.imagePath, v.imageOK }
func (v *wsViewStub) ChooseDirectory() (string, bool)  { return v.dirPath, v.dirOK }
func (v *wsViewStub) ChooseLabelsDir() (string, bool) {
	v.labelsPrompts++
	return v.labelsDir, v.labelsOK
}
func (v *wsViewStub) ConfirmSaveBeforeSwitch(int) SaveDecision {
	return v.saveDecision
}
func (v *wsViewStub) ConfirmDelete(int) bool        { return v.confirmDelete }
func (v *wsViewStub) SetStatus(s string)            { v.statuses = append(v.statuses, s) }
func (v *wsViewStub) SetImageInfo(s string)         { v.imageInfo = s }
func (v *wsViewStub) SetFiles(n []string, i int)    { v.files, v.index = n, i }
func (v *wsViewStub) SetDrawingEnabled(b bool)      { v.drawing = b }

func (v *wsViewStub) lastStatus() string {
	if len(v.statuses) == 0 {
		return ""
	}
	return v.statuses[len(v.statuses)-1]
}

func writeTestPNG(t *testing.T, path string, w, h int) {
	t.Helper()
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	defer f.Close()
	if err := png.Encode(f, image.NewRGBA(image.Rect(0, 0, w, h))); err != nil {
		t.Fatalf("encode: %v", err)
	}
}

func drawOne(t *testing.T, s *session.Session, x1, y1, x2, y2 float64) {
	t.Helper()
	doc := s.Document()
	doc.BeginDraw(annotation.Point{X: x1, Y: y1})
	doc.UpdateDraw(annotation.Point{X: x2, Y: y2})
	if _, ok := doc.CommitDraw(); !ok {
		t.Fatal("draw discarded")
	}
	s.MarkDirty()
}

func newWorkspaceFixture(t *testing.T) (*WorkspacePresenter, *session.Session, *wsViewStub, string) {
	t.Helper()
	dir := t.TempDir()
	writeTestPNG(t, filepath.Join(dir, "a.png"), 100, 100)
	writeTestPNG(t, filepath.Join(dir, "b.png"), 100, 100)
	s := session.NewSession(nil, nil)
	view := &wsViewStub{}
	p := NewWorkspacePresenter(s, nil, model.NewWorkspaceModel(), view, nil)
	return p, s, view, dir
}

func TestWorkspacePresenter_OpenDirectory(t *testing.T) {
	p, s, view, dir := newWorkspaceFixture(t)
	view.dirPath, view.dirOK = dir, true
	p.OpenDirectory()
	if filepath.Base(s.ImagePath()) != "a.png" {
		t.Fatalf("open image = %s", s.ImagePath())
	}
	if len(view.files) != 2 || view.files[0] != "a.png" {
		t.Fatalf("view files = %v", view.files)
	}
	if view.imageInfo != "a.png (100x100)" {
		t.Fatalf("image info = %q", view.imageInfo)
	}
}

func TestWorkspacePresenter_CancelledChooserIsNoOp(t *testing.T) {
	p, s, view, _ := newWorkspaceFixture(t)
	view.imageOK = false
	p.OpenImage()
	if s.Document() != nil || len(view.statuses) != 0 {
		t.Fatalf("cancelled chooser had effect: %v", view.statuses)
	}
}

func TestWorkspacePresenter_SwitchPromptCancelBlocks(t *testing.T) {
	p, s, view, dir := newWorkspaceFixture(t)
	view.dirPath, view.dirOK = dir, true
	p.OpenDirectory()
	drawOne(t, s, 10, 10, 60, 60)

	view.saveDecision = SaveCancel
	p.NextImage()
	if filepath.Base(s.ImagePath()) != "a.png" {
		t.Fatalf("cancel did not block the switch: %s", s.ImagePath())
	}
	// The unsaved document is untouched.
	if s.Document().Len() != 1 {
		t.Fatalf("len = %d", s.Document().Len())
	}
}

func TestWorkspacePresenter_SwitchPromptYesSaves(t *testing.T) {
	p, s, view, dir := newWorkspaceFixture(t)
	view.dirPath, view.dirOK = dir, true
	p.OpenDirectory()
	s.Document().SetCurrentClass(0, "fish", nil)
	drawOne(t, s, 10, 10, 60, 60)

	view.saveDecision = SaveYes
	p.NextImage()
	if filepath.Base(s.ImagePath()) != "b.png" {
		t.Fatalf("switch failed: %s", s.ImagePath())
	}
	if _, err := os.Stat(filepath.Join(dir, "a.txt")); err != nil {
		t.Fatalf("annotations not saved before switch: %v", err)
	}
}

func TestWorkspacePresenter_ExportCancelledPromptAborts(t *testing.T) {
	p, s, view, dir := newWorkspaceFixture(t)
	view.imagePath, view.imageOK = filepath.Join(dir, "a.png"), true
	p.OpenImage()
	s.Document().SetCurrentClass(0, "fish", nil)
	drawOne(t, s, 10, 10, 60, 60)

	// No labels directory chosen and the prompt is cancelled: the export
	// is abandoned outright.
	view.labelsOK = false
	p.Export()
	if view.lastStatus() != "Export cancelled" {
		t.Fatalf("status = %q", view.lastStatus())
	}
	if s.LabelsDir() != "" {
		t.Fatal("labels dir set despite cancelled prompt")
	}
}

func TestWorkspacePresenter_ExportPromptsOnce(t *testing.T) {
	p, s, view, dir := newWorkspaceFixture(t)
	view.imagePath, view.imageOK = filepath.Join(dir, "a.png"), true
	p.OpenImage()
	s.Document().SetCurrentClass(0, "fish", nil)
	drawOne(t, s, 10, 10, 60, 60)

	labels := filepath.Join(dir, "labels")
	view.labelsDir, view.labelsOK = labels, true
	p.Export()
	if _, err := os.Stat(filepath.Join(labels, "a.txt")); err != nil {
		t.Fatalf("export file: %v", err)
	}
	if !strings.HasPrefix(view.lastStatus(), "Exported 1") {
		t.Fatalf("status = %q", view.lastStatus())
	}
	if s.LabelsDir() != labels {
		t.Fatalf("labels dir = %q", s.LabelsDir())
	}
}

func TestWorkspacePresenter_ExportEmptyDocument(t *testing.T) {
	p, s, view, dir := newWorkspaceFixture(t)
	view.imagePath, view.imageOK = filepath.Join(dir, "a.png"), true
	p.OpenImage()

	// Nothing drawn: the export is refused before any labels-dir prompt
	// and no file is written.
	view.labelsDir, view.labelsOK = filepath.Join(dir, "labels"), true
	p.Export()
	if view.lastStatus() != "Nothing to export" {
		t.Fatalf("status = %q", view.lastStatus())
	}
	if view.labelsPrompts != 0 {
		t.Fatalf("labels-dir prompts = %d, want 0", view.labelsPrompts)
	}
	if s.LabelsDir() != "" {
		t.Fatalf("labels dir = %q", s.LabelsDir())
	}
}

func TestWorkspacePresenter_DeleteSelected(t *testing.T) {
	p, s, view, dir := newWorkspaceFixture(t)
	view.imagePath, view.imageOK = filepath.Join(dir, "a.png"), true
	p.OpenImage()
	s.Document().SetCurrentClass(0, "fish", nil)
	drawOne(t, s, 10, 10, 60, 60)
	drawOne(t, s, 20, 20, 80, 80)
	if err := s.Document().Select(0); err != nil {
		t.Fatalf("Select: %v", err)
	}

	view.confirmDelete = false
	p.DeleteSelected()
	if s.Document().Len() != 2 {
		t.Fatal("declined confirm deleted anyway")
	}

	_ = s.Document().Select(0)
	view.confirmDelete = true
	p.DeleteSelected()
	if s.Document().Len() != 1 {
		t.Fatalf("len = %d after delete", s.Document().Len())
	}
}

func TestWorkspacePresenter_UndoRedoStatus(t *testing.T) {
	p, s, view, dir := newWorkspaceFixture(t)
	view.imagePath, view.imageOK = filepath.Join(dir, "a.png"), true
	p.OpenImage()

	p.Undo()
	if view.lastStatus() != "Nothing to undo" {
		t.Fatalf("status = %q", view.lastStatus())
	}
	drawOne(t, s, 10, 10, 60, 60)
	p.Undo()
	if s.Document().Len() != 0 {
		t.Fatal("undo had no effect")
	}
	p.Redo()
	if s.Document().Len() != 1 {
		t.Fatal("redo had no effect")
	}
}

func TestWorkspacePresenter_ToggleDrawing(t *testing.T) {
	p, s, view, dir := newWorkspaceFixture(t)
	view.imagePath, view.imageOK = filepath.Join(dir, "a.png"), true
	p.OpenImage()

	p.ToggleDrawing()
	if s.Machine().DrawingEnabled() || view.drawing {
		t.Fatal("toggle did not disable drawing")
	}
	p.ToggleDrawing()
	if !s.Machine().DrawingEnabled() || !view.drawing {
		t.Fatal("toggle did not re-enable drawing")
	}
}
