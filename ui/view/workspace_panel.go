package view

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/Ahmed-Fekry07/YOLO-Annotator/ui/presenter"

	//lint:ignore ST1001 Dot import is intentional for concise Tk widget DSL builders.
	. "modernc.org/tk9.0"
)

// WorkspaceHandlers are the callbacks the workspace widgets invoke.
type WorkspaceHandlers struct {
	OnOpenImage     func()
	OnOpenDirectory func()
	OnPrev          func()
	OnNext          func()
	OnSave          func()
	OnExport        func()
	OnUndo          func()
	OnRedo          func()
	OnDelete        func()
	OnToggleDraw    func()
	OnExit          func()
}

// WorkspacePanel is the file handling surface: path entries standing in
// for file choosers, the toolbar, the workspace file list and the status
// line. Destructive actions arm on first click and run on the second.
type WorkspacePanel interface {
	ChooseImageFile() (string, bool)
	ChooseDirectory() (string, bool)
	ChooseLabelsDir() (string, bool)
	ConfirmSaveBeforeSwitch(boxes int) presenter.SaveDecision
	ConfirmDelete(boxes int) bool
	SetStatus(string)
	SetImageInfo(string)
	SetFiles(names []string, index int)
	SetDrawingEnabled(bool)
	Build(startRow, column int) (endRow int)
}

const (
	switchSave    = "save"
	switchDiscard = "discard"
)

type workspacePanel struct {
	handlers WorkspaceHandlers

	pathEntry   *TextWidget
	labelsEntry *TextWidget
	switchMode  *TComboboxWidget
	statusLabel *LabelWidget
	imageLabel  *LabelWidget
	filesText   *TextWidget
	drawBtn     *ButtonWidget
	deleteBtn   *ButtonWidget

	deleteArmed bool
}

// NewWorkspacePanel creates the panel.
func NewWorkspacePanel(handlers WorkspaceHandlers) WorkspacePanel {
	return &workspacePanel{handlers: handlers}
}

func (v *workspacePanel) Build(startRow, column int) (row int) {
	row = startRow

	pathLbl := Label(Txt("Image or directory path"), Anchor("w"))
	Grid(pathLbl, Row(row), Column(column), Columnspan(2), Sticky("w"), Padx("0.4m"), Pady("0.15m"))
	row++
	v.pathEntry = Text(Height(1), Width(42))
	Grid(v.pathEntry, Row(row), Column(column), Columnspan(2), Sticky("we"), Padx("0.4m"), Pady("0.15m"))
	row++

	btn := func(col int, label string, cb func()) {
		b := Button(Txt(label), Command(func() {
			if cb != nil {
				cb()
			}
		}))
		Grid(b, Row(row), Column(column+col), Sticky("we"), Padx("0.2m"), Pady("0.2m"))
	}
	btn(0, "Open Image", v.handlers.OnOpenImage)
	btn(1, "Open Directory", v.handlers.OnOpenDirectory)
	row++
	btn(0, "Prev", v.handlers.OnPrev)
	btn(1, "Next", v.handlers.OnNext)
	row++
	btn(0, "Save", v.handlers.OnSave)
	btn(1, "Export Selected", v.handlers.OnExport)
	row++
	btn(0, "Undo", v.handlers.OnUndo)
	btn(1, "Redo", v.handlers.OnRedo)
	row++

	v.deleteBtn = Button(Txt("Delete Selected"), Command(func() {
		if v.handlers.OnDelete != nil {
			v.handlers.OnDelete()
		}
	}))
	Grid(v.deleteBtn, Row(row), Column(column), Sticky("we"), Padx("0.2m"), Pady("0.2m"))
	v.drawBtn = Button(Txt("Drawing: on"), Command(func() {
		if v.handlers.OnToggleDraw != nil {
			v.handlers.OnToggleDraw()
		}
	}))
	Grid(v.drawBtn, Row(row), Column(column+1), Sticky("we"), Padx("0.2m"), Pady("0.2m"))
	row++

	labelsLbl := Label(Txt("Labels directory (blank = next to image)"), Anchor("w"))
	Grid(labelsLbl, Row(row), Column(column), Columnspan(2), Sticky("w"), Padx("0.4m"), Pady("0.15m"))
	row++
	v.labelsEntry = Text(Height(1), Width(42))
	Grid(v.labelsEntry, Row(row), Column(column), Columnspan(2), Sticky("we"), Padx("0.4m"), Pady("0.15m"))
	row++

	switchLbl := Label(Txt("On image switch"), Anchor("w"))
	Grid(switchLbl, Row(row), Column(column), Sticky("w"), Padx("0.4m"), Pady("0.15m"))
	v.switchMode = TCombobox(Values([]string{switchSave, switchDiscard}), Width(12))
	Grid(v.switchMode, Row(row), Column(column+1), Sticky("we"), Padx("0.4m"), Pady("0.15m"))
	v.switchMode.Current(0)
	row++

	v.imageLabel = Label(Txt("No image"), Borderwidth(1), Relief("ridge"))
	Grid(v.imageLabel, Row(row), Column(column), Columnspan(2), Sticky("we"), Padx("0.4m"), Pady("0.3m"))
	row++

	filesLbl := Label(Txt("Workspace"), Anchor("w"))
	Grid(filesLbl, Row(row), Column(column), Columnspan(2), Sticky("w"), Padx("0.4m"), Pady("0.15m"))
	row++
	v.filesText = Text(Height(8), Width(42))
	Grid(v.filesText, Row(row), Column(column), Columnspan(2), Sticky("we"), Padx("0.4m"), Pady("0.15m"))
	row++

	v.statusLabel = Label(Txt("Ready"), Borderwidth(1), Relief("sunken"), Anchor("w"))
	Grid(v.statusLabel, Row(row), Column(column), Columnspan(2), Sticky("we"), Padx("0.4m"), Pady("0.3m"))
	row++

	exitBtn := Button(Txt("Exit"), Command(func() {
		if v.handlers.OnExit != nil {
			v.handlers.OnExit()
		}
	}))
	Grid(exitBtn, Row(row), Column(column), Columnspan(2), Sticky("we"), Padx("0.2m"), Pady("0.2m"))
	row++
	return row
}

func (v *workspacePanel) entryPath(w *TextWidget, hint string) (string, bool) {
	if v == nil || w == nil {
		return "", false
	}
	path := strings.TrimSpace(w.Get("1.0", END)[0])
	if path == "" {
		v.SetStatus(hint)
		return "", false
	}
	return path, true
}

// ChooseImageFile reads the path entry; an empty entry cancels.
func (v *workspacePanel) ChooseImageFile() (string, bool) {
	return v.entryPath(v.pathEntry, "Enter an image path first")
}

// ChooseDirectory reads the path entry; an empty entry cancels.
func (v *workspacePanel) ChooseDirectory() (string, bool) {
	return v.entryPath(v.pathEntry, "Enter a directory path first")
}

// ChooseLabelsDir reads the labels directory entry. Leaving it empty
// cancels, which abandons the export that asked for it.
func (v *workspacePanel) ChooseLabelsDir() (string, bool) {
	return v.entryPath(v.labelsEntry, "Enter a labels directory first")
}

// ConfirmSaveBeforeSwitch answers from the persistent switch-mode
// dropdown instead of a popup.
func (v *workspacePanel) ConfirmSaveBeforeSwitch(boxes int) presenter.SaveDecision {
	if v == nil || v.switchMode == nil {
		return presenter.SaveCancel
	}
	idx, err := strconv.Atoi(v.switchMode.Current(nil))
	if err != nil {
		return presenter.SaveCancel
	}
	if idx == 1 {
		return presenter.SaveNo
	}
	return presenter.SaveYes
}

// ConfirmDelete arms on the first call and confirms on the second, so a
// stray click never deletes anything.
func (v *workspacePanel) ConfirmDelete(boxes int) bool {
	if !v.deleteArmed {
		v.deleteArmed = true
		v.SetStatus(fmt.Sprintf("Click Delete again to remove %d annotation(s)", boxes))
		return false
	}
	v.deleteArmed = false
	return true
}

// SetStatus updates the status line. Any pending delete confirmation is
// disarmed by unrelated activity.
func (v *workspacePanel) SetStatus(msg string) {
	if v == nil || v.statusLabel == nil {
		return
	}
	if !strings.HasPrefix(msg, "Click Delete again") {
		v.deleteArmed = false
	}
	v.statusLabel.Configure(Txt(msg))
}

// SetImageInfo updates the image info label.
func (v *workspacePanel) SetImageInfo(info string) {
	if v == nil || v.imageLabel == nil {
		return
	}
	if info == "" {
		info = "No image"
	}
	v.imageLabel.Configure(Txt(info))
}

// SetFiles rewrites the workspace list, marking the open image.
func (v *workspacePanel) SetFiles(names []string, index int) {
	if v == nil || v.filesText == nil {
		return
	}
	var sb strings.Builder
	for i, n := range names {
		if i == index {
			sb.WriteString("> ")
		} else {
			sb.WriteString("  ")
		}
		sb.WriteString(n)
		sb.WriteByte('\n')
	}
	v.filesText.Delete("1.0", END)
	v.filesText.Insert("1.0", sb.String())
}

// SetDrawingEnabled updates the draw toggle button caption.
func (v *workspacePanel) SetDrawingEnabled(enabled bool) {
	if v == nil || v.drawBtn == nil {
		return
	}
	if enabled {
		v.drawBtn.Configure(Txt("Drawing: on"))
	} else {
		v.drawBtn.Configure(Txt("Drawing: off"))
	}
}
