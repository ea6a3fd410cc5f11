package view

import (
	"log/slog"

	"github.com/Ahmed-Fekry07/YOLO-Annotator/config"
	"github.com/Ahmed-Fekry07/YOLO-Annotator/ui/presenter"
)

// RootView composes the top-level application layout and wires UI callbacks.
// It owns high-level subviews but exposes minimal exported fields for presenters.
type RootView struct {
	cfg    *config.Config
	logger *slog.Logger

	// Subviews
	Canvas    CanvasView
	Workspace WorkspacePanel
	Classes   ClassPanel
}

// UI abstracts the subset of view operations needed by presenters, enabling
// decoupling from the concrete RootView implementation.
type UI interface {
	presenter.WorkspaceView
	presenter.ClassView
	SetFrame(png []byte)
	SetPointerHandlers(press, move, release PointerHandler)
}

func NewRootView(cfg *config.Config, logger *slog.Logger) *RootView {
	return &RootView{cfg: cfg, logger: logger}
}

// Build constructs the layout: the canvas on the left, the workspace panel
// in the middle columns and the class panel on the right. Handlers are
// invoked on user actions.
func (rv *RootView) Build(workspace WorkspaceHandlers, classes ClassPanelHandlers) {
	if rv == nil {
		return
	}
	rv.Canvas = NewCanvasView(0, 0, rv.cfg.PreviewWidth, rv.cfg.PreviewHeight)
	rv.Workspace = NewWorkspacePanel(workspace)
	rv.Workspace.Build(0, 1)
	rv.Classes = NewClassPanel(classes, func(msg string) { rv.SetStatus(msg) })
	rv.Classes.Build(0, 3)
}

// --- CanvasPresenter view contract methods ---

// SetFrame proxies to the canvas subview.
func (rv *RootView) SetFrame(png []byte) {
	if rv != nil && rv.Canvas != nil {
		rv.Canvas.SetFrame(png)
	}
}

// SetPointerHandlers proxies to the canvas subview.
func (rv *RootView) SetPointerHandlers(press, move, release PointerHandler) {
	if rv != nil && rv.Canvas != nil {
		rv.Canvas.SetPointerHandlers(press, move, release)
	}
}

// --- WorkspacePresenter view contract methods ---

func (rv *RootView) ChooseImageFile() (string, bool) {
	if rv == nil || rv.Workspace == nil {
		return "", false
	}
	return rv.Workspace.ChooseImageFile()
}

func (rv *RootView) ChooseDirectory() (string, bool) {
	if rv == nil || rv.Workspace == nil {
		return "", false
	}
	return rv.Workspace.ChooseDirectory()
}

func (rv *RootView) ChooseLabelsDir() (string, bool) {
	if rv == nil || rv.Workspace == nil {
		return "", false
	}
	return rv.Workspace.ChooseLabelsDir()
}

func (rv *RootView) ConfirmSaveBeforeSwitch(boxes int) presenter.SaveDecision {
	if rv == nil || rv.Workspace == nil {
		return presenter.SaveCancel
	}
	return rv.Workspace.ConfirmSaveBeforeSwitch(boxes)
}

func (rv *RootView) ConfirmDelete(boxes int) bool {
	if rv == nil || rv.Workspace == nil {
		return false
	}
	return rv.Workspace.ConfirmDelete(boxes)
}

// SetStatus updates the shared status line.
func (rv *RootView) SetStatus(msg string) {
	if rv != nil && rv.Workspace != nil {
		rv.Workspace.SetStatus(msg)
	}
}

func (rv *RootView) SetImageInfo(info string) {
	if rv != nil && rv.Workspace != nil {
		rv.Workspace.SetImageInfo(info)
	}
}

func (rv *RootView) SetFiles(names []string, index int) {
	if rv != nil && rv.Workspace != nil {
		rv.Workspace.SetFiles(names, index)
	}
}

func (rv *RootView) SetDrawingEnabled(enabled bool) {
	if rv != nil && rv.Workspace != nil {
		rv.Workspace.SetDrawingEnabled(enabled)
	}
}

// --- ClassPresenter view contract methods ---

func (rv *RootView) SetClasses(rows []string, selected int) {
	if rv != nil && rv.Classes != nil {
		rv.Classes.SetClasses(rows, selected)
	}
}

func (rv *RootView) ConfirmCascadeDelete(name string, boxes int) bool {
	if rv == nil || rv.Classes == nil {
		return false
	}
	return rv.Classes.ConfirmCascadeDelete(name, boxes)
}

func (rv *RootView) ChooseClassFile() (string, bool) {
	if rv == nil || rv.Classes == nil {
		return "", false
	}
	return rv.Classes.ChooseClassFile()
}
