package app

import (
	"fmt"
	"log/slog"
	"time"

	. "modernc.org/tk9.0"

	"github.com/Ahmed-Fekry07/YOLO-Annotator/config"
	"github.com/Ahmed-Fekry07/YOLO-Annotator/debug"
	"github.com/Ahmed-Fekry07/YOLO-Annotator/domain/editor"
	"github.com/Ahmed-Fekry07/YOLO-Annotator/ui/presenter"
	"github.com/Ahmed-Fekry07/YOLO-Annotator/ui/theme"
	"github.com/Ahmed-Fekry07/YOLO-Annotator/ui/view"
)

const debugStatsInterval = 5 * time.Second

type app struct {
	config    *config.Config
	logger    *slog.Logger
	container *AppContainer
}

// NewApp prepares the Tk root window and assembles the container.
func NewApp(title string, width, height int, cfg *config.Config, logger *slog.Logger) *app {
	a := &app{config: cfg, logger: logger}
	a.container = BuildContainer(cfg, logger)

	App.WmTitle(title)
	WmProtocol(App, "WM_DELETE_WINDOW", a.exitHandler)
	WmGeometry(App, fmt.Sprintf("%dx%d+100+100", width, height))
	return a
}

// Start builds the widget tree, wires the presenters and enters the Tk
// event loop. It blocks until the window is closed.
func (a *app) Start() {
	theme.InitStyles()

	c := a.container
	c.RootView.Build(view.WorkspaceHandlers{
		OnOpenImage:     c.WorkspacePresenter.OpenImage,
		OnOpenDirectory: c.WorkspacePresenter.OpenDirectory,
		OnPrev:          c.WorkspacePresenter.PrevImage,
		OnNext:          c.WorkspacePresenter.NextImage,
		OnSave:          c.WorkspacePresenter.Save,
		OnExport:        c.WorkspacePresenter.Export,
		OnUndo: func() {
			c.WorkspacePresenter.Undo()
			c.ClassPresenter.Reload()
		},
		OnRedo: func() {
			c.WorkspacePresenter.Redo()
			c.ClassPresenter.Reload()
		},
		OnDelete:     c.WorkspacePresenter.DeleteSelected,
		OnToggleDraw: c.WorkspacePresenter.ToggleDrawing,
		OnExit:       a.exitHandler,
	}, view.ClassPanelHandlers{
		OnAdd:         c.ClassPresenter.AddClass,
		OnRemove:      c.ClassPresenter.RemoveSelected,
		OnSelect:      c.ClassPresenter.SelectRow,
		OnSaveClasses: c.ClassPresenter.SaveClasses,
	})
	c.RootView.SetPointerHandlers(
		func(x, y float64) { c.CanvasPresenter.PointerPress(x, y, editor.ButtonLeft) },
		c.CanvasPresenter.PointerMove,
		c.CanvasPresenter.PointerRelease,
	)
	c.ClassPresenter.Reload()
	c.CanvasPresenter.Refresh()

	if a.config.Debug {
		debug.StartGoroutineLogger(debugStatsInterval, a.logger)
		debug.StartMemLogger(debugStatsInterval, a.logger)
	}

	App.Wait()
}

// exitHandler resolves unsaved changes and tears the window down.
// Cancelling the save prompt keeps the application running.
func (a *app) exitHandler() {
	c := a.container
	if doc := c.Session.Document(); doc != nil && c.Session.Dirty() && doc.Len() > 0 {
		if a.config.AutosaveOnSwitch {
			if err := c.Session.Save(); err != nil {
				a.logger.Error("save on exit failed", "error", err)
			}
		} else {
			switch c.RootView.ConfirmSaveBeforeSwitch(doc.Len()) {
			case presenter.SaveCancel:
				return
			case presenter.SaveYes:
				if err := c.Session.Save(); err != nil {
					a.logger.Error("save on exit failed", "error", err)
					return
				}
			}
		}
	}
	c.Session.Close()
	Destroy(App)
}
