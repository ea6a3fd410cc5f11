package app

import (
	"log/slog"

	"github.com/Ahmed-Fekry07/YOLO-Annotator/config"
	"github.com/Ahmed-Fekry07/YOLO-Annotator/domain/session"
	"github.com/Ahmed-Fekry07/YOLO-Annotator/ui/model"
	"github.com/Ahmed-Fekry07/YOLO-Annotator/ui/presenter"
	"github.com/Ahmed-Fekry07/YOLO-Annotator/ui/view"
)

// AppContainer assembles the session, models, presenters and the root view.
type AppContainer struct {
	Config    *config.Config
	Logger    *slog.Logger
	Session   *session.Session
	Workspace *model.WorkspaceModel
	Classes   *model.ClassModel
	RootView  *view.RootView
	UI        view.UI

	// Presenters
	CanvasPresenter    *presenter.CanvasPresenter
	WorkspacePresenter *presenter.WorkspacePresenter
	ClassPresenter     *presenter.ClassPresenter
}

// BuildContainer constructs all components. The view widgets themselves are
// built later by the app wrapper, after the Tk root window exists.
func BuildContainer(cfg *config.Config, logger *slog.Logger) *AppContainer {
	c := &AppContainer{Config: cfg, Logger: logger}
	c.Session = session.NewSession(cfg, logger)
	c.Workspace = model.NewWorkspaceModel()
	c.Classes = model.NewClassModel()
	c.RootView = view.NewRootView(cfg, logger)
	c.UI = c.RootView

	c.CanvasPresenter = presenter.NewCanvasPresenter(c.Session, c.RootView, cfg.PreviewWidth, cfg.PreviewHeight)
	c.WorkspacePresenter = presenter.NewWorkspacePresenter(c.Session, cfg, c.Workspace, c.RootView, c.CanvasPresenter)
	c.ClassPresenter = presenter.NewClassPresenter(c.Session, c.Classes, c.RootView, c.CanvasPresenter)
	return c
}
