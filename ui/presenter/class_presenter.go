package presenter

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/Ahmed-Fekry07/YOLO-Annotator/domain/annotation"
	"github.com/Ahmed-Fekry07/YOLO-Annotator/ui/model"
)

// ClassSession narrows what the class presenter needs from the session.
type ClassSession interface {
	Registry() *annotation.ClassRegistry
	Document() *annotation.Document
	AddClass(int, string, *annotation.Color) error
	RemoveClass(int, bool) ([]int, error)
	SaveClasses(string) error
}

// ClassView is the class panel surface.
type ClassView interface {
	SetClasses(rows []string, selected int)
	ConfirmCascadeDelete(name string, boxes int) bool
	ChooseClassFile() (string, bool)
	SetStatus(string)
}

// ClassPresenter owns class management: adding, removing with the
// cascade-delete choice, row selection driving the active class, and the
// class file save flow.
type ClassPresenter struct {
	session ClassSession
	classes *model.ClassModel
	view    ClassView
	canvas  FrameRefresher
}

// NewClassPresenter returns a new ClassPresenter.
func NewClassPresenter(s ClassSession, classes *model.ClassModel, view ClassView, canvas FrameRefresher) *ClassPresenter {
	return &ClassPresenter{session: s, classes: classes, view: view, canvas: canvas}
}

// AddClass registers a class under the given name. An empty id text picks
// the next free id; an explicit one allows sparse numbering.
func (p *ClassPresenter) AddClass(name, idText string) {
	if p == nil || p.session == nil || p.view == nil {
		return
	}
	name = strings.TrimSpace(name)
	if name == "" {
		p.view.SetStatus("Class name is empty")
		return
	}
	reg := p.session.Registry()
	id := reg.NextID()
	if t := strings.TrimSpace(idText); t != "" {
		parsed, err := strconv.Atoi(t)
		if err != nil || parsed < 0 {
			p.view.SetStatus(fmt.Sprintf("Invalid class id %q", t))
			return
		}
		id = parsed
	}
	if err := p.session.AddClass(id, name, nil); err != nil {
		p.view.SetStatus(fmt.Sprintf("Add class failed: %v", err))
		return
	}
	p.reload()
	p.selectID(id)
	p.view.SetStatus(fmt.Sprintf("Added class [%d] %s", id, name))
}

// RemoveSelected removes the selected class. When boxes reference it the
// user chooses between cascade-deleting them and keeping them with a
// dangling id.
func (p *ClassPresenter) RemoveSelected() {
	if p == nil || p.session == nil || p.view == nil {
		return
	}
	id, ok := p.classes.SelectedID()
	if !ok {
		p.view.SetStatus("No class selected")
		return
	}
	name := p.session.Registry().DisplayName(id)
	cascade := false
	if doc := p.session.Document(); doc != nil {
		if n := len(doc.BoxesWithClass(id)); n > 0 {
			cascade = p.view.ConfirmCascadeDelete(name, n)
		}
	}
	orphans, err := p.session.RemoveClass(id, cascade)
	if err != nil {
		p.view.SetStatus(fmt.Sprintf("Remove class failed: %v", err))
		return
	}
	p.reload()
	p.applyCurrent()
	if p.canvas != nil {
		p.canvas.Refresh()
	}
	if cascade {
		p.view.SetStatus(fmt.Sprintf("Removed class %s and %d annotation(s)", name, len(orphans)))
	} else {
		p.view.SetStatus(fmt.Sprintf("Removed class %s", name))
	}
}

// SelectRow makes the clicked row the active class for new boxes.
func (p *ClassPresenter) SelectRow(row int) {
	if p == nil || p.classes == nil {
		return
	}
	if !p.classes.Select(row) {
		return
	}
	p.applyCurrent()
}

// SaveClasses prompts for a class file path and writes the registry.
func (p *ClassPresenter) SaveClasses() {
	if p == nil || p.session == nil || p.view == nil {
		return
	}
	if p.session.Registry().Len() == 0 {
		p.view.SetStatus("No classes to save")
		return
	}
	path, ok := p.view.ChooseClassFile()
	if !ok {
		return
	}
	if err := p.session.SaveClasses(path); err != nil {
		p.view.SetStatus(fmt.Sprintf("Save classes failed: %v", err))
		return
	}
	p.view.SetStatus(fmt.Sprintf("Saved %d classes", p.session.Registry().Len()))
}

// Reload rebuilds the class rows from the registry and reapplies the
// active class, for callers outside the panel (directory open).
func (p *ClassPresenter) Reload() {
	if p == nil {
		return
	}
	p.reload()
	p.applyCurrent()
}

func (p *ClassPresenter) reload() {
	p.classes.Reload(p.session.Registry())
	p.pushRows()
}

func (p *ClassPresenter) pushRows() {
	if p.view == nil {
		return
	}
	selected := -1
	if id, ok := p.classes.SelectedID(); ok {
		for i := 0; i < p.classes.Len(); i++ {
			if rid, _ := p.classes.IDAt(i); rid == id {
				selected = i
				break
			}
		}
	}
	p.view.SetClasses(p.classes.Rows(), selected)
}

func (p *ClassPresenter) selectID(id int) {
	for i := 0; i < p.classes.Len(); i++ {
		if rid, ok := p.classes.IDAt(i); ok && rid == id {
			p.classes.Select(i)
			break
		}
	}
	p.applyCurrent()
	p.pushRows()
}

// applyCurrent propagates the selected class into the document as the
// class for newly drawn boxes.
func (p *ClassPresenter) applyCurrent() {
	doc := p.session.Document()
	if doc == nil {
		return
	}
	if id, ok := p.classes.SelectedID(); ok {
		name, _ := p.classes.SelectedName()
		doc.SetCurrentClass(id, name, nil)
	}
}
