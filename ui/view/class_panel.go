package view

import (
	"fmt"
	"strconv"
	"strings"

	//lint:ignore ST1001 Dot import is intentional for concise Tk widget DSL builders.
	. "modernc.org/tk9.0"
)

// ClassPanelHandlers are the callbacks the panel's widgets invoke.
type ClassPanelHandlers struct {
	OnAdd         func(name, idText string)
	OnRemove      func()
	OnSelect      func(row int)
	OnSaveClasses func()
}

// ClassPanel is the class management surface: the class dropdown, the
// add-class entries, and the remove/save buttons. The cascade choice is a
// persistent mode dropdown instead of a per-removal popup.
type ClassPanel interface {
	SetClasses(rows []string, selected int)
	ConfirmCascadeDelete(name string, boxes int) bool
	ChooseClassFile() (string, bool)
	Build(startRow, column int) (endRow int)
}

type classPanel struct {
	handlers ClassPanelHandlers
	status   func(string)

	classSelect *TComboboxWidget
	nameEntry   *TextWidget
	idEntry     *TextWidget
	fileEntry   *TextWidget
	cascadeMode *TComboboxWidget
	rows        []string
}

const (
	cascadeDeleteBoxes = "delete boxes"
	cascadeKeepBoxes   = "keep boxes"
)

// NewClassPanel creates the panel. status receives user-facing messages.
func NewClassPanel(handlers ClassPanelHandlers, status func(string)) ClassPanel {
	return &classPanel{handlers: handlers, status: status}
}

func (v *classPanel) Build(startRow, column int) (row int) {
	row = startRow
	header := Label(Txt("Classes"), Anchor("w"))
	Grid(header, Row(row), Column(column), Sticky("we"), Padx("0.4m"), Pady("0.3m"))
	row++

	v.classSelect = TCombobox(Values([]string{"<none>"}), Width(26))
	Grid(v.classSelect, Row(row), Column(column), Sticky("we"), Padx("0.4m"), Pady("0.15m"))
	v.classSelect.Current(0)
	Bind(v.classSelect, "<<ComboboxSelected>>", Command(func() {
		if v.classSelect == nil || v.handlers.OnSelect == nil {
			return
		}
		idx, err := strconv.Atoi(v.classSelect.Current(nil))
		if err == nil && idx >= 0 && idx < len(v.rows) {
			v.handlers.OnSelect(idx)
		}
	}))
	row++

	makeEntry := func(label string) *TextWidget {
		lbl := Label(Txt(label), Anchor("w"))
		Grid(lbl, Row(row), Column(column), Sticky("w"), Padx("0.4m"), Pady("0.15m"))
		row++
		w := Text(Height(1), Width(20))
		Grid(w, Row(row), Column(column), Sticky("we"), Padx("0.4m"), Pady("0.15m"))
		row++
		return w
	}
	v.nameEntry = makeEntry("New class name")
	v.idEntry = makeEntry("Class id (blank = next free)")

	addBtn := Button(Txt("Add Class"), Command(func() {
		if v.handlers.OnAdd == nil {
			return
		}
		name := strings.TrimSpace(v.nameEntry.Get("1.0", END)[0])
		id := strings.TrimSpace(v.idEntry.Get("1.0", END)[0])
		v.handlers.OnAdd(name, id)
		v.nameEntry.Delete("1.0", END)
		v.idEntry.Delete("1.0", END)
	}))
	Grid(addBtn, Row(row), Column(column), Sticky("we"), Padx("0.4m"), Pady("0.2m"))
	row++

	modeLbl := Label(Txt("On class remove"), Anchor("w"))
	Grid(modeLbl, Row(row), Column(column), Sticky("w"), Padx("0.4m"), Pady("0.15m"))
	row++
	v.cascadeMode = TCombobox(Values([]string{cascadeKeepBoxes, cascadeDeleteBoxes}), Width(26))
	Grid(v.cascadeMode, Row(row), Column(column), Sticky("we"), Padx("0.4m"), Pady("0.15m"))
	v.cascadeMode.Current(0)
	row++

	removeBtn := Button(Txt("Remove Class"), Command(func() {
		if v.handlers.OnRemove != nil {
			v.handlers.OnRemove()
		}
	}))
	Grid(removeBtn, Row(row), Column(column), Sticky("we"), Padx("0.4m"), Pady("0.2m"))
	row++

	v.fileEntry = makeEntry("Class file path")
	saveBtn := Button(Txt("Save Classes"), Command(func() {
		if v.handlers.OnSaveClasses != nil {
			v.handlers.OnSaveClasses()
		}
	}))
	Grid(saveBtn, Row(row), Column(column), Sticky("we"), Padx("0.4m"), Pady("0.2m"))
	row++
	return row
}

// SetClasses replaces the dropdown rows and selects the given one.
func (v *classPanel) SetClasses(rows []string, selected int) {
	if v == nil || v.classSelect == nil {
		return
	}
	v.rows = append([]string(nil), rows...)
	values := rows
	if len(values) == 0 {
		values = []string{"<none>"}
		selected = 0
	}
	v.classSelect.Configure(Values(values))
	if selected >= 0 && selected < len(values) {
		v.classSelect.Current(selected)
	}
}

// ConfirmCascadeDelete answers from the persistent remove-mode dropdown:
// "delete boxes" cascades, "keep boxes" leaves them with a dangling id.
func (v *classPanel) ConfirmCascadeDelete(name string, boxes int) bool {
	if v == nil || v.cascadeMode == nil {
		return false
	}
	idx, err := strconv.Atoi(v.cascadeMode.Current(nil))
	cascade := err == nil && idx == 1
	if v.status != nil {
		if cascade {
			v.status(fmt.Sprintf("Removing %s deletes %d annotation(s)", name, boxes))
		} else {
			v.status(fmt.Sprintf("Removing %s keeps %d annotation(s) with a dangling id", name, boxes))
		}
	}
	return cascade
}

// ChooseClassFile reads the class file path entry; an empty entry cancels.
func (v *classPanel) ChooseClassFile() (string, bool) {
	if v == nil || v.fileEntry == nil {
		return "", false
	}
	path := strings.TrimSpace(v.fileEntry.Get("1.0", END)[0])
	if path == "" {
		if v.status != nil {
			v.status("Enter a class file path first")
		}
		return "", false
	}
	return path, true
}
