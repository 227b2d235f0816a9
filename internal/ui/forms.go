package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/atomicstack/style-browser/internal/logging/events"
	"github.com/atomicstack/style-browser/internal/model"
	"github.com/atomicstack/style-browser/internal/style"
)

// RenameForm edits the name of one entity.
type RenameForm struct {
	input  textinput.Model
	kind   style.Entity
	target string
	help   string
	title  string
}

// NewRenameForm starts a form prefilled with the current name.
func NewRenameForm(kind style.Entity, name string) *RenameForm {
	ti := textinput.New()
	ti.Placeholder = "new name"
	ti.CharLimit = 128
	ti.SetValue(name)
	ti.CursorEnd()
	ti.Focus()
	return &RenameForm{
		input:  ti,
		kind:   kind,
		target: name,
		help:   "Press Enter to rename. Esc to cancel.",
		title:  fmt.Sprintf("Rename %s %s", kind, name),
	}
}

func (f *RenameForm) Kind() style.Entity { return f.kind }
func (f *RenameForm) Target() string     { return f.target }
func (f *RenameForm) Title() string      { return f.title }
func (f *RenameForm) Help() string       { return f.help }
func (f *RenameForm) Value() string      { return strings.TrimSpace(f.input.Value()) }
func (f *RenameForm) InputView() string  { return f.input.View() }

// Update feeds msg to the text input. The booleans report a submitted and
// a cancelled form; a submit with an unchanged or empty name cancels.
func (f *RenameForm) Update(msg tea.Msg) (tea.Cmd, bool, bool) {
	switch m := msg.(type) {
	case tea.KeyMsg:
		switch m.String() {
		case "ctrl+u":
			if f.input.Value() != "" {
				f.input.SetValue("")
				f.input.CursorStart()
			}
			return nil, false, false
		}
		switch m.Type {
		case tea.KeyEsc:
			events.Action.CancelRename(f.target, events.ReasonEscape)
			return nil, false, true
		case tea.KeyEnter:
			name := f.Value()
			if name == "" || name == f.target {
				events.Action.CancelRename(f.target, events.ReasonEmpty)
				return nil, false, true
			}
			events.Action.SubmitRename(f.target, name)
			return nil, true, false
		}
	}
	updated, cmd := f.input.Update(msg)
	f.input = updated
	return cmd, false, false
}

func (m *Model) startRenameForm() {
	kind, name, ok := m.level.Selected()
	if !ok {
		return
	}
	flags := m.view.Model().Flags(model.ColumnName)
	if flags&model.Editable == 0 {
		return
	}
	events.Action.RenamePrompt(kind.String(), name)
	m.renameForm = NewRenameForm(kind, name)
	m.mode = ModeRenameForm
	m.errMsg = ""
	m.forceClearInfo()
}

func (m *Model) handleRenameForm(msg tea.Msg) (bool, tea.Cmd) {
	if m.renameForm == nil {
		m.mode = ModeBrowse
		return false, nil
	}
	cmd, done, cancel := m.renameForm.Update(msg)
	if cancel {
		m.renameForm = nil
		m.mode = ModeBrowse
		return true, cmd
	}
	if done {
		m.submitRename(m.renameForm.Kind(), m.renameForm.Target(), m.renameForm.Value())
		m.renameForm = nil
		m.mode = ModeBrowse
	}
	return true, cmd
}

// submitRename writes the new name through the view. The selection may
// have moved while the form was open, for example after a library reload,
// so the target is reselected first.
func (m *Model) submitRename(kind style.Entity, target, name string) {
	if !m.level.Select(kind, target) {
		err := fmt.Errorf("%s %q: %w", kind, target, style.ErrNotFound)
		events.Action.Error(err)
		m.errMsg = err.Error()
		return
	}
	if !m.level.Rename(name) {
		err := fmt.Errorf("cannot rename %s %q to %q", kind, target, name)
		events.Action.Error(err)
		m.errMsg = err.Error()
		return
	}
	info := fmt.Sprintf("Renamed %s to %s", target, name)
	events.Action.Success(info)
	m.errMsg = ""
	m.setInfo(info)
	m.syncViewport()
}

func (m *Model) viewRenameForm(header string) string {
	f := m.renameForm
	lines := []string{f.Title(), "", f.InputView(), "", f.Help()}
	if header != "" {
		lines = append([]string{header}, lines...)
	}
	return strings.Join(lines, "\n")
}
