package ui

import (
	"reflect"
	"time"

	"github.com/charmbracelet/bubbles/cursor"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/atomicstack/style-browser/internal/backend"
	"github.com/atomicstack/style-browser/internal/data/dispatcher"
	"github.com/atomicstack/style-browser/internal/model"
	"github.com/atomicstack/style-browser/internal/style"
	"github.com/atomicstack/style-browser/internal/theme"
	uistate "github.com/atomicstack/style-browser/internal/ui/state"
	"github.com/atomicstack/style-browser/internal/view"
)

type level = uistate.Level

type Mode int

const (
	ModeBrowse Mode = iota
	ModeRenameForm
)

const (
	headerSeparator = " · "
	defaultTitle    = "styles"
)

var styles = theme.Default()

type msgHandler func(tea.Msg) tea.Cmd

// Model implements the Bubble Tea model for the style browser.
type Model struct {
	library        *style.Library
	view           *view.View
	level          *level
	previewSizes   []model.Size
	errMsg         string
	infoMsg        string
	infoExpire     time.Time
	width          int
	height         int
	fixedWidth     bool
	fixedHeight    bool
	backend        *backend.Watcher
	backendLastErr string
	showFooter     bool
	renameForm     *RenameForm
	mode           Mode

	filterCursor      cursor.Model
	filterCursorDirty bool

	handlers   map[reflect.Type]msgHandler
	dispatcher *dispatcher.Dispatcher
}

// NewModel builds the browser over v, which must be a view of lib. A nil
// watcher disables live reloads. Width and height fix the viewport when
// positive.
func NewModel(lib *style.Library, v *view.View, width, height int, watcher *backend.Watcher) *Model {
	m := &Model{
		library:      lib,
		view:         v,
		level:        uistate.NewLevel(v),
		previewSizes: v.Model().PreviewSizes(),
		backend:      watcher,
		showFooter:   true,
		mode:         ModeBrowse,
		dispatcher:   dispatcher.New(lib),
	}
	if width > 0 {
		m.width = width
		m.fixedWidth = true
	}
	if height > 0 {
		m.height = height
		m.fixedHeight = true
	}
	m.requestPanelPreviews()
	m.syncViewport()
	c := cursor.New()
	if styles.Cursor != nil {
		c.Style = styles.Cursor.Copy()
	}
	if styles.Filter != nil {
		c.TextStyle = styles.Filter.Copy()
	}
	c.SetChar(" ")
	m.filterCursor = c
	m.registerHandlers()
	return m
}

// Close detaches the cursor from the view.
func (m *Model) Close() {
	m.level.Close()
}

// Init is part of the tea.Model interface.
func (m *Model) Init() tea.Cmd {
	cmds := []tea.Cmd{}
	if m.backend != nil {
		cmds = append(cmds, waitForBackendEvent(m.backend))
	}
	if cmd := m.filterCursor.Focus(); cmd != nil {
		cmds = append(cmds, cmd)
	}
	if len(cmds) == 0 {
		return nil
	}
	return tea.Batch(cmds...)
}

// Update responds to Bubble Tea messages.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	cmds := make([]tea.Cmd, 0, 4)
	if cmd := m.updateFilterCursorModel(msg); cmd != nil {
		cmds = append(cmds, cmd)
	}
	if handled, cmd := m.handleActiveForm(msg); handled {
		if cmd != nil {
			cmds = append(cmds, cmd)
		}
		return m, m.finishUpdate(cmds)
	}

	if handler := m.handlerFor(msg); handler != nil {
		if cmd := handler(msg); cmd != nil {
			cmds = append(cmds, cmd)
		}
	}
	return m, m.finishUpdate(cmds)
}

func (m *Model) handleActiveForm(msg tea.Msg) (bool, tea.Cmd) {
	if m.mode != ModeRenameForm {
		return false, nil
	}
	// Library reloads and resizes keep flowing while the form is open.
	switch msg.(type) {
	case backendEventMsg, backendDoneMsg, tea.WindowSizeMsg:
		return false, nil
	}
	return m.handleRenameForm(msg)
}

func (m *Model) registerHandlers() {
	m.handlers = map[reflect.Type]msgHandler{
		reflect.TypeOf(tea.KeyMsg{}):        m.handleKeyMsg,
		reflect.TypeOf(tea.WindowSizeMsg{}): m.handleWindowSizeMsg,
		reflect.TypeOf(backendEventMsg{}):   m.handleBackendEventMsg,
		reflect.TypeOf(backendDoneMsg{}):    m.handleBackendDoneMsg,
	}
}

func (m *Model) handlerFor(msg tea.Msg) msgHandler {
	if msg == nil || m.handlers == nil {
		return nil
	}
	t := reflect.TypeOf(msg)
	if handler, ok := m.handlers[t]; ok {
		return handler
	}
	if t.Kind() == reflect.Ptr {
		if handler, ok := m.handlers[t.Elem()]; ok {
			return handler
		}
	}
	return nil
}

func (m *Model) finishUpdate(cmds []tea.Cmd) tea.Cmd {
	if m.filterCursorDirty {
		m.filterCursorDirty = false
		m.filterCursor.Blink = false
		if cmd := m.filterCursor.BlinkCmd(); cmd != nil {
			cmds = append(cmds, cmd)
		}
	}
	if len(cmds) == 0 {
		return nil
	}
	return tea.Batch(cmds...)
}

// Level exposes the cursor state, mainly for tests.
func (m *Model) Level() *uistate.Level {
	return m.level
}
