package ui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// cmdTimeout bounds how long the harness waits for a command. Commands
// that only resolve with real time, such as cursor blinks, are dropped.
const cmdTimeout = 50 * time.Millisecond

// Harness drives the UI model programmatically for integration tests.
type Harness struct {
	model *Model
	quit  bool
}

// NewHarness creates a harness for the provided model.
func NewHarness(model *Model) *Harness {
	return &Harness{model: model}
}

// Send routes a message through the model and executes any returned commands.
func (h *Harness) Send(msg tea.Msg) {
	if h.model == nil {
		return
	}
	h.processCmd(h.update(msg))
}

// Key sends a key press of the given type.
func (h *Harness) Key(t tea.KeyType) {
	h.Send(tea.KeyMsg{Type: t})
}

// Type sends each rune of text as a separate key press, as a terminal
// would while the user types.
func (h *Harness) Type(text string) {
	for _, r := range text {
		if r == ' ' {
			h.Key(tea.KeySpace)
			continue
		}
		h.Send(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
}

// Resize sends a window size message.
func (h *Harness) Resize(width, height int) {
	h.Send(tea.WindowSizeMsg{Width: width, Height: height})
}

// Quit reports whether the model asked the program to exit.
func (h *Harness) Quit() bool {
	return h.quit
}

func (h *Harness) update(msg tea.Msg) tea.Cmd {
	mdl, cmd := h.model.Update(msg)
	if updated, ok := mdl.(*Model); ok {
		h.model = updated
	}
	return cmd
}

func (h *Harness) processCmd(cmd tea.Cmd) {
	if cmd == nil {
		return
	}
	switch msg := runCmd(cmd).(type) {
	case nil:
	case tea.BatchMsg:
		for _, next := range msg {
			h.processCmd(next)
		}
	case tea.QuitMsg:
		h.quit = true
	default:
		h.processCmd(h.update(msg))
	}
}

func runCmd(cmd tea.Cmd) tea.Msg {
	done := make(chan tea.Msg, 1)
	go func() { done <- cmd() }()
	select {
	case msg := <-done:
		return msg
	case <-time.After(cmdTimeout):
		return nil
	}
}

// View returns the current view string.
func (h *Harness) View() string {
	if h.model == nil {
		return ""
	}
	return h.model.View()
}

// Model exposes the underlying model.
func (h *Harness) Model() *Model {
	return h.model
}
