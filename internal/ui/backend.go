package ui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/atomicstack/style-browser/internal/backend"
	"github.com/atomicstack/style-browser/internal/data/dispatcher"
)

func waitForBackendEvent(w *backend.Watcher) tea.Cmd {
	return func() tea.Msg {
		evt, ok := <-w.Events()
		if !ok {
			return backendDoneMsg{}
		}
		return backendEventMsg{event: evt}
	}
}

type backendEventMsg struct {
	event backend.Event
}

type backendDoneMsg struct{}

func (m *Model) handleBackendEventMsg(msg tea.Msg) tea.Cmd {
	eventMsg, ok := msg.(backendEventMsg)
	if !ok {
		return nil
	}
	cmd := m.applyBackendEvent(eventMsg.event)
	if m.backend != nil {
		waitCmd := waitForBackendEvent(m.backend)
		if cmd != nil {
			return tea.Batch(cmd, waitCmd)
		}
		return waitCmd
	}
	return cmd
}

func (m *Model) handleBackendDoneMsg(tea.Msg) tea.Cmd {
	m.backend = nil
	return nil
}

// applyBackendEvent replays a reloaded library file onto the registry. The
// model, view and cursor pick the changes up through registry events, so
// all that is left here is status reporting.
func (m *Model) applyBackendEvent(evt backend.Event) tea.Cmd {
	res := m.dispatcher.Handle(evt)
	if res.Err != nil {
		m.backendLastErr = res.Err.Error()
		if evt.Err == nil {
			// a partially applied snapshot; resync the rows wholesale
			m.view.Model().Refresh()
		}
	} else {
		m.backendLastErr = ""
	}
	if res.Changed() {
		m.setInfo(reloadSummary(res))
	}
	m.syncViewport()
	return nil
}

func (m *Model) hasBackendIssue() (bool, string) {
	if m.backendLastErr == "" {
		return false, ""
	}
	return true, m.backendLastErr
}

func reloadSummary(res dispatcher.Result) string {
	parts := make([]string, 0, 4)
	add := func(n int, what string) {
		if n > 0 {
			parts = append(parts, fmt.Sprintf("%d %s", n, what))
		}
	}
	add(res.Added, "added")
	add(res.Removed, "removed")
	add(res.Updated, "updated")
	add(res.Retagged+res.Favorited+res.GroupsChanged, "regrouped")
	return "Library reloaded: " + strings.Join(parts, ", ")
}
