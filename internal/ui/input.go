package ui

import (
	"unicode"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/atomicstack/style-browser/internal/logging/events"
)

func (m *Model) updateFilterCursorModel(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	m.filterCursor, cmd = m.filterCursor.Update(msg)
	return cmd
}

func (m *Model) noteFilterCursorChange(before int) {
	if before != m.level.FilterCursorPos() {
		m.filterCursorDirty = true
	}
}

// handleTextInput routes filter editing keys. It reports whether the key
// was consumed.
func (m *Model) handleTextInput(msg tea.KeyMsg) bool {
	current := m.level
	switch msg.String() {
	case "ctrl+u":
		return m.clearFilter()
	case "ctrl+w":
		before := current.FilterCursorPos()
		if !current.DeleteFilterWordBackward() {
			return false
		}
		m.noteFilterCursorChange(before)
		m.filterEdited()
		events.Filter.WordBackspace(current.Filter)
		return true
	case "ctrl+a":
		return m.moveFilterCursor(current.MoveFilterCursorStart, false)
	case "ctrl+e":
		return m.moveFilterCursor(current.MoveFilterCursorEnd, false)
	case "alt+b":
		return m.moveFilterCursor(current.MoveFilterCursorWordBackward, true)
	case "alt+f":
		return m.moveFilterCursor(current.MoveFilterCursorWordForward, true)
	}
	switch msg.Type {
	case tea.KeyBackspace, tea.KeyCtrlH:
		return m.removeFilterRune()
	case tea.KeyRunes:
		if msg.Alt || len(msg.Runes) == 0 {
			return false
		}
		for _, r := range msg.Runes {
			if unicode.IsControl(r) || unicode.IsSpace(r) {
				return false
			}
		}
		return m.appendToFilter(string(msg.Runes))
	case tea.KeySpace:
		return m.appendToFilter(" ")
	case tea.KeyLeft:
		return m.moveFilterCursor(current.MoveFilterCursorRuneBackward, false)
	case tea.KeyRight:
		return m.moveFilterCursor(current.MoveFilterCursorRuneForward, false)
	}
	return false
}

func (m *Model) moveFilterCursor(move func() bool, word bool) bool {
	before := m.level.FilterCursorPos()
	if !move() {
		return false
	}
	m.noteFilterCursorChange(before)
	if word {
		events.Filter.CursorWord(m.level.FilterCursor)
	} else {
		events.Filter.Cursor(m.level.FilterCursor)
	}
	return true
}

func (m *Model) clearFilter() bool {
	current := m.level
	if current.Filter == "" {
		return false
	}
	before := current.FilterCursorPos()
	current.SetFilter("", 0)
	m.noteFilterCursorChange(before)
	m.filterEdited()
	events.Filter.Cleared()
	return true
}

// filterEdited resets transient messages after the query changed.
func (m *Model) filterEdited() {
	m.forceClearInfo()
	m.errMsg = ""
	m.syncViewport()
}

func (m *Model) appendToFilter(text string) bool {
	if text == "" {
		return false
	}
	current := m.level
	before := current.FilterCursorPos()
	if !current.InsertFilterText(text) {
		return false
	}
	m.noteFilterCursorChange(before)
	m.filterEdited()
	events.Filter.Append(current.Filter)
	return true
}

func (m *Model) removeFilterRune() bool {
	current := m.level
	before := current.FilterCursorPos()
	if !current.DeleteFilterRuneBackward() {
		return false
	}
	m.noteFilterCursorChange(before)
	m.filterEdited()
	events.Filter.Backspace(current.Filter)
	return true
}

func (m *Model) filterPrompt() string {
	current := m.level
	render := func(style *lipgloss.Style, value string) string {
		if style == nil || value == "" {
			return value
		}
		return style.Render(value)
	}
	if styles.Cursor != nil {
		m.filterCursor.Style = styles.Cursor.Copy()
	}
	if styles.Filter != nil {
		m.filterCursor.TextStyle = styles.Filter.Copy()
	} else {
		m.filterCursor.TextStyle = lipgloss.Style{}
	}
	prompt := "» "
	if styles.FilterPrompt != nil {
		prompt = styles.FilterPrompt.Render(prompt)
	}
	text := current.Filter
	if text == "" {
		placeholder := "(type to filter by name or tag)"
		runes := []rune(placeholder)
		var caretRune string
		var rest string
		if len(runes) > 0 {
			caretRune = string(runes[0])
			rest = string(runes[1:])
		}
		if styles.FilterPlaceholder != nil {
			m.filterCursor.TextStyle = styles.FilterPlaceholder.Copy()
		}
		caret := m.renderFilterCursor(caretRune)
		return prompt + caret + render(styles.FilterPlaceholder, rest)
	}
	runes := []rune(text)
	pos := current.FilterCursorPos()
	if pos < 0 {
		pos = 0
	}
	if pos > len(runes) {
		pos = len(runes)
	}
	before := render(styles.Filter, string(runes[:pos]))
	var caretRune string
	if pos < len(runes) {
		caretRune = string(runes[pos])
	} else {
		caretRune = " "
	}
	caret := m.renderFilterCursor(caretRune)
	var after string
	if pos < len(runes) {
		after = render(styles.Filter, string(runes[pos+1:]))
	} else {
		after = ""
	}
	return prompt + before + caret + after
}

func (m *Model) renderFilterCursor(char string) string {
	if char == "" {
		char = " "
	}
	m.filterCursor.SetChar(char)

	base := m.filterCursor.TextStyle.Copy()
	base = base.Inline(true)

	if m.filterCursor.Blink {
		return base.Render(char)
	}

	if styles.Cursor != nil {
		cursorStyle := styles.Cursor.Copy().Inline(true)
		base = base.Inherit(cursorStyle).Blink(false)
		return base.Render(char)
	}

	return base.Reverse(true).Render(char)
}
