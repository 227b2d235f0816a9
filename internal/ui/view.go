package ui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/atomicstack/style-browser/internal/format/table"
	"github.com/atomicstack/style-browser/internal/logging/events"
	"github.com/atomicstack/style-browser/internal/model"
	"github.com/atomicstack/style-browser/internal/style"
	"github.com/atomicstack/style-browser/internal/view"
)

const footerText = "↑/↓ move  enter rename  tab kind  ^y type  ^t tag  ^g group  ^f favorites  ^s star  ^r sort  esc quit"

type styledLine struct {
	text          string
	style         *lipgloss.Style
	prefixStyle   *lipgloss.Style
	highlightFrom int
	raw           bool // text contains ANSI escapes; skip style wrapping, use ANSI-aware truncation
}

// View implements tea.Model.
func (m *Model) View() string {
	header := m.header()
	if m.mode == ModeRenameForm && m.renameForm != nil {
		return m.viewRenameForm(header)
	}
	if m.hasSidePreview() {
		return m.viewSideBySide(header)
	}
	return m.viewVertical(header)
}

// listLines renders the visible slice of rows, or a placeholder when the
// filters leave nothing to show.
func (m *Model) listLines(width int) []styledLine {
	current := m.level
	m.syncViewport()
	total := current.Len()
	if total == 0 {
		msg := "(no styles)"
		if current.Filter != "" {
			msg = fmt.Sprintf("No matches for %q", current.Filter)
		} else if m.filtersActive() {
			msg = "No styles match the active filters"
		}
		return []styledLine{{text: msg, style: styles.Info}}
	}
	heading, labels := m.rowLabels()
	start, end := 0, total
	if maxItems := m.maxVisibleItems(); maxItems > 0 && total > maxItems {
		start = max(current.ViewportOffset, 0)
		if start+maxItems > total {
			start = max(total-maxItems, 0)
			current.ViewportOffset = start
		}
		end = start + maxItems
	}
	lines := make([]styledLine, 0, end-start+1)
	lines = append(lines, styledLine{text: "  " + heading, style: styles.Filters})
	for idx := start; idx < end; idx++ {
		lines = append(lines, m.buildItemLine(labels[idx], idx, width))
	}
	return lines
}

// rowLabels formats every visible row as aligned columns: favorite mark,
// kind, name and tags. The heading line takes the name and tags titles
// from the model and is aligned with the rows.
func (m *Model) rowLabels() (string, []string) {
	v := m.view
	nameTitle, _ := v.Model().HeaderData(model.ColumnName)
	tagsTitle, _ := v.Model().HeaderData(model.ColumnTags)
	rows := make([][]string, 0, v.RowCount()+1)
	rows = append(rows, []string{"", "Kind", nameTitle, tagsTitle})
	for row := 0; row < v.RowCount(); row++ {
		kind, name, _ := v.EntityAt(row)
		mark := " "
		if m.library.IsFavorite(kind, name) {
			mark = "★"
		}
		kindLabel := "ramp"
		if kind == style.SymbolEntity {
			kindLabel = "sym"
			if typ, ok := v.Data(row, model.ColumnName, model.RoleSymbolType); ok {
				kindLabel = fmt.Sprint(typ)
			}
		}
		tags, _ := v.Data(row, model.ColumnTags, model.RoleDisplay)
		display, _ := v.Data(row, model.ColumnName, model.RoleDisplay)
		rows = append(rows, []string{mark, kindLabel, fmt.Sprint(display), fmt.Sprint(tags)})
	}
	formatted := table.Format(rows, []table.Alignment{table.AlignLeft, table.AlignLeft, table.AlignLeft, table.AlignLeft})
	return formatted[0], formatted[1:]
}

// viewVertical is the single-column layout with an inline preview block
// below the list, used when the terminal is too narrow for a side panel.
func (m *Model) viewVertical(header string) string {
	lines := make([]styledLine, 0, 16)
	if header != "" {
		lines = append(lines, styledLine{text: header, style: styles.Header})
	}
	lines = append(lines, m.listLines(m.width)...)
	if data := m.activePreview(); data != nil {
		lines = append(lines, styledLine{})
		lines = append(lines, styledLine{text: "Preview: " + data.label, style: styles.PreviewTitle})
		if data.err != "" {
			lines = append(lines, styledLine{text: data.err, style: styles.PreviewError})
		} else {
			for _, line := range previewDisplayLines(data) {
				lines = append(lines, styledLine{text: line, raw: true})
			}
		}
	}
	if info := m.currentInfo(); info != "" {
		lines = append(lines, styledLine{})
		lines = append(lines, styledLine{text: info, style: styles.Info})
	}
	if m.showFooter {
		lines = append(lines, styledLine{})
		lines = append(lines, styledLine{text: footerText, style: styles.Footer})
	}
	lines = limitHeight(lines, m.height-2, m.width)
	lines = applyWidth(lines, m.width)
	lines = append(lines, applyWidth(m.bottomBar(), m.width)...)
	return renderLines(lines)
}

// viewSideBySide renders the list on the left and a preview panel on the
// right.
func (m *Model) viewSideBySide(header string) string {
	listW := m.listColumnWidth()
	prevW := m.previewPanelWidth()
	const bottomBarRows = 2

	contentLines := make([]styledLine, 0, 16)
	if header != "" {
		contentLines = append(contentLines, styledLine{text: header, style: styles.Header})
	}
	contentLines = append(contentLines, m.listLines(listW)...)
	if info := m.currentInfo(); info != "" {
		contentLines = append(contentLines, styledLine{})
		contentLines = append(contentLines, styledLine{text: info, style: styles.Info})
	}
	if m.showFooter {
		contentLines = append(contentLines, styledLine{})
		contentLines = append(contentLines, styledLine{text: footerText, style: styles.Footer})
	}

	panelH := max(m.height-bottomBarRows, 1)
	if m.height <= 0 {
		panelH = max(len(contentLines), 8)
	}
	if len(contentLines) > panelH {
		contentLines = contentLines[:panelH]
	}
	for len(contentLines) < panelH {
		contentLines = append(contentLines, styledLine{})
	}
	contentLines = applyWidth(contentLines, listW)
	leftRows := strings.Split(renderLines(contentLines), "\n")
	for i, row := range leftRows {
		leftRows[i] = fitWidth(row, listW)
	}
	rightStr := m.renderPreviewPanel(m.activePreview(), prevW, panelH)
	topSection := lipgloss.JoinHorizontal(lipgloss.Top, strings.Join(leftRows, "\n"), rightStr)

	return topSection + "\n" + renderLines(applyWidth(m.bottomBar(), m.width))
}

// bottomBar is the status line followed by the filter prompt.
func (m *Model) bottomBar() []styledLine {
	var statusLine styledLine
	if m.errMsg != "" {
		statusLine = styledLine{text: fmt.Sprintf("Error: %s", m.errMsg), style: styles.Error}
	} else if warn, msg := m.hasBackendIssue(); warn {
		statusLine = styledLine{text: fmt.Sprintf("Library: %s", msg), style: styles.Error}
	}
	return []styledLine{statusLine, {text: m.filterPrompt(), raw: true}}
}

// buildItemLine constructs a single styledLine for a row. When width is
// positive the text is padded so the selected row's background spans the
// column.
func (m *Model) buildItemLine(label string, idx, width int) styledLine {
	indicator := "▌"
	lineStyle := styles.Item
	indicatorStyle := styles.ItemIndicator
	if idx == m.level.Cursor {
		indicatorStyle = styles.SelectedItemIndicator
		lineStyle = styles.SelectedItem
	}
	fullText := indicator + " " + label
	if width > 0 {
		if pad := width - ansi.StringWidth(fullText); pad > 0 {
			fullText += strings.Repeat(" ", pad)
		}
	}
	return styledLine{
		text:          fullText,
		style:         lineStyle,
		prefixStyle:   indicatorStyle,
		highlightFrom: 1,
	}
}

// renderPreviewPanel builds the bordered preview box as a string with
// exactly height rows and totalWidth columns.
func (m *Model) renderPreviewPanel(data *previewData, totalWidth, height int) string {
	const (
		tlc = "╭"
		trc = "╮"
		blc = "╰"
		brc = "╯"
		hz  = "─"
		vt  = "│"
	)
	innerW := max(totalWidth-2, 1)
	innerH := max(height-2, 1)

	titleLabel := "Preview"
	var body []styledLine
	if data == nil {
		body = []styledLine{{text: "Nothing selected", style: styles.PreviewMeta}}
	} else {
		titleLabel = "Preview: " + data.label
		if data.err != "" {
			body = append(body, styledLine{text: data.err, style: styles.PreviewError})
		}
		for _, line := range data.swatch {
			body = append(body, styledLine{text: line, raw: true})
		}
		if len(data.meta) > 0 {
			body = append(body, styledLine{})
		}
		for _, line := range data.meta {
			body = append(body, styledLine{text: line, style: styles.PreviewMeta})
		}
	}
	// A short panel trims the swatch before the details.
	if over := len(body) - innerH; over > 0 && data != nil && len(data.swatch) > 0 {
		cut := min(over, len(data.swatch)-1)
		body = append(body[:len(data.swatch)-cut], body[len(data.swatch):]...)
	}

	titleSeg := " " + titleLabel + " "
	dashes := totalWidth - 4 - ansi.StringWidth(titleSeg)
	if dashes < 0 {
		titleSeg = ansi.Truncate(titleSeg, max(totalWidth-4, 0), "…")
		dashes = totalWidth - 4 - ansi.StringWidth(titleSeg)
	}
	dashes = max(dashes, 0)
	topLine := styles.PreviewBorder.Render(tlc+hz) +
		styles.PreviewTitle.Render(titleSeg) +
		styles.PreviewBorder.Render(strings.Repeat(hz, dashes)+hz+trc)
	bottomLine := styles.PreviewBorder.Render(blc + strings.Repeat(hz, innerW) + brc)

	rows := make([]string, 0, height)
	rows = append(rows, topLine)
	for i := 0; i < innerH; i++ {
		var line styledLine
		if i < len(body) {
			line = body[i]
		}
		content := fitWidth(line.text, innerW)
		if !line.raw && line.style != nil {
			content = line.style.Render(content)
		}
		rows = append(rows, styles.PreviewBorder.Render(vt)+content+styles.PreviewBorder.Render(vt))
	}
	rows = append(rows, bottomLine)
	return strings.Join(rows, "\n")
}

func (m *Model) header() string {
	return strings.Join(m.headerSegments(), headerSeparator)
}

// headerSegments names the active filters after the title, so the header
// always says why rows are missing.
func (m *Model) headerSegments() []string {
	v := m.view
	segments := []string{fmt.Sprintf("%s (%d/%d)", defaultTitle, v.RowCount(), v.Model().RowCount())}
	if v.EntityFilterEnabled() {
		segments = append(segments, entityFilterLabel(v))
	}
	if v.SymbolTypeFilterEnabled() {
		segments = append(segments, symbolTypeLabel(v))
	}
	if v.TagID() != view.NoID {
		segments = append(segments, m.tagLabel())
	}
	if v.SmartGroupID() != view.NoID {
		segments = append(segments, m.smartGroupLabel())
	}
	if v.FavoritesOnly() {
		segments = append(segments, "★ favorites")
	}
	if v.SortOrder() == view.Descending {
		segments = append(segments, "z→a")
	}
	return segments
}

func (m *Model) filtersActive() bool {
	v := m.view
	return v.EntityFilterEnabled() || v.SymbolTypeFilterEnabled() ||
		v.TagID() != view.NoID || v.SmartGroupID() != view.NoID || v.FavoritesOnly()
}

func entityFilterLabel(v *view.View) string {
	if !v.EntityFilterEnabled() {
		return "all"
	}
	if v.EntityFilter() == style.ColorRampEntity {
		return "color ramps"
	}
	return "symbols"
}

func symbolTypeLabel(v *view.View) string {
	if !v.SymbolTypeFilterEnabled() {
		return "any type"
	}
	return "type: " + v.SymbolType().String()
}

func (m *Model) tagLabel() string {
	id := m.view.TagID()
	if id == view.NoID {
		return "any tag"
	}
	for _, tag := range m.library.Tags() {
		if tag.ID == id {
			return "tag: " + tag.Name
		}
	}
	return fmt.Sprintf("tag: #%d", id)
}

func (m *Model) smartGroupLabel() string {
	id := m.view.SmartGroupID()
	if id == view.NoID {
		return "any group"
	}
	for _, group := range m.library.SmartGroups() {
		if group.ID == id {
			return "group: " + group.Name
		}
	}
	return fmt.Sprintf("group: #%d", id)
}

func (m *Model) handleWindowSizeMsg(msg tea.Msg) tea.Cmd {
	resize, ok := msg.(tea.WindowSizeMsg)
	if !ok {
		return nil
	}
	if !m.fixedWidth {
		m.width = resize.Width
	}
	if !m.fixedHeight {
		m.height = resize.Height
	}
	events.UI.Resize(m.width, m.height)
	m.requestPanelPreviews()
	m.syncViewport()
	return nil
}

func (m *Model) maxVisibleItems() int {
	if m.height <= 0 {
		return -1
	}
	used := 2 // bottom bar: error/status + filter prompt
	used += 2 // header + column headings
	if info := m.currentInfo(); info != "" {
		used += 2
	}
	if m.showFooter {
		used += 2
	}
	if !m.hasSidePreview() {
		used += 2 // blank separator + title line
		if data := m.activePreview(); data != nil && data.err == "" {
			used += len(previewDisplayLines(data))
		} else {
			used++
		}
	}
	remain := m.height - used
	if remain < 1 {
		return 1
	}
	return remain
}

func (m *Model) setInfo(message string) {
	m.infoMsg = message
	m.infoExpire = time.Now().Add(5 * time.Second)
}

func (m *Model) forceClearInfo() {
	m.infoMsg = ""
	m.infoExpire = time.Time{}
}

func (m *Model) currentInfo() string {
	if m.infoMsg != "" && !m.infoExpire.IsZero() && time.Now().After(m.infoExpire) {
		m.infoMsg = ""
		m.infoExpire = time.Time{}
	}
	return m.infoMsg
}

func limitHeight(lines []styledLine, height, width int) []styledLine {
	if height <= 0 || len(lines) <= height {
		return lines
	}
	if height == 1 {
		return []styledLine{{text: truncateText("…", width)}}
	}
	trimmed := make([]styledLine, 0, height)
	trimmed = append(trimmed, lines[:height-1]...)
	trimmed = append(trimmed, styledLine{text: truncateText("…", width)})
	return trimmed
}

func applyWidth(lines []styledLine, width int) []styledLine {
	if width <= 0 {
		return lines
	}
	result := make([]styledLine, len(lines))
	for i, line := range lines {
		line.text = truncateText(line.text, width)
		result[i] = line
	}
	return result
}

func renderLines(lines []styledLine) string {
	out := make([]string, len(lines))
	for i, line := range lines {
		text := line.text
		if line.raw {
			out[i] = text
			continue
		}
		runes := []rune(text)
		if line.highlightFrom > 0 && line.highlightFrom < len(runes) {
			head := string(runes[:line.highlightFrom])
			tail := string(runes[line.highlightFrom:])
			if line.prefixStyle != nil {
				head = line.prefixStyle.Render(head)
			}
			if line.style != nil {
				tail = line.style.Render(tail)
			}
			text = head + tail
		} else if line.style != nil {
			text = line.style.Render(text)
		}
		out[i] = text
	}
	return strings.Join(out, "\n")
}

// truncateText cuts text to width terminal cells, ending in an ellipsis.
// Escape sequences are preserved and not counted.
func truncateText(text string, width int) string {
	if width <= 0 || ansi.StringWidth(text) <= width {
		return text
	}
	if width == 1 {
		return ansi.Truncate(text, 1, "")
	}
	return ansi.Truncate(text, width, "…")
}

// fitWidth truncates or pads text to exactly width cells.
func fitWidth(text string, width int) string {
	text = truncateText(text, width)
	if pad := width - ansi.StringWidth(text); pad > 0 {
		text += strings.Repeat(" ", pad)
	}
	return text
}
