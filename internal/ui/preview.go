package ui

import (
	"fmt"
	"slices"
	"strings"

	"github.com/atomicstack/style-browser/internal/model"
	"github.com/atomicstack/style-browser/internal/preview"
	"github.com/atomicstack/style-browser/internal/style"
)

const (
	previewPanelMinWidth   = 24  // minimum cols for the preview panel; below this no split
	previewPanelFraction   = 0.4 // fraction of total width given to the preview panel
	previewMaxDisplayLines = 4   // swatch rows shown by the inline (vertical) preview
)

type previewData struct {
	label  string
	swatch []string
	meta   []string
	err    string
}

// activePreview describes the entity under the cursor: its decoration and
// a few lines of details. It returns nil when nothing is selected.
func (m *Model) activePreview() *previewData {
	kind, name, ok := m.level.Selected()
	if !ok {
		return nil
	}
	data := &previewData{label: name, meta: m.entityDetails(kind, name)}
	value, ok := m.view.Data(m.level.Cursor, model.ColumnName, model.RoleDecoration)
	icon, isIcon := value.(model.Icon)
	if !ok || !isIcon {
		data.err = "No preview available"
		return data
	}
	img, found := icon.Best(m.previewTargetWidth())
	if !found {
		data.err = "No preview available"
		return data
	}
	data.swatch = strings.Split(img.Content, "\n")
	return data
}

func (m *Model) entityDetails(kind style.Entity, name string) []string {
	var lines []string
	switch kind {
	case style.SymbolEntity:
		if sym, ok := m.library.Symbol(name); ok {
			lines = append(lines, fmt.Sprintf("symbol · %s", sym.Type))
			if sym.Color != "" {
				lines = append(lines, "color "+sym.Color)
			}
		}
	case style.ColorRampEntity:
		if ramp, ok := m.library.ColorRamp(name); ok {
			lines = append(lines, fmt.Sprintf("color ramp · %d stops", len(ramp.Stops)))
			lines = append(lines, strings.Join(ramp.Stops, " "))
		}
	}
	if tags := m.library.TagsOf(kind, name); len(tags) > 0 {
		lines = append(lines, "tags "+strings.Join(tags, ", "))
	}
	if m.library.IsFavorite(kind, name) {
		lines = append(lines, "★ favorite")
	}
	return lines
}

// previewTargetWidth is the pixel width the decoration should be closest
// to: the panel's inner width when the panel is shown, the default icon
// size otherwise.
func (m *Model) previewTargetWidth() int {
	if w := m.previewPanelWidth(); w > 2 {
		return preview.SizeForCells(w-2, 0).Width
	}
	return model.DefaultPreviewSize.Width
}

// requestPanelPreviews asks the model to also render decorations at a
// square size that fills the preview panel, next to the configured sizes.
func (m *Model) requestPanelPreviews() {
	sizes := slices.Clone(m.previewSizes)
	if w := m.previewPanelWidth(); w > 2 {
		size := preview.SizeForCells(w-2, 0)
		size.Height = size.Width
		if !slices.Contains(sizes, size) {
			sizes = append(sizes, size)
		}
	}
	m.view.Model().SetPreviewSizes(sizes)
}

// hasSidePreview reports whether the preview is drawn as a panel to the
// right of the list rather than below it.
func (m *Model) hasSidePreview() bool {
	return m.previewPanelWidth() > 0
}

// previewPanelWidth returns the width in columns for the right-hand preview
// panel. Returns 0 when the terminal is too narrow to split.
func (m *Model) previewPanelWidth() int {
	if m.width <= 0 {
		return 0
	}
	w := int(float64(m.width) * previewPanelFraction)
	if w < previewPanelMinWidth {
		return 0
	}
	return w
}

// listColumnWidth returns the width available for the left-hand list.
func (m *Model) listColumnWidth() int {
	return m.width - m.previewPanelWidth()
}

func previewDisplayLines(data *previewData) []string {
	lines := data.swatch
	if previewMaxDisplayLines > 0 && len(lines) > previewMaxDisplayLines {
		lines = lines[:previewMaxDisplayLines]
	}
	return lines
}
