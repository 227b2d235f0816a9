package model

import (
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/atomicstack/style-browser/internal/logging/events"
	"github.com/atomicstack/style-browser/internal/style"
)

// paddingFactor scales the padding around previews rendered at requested
// sizes. The default size always uses a padding of 1.
const paddingFactor = 0.16

// DefaultPreviewSize is rendered for every decoration in addition to the
// requested sizes.
var DefaultPreviewSize = Size{Width: 24, Height: 24}

// Size is a preview extent in pixels.
type Size struct {
	Width  int
	Height int
}

func (s Size) String() string {
	return fmt.Sprintf("%dx%d", s.Width, s.Height)
}

// ParseSize parses "WxH" or a single number meaning a square.
func ParseSize(raw string) (Size, error) {
	trimmed := strings.ToLower(strings.TrimSpace(raw))
	if trimmed == "" {
		return Size{}, fmt.Errorf("empty preview size")
	}
	w, h, found := strings.Cut(trimmed, "x")
	if !found {
		h = w
	}
	width, err := strconv.Atoi(strings.TrimSpace(w))
	if err != nil {
		return Size{}, fmt.Errorf("preview size %q: %w", raw, err)
	}
	height, err := strconv.Atoi(strings.TrimSpace(h))
	if err != nil {
		return Size{}, fmt.Errorf("preview size %q: %w", raw, err)
	}
	if width <= 0 || height <= 0 {
		return Size{}, fmt.Errorf("preview size %q must be positive", raw)
	}
	return Size{Width: width, Height: height}, nil
}

// Previewer renders an entity at a given size. Implementations live
// outside the model; see internal/preview.
type Previewer interface {
	Preview(kind style.Entity, name string, size Size, padding int) (string, error)
}

// Image is one rendering of an entity.
type Image struct {
	Size    Size
	Padding int
	Content string
}

// Icon is the RoleDecoration value: one Image per size that rendered.
type Icon struct {
	Entity style.Entity
	Name   string
	Images []Image
}

// Best returns the image whose width is closest to width.
func (i Icon) Best(width int) (Image, bool) {
	if len(i.Images) == 0 {
		return Image{}, false
	}
	best := i.Images[0]
	for _, img := range i.Images[1:] {
		if abs(img.Size.Width-width) < abs(best.Size.Width-width) {
			best = img
		}
	}
	return best, true
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

// SetPreviewer installs the renderer used for RoleDecoration. Without one,
// decorations have no value.
func (m *Model) SetPreviewer(p Previewer) {
	m.previewer = p
}

// SetPreviewSizes sets the extra sizes every decoration is rendered at.
// Views sharing the model use it to request size-responsive previews.
func (m *Model) SetPreviewSizes(sizes []Size) {
	m.previewSizes = slices.Clone(sizes)
}

// PreviewSizes returns the extra sizes decorations are rendered at.
func (m *Model) PreviewSizes() []Size {
	return slices.Clone(m.previewSizes)
}

func (m *Model) decoration(kind style.Entity, name string) (any, bool) {
	if m.previewer == nil {
		return nil, false
	}
	icon := Icon{Entity: kind, Name: name}
	render := func(size Size, padding int) {
		content, err := m.previewer.Preview(kind, name, size, padding)
		if err != nil {
			events.Model.PreviewError(kind.String(), name, err)
			return
		}
		icon.Images = append(icon.Images, Image{Size: size, Padding: padding, Content: content})
	}
	render(DefaultPreviewSize, 1)
	for _, size := range m.previewSizes {
		render(size, int(float64(size.Width)*paddingFactor))
	}
	if len(icon.Images) == 0 {
		return nil, false
	}
	return icon, true
}
