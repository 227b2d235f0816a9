// Package preview renders symbols and color ramps as small blocks of
// styled terminal text. A Renderer satisfies model.Previewer and caches
// every rendering until the registry reports that the entity changed.
package preview

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/lucasb-eyer/go-colorful"
	gocache "github.com/patrickmn/go-cache"

	"github.com/atomicstack/style-browser/internal/logging/events"
	"github.com/atomicstack/style-browser/internal/model"
	"github.com/atomicstack/style-browser/internal/style"
)

const (
	defaultExpiration = 10 * time.Minute
	cleanupInterval   = 30 * time.Minute

	// A terminal cell stands in for a block of pixels this wide and tall.
	pixelsPerColumn = 4
	pixelsPerRow    = 8
)

// ErrTooSmall is returned when the padding leaves no room to draw.
var ErrTooSmall = errors.New("preview size leaves no drawable area")

// Source is the part of the style library a Renderer reads from.
type Source interface {
	Symbol(name string) (style.Symbol, bool)
	ColorRamp(name string) (style.ColorRamp, bool)
	Subscribe(fn func(style.Event)) func()
}

var glyphs = map[style.SymbolType]string{
	style.MarkerSymbol: "●",
	style.LineSymbol:   "─",
	style.FillSymbol:   "█",
	style.HybridSymbol: "◆",
}

// Renderer draws previews for entities of a Source.
type Renderer struct {
	source      Source
	cache       *gocache.Cache
	unsubscribe func()
}

var _ model.Previewer = (*Renderer)(nil)

// New returns a renderer that evicts cached previews as source changes.
func New(source Source) *Renderer {
	r := &Renderer{
		source: source,
		cache:  gocache.New(defaultExpiration, cleanupInterval),
	}
	r.unsubscribe = source.Subscribe(r.handleEvent)
	return r
}

// Close stops listening to the source and drops the cache.
func (r *Renderer) Close() {
	if r.unsubscribe != nil {
		r.unsubscribe()
		r.unsubscribe = nil
	}
	r.cache.Flush()
}

// Cached returns the number of cached renderings.
func (r *Renderer) Cached() int {
	return r.cache.ItemCount()
}

func keyPrefix(kind style.Entity, name string) string {
	return fmt.Sprintf("%s|%q|", kind, name)
}

func cacheKey(kind style.Entity, name string, size model.Size, padding int) string {
	return fmt.Sprintf("%s%s|%d", keyPrefix(kind, name), size, padding)
}

// Preview implements model.Previewer.
func (r *Renderer) Preview(kind style.Entity, name string, size model.Size, padding int) (string, error) {
	key := cacheKey(kind, name, size, padding)
	if cached, ok := r.cache.Get(key); ok {
		if content, ok := cached.(string); ok {
			events.Preview.Render(key, true)
			return content, nil
		}
	}

	cols, rows, err := cells(size, padding)
	if err != nil {
		return "", fmt.Errorf("preview %s %q at %s: %w", kind, name, size, err)
	}

	var content string
	switch kind {
	case style.SymbolEntity:
		sym, ok := r.source.Symbol(name)
		if !ok {
			return "", fmt.Errorf("preview symbol %q: %w", name, style.ErrNotFound)
		}
		content, err = renderSymbol(sym, cols, rows)
	case style.ColorRampEntity:
		ramp, ok := r.source.ColorRamp(name)
		if !ok {
			return "", fmt.Errorf("preview color ramp %q: %w", name, style.ErrNotFound)
		}
		content, err = renderRamp(ramp, cols, rows)
	default:
		err = fmt.Errorf("unknown entity %d", kind)
	}
	if err != nil {
		return "", err
	}

	r.cache.Set(key, content, gocache.DefaultExpiration)
	events.Preview.Render(key, false)
	return content, nil
}

func (r *Renderer) handleEvent(evt style.Event) {
	switch evt.Type {
	case style.EntityAdded, style.EntityRemoved, style.EntityChanged:
		r.evict(evt.Entity, evt.Name)
	case style.EntityRenamed:
		r.evict(evt.Entity, evt.OldName)
		r.evict(evt.Entity, evt.Name)
	}
}

func (r *Renderer) evict(kind style.Entity, name string) {
	prefix := keyPrefix(kind, name)
	evicted := 0
	for key := range r.cache.Items() {
		if strings.HasPrefix(key, prefix) {
			r.cache.Delete(key)
			evicted++
		}
	}
	if evicted > 0 {
		events.Preview.Evict(kind.String(), name, evicted)
	}
}

// cells converts a pixel size and padding into a grid of terminal cells.
func cells(size model.Size, padding int) (int, int, error) {
	if padding < 0 {
		padding = 0
	}
	innerW := size.Width - 2*padding
	innerH := size.Height - 2*padding
	if innerW <= 0 || innerH <= 0 {
		return 0, 0, ErrTooSmall
	}
	return max(1, innerW/pixelsPerColumn), max(1, innerH/pixelsPerRow), nil
}

func renderSymbol(sym style.Symbol, cols, rows int) (string, error) {
	glyph, ok := glyphs[sym.Type]
	if !ok {
		glyph = "?"
	}
	paint := lipgloss.NewStyle()
	if sym.Color != "" {
		c, err := colorful.Hex(sym.Color)
		if err != nil {
			return "", fmt.Errorf("symbol %q color: %w", sym.Name, err)
		}
		paint = paint.Foreground(lipgloss.Color(c.Hex()))
	}
	line := paint.Render(strings.Repeat(glyph, cols))
	return strings.TrimSuffix(strings.Repeat(line+"\n", rows), "\n"), nil
}

func renderRamp(ramp style.ColorRamp, cols, rows int) (string, error) {
	if len(ramp.Stops) == 0 {
		return "", fmt.Errorf("color ramp %q has no stops", ramp.Name)
	}
	stops := make([]colorful.Color, 0, len(ramp.Stops))
	for _, raw := range ramp.Stops {
		c, err := colorful.Hex(raw)
		if err != nil {
			return "", fmt.Errorf("color ramp %q stop: %w", ramp.Name, err)
		}
		stops = append(stops, c)
	}

	var b strings.Builder
	for col := 0; col < cols; col++ {
		c := blend(stops, position(col, cols))
		b.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color(c.Hex())).Render("█"))
	}
	line := b.String()
	return strings.TrimSuffix(strings.Repeat(line+"\n", rows), "\n"), nil
}

func position(col, cols int) float64 {
	if cols <= 1 {
		return 0
	}
	return float64(col) / float64(cols-1)
}

// blend samples the gradient through stops at t in [0,1].
func blend(stops []colorful.Color, t float64) colorful.Color {
	if len(stops) == 1 {
		return stops[0]
	}
	scaled := t * float64(len(stops)-1)
	idx := int(math.Floor(scaled))
	if idx >= len(stops)-1 {
		return stops[len(stops)-1]
	}
	frac := scaled - float64(idx)
	if frac == 0 {
		return stops[idx]
	}
	return stops[idx].BlendLab(stops[idx+1], frac).Clamped()
}

// SizeForCells returns the pixel size that fills cols by rows terminal
// cells, for requesting previews that fit a panel.
func SizeForCells(cols, rows int) model.Size {
	return model.Size{Width: max(cols, 0) * pixelsPerColumn, Height: max(rows, 0) * pixelsPerRow}
}
