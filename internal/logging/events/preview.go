package events

import "github.com/atomicstack/style-browser/internal/logging"

type PreviewTracer struct{}

var Preview = PreviewTracer{}

func (PreviewTracer) Render(key string, cached bool) {
	logging.Trace("preview.render", map[string]interface{}{"key": key, "cached": cached})
}

// Evict records cache entries dropped because the entity changed.
func (PreviewTracer) Evict(kind, name string, entries int) {
	logging.Trace("preview.evict", map[string]interface{}{"kind": kind, "name": name, "entries": entries})
}
