package events

import "github.com/atomicstack/style-browser/internal/logging"

type ModelTracer struct{}

var Model = ModelTracer{}

func (ModelTracer) Inserted(kind, name string, row int) {
	logging.Trace("model.insert", map[string]interface{}{"kind": kind, "name": name, "row": row})
}

func (ModelTracer) Removed(kind, name string, row int) {
	logging.Trace("model.remove", map[string]interface{}{"kind": kind, "name": name, "row": row})
}

func (ModelTracer) Moved(kind, oldName, newName string, from, to int) {
	logging.Trace("model.move", map[string]interface{}{
		"kind": kind,
		"old":  oldName,
		"new":  newName,
		"from": from,
		"to":   to,
	})
}

func (ModelTracer) Refreshed(kind, name string, row int) {
	logging.Trace("model.refresh", map[string]interface{}{"kind": kind, "name": name, "row": row})
}

// Ignored records a registry event that no longer matches the cached rows.
func (ModelTracer) Ignored(event, kind, name string) {
	logging.Trace("model.ignored", map[string]interface{}{"event": event, "kind": kind, "name": name})
}

func (ModelTracer) Reset(reason string, rows int) {
	logging.Trace("model.reset", map[string]interface{}{"reason": reason, "rows": rows})
}

func (ModelTracer) PreviewError(kind, name string, err error) {
	if err == nil {
		return
	}
	logging.Trace("model.preview.error", map[string]interface{}{"kind": kind, "name": name, "error": err.Error()})
}

func (ModelTracer) Rename(kind, oldName, newName string, ok bool) {
	logging.Trace("model.rename", map[string]interface{}{"kind": kind, "old": oldName, "new": newName, "ok": ok})
}
