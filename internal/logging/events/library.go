package events

import "github.com/atomicstack/style-browser/internal/logging"

type LibraryTracer struct{}

var Library = LibraryTracer{}

func (LibraryTracer) Load(path string, symbols, ramps int) {
	logging.Trace("library.load", map[string]interface{}{"path": path, "symbols": symbols, "ramps": ramps})
}

func (LibraryTracer) Change(path, op string) {
	logging.Trace("library.fs", map[string]interface{}{"path": path, "op": op})
}

// Applied summarises the registry mutations a reload produced.
func (LibraryTracer) Applied(added, removed, updated, retagged int) {
	logging.Trace("library.apply", map[string]interface{}{
		"added":    added,
		"removed":  removed,
		"updated":  updated,
		"retagged": retagged,
	})
}

func (LibraryTracer) Error(path string, err error) {
	if err == nil {
		return
	}
	logging.Trace("library.error", map[string]interface{}{"path": path, "error": err.Error()})
}
