package events

import "github.com/atomicstack/style-browser/internal/logging"

type UITracer struct{}

type FilterTracer struct{}

type ActionTracer struct{}

type renameReason string

const (
	ReasonEscape renameReason = "escape"
	ReasonEmpty  renameReason = "empty"
)

var (
	UI     = UITracer{}
	Filter = FilterTracer{}
	Action = ActionTracer{}
)

func (UITracer) Cursor(row int, kind, name string) {
	logging.Trace("ui.cursor", map[string]interface{}{"row": row, "kind": kind, "name": name})
}

// Hotkey records a key that changed a browser setting and the value it
// now has.
func (UITracer) Hotkey(key string, value interface{}) {
	logging.Trace("ui.hotkey", map[string]interface{}{"key": key, "value": value})
}

func (UITracer) Resize(width, height int) {
	logging.Trace("ui.resize", map[string]interface{}{"width": width, "height": height})
}

func (ActionTracer) Error(err error) {
	if err == nil {
		return
	}
	logging.Trace("action.error", map[string]interface{}{"error": err.Error()})
}

func (ActionTracer) Success(info string) {
	logging.Trace("action.success", map[string]interface{}{"info": info})
}

func (ActionTracer) Favorite(kind, name string, favorite bool) {
	logging.Trace("action.favorite", map[string]interface{}{"kind": kind, "name": name, "favorite": favorite})
}

func (ActionTracer) RenamePrompt(kind, name string) {
	logging.Trace("action.rename.prompt", map[string]interface{}{"kind": kind, "name": name})
}

func (ActionTracer) SubmitRename(name, newName string) {
	logging.Trace("action.rename.submit", map[string]interface{}{"name": name, "new": newName})
}

func (ActionTracer) CancelRename(name string, reason renameReason) {
	logging.Trace("action.rename.cancel", map[string]interface{}{"name": name, "reason": string(reason)})
}

func (FilterTracer) Cleared() {
	logging.Trace("filter.clear", nil)
}

func (FilterTracer) WordBackspace(filter string) {
	logging.Trace("filter.word-backspace", map[string]interface{}{"filter": filter})
}

func (FilterTracer) Cursor(pos int) {
	logging.Trace("filter.cursor", map[string]interface{}{"cursor": pos})
}

func (FilterTracer) CursorWord(pos int) {
	logging.Trace("filter.cursor-word", map[string]interface{}{"cursor": pos})
}

func (FilterTracer) Append(filter string) {
	logging.Trace("filter.append", map[string]interface{}{"filter": filter})
}

func (FilterTracer) Backspace(filter string) {
	logging.Trace("filter.backspace", map[string]interface{}{"filter": filter})
}
