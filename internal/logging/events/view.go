package events

import "github.com/atomicstack/style-browser/internal/logging"

type ViewTracer struct{}

var View = ViewTracer{}

// Filter records a change to one filter dimension together with the
// resulting number of visible rows.
func (ViewTracer) Filter(dimension string, value interface{}, visible int) {
	logging.Trace("view.filter", map[string]interface{}{
		"dimension": dimension,
		"value":     value,
		"visible":   visible,
	})
}

func (ViewTracer) Membership(set string, size int) {
	logging.Trace("view.membership", map[string]interface{}{"set": set, "size": size})
}

func (ViewTracer) Sort(order string) {
	logging.Trace("view.sort", map[string]interface{}{"order": order})
}
