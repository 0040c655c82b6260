package events

import "github.com/atomicstack/webtop/internal/logging"

type MenuTracer struct{}

type menuReason string

const (
	MenuReasonDisabled menuReason = "disabled"
	MenuReasonEmpty    menuReason = "empty"
	MenuReasonMissing  menuReason = "missing"
)

var Menu = MenuTracer{}

func (MenuTracer) Register(id, component string, count int, priority, strategy string, exclusive bool) {
	logging.Trace("menu.register", map[string]interface{}{
		"id":        id,
		"component": component,
		"count":     count,
		"priority":  priority,
		"strategy":  strategy,
		"exclusive": exclusive,
	})
}

func (MenuTracer) Drop(id string, reason menuReason) {
	logging.Trace("menu.drop", map[string]interface{}{"id": id, "reason": string(reason)})
}

func (MenuTracer) Unregister(id string, removed int) {
	logging.Trace("menu.unregister", map[string]interface{}{"id": id, "removed": removed})
}

func (MenuTracer) UnregisterComponent(component string, removed int) {
	logging.Trace("menu.unregister.component", map[string]interface{}{"component": component, "removed": removed})
}

func (MenuTracer) Update(id string) {
	logging.Trace("menu.update", map[string]interface{}{"id": id})
}

func (MenuTracer) Enabled(enabled bool) {
	logging.Trace("menu.enabled", map[string]interface{}{"enabled": enabled})
}
