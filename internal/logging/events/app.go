package events

import "github.com/atomicstack/webtop/internal/logging"

type AppTracer struct{}

var App = AppTracer{}

func (AppTracer) Start(payload map[string]interface{}) {
	logging.Trace("app.start", payload)
}

func (AppTracer) Stop(windows int) {
	logging.Trace("app.stop", map[string]interface{}{"windows": windows})
}
