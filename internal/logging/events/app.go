package events

import "github.com/atomicstack/blendboard/internal/logging"

type AppTracer struct{}

var App = AppTracer{}

func (AppTracer) Start(payload map[string]interface{}) {
	logging.Trace("app.start", payload)
}

func (AppTracer) Snapshot(width, height int) {
	logging.Trace("app.snapshot", map[string]interface{}{"width": width, "height": height})
}
