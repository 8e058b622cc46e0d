package events

import "github.com/atomicstack/blendboard/internal/logging"

type StackTracer struct{}

var Stack = StackTracer{}

func (StackTracer) Push(name, from, to string) {
	logging.Trace("stack.push", map[string]interface{}{"stack": name, "from": from, "to": to})
}

func (StackTracer) Transition(name, view string, pushed bool) {
	logging.Trace("stack.transition", map[string]interface{}{"stack": name, "view": view, "pushed": pushed})
}

func (StackTracer) Cleared(name, view string) {
	logging.Trace("stack.cleared", map[string]interface{}{"stack": name, "view": view})
}
