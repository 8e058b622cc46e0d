package events

import "github.com/atomicstack/blendboard/internal/logging"

// CollectionTracer records structural changes applied to a UI collection.
type CollectionTracer struct{}

var Collection = CollectionTracer{}

func (CollectionTracer) Add(name, item string, index int) {
	logging.Trace("collection.add", map[string]interface{}{"collection": name, "item": item, "index": index})
}

func (CollectionTracer) Insert(name, item string, index int) {
	logging.Trace("collection.insert", map[string]interface{}{"collection": name, "item": item, "index": index})
}

func (CollectionTracer) Remove(name, item string, index int) {
	logging.Trace("collection.remove", map[string]interface{}{"collection": name, "item": item, "index": index})
}

func (CollectionTracer) Move(name, item string, index int) {
	logging.Trace("collection.move", map[string]interface{}{"collection": name, "item": item, "index": index})
}

func (CollectionTracer) Swap(name, a string, indexA int, b string, indexB int) {
	logging.Trace("collection.swap", map[string]interface{}{
		"collection": name,
		"a":          a,
		"indexA":     indexA,
		"b":          b,
		"indexB":     indexB,
	})
}

func (CollectionTracer) Sort(name string) {
	logging.Trace("collection.sort", map[string]interface{}{"collection": name})
}

func (CollectionTracer) Filter(name string, filtered bool, visible int) {
	logging.Trace("collection.filter", map[string]interface{}{"collection": name, "filtered": filtered, "visible": visible})
}

func (CollectionTracer) Truncate(name string, released int) {
	logging.Trace("collection.truncate", map[string]interface{}{"collection": name, "released": released})
}

func (CollectionTracer) Layout(name string, attached, stashed int) {
	logging.Trace("collection.layout", map[string]interface{}{"collection": name, "attached": attached, "stashed": stashed})
}
