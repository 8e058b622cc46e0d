package events

import "github.com/atomicstack/blendboard/internal/logging"

// SourceTracer records catalog reloads and reconciliation.
type SourceTracer struct{}

var Source = SourceTracer{}

func (SourceTracer) Reload(path string, revision, pages int) {
	logging.Trace("source.reload", map[string]interface{}{"path": path, "revision": revision, "pages": pages})
}

func (SourceTracer) Error(path string, err error) {
	if err == nil {
		return
	}
	logging.Trace("source.error", map[string]interface{}{"path": path, "error": err.Error()})
}

func (SourceTracer) Reconcile(page string, added, removed, relabeled int) {
	logging.Trace("source.reconcile", map[string]interface{}{
		"page":      page,
		"added":     added,
		"removed":   removed,
		"relabeled": relabeled,
	})
}
