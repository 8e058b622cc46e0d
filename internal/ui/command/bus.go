package command

import (
	"github.com/atomicstack/blendboard/internal/logging/events"
	tea "github.com/charmbracelet/bubbletea"
)

// Request encapsulates one board operation.
type Request struct {
	ID    string
	Label string
	Do    func() (string, error)
}

// Result is delivered to the model once a request has run.
type Result struct {
	ID   string
	Info string
	Err  error
}

// Bus coordinates the execution of board operations.
type Bus struct{}

// New initialises a command bus instance.
func New() *Bus {
	return &Bus{}
}

// Execute runs req on the caller's goroutine, since board state belongs to
// the update loop, and returns a command that reports the outcome.
func (b *Bus) Execute(req Request) tea.Cmd {
	events.Command.Queue(req.ID, req.Label)
	if req.Do == nil {
		events.Command.Skip(req.ID, req.Label)
		return nil
	}
	info, err := req.Do()
	events.Command.Result(req.ID, req.Label, err)
	res := Result{ID: req.ID, Info: info, Err: err}
	return func() tea.Msg { return res }
}
