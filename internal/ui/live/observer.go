package live

import (
	"io"
	"os"
	"sync"

	tea "github.com/charmbracelet/bubbletea"

	"lexeval/internal/runner"
)

// eventBuffer absorbs bursts of running updates between UI frames.
const eventBuffer = 256

// Controller runs the live UI and implements runner.RunObserver.
type Controller struct {
	events chan Event
	done   chan struct{}

	mu     sync.Mutex
	closed bool
}

// Start launches a live UI controller that writes to stdout.
func Start(stdout io.Writer, opts Options) *Controller {
	if stdout == nil {
		stdout = os.Stdout
	}
	events := make(chan Event, eventBuffer)
	model := NewModel(events, opts)
	program := tea.NewProgram(model, tea.WithOutput(stdout), tea.WithAltScreen())
	controller := newController(events)
	go func() {
		_, _ = program.Run()
		close(controller.done)
	}()
	return controller
}

func newController(events chan Event) *Controller {
	return &Controller{events: events, done: make(chan struct{})}
}

// Close signals the UI to stop.
func (c *Controller) Close() {
	if c == nil {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	c.closed = true
	close(c.events)
}

// Wait blocks until the UI has exited.
func (c *Controller) Wait() {
	if c == nil {
		return
	}
	<-c.done
}

// OnRunStart forwards run start events to the UI.
func (c *Controller) OnRunStart(runID string, models []string, words int) {
	c.send(Event{Kind: EventRunStart, RunID: runID, Models: models, Words: words})
}

// OnPhaseStart forwards phase start events to the UI.
func (c *Controller) OnPhaseStart(phase runner.Phase, model string, items int) {
	c.send(Event{Kind: EventPhaseStart, Phase: phase, Model: model, Items: items})
}

// OnItemEvent forwards item status updates to the UI.
func (c *Controller) OnItemEvent(event runner.ItemEvent) {
	c.send(Event{Kind: EventItem, Item: event})
}

// OnPhaseEnd forwards phase completion events to the UI.
func (c *Controller) OnPhaseEnd(stats runner.PhaseStats) {
	c.send(Event{Kind: EventPhaseEnd, Phase: stats.Phase, Model: stats.Model, Stats: stats})
}

// OnRunEnd forwards run completion events to the UI and closes it.
func (c *Controller) OnRunEnd(result runner.Result) {
	c.send(Event{Kind: EventRunEnd, RunID: result.RunID})
	c.Close()
}

// send hands event to the UI. Running updates are dropped when the buffer is
// full; every other event waits until the UI takes it or exits.
func (c *Controller) send(event Event) {
	if c == nil {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	if event.Kind == EventItem && !event.Item.Type.IsTerminal() {
		select {
		case c.events <- event:
		default:
		}
		return
	}
	select {
	case c.events <- event:
	case <-c.done:
	}
}
