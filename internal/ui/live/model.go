package live

import (
	"time"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

const defaultTickInterval = 200 * time.Millisecond

// chromeLines is the number of rows taken by everything but the table.
const chromeLines = 5

// Options configures the live UI model.
type Options struct {
	NoColor      bool
	TickInterval time.Duration
	// OnInterrupt runs when the user presses ctrl+c.
	OnInterrupt func()
}

// Model is the Bubble Tea model behind `lexeval run --ui live`.
type Model struct {
	opts   Options
	state  State
	table  table.Model
	events <-chan Event
	now    time.Time
}

// NewModel builds a model that consumes events until the channel closes.
func NewModel(events <-chan Event, opts Options) Model {
	if opts.TickInterval <= 0 {
		opts.TickInterval = defaultTickInterval
	}
	rows := table.New(table.WithColumns(defaultColumns()), table.WithFocused(false))
	rows.SetStyles(tableStyles(opts.NoColor))
	return Model{opts: opts, table: rows, events: events, now: time.Now()}
}

// State returns the current UI state.
func (m Model) State() State {
	return m.state
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(nextEvent(m.events), tick(m.opts.TickInterval))
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case EventMsg:
		return applyEvent(m, msg.Event), nextEvent(m.events)
	case tickMsg:
		m.now = time.Time(msg)
		m.refresh()
		return m, tick(m.opts.TickInterval)
	case tea.WindowSizeMsg:
		m.table.SetColumns(columnsForWidth(msg.Width))
		m.table.SetWidth(msg.Width)
		m.table.SetHeight(max(msg.Height-chromeLines, 1))
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			if m.opts.OnInterrupt != nil {
				m.opts.OnInterrupt()
			}
			return m, tea.Quit
		}
	}
	return m, nil
}

func (m Model) View() string {
	noColor := m.opts.NoColor
	return lipgloss.JoinVertical(lipgloss.Left,
		renderHeader(m.state, m.now, noColor),
		renderSummary(m.state, noColor),
		renderPhaseLine(m.state, noColor),
		m.table.View(),
		renderFooter(m.state, noColor),
	)
}

func (m *Model) refresh() {
	m.table.SetRows(rowsForState(m.state, m.now))
}

// EventMsg carries one runner event into the Bubble Tea loop.
type EventMsg struct {
	Event Event
}

type tickMsg time.Time

// nextEvent waits for the next event and quits once the stream closes.
func nextEvent(events <-chan Event) tea.Cmd {
	if events == nil {
		return nil
	}
	return func() tea.Msg {
		event, ok := <-events
		if !ok {
			return tea.Quit()
		}
		return EventMsg{Event: event}
	}
}

func tick(interval time.Duration) tea.Cmd {
	return tea.Tick(interval, func(t time.Time) tea.Msg { return tickMsg(t) })
}

// applyEvent folds a runner event into the model. Item events for a phase
// or model other than the current one are stale and dropped.
func applyEvent(m Model, event Event) Model {
	state := &m.state
	switch event.Kind {
	case EventRunStart:
		state.RunID = event.RunID
		state.Models = event.Models
		state.Words = event.Words
		if state.StartedAt.IsZero() {
			state.StartedAt = time.Now()
		}
	case EventPhaseStart:
		state.Phase = event.Phase
		state.Model = event.Model
		state.Items = event.Items
		state.Rows = nil
		state.Counts = StatusCounts{}
		state.LastEvent = ""
	case EventItem:
		if event.Item.Phase != state.Phase || event.Item.Model != state.Model {
			return m
		}
		*state = Reduce(*state, event.Item)
	case EventPhaseEnd:
		state.Finished = append(state.Finished, event.Stats)
		state.LastEvent = formatPhaseEnd(event.Stats)
	default:
		return m
	}
	m.refresh()
	return m
}
