package tui

import (
	"context"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/chris/grafik/internal/db"
	"github.com/chris/grafik/internal/schedule"
	"github.com/chris/grafik/internal/scheduler"
	"github.com/chris/grafik/pkg/models"
)

// TickInterval is how often the agenda advances statuses and checks reminders
const TickInterval = 60 * time.Second

// ViewState represents which tab is currently displayed
type ViewState int

const (
	ActiveView ViewState = iota
	ArchiveView
)

// Model represents the TUI state
type Model struct {
	store  db.Store
	runner *scheduler.Runner

	// Data
	events   []models.Event
	registry *schedule.Registry

	// Derived view
	query    schedule.Query
	days     []schedule.Day
	visible  []models.Event
	upcoming []models.Event

	// Selection
	selectedIdx  int
	scrollOffset int

	// Search input
	searching bool
	searchBuf string

	// Footer state
	notifications []schedule.Notification
	statusMsg     string
	lastErr       error

	upcomingLimit int
	showHelp      bool

	// UI dimensions
	width  int
	height int

	// Focus
	focused bool

	// For testing - allows injecting "now"
	now func() time.Time
}

// Option is a functional option for configuring the Model
type Option func(*Model)

// WithNow sets the function used to get the current time (for testing)
func WithNow(fn func() time.Time) Option {
	return func(m *Model) {
		m.now = fn
	}
}

// WithUpcomingLimit sets how many reminders the footer lists
func WithUpcomingLimit(n int) Option {
	return func(m *Model) {
		m.upcomingLimit = n
	}
}

// New creates a new Model over store
func New(store db.Store, opts ...Option) *Model {
	m := &Model{
		store:         store,
		registry:      schedule.NewRegistry(nil),
		query:         schedule.AllActive(),
		upcomingLimit: schedule.DefaultUpcomingLimit,
		focused:       true,
		now:           time.Now,
	}

	for _, opt := range opts {
		opt(m)
	}

	// The runner reports reminders through its result so the footer can show them
	quiet := scheduler.NotifierFunc(func(context.Context, int64, schedule.Notification) error { return nil })
	m.runner = scheduler.NewRunner(store, quiet, scheduler.WithClock(func() time.Time { return m.now() }))

	return m
}

// Init implements tea.Model
func (m *Model) Init() tea.Cmd {
	return tea.Batch(m.runTick, scheduleTick())
}

func scheduleTick() tea.Cmd {
	return tea.Tick(TickInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// runTick advances the stored events, waits for the writes and reloads
func (m *Model) runTick() tea.Msg {
	ctx := context.Background()
	res, err := m.runner.RunOnce(ctx)
	if err != nil {
		return errMsg{err}
	}
	m.runner.Wait()

	loaded := m.loadEvents()
	if msg, ok := loaded.(eventsLoadedMsg); ok {
		msg.result = &res
		return msg
	}
	return loaded
}

// loadEvents reads a fresh snapshot of events and persons
func (m *Model) loadEvents() tea.Msg {
	ctx := context.Background()
	events, err := m.store.ListEvents(ctx)
	if err != nil {
		return errMsg{err}
	}
	persons, err := m.store.ListPersons(ctx)
	if err != nil {
		return errMsg{err}
	}
	return eventsLoadedMsg{events: events, persons: persons}
}

// Update implements tea.Model
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ensureSelectedVisible()
		return m, nil

	case tea.FocusMsg:
		m.focused = true
		return m, nil

	case tea.BlurMsg:
		m.focused = false
		return m, nil

	case tickMsg:
		return m, tea.Batch(m.runTick, scheduleTick())

	case eventsLoadedMsg:
		m.events = msg.events
		m.registry = schedule.NewRegistry(msg.persons)
		if msg.result != nil {
			for _, n := range msg.result.Notified {
				m.notifications = append(m.notifications, n.Notification)
			}
			if len(msg.result.Errors) > 0 {
				m.statusMsg = fmt.Sprintf("%d malformed events skipped", len(msg.result.Errors))
			}
		}
		m.lastErr = nil
		m.rebuild()
		return m, nil

	case actionDoneMsg:
		m.statusMsg = msg.text
		return m, m.loadEvents

	case yankResultMsg:
		if msg.err != nil {
			m.lastErr = msg.err
		} else {
			m.statusMsg = "Copied"
		}
		return m, nil

	case errMsg:
		m.lastErr = msg.err
		return m, nil
	}

	return m, nil
}

func (m *Model) handleKey(msg tea.KeyMsg) (*Model, tea.Cmd) {
	if m.searching {
		return m.handleSearchKey(msg)
	}

	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit

	case "j", "down":
		if m.selectedIdx < len(m.visible)-1 {
			m.selectedIdx++
			m.ensureSelectedVisible()
		}
		return m, nil

	case "k", "up":
		if m.selectedIdx > 0 {
			m.selectedIdx--
			m.ensureSelectedVisible()
		}
		return m, nil

	case "tab":
		m.query.Archived = !m.query.Archived
		m.selectedIdx = 0
		m.scrollOffset = 0
		m.rebuild()
		return m, nil

	case "/":
		m.searching = true
		m.searchBuf = m.query.Text
		return m, nil

	case "esc":
		m.query.Text = ""
		m.rebuild()
		return m, nil

	case "t":
		m.query.Type = nextFilter(m.query.Type, typeFilters())
		m.selectedIdx = 0
		m.rebuild()
		return m, nil

	case "s":
		m.query.Status = nextFilter(m.query.Status, statusFilters())
		m.selectedIdx = 0
		m.rebuild()
		return m, nil

	case "x":
		if e, ok := m.Selected(); ok {
			return m, m.cancelEvent(e)
		}
		return m, nil

	case "a":
		if e, ok := m.Selected(); ok {
			return m, m.toggleArchive(e)
		}
		return m, nil

	case "y":
		if e, ok := m.Selected(); ok {
			return m, yankToClipboard(yankText(e))
		}
		return m, nil

	case "n":
		m.notifications = nil
		m.statusMsg = ""
		return m, nil

	case "r":
		return m, m.loadEvents

	case "?":
		m.showHelp = !m.showHelp
		return m, nil
	}

	return m, nil
}

func (m *Model) handleSearchKey(msg tea.KeyMsg) (*Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEnter:
		m.searching = false
		m.query.Text = m.searchBuf
		m.selectedIdx = 0
		m.rebuild()
	case tea.KeyEsc:
		m.searching = false
		m.searchBuf = ""
	case tea.KeyBackspace:
		if r := []rune(m.searchBuf); len(r) > 0 {
			m.searchBuf = string(r[:len(r)-1])
		}
	case tea.KeySpace:
		m.searchBuf += " "
	case tea.KeyRunes:
		m.searchBuf += string(msg.Runes)
	case tea.KeyCtrlC:
		return m, tea.Quit
	}
	return m, nil
}

func (m *Model) cancelEvent(e models.Event) tea.Cmd {
	return func() tea.Msg {
		if err := schedule.Cancel(&e); err != nil {
			return errMsg{err}
		}
		if err := m.store.UpdateEvent(context.Background(), &e); err != nil {
			return errMsg{err}
		}
		return actionDoneMsg{text: fmt.Sprintf("Cancelled: %s", e.Title)}
	}
}

func (m *Model) toggleArchive(e models.Event) tea.Cmd {
	return func() tea.Msg {
		text := "Archived: " + e.Title
		if e.Archived {
			schedule.Unarchive(&e)
			text = "Restored: " + e.Title
		} else {
			schedule.Archive(&e)
		}
		if err := m.store.UpdateEvent(context.Background(), &e); err != nil {
			return errMsg{err}
		}
		return actionDoneMsg{text: text}
	}
}

// rebuild recomputes the filtered, grouped view from the snapshot
func (m *Model) rebuild() {
	filtered := schedule.Filter(m.events, m.query)
	grouped := schedule.Group(filtered)
	m.days = grouped.Days()
	m.visible = grouped.Ordered()
	m.upcoming = schedule.Upcoming(m.events, m.upcomingLimit)

	if m.selectedIdx >= len(m.visible) {
		m.selectedIdx = max(len(m.visible)-1, 0)
	}
	m.ensureSelectedVisible()
}

// selectedBodyLine returns the body line of the selected event and the line
// of its day header
func (m *Model) selectedBodyLine() (eventLine int, headerLine int) {
	line := 0
	seen := 0
	for _, d := range m.days {
		hStart := line
		line++ // day header
		for range d.Events {
			if seen == m.selectedIdx {
				return line, hStart
			}
			line++
			seen++
		}
		line++ // blank after day
	}
	return line, 0
}

// ensureSelectedVisible adjusts scrollOffset to keep the selection in view
func (m *Model) ensureSelectedVisible() {
	if m.height == 0 || len(m.visible) == 0 {
		m.scrollOffset = 0
		return
	}
	avail := max(m.bodyHeight(), 1)
	eventLine, headerLine := m.selectedBodyLine()
	if eventLine < m.scrollOffset {
		m.scrollOffset = headerLine
	}
	if eventLine >= m.scrollOffset+avail {
		m.scrollOffset = eventLine - avail + 1
	}
}

// Selected returns the highlighted event
func (m *Model) Selected() (models.Event, bool) {
	if m.selectedIdx < 0 || m.selectedIdx >= len(m.visible) {
		return models.Event{}, false
	}
	return m.visible[m.selectedIdx], true
}

// View implements tea.Model
func (m *Model) View() string {
	return m.renderView()
}

// Messages
type tickMsg time.Time

type eventsLoadedMsg struct {
	events  []models.Event
	persons []models.Person
	result  *scheduler.Result
}

type actionDoneMsg struct {
	text string
}

type errMsg struct {
	err error
}

// Getters for testing
func (m *Model) SelectedIdx() int {
	return m.selectedIdx
}

func (m *Model) ViewState() ViewState {
	if m.query.Archived {
		return ArchiveView
	}
	return ActiveView
}

func (m *Model) Query() schedule.Query {
	return m.query
}

func (m *Model) Days() []schedule.Day {
	return m.days
}

func (m *Model) Visible() []models.Event {
	return m.visible
}

func (m *Model) Upcoming() []models.Event {
	return m.upcoming
}

func (m *Model) Notifications() []schedule.Notification {
	return m.notifications
}

func (m *Model) Searching() bool {
	return m.searching
}

func (m *Model) Focused() bool {
	return m.focused
}

func (m *Model) ScrollOffset() int {
	return m.scrollOffset
}

func (m *Model) Err() error {
	return m.lastErr
}
