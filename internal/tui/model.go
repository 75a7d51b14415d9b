// Package tui is the interactive dashboard. The bubbletea update loop is the
// only goroutine that touches the engine: scheduler signals and store-change
// notifications arrive as messages and are applied there.
package tui

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/fsnotify/fsnotify"

	"github.com/julianstephens/arise/internal/backup"
	"github.com/julianstephens/arise/internal/constants"
	"github.com/julianstephens/arise/internal/engine"
	"github.com/julianstephens/arise/internal/logger"
	"github.com/julianstephens/arise/internal/models"
	"github.com/julianstephens/arise/internal/notifier"
	"github.com/julianstephens/arise/internal/scheduler"
	"github.com/julianstephens/arise/internal/storage"
	"github.com/julianstephens/arise/internal/tui/components/roster"
	"github.com/julianstephens/arise/internal/tui/components/todos"
	"github.com/julianstephens/arise/internal/utils"
)

type tab int

const (
	tabDashboard tab = iota
	tabShadows
	tabHeatmap
	tabTodos
	tabProfile
)

var tabNames = []string{"Dashboard", "Shadows", "Heatmap", "Todos", "Profile"}

type formKind int

const (
	formNone formKind = iota
	formAddTodo
	formEditTodo
	formRename
	formAvatar
	formQuest
	formManual
	formRelease
)

// formValues backs every huh form. Forms bind to its fields by pointer, so
// it must outlive the value copies bubbletea makes of Model.
type formValues struct {
	Text     string
	Amount   string
	QuestID  int
	Activity models.ActivityType
	Confirm  bool
	TodoID   string
	ShadowID string
}

// quietPeriod is how long after its own write the dashboard ignores store
// change notifications, which are mostly echoes of that write.
const quietPeriod = 2 * time.Second

type Options struct {
	Engine    *engine.Engine
	Store     storage.Provider
	StoreURI  string
	Scheduler *scheduler.Scheduler
	Notifier  *notifier.Notifier
	// Reload reopens the store and rebuilds the engine after an external change.
	Reload func() (*engine.Engine, []engine.Event, error)
}

type Model struct {
	engine   *engine.Engine
	notifier *notifier.Notifier
	reload   func() (*engine.Engine, []engine.Event, error)

	signals     <-chan scheduler.Signal
	stopSignals context.CancelFunc
	watcher     *fsnotify.Watcher
	storePath   string
	lastWrite   time.Time

	tab    tab
	keys   KeyMap
	help   help.Model
	todos  todos.Model
	roster roster.Model

	month       time.Time
	showCatalog bool

	form     *huh.Form
	formKind formKind
	values   *formValues

	modal     []engine.Event
	status    string
	statusErr bool

	width    int
	height   int
	quitting bool
}

func NewModel(opts Options) Model {
	e := opts.Engine
	m := Model{
		engine:   e,
		notifier: opts.Notifier,
		reload:   opts.Reload,
		keys:     DefaultKeyMap(),
		help:     help.New(),
		todos:    todos.New(e.Todos(), 0, 0),
		roster:   roster.New(e.Roster(), 0, 0),
		month:    currentMonth(e),
	}

	if opts.Scheduler != nil {
		ctx, cancel := context.WithCancel(context.Background())
		m.signals = opts.Scheduler.Start(ctx)
		m.stopSignals = cancel
	}

	if opts.Store != nil && backup.Supported(opts.StoreURI) {
		path := opts.Store.GetConfigPath()
		w, err := watchStore(path)
		if err != nil {
			logger.Warn("Store changes from other processes will not be picked up", "error", err)
		} else {
			m.watcher = w
			m.storePath = path
		}
	}

	if e.NeedsAcceptance() {
		m.modal = append(m.modal, engine.Event{Kind: engine.EventPlayerQualification, Message: engine.QualificationMessage})
	}
	return m
}

func currentMonth(e *engine.Engine) time.Time {
	month, err := utils.ParseMonth(e.Today()[:len(constants.MonthFormat)], e.Location())
	if err != nil {
		return time.Now().In(e.Location())
	}
	return month
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(waitForSignal(m.signals), waitForStoreChange(m.watcher, m.storePath))
}

func (m Model) ShortHelp() []key.Binding {
	keys := []key.Binding{m.keys.Tab, m.keys.Quit, m.keys.Help}
	switch m.tab {
	case tabDashboard:
		keys = append(keys, m.keys.Study, m.keys.Play, m.keys.Idle, m.keys.Stop)
	case tabShadows:
		keys = append(keys, m.keys.Catalog)
	case tabHeatmap:
		keys = append(keys, m.keys.PrevMonth, m.keys.NextMonth)
	case tabProfile:
		keys = append(keys, m.keys.Rename, m.keys.Avatar)
	}
	return keys
}

func (m Model) FullHelp() [][]key.Binding {
	global := []key.Binding{m.keys.Tab, m.keys.ShiftTab, m.keys.Quit, m.keys.Help}

	var actions []key.Binding
	switch m.tab {
	case tabDashboard:
		actions = []key.Binding{m.keys.Study, m.keys.Play, m.keys.Idle, m.keys.Pause, m.keys.Stop, m.keys.Reset, m.keys.Quest, m.keys.Manual}
	case tabShadows:
		actions = []key.Binding{m.keys.Catalog}
	case tabHeatmap:
		actions = []key.Binding{m.keys.PrevMonth, m.keys.NextMonth, m.keys.ThisMonth}
	case tabProfile:
		actions = []key.Binding{m.keys.Rename, m.keys.Avatar, m.keys.Accept}
	}
	return [][]key.Binding{global, actions}
}

// filtering reports whether the active list owns the keyboard.
func (m Model) filtering() bool {
	switch m.tab {
	case tabTodos:
		return m.todos.Filtering()
	case tabShadows:
		return m.roster.Filtering()
	}
	return false
}

// touch records an engine write so the store watcher can ignore its echo.
func (m *Model) touch() {
	m.lastWrite = time.Now()
}

func (m *Model) refresh() {
	m.todos.SetTodos(m.engine.Todos())
	m.roster.SetShadows(m.engine.Roster())
}

func (m *Model) setStatus(s string) {
	m.status = s
	m.statusErr = false
}

func (m *Model) setError(err error) {
	m.status = err.Error()
	m.statusErr = true
}

func (m *Model) shutdown() {
	if m.stopSignals != nil {
		m.stopSignals()
	}
	if m.watcher != nil {
		if err := m.watcher.Close(); err != nil {
			logger.Debug("Failed to close store watcher", "error", err)
		}
	}
}
