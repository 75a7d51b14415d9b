package tui

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/julianstephens/arise/internal/engine"
	"github.com/julianstephens/arise/internal/models"
	"github.com/julianstephens/arise/internal/scheduler"
	"github.com/julianstephens/arise/internal/tui/components/roster"
	"github.com/julianstephens/arise/internal/tui/components/todos"
	"github.com/julianstephens/arise/internal/validation"
)

// chromeHeight is the space taken by tabs, summaries, status and help.
const chromeHeight = 10

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		h, v := docStyle.GetFrameSize()
		listHeight := max(msg.Height-v-chromeHeight, 3)
		m.todos.SetSize(msg.Width-h, listHeight)
		m.roster.SetSize(msg.Width-h, listHeight)
		m.help.Width = msg.Width - h
		return m, nil

	case signalMsg:
		next, cmd := m.handleSignal(scheduler.Signal(msg))
		return next, tea.Batch(cmd, waitForSignal(next.signals))

	case storeChangedMsg:
		next, cmd := m.handleStoreChanged()
		return next, tea.Batch(cmd, waitForStoreChange(next.watcher, next.storePath))
	}

	if m.form != nil {
		return m.updateForm(msg)
	}

	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m.quit()
		}
		if len(m.modal) > 0 {
			return m.handleModalKey(msg)
		}
		return m.handleKey(msg)

	case todos.AddTodoMsg:
		m.values = &formValues{}
		return m.openForm(formAddTodo, newTextForm("Todo", "What needs doing?", &m.values.Text))
	case todos.ToggleTodoMsg:
		if _, err := m.engine.ToggleTodo(msg.ID); err != nil {
			m.setError(err)
			return m, nil
		}
		m.touch()
		m.refresh()
		return m, nil
	case todos.EditTodoMsg:
		m.values = &formValues{Text: msg.Text, TodoID: msg.ID}
		return m.openForm(formEditTodo, newTextForm("Todo", "", &m.values.Text))
	case todos.DeleteTodoMsg:
		if err := m.engine.DeleteTodo(msg.ID); err != nil {
			m.setError(err)
			return m, nil
		}
		m.touch()
		m.refresh()
		m.setStatus("Todo deleted")
		return m, nil

	case roster.AriseMsg:
		events, err := m.engine.AttemptArise()
		if err != nil {
			m.setError(err)
			return m, nil
		}
		m.touch()
		m.refresh()
		m.setStatus(fmt.Sprintf("Arise tokens left: %d", m.engine.Tokens()))
		return m.handleEvents(events)
	case roster.BuySlotMsg:
		cost := m.engine.SlotCost()
		slots, err := m.engine.PurchaseSlot()
		if err != nil {
			m.setError(fmt.Errorf("%w: a slot costs %d coins", err, cost))
			return m, nil
		}
		m.touch()
		m.setStatus(fmt.Sprintf("Purchased slot %d for %d coins", slots, cost))
		return m, nil
	case roster.LevelUpMsg:
		s, err := m.engine.LevelUpShadow(msg.ID)
		if err != nil {
			m.setError(err)
			return m, nil
		}
		m.touch()
		m.refresh()
		m.setStatus(fmt.Sprintf("%s reached level %d", s.Name, s.Level))
		return m, nil
	case roster.ReleaseMsg:
		m.values = &formValues{ShadowID: msg.ID}
		return m.openForm(formRelease, newReleaseForm(msg.Name, m.values))
	}

	return m, nil
}

func (m Model) quit() (tea.Model, tea.Cmd) {
	m.quitting = true
	m.shutdown()
	return m, tea.Quit
}

func (m Model) handleSignal(sig scheduler.Signal) (Model, tea.Cmd) {
	switch sig.Kind {
	case scheduler.Tick:
		if active, _ := m.engine.Timer(); active != "" {
			m.engine.Tick()
			m.touch()
		}
	case scheduler.DayPoll:
		events := m.engine.CheckDay()
		if len(events) == 0 {
			return m, nil
		}
		m.touch()
		m.refresh()
		m.month = currentMonth(m.engine)
		return m.handleEvents(events)
	}
	return m, nil
}

// handleStoreChanged rebuilds the engine when another process wrote the
// store. Changes inside the quiet period are taken to be our own writes.
func (m Model) handleStoreChanged() (Model, tea.Cmd) {
	if m.reload == nil || time.Since(m.lastWrite) < quietPeriod {
		return m, nil
	}
	e, events, err := m.reload()
	if err != nil {
		m.setError(fmt.Errorf("reload store: %w", err))
		return m, nil
	}
	m.engine = e
	m.refresh()
	m.setStatus("Store changed on disk, reloaded")

	// A pending qualification is already on screen or was dismissed.
	return m.handleEvents(withoutKind(events, engine.EventPlayerQualification))
}

func withoutKind(events []engine.Event, kind engine.EventKind) []engine.Event {
	var kept []engine.Event
	for _, ev := range events {
		if ev.Kind != kind {
			kept = append(kept, ev)
		}
	}
	return kept
}

// handleEvents queues events for the modal and forwards them to the tray.
func (m Model) handleEvents(events []engine.Event) (Model, tea.Cmd) {
	var shown []engine.Event
	for _, ev := range events {
		if ev.Message != "" {
			shown = append(shown, ev)
		}
	}
	if len(shown) == 0 {
		return m, nil
	}
	m.modal = append(m.modal, shown...)
	if !m.notifier.Enabled() {
		return m, nil
	}
	n := m.notifier
	return m, func() tea.Msg {
		n.NotifyEvents(shown)
		return nil
	}
}

func (m Model) handleModalKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	head := m.modal[0]
	switch {
	case key.Matches(msg, m.keys.Confirm):
		if head.Kind == engine.EventPlayerQualification {
			m.engine.Accept()
			m.touch()
			m.setStatus("You are now a Player. Arise!")
		}
	case key.Matches(msg, m.keys.Dismiss):
	default:
		return m, nil
	}
	m.modal = m.modal[1:]
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if !m.filtering() {
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m.quit()
		case key.Matches(msg, m.keys.Tab):
			m.tab = (m.tab + 1) % tab(len(tabNames))
			return m, nil
		case key.Matches(msg, m.keys.ShiftTab):
			m.tab = (m.tab + tab(len(tabNames)) - 1) % tab(len(tabNames))
			return m, nil
		case key.Matches(msg, m.keys.Help):
			m.help.ShowAll = !m.help.ShowAll
			return m, nil
		}
	}

	var cmd tea.Cmd
	switch m.tab {
	case tabDashboard:
		return m.handleDashboardKey(msg)
	case tabShadows:
		if !m.filtering() && key.Matches(msg, m.keys.Catalog) {
			m.showCatalog = !m.showCatalog
			return m, nil
		}
		m.roster, cmd = m.roster.Update(msg)
	case tabHeatmap:
		switch {
		case key.Matches(msg, m.keys.PrevMonth):
			m.month = m.month.AddDate(0, -1, 0)
		case key.Matches(msg, m.keys.NextMonth):
			m.month = m.month.AddDate(0, 1, 0)
		case key.Matches(msg, m.keys.ThisMonth):
			m.month = currentMonth(m.engine)
		}
	case tabTodos:
		m.todos, cmd = m.todos.Update(msg)
	case tabProfile:
		switch {
		case key.Matches(msg, m.keys.Rename):
			m.values = &formValues{Text: m.engine.Profile().Username}
			return m.openForm(formRename, newTextForm("Username", "Hunter", &m.values.Text))
		case key.Matches(msg, m.keys.Avatar):
			m.values = &formValues{Text: m.engine.Profile().ProfilePicture}
			return m.openForm(formAvatar, newAvatarForm(&m.values.Text))
		case key.Matches(msg, m.keys.Accept):
			if m.engine.NeedsAcceptance() {
				m.engine.Accept()
				m.touch()
				m.modal = withoutKind(m.modal, engine.EventPlayerQualification)
				m.setStatus("You are now a Player. Arise!")
			}
		}
	}
	return m, cmd
}

func (m Model) handleDashboardKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Study):
		return m.startTimer(models.ActivityStudy)
	case key.Matches(msg, m.keys.Play):
		return m.startTimer(models.ActivityPlay)
	case key.Matches(msg, m.keys.Idle):
		return m.startTimer(models.ActivityIdle)
	case key.Matches(msg, m.keys.Pause):
		return m.flushTimer("paused", m.engine.Pause)
	case key.Matches(msg, m.keys.Stop):
		return m.flushTimer("stopped", m.engine.Stop)
	case key.Matches(msg, m.keys.Reset):
		active, elapsed := m.engine.Timer()
		if active == "" {
			m.setError(engine.ErrTimerIdle)
			return m, nil
		}
		m.engine.Reset()
		m.touch()
		m.setStatus(fmt.Sprintf("Discarded %s of %s", engine.FormatDuration(elapsed), active.Label()))
	case key.Matches(msg, m.keys.Quest):
		m.values = &formValues{}
		return m.openForm(formQuest, newQuestForm(m.engine.Quests(), m.values))
	case key.Matches(msg, m.keys.Manual):
		m.values = &formValues{}
		return m.openForm(formManual, newManualTimeForm(m.values))
	}
	return m, nil
}

func (m Model) startTimer(a models.ActivityType) (tea.Model, tea.Cmd) {
	events, err := m.engine.Start(a)
	if err != nil {
		m.setError(err)
		return m, nil
	}
	m.touch()
	if active, _ := m.engine.Timer(); active != "" {
		m.setStatus(active.Label() + " timer started")
	} else {
		m.setStatus(a.Label() + " timer stopped")
	}
	return m.handleEvents(events)
}

func (m Model) flushTimer(verb string, op func() ([]engine.Event, error)) (tea.Model, tea.Cmd) {
	active, elapsed := m.engine.Timer()
	events, err := op()
	if err != nil {
		m.setError(err)
		return m, nil
	}
	m.touch()
	m.setStatus(fmt.Sprintf("%s timer %s, credited %s", active.Label(), verb, engine.FormatDuration(elapsed)))
	return m.handleEvents(events)
}

func (m Model) openForm(kind formKind, form *huh.Form) (tea.Model, tea.Cmd) {
	m.form = form
	m.formKind = kind
	return m, m.form.Init()
}

func (m *Model) closeForm() {
	m.form = nil
	m.formKind = formNone
}

func (m Model) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok && msg.Type == tea.KeyEsc {
		m.closeForm()
		return m, nil
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	switch m.form.State {
	case huh.StateCompleted:
		kind, values := m.formKind, m.values
		m.closeForm()
		next, submitCmd := m.submitForm(kind, values)
		return next, tea.Batch(cmd, submitCmd)
	case huh.StateAborted:
		m.closeForm()
	}
	return m, cmd
}

// submitForm applies a completed form to the engine.
func (m Model) submitForm(kind formKind, v *formValues) (Model, tea.Cmd) {
	var (
		events []engine.Event
		err    error
	)

	switch kind {
	case formAddTodo:
		var t models.Todo
		if t, err = m.engine.AddTodo(v.Text); err == nil {
			m.setStatus(fmt.Sprintf("Added %q", t.Text))
		}
	case formEditTodo:
		var t models.Todo
		if t, err = m.engine.EditTodo(v.TodoID, v.Text); err == nil {
			m.setStatus(fmt.Sprintf("Updated %q", t.Text))
		}
	case formRename:
		if err = m.engine.SetUsername(v.Text); err == nil {
			m.setStatus("Username set to " + m.engine.Profile().Username)
		}
	case formAvatar:
		m.engine.SetProfilePicture(v.Text)
		m.setStatus("Profile picture updated")
	case formQuest:
		var amount int64
		amount, err = strconv.ParseInt(strings.TrimSpace(v.Amount), 10, 64)
		if err == nil {
			events, err = m.engine.UpdateQuestProgress(v.QuestID, amount)
		}
		if err == nil {
			m.setStatus("Gate progress recorded")
		}
	case formManual:
		minutes := validation.ParseMinutes(v.Amount)
		if events, err = m.engine.AddManualTime(v.Activity, minutes); err == nil {
			if minutes > 0 {
				m.setStatus(fmt.Sprintf("Added %s of %s", engine.FormatDuration(int64(minutes)*60), v.Activity.Label()))
			} else {
				m.setStatus("Nothing to add.")
			}
		}
	case formRelease:
		if !v.Confirm {
			return m, nil
		}
		err = engine.ErrShadowNotFound
		for i, s := range m.engine.Roster() {
			if s.ID == v.ShadowID {
				var removed models.Shadow
				if removed, err = m.engine.RemoveShadow(i); err == nil {
					m.setStatus(removed.Name + " has been released")
				}
				break
			}
		}
	default:
		err = errors.New("unknown form")
	}

	if err != nil {
		m.setError(err)
		return m, nil
	}
	m.touch()
	m.refresh()
	return m.handleEvents(events)
}
