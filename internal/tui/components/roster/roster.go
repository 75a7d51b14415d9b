package roster

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/arise/internal/constants"
	"github.com/julianstephens/arise/internal/models"
)

type AriseMsg struct{}

type BuySlotMsg struct{}

type LevelUpMsg struct {
	ID string
}

type ReleaseMsg struct {
	ID   string
	Name string
}

type Item struct {
	Shadow models.Shadow
}

func (i Item) Title() string {
	return fmt.Sprintf("%s · Lv %d", i.Shadow.Name, i.Shadow.Level)
}

func (i Item) Description() string {
	level := fmt.Sprintf("next level %d coins", constants.ShadowLevelUpFactor*i.Shadow.Level)
	if i.Shadow.Level >= constants.ShadowMaxLevel {
		level = "max level"
	}
	return fmt.Sprintf("%s · %s · %s · %s", i.Shadow.Rank, i.Shadow.Rarity, FormatBuffs(i.Shadow.Buffs()), level)
}

func (i Item) FilterValue() string { return i.Shadow.Name }

// FormatBuffs renders buffs as "+2.0% xp, +2.0% coins".
func FormatBuffs(b models.Buffs) string {
	var parts []string
	for _, k := range models.BuffKinds {
		if v := b[k]; v > 0 {
			parts = append(parts, fmt.Sprintf("+%.1f%% %s", v*100, k))
		}
	}
	if len(parts) == 0 {
		return "no buffs"
	}
	return strings.Join(parts, ", ")
}

type KeyMap struct {
	Arise   key.Binding
	LevelUp key.Binding
	Release key.Binding
	BuySlot key.Binding
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		Arise: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "arise"),
		),
		LevelUp: key.NewBinding(
			key.WithKeys("u"),
			key.WithHelp("u", "level up"),
		),
		Release: key.NewBinding(
			key.WithKeys("x"),
			key.WithHelp("x", "release"),
		),
		BuySlot: key.NewBinding(
			key.WithKeys("b"),
			key.WithHelp("b", "buy slot"),
		),
	}
}

type Model struct {
	list list.Model
	keys KeyMap
}

func New(shadows []models.Shadow, width, height int) Model {
	l := list.New(items(shadows), list.NewDefaultDelegate(), width, height)
	l.Title = "Shadow Army"
	l.SetShowTitle(false)
	l.SetShowHelp(false)

	keys := DefaultKeyMap()
	l.AdditionalShortHelpKeys = func() []key.Binding {
		return []key.Binding{keys.Arise, keys.LevelUp, keys.Release, keys.BuySlot}
	}
	l.AdditionalFullHelpKeys = func() []key.Binding {
		return []key.Binding{keys.Arise, keys.LevelUp, keys.Release, keys.BuySlot}
	}

	return Model{list: l, keys: keys}
}

func items(shadows []models.Shadow) []list.Item {
	out := make([]list.Item, len(shadows))
	for i, s := range shadows {
		out[i] = Item{Shadow: s}
	}
	return out
}

func (m *Model) SetShadows(shadows []models.Shadow) {
	m.list.SetItems(items(shadows))
}

func (m Model) Filtering() bool {
	return m.list.FilterState() == list.Filtering
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.Filtering() {
			break
		}
		switch {
		case key.Matches(msg, m.keys.Arise):
			return m, func() tea.Msg { return AriseMsg{} }
		case key.Matches(msg, m.keys.BuySlot):
			return m, func() tea.Msg { return BuySlotMsg{} }
		case key.Matches(msg, m.keys.LevelUp):
			if item, ok := m.list.SelectedItem().(Item); ok {
				return m, func() tea.Msg { return LevelUpMsg{ID: item.Shadow.ID} }
			}
		case key.Matches(msg, m.keys.Release):
			if item, ok := m.list.SelectedItem().(Item); ok {
				return m, func() tea.Msg { return ReleaseMsg{ID: item.Shadow.ID, Name: item.Shadow.Name} }
			}
		}
	}

	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	if len(m.list.Items()) == 0 && !m.Filtering() {
		return "\n  No shadows yet.\n  Clear a daily gate, then press 'a' to arise."
	}
	return m.list.View()
}

func (m *Model) SetSize(width, height int) {
	m.list.SetSize(width, height)
}
