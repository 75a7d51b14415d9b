package tui

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"github.com/julianstephens/arise/internal/constants"
	"github.com/julianstephens/arise/internal/engine"
	"github.com/julianstephens/arise/internal/models"
	"github.com/julianstephens/arise/internal/tui/components/roster"
)

var modalTitles = map[engine.EventKind]string{
	engine.EventPlayerQualification: "SYSTEM",
	engine.EventLevelUp:             "LEVEL UP",
	engine.EventRankChange:          "RANK UP",
	engine.EventQuestCompleted:      "GATE CLEARED",
	engine.EventShadowArisen:        "ARISE",
	engine.EventAriseFailed:         "ARISE FAILED",
	engine.EventDailyReset:          "NEW DAY",
}

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var content string
	switch {
	case m.form != nil:
		content = m.form.View()
	case len(m.modal) > 0:
		content = m.viewModal()
	default:
		switch m.tab {
		case tabDashboard:
			content = m.viewDashboard()
		case tabShadows:
			content = m.viewShadows()
		case tabHeatmap:
			content = m.viewHeatmap()
		case tabTodos:
			content = m.todos.View()
		case tabProfile:
			content = m.viewProfile()
		}
	}

	ui := lipgloss.JoinVertical(
		lipgloss.Left,
		m.viewTabs(),
		"",
		content,
		"",
		m.viewStatus(),
		m.help.View(m),
	)
	return docStyle.Render(ui)
}

func (m Model) viewTabs() string {
	tabs := make([]string, len(tabNames))
	for i, name := range tabNames {
		if tab(i) == m.tab {
			tabs[i] = activeTabStyle.Render(name)
		} else {
			tabs[i] = inactiveTabStyle.Render(name)
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

func (m Model) viewStatus() string {
	if m.status == "" {
		return ""
	}
	if m.statusErr {
		return dangerStyle.Render("✗ " + m.status)
	}
	return doneStyle.Render("✓ " + m.status)
}

func (m Model) viewModal() string {
	ev := m.modal[0]
	title, ok := modalTitles[ev.Kind]
	if !ok {
		title = "NOTICE"
	}
	hint := "[enter] continue"
	if ev.Kind == engine.EventPlayerQualification {
		hint = "[enter] accept  [esc] later"
	}
	if more := len(m.modal) - 1; more > 0 {
		hint += fmt.Sprintf("  (%d more)", more)
	}

	box := modalStyle.Render(lipgloss.JoinVertical(lipgloss.Center,
		titleStyle.Render(title),
		"",
		ev.Message,
		"",
		dimStyle.Render(hint),
	))
	if m.width == 0 || m.height == 0 {
		return box
	}
	h, v := docStyle.GetFrameSize()
	return lipgloss.Place(m.width-h, max(m.height-v-chromeHeight, lipgloss.Height(box)), lipgloss.Center, lipgloss.Center, box)
}

func progressLabel(q models.Quest) string {
	if q.Unit == "seconds" {
		return fmt.Sprintf("%s / %s", engine.FormatDuration(q.Progress), engine.FormatDuration(q.Target))
	}
	return fmt.Sprintf("%d / %d", q.Progress, q.Target)
}

func formatXP(xp float64) string {
	return humanize.Comma(int64(xp))
}

func (m Model) viewHeader(s engine.Snapshot) string {
	who := fmt.Sprintf("%s  Lv %d  %s", titleStyle.Render(s.Profile.Username), s.Level, RankBadge(s.Rank))
	bar := fmt.Sprintf("%s %3.0f%%  %s XP to next level",
		ProgressBar(s.XPPercent, 30), s.XPPercent, formatXP(engine.XPToNextLevel(s.XP)))
	wallet := dimStyle.Render(fmt.Sprintf("Coins %s · Arise tokens %d · Shadows %d/%d",
		humanize.Comma(int64(s.Currency)), s.Tokens, len(s.Shadows), s.Slots))
	return lipgloss.JoinVertical(lipgloss.Left, who, bar, wallet)
}

func (m Model) viewDashboard() string {
	s := m.engine.Snapshot()

	cards := make([]string, len(models.Activities))
	for i, a := range models.Activities {
		lines := []string{
			titleStyle.Render(fmt.Sprintf("[%d] %s", i+1, a.Label())),
			"Today " + engine.FormatDuration(s.Daily.Get(a)),
		}
		style := cardStyle
		if s.Timer.Active == a {
			lines = append(lines, doneStyle.Render("● "+engine.FormatDuration(s.Timer.Elapsed)))
			style = activeCardStyle
		} else {
			lines = append(lines, dimStyle.Render("○ stopped"))
		}
		cards[i] = style.Width(20).Render(strings.Join(lines, "\n"))
	}

	var quests strings.Builder
	quests.WriteString(titleStyle.Render("Daily Gates"))
	for _, q := range s.Quests {
		mark := "[ ]"
		if q.Completed {
			mark = doneStyle.Render("[✓]")
		}
		fmt.Fprintf(&quests, "\n%s %-24s %s %s", mark, q.Title, ProgressBar(q.Percent(), 20), progressLabel(q))
	}

	productivity := dimStyle.Render(fmt.Sprintf("Productivity today: %d%%", engine.Productivity(s.Daily)))

	return lipgloss.JoinVertical(lipgloss.Left,
		m.viewHeader(s),
		"",
		lipgloss.JoinHorizontal(lipgloss.Top, cards...),
		productivity,
		"",
		quests.String(),
	)
}

func (m Model) viewShadows() string {
	summary := fmt.Sprintf("Slots %d/%d · Next slot %s coins · Arise tokens %d · Coins %s\nTotal buffs: %s",
		len(m.engine.Roster()), m.engine.Slots(),
		humanize.Comma(int64(m.engine.SlotCost())), m.engine.Tokens(),
		humanize.Comma(int64(m.engine.Currency())),
		roster.FormatBuffs(m.engine.TotalBuffs()))

	body := m.roster.View()
	if m.showCatalog {
		body = m.viewCatalog()
	}
	return lipgloss.JoinVertical(lipgloss.Left, summary, "", body)
}

func (m Model) viewCatalog() string {
	owned := map[string]bool{}
	for _, s := range m.engine.Roster() {
		owned[s.Key] = true
	}
	catalog := make([]models.Archetype, len(engine.Catalog))
	copy(catalog, engine.Catalog)
	sort.SliceStable(catalog, func(i, j int) bool {
		return catalog[i].Rarity.Weight() > catalog[j].Rarity.Weight()
	})

	var b strings.Builder
	b.WriteString(titleStyle.Render("Catalog"))
	for _, a := range catalog {
		mark := " "
		if owned[a.Key] {
			mark = doneStyle.Render("✓")
		}
		fmt.Fprintf(&b, "\n%s %-16s %-10s %5.1f%%  %s", mark, a.Name, a.Rarity, m.engine.DrawChance(a.Key)*100, roster.FormatBuffs(a.BaseBuffs))
	}
	fmt.Fprintf(&b, "\n\n%s", dimStyle.Render(fmt.Sprintf("Each arise makes up to %d attempts at %.0f%% each.",
		constants.AriseMaxAttempts, constants.AriseSuccessChance*100)))
	return b.String()
}

func (m Model) viewHeatmap() string {
	cells := m.engine.HeatmapMonth(m.month)
	var total int64
	days := 0
	for _, c := range cells {
		total += c.StudyTime
		if c.StudyTime > 0 {
			days++
		}
	}
	return lipgloss.JoinVertical(lipgloss.Left,
		RenderHeatmap(m.month, cells, m.engine.Today()),
		"",
		fmt.Sprintf("Studied %s on %d days this month", engine.FormatDuration(total), days),
	)
}

func (m Model) viewProfile() string {
	s := m.engine.Snapshot()
	picture := s.Profile.ProfilePicture
	if picture == "" {
		picture = dimStyle.Render("none")
	}

	rows := []string{
		m.viewHeader(s),
		"",
		"Picture  " + picture,
		fmt.Sprintf("XP       %s", formatXP(s.XP)),
		"",
		titleStyle.Render("Lifetime"),
	}
	for _, a := range models.Activities {
		rows = append(rows, fmt.Sprintf("%-8s %s", a.Label(), engine.FormatDuration(s.AllTime.Get(a))))
	}
	if m.engine.NeedsAcceptance() {
		rows = append(rows, "", warningStyle.Render(engine.QualificationMessage+" Press enter to accept."))
	}
	return strings.Join(rows, "\n")
}
