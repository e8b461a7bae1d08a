// Package agenda provides the Bubble Tea weekly agenda viewer.
package agenda

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/LuxuryShampoo/Twilight-sub000/internal/dateparse"
	"github.com/LuxuryShampoo/Twilight-sub000/internal/model"
	"github.com/LuxuryShampoo/Twilight-sub000/internal/schedule"
	"github.com/LuxuryShampoo/Twilight-sub000/internal/stats"
)

const tabWeek = 0

// Input is the data shown by the agenda.
type Input struct {
	WeekStart time.Time
	Tasks     []*model.Task
	Schedule  schedule.WeeklySchedule
}

// Model implements the Bubble Tea agenda UI.
type Model struct {
	theme   Theme
	input   Input
	summary model.SchedulingStatistics
	days    [7][]Entry

	tabs      []string
	activeTab int
	viewports []viewport.Model

	width  int
	height int
}

// NewModel constructs an agenda model for one week.
func NewModel(input Input, theme Theme) *Model {
	week := stats.InWeek(input.Tasks, input.WeekStart)
	m := &Model{
		theme:   theme,
		input:   input,
		summary: stats.Calculate(week, input.Schedule),
		days:    groupByDay(week, input.WeekStart),
		tabs:    []string{"Week"},
	}
	for d := time.Sunday; d <= time.Saturday; d++ {
		m.tabs = append(m.tabs, d.String()[:3])
	}
	m.viewports = make([]viewport.Model, len(m.tabs))
	for i := range m.viewports {
		m.viewports[i] = viewport.New(0, 0)
	}
	m.renderTabContents()
	return m
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.updateLayout()
		m.renderTabContents()
		return m, nil
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC || msg.String() == "q" {
			return m, tea.Quit
		}
		switch msg.String() {
		case "left", "h":
			m.moveTab(-1)
			return m, tea.ClearScreen
		case "right", "l":
			m.moveTab(1)
			return m, tea.ClearScreen
		case "t":
			m.activeTab = tabWeek + 1 + int(time.Now().Weekday())
			return m, tea.ClearScreen
		case "g", "home":
			m.viewports[m.activeTab].GotoTop()
			return m, nil
		case "G", "end":
			m.viewports[m.activeTab].GotoBottom()
			return m, nil
		default:
			vp := m.viewports[m.activeTab]
			var cmd tea.Cmd
			vp, cmd = vp.Update(msg)
			m.viewports[m.activeTab] = vp
			return m, cmd
		}
	}
	return m, nil
}

// View implements tea.Model.
func (m *Model) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}
	headerHeight, bodyHeight, footerHeight := m.layoutHeights()
	header := fitLines(m.renderHeader(), m.width, headerHeight)
	body := fitLines(m.viewports[m.activeTab].View(), m.width, bodyHeight)
	footer := fitLines(m.theme.Header.Render("Nav: left/right  Today: t  Scroll: up/down/pgup/pgdn  Quit: q"), m.width, footerHeight)
	return strings.Join([]string{header, body, footer}, "\n")
}

func (m *Model) layoutHeights() (headerHeight, bodyHeight, footerHeight int) {
	tabsHeight := lipgloss.Height(m.theme.ActiveTab.Render("X"))
	if tabsHeight < 1 {
		tabsHeight = 1
	}
	headerHeight = tabsHeight + 1
	footerHeight = 1
	bodyHeight = m.height - headerHeight - footerHeight
	if bodyHeight < 1 {
		bodyHeight = 1
	}
	return headerHeight, bodyHeight, footerHeight
}

func (m *Model) updateLayout() {
	if m.width <= 0 || m.height <= 0 {
		return
	}
	_, vpHeight, _ := m.layoutHeights()
	for i := range m.viewports {
		m.viewports[i].Width = m.width
		m.viewports[i].Height = vpHeight
	}
}

func (m *Model) moveTab(delta int) {
	count := len(m.tabs)
	if count == 0 {
		return
	}
	next := m.activeTab + delta
	if next < 0 {
		next = count - 1
	}
	if next >= count {
		next = 0
	}
	m.activeTab = next
}

func (m *Model) renderTabs() string {
	parts := make([]string, 0, len(m.tabs))
	for i, tab := range m.tabs {
		if i == m.activeTab {
			parts = append(parts, m.theme.ActiveTab.Render(tab))
		} else {
			parts = append(parts, m.theme.InactiveTab.Render(tab))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, parts...)
}

func (m *Model) renderHeader() string {
	tabs := padLines(m.renderTabs(), m.width)
	summary := fmt.Sprintf("Week of %s", dateparse.FormatDate(m.input.WeekStart))
	summary = truncateLine(summary, m.width)
	return tabs + "\n" + m.theme.Header.Render(summary)
}

func (m *Model) renderTabContents() {
	width := m.width
	if width <= 0 {
		width = 80
	}
	m.viewports[tabWeek].SetContent(renderWeek(m.theme, m.summary, m.days, width))
	for d := time.Sunday; d <= time.Saturday; d++ {
		day := m.input.WeekStart.AddDate(0, 0, int(d))
		content := renderDay(m.theme, day, m.input.Schedule.BlocksForDay(d), m.days[d], width)
		m.viewports[tabWeek+1+int(d)].SetContent(content)
	}
}
