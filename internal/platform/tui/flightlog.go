package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-warp/internal/registry"
	"github.com/vovakirdan/tui-warp/internal/storage"
)

// Flight log layout constants
const (
	minWidthForSidebar = 90  // Minimum width to show scene list sidebar
	sidebarWidth       = 20  // Width of scene list sidebar
	maxFlights         = 100 // Max flights to load per scene
)

// FlightLogKeyMap defines the key bindings for the flight log.
type FlightLogKeyMap struct {
	Up        key.Binding
	Down      key.Binding
	NextScene key.Binding
	PrevScene key.Binding
	Back      key.Binding
	Quit      key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k FlightLogKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.NextScene, k.PrevScene, k.Back}
}

// FullHelp returns key bindings for the full help view.
func (k FlightLogKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.NextScene, k.PrevScene},
		{k.Back, k.Quit},
	}
}

// DefaultFlightLogKeyMap returns default key bindings.
func DefaultFlightLogKeyMap() FlightLogKeyMap {
	return FlightLogKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("up/k", "scroll up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("down/j", "scroll down"),
		),
		NextScene: key.NewBinding(
			key.WithKeys("tab", "right", "l"),
			key.WithHelp("tab", "next scene"),
		),
		PrevScene: key.NewBinding(
			key.WithKeys("shift+tab", "left", "h"),
			key.WithHelp("S-tab", "prev scene"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc", "b"),
			key.WithHelp("esc/b", "back"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// FlightLogModel lists logged flights per scene.
type FlightLogModel struct {
	scenes      []registry.SceneInfo
	sceneCursor int
	store       *storage.Store
	flights     []storage.Flight
	stats       map[string]*storage.SceneStats
	table       table.Model
	help        help.Model
	keys        FlightLogKeyMap
	width       int
	height      int
	quitting    bool
	goingBack   bool
	showSidebar bool
	r           *lipgloss.Renderer
}

// NewFlightLogModel creates a flight log model. store and r may be nil.
func NewFlightLogModel(store *storage.Store, width, height int, r *lipgloss.Renderer) FlightLogModel {
	if r == nil {
		r = lipgloss.DefaultRenderer()
	}
	h := help.New()
	h.Width = width

	m := FlightLogModel{
		scenes:      registry.List(),
		store:       store,
		keys:        DefaultFlightLogKeyMap(),
		help:        h,
		width:       width,
		height:      height,
		showSidebar: width >= minWidthForSidebar,
		r:           r,
	}

	if store != nil {
		if stats, err := store.AllSceneStats(); err == nil {
			m.stats = stats
		}
	}

	m.table = m.createTable()
	if len(m.scenes) > 0 {
		m.loadFlights(m.scenes[0].ID)
	}

	return m
}

// createTable builds the flights table sized to the current window.
func (m *FlightLogModel) createTable() table.Model {
	columns := []table.Column{
		{Title: "#", Width: 4},
		{Title: "Date", Width: 13},
		{Title: "Time", Width: 8},
		{Title: "Distance", Width: 10},
		{Title: "Peak", Width: 7},
		{Title: "Warps", Width: 6},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(max(m.height-10, 3)), // Header, stats line, help, margins
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("#00ffcc")).
		Background(lipgloss.Color("236")).
		Bold(false)
	t.SetStyles(s)

	return t
}

// loadFlights loads recent flights for a scene.
func (m *FlightLogModel) loadFlights(sceneID string) {
	m.flights = nil
	if m.store != nil {
		if flights, err := m.store.RecentFlights(sceneID, maxFlights); err == nil {
			m.flights = flights
		}
	}
	m.updateTableRows()
}

func (m *FlightLogModel) updateTableRows() {
	rows := make([]table.Row, len(m.flights))
	for i, f := range m.flights {
		rows[i] = table.Row{
			fmt.Sprintf("%d", i+1),
			f.CreatedAt.Local().Format("Jan 02 15:04"),
			formatDuration(f.Duration),
			fmt.Sprintf("%.0f", f.Distance),
			fmt.Sprintf("%.1f", f.PeakSpeed),
			fmt.Sprintf("%d", f.Warps),
		}
	}
	m.table.SetRows(rows)
	m.table.GotoTop()
}

// formatDuration renders a flight duration as m:ss.
func formatDuration(d time.Duration) string {
	d = d.Round(time.Second)
	return fmt.Sprintf("%d:%02d", int(d.Minutes()), int(d.Seconds())%60)
}

// Init initializes the flight log model.
func (m FlightLogModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the flight log.
func (m FlightLogModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.Back):
			m.goingBack = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.NextScene):
			if len(m.scenes) > 0 {
				m.sceneCursor = (m.sceneCursor + 1) % len(m.scenes)
				m.loadFlights(m.scenes[m.sceneCursor].ID)
			}
			return m, nil

		case key.Matches(msg, m.keys.PrevScene):
			if len(m.scenes) > 0 {
				m.sceneCursor = (m.sceneCursor - 1 + len(m.scenes)) % len(m.scenes)
				m.loadFlights(m.scenes[m.sceneCursor].ID)
			}
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.showSidebar = m.width >= minWidthForSidebar
		m.table = m.createTable()
		m.updateTableRows()
		m.help.Width = msg.Width
		return m, nil
	}

	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View renders the flight log.
func (m FlightLogModel) View() string {
	if m.quitting || m.goingBack {
		return ""
	}

	var b strings.Builder

	titleStyle := m.r.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("#00ffcc"))

	title := "FLIGHT LOG"
	if len(m.scenes) > 0 {
		title = fmt.Sprintf("FLIGHT LOG - %s", m.scenes[m.sceneCursor].Title)
	}

	b.WriteString(centerText(titleStyle.Render(title), m.width))
	b.WriteString("\n")
	b.WriteString(centerText(m.statsLine(), m.width))
	b.WriteString("\n\n")

	tableStyle := m.r.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1)
	tableRendered := tableStyle.Render(m.renderTableContent())

	if m.showSidebar {
		b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, m.renderSidebar(), "  ", tableRendered))
	} else {
		b.WriteString(centerText(m.renderTabs(), m.width))
		b.WriteString("\n\n")
		b.WriteString(tableRendered)
	}

	b.WriteString("\n")
	helpStyle := m.r.NewStyle().Foreground(lipgloss.Color(dimColor))
	b.WriteString(helpStyle.Render(m.help.View(m.keys)))

	return b.String()
}

// statsLine summarizes the selected scene across all logged flights.
func (m FlightLogModel) statsLine() string {
	if len(m.scenes) == 0 {
		return ""
	}
	st, ok := m.stats[m.scenes[m.sceneCursor].ID]
	if !ok {
		return "no flights yet"
	}
	return fmt.Sprintf("%d flights  |  %s flown  |  best %.0f  |  top speed %.1f",
		st.Flights, formatDuration(st.TotalTime), st.BestDistance, st.TopSpeed)
}

func (m FlightLogModel) renderSidebar() string {
	sidebarStyle := m.r.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Width(sidebarWidth).
		Padding(0, 1)

	var sidebar strings.Builder
	sidebar.WriteString("Scenes\n")
	sidebar.WriteString(strings.Repeat("-", sidebarWidth-4))
	sidebar.WriteString("\n")

	for i, sc := range m.scenes {
		cursor := "  "
		style := m.r.NewStyle()
		if i == m.sceneCursor {
			cursor = "> "
			style = style.Bold(true).Foreground(lipgloss.Color("#00ffcc"))
		}

		name := sc.Title
		if maxLen := sidebarWidth - 6; len(name) > maxLen {
			name = name[:maxLen-1] + "."
		}
		sidebar.WriteString(style.Render(cursor + name))
		sidebar.WriteString("\n")
	}

	return sidebarStyle.Render(sidebar.String())
}

func (m FlightLogModel) renderTabs() string {
	if len(m.scenes) == 0 {
		return ""
	}
	return fmt.Sprintf("< %s >", m.scenes[m.sceneCursor].Title)
}

// renderTableContent renders the table or an empty message.
func (m FlightLogModel) renderTableContent() string {
	if len(m.flights) == 0 {
		emptyStyle := m.r.NewStyle().
			Foreground(lipgloss.Color(dimColor)).
			Italic(true).
			Padding(2, 4)
		return emptyStyle.Render("No flights logged yet.\nEngage warp and come back!")
	}

	return m.table.View()
}

// Flights returns the flights currently listed.
func (m FlightLogModel) Flights() []storage.Flight {
	return m.flights
}

// IsGoingBack returns true if user wants to go back to menu.
func (m FlightLogModel) IsGoingBack() bool {
	return m.goingBack
}

// IsQuitting returns true if user wants to quit entirely.
func (m FlightLogModel) IsQuitting() bool {
	return m.quitting
}

// RunFlightLog runs the flight log screen.
// Returns true if user wants to go back to menu, false if quitting.
func RunFlightLog(store *storage.Store, width, height int) (goBack bool, err error) {
	p := tea.NewProgram(
		NewFlightLogModel(store, width, height, nil),
		tea.WithAltScreen(),
	)

	finalModel, err := p.Run()
	if err != nil {
		return false, err
	}

	m, ok := finalModel.(FlightLogModel)
	if !ok {
		return false, nil
	}

	return m.IsGoingBack(), nil
}
