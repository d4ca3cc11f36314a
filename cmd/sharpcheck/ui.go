package main

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"sharpcheck/internal/analysis"
)

var (
	titleStyle = lipgloss.NewStyle().
			MarginLeft(2).
			Foreground(lipgloss.Color("#3B82F6")).
			Bold(true).
			Render

	docStyle = lipgloss.NewStyle().Margin(1, 2)

	violationStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FBBF24")).
			Bold(true)

	errorItemStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#F87171")).
			Bold(true)

	successStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#10B981")).
			Bold(true)

	statusStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#64748B")).
			Italic(true)
)

type item struct {
	title, desc string
}

func (i item) Title() string       { return i.title }
func (i item) Description() string { return i.desc }
func (i item) FilterValue() string { return i.title + i.desc }

type model struct {
	list        list.Model
	diagnostics []analysis.Diagnostic
	lastUpdate  time.Time
	fileCount   int
}

type updateMsg struct {
	diagnostics []analysis.Diagnostic
	fileCount   int
}

func (m model) Init() tea.Cmd {
	return nil
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" || msg.String() == "q" {
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		h, v := docStyle.GetFrameSize()
		m.list.SetSize(msg.Width-h, msg.Height-v-4)
	case updateMsg:
		m.diagnostics = msg.diagnostics
		m.fileCount = msg.fileCount
		m.lastUpdate = time.Now()

		items := []list.Item{}
		for _, d := range m.diagnostics {
			items = append(items, item{
				title: fmt.Sprintf("%s %s", d.RuleID, d.Severity),
				desc:  fmt.Sprintf("%s  %s:%d", d.Message, d.Location.File, d.Location.Line),
			})
		}
		m.list.SetItems(items)
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m model) View() string {
	status := statusStyle.Render(fmt.Sprintf("Last update: %v | %d files",
		m.lastUpdate.Format("15:04:05"), m.fileCount))

	var summary string
	if len(m.diagnostics) == 0 {
		summary = successStyle.Render("✅ No violations")
	} else {
		errors := 0
		for _, d := range m.diagnostics {
			if d.Severity == analysis.SeverityError {
				errors++
			}
		}
		summary = fmt.Sprintf("⚠️  %s | %s",
			violationStyle.Render(fmt.Sprintf("%d Violations", len(m.diagnostics))),
			errorItemStyle.Render(fmt.Sprintf("%d Errors", errors)))
	}

	header := titleStyle("sharpcheck")
	return docStyle.Render(fmt.Sprintf("%s\n%s\n%s\n\n%s", header, summary, status, m.list.View()))
}

// RunUI blocks on the watch-mode dashboard until the user quits.
func (a *App) RunUI() error {
	delegate := list.NewDefaultDelegate()
	l := list.New([]list.Item{}, delegate, 0, 0)
	l.Title = "Diagnostics"

	m := model{list: l}
	p := tea.NewProgram(m, tea.WithAltScreen())
	a.program = p

	a.notifyUI()

	_, err := p.Run()
	a.program = nil
	return err
}
