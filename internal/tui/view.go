package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/lepinkainen/bookdice/internal/book"
	"github.com/lepinkainen/bookdice/internal/export"
)

var (
	headerStyle = lipgloss.NewStyle().
			Padding(1, 2).
			Background(lipgloss.Color("62")).
			Foreground(lipgloss.Color("230"))

	brandStyle = lipgloss.NewStyle().
			Bold(true).
			MarginRight(2)

	buttonStyle = lipgloss.NewStyle().
			MarginLeft(1).
			Padding(0, 1).
			Background(lipgloss.Color("214")).
			Foreground(lipgloss.Color("0")).
			Bold(true)

	disabledButtonStyle = buttonStyle.Copy().
				Background(lipgloss.Color("240")).
				Foreground(lipgloss.Color("246")).
				Bold(false)

	poweredByStyle = lipgloss.NewStyle().
			MarginLeft(1).
			Padding(0, 1).
			Background(lipgloss.Color("255")).
			Foreground(lipgloss.Color("240"))

	spinnerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))

	errorStyle = lipgloss.NewStyle().
			Padding(1, 2).
			Foreground(lipgloss.Color("203"))

	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("254")).
			MarginBottom(1)

	labelStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("110"))

	linkStyle = lipgloss.NewStyle().
			Underline(true).
			Foreground(lipgloss.Color("39"))

	panelStyle = lipgloss.NewStyle().
			Padding(1, 4)

	helpStyle = lipgloss.NewStyle().
			Padding(0, 2).
			Foreground(lipgloss.Color("244"))
)

func (m *model) View() string {
	sections := []string{m.headerView()}

	state := m.tracker.State()
	if state.Error {
		sections = append(sections, errorStyle.Render(
			fmt.Sprintf("The request for %s encountered an error", m.input.Value())))
	}
	if state.Fetching {
		sections = append(sections, panelStyle.Render(m.spinner.View()+" Searching..."))
	}
	if state.Book != nil {
		sections = append(sections, renderBook(*state.Book, m.width))
	}

	sections = append(sections, helpStyle.Render("enter search | esc quit"))
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m *model) headerView() string {
	button := buttonStyle.Render("Search")
	if m.tracker.State().Fetching {
		button = disabledButtonStyle.Render("Search")
	}

	row := lipgloss.JoinHorizontal(lipgloss.Center,
		brandStyle.Render("bookdice"),
		m.input.View(),
		poweredByStyle.Render("Powered by Google"),
		button,
	)
	return headerStyle.Render(row)
}

// renderBook draws the book panel.
func renderBook(record book.Record, width int) string {
	contentWidth := max(width-8, 20)

	title := record.Title
	if title == "" {
		title = "Untitled"
	}

	lines := []string{titleStyle.Render(title)}
	for _, f := range export.Fields(record) {
		lines = append(lines, labelStyle.Render(f.Label+":")+" "+f.Value)
	}

	if record.InfoLink != "" {
		lines = append(lines, "", "Learn more on Google Books: "+linkStyle.Render(record.InfoLink))
	}

	if desc := record.PlainDescription(); desc != "" {
		wrapped := lipgloss.NewStyle().Width(contentWidth).Render(desc)
		lines = append(lines, "", wrapped)
	}

	return panelStyle.Render(strings.Join(lines, "\n"))
}
