package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/jask/memberadmin/internal/member"
	"github.com/jask/memberadmin/internal/service"
)

const (
	colCheck  = 4
	colName   = 24
	colEmail  = 32
	colRole   = 10
	colAction = 16
)

// fieldWidths lines up with member.Fields.
var fieldWidths = []int{colName, colEmail, colRole}

var (
	titleStyle    = lipgloss.NewStyle().Bold(true).Underline(true)
	headerStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("252"))
	selectedStyle = lipgloss.NewStyle().Background(lipgloss.Color("237"))
	editStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("229"))
	mutedStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	dangerStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("203"))
	activePage    = lipgloss.NewStyle().Bold(true).Reverse(true)
	keyStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("111"))
	statusStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("244"))
)

func (a *App) View() string {
	v := a.console.View()
	var b strings.Builder

	b.WriteString(titleStyle.Render("Members"))
	b.WriteString("\n")
	b.WriteString(a.renderSearch(v))
	b.WriteString("\n\n")
	b.WriteString(a.renderTable(v))
	b.WriteString("\n")
	b.WriteString(renderFooter(v))
	b.WriteString("\n")
	b.WriteString(a.renderHelp())
	if a.status != "" {
		b.WriteString("\n")
		b.WriteString(statusStyle.Render(a.status))
	}
	return b.String()
}

func (a *App) renderSearch(v service.View) string {
	if a.state == viewSearch {
		return a.search.View()
	}
	if v.Query == "" {
		return mutedStyle.Render("Search: (press / to search)")
	}
	return "Search: " + v.Query
}

func (a *App) renderTable(v service.View) string {
	check := "[ ]"
	if v.AllVisibleSelected {
		check = "[x]"
	}
	lines := []string{
		"  " + headerStyle.Render(cell(check, colCheck)+cell("Name", colName)+cell("Email", colEmail)+cell("Role", colRole)+cell("Actions", colAction)),
	}

	if len(v.Rows) == 0 {
		lines = append(lines, "  "+mutedStyle.Render(a.emptyMessage(v)))
		return strings.Join(lines, "\n")
	}

	for i, row := range v.Rows {
		marker := "  "
		if i == a.cursor {
			marker = "▶ "
		}
		lines = append(lines, marker+a.renderRow(row))
	}
	return strings.Join(lines, "\n")
}

func (a *App) renderRow(row service.Row) string {
	check := "[ ]"
	if row.Selected {
		check = "[x]"
	}
	if row.Editing && a.state == viewEdit {
		cells := cell(check, colCheck)
		for i := range member.Fields {
			cells += cell(a.fields[i].View(), fieldWidths[i])
		}
		return editStyle.Render(cells) + cell("save · cancel", colAction)
	}

	line := cell(check, colCheck) + cell(row.Name, colName) + cell(row.Email, colEmail) + cell(row.Role, colRole)
	actions := "edit · " + dangerStyle.Render("delete")
	if !row.Deletable {
		actions = "edit · " + mutedStyle.Render("delete")
	}
	if row.Selected {
		return selectedStyle.Render(line) + cell(actions, colAction)
	}
	return line + cell(actions, colAction)
}

func (a *App) emptyMessage(v service.View) string {
	switch {
	case a.loading:
		return "loading members..."
	case v.Total == 0:
		return "No members."
	case v.Query != "":
		if hint := service.Suggest(a.console.Records(), v.Query); hint != "" {
			return fmt.Sprintf("No matches for %q. Did you mean %q?", v.Query, hint)
		}
		return fmt.Sprintf("No matches for %q.", v.Query)
	}
	return ""
}

// renderFooter shows the selection count and the pager.
func renderFooter(v service.View) string {
	summary := fmt.Sprintf("%d of %d row(s) selected.", v.SelectedCount, v.FilteredCount)

	first, prev, next, last := "«", "‹", "›", "»"
	if !v.HasPrev {
		first, prev = mutedStyle.Render(first), mutedStyle.Render(prev)
	}
	if !v.HasNext {
		next, last = mutedStyle.Render(next), mutedStyle.Render(last)
	}
	parts := []string{first, prev}
	for _, p := range v.Pages {
		label := fmt.Sprintf(" %d ", p)
		if p == v.Page {
			label = activePage.Render(label)
		}
		parts = append(parts, label)
	}
	parts = append(parts, next, last)
	return summary + "   " + strings.Join(parts, " ")
}

func (a *App) renderHelp() string {
	var bindings []key.Binding
	switch a.state {
	case viewSearch:
		bindings = a.keys.searchHelp()
	case viewEdit:
		bindings = a.keys.editHelp()
	default:
		bindings = a.keys.browseHelp()
	}
	parts := make([]string, 0, len(bindings))
	for _, b := range bindings {
		help := b.Help()
		if help.Key == "" && help.Desc == "" {
			continue
		}
		parts = append(parts, keyStyle.Render(help.Key)+" "+mutedStyle.Render(help.Desc))
	}
	line := strings.Join(parts, "  ")
	if a.width > 0 {
		line = ansi.Truncate(line, a.width, "…")
	}
	return line
}

// cell truncates s to width-1 and pads it to width.
func cell(s string, width int) string {
	s = ansi.Truncate(s, width-1, "…")
	if pad := width - ansi.StringWidth(s); pad > 0 {
		s += strings.Repeat(" ", pad)
	}
	return s
}
