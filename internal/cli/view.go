package cli

import (
	"fmt"
	"io"
	"strings"

	"todoapp/internal/api"

	"github.com/charmbracelet/lipgloss"
)

var (
	colorPrimary = lipgloss.Color("#7C3AED")
	colorSuccess = lipgloss.Color("#10B981")
	colorWarning = lipgloss.Color("#F59E0B")
	colorDanger  = lipgloss.Color("#EF4444")
	colorInfo    = lipgloss.Color("#3B82F6")
	colorMuted   = lipgloss.Color("#6B7280")
	colorBorder  = lipgloss.Color("#4B5563")

	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorPrimary)

	successStyle = lipgloss.NewStyle().Foreground(colorSuccess).Bold(true)
	warningStyle = lipgloss.NewStyle().Foreground(colorWarning).Bold(true)
	errorStyle   = lipgloss.NewStyle().Foreground(colorDanger).Bold(true)
	infoStyle    = lipgloss.NewStyle().Foreground(colorInfo)
	mutedStyle   = lipgloss.NewStyle().Foreground(colorMuted)

	idStyle = lipgloss.NewStyle().
		Foreground(colorMuted).
		Width(6).
		Align(lipgloss.Right).
		PaddingRight(1)

	doneStyle = lipgloss.NewStyle().
			Foreground(colorMuted).
			Strikethrough(true)

	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorBorder).
			Padding(0, 1)
)

const timeLayout = "2006-01-02 15:04"

func printSuccess(w io.Writer, format string, args ...any) {
	fmt.Fprintln(w, successStyle.Render("✓ ")+fmt.Sprintf(format, args...))
}

func printWarning(w io.Writer, format string, args ...any) {
	fmt.Fprintln(w, warningStyle.Render("⚠ ")+fmt.Sprintf(format, args...))
}

// PrintError renders a command failure.
func PrintError(w io.Writer, err error) {
	fmt.Fprintln(w, errorStyle.Render("✗ ")+describe(err))
}

func checkbox(done bool) string {
	if done {
		return successStyle.Render("[x]")
	}
	return mutedStyle.Render("[ ]")
}

func renderProjects(page api.PagedResult[api.Project]) string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Projects"))
	b.WriteString("\n")

	if len(page.Items) == 0 {
		b.WriteString(mutedStyle.Render("  no projects yet"))
		b.WriteString("\n")
	}
	for _, p := range page.Items {
		b.WriteString(idStyle.Render(fmt.Sprintf("#%d", p.ID)))
		b.WriteString(p.Name)
		if p.Description != nil && *p.Description != "" {
			b.WriteString(mutedStyle.Render("  " + *p.Description))
		}
		b.WriteString("\n")
	}

	b.WriteString(infoStyle.Render(fmt.Sprintf("page %d of %d, %d total",
		page.PageNumber, max(page.TotalPages, 1), page.TotalCount)))
	b.WriteString("\n")
	return b.String()
}

func renderProject(p api.Project, todos []api.Todo) string {
	var head strings.Builder
	head.WriteString(titleStyle.Render(fmt.Sprintf("#%d %s", p.ID, p.Name)))
	if p.Description != nil && *p.Description != "" {
		head.WriteString("\n" + *p.Description)
	}
	head.WriteString("\n" + mutedStyle.Render("created "+p.CreatedAt.Local().Format(timeLayout)))

	var b strings.Builder
	b.WriteString(boxStyle.Render(head.String()))
	b.WriteString("\n")
	b.WriteString(renderTodos(todos))
	return b.String()
}

func renderTodos(todos []api.Todo) string {
	if len(todos) == 0 {
		return mutedStyle.Render("  no todos") + "\n"
	}

	var b strings.Builder
	done := 0
	for _, t := range todos {
		title := t.Title
		if t.IsCompleted {
			title = doneStyle.Render(title)
			done++
		}
		b.WriteString(idStyle.Render(fmt.Sprintf("#%d", t.ID)))
		b.WriteString(checkbox(t.IsCompleted) + " " + title + "\n")
	}
	b.WriteString(infoStyle.Render(fmt.Sprintf("%d/%d done", done, len(todos))))
	b.WriteString("\n")
	return b.String()
}

func renderTodo(t api.Todo) string {
	var b strings.Builder
	b.WriteString(checkbox(t.IsCompleted) + " " + titleStyle.Render(fmt.Sprintf("#%d %s", t.ID, t.Title)))
	if t.Description != nil && *t.Description != "" {
		b.WriteString("\n" + *t.Description)
	}
	b.WriteString("\n" + mutedStyle.Render(fmt.Sprintf("project #%d, updated %s",
		t.ProjectID, t.UpdatedAt.Local().Format(timeLayout))))
	return boxStyle.Render(b.String()) + "\n"
}
