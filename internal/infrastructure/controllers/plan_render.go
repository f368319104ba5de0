package controllers

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/rios0rios0/grocer/internal/domain/commands"
	"github.com/rios0rios0/grocer/internal/domain/entities"
)

var (
	colorDeleted  = lipgloss.Color("#E06C75")
	colorModified = lipgloss.Color("#98C379")
	colorMuted    = lipgloss.Color("#7F848E")

	headerStyle   = lipgloss.NewStyle().Bold(true)
	sectionStyle  = lipgloss.NewStyle().Bold(true).Underline(true).MarginTop(1)
	deletedStyle  = lipgloss.NewStyle().Foreground(colorDeleted)
	modifiedStyle = lipgloss.NewStyle().Foreground(colorModified)
	mutedStyle    = lipgloss.NewStyle().Foreground(colorMuted)
)

// renderPlan formats a plan result as a human-readable report.
func renderPlan(result *commands.PlanResult) string {
	var sb strings.Builder

	from := result.FromRef
	if from == "" {
		from = "(full sync)"
	}
	to := result.ToRef
	if to == "" {
		to = "(working tree)"
	}
	sb.WriteString(headerStyle.Render("Plan " + from + " -> " + to))

	changeset := result.Changeset
	if changeset.IsEmpty() {
		sb.WriteString("\n" + mutedStyle.Render("Nothing to do."))
		return sb.String()
	}

	writeSection(&sb, "Cookbooks", changeset.Cookbooks())
	writeSection(&sb, "Roles", changeset.Roles())
	writeSection(&sb, "Data bag items", changeset.Databags())
	return sb.String()
}

func writeSection(sb *strings.Builder, title string, list []entities.Entity) {
	if len(list) == 0 {
		return
	}
	sb.WriteString("\n" + sectionStyle.Render(title))
	for _, e := range list {
		if e.IsDeleted() {
			sb.WriteString("\n  " + deletedStyle.Render("- "+e.String()))
		} else {
			sb.WriteString("\n  " + modifiedStyle.Render("+ "+e.String()))
		}
	}
}
