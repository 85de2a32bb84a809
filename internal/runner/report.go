package runner

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/gubarz/snipmd/internal/config"
)

// Styles encapsulates the check-report styling
type Styles struct {
	Ok    lipgloss.Style
	Drift lipgloss.Style
	Path  lipgloss.Style
	Total lipgloss.Style
}

// DefaultStyles returns the report styles with default colors
func DefaultStyles() *Styles {
	return &Styles{
		Ok:    lipgloss.NewStyle().Foreground(lipgloss.Color("2")),
		Drift: lipgloss.NewStyle().Foreground(lipgloss.Color("1")),
		Path:  lipgloss.NewStyle().Foreground(lipgloss.Color("6")),
		Total: lipgloss.NewStyle().Bold(true),
	}
}

// LoadFromConfig updates report colors from configuration
func (s *Styles) LoadFromConfig() {
	s.Ok = lipgloss.NewStyle().Foreground(lipgloss.Color(config.GetColorOk()))
	s.Drift = lipgloss.NewStyle().Foreground(lipgloss.Color(config.GetColorDrift()))
	s.Path = lipgloss.NewStyle().Foreground(lipgloss.Color(config.GetColorPath()))
}

// Render formats the summary as a per-file status list with a totals line.
func (s *Summary) Render(st *Styles) string {
	var b strings.Builder
	for _, f := range s.Files {
		if f.Changed {
			b.WriteString(st.Drift.Render("drift"))
		} else {
			b.WriteString(st.Ok.Render("   ok"))
		}
		b.WriteString("  ")
		b.WriteString(st.Path.Render(f.Path))
		b.WriteString("\n")
	}
	b.WriteString(st.Total.Render(fmt.Sprintf("%d files, %d out of sync", len(s.Files), s.DriftCount())))
	return b.String()
}
