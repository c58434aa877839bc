package cli

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
	mutedStyle  = lipgloss.NewStyle().Padding(0, 1).Foreground(lipgloss.Color("240"))
)

// RenderTable formats rows under headers with a rounded border.
func RenderTable(headers []string, rows [][]string) string {
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(lipgloss.Color("240"))).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		}).
		Headers(headers...).
		Rows(rows...).
		String()
}

// Muted renders secondary text such as empty-state hints.
func Muted(s string) string {
	return mutedStyle.Render(s)
}

// FormatRate renders a completion percentage with one decimal place.
func FormatRate(rate float64) string {
	return fmt.Sprintf("%.1f%%", rate)
}
