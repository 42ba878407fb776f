package cli

import (
	"fmt"
	"io"

	"clubsync/internal/application/projections"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
)

var (
	fixedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color(projections.ColorFixed))
	movableStyle = lipgloss.NewStyle().Foreground(lipgloss.Color(projections.ColorMovable))
	headerStyle  = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cellStyle    = lipgloss.NewStyle().Padding(0, 1)
	okStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color(projections.ColorMovable)).Bold(true)
	failStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color(projections.ColorFixed)).Bold(true)
)

// printTable writes rows under headers. Cells may already carry styling.
func printTable(w io.Writer, headers []string, rows [][]string) {
	if len(rows) == 0 {
		fmt.Fprintln(w, "(none)")
		return
	}
	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderColumn(false).
		BorderLeft(false).
		BorderRight(false).
		BorderTop(false).
		BorderBottom(false).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		})
	fmt.Fprintln(w, t.Render())
}
