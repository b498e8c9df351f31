package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/sadopc/dux/internal/ui/style"
	"github.com/sadopc/dux/internal/util"
	"github.com/sadopc/dux/internal/views"
)

// RenderArtifacts renders the build-artifact flat list, with each row's
// tool kind and a stale marker for entries older than staleLabel's window.
func RenderArtifacts(theme style.Theme, entries []views.ArtifactEntry, staleLabel string, cursor, offset int, layout style.Layout) string {
	width := layout.ContentWidth()
	contentHeight := layout.ContentHeight()

	if len(entries) == 0 {
		empty := lipgloss.NewStyle().Foreground(theme.TextMuted).Render("  (no build artifacts found)")
		return style.FullWidth(empty, width)
	}

	barWidth := layout.BarWidth()
	nameWidth := layout.NameWidth()

	start := offset
	end := start + contentHeight
	if end > len(entries) {
		end = len(entries)
	}

	var lines []string
	for i := start; i < end; i++ {
		e := entries[i]
		selected := i == cursor
		lines = append(lines, renderArtifactRow(theme, e, selected, barWidth, nameWidth, width))
	}

	for len(lines) < contentHeight {
		lines = append(lines, strings.Repeat(" ", width))
	}

	return strings.Join(lines, "\n")
}

func renderArtifactRow(theme style.Theme, e views.ArtifactEntry, selected bool, barWidth, nameWidth, totalWidth int) string {
	pctStr := fmt.Sprintf("%5.1f%%", e.Percentage)
	bar := theme.BarGradient(barWidth, e.Percentage/100.0)

	label := fmt.Sprintf("[%s]", e.Kind.Label())
	if e.IsStale {
		label += " stale"
	}

	nameW := nameWidth - lipgloss.Width(label) - 1
	if nameW < 4 {
		nameW = 4
	}
	name := util.TruncateString(e.RelativePath, nameW)

	nameStyled := theme.DirName.Render(name) + " " + lipgloss.NewStyle().Foreground(theme.Warning).Render(label)

	indicator := "  "
	if selected {
		indicator = theme.CursorIndicator.Render(" >")
	}

	pctStyled := theme.PercentText.Render(pctStr)
	sizeStyled := theme.SizeText.Width(10).Render(util.FormatSize(e.Size))

	row := fmt.Sprintf("%s%s [%s] %s %s", indicator, pctStyled, bar, nameStyled, sizeStyled)
	row = style.FullWidth(row, totalWidth)

	if selected {
		return theme.SelectedRow.Width(totalWidth).Render(row)
	}
	return row
}
