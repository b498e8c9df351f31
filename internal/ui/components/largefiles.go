package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/sadopc/dux/internal/ui/style"
	"github.com/sadopc/dux/internal/util"
	"github.com/sadopc/dux/internal/views"
)

// RenderLargeFiles renders the flat, size-sorted list of the largest files
// in the scanned tree.
func RenderLargeFiles(theme style.Theme, entries []views.LargeFileEntry, cursor, offset int, layout style.Layout) string {
	width := layout.ContentWidth()
	contentHeight := layout.ContentHeight()

	if len(entries) == 0 {
		empty := lipgloss.NewStyle().Foreground(theme.TextMuted).Render("  (no files found)")
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
		lines = append(lines, renderLargeFileRow(theme, e, selected, barWidth, nameWidth, width))
	}

	for len(lines) < contentHeight {
		lines = append(lines, strings.Repeat(" ", width))
	}

	return strings.Join(lines, "\n")
}

func renderLargeFileRow(theme style.Theme, e views.LargeFileEntry, selected bool, barWidth, nameWidth, totalWidth int) string {
	pctStr := fmt.Sprintf("%5.1f%%", e.Percentage)
	bar := theme.BarGradient(barWidth, e.Percentage/100.0)

	name := util.TruncateString(e.RelativePath, nameWidth)
	nameStyled := theme.FileName.Render(name)

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
