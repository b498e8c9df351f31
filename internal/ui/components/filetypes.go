package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/sadopc/dux/internal/ui/style"
	"github.com/sadopc/dux/internal/util"
	"github.com/sadopc/dux/internal/views"
)

// RenderFileTypes renders the file-type breakdown view. Unlike the tree and
// large-files lists it isn't scrollable — there are at most a handful of
// categories — so it takes the whole content area in one pass.
func RenderFileTypes(theme style.Theme, entries []views.FileTypeEntry, layout style.Layout) string {
	width := layout.ContentWidth()
	height := layout.ContentHeight()

	if len(entries) == 0 {
		return style.FullWidth(lipgloss.NewStyle().Foreground(theme.TextMuted).Render("  (no files found)"), width)
	}

	catW := 14
	countW := 10
	sizeW := 12
	barW := width - catW - countW - sizeW - 10
	if barW < 10 {
		barW = 10
	}
	if barW > 30 {
		barW = 30
	}

	var lines []string

	hdrStyle := lipgloss.NewStyle().Bold(true).Foreground(theme.TextPrimary)
	header := fmt.Sprintf("  %-*s %*s %*s  %s", catW, "Category", countW, "Files", sizeW, "Size", "Distribution")
	lines = append(lines, hdrStyle.Render(header))

	sepWidth := width - 4
	if sepWidth < 0 {
		sepWidth = 0
	}
	sep := lipgloss.NewStyle().Foreground(theme.TextMuted).Render("  " + strings.Repeat("-", sepWidth))
	lines = append(lines, sep)

	var totalSize int64
	for _, e := range entries {
		totalSize += e.TotalSize
	}

	for _, e := range entries {
		ratio := e.Percentage / 100.0
		catName := lipgloss.NewStyle().Foreground(theme.Accent).Bold(true).Width(catW).Render(e.Category)
		count := lipgloss.NewStyle().Foreground(theme.TextSecondary).Width(countW).Align(lipgloss.Right).Render(util.FormatCount(e.FileCount))
		size := lipgloss.NewStyle().Foreground(theme.TextSecondary).Width(sizeW).Align(lipgloss.Right).Render(util.FormatSize(e.TotalSize))

		bar := theme.BarGradient(barW, ratio)
		pctStr := lipgloss.NewStyle().Foreground(theme.TextMuted).Render(fmt.Sprintf(" %5.1f%%", e.Percentage))

		lines = append(lines, fmt.Sprintf("  %s %s %s  %s%s", catName, count, size, bar, pctStr))
	}

	lines = append(lines, sep)
	totalLine := fmt.Sprintf("  %-*s %*s %*s", catW, "Total", countW, "", sizeW, util.FormatSize(totalSize))
	lines = append(lines, hdrStyle.Render(totalLine))

	for len(lines) < height {
		lines = append(lines, "")
	}

	bgStyle := lipgloss.NewStyle().Background(theme.BgDark).Width(width)
	out := lines
	if len(out) > height {
		out = out[:height]
	}
	for i := range out {
		out[i] = bgStyle.Render(out[i])
	}

	return strings.Join(out, "\n")
}
