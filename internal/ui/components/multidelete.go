package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/sadopc/dux/internal/ui/style"
	"github.com/sadopc/dux/internal/util"
)

// MultiDeleteProgress is the read-only snapshot of an in-flight batch
// delete that the render layer shows.
type MultiDeleteProgress struct {
	Total      int
	Completed  int
	BytesFreed int64
	Failures   []string
}

// RenderMultiDeleteProgress renders the overlay shown while a batch delete
// is running in the background.
func RenderMultiDeleteProgress(theme style.Theme, p MultiDeleteProgress, width, height int) string {
	boxWidth := 50
	if boxWidth > width-4 {
		boxWidth = width - 4
	}

	var lines []string
	lines = append(lines, theme.ModalTitle.Render("  Deleting..."), "")

	count := fmt.Sprintf("  %d / %d completed", p.Completed, p.Total)
	lines = append(lines, lipgloss.NewStyle().Foreground(theme.TextPrimary).Render(count))

	pct := 0.0
	if p.Total > 0 {
		pct = float64(p.Completed) / float64(p.Total) * 100
	}
	bar := theme.BarGradient(boxWidth-6, pct/100.0)
	lines = append(lines, "  "+bar, "")

	freed := fmt.Sprintf("  Freed: %s", util.FormatSize(p.BytesFreed))
	lines = append(lines, lipgloss.NewStyle().Foreground(theme.TextPrimary).Render(freed))

	if len(p.Failures) > 0 {
		fail := fmt.Sprintf("  %d failed", len(p.Failures))
		lines = append(lines, theme.ErrorText.Bold(true).Render(fail))
	}

	lines = append(lines, "")
	lines = append(lines, lipgloss.NewStyle().Foreground(theme.TextMuted).
		Render("  Press ctrl+c to force quit"))

	content := strings.Join(lines, "\n")
	box := theme.ModalStyle.Width(boxWidth).Render(content)

	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, box)
}
