package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/sadopc/dux/internal/scanner"
	"github.com/sadopc/dux/internal/ui/style"
	"github.com/sadopc/dux/internal/util"
)

// RenderScanProgress renders the scanning/finalizing progress overlay.
func RenderScanProgress(theme style.Theme, counters scanner.Counters, finalizing bool, width, height int) string {
	boxWidth := 50
	if boxWidth > width-4 {
		boxWidth = width - 4
	}

	var lines []string

	titleText := "  Scanning..."
	if finalizing {
		titleText = "  Finalizing..."
	}
	title := lipgloss.NewStyle().Bold(true).Foreground(theme.Primary).Render(titleText)
	lines = append(lines, title, "")

	filesLine := fmt.Sprintf("  Files:  %s", util.FormatCount(counters.Files))
	dirsLine := fmt.Sprintf("  Dirs:   %s", util.FormatCount(counters.Dirs))
	sizeLine := fmt.Sprintf("  Size:   %s", util.FormatSize(counters.Bytes))
	speedLine := fmt.Sprintf("  Speed:  %s items/s", util.FormatCount(int64(counters.ItemsPerSecond())))

	statStyle := lipgloss.NewStyle().Foreground(theme.TextSecondary)
	lines = append(lines, statStyle.Render(filesLine), statStyle.Render(dirsLine), statStyle.Render(sizeLine), statStyle.Render(speedLine))

	if counters.Errors > 0 {
		errLine := fmt.Sprintf("  Errors: %d", counters.Errors)
		lines = append(lines, theme.ErrorText.Render(errLine))
	}

	lines = append(lines, "")

	elapsed := fmt.Sprintf("  Elapsed: %.1fs", counters.Duration.Seconds())
	lines = append(lines, lipgloss.NewStyle().Foreground(theme.TextMuted).Render(elapsed))
	lines = append(lines, lipgloss.NewStyle().Foreground(theme.TextMuted).Render("  Press q to cancel"))

	content := strings.Join(lines, "\n")

	box := theme.ModalStyle.Width(boxWidth).Render(content)

	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, box)
}
