package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/sadopc/dux/internal/ui/style"
)

// RenderHelp renders the help overlay, listing the bindings DefaultKeyMap
// actually sets.
func RenderHelp(theme style.Theme, width, height int) string {
	boxWidth := 60
	if boxWidth > width-4 {
		boxWidth = width - 4
	}

	title := theme.ModalTitle.Render("  dux - Keyboard Shortcuts")

	sections := []struct {
		name  string
		binds []struct{ key, desc string }
	}{
		{
			name: "Navigation",
			binds: []struct{ key, desc string }{
				{"j/k", "Move down/up"},
				{"pgup/pgdn", "Page up/down"},
				{"g/G", "Top/bottom"},
				{"l/enter", "Expand dir / drill in"},
				{"h/backspace", "Collapse dir / go back"},
			},
		},
		{
			name: "Views",
			binds: []struct{ key, desc string }{
				{"1", "Tree"},
				{"2", "Large files"},
				{"3", "Build artifacts"},
				{"4", "File types"},
				{"s", "Cycle staleness threshold"},
			},
		},
		{
			name: "Selection & deletion",
			binds: []struct{ key, desc string }{
				{"space", "Mark/unmark item"},
				{"c", "Clear marks"},
				{"d", "Delete current or marked items"},
				{"y/n", "Confirm/cancel delete"},
			},
		},
		{
			name: "General",
			binds: []struct{ key, desc string }{
				{"r", "Rescan"},
				{"?", "Toggle help"},
				{"q", "Quit"},
				{"ctrl+c", "Force quit"},
			},
		},
	}

	var lines []string
	lines = append(lines, title, "")

	for _, sec := range sections {
		secTitle := lipgloss.NewStyle().Bold(true).Foreground(theme.Accent).Render("  " + sec.name)
		lines = append(lines, secTitle)

		for _, b := range sec.binds {
			key := lipgloss.NewStyle().Foreground(theme.Primary).Bold(true).Width(14).Render("    " + b.key)
			desc := lipgloss.NewStyle().Foreground(theme.TextSecondary).Render(b.desc)
			lines = append(lines, fmt.Sprintf("%s %s", key, desc))
		}
		lines = append(lines, "")
	}

	lines = append(lines, lipgloss.NewStyle().Foreground(theme.TextMuted).Render("  Press ? or Esc to close"))

	content := strings.Join(lines, "\n")

	box := theme.ModalStyle.Width(boxWidth).Render(content)

	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, box)
}
