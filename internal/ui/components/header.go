package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/sadopc/dux/internal/ui/style"
	"github.com/sadopc/dux/internal/util"
)

// RenderHeader renders the top header bar: app name, scan root, and totals.
func RenderHeader(theme style.Theme, rootPath string, totalSize, totalFiles int64, fromCache bool, width int) string {
	if width < 10 {
		return ""
	}

	titleStyled := lipgloss.NewStyle().Bold(true).Foreground(theme.Primary).Render(" dux")

	statsText := fmt.Sprintf("%s files  %s ", util.FormatCount(totalFiles), util.FormatSize(totalSize))
	if fromCache {
		statsText = "(cached)  " + statsText
	}
	statsStyled := lipgloss.NewStyle().Foreground(theme.TextMuted).Render(statsText)

	titleW := lipgloss.Width(titleStyled)
	statsW := lipgloss.Width(statsStyled)

	// The path gets whatever space remains.
	pathMaxW := width - titleW - statsW - 3
	pathStr := rootPath
	if pathMaxW > 5 {
		pathStr = util.TruncateString(pathStr, pathMaxW)
	} else {
		pathStr = ""
	}

	pathStyled := lipgloss.NewStyle().Foreground(theme.TextPrimary).Render("  " + pathStr)
	pathW := lipgloss.Width(pathStyled)

	gap := width - titleW - pathW - statsW
	if gap < 1 {
		gap = 1
	}

	line := titleStyled + pathStyled + strings.Repeat(" ", gap) + statsStyled
	return theme.HeaderStyle.Width(width).Render(line)
}

// RenderBreadcrumb renders the drill-down path from the scan root down to
// the current view root, one path segment per entry in segments.
func RenderBreadcrumb(theme style.Theme, segments []string, width int) string {
	if len(segments) == 0 {
		return theme.BreadcrumbStyle.Width(width).Render(" /")
	}

	sep := lipgloss.NewStyle().Foreground(theme.TextMuted).Render(" > ")
	var parts []string
	for i, seg := range segments {
		s := lipgloss.NewStyle().Foreground(theme.TextMuted)
		if i == len(segments)-1 {
			s = lipgloss.NewStyle().Foreground(theme.TextPrimary).Bold(true)
		}
		parts = append(parts, s.Render(seg))
	}

	breadcrumb := " " + strings.Join(parts, sep)
	if lipgloss.Width(breadcrumb) > width && len(parts) > 2 {
		ellipsis := lipgloss.NewStyle().Foreground(theme.TextMuted).Render("...")
		breadcrumb = " " + ellipsis + sep + strings.Join(parts[len(parts)-2:], sep)
	}

	return theme.BreadcrumbStyle.Width(width).Render(breadcrumb)
}
