package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/sadopc/dux/internal/tree"
	"github.com/sadopc/dux/internal/ui/style"
	"github.com/sadopc/dux/internal/util"
)

// TreeView renders the flattened, expand/collapse-aware node list a
// tree.Tree.VisibleNodes call produces for whatever node is the current
// view root.
type TreeView struct {
	Theme    style.Theme
	Layout   style.Layout
	Tree     *tree.Tree
	ViewRoot tree.NodeId
	Visible  []tree.NodeId
	Cursor   int
	Offset   int
	Selected map[tree.NodeId]bool
}

// Render renders the tree view.
func (tv *TreeView) Render() string {
	width := tv.Layout.ContentWidth()

	if len(tv.Visible) == 0 {
		empty := lipgloss.NewStyle().Foreground(tv.Theme.TextMuted).Render("  (empty directory)")
		return style.FullWidth(empty, width)
	}

	contentHeight := tv.Layout.ContentHeight()
	barWidth := tv.Layout.BarWidth()
	nameWidth := tv.Layout.NameWidth()

	var rootDepth int
	var parentSize int64
	if root, ok := tv.Tree.Get(tv.ViewRoot); ok {
		rootDepth = int(root.Depth)
		parentSize = root.Size
	}

	start := tv.Offset
	end := start + contentHeight
	if end > len(tv.Visible) {
		end = len(tv.Visible)
	}

	var lines []string
	for i := start; i < end; i++ {
		n, ok := tv.Tree.Get(tv.Visible[i])
		if !ok {
			continue
		}
		selected := i == tv.Cursor
		marked := tv.Selected[tv.Visible[i]]
		indent := int(n.Depth) - rootDepth
		line := tv.renderRow(n, indent, selected, marked, parentSize, barWidth, nameWidth, width)
		lines = append(lines, line)
	}

	for len(lines) < contentHeight {
		lines = append(lines, strings.Repeat(" ", width))
	}

	return strings.Join(lines, "\n")
}

func (tv *TreeView) renderRow(n *tree.Node, indent int, selected, marked bool, parentSize int64, barWidth, nameWidth, totalWidth int) string {
	pct := util.Percent(n.Size, parentSize)
	pctStr := fmt.Sprintf("%5.1f%%", pct)

	ratio := pct / 100.0
	bar := tv.Theme.BarGradient(barWidth, ratio)

	var marker string
	switch {
	case n.Kind == tree.KindDirectory && n.IsExpanded:
		marker = "v "
	case n.Kind == tree.KindDirectory && n.HasChildren():
		marker = "> "
	case n.Kind == tree.KindDirectory:
		marker = "  "
	default:
		marker = "  "
	}

	icon := util.Icon(n.Name, n.Kind == tree.KindDirectory)
	name := strings.Repeat("  ", indent) + marker + icon + " " + n.Name
	if n.Kind == tree.KindDirectory {
		name += "/"
	}
	name = util.TruncateString(name, nameWidth)

	indicator := "  "
	if selected && marked {
		indicator = tv.Theme.MarkedIndicator.Render("*") + tv.Theme.CursorIndicator.Render(">")
	} else if selected {
		indicator = tv.Theme.CursorIndicator.Render(" >")
	} else if marked {
		indicator = tv.Theme.MarkedIndicator.Render("* ")
	}

	sizeStr := util.FormatSize(n.Size)

	var nameStyled string
	switch n.Kind {
	case tree.KindDirectory:
		nameStyled = tv.Theme.DirName.Render(name)
	case tree.KindSymlink:
		nameStyled = lipgloss.NewStyle().Foreground(tv.Theme.TextMuted).Render(name) + lipgloss.NewStyle().Foreground(tv.Theme.TextMuted).Render(" ->")
	case tree.KindError:
		nameStyled = tv.Theme.FileName.Render(name) + tv.Theme.ErrorText.Render(" !")
	default:
		nameStyled = tv.Theme.FileName.Render(name)
	}

	pctStyled := tv.Theme.PercentText.Render(pctStr)
	sizeStyled := tv.Theme.SizeText.Width(10).Render(sizeStr)

	row := fmt.Sprintf("%s%s [%s] %s %s", indicator, pctStyled, bar, nameStyled, sizeStyled)
	row = style.FullWidth(row, totalWidth)

	if selected {
		return tv.Theme.SelectedRow.Width(totalWidth).Render(row)
	}
	return row
}

// EnsureVisible adjusts offset to keep cursor visible.
func (tv *TreeView) EnsureVisible() {
	contentHeight := tv.Layout.ContentHeight()
	if tv.Cursor < tv.Offset {
		tv.Offset = tv.Cursor
	}
	if tv.Cursor >= tv.Offset+contentHeight {
		tv.Offset = tv.Cursor - contentHeight + 1
	}
	if tv.Offset < 0 {
		tv.Offset = 0
	}
}
