// Presentation helpers shared by the commands: lipgloss styles, the
// compact and tabular worktree listings, and the branch activity
// rendering.
package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/jungle-sh/jungle/internal/model"
)

// ANSI-16 styles. The color names come from the fixed state mapping in
// the model package.
var (
	styleRed     = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	styleGreen   = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	styleYellow  = lipgloss.NewStyle().Foreground(lipgloss.Color("3"))
	styleBlue    = lipgloss.NewStyle().Foreground(lipgloss.Color("4"))
	styleCyan    = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))
	styleDim     = lipgloss.NewStyle().Faint(true)
	styleDimItal = lipgloss.NewStyle().Faint(true).Italic(true)
	styleBold    = lipgloss.NewStyle().Bold(true)
	styleHeader  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("5"))
	styleTitle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("6"))
)

// colorStyle maps a model color name onto its lipgloss style.
func colorStyle(name string) lipgloss.Style {
	switch name {
	case "green":
		return styleGreen
	case "yellow":
		return styleYellow
	case "red":
		return styleRed
	default:
		return lipgloss.NewStyle()
	}
}

// formatCompact renders the symbol-coded one-line-per-tree listing:
//
//	🌿 ✓ main (main)
//	🌿 ! feature/login (feature-login)
func formatCompact(trees []model.WorkingTree) string {
	var b strings.Builder
	for _, t := range trees {
		symbol := colorStyle(t.State.Color()).Render(t.State.Symbol())
		fmt.Fprintf(&b, "🌿 %s %s %s\n",
			symbol,
			styleBlue.Render(t.Branch),
			styleDim.Render("("+t.Name+")"))
	}
	return b.String()
}

// formatTable renders the tabular listing. Cells are padded on the raw
// text before styling, so ANSI sequences do not skew the column widths.
func formatTable(trees []model.WorkingTree) string {
	headers := []string{"WORKTREE PATH", "BRANCH", "STATUS"}
	widths := []int{len(headers[0]), len(headers[1]), len(headers[2])}

	rows := make([][3]string, 0, len(trees))
	for _, t := range trees {
		row := [3]string{t.DisplayPath, t.Branch, t.State.String()}
		rows = append(rows, row)
		for i, cell := range row {
			if w := lipgloss.Width(cell); w > widths[i] {
				widths[i] = w
			}
		}
	}

	pad := func(s string, w int) string {
		return s + strings.Repeat(" ", w-lipgloss.Width(s))
	}

	var b strings.Builder
	for i, h := range headers {
		if i > 0 {
			b.WriteString("  ")
		}
		b.WriteString(styleHeader.Render(pad(h, widths[i])))
	}
	b.WriteString("\n")

	for i, t := range trees {
		row := rows[i]
		b.WriteString(styleCyan.Render(pad(row[0], widths[0])))
		b.WriteString("  ")
		b.WriteString(styleBlue.Render(pad(row[1], widths[1])))
		b.WriteString("  ")
		b.WriteString(colorStyle(t.State.Color()).Render(pad(row[2], widths[2])))
		b.WriteString("\n")
	}
	return b.String()
}

// printWorktrees renders the listing in the mode selected by the global
// --table flag.
func printWorktrees(trees []model.WorkingTree) {
	if tableOutput {
		fmt.Print(formatTable(trees))
	} else {
		fmt.Print(formatCompact(trees))
	}
}

// formatBranches renders the numbered activity listing with its
// worktree/local/remote indicators and trailing legend.
func formatBranches(records []model.BranchRecord) string {
	var b strings.Builder
	b.WriteString(styleTitle.Render("📅 Recent Branches (by activity)"))
	b.WriteString("\n\n")

	for i, rec := range records {
		var indicators []string
		if rec.HasWorktree {
			indicators = append(indicators, styleGreen.Render("🌿"))
		}
		if rec.IsRemote {
			indicators = append(indicators, styleBlue.Render("📡"))
		} else {
			indicators = append(indicators, styleCyan.Render("📍"))
		}

		name := styleBold.Render(rec.Name)
		if rec.IsRemote {
			name = styleDim.Render(rec.Name)
		}

		fmt.Fprintf(&b, "%2d. %s %s\n", i+1, strings.Join(indicators, " "), name)
		fmt.Fprintf(&b, "    %s\n", styleDim.Render(rec.LastActivity+" • "+rec.Author))
		fmt.Fprintf(&b, "    %s\n\n", styleDimItal.Render("\""+rec.Subject+"\""))
	}

	b.WriteString(styleDim.Render("Legend: 🌿 Has worktree  📍 Local  📡 Remote"))
	b.WriteString("\n")
	return b.String()
}
