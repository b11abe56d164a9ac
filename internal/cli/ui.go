package cli

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"go.bytecodealliance.org/wit"

	"github.com/wippyai/knitwit/layout"
	"github.com/wippyai/knitwit/witgraph"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1)

	worldStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#98FB98"))

	pathStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#87CEEB"))

	selectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4"))

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#888888"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666"))
)

func printSummary(w io.Writer, world *wit.World, folded []string, written []layout.Written) {
	fmt.Fprintf(w, "%s %s\n", titleStyle.Render("knitwit"), worldStyle.Render(witgraph.WorldID(world)))
	for _, name := range folded {
		fmt.Fprintf(w, "  %s %s\n", dimStyle.Render("+"), name)
	}
	for _, f := range written {
		fmt.Fprintf(w, "  %s %s\n", pathStyle.Render(f.File), dimStyle.Render(fmt.Sprintf("%s, %d bytes", label(f.Placement), f.Bytes)))
	}
}

func printPlan(w io.Writer, world *wit.World, placements []layout.Placement) {
	fmt.Fprintf(w, "%s %s %s\n", titleStyle.Render("knitwit"), worldStyle.Render(witgraph.WorldID(world)), dimStyle.Render("(dry run)"))
	for _, p := range placements {
		fmt.Fprintf(w, "  %s %s\n", pathStyle.Render(p.File), dimStyle.Render(label(p)))
	}
}

func label(p layout.Placement) string {
	if p.Main {
		return p.Name.String()
	}
	return p.ID
}
