package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/framewright/framewright/pkg/frame"
	"github.com/framewright/framewright/pkg/frame/resolve"
)

// newShowCmd creates the show command, which prints an assembly's
// metadata and chain layout.
func newShowCmd(cfgPath *string) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "show <id>",
		Short: "Print an assembly's chain and metadata",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := openConfiguredStore(cmd, cfgPath)
			if err != nil {
				return err
			}
			defer st.Close()

			a, err := st.Load(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			if asJSON {
				return frame.Write(a, cmd.OutOrStdout())
			}

			printAssembly(a)
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "print raw JSON instead of a table")
	return cmd
}

// printAssembly renders the chain as a table, one row per node with the
// outbound panel alongside.
func printAssembly(a *frame.Assembly) {
	fmt.Println(StyleTitle.Render(a.ID) + " " + StyleValue.Render(a.Name))
	if a.Notes != "" {
		printDetail("%s", a.Notes)
	}
	printStats(len(a.Nodes), len(a.Panels), a.OverallLengthMM())
	fmt.Println()

	byFrom := make(map[string]frame.Panel, len(a.Panels))
	for _, p := range a.IntactPanels() {
		byFrom[p.FromNode] = p
	}

	rows := [][]string{}
	for i := range a.Nodes {
		n := &a.Nodes[i]
		panel := "—"
		if p, ok := byFrom[n.ID]; ok {
			panel = fmt.Sprintf("%s %.0f mm (%dx%d)", p.Type, p.LengthMM, p.DivisionsX, p.DivisionsY)
		}
		rows = append(rows, []string{
			fmt.Sprintf("%d", i),
			shortID(n.ID),
			string(n.Type),
			fmt.Sprintf("%.0f", n.OffsetMM),
			fmt.Sprintf("%.0f", n.WidthMM),
			panel,
		})
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)
	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("#", "Node", "Type", "Offset", "Width", "Panel →").
		Rows(rows...).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}
			return lipgloss.NewStyle().Foreground(colorWhite)
		})
	fmt.Println(t.Render())

	danglers := 0
	intact := make(map[string]bool, len(a.Panels))
	for _, p := range a.IntactPanels() {
		intact[p.ID] = true
	}
	for _, p := range a.Panels {
		if !intact[p.ID] {
			danglers++
		}
	}
	if danglers > 0 {
		printWarning("%d dangling panel(s); run 'framewright resolve' output or prune via edit", danglers)
	}
}

// reportViolations prints resolver violations as warnings.
func reportViolations(vs []resolve.Violation) {
	for _, v := range vs {
		printWarning("%s %s: %s", v.Code, shortID(v.EntityID), v.Detail)
	}
}

// shortID abbreviates UUID entity ids for display.
func shortID(id string) string {
	if i := strings.IndexByte(id, '-'); i > 0 {
		return id[:i]
	}
	return id
}
