package cli

import (
	"github.com/spf13/cobra"

	"github.com/framewright/framewright/pkg/frame"
	"github.com/framewright/framewright/pkg/frame/resolve"
)

// newOpts holds the command-line flags for the new command.
type newOpts struct {
	nodes    int     // seed chain length
	nodeType string  // profile for seeded nodes
	panel    string  // panel type between seeded nodes
	gap      float64 // panel length between seeded nodes (mm)
	notes    string  // free-form notes
}

// newNewCmd creates the new command, which seeds an assembly with an
// evenly spaced node chain and stores it.
func newNewCmd(cfgPath *string) *cobra.Command {
	opts := newOpts{
		nodes:    2,
		nodeType: string(frame.NodeCorner290),
		panel:    string(frame.PanelWindow),
		gap:      1000,
	}

	cmd := &cobra.Command{
		Use:   "new <name>",
		Short: "Create a new assembly",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := loggerFromContext(cmd.Context())

			a := frame.NewAssembly(args[0])
			a.Notes = opts.notes
			for i := 0; i < opts.nodes; i++ {
				if _, _, err := a.AppendNode(frame.NodeType(opts.nodeType), frame.PanelType(opts.panel), opts.gap); err != nil {
					return err
				}
			}

			cfg, err := loadConfig(*cfgPath)
			if err != nil {
				return err
			}
			res := resolve.Pass(a, resolve.Options{MinPanelLengthMM: cfg.Layout.MinPanelLengthMM})
			reportViolations(res.Violations)

			st, err := openStore(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			defer st.Close()

			if err := st.Save(cmd.Context(), a); err != nil {
				return err
			}

			logger.Debug("created assembly", "id", a.ID, "nodes", len(a.Nodes))
			printSuccess("Created %s (%s)", StyleHighlight.Render(a.ID), a.Name)
			printStats(len(a.Nodes), len(a.Panels), a.OverallLengthMM())
			return nil
		},
	}

	cmd.Flags().IntVarP(&opts.nodes, "nodes", "n", opts.nodes, "number of nodes to seed")
	cmd.Flags().StringVar(&opts.nodeType, "node-type", opts.nodeType, "node profile: corner-190, corner-290, inline-190, inline-290, generic")
	cmd.Flags().StringVar(&opts.panel, "panel", opts.panel, "panel type between nodes: window, door, blanking")
	cmd.Flags().Float64Var(&opts.gap, "gap", opts.gap, "panel length between seeded nodes (mm)")
	cmd.Flags().StringVar(&opts.notes, "notes", "", "free-form notes")

	return cmd
}
