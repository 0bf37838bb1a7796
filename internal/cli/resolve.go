package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/framewright/framewright/pkg/frame/resolve"
)

// newResolveCmd creates the resolve command, which recomputes all node
// offsets from panel lengths and persists the result.
func newResolveCmd(cfgPath *string) *cobra.Command {
	var dryRun bool

	cmd := &cobra.Command{
		Use:   "resolve <id>",
		Short: "Run a position resolve pass and persist the result",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := loggerFromContext(cmd.Context())
			prog := newProgress(logger)

			cfg, err := loadConfig(*cfgPath)
			if err != nil {
				return err
			}
			st, err := openStore(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			defer st.Close()

			a, err := st.Load(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			res := resolve.Pass(a, resolve.Options{MinPanelLengthMM: cfg.Layout.MinPanelLengthMM})
			reportViolations(res.Violations)

			if dryRun {
				printInfo("Dry run; not saving")
			} else {
				a.Touch()
				if err := st.Save(cmd.Context(), a); err != nil {
					return err
				}
			}

			prog.done(fmt.Sprintf("Resolved %s: %d node(s) moved, %d panel(s) adjusted",
				a.ID, len(res.MovedNodes), len(res.AdjustedPanels)))
			printStats(len(a.Nodes), len(a.Panels), a.OverallLengthMM())
			return nil
		},
	}

	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "report changes without saving")
	return cmd
}
