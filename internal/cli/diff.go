package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/framewright/framewright/pkg/frame"
	"github.com/framewright/framewright/pkg/frame/diff"
)

// newDiffCmd creates the diff command, which compares two assemblies by
// structural hash. Arguments are stored assembly IDs or JSON file
// paths; IDs are recognised by their XXXNNN form.
func newDiffCmd(cfgPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "diff <a> <b>",
		Short: "Compare two assemblies structurally",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			left, err := loadAssemblyArg(cmd.Context(), cfgPath, args[0])
			if err != nil {
				return err
			}
			right, err := loadAssemblyArg(cmd.Context(), cfgPath, args[1])
			if err != nil {
				return err
			}

			prev := diff.Take(left)
			changes := diff.Diff(right, prev)
			if changes.Empty() {
				printSuccess("No structural differences")
				return nil
			}

			for _, id := range changes.Added {
				fmt.Println(StyleSuccess.Render("+ " + shortID(id)))
			}
			for _, id := range changes.Removed {
				fmt.Println(StyleWarning.Render("- " + shortID(id)))
			}
			for _, id := range changes.Changed {
				fmt.Println(StyleHighlight.Render("~ " + shortID(id)))
			}
			printDetail("%d added, %d removed, %d changed",
				len(changes.Added), len(changes.Removed), len(changes.Changed))
			return nil
		},
	}
}

// loadAssemblyArg resolves an argument to an assembly: a valid assembly
// ID loads from the configured store, anything else is read as a JSON
// file path.
func loadAssemblyArg(ctx context.Context, cfgPath *string, arg string) (*frame.Assembly, error) {
	if frame.ValidAssemblyID(arg) {
		cfg, err := loadConfig(*cfgPath)
		if err != nil {
			return nil, err
		}
		st, err := openStore(ctx, cfg)
		if err != nil {
			return nil, err
		}
		defer st.Close()
		return st.Load(ctx, arg)
	}
	return frame.ReadFile(arg)
}
