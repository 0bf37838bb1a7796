package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/framewright/framewright/pkg/cache"
	"github.com/framewright/framewright/pkg/frame"
	"github.com/framewright/framewright/pkg/frame/resolve"
	"github.com/framewright/framewright/pkg/render/elevation"
)

// renderOpts holds the command-line flags for the render command.
type renderOpts struct {
	output  string  // output SVG path; empty derives <id>.svg
	scale   float64 // mm→px scale override
	dims    bool    // draw the dimension strip
	noSolve bool    // skip the resolve pass before rendering
	noCache bool    // bypass the render cache
}

// newRenderCmd creates the render command, which writes an SVG
// elevation of a stored assembly.
func newRenderCmd(cfgPath *string) *cobra.Command {
	var opts renderOpts

	cmd := &cobra.Command{
		Use:   "render <id>",
		Short: "Write an SVG elevation of an assembly",
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

			if !opts.noSolve {
				res := resolve.Pass(a, resolve.Options{MinPanelLengthMM: cfg.Layout.MinPanelLengthMM})
				reportViolations(res.Violations)
			}

			scale := cfg.Render.PxPerMM
			if opts.scale > 0 {
				scale = opts.scale
			}

			svg, cached, err := renderCached(cmd.Context(), a, elevation.Options{PxPerMM: scale, ShowDimensions: opts.dims}, opts.noCache)
			if err != nil {
				return err
			}

			out := opts.output
			if out == "" {
				out = a.ID + ".svg"
			}
			if err := os.WriteFile(out, svg, 0644); err != nil {
				return fmt.Errorf("write output: %w", err)
			}

			state := "fresh"
			if cached {
				state = "cached"
			}
			prog.done(fmt.Sprintf("Rendered %s (%s)", a.ID, state))
			printFile(out)
			return nil
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (default <id>.svg)")
	cmd.Flags().Float64Var(&opts.scale, "scale", 0, "mm to px scale (default from config)")
	cmd.Flags().BoolVar(&opts.dims, "dims", false, "draw dimension labels")
	cmd.Flags().BoolVar(&opts.noSolve, "no-resolve", false, "render stored offsets without a resolve pass")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "bypass the render cache")

	return cmd
}

// renderCached renders an elevation through the file cache. The key is
// the assembly's content hash plus the render options, so stale hits
// are impossible.
func renderCached(ctx context.Context, a *frame.Assembly, opts elevation.Options, noCache bool) (svg []byte, hit bool, err error) {
	c, err := newRenderCache(noCache)
	if err != nil {
		return nil, false, err
	}
	defer c.Close()

	raw, err := frame.Marshal(a)
	if err != nil {
		return nil, false, err
	}
	key := cache.ElevationKey(cache.Hash(raw), opts.PxPerMM, opts.ShowDimensions)

	if data, ok, err := c.Get(ctx, key); err == nil && ok {
		return data, true, nil
	}

	s, err := elevation.RenderString(a, opts)
	if err != nil {
		return nil, false, err
	}
	if err := c.Set(ctx, key, []byte(s), 0); err != nil {
		return nil, false, err
	}
	return []byte(s), false, nil
}
