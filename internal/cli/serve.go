package cli

import (
	"github.com/spf13/cobra"

	"github.com/framewright/framewright/internal/server"
)

// newServeCmd creates the serve command, which runs the HTTP API until
// interrupted.
func newServeCmd(cfgPath *string) *cobra.Command {
	var (
		addr    string
		noCache bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := loggerFromContext(cmd.Context())

			cfg, err := loadConfig(*cfgPath)
			if err != nil {
				return err
			}
			if addr != "" {
				cfg.Server.Addr = addr
			}

			st, err := openStore(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			defer st.Close()

			c, err := newRenderCache(noCache)
			if err != nil {
				return err
			}
			defer c.Close()

			return server.New(st, c, cfg, logger).ListenAndServe(cmd.Context())
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default from config)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable the elevation render cache")
	return cmd
}
