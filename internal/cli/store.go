package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/framewright/framewright/pkg/config"
	"github.com/framewright/framewright/pkg/frame"
	"github.com/framewright/framewright/pkg/store"
)

// openStore constructs the persistence backend selected by the config.
// Callers own the returned store and must Close it.
func openStore(ctx context.Context, cfg config.Config) (store.Store, error) {
	switch cfg.Store.Backend {
	case "", "file":
		dir := cfg.Store.Dir
		if dir == "" {
			var err error
			dir, err = dataDir()
			if err != nil {
				return nil, err
			}
		}
		return store.NewFileStore(dir)
	case "memory":
		return store.NewMemoryStore(), nil
	case "redis":
		return store.NewRedisStore(ctx, store.RedisConfig{
			Addr:     cfg.Store.Redis.Addr,
			Password: cfg.Store.Redis.Password,
			DB:       cfg.Store.Redis.DB,
			TTL:      cfg.Store.Redis.TTL(),
		})
	case "mongo":
		return store.NewMongoStore(ctx, store.MongoConfig{
			URI:        cfg.Store.Mongo.URI,
			Database:   cfg.Store.Mongo.Database,
			Collection: cfg.Store.Mongo.Collection,
		})
	default:
		return nil, fmt.Errorf("unknown store backend: %s", cfg.Store.Backend)
	}
}

// dataDir returns the assembly directory using XDG standard
// (~/.local/share/framewright/).
func dataDir() (string, error) {
	if dataHome := os.Getenv("XDG_DATA_HOME"); dataHome != "" {
		return filepath.Join(dataHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".local", "share", appName), nil
}

// newStoreCmd creates the store management command.
func newStoreCmd(cfgPath *string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "store",
		Short: "Inspect and manage stored assemblies",
	}

	cmd.AddCommand(newStoreListCmd(cfgPath))
	cmd.AddCommand(newStoreGetCmd(cfgPath))
	cmd.AddCommand(newStorePutCmd(cfgPath))
	cmd.AddCommand(newStoreDeleteCmd(cfgPath))

	return cmd
}

func newStoreListCmd(cfgPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List stored assembly IDs",
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := openConfiguredStore(cmd, cfgPath)
			if err != nil {
				return err
			}
			defer st.Close()

			ids, err := st.List(cmd.Context())
			if err != nil {
				return err
			}
			if len(ids) == 0 {
				printInfo("No assemblies stored")
				return nil
			}
			for _, id := range ids {
				fmt.Println(id)
			}
			return nil
		},
	}
}

func newStoreGetCmd(cfgPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "get <id>",
		Short: "Print a stored assembly as JSON",
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
			return frame.Write(a, os.Stdout)
		},
	}
}

func newStorePutCmd(cfgPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "put <file>",
		Short: "Store an assembly from a JSON file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := openConfiguredStore(cmd, cfgPath)
			if err != nil {
				return err
			}
			defer st.Close()

			a, err := frame.ReadFile(args[0])
			if err != nil {
				return err
			}
			if err := st.Save(cmd.Context(), a); err != nil {
				return err
			}
			printSuccess("Stored %s", a.ID)
			return nil
		},
	}
}

func newStoreDeleteCmd(cfgPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a stored assembly",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := openConfiguredStore(cmd, cfgPath)
			if err != nil {
				return err
			}
			defer st.Close()

			if err := st.Delete(cmd.Context(), args[0]); err != nil {
				return err
			}
			printSuccess("Deleted %s", args[0])
			return nil
		},
	}
}

// openConfiguredStore loads the config and opens its backend.
func openConfiguredStore(cmd *cobra.Command, cfgPath *string) (store.Store, error) {
	cfg, err := loadConfig(*cfgPath)
	if err != nil {
		return nil, err
	}
	return openStore(cmd.Context(), cfg)
}
