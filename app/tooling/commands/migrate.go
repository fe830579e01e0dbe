package commands

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/jrazmi/tasktracker/infrastructure/datastores"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// migrateTimeout bounds a full migration run.
const migrateTimeout = 5 * time.Minute

// NewMigrateCmd returns the migrate subcommand.
func NewMigrateCmd(log *slog.Logger, v *viper.Viper, prefix string) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply pending schema migrations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			o, err := DatastoreOptions(v, prefix)
			if err != nil {
				return err
			}
			return Migrate(cmd.Context(), log, o)
		},
	}
}

// Migrate opens the configured database and applies its migrations.
func Migrate(ctx context.Context, log *slog.Logger, o datastores.Options) error {
	ctx, cancel := context.WithTimeout(ctx, migrateTimeout)
	defer cancel()

	ds, err := datastores.Open(ctx, log, o)
	if err != nil {
		return err
	}
	defer ds.Close()

	log.InfoContext(ctx, "migration started", "driver", ds.Driver)

	if err := ds.StatusCheck(ctx); err != nil {
		return fmt.Errorf("database status check failed: %w", err)
	}

	if err := ds.Migrate(ctx); err != nil {
		return fmt.Errorf("migrate database: %w", err)
	}

	log.InfoContext(ctx, "migrations completed successfully")
	return nil
}
