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

const statusTimeout = 5 * time.Second

// NewStatusCmd returns the status subcommand.
func NewStatusCmd(log *slog.Logger, v *viper.Viper, prefix string) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Check that the configured database answers",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			o, err := DatastoreOptions(v, prefix)
			if err != nil {
				return err
			}
			if err := Status(cmd.Context(), log, o); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "ok")
			return nil
		},
	}
}

// Status opens the configured database and pings it.
func Status(ctx context.Context, log *slog.Logger, o datastores.Options) error {
	ctx, cancel := context.WithTimeout(ctx, statusTimeout)
	defer cancel()

	ds, err := datastores.Open(ctx, log, o)
	if err != nil {
		return err
	}
	defer ds.Close()

	if err := ds.StatusCheck(ctx); err != nil {
		return fmt.Errorf("database status check failed: %w", err)
	}

	log.InfoContext(ctx, "status", "driver", ds.Driver, "status", "ok")
	return nil
}
