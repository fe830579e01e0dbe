package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/jrazmi/tasktracker/app/tooling/commands"
	"github.com/jrazmi/tasktracker/sdk/environment"
	"github.com/jrazmi/tasktracker/sdk/logger"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var build = "develop"
var appName = "TOOLING"

func newRootCmd(log *logger.Logger) (*cobra.Command, error) {
	root := &cobra.Command{
		Use:           "tooling",
		Short:         "Operator commands for tasktracker",
		Version:       build,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	v := viper.New()
	if err := commands.AddDatastoreFlags(root, v, appName); err != nil {
		return nil, err
	}

	root.AddCommand(commands.NewMigrateCmd(log.Logger, v, appName))
	root.AddCommand(commands.NewStatusCmd(log.Logger, v, appName))

	return root, nil
}

func main() {
	if err := environment.LoadEnv(); err != nil {
		fmt.Fprintln(os.Stderr, err)
	}

	log, err := logger.NewFromEnv(appName)
	if err != nil {
		fmt.Fprintln(os.Stderr, "configuring logger:", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	root, err := newRootCmd(log)
	if err != nil {
		log.ErrorContext(ctx, "startup", "err", err)
		os.Exit(1)
	}

	if err := root.ExecuteContext(ctx); err != nil {
		log.ErrorContext(ctx, "tooling", "err", err)
		stop()
		os.Exit(1)
	}
}
