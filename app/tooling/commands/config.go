// Package commands holds the operator subcommands of the tooling binary.
package commands

import (
	"fmt"

	"github.com/jrazmi/tasktracker/infrastructure/datastores"
	"github.com/jrazmi/tasktracker/sdk/environment"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// Config keys shared by flags and environment variables.
const (
	keyDriver      = "driver"
	keyDatabaseURL = "database-url"
	keySQLitePath  = "sqlite-path"
	keyLogQueries  = "log-queries"
)

// AddDatastoreFlags registers the database selection flags on cmd and binds
// them, together with their prefixed environment variables, into v.
func AddDatastoreFlags(cmd *cobra.Command, v *viper.Viper, prefix string) error {
	flags := cmd.PersistentFlags()
	flags.String(keyDriver, "", "database driver: postgres or sqlite")
	flags.String(keyDatabaseURL, "", "postgres connection url")
	flags.String(keySQLitePath, "", "sqlite database file")
	flags.Bool(keyLogQueries, false, "log every SQL query")

	bindings := map[string]string{
		keyDriver:      "DB_DRIVER",
		keyDatabaseURL: "PG_DATABASE_URL",
		keySQLitePath:  "SQLITE_PATH",
		keyLogQueries:  "DB_LOG_QUERIES",
	}
	for key, env := range bindings {
		if err := v.BindPFlag(key, flags.Lookup(key)); err != nil {
			return fmt.Errorf("bind flag %s: %w", key, err)
		}
		if err := v.BindEnv(key, environment.GetEnvKeyPrefix(prefix, env)); err != nil {
			return fmt.Errorf("bind env %s: %w", key, err)
		}
	}
	return nil
}

// DatastoreOptions loads the prefixed environment defaults and applies any
// value v holds on top. Flags win over environment variables.
func DatastoreOptions(v *viper.Viper, prefix string) (datastores.Options, error) {
	o, err := datastores.LoadOptions(prefix)
	if err != nil {
		return datastores.Options{}, err
	}

	if s := v.GetString(keyDriver); s != "" {
		o.Driver = s
	}
	if s := v.GetString(keyDatabaseURL); s != "" {
		o.Postgres.DatabaseURL = s
	}
	if s := v.GetString(keySQLitePath); s != "" {
		o.SQLite.Path = s
	}
	if v.IsSet(keyLogQueries) {
		o.LogQueries = v.GetBool(keyLogQueries)
	}

	return o, nil
}
