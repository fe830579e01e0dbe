package main

import (
	"context"
	"errors"
	"expvar"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"runtime"
	"syscall"

	"github.com/jrazmi/tasktracker/app/tasktracker/api"
	"github.com/jrazmi/tasktracker/app/tasktracker/config"
	"github.com/jrazmi/tasktracker/bridge/scaffolding/mid"
	"github.com/jrazmi/tasktracker/core/repositories/tasksrepo"
	"github.com/jrazmi/tasktracker/core/repositories/tasksrepo/stores/taskspgxstore"
	"github.com/jrazmi/tasktracker/core/repositories/tasksrepo/stores/taskssqlitestore"
	"github.com/jrazmi/tasktracker/infrastructure/datastores"
	"github.com/jrazmi/tasktracker/infrastructure/web"
	"github.com/jrazmi/tasktracker/sdk/environment"
	"github.com/jrazmi/tasktracker/sdk/logger"
	"github.com/jrazmi/tasktracker/sdk/telemetry"
)

var build = "develop"
var appName = "TASKS"

func main() {
	if err := environment.LoadEnv(); err != nil {
		fmt.Fprintln(os.Stderr, err)
	}
	ctx := context.Background()

	tel := telemetry.NewTelemetry()
	log, err := logger.NewFromEnv(appName, logger.WithTraceIDFn(tel.GetTraceID))
	if err != nil {
		fmt.Fprintln(os.Stderr, "configuring logger:", err)
		os.Exit(1)
	}

	if err := run(ctx, log, tel); err != nil {
		log.ErrorContext(ctx, "startup", "err", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, log *logger.Logger, tel telemetry.Telemetry) error {
	log.InfoContext(ctx, "startup", "GOMAXPROCS", runtime.GOMAXPROCS(0), "build", build)

	// :*: START DATABASES :*:
	dsOpts, err := datastores.LoadOptions(appName)
	if err != nil {
		return err
	}

	ds, err := datastores.Open(ctx, log.Logger, dsOpts)
	if err != nil {
		return err
	}
	defer func() {
		log.InfoContext(ctx, "shutdown", "status", "closing database connection")
		ds.Close()
	}()
	log.InfoContext(ctx, "init", "service", ds.Driver)

	if dsOpts.AutoMigrate {
		if err := ds.Migrate(ctx); err != nil {
			return fmt.Errorf("migrating database: %w", err)
		}
	}
	// END DATABASES //

	// REPOSITORIES //
	log.InfoContext(ctx, "startup", "status", "initializing repository support")
	var storer tasksrepo.Storer
	switch ds.Driver {
	case datastores.DriverPostgres:
		storer = taskspgxstore.NewStore(log, ds.Postgres)
	default:
		storer = taskssqlitestore.NewStore(log, ds.SQLite)
	}
	// END REPOSITORIES //

	webCfg, err := web.LoadServerConfig(appName)
	if err != nil {
		return fmt.Errorf("webserver: %w", err)
	}

	siteCfg := config.Tasktracker{
		Build:     build,
		Logger:    log,
		Telemetry: tel,
		Datastore: ds,
		Repositories: config.Repositories{
			Tasks: tasksrepo.NewRepository(log, storer),
		},
		CORSOrigins: webCfg.CORSOrigins,
	}

	server := web.NewWebServer(webCfg,
		web.WithHandler(webHandler(siteCfg)),
		web.WithErrorLog(logger.NewStdLogger(log, slog.LevelError)),
	)

	serverErrors := make(chan error, 1)
	go func() {
		log.InfoContext(ctx, "startup", "status", "api router started", "host", server.Addr)
		serverErrors <- server.ListenAndServe()
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, syscall.SIGINT, syscall.SIGTERM)
	select {
	case err := <-serverErrors:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("server error: %w", err)

	case sig := <-shutdown:
		log.InfoContext(ctx, "shutdown", "status", "shutdown started", "signal", sig)
		defer log.InfoContext(ctx, "shutdown", "status", "shutdown complete", "signal", sig)

		ctx, cancel := context.WithTimeout(ctx, server.Config.ShutdownTimeout)
		defer cancel()

		if err := server.Shutdown(ctx); err != nil {
			server.Close()
			return fmt.Errorf("could not stop server gracefully: %w", err)
		}
	}

	return nil
}

func webHandler(cfg config.Tasktracker) http.Handler {

	// INITIALIZATION
	app := web.NewApp(cfg.Logger, cfg.Telemetry)

	// GLOBAL MIDDLEWARE
	app.AddGlobalMiddleware("cors", mid.CORS(cfg.CORSOrigins...))
	app.AddGlobalMiddleware("logger", mid.Logger(cfg.Logger))
	app.AddGlobalMiddleware("errors", mid.Errors(cfg.Logger))
	app.AddGlobalMiddleware("metrics", mid.Metrics())
	app.AddGlobalMiddleware("panics", mid.Panics())
	app.HandlePreflight()

	// API
	api.AddHandlers(app, cfg)

	// DEBUG
	app.HandleRaw("GET /debug/vars", expvar.Handler())

	return app
}
