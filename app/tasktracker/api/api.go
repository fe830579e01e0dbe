package api

import (
	"context"
	"net/http"

	"github.com/jrazmi/tasktracker/app/tasktracker/config"
	"github.com/jrazmi/tasktracker/bridge/repositories/tasksrepobridge"
	"github.com/jrazmi/tasktracker/bridge/scaffolding/errs"
	"github.com/jrazmi/tasktracker/infrastructure/web"
)

type health struct {
	Status string `json:"status"`
}

// AddHandlers registers the REST API and the health probe on app.
func AddHandlers(app *web.App, cfg config.Tasktracker) *web.App {
	api := app.Group(config.ApiRoute)

	tasksrepobridge.AddHttpRoutes(api, tasksrepobridge.Config{
		Log:        cfg.Logger,
		Repository: cfg.Repositories.Tasks,
	})

	app.HandlerFunc(http.MethodGet, "", "/health", func(ctx context.Context, r *http.Request) web.Encoder {
		if err := cfg.Datastore.StatusCheck(ctx); err != nil {
			cfg.Logger.ErrorContext(ctx, "health", "err", err)
			return errs.Newf(errs.Unavailable, "database not ready")
		}
		return web.NewJSONResponse(health{Status: "ok"})
	})

	return app
}
