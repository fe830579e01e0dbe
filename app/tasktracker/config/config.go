package config

import (
	"github.com/jrazmi/tasktracker/core/repositories/tasksrepo"
	"github.com/jrazmi/tasktracker/infrastructure/datastores"
	"github.com/jrazmi/tasktracker/sdk/logger"
	"github.com/jrazmi/tasktracker/sdk/telemetry"
)

// site wide globals.
const (
	ApiRoute = "/api"
)

// Repositories are the repositories this instance of tasktracker serves.
type Repositories struct {
	Tasks *tasksrepo.Repository
}

// Tasktracker is the overall configuration for the tasktracker application.
type Tasktracker struct {
	Build     string
	Logger    *logger.Logger
	Telemetry telemetry.Telemetry

	Repositories Repositories
	Datastore    *datastores.Datastore

	CORSOrigins []string
}
