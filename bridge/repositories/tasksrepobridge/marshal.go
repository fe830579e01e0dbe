package tasksrepobridge

import (
	"time"

	"github.com/jrazmi/tasktracker/core/repositories/tasksrepo"
)

func MarshalToBridge(task tasksrepo.Task) Task {
	return Task{
		ID:        task.ID,
		Title:     task.Title,
		Completed: task.Completed,
		CreatedAt: task.CreatedAt.UTC().Format(time.RFC3339Nano),
	}
}

// MarshalListToBridge converts a list of core models to bridge models
func MarshalListToBridge(tasks []tasksrepo.Task) []Task {
	bridgeTasks := make([]Task, len(tasks))
	for i, task := range tasks {
		bridgeTasks[i] = MarshalToBridge(task)
	}
	return bridgeTasks
}
