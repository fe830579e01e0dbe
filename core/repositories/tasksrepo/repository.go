// Package tasksrepo is the task service: it owns the business rules for
// tasks and reaches storage through a Storer.
package tasksrepo

import (
	"context"
	"fmt"

	"github.com/jrazmi/tasktracker/core/repositories"
	"github.com/jrazmi/tasktracker/sdk/logger"
)

// NotFoundError reports that no task exists for ID.
type NotFoundError struct {
	ID int64
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("task not found: %d", e.ID)
}

// Is lets errors.Is(err, repositories.ErrNotFound) match.
func (e *NotFoundError) Is(target error) bool {
	return target == repositories.ErrNotFound
}

// Storer is the persistence gateway for tasks.
//
// FindByID reports a missing row with ok == false and a nil error. Save
// inserts when task.ID is zero, stamping CreatedAt if it is unset, and
// otherwise updates the row with that id; it returns the row as stored.
// Delete expects the row to exist.
type Storer interface {
	FindAll(ctx context.Context) ([]Task, error)
	FindByID(ctx context.Context, id int64) (task Task, ok bool, err error)
	FindByCompleted(ctx context.Context, completed bool) ([]Task, error)
	Save(ctx context.Context, task Task) (Task, error)
	Delete(ctx context.Context, task Task) error
}

// Repository provides access to task storage.
type Repository struct {
	log    *logger.Logger
	storer Storer
}

// NewRepository creates a new Task repository
func NewRepository(log *logger.Logger, storer Storer) *Repository {
	return &Repository{
		log:    log,
		storer: storer,
	}
}

// GetAll returns every task in insertion order.
func (r *Repository) GetAll(ctx context.Context) ([]Task, error) {
	tasks, err := r.storer.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("tasks repository get all: %w", err)
	}
	return tasks, nil
}

// GetByID returns the task with id or a *NotFoundError.
func (r *Repository) GetByID(ctx context.Context, id int64) (Task, error) {
	task, ok, err := r.storer.FindByID(ctx, id)
	if err != nil {
		return Task{}, fmt.Errorf("tasks repository get by id: %w", err)
	}
	if !ok {
		return Task{}, &NotFoundError{ID: id}
	}
	return task, nil
}

// Add persists a new, incomplete task with title.
func (r *Repository) Add(ctx context.Context, title string) (Task, error) {
	task, err := r.storer.Save(ctx, Task{Title: title})
	if err != nil {
		return Task{}, fmt.Errorf("tasks repository add: %w", err)
	}

	r.log.DebugContext(ctx, "task added", "id", task.ID)
	return task, nil
}

// ToggleComplete flips the completed flag of the task with id. The task is
// always re-read first so a missing id yields a *NotFoundError.
func (r *Repository) ToggleComplete(ctx context.Context, id int64) (Task, error) {
	task, err := r.GetByID(ctx, id)
	if err != nil {
		return Task{}, err
	}

	task.Completed = !task.Completed

	saved, err := r.storer.Save(ctx, task)
	if err != nil {
		return Task{}, fmt.Errorf("tasks repository toggle complete: %w", err)
	}

	r.log.DebugContext(ctx, "task toggled", "id", saved.ID, "completed", saved.Completed)
	return saved, nil
}

// Delete removes the task with id, or returns a *NotFoundError when there
// is none. The task is loaded before deleting so a missing id is never a
// silent no-op.
func (r *Repository) Delete(ctx context.Context, id int64) error {
	task, err := r.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if err := r.storer.Delete(ctx, task); err != nil {
		return fmt.Errorf("tasks repository delete: %w", err)
	}

	r.log.DebugContext(ctx, "task deleted", "id", id)
	return nil
}

// ListByCompleted returns the tasks whose completed flag equals completed.
func (r *Repository) ListByCompleted(ctx context.Context, completed bool) ([]Task, error) {
	tasks, err := r.storer.FindByCompleted(ctx, completed)
	if err != nil {
		return nil, fmt.Errorf("tasks repository list by completed: %w", err)
	}
	return tasks, nil
}
