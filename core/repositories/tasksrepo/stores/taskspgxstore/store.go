// Package taskspgxstore persists tasks in PostgreSQL through pgx.
package taskspgxstore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jrazmi/tasktracker/core/repositories/tasksrepo"
	"github.com/jrazmi/tasktracker/infrastructure/postgresdb"
	"github.com/jrazmi/tasktracker/sdk/logger"
)

const selectColumns = `SELECT id, title, completed, created_at FROM tasks`

type Store struct {
	log  *logger.Logger
	pool *postgresdb.Pool
	now  func() time.Time
}

func NewStore(log *logger.Logger, pool *postgresdb.Pool) *Store {
	return &Store{
		log:  log,
		pool: pool,
		now:  time.Now,
	}
}

func (s *Store) FindAll(ctx context.Context) ([]tasksrepo.Task, error) {
	query := selectColumns + ` ORDER BY id`

	rows, err := s.pool.Query(ctx, query)
	if err != nil {
		return nil, postgresdb.HandlePgError(err)
	}
	defer rows.Close()

	tasks, err := pgx.CollectRows(rows, pgx.RowToStructByName[tasksrepo.Task])
	if err != nil {
		return nil, postgresdb.HandlePgError(err)
	}
	return tasks, nil
}

func (s *Store) FindByID(ctx context.Context, id int64) (tasksrepo.Task, bool, error) {
	query := selectColumns + ` WHERE id = @id`

	args := pgx.NamedArgs{
		"id": id,
	}

	rows, err := s.pool.Query(ctx, query, args)
	if err != nil {
		return tasksrepo.Task{}, false, postgresdb.HandlePgError(err)
	}
	defer rows.Close()

	task, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[tasksrepo.Task])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return tasksrepo.Task{}, false, nil
		}
		return tasksrepo.Task{}, false, postgresdb.HandlePgError(err)
	}

	return task, true, nil
}

func (s *Store) FindByCompleted(ctx context.Context, completed bool) ([]tasksrepo.Task, error) {
	query := selectColumns + ` WHERE completed = @completed ORDER BY id`

	args := pgx.NamedArgs{
		"completed": completed,
	}

	rows, err := s.pool.Query(ctx, query, args)
	if err != nil {
		return nil, postgresdb.HandlePgError(err)
	}
	defer rows.Close()

	tasks, err := pgx.CollectRows(rows, pgx.RowToStructByName[tasksrepo.Task])
	if err != nil {
		return nil, postgresdb.HandlePgError(err)
	}
	return tasks, nil
}

// Save inserts new tasks and updates existing ones. created_at is only
// ever written by the insert.
func (s *Store) Save(ctx context.Context, task tasksrepo.Task) (tasksrepo.Task, error) {
	if task.IsNew() {
		return s.insert(ctx, task)
	}
	return s.update(ctx, task)
}

func (s *Store) insert(ctx context.Context, task tasksrepo.Task) (tasksrepo.Task, error) {
	if task.CreatedAt.IsZero() {
		task.CreatedAt = s.now().UTC().Truncate(time.Microsecond)
	}

	query := `INSERT INTO tasks (title, completed, created_at)
		VALUES (@title, @completed, @created_at)
		RETURNING id, title, completed, created_at`

	args := pgx.NamedArgs{
		"title":      task.Title,
		"completed":  task.Completed,
		"created_at": task.CreatedAt,
	}

	rows, err := s.pool.Query(ctx, query, args)
	if err != nil {
		return tasksrepo.Task{}, postgresdb.HandlePgError(err)
	}
	defer rows.Close()

	saved, err := pgx.CollectExactlyOneRow(rows, pgx.RowToStructByName[tasksrepo.Task])
	if err != nil {
		return tasksrepo.Task{}, fmt.Errorf("insert task: %w", postgresdb.HandlePgError(err))
	}

	s.log.DebugContext(ctx, "task row inserted", "task_id", saved.ID)
	return saved, nil
}

func (s *Store) update(ctx context.Context, task tasksrepo.Task) (tasksrepo.Task, error) {
	query := `UPDATE tasks
		SET title = @title, completed = @completed
		WHERE id = @id
		RETURNING id, title, completed, created_at`

	args := pgx.NamedArgs{
		"id":        task.ID,
		"title":     task.Title,
		"completed": task.Completed,
	}

	rows, err := s.pool.Query(ctx, query, args)
	if err != nil {
		return tasksrepo.Task{}, postgresdb.HandlePgError(err)
	}
	defer rows.Close()

	saved, err := pgx.CollectExactlyOneRow(rows, pgx.RowToStructByName[tasksrepo.Task])
	if err != nil {
		return tasksrepo.Task{}, fmt.Errorf("update task %d: %w", task.ID, postgresdb.HandlePgError(err))
	}

	s.log.DebugContext(ctx, "task row updated", "task_id", saved.ID)
	return saved, nil
}

func (s *Store) Delete(ctx context.Context, task tasksrepo.Task) error {
	query := `DELETE FROM tasks WHERE id = @id`

	args := pgx.NamedArgs{
		"id": task.ID,
	}

	tag, err := s.pool.Exec(ctx, query, args)
	if err != nil {
		return postgresdb.HandlePgError(err)
	}

	s.log.DebugContext(ctx, "task row deleted", "task_id", task.ID, "rows", tag.RowsAffected())
	return nil
}
