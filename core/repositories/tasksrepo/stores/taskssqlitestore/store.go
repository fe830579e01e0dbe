// Package taskssqlitestore persists tasks in an embedded SQLite database.
package taskssqlitestore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jrazmi/tasktracker/core/repositories/tasksrepo"
	"github.com/jrazmi/tasktracker/sdk/logger"
)

const selectColumns = `SELECT id, title, completed, created_at FROM tasks`

type Store struct {
	log *logger.Logger
	db  *sql.DB
	now func() time.Time
}

func NewStore(log *logger.Logger, db *sql.DB) *Store {
	return &Store{
		log: log,
		db:  db,
		now: time.Now,
	}
}

func (s *Store) FindAll(ctx context.Context) ([]tasksrepo.Task, error) {
	tasks, err := s.query(ctx, selectColumns+` ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("find all tasks: %w", err)
	}
	return tasks, nil
}

func (s *Store) FindByID(ctx context.Context, id int64) (tasksrepo.Task, bool, error) {
	row := s.db.QueryRowContext(ctx, selectColumns+` WHERE id = ?`, id)

	task, err := scanTask(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return tasksrepo.Task{}, false, nil
		}
		return tasksrepo.Task{}, false, fmt.Errorf("find task %d: %w", id, err)
	}
	return task, true, nil
}

func (s *Store) FindByCompleted(ctx context.Context, completed bool) ([]tasksrepo.Task, error) {
	tasks, err := s.query(ctx, selectColumns+` WHERE completed = ? ORDER BY id`, completed)
	if err != nil {
		return nil, fmt.Errorf("find tasks by completed: %w", err)
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
		VALUES (?, ?, ?)
		RETURNING id, title, completed, created_at`

	row := s.db.QueryRowContext(ctx, query, task.Title, task.Completed, formatTime(task.CreatedAt))

	saved, err := scanTask(row)
	if err != nil {
		return tasksrepo.Task{}, fmt.Errorf("insert task: %w", err)
	}

	s.log.DebugContext(ctx, "task row inserted", "task_id", saved.ID)
	return saved, nil
}

func (s *Store) update(ctx context.Context, task tasksrepo.Task) (tasksrepo.Task, error) {
	query := `UPDATE tasks
		SET title = ?, completed = ?
		WHERE id = ?
		RETURNING id, title, completed, created_at`

	row := s.db.QueryRowContext(ctx, query, task.Title, task.Completed, task.ID)

	saved, err := scanTask(row)
	if err != nil {
		return tasksrepo.Task{}, fmt.Errorf("update task %d: %w", task.ID, err)
	}

	s.log.DebugContext(ctx, "task row updated", "task_id", saved.ID)
	return saved, nil
}

func (s *Store) Delete(ctx context.Context, task tasksrepo.Task) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM tasks WHERE id = ?`, task.ID)
	if err != nil {
		return fmt.Errorf("delete task %d: %w", task.ID, err)
	}

	rows, _ := res.RowsAffected()
	s.log.DebugContext(ctx, "task row deleted", "task_id", task.ID, "rows", rows)
	return nil
}

func (s *Store) query(ctx context.Context, query string, args ...any) ([]tasksrepo.Task, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	tasks := []tasksrepo.Task{}
	for rows.Next() {
		task, err := scanTask(rows)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, task)
	}
	return tasks, rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanTask(row scanner) (tasksrepo.Task, error) {
	var (
		task      tasksrepo.Task
		createdAt timestamp
	)
	if err := row.Scan(&task.ID, &task.Title, &task.Completed, &createdAt); err != nil {
		return tasksrepo.Task{}, err
	}
	task.CreatedAt = time.Time(createdAt)
	return task, nil
}
