package tasksrepo

import (
	"fmt"
	"time"
)

// Task is the tracked unit of work.
//
// ID and CreatedAt are zero until the task is first saved; the Storer
// assigns both. Title is fixed once created and Completed only changes
// through ToggleComplete.
type Task struct {
	ID        int64     `db:"id"`
	Title     string    `db:"title"`
	Completed bool      `db:"completed"`
	CreatedAt time.Time `db:"created_at"`
}

// IsNew reports whether the task has never been persisted.
func (t Task) IsNew() bool {
	return t.ID == 0
}

// Equal reports whether both tasks hold the same four field values.
func (t Task) Equal(other Task) bool {
	return t.ID == other.ID &&
		t.Title == other.Title &&
		t.Completed == other.Completed &&
		t.CreatedAt.Equal(other.CreatedAt)
}

func (t Task) String() string {
	createdAt := "<nil>"
	if !t.CreatedAt.IsZero() {
		createdAt = t.CreatedAt.Format(time.RFC3339Nano)
	}
	return fmt.Sprintf("Task{id=%d, title=%q, completed=%t, createdAt=%s}", t.ID, t.Title, t.Completed, createdAt)
}
