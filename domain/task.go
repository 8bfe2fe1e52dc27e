package domain

import (
	"time"

	"github.com/google/uuid"
)

// Task represents a single to-do item in the aggregate.
type Task struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Completed bool   `json:"completed"`
	Notes     string `json:"notes,omitempty"`
	DueDate   string `json:"dueDate,omitempty"`
	CreatedAt string `json:"createdAt"`
}

// TaskDraft carries the user-provided fields of a task before it is materialized.
type TaskDraft struct {
	Title   string `json:"title"`
	Notes   string `json:"notes,omitempty"`
	DueDate string `json:"dueDate,omitempty"`
}

// NewTask materializes a draft with a generated id and creation timestamp.
func NewTask(draft TaskDraft) Task {
	return Task{
		ID:        uuid.NewString(),
		Title:     draft.Title,
		Notes:     draft.Notes,
		DueDate:   draft.DueDate,
		CreatedAt: time.Now().UTC().Format(time.RFC3339),
	}
}

// TaskPatch is a partial task update. Only non-nil fields change the target.
type TaskPatch struct {
	Title     *string `json:"title"`
	Completed *bool   `json:"completed"`
	Notes     *string `json:"notes"`
	DueDate   *string `json:"dueDate"`
}

// Apply merges the patch into the task.
func (p TaskPatch) Apply(t *Task) {
	if p.Title != nil {
		t.Title = *p.Title
	}
	if p.Completed != nil {
		t.Completed = *p.Completed
	}
	if p.Notes != nil {
		t.Notes = *p.Notes
	}
	if p.DueDate != nil {
		t.DueDate = *p.DueDate
	}
}
