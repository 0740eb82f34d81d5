package domain

import (
	"strings"
	"time"
)

// Todo represents a single task item. The store assigns ID and CreatedAt
// on creation; both are immutable afterwards.
type Todo struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	Completed   bool      `json:"completed"`
	CreatedAt   time.Time `json:"createdAt"`
}

// CreateTodoInput carries the caller-supplied fields for a new todo.
type CreateTodoInput struct {
	Title       string
	Description string
}

// Validate enforces the creation invariants.
func (in CreateTodoInput) Validate() error {
	if strings.TrimSpace(in.Title) == "" {
		return ErrTitleRequired
	}
	return nil
}

// TodoPatch is a partial update. Nil fields are left untouched; only the
// mutable fields are listed, so ID and CreatedAt cannot change.
type TodoPatch struct {
	Title       *string
	Description *string
	Completed   *bool
}

// Validate rejects a patch that would blank out the title. Absent title
// means "keep the current one".
func (p TodoPatch) Validate() error {
	if p.Title != nil && strings.TrimSpace(*p.Title) == "" {
		return ErrTitleRequired
	}
	return nil
}

// IsEmpty reports whether the patch changes nothing.
func (p TodoPatch) IsEmpty() bool {
	return p.Title == nil && p.Description == nil && p.Completed == nil
}

// Apply copies the patch onto the todo.
func (p TodoPatch) Apply(t *Todo) {
	if t == nil {
		return
	}
	if p.Title != nil {
		t.Title = *p.Title
	}
	if p.Description != nil {
		t.Description = *p.Description
	}
	if p.Completed != nil {
		t.Completed = *p.Completed
	}
}
