package transport

import "github.com/RaushanShrivastwa/todo-app/domain"

// CreateTodoRequest is the POST /api/todos body.
type CreateTodoRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

func (r CreateTodoRequest) Input() domain.CreateTodoInput {
	return domain.CreateTodoInput{
		Title:       r.Title,
		Description: r.Description,
	}
}

// UpdateTodoRequest is the PUT /api/todos/{id} body. Pointer fields
// distinguish an absent field from one set to its zero value.
type UpdateTodoRequest struct {
	Title       *string `json:"title,omitempty"`
	Description *string `json:"description,omitempty"`
	Completed   *bool   `json:"completed,omitempty"`
}

func (r UpdateTodoRequest) Patch() domain.TodoPatch {
	return domain.TodoPatch{
		Title:       r.Title,
		Description: r.Description,
		Completed:   r.Completed,
	}
}
