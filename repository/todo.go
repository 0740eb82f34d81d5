package repository

import (
	"context"

	"github.com/RaushanShrivastwa/todo-app/domain"
)

// TodoRepository is the persistence boundary for todos. The store owns the
// persisted records and assigns ID and CreatedAt on Create.
type TodoRepository interface {
	// List returns every todo, newest-created first.
	List(ctx context.Context) ([]domain.Todo, error)
	GetByID(ctx context.Context, id string) (*domain.Todo, error)
	Create(ctx context.Context, todo *domain.Todo) (*domain.Todo, error)
	// Update applies the patch to the stored record and returns the result.
	Update(ctx context.Context, id string, patch domain.TodoPatch) (*domain.Todo, error)
	Delete(ctx context.Context, id string) error
}
