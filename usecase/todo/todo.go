package todo

import (
	"context"

	"go.uber.org/zap"

	"github.com/RaushanShrivastwa/todo-app/domain"
	"github.com/RaushanShrivastwa/todo-app/repository"
)

// UseCase holds the business rules for todos. Validation happens here in a
// single step before any store call; the repository only persists.
type UseCase struct {
	todos  repository.TodoRepository
	logger *zap.Logger
}

func New(todos repository.TodoRepository, logger *zap.Logger) *UseCase {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UseCase{
		todos:  todos,
		logger: logger,
	}
}

func (uc *UseCase) ListTodos(ctx context.Context) ([]domain.Todo, error) {
	todos, err := uc.todos.List(ctx)
	if err != nil {
		uc.logger.Error("list todos failed", zap.Error(err))
		return nil, err
	}
	return todos, nil
}

func (uc *UseCase) GetTodo(ctx context.Context, id string) (*domain.Todo, error) {
	return uc.todos.GetByID(ctx, id)
}

func (uc *UseCase) CreateTodo(ctx context.Context, input domain.CreateTodoInput) (*domain.Todo, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	created, err := uc.todos.Create(ctx, &domain.Todo{
		Title:       input.Title,
		Description: input.Description,
		Completed:   false,
	})
	if err != nil {
		uc.logger.Error("create todo failed", zap.Error(err))
		return nil, err
	}
	return created, nil
}

func (uc *UseCase) UpdateTodo(ctx context.Context, id string, patch domain.TodoPatch) (*domain.Todo, error) {
	if err := patch.Validate(); err != nil {
		return nil, err
	}

	updated, err := uc.todos.Update(ctx, id, patch)
	if err != nil {
		if !domain.IsDomainError(err, domain.ErrCodeNotFound) {
			uc.logger.Error("update todo failed", zap.String("id", id), zap.Error(err))
		}
		return nil, err
	}
	return updated, nil
}

func (uc *UseCase) DeleteTodo(ctx context.Context, id string) error {
	if err := uc.todos.Delete(ctx, id); err != nil {
		if !domain.IsDomainError(err, domain.ErrCodeNotFound) {
			uc.logger.Error("delete todo failed", zap.String("id", id), zap.Error(err))
		}
		return err
	}
	return nil
}
