// Package testutil provides testing utilities.
package testutil

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/RaushanShrivastwa/todo-app/domain"
)

// FakeTodoRepository is an in-memory implementation of
// repository.TodoRepository for tests.
type FakeTodoRepository struct {
	mu     sync.RWMutex
	todos  map[string]domain.Todo
	nextID int

	// Error injection
	ListErr   error
	GetErr    error
	CreateErr error
	UpdateErr error
	DeleteErr error
}

func NewFakeTodoRepository() *FakeTodoRepository {
	return &FakeTodoRepository{
		todos: make(map[string]domain.Todo),
	}
}

// Seed inserts a todo directly, bypassing error injection.
func (f *FakeTodoRepository) Seed(todo domain.Todo) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.todos[todo.ID] = todo
}

// Len reports how many todos are stored.
func (f *FakeTodoRepository) Len() int {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return len(f.todos)
}

func (f *FakeTodoRepository) List(ctx context.Context) ([]domain.Todo, error) {
	if f.ListErr != nil {
		return nil, f.ListErr
	}
	f.mu.RLock()
	defer f.mu.RUnlock()

	todos := make([]domain.Todo, 0, len(f.todos))
	for _, t := range f.todos {
		todos = append(todos, t)
	}
	sort.Slice(todos, func(i, j int) bool {
		if todos[i].CreatedAt.Equal(todos[j].CreatedAt) {
			return todos[i].ID > todos[j].ID
		}
		return todos[i].CreatedAt.After(todos[j].CreatedAt)
	})
	return todos, nil
}

func (f *FakeTodoRepository) GetByID(ctx context.Context, id string) (*domain.Todo, error) {
	if f.GetErr != nil {
		return nil, f.GetErr
	}
	f.mu.RLock()
	defer f.mu.RUnlock()

	todo, ok := f.todos[id]
	if !ok {
		return nil, domain.ErrTodoNotFound
	}
	return &todo, nil
}

func (f *FakeTodoRepository) Create(ctx context.Context, todo *domain.Todo) (*domain.Todo, error) {
	if f.CreateErr != nil {
		return nil, f.CreateErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()

	f.nextID++
	if todo.ID == "" {
		todo.ID = fmt.Sprintf("todo-%d", f.nextID)
	}
	if todo.CreatedAt.IsZero() {
		// nextID keeps ordering deterministic even within one clock tick
		todo.CreatedAt = time.Now().UTC().Add(time.Duration(f.nextID) * time.Microsecond)
	}
	f.todos[todo.ID] = *todo
	return todo, nil
}

func (f *FakeTodoRepository) Update(ctx context.Context, id string, patch domain.TodoPatch) (*domain.Todo, error) {
	if f.UpdateErr != nil {
		return nil, f.UpdateErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()

	todo, ok := f.todos[id]
	if !ok {
		return nil, domain.ErrTodoNotFound
	}
	patch.Apply(&todo)
	f.todos[id] = todo
	return &todo, nil
}

func (f *FakeTodoRepository) Delete(ctx context.Context, id string) error {
	if f.DeleteErr != nil {
		return f.DeleteErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()

	if _, ok := f.todos[id]; !ok {
		return domain.ErrTodoNotFound
	}
	delete(f.todos, id)
	return nil
}
