package bolt

import (
	"context"
	"encoding/json"
	"sort"
	"time"

	"github.com/google/uuid"
	bboltlib "go.etcd.io/bbolt"

	"github.com/RaushanShrivastwa/todo-app/domain"
	boltInfra "github.com/RaushanShrivastwa/todo-app/internal/infrastructure/bolt"
	"github.com/RaushanShrivastwa/todo-app/repository"
)

type todoRepository struct {
	store *boltInfra.Store
}

// NewTodoRepository returns a BoltDB-backed implementation of TodoRepository.
// Each todo is stored as one JSON document keyed by its id.
func NewTodoRepository(store *boltInfra.Store) repository.TodoRepository {
	return &todoRepository{store: store}
}

func (r *todoRepository) List(ctx context.Context) ([]domain.Todo, error) {
	var todos []domain.Todo
	err := r.store.View(func(b *bboltlib.Bucket) error {
		return b.ForEach(func(_, v []byte) error {
			var todo domain.Todo
			if err := json.Unmarshal(v, &todo); err != nil {
				return err
			}
			todos = append(todos, todo)
			return nil
		})
	})
	if err != nil {
		return nil, err
	}

	sort.Slice(todos, func(i, j int) bool {
		if todos[i].CreatedAt.Equal(todos[j].CreatedAt) {
			return todos[i].ID > todos[j].ID
		}
		return todos[i].CreatedAt.After(todos[j].CreatedAt)
	})
	return todos, nil
}

func (r *todoRepository) GetByID(ctx context.Context, id string) (*domain.Todo, error) {
	var todo domain.Todo
	err := r.store.View(func(b *bboltlib.Bucket) error {
		v := b.Get([]byte(id))
		if v == nil {
			return domain.ErrTodoNotFound
		}
		return json.Unmarshal(v, &todo)
	})
	if err != nil {
		return nil, err
	}
	return &todo, nil
}

func (r *todoRepository) Create(ctx context.Context, todo *domain.Todo) (*domain.Todo, error) {
	if todo == nil {
		return nil, domain.ErrInvalidPayload
	}
	if todo.ID == "" {
		todo.ID = uuid.NewString()
	}
	if todo.CreatedAt.IsZero() {
		todo.CreatedAt = time.Now().UTC()
	}

	err := r.store.Update(func(b *bboltlib.Bucket) error {
		payload, err := json.Marshal(todo)
		if err != nil {
			return err
		}
		return b.Put([]byte(todo.ID), payload)
	})
	if err != nil {
		return nil, err
	}
	return todo, nil
}

func (r *todoRepository) Update(ctx context.Context, id string, patch domain.TodoPatch) (*domain.Todo, error) {
	var todo domain.Todo
	err := r.store.Update(func(b *bboltlib.Bucket) error {
		v := b.Get([]byte(id))
		if v == nil {
			return domain.ErrTodoNotFound
		}
		if err := json.Unmarshal(v, &todo); err != nil {
			return err
		}
		patch.Apply(&todo)
		payload, err := json.Marshal(&todo)
		if err != nil {
			return err
		}
		return b.Put([]byte(id), payload)
	})
	if err != nil {
		return nil, err
	}
	return &todo, nil
}

func (r *todoRepository) Delete(ctx context.Context, id string) error {
	return r.store.Update(func(b *bboltlib.Bucket) error {
		if b.Get([]byte(id)) == nil {
			return domain.ErrTodoNotFound
		}
		return b.Delete([]byte(id))
	})
}
