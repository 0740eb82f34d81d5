package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	redislib "github.com/redis/go-redis/v9"

	"github.com/RaushanShrivastwa/todo-app/domain"
	"github.com/RaushanShrivastwa/todo-app/repository"
)

const (
	keyPrefix  = "todo:"
	indexKey   = "todos:by_created"
	defaultTTL = 0 // todos never expire
)

type todoRepository struct {
	client *redislib.Client
}

// NewTodoRepository returns a Redis-backed implementation of TodoRepository.
// Each todo is a JSON document under todo:{id}; a sorted set scored by
// creation time keeps the newest-first list order.
func NewTodoRepository(client *redislib.Client) repository.TodoRepository {
	return &todoRepository{client: client}
}

func (r *todoRepository) List(ctx context.Context) ([]domain.Todo, error) {
	ids, err := r.client.ZRevRange(ctx, indexKey, 0, -1).Result()
	if err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return nil, nil
	}

	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = keyPrefix + id
	}
	values, err := r.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, err
	}

	todos := make([]domain.Todo, 0, len(values))
	for _, v := range values {
		raw, ok := v.(string)
		if !ok {
			// index entry without a document; skip stale ids
			continue
		}
		var todo domain.Todo
		if err := json.Unmarshal([]byte(raw), &todo); err != nil {
			return nil, err
		}
		todos = append(todos, todo)
	}
	return todos, nil
}

func (r *todoRepository) GetByID(ctx context.Context, id string) (*domain.Todo, error) {
	raw, err := r.client.Get(ctx, keyPrefix+id).Result()
	if err != nil {
		if errors.Is(err, redislib.Nil) {
			return nil, domain.ErrTodoNotFound
		}
		return nil, err
	}
	var todo domain.Todo
	if err := json.Unmarshal([]byte(raw), &todo); err != nil {
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
	if err := r.put(ctx, todo); err != nil {
		return nil, err
	}
	return todo, nil
}

func (r *todoRepository) Update(ctx context.Context, id string, patch domain.TodoPatch) (*domain.Todo, error) {
	todo, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	patch.Apply(todo)
	if err := r.put(ctx, todo); err != nil {
		return nil, err
	}
	return todo, nil
}

func (r *todoRepository) Delete(ctx context.Context, id string) error {
	removed, err := r.client.Del(ctx, keyPrefix+id).Result()
	if err != nil {
		return err
	}
	if removed == 0 {
		return domain.ErrTodoNotFound
	}
	return r.client.ZRem(ctx, indexKey, id).Err()
}

func (r *todoRepository) put(ctx context.Context, todo *domain.Todo) error {
	payload, err := json.Marshal(todo)
	if err != nil {
		return err
	}

	pipe := r.client.TxPipeline()
	pipe.Set(ctx, keyPrefix+todo.ID, payload, defaultTTL)
	pipe.ZAdd(ctx, indexKey, redislib.Z{
		Score:  float64(todo.CreatedAt.UnixNano()),
		Member: todo.ID,
	})
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("persist todo %s: %w", todo.ID, err)
	}
	return nil
}
