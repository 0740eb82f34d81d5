package bolt_test

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/RaushanShrivastwa/todo-app/domain"
	boltInfra "github.com/RaushanShrivastwa/todo-app/internal/infrastructure/bolt"
	"github.com/RaushanShrivastwa/todo-app/repository"
	boltRepo "github.com/RaushanShrivastwa/todo-app/repository/bolt"
)

func newRepo(t *testing.T) repository.TodoRepository {
	t.Helper()
	store, err := boltInfra.Open(filepath.Join(t.TempDir(), "todos.db"), "todos")
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return boltRepo.NewTodoRepository(store)
}

func TestCreateAssignsIDAndTimestamp(t *testing.T) {
	repo := newRepo(t)

	created, err := repo.Create(context.Background(), &domain.Todo{Title: "Buy milk"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if created.ID == "" || created.CreatedAt.IsZero() {
		t.Errorf("id and createdAt should be assigned: %+v", created)
	}
	if created.Completed {
		t.Error("completed should default to false")
	}
}

func TestRoundTrip(t *testing.T) {
	repo := newRepo(t)
	ctx := context.Background()

	created, err := repo.Create(ctx, &domain.Todo{Title: "héllo ✓", Description: ""})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	got, err := repo.GetByID(ctx, created.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.ID != created.ID || got.Title != created.Title ||
		got.Description != created.Description || got.Completed != created.Completed ||
		!got.CreatedAt.Equal(created.CreatedAt) {
		t.Errorf("round-trip mismatch: %+v vs %+v", got, created)
	}
}

func TestListNewestFirst(t *testing.T) {
	repo := newRepo(t)
	ctx := context.Background()

	base := time.Now().UTC()
	for i, title := range []string{"A", "B", "C"} {
		_, err := repo.Create(ctx, &domain.Todo{
			Title:     title,
			CreatedAt: base.Add(time.Duration(i) * time.Second),
		})
		if err != nil {
			t.Fatalf("create %s: %v", title, err)
		}
	}

	todos, err := repo.List(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(todos) != 3 {
		t.Fatalf("expected 3 todos, got %d", len(todos))
	}
	for i, want := range []string{"C", "B", "A"} {
		if todos[i].Title != want {
			t.Errorf("position %d: expected %s, got %s", i, want, todos[i].Title)
		}
	}
}

func TestUpdatePatchesSubsetOfFields(t *testing.T) {
	repo := newRepo(t)
	ctx := context.Background()

	created, err := repo.Create(ctx, &domain.Todo{Title: "Walk", Description: "evening"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	completed := true
	updated, err := repo.Update(ctx, created.ID, domain.TodoPatch{Completed: &completed})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if !updated.Completed {
		t.Error("completed should be true")
	}
	if updated.Title != "Walk" || updated.Description != "evening" {
		t.Errorf("untouched fields changed: %+v", updated)
	}
	if !updated.CreatedAt.Equal(created.CreatedAt) {
		t.Error("createdAt must never change")
	}
}

func TestUpdateMissing(t *testing.T) {
	repo := newRepo(t)

	completed := true
	_, err := repo.Update(context.Background(), "missing", domain.TodoPatch{Completed: &completed})
	if !domain.IsDomainError(err, domain.ErrCodeNotFound) {
		t.Fatalf("expected NOT_FOUND, got %v", err)
	}
}

func TestDeleteTwice(t *testing.T) {
	repo := newRepo(t)
	ctx := context.Background()

	created, err := repo.Create(ctx, &domain.Todo{Title: "Remove me"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	if err := repo.Delete(ctx, created.ID); err != nil {
		t.Fatalf("first delete: %v", err)
	}
	if err := repo.Delete(ctx, created.ID); !domain.IsDomainError(err, domain.ErrCodeNotFound) {
		t.Fatalf("second delete should be NOT_FOUND, got %v", err)
	}
	if _, err := repo.GetByID(ctx, created.ID); !domain.IsDomainError(err, domain.ErrCodeNotFound) {
		t.Fatalf("record should be gone, got %v", err)
	}
}
