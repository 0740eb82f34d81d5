package apiclient_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/RaushanShrivastwa/todo-app/api/transport"
	"github.com/RaushanShrivastwa/todo-app/domain"
	"github.com/RaushanShrivastwa/todo-app/internal/apiclient"
)

func sampleTodo(id, title string) domain.Todo {
	return domain.Todo{
		ID:        id,
		Title:     title,
		CreatedAt: time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC),
	}
}

func TestFetchTodos(t *testing.T) {
	want := []domain.Todo{sampleTodo("2", "B"), sampleTodo("1", "A")}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet || r.URL.Path != "/api/todos" {
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		json.NewEncoder(w).Encode(want)
	}))
	defer srv.Close()

	client := apiclient.New(srv.URL + "/api")
	got, err := client.FetchTodos()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 2 || got[0].ID != "2" || got[1].ID != "1" {
		t.Errorf("unexpected todos: %+v", got)
	}
}

func TestCreateTodo(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/api/todos" {
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		var req transport.CreateTodoRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("bad body: %v", err)
		}
		if req.Title != "Buy milk" {
			t.Errorf("unexpected title %q", req.Title)
		}
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(sampleTodo("1", req.Title))
	}))
	defer srv.Close()

	client := apiclient.New(srv.URL + "/api")
	todo, err := client.CreateTodo("Buy milk", "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if todo.ID != "1" || todo.Title != "Buy milk" {
		t.Errorf("unexpected todo: %+v", todo)
	}
}

func TestUpdateTodoSendsOnlyCompleted(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPut || r.URL.Path != "/api/todos/1" {
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		var raw map[string]json.RawMessage
		if err := json.NewDecoder(r.Body).Decode(&raw); err != nil {
			t.Fatalf("bad body: %v", err)
		}
		if len(raw) != 1 {
			t.Errorf("only completed should travel, got fields %v", raw)
		}
		if _, ok := raw["completed"]; !ok {
			t.Error("completed field missing")
		}
		todo := sampleTodo("1", "A")
		todo.Completed = true
		json.NewEncoder(w).Encode(todo)
	}))
	defer srv.Close()

	client := apiclient.New(srv.URL + "/api")
	completed := true
	todo, err := client.UpdateTodo("1", transport.UpdateTodoRequest{Completed: &completed})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !todo.Completed {
		t.Error("expected completed todo")
	}
}

func TestDeleteTodo(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodDelete || r.URL.Path != "/api/todos/1" {
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		json.NewEncoder(w).Encode(transport.Message{Message: "Todo deleted successfully"})
	}))
	defer srv.Close()

	client := apiclient.New(srv.URL + "/api")
	if err := client.DeleteTodo("1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestErrorBodySurfaced(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		json.NewEncoder(w).Encode(transport.NewError("Todo not found", nil))
	}))
	defer srv.Close()

	client := apiclient.New(srv.URL + "/api")
	err := client.DeleteTodo("missing")
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(err.Error(), "Todo not found") {
		t.Errorf("server message should be surfaced, got %q", err)
	}
	if !strings.Contains(err.Error(), "failed to delete todo") {
		t.Errorf("operation context should be kept, got %q", err)
	}
}

func TestNonJSONErrorFallsBack(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		w.Write([]byte("<html>bad gateway</html>"))
	}))
	defer srv.Close()

	client := apiclient.New(srv.URL + "/api")
	_, err := client.FetchTodos()
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(err.Error(), "unexpected status 502") {
		t.Errorf("expected generic status error, got %q", err)
	}
}
