package handler_test

import (
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"github.com/valyala/fasthttp"

	"github.com/RaushanShrivastwa/todo-app/api/handler"
	"github.com/RaushanShrivastwa/todo-app/api/transport"
	"github.com/RaushanShrivastwa/todo-app/domain"
	"github.com/RaushanShrivastwa/todo-app/internal/testutil"
	todoUC "github.com/RaushanShrivastwa/todo-app/usecase/todo"
)

func newHandler(repo *testutil.FakeTodoRepository) *handler.TodoHandler {
	uc := todoUC.New(repo, nil)
	return handler.NewTodoHandler(uc, nil, nil)
}

func newRequestCtx(method, uri string, body []byte) *fasthttp.RequestCtx {
	ctx := &fasthttp.RequestCtx{}
	ctx.Request.Header.SetMethod(method)
	ctx.Request.SetRequestURI(uri)
	if body != nil {
		ctx.Request.Header.SetContentType("application/json")
		ctx.Request.SetBody(body)
	}
	return ctx
}

func decodeTodo(t *testing.T, ctx *fasthttp.RequestCtx) domain.Todo {
	t.Helper()
	var todo domain.Todo
	if err := json.Unmarshal(ctx.Response.Body(), &todo); err != nil {
		t.Fatalf("cannot decode todo from %q: %v", ctx.Response.Body(), err)
	}
	return todo
}

func decodeError(t *testing.T, ctx *fasthttp.RequestCtx) transport.ErrorBody {
	t.Helper()
	var body transport.ErrorBody
	if err := json.Unmarshal(ctx.Response.Body(), &body); err != nil {
		t.Fatalf("cannot decode error body from %q: %v", ctx.Response.Body(), err)
	}
	return body
}

func TestCreateTodo(t *testing.T) {
	repo := testutil.NewFakeTodoRepository()
	h := newHandler(repo)

	ctx := newRequestCtx("POST", "/api/todos", []byte(`{"title":"Buy milk"}`))
	h.CreateTodo(ctx)

	if got := ctx.Response.StatusCode(); got != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", got, ctx.Response.Body())
	}
	todo := decodeTodo(t, ctx)
	if todo.ID == "" || todo.CreatedAt.IsZero() {
		t.Errorf("id and createdAt should be assigned: %+v", todo)
	}
	if todo.Completed {
		t.Error("completed should default to false")
	}
	if todo.Title != "Buy milk" {
		t.Errorf("unexpected title %q", todo.Title)
	}
}

func TestCreateTodoMissingTitle(t *testing.T) {
	repo := testutil.NewFakeTodoRepository()
	h := newHandler(repo)

	for _, body := range []string{`{}`, `{"title":""}`, `{"description":"only"}`} {
		ctx := newRequestCtx("POST", "/api/todos", []byte(body))
		h.CreateTodo(ctx)

		if got := ctx.Response.StatusCode(); got != http.StatusBadRequest {
			t.Errorf("body %s: expected 400, got %d", body, got)
		}
		if msg := decodeError(t, ctx).Message; msg == "" {
			t.Errorf("body %s: expected error message", body)
		}
	}
	if repo.Len() != 0 {
		t.Errorf("nothing should be persisted, have %d", repo.Len())
	}
}

func TestCreateTodoMalformedBody(t *testing.T) {
	h := newHandler(testutil.NewFakeTodoRepository())

	ctx := newRequestCtx("POST", "/api/todos", []byte(`{"title": 42}`))
	h.CreateTodo(ctx)

	if got := ctx.Response.StatusCode(); got != http.StatusBadRequest {
		t.Fatalf("expected 400 for wrong-typed field, got %d", got)
	}
}

func TestListTodosOrder(t *testing.T) {
	repo := testutil.NewFakeTodoRepository()
	h := newHandler(repo)

	for _, title := range []string{"A", "B"} {
		ctx := newRequestCtx("POST", "/api/todos", []byte(`{"title":"`+title+`"}`))
		h.CreateTodo(ctx)
		if ctx.Response.StatusCode() != http.StatusCreated {
			t.Fatalf("setup create failed: %s", ctx.Response.Body())
		}
	}

	ctx := newRequestCtx("GET", "/api/todos", nil)
	h.ListTodos(ctx)

	if got := ctx.Response.StatusCode(); got != http.StatusOK {
		t.Fatalf("expected 200, got %d", got)
	}
	var todos []domain.Todo
	if err := json.Unmarshal(ctx.Response.Body(), &todos); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(todos) != 2 || todos[0].Title != "B" || todos[1].Title != "A" {
		t.Errorf("expected [B, A], got %+v", todos)
	}
}

func TestListTodosEmpty(t *testing.T) {
	h := newHandler(testutil.NewFakeTodoRepository())

	ctx := newRequestCtx("GET", "/api/todos", nil)
	h.ListTodos(ctx)

	if string(ctx.Response.Body()) != "[]" {
		t.Errorf("empty list should serialize as [], got %q", ctx.Response.Body())
	}
}

func TestListTodosStoreError(t *testing.T) {
	repo := testutil.NewFakeTodoRepository()
	repo.ListErr = errors.New("connection refused")
	h := newHandler(repo)

	ctx := newRequestCtx("GET", "/api/todos", nil)
	h.ListTodos(ctx)

	if got := ctx.Response.StatusCode(); got != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", got)
	}
	body := decodeError(t, ctx)
	if body.Message != "Error fetching todos" {
		t.Errorf("unexpected message %q", body.Message)
	}
	if body.Err == "" {
		t.Error("underlying error text should be included")
	}
}

func TestGetTodo(t *testing.T) {
	repo := testutil.NewFakeTodoRepository()
	h := newHandler(repo)

	create := newRequestCtx("POST", "/api/todos", []byte(`{"title":"Buy milk","description":"2l"}`))
	h.CreateTodo(create)
	created := decodeTodo(t, create)

	ctx := newRequestCtx("GET", "/api/todos/"+created.ID, nil)
	ctx.SetUserValue("id", created.ID)
	h.GetTodo(ctx)

	if got := ctx.Response.StatusCode(); got != http.StatusOK {
		t.Fatalf("expected 200, got %d", got)
	}
	if got := decodeTodo(t, ctx); got != created {
		t.Errorf("round-trip mismatch: %+v vs %+v", got, created)
	}
}

func TestGetTodoNotFound(t *testing.T) {
	h := newHandler(testutil.NewFakeTodoRepository())

	ctx := newRequestCtx("GET", "/api/todos/missing", nil)
	ctx.SetUserValue("id", "missing")
	h.GetTodo(ctx)

	if got := ctx.Response.StatusCode(); got != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", got)
	}
	if msg := decodeError(t, ctx).Message; msg != "Todo not found" {
		t.Errorf("unexpected message %q", msg)
	}
}

func TestUpdateTodoCompletedOnly(t *testing.T) {
	repo := testutil.NewFakeTodoRepository()
	h := newHandler(repo)

	create := newRequestCtx("POST", "/api/todos", []byte(`{"title":"Walk","description":"evening"}`))
	h.CreateTodo(create)
	created := decodeTodo(t, create)

	ctx := newRequestCtx("PUT", "/api/todos/"+created.ID, []byte(`{"completed":true}`))
	ctx.SetUserValue("id", created.ID)
	h.UpdateTodo(ctx)

	if got := ctx.Response.StatusCode(); got != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", got, ctx.Response.Body())
	}
	updated := decodeTodo(t, ctx)
	if !updated.Completed {
		t.Error("completed should be true")
	}
	if updated.Title != created.Title || updated.Description != created.Description ||
		updated.ID != created.ID || !updated.CreatedAt.Equal(created.CreatedAt) {
		t.Errorf("only completed may change: %+v vs %+v", updated, created)
	}
}

func TestUpdateTodoNotFound(t *testing.T) {
	repo := testutil.NewFakeTodoRepository()
	h := newHandler(repo)

	ctx := newRequestCtx("PUT", "/api/todos/missing", []byte(`{"completed":true}`))
	ctx.SetUserValue("id", "missing")
	h.UpdateTodo(ctx)

	if got := ctx.Response.StatusCode(); got != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", got)
	}
	if repo.Len() != 0 {
		t.Error("no persisted change expected")
	}
}

func TestDeleteTodoTwice(t *testing.T) {
	repo := testutil.NewFakeTodoRepository()
	h := newHandler(repo)

	create := newRequestCtx("POST", "/api/todos", []byte(`{"title":"Remove me"}`))
	h.CreateTodo(create)
	created := decodeTodo(t, create)

	first := newRequestCtx("DELETE", "/api/todos/"+created.ID, nil)
	first.SetUserValue("id", created.ID)
	h.DeleteTodo(first)

	if got := first.Response.StatusCode(); got != http.StatusOK {
		t.Fatalf("expected 200, got %d", got)
	}
	var msg transport.Message
	if err := json.Unmarshal(first.Response.Body(), &msg); err != nil || msg.Message == "" {
		t.Errorf("expected confirmation message, got %q", first.Response.Body())
	}
	if repo.Len() != 0 {
		t.Error("record should be removed")
	}

	second := newRequestCtx("DELETE", "/api/todos/"+created.ID, nil)
	second.SetUserValue("id", created.ID)
	h.DeleteTodo(second)

	if got := second.Response.StatusCode(); got != http.StatusNotFound {
		t.Fatalf("second delete should be 404, got %d", got)
	}
}
