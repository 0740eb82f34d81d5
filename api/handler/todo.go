package handler

import (
	"encoding/json"
	"net/http"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/RaushanShrivastwa/todo-app/api/transport"
	"github.com/RaushanShrivastwa/todo-app/domain"
	"github.com/RaushanShrivastwa/todo-app/pkg/httpcontext"
	todoUC "github.com/RaushanShrivastwa/todo-app/usecase/todo"
)

type TodoHandler struct {
	baseHandler
	uc *todoUC.UseCase
}

func NewTodoHandler(uc *todoUC.UseCase, adapter *httpcontext.Adapter, logger *zap.Logger) *TodoHandler {
	return &TodoHandler{
		baseHandler: newBaseHandler(adapter, logger),
		uc:          uc,
	}
}

// @Summary List todos
// @Tags todos
// @Router /api/todos [get]
func (h *TodoHandler) ListTodos(ctx *fasthttp.RequestCtx) {
	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	todos, err := h.uc.ListTodos(stdCtx)
	if err != nil {
		h.respondError(ctx, err, "Error fetching todos")
		return
	}
	if todos == nil {
		todos = []domain.Todo{}
	}
	h.respondJSON(ctx, http.StatusOK, todos)
}

// @Summary Get a single todo
// @Tags todos
// @Router /api/todos/{id} [get]
func (h *TodoHandler) GetTodo(ctx *fasthttp.RequestCtx) {
	id, ok := h.pathID(ctx)
	if !ok {
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	todo, err := h.uc.GetTodo(stdCtx, id)
	if err != nil {
		h.respondError(ctx, err, "Error fetching todo")
		return
	}
	h.respondJSON(ctx, http.StatusOK, todo)
}

// @Summary Create todo
// @Tags todos
// @Router /api/todos [post]
func (h *TodoHandler) CreateTodo(ctx *fasthttp.RequestCtx) {
	var req transport.CreateTodoRequest
	if err := json.Unmarshal(ctx.PostBody(), &req); err != nil {
		h.respondJSON(ctx, http.StatusBadRequest, transport.NewError("Invalid request body", err))
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	created, err := h.uc.CreateTodo(stdCtx, req.Input())
	if err != nil {
		h.respondError(ctx, err, "Error creating todo")
		return
	}
	h.respondJSON(ctx, http.StatusCreated, created)
}

// @Summary Update todo
// @Tags todos
// @Router /api/todos/{id} [put]
func (h *TodoHandler) UpdateTodo(ctx *fasthttp.RequestCtx) {
	id, ok := h.pathID(ctx)
	if !ok {
		return
	}

	var req transport.UpdateTodoRequest
	if err := json.Unmarshal(ctx.PostBody(), &req); err != nil {
		h.respondJSON(ctx, http.StatusBadRequest, transport.NewError("Invalid request body", err))
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	updated, err := h.uc.UpdateTodo(stdCtx, id, req.Patch())
	if err != nil {
		h.respondError(ctx, err, "Error updating todo")
		return
	}
	h.respondJSON(ctx, http.StatusOK, updated)
}

// @Summary Delete todo
// @Tags todos
// @Router /api/todos/{id} [delete]
func (h *TodoHandler) DeleteTodo(ctx *fasthttp.RequestCtx) {
	id, ok := h.pathID(ctx)
	if !ok {
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	if err := h.uc.DeleteTodo(stdCtx, id); err != nil {
		h.respondError(ctx, err, "Error deleting todo")
		return
	}
	h.respondJSON(ctx, http.StatusOK, transport.Message{Message: "Todo deleted successfully"})
}

func (h *TodoHandler) pathID(ctx *fasthttp.RequestCtx) (string, bool) {
	id, _ := ctx.UserValue("id").(string)
	if id == "" {
		h.respondJSON(ctx, http.StatusBadRequest, transport.NewError("Missing todo id", nil))
		return "", false
	}
	return id, true
}
