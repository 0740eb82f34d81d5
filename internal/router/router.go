package router

import (
	"github.com/fasthttp/router"

	apiHandler "github.com/RaushanShrivastwa/todo-app/api/handler"
)

type Handlers struct {
	Todo   *apiHandler.TodoHandler
	Health *apiHandler.HealthHandler
}

func New(handlers Handlers) *router.Router {
	r := router.New()

	r.GET("/health", handlers.Health.Check)

	r.GET("/api/todos", handlers.Todo.ListTodos)
	r.GET("/api/todos/{id}", handlers.Todo.GetTodo)
	r.POST("/api/todos", handlers.Todo.CreateTodo)
	r.PUT("/api/todos/{id}", handlers.Todo.UpdateTodo)
	r.DELETE("/api/todos/{id}", handlers.Todo.DeleteTodo)

	return r
}
