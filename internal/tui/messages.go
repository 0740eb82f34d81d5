package tui

import "github.com/RaushanShrivastwa/todo-app/domain"

// Messages delivered by network commands. Each carries the error so the
// update loop stays the single place that decides what a failure means.

type todosLoadedMsg struct {
	todos []domain.Todo
	err   error
}

type todoCreatedMsg struct {
	todo *domain.Todo
	err  error
}

type todoToggledMsg struct {
	id        string
	completed bool
	err       error
}

type todoDeletedMsg struct {
	id  string
	err error
}
