package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/RaushanShrivastwa/todo-app/api/transport"
	"github.com/RaushanShrivastwa/todo-app/domain"
)

// API is the slice of the REST client the UI needs. Tests substitute a fake.
type API interface {
	FetchTodos() ([]domain.Todo, error)
	CreateTodo(title, description string) (*domain.Todo, error)
	UpdateTodo(id string, patch transport.UpdateTodoRequest) (*domain.Todo, error)
	DeleteTodo(id string) error
}

// Model holds the single source of UI state: the last-known server list
// plus local optimistic edits. All mutation happens in Update.
type Model struct {
	api    API
	logger *zap.Logger

	todos   []domain.Todo
	loading bool // true only during the initial fetch
	cursor  int

	adding   bool // add form focused
	inFlight bool // create request running
	input    textinput.Model

	status string // last surfaced error, cleared on the next success
}

func NewModel(api API, logger *zap.Logger) Model {
	if logger == nil {
		logger = zap.NewNop()
	}
	ti := textinput.New()
	ti.Prompt = "> "
	ti.Placeholder = "Add a new todo..."
	ti.CharLimit = 200

	return Model{
		api:     api,
		logger:  logger,
		loading: true,
		input:   ti,
	}
}

func (m Model) Init() tea.Cmd {
	return m.fetchCmd()
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case todosLoadedMsg:
		m.loading = false
		if msg.err != nil {
			m.logger.Error("failed to load todos", zap.Error(msg.err))
			m.status = msg.err.Error()
			return m, nil
		}
		m.todos = msg.todos
		m.status = ""
		return m, nil

	case todoCreatedMsg:
		m.inFlight = false
		if msg.err != nil {
			m.logger.Error("failed to create todo", zap.Error(msg.err))
			m.status = msg.err.Error()
			return m, nil
		}
		// prepend; the list stays newest-first without a re-fetch
		m.todos = append([]domain.Todo{*msg.todo}, m.todos...)
		m.input.SetValue("")
		m.input.Blur()
		m.adding = false
		m.status = ""
		return m, nil

	case todoToggledMsg:
		if msg.err != nil {
			m.logger.Error("failed to update todo", zap.String("id", msg.id), zap.Error(msg.err))
			m.status = msg.err.Error()
			return m, nil
		}
		for i := range m.todos {
			if m.todos[i].ID == msg.id {
				m.todos[i].Completed = msg.completed
				break
			}
		}
		m.status = ""
		return m, nil

	case todoDeletedMsg:
		if msg.err != nil {
			m.logger.Error("failed to delete todo", zap.String("id", msg.id), zap.Error(msg.err))
			m.status = msg.err.Error()
			return m, nil
		}
		for i := range m.todos {
			if m.todos[i].ID == msg.id {
				m.todos = append(m.todos[:i], m.todos[i+1:]...)
				break
			}
		}
		if m.cursor >= len(m.todos) && m.cursor > 0 {
			m.cursor--
		}
		m.status = ""
		return m, nil

	case tea.KeyMsg:
		if m.adding {
			return m.updateAdding(msg)
		}
		return m.updateList(msg)
	}

	return m, nil
}

func (m Model) updateAdding(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.inFlight {
		// the form is disabled while the create request runs
		return m, nil
	}
	switch msg.String() {
	case "enter":
		title := strings.TrimSpace(m.input.Value())
		if title == "" {
			m.status = "Title cannot be empty"
			return m, nil
		}
		m.inFlight = true
		m.status = ""
		return m, m.createCmd(title)
	case "esc":
		m.adding = false
		m.input.SetValue("")
		m.input.Blur()
		return m, nil
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) updateList(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "esc", "ctrl+c":
		return m, tea.Quit
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
		return m, nil
	case "down", "j":
		if m.cursor < len(m.todos)-1 {
			m.cursor++
		}
		return m, nil
	case " ":
		if m.cursor >= 0 && m.cursor < len(m.todos) {
			todo := m.todos[m.cursor]
			return m, m.toggleCmd(todo.ID, !todo.Completed)
		}
		return m, nil
	case "d":
		if m.cursor >= 0 && m.cursor < len(m.todos) {
			return m, m.deleteCmd(m.todos[m.cursor].ID)
		}
		return m, nil
	case "a":
		m.adding = true
		m.input.SetValue("")
		m.input.Focus()
		return m, nil
	case "r":
		m.loading = true
		return m, m.fetchCmd()
	}
	return m, nil
}

func (m Model) View() string {
	var b strings.Builder

	done := 0
	for _, t := range m.todos {
		if t.Completed {
			done++
		}
	}
	b.WriteString(fmt.Sprintf("%s   %s %d  %s %d\n\n",
		titleStyle.Render("Todos"),
		successStyle.Render("✔"), done,
		pendingStyle.Render("•"), len(m.todos)-done,
	))

	switch {
	case m.loading:
		b.WriteString(mutedStyle.Render("Loading todos...") + "\n")
	case len(m.todos) == 0:
		b.WriteString(mutedStyle.Render("No todos yet. Add one above!") + "\n")
	default:
		for i, t := range m.todos {
			b.WriteString(m.renderRow(i, t) + "\n")
		}
	}

	if m.adding {
		label := "Add new todo"
		if m.inFlight {
			label = "Adding..."
		}
		b.WriteString("\n" + label + "\n" + m.input.View() + "\n")
	}

	if m.status != "" {
		b.WriteString("\n" + errorStyle.Render("✖ "+m.status) + "\n")
	}

	b.WriteString("\n" + helpStyle.Render("a add • space toggle • d delete • r reload • q quit"))

	return panelStyle.Render(b.String())
}

func (m Model) renderRow(index int, t domain.Todo) string {
	box := mutedStyle.Render(boxUnchecked)
	text := t.Title
	if t.Completed {
		box = successStyle.Render(boxChecked)
		text = doneStyle.Render(t.Title)
	}
	prefix := "  "
	if index == m.cursor {
		prefix = selectedStyle.Render("> ")
	}
	return fmt.Sprintf("%s%s %s", prefix, box, text)
}

// Todos exposes the current list for tests and the final report on exit.
func (m Model) Todos() []domain.Todo {
	return m.todos
}

func (m Model) fetchCmd() tea.Cmd {
	api := m.api
	return func() tea.Msg {
		todos, err := api.FetchTodos()
		return todosLoadedMsg{todos: todos, err: err}
	}
}

func (m Model) createCmd(title string) tea.Cmd {
	api := m.api
	return func() tea.Msg {
		todo, err := api.CreateTodo(title, "")
		return todoCreatedMsg{todo: todo, err: err}
	}
}

func (m Model) toggleCmd(id string, completed bool) tea.Cmd {
	api := m.api
	return func() tea.Msg {
		// only the completed field travels; local state is patched in
		// place instead of using the returned record
		_, err := api.UpdateTodo(id, transport.UpdateTodoRequest{Completed: &completed})
		return todoToggledMsg{id: id, completed: completed, err: err}
	}
}

func (m Model) deleteCmd(id string) tea.Cmd {
	api := m.api
	return func() tea.Msg {
		err := api.DeleteTodo(id)
		return todoDeletedMsg{id: id, err: err}
	}
}
