package apiclient

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/valyala/fasthttp"

	"github.com/RaushanShrivastwa/todo-app/api/transport"
	"github.com/RaushanShrivastwa/todo-app/domain"
)

const defaultTimeout = 10 * time.Second

// Client talks to the todo REST API. Every call is synchronous; callers
// decide how to schedule them.
type Client struct {
	baseURL string
	http    *fasthttp.Client
	timeout time.Duration
}

// New builds a client for the given base URL (e.g. http://localhost:8080/api).
func New(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &fasthttp.Client{},
		timeout: defaultTimeout,
	}
}

// FetchTodos returns the full list, newest first.
func (c *Client) FetchTodos() ([]domain.Todo, error) {
	body, err := c.do(fasthttp.MethodGet, "/todos", nil, fasthttp.StatusOK, "failed to fetch todos")
	if err != nil {
		return nil, err
	}
	var todos []domain.Todo
	if err := json.Unmarshal(body, &todos); err != nil {
		return nil, fmt.Errorf("failed to fetch todos: %w", err)
	}
	return todos, nil
}

// CreateTodo creates a todo and returns the stored record.
func (c *Client) CreateTodo(title, description string) (*domain.Todo, error) {
	payload, err := json.Marshal(transport.CreateTodoRequest{
		Title:       title,
		Description: description,
	})
	if err != nil {
		return nil, err
	}
	body, err := c.do(fasthttp.MethodPost, "/todos", payload, fasthttp.StatusCreated, "failed to create todo")
	if err != nil {
		return nil, err
	}
	var todo domain.Todo
	if err := json.Unmarshal(body, &todo); err != nil {
		return nil, fmt.Errorf("failed to create todo: %w", err)
	}
	return &todo, nil
}

// UpdateTodo applies a partial update and returns the server's record.
func (c *Client) UpdateTodo(id string, patch transport.UpdateTodoRequest) (*domain.Todo, error) {
	payload, err := json.Marshal(patch)
	if err != nil {
		return nil, err
	}
	body, err := c.do(fasthttp.MethodPut, "/todos/"+id, payload, fasthttp.StatusOK, "failed to update todo")
	if err != nil {
		return nil, err
	}
	var todo domain.Todo
	if err := json.Unmarshal(body, &todo); err != nil {
		return nil, fmt.Errorf("failed to update todo: %w", err)
	}
	return &todo, nil
}

// DeleteTodo removes the todo with the given id.
func (c *Client) DeleteTodo(id string) error {
	_, err := c.do(fasthttp.MethodDelete, "/todos/"+id, nil, fasthttp.StatusOK, "failed to delete todo")
	return err
}

func (c *Client) do(method, path string, body []byte, wantStatus int, failMsg string) ([]byte, error) {
	req := fasthttp.AcquireRequest()
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseRequest(req)
	defer fasthttp.ReleaseResponse(resp)

	req.Header.SetMethod(method)
	req.SetRequestURI(c.baseURL + path)
	if body != nil {
		req.Header.SetContentType("application/json")
		req.SetBody(body)
	}

	if err := c.http.DoTimeout(req, resp, c.timeout); err != nil {
		return nil, fmt.Errorf("%s: %w", failMsg, err)
	}

	status := resp.StatusCode()
	if status != wantStatus {
		// Surface the server's message when it sent one instead of
		// discarding the structured error body.
		var errBody transport.ErrorBody
		if err := json.Unmarshal(resp.Body(), &errBody); err == nil && errBody.Message != "" {
			return nil, fmt.Errorf("%s: %s (status %d)", failMsg, errBody.Message, status)
		}
		return nil, fmt.Errorf("%s: unexpected status %d", failMsg, status)
	}

	out := make([]byte, len(resp.Body()))
	copy(out, resp.Body())
	return out, nil
}
