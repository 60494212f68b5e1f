// Package client talks to the todo API and mirrors its state for the CLI.
package client

import (
	"context"
	"fmt"
	"time"

	"todoapp/internal/api"
	"todoapp/internal/config"
)

// API mirrors the HTTP endpoints one method per route. Protected calls take
// the bearer token explicitly.
type API interface {
	Register(ctx context.Context, req api.RegisterRequest) (*api.AuthResponse, error)
	Login(ctx context.Context, req api.LoginRequest) (*api.AuthResponse, error)

	ListProjects(ctx context.Context, token string, pageNumber, pageSize int) (*api.PagedResult[api.Project], error)
	GetProject(ctx context.Context, token string, id int64) (*api.Project, error)
	CreateProject(ctx context.Context, token string, req api.ProjectRequest) (*api.Project, error)
	UpdateProject(ctx context.Context, token string, id int64, req api.ProjectRequest) (*api.Project, error)
	DeleteProject(ctx context.Context, token string, id int64) error
	ListProjectTodos(ctx context.Context, token string, projectID int64) ([]api.Todo, error)

	CreateTodo(ctx context.Context, token string, req api.CreateTodoRequest) (*api.Todo, error)
	GetTodo(ctx context.Context, token string, id int64) (*api.Todo, error)
	UpdateTodo(ctx context.Context, token string, id int64, req api.UpdateTodoRequest) (*api.Todo, error)
	DeleteTodo(ctx context.Context, token string, id int64) error
	ToggleTodo(ctx context.Context, token string, id int64) (*api.Todo, error)
}

// New picks the backend once, from configuration.
func New(cfg config.ClientConfig) (API, error) {
	if cfg.UseMock {
		m, err := NewMockAPI(cfg.MockLatency)
		if err != nil {
			return nil, fmt.Errorf("mock api: %w", err)
		}
		return m, nil
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return NewHTTPAPI(cfg.APIURL, timeout), nil
}
